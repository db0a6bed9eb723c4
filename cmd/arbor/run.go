package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <flow>",
	Short: "Execute a flow and print its results",
	Long: `Resolves the flow, validates it as a dependency graph and executes every
node. Rendered documents are written to the data directory; the final run
record is printed when the run ends.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		inline, _ := cmd.Flags().GetString("context")
		file, _ := cmd.Flags().GetString("context-file")
		jsonMode, _ := cmd.Flags().GetBool("json")

		initial, err := cli.ParseContext(inline, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		logger := newLogger(cfg)
		r, err := cli.BuildRunner(cfg, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		record, err := r.RunFlow(sc, args[0], initial)
		if printErr := cli.PrintRecord(os.Stdout, record, jsonMode); printErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", printErr)
		}
		if err != nil {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("context", "", "Initial run context as inline JSON")
	runCmd.Flags().String("context-file", "", "Path to a JSON file with the initial run context")
	runCmd.Flags().Bool("json", false, "Print the raw run record as JSON")
}
