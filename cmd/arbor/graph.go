package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <flow>",
	Short: "Export a flow's dependency graph",
	Long:  `Compiles the flow and outputs a Mermaid diagram (graph TD) of its dependency structure.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		r, err := cli.BuildRunner(cfg, newLogger(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		nodes, err := r.CompileFlow(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error compiling flow: %v\n", err)
			os.Exit(1)
		}

		fmt.Print(graph.GenerateMermaid(nodes))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
}
