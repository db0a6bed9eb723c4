package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flow...]",
	Short: "Check flows for structural problems",
	Long: `Compiles the named flows (all flows when none are named) and validates
each one as a dependency graph: unknown task kinds, duplicate node ids,
dependencies on missing nodes and cycles are all reported.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All flows are valid.")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r, err := cli.BuildRunner(cfg, newLogger(cfg))
	if err != nil {
		return err
	}

	ctx := context.Background()
	ids := args
	if len(ids) == 0 {
		ids, err = r.ListFlows(ctx)
		if err != nil {
			return err
		}
	}

	for _, id := range ids {
		if _, err := r.CompileFlow(ctx, id); err != nil {
			return fmt.Errorf("flow %q: %w", id, err)
		}
		fmt.Printf("%s: ok\n", id)
	}
	return nil
}
