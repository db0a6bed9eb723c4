package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/runner"
)

var flowsCmd = &cobra.Command{
	Use:   "flows",
	Short: "List the available flows",
	Long: `Lists every flow the configured source can provide, with titles and node
counts. With --watch the command keeps running and reprints the list whenever
the flow documents change.`,
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

		watch, _ := cmd.Flags().GetBool("watch")
		if !watch {
			if err := printFlows(context.Background(), r); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		}

		sc := cli.NewSignalContext(context.Background())
		defer sc.Cancel()

		ch, err := r.Watch(sc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if err := printFlows(sc, r); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

		for {
			select {
			case <-sc.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				fmt.Println()
				// A broken document should not stop the watcher; report
				// and wait for the next change.
				if err := printFlows(sc, r); err != nil {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				}
			}
		}
	},
}

func printFlows(ctx context.Context, r *runner.Runner) error {
	ids, err := r.ListFlows(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		spec, err := r.DescribeFlow(ctx, id)
		if err != nil {
			return err
		}
		if spec.Title != "" {
			fmt.Printf("%s\t%s (%d nodes)\n", id, spec.Title, len(spec.Nodes))
		} else {
			fmt.Printf("%s\t(%d nodes)\n", id, len(spec.Nodes))
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(flowsCmd)

	flowsCmd.Flags().BoolP("watch", "w", false, "Keep running and reprint the list when flow documents change")
}
