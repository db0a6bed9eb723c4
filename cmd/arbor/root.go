package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/arbor/internal/config"
	"github.com/aretw0/arbor/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor runs dependency-ordered task flows",
	Long: `Arbor validates flows as directed acyclic graphs and executes each node
exactly once, after all of its dependencies, feeding every node the outputs
of the nodes that ran before it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the arbor.yaml configuration file")
	rootCmd.PersistentFlags().String("flows", "", "Directory containing the flow documents")
	rootCmd.PersistentFlags().String("data", "", "Directory artifacts and run records are written to")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the config file (if any) and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flows, _ := cmd.Flags().GetString("flows"); flows != "" {
		cfg.FlowsPath = flows
	}
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		cfg.DataPath = data
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	return logging.New(logging.ParseLevel(cfg.LogLevel))
}
