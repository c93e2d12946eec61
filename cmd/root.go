package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mempocket/mempocket/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "mem",
	Short: "Personal knowledge store with an agent-assisted inbox",
	Long:  "Captures raw notes, classifies them into entity/context boxes via Claude, and keeps a linked, searchable store of approved entries.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
