package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dealdesk/loi-parser/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "loi-parser",
	Short: "Commercial real estate LOI extraction service",
	Long:  "Extracts structured Letter of Intent terms from broker call transcripts via Claude, scores per-field confidence, and forwards validated records to the document generation service.",
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
