package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pugetsound-wardrive/wiglectl/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "wiglectl",
	Short: "Retrieve geotagged wireless network observations from the WiGLE API",
	Long:  "Searches the WiGLE v2 API for network, bluetooth, or cell observations inside a bounding box, paging through results with rate-limit-aware retries, and saves them as a tabular file.",
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
