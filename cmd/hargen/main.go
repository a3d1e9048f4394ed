// Command hargen generates data models and replayable HTTP clients from HAR
// captures.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/usestring/hargen/internal/config"
	"github.com/usestring/hargen/internal/logging"
)

var cfg *config.Config

func main() {
	cfg = config.Load()

	cleanup, err := logging.Setup(logging.Config{
		Level:      cfg.LogLevel,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
		JSON:       cfg.LogJSON,
	})
	if err != nil {
		slog.Error("failed to set up logging", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	rootCmd := &cobra.Command{
		Use:           "hargen",
		Short:         "Generate models and clients from HAR captures",
		Long:          "hargen turns recorded HTTP traffic (HAR files) into data model definitions inferred from JSON responses and replayable client source code.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newModelsCmd())
	rootCmd.AddCommand(newClientCmd())
	rootCmd.AddCommand(newEndpointsCmd())

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
