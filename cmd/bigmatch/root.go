package main

import (
	"fmt"
	"strings"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	bmzap "github.com/LerianStudio/lib-bigmatch/bigmatch/zap"
	"github.com/spf13/cobra"
	"github.com/streamingfast/cli"
	"github.com/streamingfast/cli/sflags"
)

const otelLibraryName = "github.com/LerianStudio/lib-bigmatch/cmd/bigmatch"

var rootCmd = &cobra.Command{
	Use:   "bigmatch",
	Short: "Big-number aware assertion matchers",
	Long: cli.Dedent(`
		bigmatch runs assertion scenarios against the big-number matcher
		plugin and normalizes numeric values the way the matchers see them.
	`),
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Log level (error, warn, info, debug), falls back to BIGMATCH_LOG_LEVEL")
	rootCmd.PersistentFlags().String("env", "", "Logger profile (production, staging, development, local), falls back to BIGMATCH_ENV")
}

// newLogger builds the command logger. Flags win over the environment.
func newLogger(cmd *cobra.Command) (*bmzap.Logger, error) {
	cfg := bmzap.ConfigFromEnv(otelLibraryName)

	if level := strings.TrimSpace(sflags.MustGetString(cmd, "log-level")); level != "" {
		if _, err := log.ParseLevel(level); err != nil {
			return nil, fmt.Errorf("--log-level: %w", err)
		}

		cfg.Level = level
	}

	if env := strings.TrimSpace(sflags.MustGetString(cmd, "env")); env != "" {
		cfg.Environment = bmzap.Environment(strings.ToLower(env))
	}

	logger, err := bmzap.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	return logger, nil
}
