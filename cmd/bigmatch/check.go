package main

import (
	"errors"
	"fmt"

	"github.com/LerianStudio/lib-bigmatch/bigmatch"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/scenario"
	"github.com/spf13/cobra"
	"github.com/streamingfast/cli"
	"github.com/streamingfast/cli/sflags"
)

// ErrScenarioMismatch is returned when at least one case did not produce its
// expected outcome.
var ErrScenarioMismatch = errors.New("scenario outcomes did not match")

var checkCmd = &cobra.Command{
	Use:   "check <scenario.yaml> [<scenario.yaml>...]",
	Short: "Run assertion scenario files",
	Long: cli.Dedent(`
		Runs every case of the given scenario files against a registry with
		the big-number plugin installed. Each case declares whether the
		assertion should pass, fail or be rejected as misconfigured.
	`),
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolP("verbose", "v", false, "Print every case, not only mismatches")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := sflags.MustGetBool(cmd, "verbose")

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	defer func() { _ = logger.Sync(cmd.Context()) }()

	reg, err := bigmatch.NewRegistry(expect.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	runner := scenario.NewRunner(reg, logger)
	report := &scenario.Report{}

	for _, path := range args {
		f, err := scenario.Load(path)
		if err != nil {
			return err
		}

		runner.Run(cmd.Context(), f, report)
	}

	report.Write(cmd.OutOrStdout(), verbose)

	if !report.OK() {
		return fmt.Errorf("%w: %d of %d", ErrScenarioMismatch, report.Failed, len(report.Results))
	}

	return nil
}
