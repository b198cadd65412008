package main

import (
	"context"
	"fmt"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/scenario"
	"github.com/spf13/cobra"
	"github.com/streamingfast/cli"
	"github.com/streamingfast/cli/sflags"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <value>",
	Short: "Show the canonical integer of a numeric value",
	Long: cli.Dedent(`
		Parses the value as the given type and prints the integer the
		matchers compare it as, followed by its type label. Values that
		cannot be represented exactly are rejected.
	`),
	Example: cli.Dedent(`
		bigmatch normalize 1000000000000000000000 --type bigint
		bigmatch normalize 12.000 --type decimal
	`),
	Args: cobra.ExactArgs(1),
	RunE: runNormalize,
}

func init() {
	normalizeCmd.Flags().String("type", scenario.TypeBigInt, "Value type (int, uint, float, string, bigint, decimal, apd, uint256)")

	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	value := scenario.Value{Type: sflags.MustGetString(cmd, "type"), Raw: args[0]}

	out, err := normalizeValue(cmd.Context(), value)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), out)

	return nil
}

func normalizeValue(ctx context.Context, value scenario.Value) (string, error) {
	resolved, err := value.Resolve(ctx, nil)
	if err != nil {
		return "", err
	}

	n, err := bignum.Normalize(resolved)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s (%s)", n.String(), bignum.FormatNumberType(resolved)), nil
}
