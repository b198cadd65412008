//go:build unit

package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeVersionString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		version string
		commit  string
		date    string
		want    string
	}{
		{name: "bare", version: "dev", want: "dev"},
		{name: "short commit ignored", version: "dev", commit: "abc", want: "dev"},
		{name: "commit", version: "v1.0.0", commit: "0123456789abcdef", want: "v1.0.0 (Commit 0123456)"},
		{name: "commit and date", version: "v1.0.0", commit: "0123456789", date: "2024-01-02", want: "v1.0.0 (Commit 0123456, Built 2024-01-02)"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, computeVersionString(tt.version, tt.commit, tt.date))
		})
	}
}

func TestNormalizeValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value scenario.Value
		want  string
	}{
		{name: "bigint", value: scenario.Value{Type: scenario.TypeBigInt, Raw: "1000000000000000000000"}, want: "1000000000000000000000 (big.Int)"},
		{name: "decimal integral", value: scenario.Value{Type: scenario.TypeDecimal, Raw: "12.000"}, want: "12 (decimal.Decimal)"},
		{name: "uint256", value: scenario.Value{Type: scenario.TypeUint256, Raw: "42"}, want: "42 (uint256.Int)"},
		{name: "int", value: scenario.Value{Type: scenario.TypeInt, Raw: "-7"}, want: "-7 (int)"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := normalizeValue(context.Background(), tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeValueRejectsFraction(t *testing.T) {
	t.Parallel()

	_, err := normalizeValue(context.Background(), scenario.Value{Type: scenario.TypeDecimal, Raw: "1.5"})
	require.Error(t, err)
	assert.ErrorIs(t, err, bignum.ErrNormalization)
}

func TestNormalizeValueRejectsUnknownType(t *testing.T) {
	t.Parallel()

	_, err := normalizeValue(context.Background(), scenario.Value{Type: "complex", Raw: "1"})
	assert.ErrorIs(t, err, scenario.ErrUnknownType)
}

func TestCommandsRegistered(t *testing.T) {
	t.Parallel()

	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["check"])
	assert.True(t, names["normalize"])
}

// executeRoot runs the command tree with args. rootCmd is shared, so callers
// must not run in parallel.
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.ExecuteContext(context.Background())

	return out.String(), err
}

func TestCheckCommand(t *testing.T) {
	t.Run("matching scenarios", func(t *testing.T) {
		out, err := executeRoot(t, "check", "--log-level", "error", "--verbose=true",
			"../../bigmatch/scenario/testdata/bignumber.yaml")
		require.NoError(t, err)

		assert.Contains(t, out, `"native integer equals plain number"`)
		assert.Contains(t, out, "12 passed; 0 failed")
	})

	t.Run("mismatching case fails the command", func(t *testing.T) {
		out, err := executeRoot(t, "check", "--log-level", "error", "--verbose=false", "testdata/mismatch.yaml")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrScenarioMismatch)
		assert.Contains(t, err.Error(), "1 of 2")

		assert.Contains(t, out, `"balance equals limit"`)
		assert.NotContains(t, out, `"balance above limit"`)
		assert.Contains(t, out, "expected pass, got fail")
		assert.Contains(t, out, "FAILED")
		assert.Contains(t, out, "1 passed; 1 failed")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := executeRoot(t, "check", "--log-level", "error", "testdata/absent.yaml")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrScenarioMismatch)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := executeRoot(t, "check", "--log-level", "loud", "testdata/mismatch.yaml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), `--log-level: unknown log level "loud"`)
	})
}

func TestNormalizeCommand(t *testing.T) {
	out, err := executeRoot(t, "normalize", "--type", "apd", "1.5e3")
	require.NoError(t, err)
	assert.Equal(t, "1500 (apd.Decimal)\n", out)
}
