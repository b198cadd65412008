//go:build unit

package scenario

import (
	"bytes"
	"context"
	"math"
	"math/big"
	"strings"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/LerianStudio/lib-bigmatch/bigmatch"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	bmzap "github.com/LerianStudio/lib-bigmatch/bigmatch/zap"
)

func TestLoad_TestdataRunsClean(t *testing.T) {
	t.Parallel()

	f, err := Load("./testdata/bignumber.yaml")
	require.NoError(t, err)
	assert.Equal(t, "big number matchers", f.Name)
	assert.Equal(t, "./testdata/bignumber.yaml", f.Path())
	require.Len(t, f.Cases, 12)

	reg, err := bigmatch.NewRegistry()
	require.NoError(t, err)

	report := &Report{}
	NewRunner(reg, nil).Run(context.Background(), f, report)

	for _, result := range report.Results {
		assert.True(t, result.Valid, "%s: expected %s, got %s (%s)",
			result.Case.Name, result.Case.Expect, result.Outcome, result.Message)
	}

	assert.True(t, report.OK())
	assert.Equal(t, 12, report.Passed)
}

func TestRun_WithoutPluginDiffers(t *testing.T) {
	t.Parallel()

	f, err := Load("./testdata/bignumber.yaml")
	require.NoError(t, err)

	report := &Report{}
	NewRunner(expect.NewRegistry(), nil).Run(context.Background(), f, report)

	assert.False(t, report.OK())
	assert.Positive(t, report.Failed)

	var buf bytes.Buffer
	report.Write(&buf, false)
	assert.Contains(t, buf.String(), "failed")
	assert.Contains(t, buf.String(), "scenario result:")
}

func TestReport_WriteVerbose(t *testing.T) {
	t.Parallel()

	report := &Report{}
	report.add(&Result{File: "a.yaml", Index: 0, Case: &Case{Name: "one", Expect: OutcomePass}, Outcome: OutcomePass, Valid: true})

	var buf bytes.Buffer
	report.Write(&buf, true)

	out := buf.String()
	assert.Contains(t, out, `case a.yaml:0 "one" ... `)
	assert.Contains(t, out, "1 passed; 0 failed")
}

func TestDecode_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "no cases", doc: "name: empty\n"},
		{name: "missing method", doc: "cases:\n  - subject: 1\n"},
		{name: "bad outcome", doc: "cases:\n  - method: equal\n    expect: maybe\n"},
		{name: "unknown type", doc: "cases:\n  - method: equal\n    subject: {type: complex, value: 1}\n"},
		{name: "list needs sequence", doc: "cases:\n  - method: equal\n    subject: {type: list, value: 1}\n"},
		{name: "scalar needs scalar", doc: "cases:\n  - method: equal\n    subject: {type: bigint, value: [1]}\n"},
	}

	for _, tt := range tests {

		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestDecode_Defaults(t *testing.T) {
	t.Parallel()

	f, err := Decode(strings.NewReader("cases:\n  - method: equal\n"))
	require.NoError(t, err)
	assert.Equal(t, OutcomePass, f.Cases[0].Expect)
	assert.Equal(t, "case 0", f.Cases[0].Name)
}

func resolveDoc(t *testing.T, doc string) any {
	t.Helper()

	f, err := Decode(strings.NewReader("data:\n  big: 123456789012345678901234567890\n  small: 7\ncases:\n  - method: equal\n    subject: " + doc + "\n"))
	require.NoError(t, err)

	v, err := f.Cases[0].Subject.Resolve(context.Background(), f.data)
	require.NoError(t, err)

	return v
}

func TestValue_Resolve(t *testing.T) {
	t.Parallel()

	huge, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	assert.Nil(t, resolveDoc(t, "null"))
	assert.Equal(t, true, resolveDoc(t, "true"))
	assert.Equal(t, 5, resolveDoc(t, "5"))
	assert.Equal(t, 2.5, resolveDoc(t, "2.5"))
	assert.Equal(t, "5", resolveDoc(t, `"5"`))
	assert.Equal(t, uint64(9), resolveDoc(t, "{type: uint, value: 9}"))
	assert.Equal(t, 0, huge.Cmp(resolveDoc(t, `{type: bigint, value: "123456789012345678901234567890"}`).(*big.Int)))
	assert.True(t, decimal.RequireFromString("1.25").Equal(resolveDoc(t, `{type: decimal, value: "1.25"}`).(decimal.Decimal)))
	assert.Equal(t, "12.5", resolveDoc(t, `{type: apd, value: "12.5"}`).(*apd.Decimal).String())
	assert.Equal(t, uint256.NewInt(42), resolveDoc(t, `{type: uint256, value: "42"}`))
	assert.Equal(t, []any{1, "a"}, resolveDoc(t, "[1, a]"))
	assert.Equal(t, map[string]any{"k": 1}, resolveDoc(t, "{k: 1}"))
	assert.Equal(t, map[string]any{"k": "v"}, resolveDoc(t, "{type: map, value: {k: v}}"))
	assert.True(t, math.IsInf(resolveDoc(t, "{type: float, value: .inf}").(float64), 1))

	fromQuery, ok := resolveDoc(t, "{type: query, value: .big}").(*big.Int)
	require.True(t, ok)
	assert.Equal(t, 0, huge.Cmp(fromQuery))
	assert.Equal(t, 7, resolveDoc(t, "{type: query, value: .small}"))
}

func TestValue_ResolveErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	_, err := Value{Type: TypeInt, Raw: "99999999999999999999"}.Resolve(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidValue)
	assert.Contains(t, err.Error(), "bigint")

	_, err = Value{Type: TypeBigInt, Raw: "1.5"}.Resolve(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Value{Type: TypeUint256, Raw: "abc"}.Resolve(ctx, nil)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = Value{Type: TypeQuery, Raw: ".missing[]"}.Resolve(ctx, map[string]any{"missing": []any{}})
	require.ErrorIs(t, err, ErrQueryNoResult)

	_, err = Value{Type: TypeQuery, Raw: ".[["}.Resolve(ctx, nil)
	require.Error(t, err)

	_, err = Value{Type: "complex"}.Resolve(ctx, nil)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestRun_LogsUnexpectedErrors(t *testing.T) {
	t.Parallel()

	f, err := Decode(strings.NewReader(`
name: errors
cases:
  - name: fraction
    subject: {type: bigint, value: "5"}
    method: equal
    args: [1.5]
  - name: expected fraction
    subject: {type: bigint, value: "5"}
    method: equal
    args: [1.5]
    expect: error
`))
	require.NoError(t, err)

	reg, err := bigmatch.NewRegistry()
	require.NoError(t, err)

	core, logs := observer.New(zapcore.DebugLevel)

	report := &Report{}
	NewRunner(reg, bmzap.NewFromZap(zap.New(core))).Run(context.Background(), f, report)

	require.Len(t, report.Results, 2)
	assert.Equal(t, OutcomeError, report.Results[0].Outcome)
	assert.False(t, report.Results[0].Valid)
	assert.True(t, report.Results[1].Valid)

	errored := logs.FilterMessage("case errored").All()
	require.Len(t, errored, 1)
	assert.Equal(t, zapcore.ErrorLevel, errored[0].Level)

	fields := errored[0].ContextMap()
	assert.Equal(t, "fraction", fields["case"])
	assert.Equal(t, "errors", fields["scenario"])
	assert.Contains(t, fields["error"], "fractional component")
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	t.Parallel()

	f, err := Load("./testdata/bignumber.yaml")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := &Report{}
	NewRunner(expect.NewRegistry(), nil).Run(ctx, f, report)
	assert.Empty(t, report.Results)
}
