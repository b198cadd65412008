package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/assert"
	constant "github.com/LerianStudio/lib-bigmatch/bigmatch/constants"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/runtime"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// Runner executes scenario cases against a registry.
type Runner struct {
	reg    *expect.Registry
	logger log.Logger
}

// Result is the outcome of one case.
type Result struct {
	File    string
	Index   int
	Case    *Case
	Outcome Outcome
	Message string
	Err     error
	// Valid reports whether the outcome matched the case expectation.
	Valid bool
}

// Report aggregates results.
type Report struct {
	Results []*Result
	Passed  int
	Failed  int
}

// NewRunner creates a Runner. The registry should already carry any plugins
// the cases rely on.
func NewRunner(reg *expect.Registry, logger log.Logger) *Runner {
	return &Runner{reg: reg, logger: log.OrNop(logger)}
}

// Run executes every case of f and appends the results to report.
func (r *Runner) Run(ctx context.Context, f *File, report *Report) {
	logger := r.logger.With(log.String("scenario", f.Name))

	for idx, c := range f.Cases {
		if err := ctx.Err(); err != nil {
			logger.Log(ctx, log.LevelWarn, "scenario run cancelled", log.Err(err))
			return
		}

		result := r.runCase(ctx, logger, f, idx, c)

		logger.Log(ctx, log.LevelDebug, "case finished",
			log.String("case", c.Name),
			log.String("outcome", string(result.Outcome)),
			log.Bool("valid", result.Valid),
		)

		report.add(result)
	}
}

func (r *Runner) runCase(ctx context.Context, logger log.Logger, f *File, idx int, c *Case) *Result {
	result := &Result{File: f.path, Index: idx, Case: c}

	err := r.evaluate(ctx, f, c)
	result.Err = err
	result.Outcome = classify(err)

	if err != nil {
		result.Message = err.Error()

		var aerr *assert.AssertionError
		if errors.As(err, &aerr) {
			result.Message = aerr.Message
		}
	}

	result.Valid = result.Outcome == c.Expect &&
		(c.Message == "" || strings.Contains(result.Message, c.Message))

	if result.Outcome == OutcomeError && !result.Valid {
		log.SafeError(logger.With(log.String("case", c.Name)), ctx, "case errored", err, runtime.IsProductionMode())
	}

	return result
}

func (r *Runner) evaluate(ctx context.Context, f *File, c *Case) error {
	subject, err := c.Subject.Resolve(ctx, f.data)
	if err != nil {
		return fmt.Errorf("subject: %w", err)
	}

	args := make([]any, 0, len(c.Args))

	for i, v := range c.Args {
		resolved, err := v.Resolve(ctx, f.data)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}

		args = append(args, resolved)
	}

	a := expect.NewAssertion(ctx, r.reg, subject)
	if c.Not {
		a.SetFlag(constant.FlagNegate, true)
	}

	if c.Length {
		if err := r.reg.CallChain(a, expect.MethodLength); err != nil {
			return err
		}
	}

	if reg, ok := r.reg.Lookup(c.Method); ok && reg.Chainable() {
		if err := r.reg.CallChain(a, c.Method); err != nil || len(args) == 0 {
			return err
		}
	}

	return r.reg.Call(a, c.Method, args...)
}

func classify(err error) Outcome {
	switch {
	case err == nil:
		return OutcomePass
	case errors.Is(err, assert.ErrAssertionFailed):
		return OutcomeFail
	default:
		return OutcomeError
	}
}

func (rep *Report) add(result *Result) {
	rep.Results = append(rep.Results, result)

	if result.Valid {
		rep.Passed++
	} else {
		rep.Failed++
	}
}

// OK reports whether every case matched its expectation.
func (rep *Report) OK() bool { return rep.Failed == 0 }

// Write prints the report. verbose lists every case, otherwise only
// mismatches are listed.
func (rep *Report) Write(w io.Writer, verbose bool) {
	for _, result := range rep.Results {
		if result.Valid && !verbose {
			continue
		}

		status := successStyle.Render("ok")
		if !result.Valid {
			status = fmt.Sprintf("%s > expected %s, got %s: %s",
				failedStyle.Render("failed"), result.Case.Expect, result.Outcome, result.Message)
		}

		fmt.Fprintf(w, "case %s:%d %q ... %s\n", result.File, result.Index, result.Case.Name, status)
	}

	summary := successStyle.Render("ok")
	if !rep.OK() {
		summary = failedStyle.Render("FAILED")
	}

	fmt.Fprintf(w, "\nscenario result: %s. %d passed; %d failed\n", summary, rep.Passed, rep.Failed)
}
