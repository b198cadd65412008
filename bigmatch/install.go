package bigmatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/expect"
)

// PluginName identifies the big-number overrides in Registry.Use.
const PluginName = "bigmatch/bignumber"

// override is one row of the installation table.
type override struct {
	name  string
	build expect.Builder
	chain expect.ChainBuilder
}

func overrides() []override {
	table := make([]override, 0, 20)

	for _, c := range comparisons() {
		for _, name := range c.methods {
			table = append(table, override{name: name, build: overwriteComparison(name, c)})
		}
	}

	for _, name := range []string{expect.MethodLength, expect.MethodLengthOf} {
		table = append(table, override{name: name, build: overwriteLength(name), chain: overwriteLengthChain})
	}

	table = append(table, override{name: expect.MethodWithin, build: overwriteWithin(expect.MethodWithin)})

	for _, name := range []string{expect.MethodCloseTo, expect.MethodApproximately} {
		table = append(table, override{name: name, build: overwriteCloseTo(name)})
	}

	return table
}

// Install adds big-number support to reg. Repeated calls are no-ops.
func Install(reg *expect.Registry) error {
	if reg == nil {
		return expect.ErrNilRegistry
	}

	return reg.Use(PluginName, install)
}

func install(reg *expect.Registry) error {
	for _, o := range overrides() {
		var err error

		if o.chain != nil {
			err = reg.OverwriteChainable(o.name, o.build, o.chain)
		} else {
			err = reg.Overwrite(o.name, o.build)
		}

		if err != nil {
			return fmt.Errorf("overwrite %s: %w", o.name, err)
		}
	}

	return nil
}

// InstallDefault installs big-number support on expect.Default().
func InstallDefault() error {
	return Install(expect.Default())
}

// NewRegistry returns a fresh registry with big-number support installed.
func NewRegistry(opts ...expect.Option) (*expect.Registry, error) {
	reg := expect.NewRegistry(opts...)
	if err := Install(reg); err != nil {
		return nil, err
	}

	return reg, nil
}

var (
	defaultInstallOnce sync.Once
	errDefaultInstall  error
)

// That starts an expectation on the default registry, installing big-number
// support on first use.
func That(ctx context.Context, subject any) *expect.Expectation {
	defaultInstallOnce.Do(func() {
		errDefaultInstall = InstallDefault()
	})

	if errDefaultInstall != nil {
		panic(fmt.Sprintf("bigmatch: install default registry: %v", errDefaultInstall))
	}

	return expect.That(ctx, subject)
}
