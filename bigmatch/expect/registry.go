package expect

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/assert"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"github.com/LerianStudio/lib-bigmatch/bigmatch/opentelemetry/metrics"
)

var (
	// ErrUnknownMethod is returned when overwriting or calling a method that
	// was never defined.
	ErrUnknownMethod = errors.New("unknown assertion method")
	// ErrNotChainable is returned when a chain form is requested for a method
	// defined without one.
	ErrNotChainable = errors.New("assertion method is not chainable")
	// ErrNilRegistry is returned by Registry methods called on a nil receiver.
	ErrNilRegistry = errors.New("registry is nil")
	// ErrNilBuilder is returned when Overwrite is given a nil builder.
	ErrNilBuilder = errors.New("method builder is nil")
)

// Method is the call form of a matcher.
type Method func(a *Assertion, args ...any) error

// ChainFunc is the property form of a chainable matcher, run when it is used
// without arguments.
type ChainFunc func(a *Assertion) error

// Builder wraps the current implementation of a method.
type Builder func(original Method) Method

// ChainBuilder wraps the current property form of a chainable method.
type ChainBuilder func(original ChainFunc) ChainFunc

// Registration records the base and current implementations of one method.
type Registration struct {
	Name          string
	Original      Method
	Wrapped       Method
	OriginalChain ChainFunc
	WrappedChain  ChainFunc
}

// Chainable reports whether the method has a property form.
func (r Registration) Chainable() bool { return r.WrappedChain != nil }

// Registry is a method table shared by every expectation created from it.
type Registry struct {
	mu          sync.RWMutex
	methods     map[string]*Registration
	overwritten map[string]bool

	pluginMu sync.Mutex
	plugins  map[string]struct{}

	logger           log.Logger
	metrics          *metrics.MetricsFactory
	assertionMetrics *assert.AssertionMetrics
	component        string
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used by the registry and its assertions.
func WithLogger(logger log.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetricsFactory sets the factory used for failure and dispatch counters.
func WithMetricsFactory(factory *metrics.MetricsFactory) Option {
	return func(r *Registry) {
		if factory != nil {
			r.metrics = factory
		}
	}
}

// WithComponent sets the component label attached to failures.
func WithComponent(component string) Option {
	return func(r *Registry) {
		r.component = component
	}
}

// NewRegistry returns a registry holding the built-in matchers.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		methods:     make(map[string]*Registration),
		overwritten: make(map[string]bool),
		plugins:     make(map[string]struct{}),
		logger:      log.NewNop(),
		metrics:     metrics.NewNopFactory(),
		component:   "expect",
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	r.assertionMetrics = assert.NewAssertionMetrics(r.metrics)

	registerBuiltins(r)

	return r
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry, created on first use.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// That starts an expectation on the default registry.
func That(ctx context.Context, subject any) *Expectation {
	return Default().Expect(ctx, subject)
}

// Expect starts an expectation on subject.
func (r *Registry) Expect(ctx context.Context, subject any) *Expectation {
	if r == nil {
		return &Expectation{err: ErrNilRegistry}
	}

	return &Expectation{a: newAssertion(ctx, r, subject)}
}

// Logger returns the registry logger.
func (r *Registry) Logger() log.Logger {
	if r == nil {
		return log.NewNop()
	}

	return r.logger
}

// Metrics returns the registry metrics factory.
func (r *Registry) Metrics() *metrics.MetricsFactory {
	if r == nil {
		return metrics.NewNopFactory()
	}

	return r.metrics
}

// Define adds or replaces the base implementation of a method. Defining a
// name discards any wrappers installed on it.
func (r *Registry) Define(name string, m Method) {
	r.define(name, m, nil)
}

// DefineChainable adds or replaces a method that also has a property form.
func (r *Registry) DefineChainable(name string, m Method, chain ChainFunc) {
	r.define(name, m, chain)
}

func (r *Registry) define(name string, m Method, chain ChainFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.methods[name] = &Registration{
		Name:          name,
		Original:      m,
		Wrapped:       m,
		OriginalChain: chain,
		WrappedChain:  chain,
	}
	delete(r.overwritten, name)
}

// Overwrite replaces the call form of name with build(current).
func (r *Registry) Overwrite(name string, build Builder) error {
	if r == nil {
		return ErrNilRegistry
	}

	if build == nil {
		return fmt.Errorf("overwrite %q: %w", name, ErrNilBuilder)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.methods[name]
	if !ok {
		return fmt.Errorf("overwrite %q: %w", name, ErrUnknownMethod)
	}

	wrapped := build(reg.Wrapped)
	if wrapped == nil {
		return fmt.Errorf("overwrite %q: %w", name, ErrNilBuilder)
	}

	reg.Wrapped = wrapped
	r.overwritten[name] = true

	return nil
}

// OverwriteChainable replaces both forms of a chainable method.
func (r *Registry) OverwriteChainable(name string, build Builder, buildChain ChainBuilder) error {
	if r == nil {
		return ErrNilRegistry
	}

	if build == nil || buildChain == nil {
		return fmt.Errorf("overwrite chainable %q: %w", name, ErrNilBuilder)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg, ok := r.methods[name]
	if !ok {
		return fmt.Errorf("overwrite chainable %q: %w", name, ErrUnknownMethod)
	}

	if reg.WrappedChain == nil {
		return fmt.Errorf("overwrite chainable %q: %w", name, ErrNotChainable)
	}

	wrapped, wrappedChain := build(reg.Wrapped), buildChain(reg.WrappedChain)
	if wrapped == nil || wrappedChain == nil {
		return fmt.Errorf("overwrite chainable %q: %w", name, ErrNilBuilder)
	}

	reg.Wrapped, reg.WrappedChain = wrapped, wrappedChain
	r.overwritten[name] = true

	return nil
}

// Use runs install once per plugin name. Later calls with the same name are
// no-ops, so wrappers never stack. A failed install may be retried.
func (r *Registry) Use(plugin string, install func(*Registry) error) error {
	if r == nil {
		return ErrNilRegistry
	}

	r.pluginMu.Lock()
	defer r.pluginMu.Unlock()

	if _, done := r.plugins[plugin]; done {
		r.logger.Log(context.Background(), log.LevelDebug, "plugin already installed", log.String("plugin", plugin))
		return nil
	}

	if err := install(r); err != nil {
		return fmt.Errorf("install plugin %q: %w", plugin, err)
	}

	r.plugins[plugin] = struct{}{}

	r.logger.Log(context.Background(), log.LevelInfo, "plugin installed", log.String("plugin", plugin))

	return nil
}

// Installed reports whether plugin was installed with Use.
func (r *Registry) Installed(plugin string) bool {
	if r == nil {
		return false
	}

	r.pluginMu.Lock()
	defer r.pluginMu.Unlock()

	_, ok := r.plugins[plugin]

	return ok
}

// Lookup returns a copy of the registration for name.
func (r *Registry) Lookup(name string) (Registration, bool) {
	if r == nil {
		return Registration{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	reg, ok := r.methods[name]
	if !ok {
		return Registration{}, false
	}

	return *reg, true
}

// IsOverwritten reports whether a plugin replaced name.
func (r *Registry) IsOverwritten(name string) bool {
	if r == nil {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.overwritten[name]
}

// Names returns the defined method names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.methods))
	for name := range r.methods {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Call dispatches the call form of name. The method runs outside the lock.
func (r *Registry) Call(a *Assertion, name string, args ...any) error {
	if r == nil {
		return ErrNilRegistry
	}

	r.mu.RLock()
	reg, ok := r.methods[name]

	var m Method
	if ok {
		m = reg.Wrapped
	}
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("call %q: %w", name, ErrUnknownMethod)
	}

	return m(a, args...)
}

// CallChain dispatches the property form of name.
func (r *Registry) CallChain(a *Assertion, name string) error {
	if r == nil {
		return ErrNilRegistry
	}

	r.mu.RLock()
	reg, ok := r.methods[name]

	var chain ChainFunc
	if ok {
		chain = reg.WrappedChain
	}
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("chain %q: %w", name, ErrUnknownMethod)
	}

	if chain == nil {
		return fmt.Errorf("chain %q: %w", name, ErrNotChainable)
	}

	return chain(a)
}
