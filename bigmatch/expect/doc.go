// Package expect is a small fluent assertion framework with a replaceable
// method table.
//
// Every matcher is a Method looked up by name in a Registry at call time. A
// Registry starts with the built-in implementations of equal, above, below,
// least, most, length, within and closeTo (plus their aliases). Plugins
// decorate entries with Overwrite and OverwriteChainable: the builder receives
// the current implementation and returns a wrapper that may call it.
//
//	reg := expect.NewRegistry()
//	err := reg.Expect(ctx, []int{1, 2, 3}).Length().Above(2).Err()
//
// Per-expression state (subject, negation, length mode) lives in an *Assertion
// that is passed explicitly to every Method.
package expect
