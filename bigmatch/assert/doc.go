// Package assert is the structured pass/fail primitive behind every matcher.
//
// An Asserter turns an outcome plus a pair of messages into either nil or an
// *AssertionError, honouring negation. Failures are logged, counted through the
// assertion_failed_total metric and recorded as an "assertion.failed" event on
// the span carried by the context.
//
// Matcher misuse, such as a missing tolerance, is reported separately as a
// *ConfigurationError and never depends on negation.
package assert
