package assert

import "errors"

var (
	// ErrAssertionFailed is the sentinel error for failed assertions.
	ErrAssertionFailed = errors.New("assertion failed")
	// ErrConfiguration is the sentinel error for misused matchers.
	ErrConfiguration = errors.New("invalid matcher configuration")
)

// AssertionError represents a failed assertion with rich context.
type AssertionError struct {
	ID        string
	Assertion string
	Message   string
	Component string
	Operation string
	Details   string
	Expected  any
	Actual    any
}

// Error returns the formatted assertion failure message.
func (entry *AssertionError) Error() string {
	if entry == nil {
		return ErrAssertionFailed.Error()
	}

	if entry.Details == "" {
		return "assertion failed: " + entry.Message
	}

	return "assertion failed: " + entry.Message + "\n" + entry.Details
}

// Unwrap returns the sentinel assertion error for errors.Is.
func (entry *AssertionError) Unwrap() error {
	return ErrAssertionFailed
}

// ConfigurationError reports a matcher invoked with arguments it cannot work
// with. It is not an assertion outcome.
type ConfigurationError struct {
	Matcher string
	Message string
}

// Error returns the configuration failure message.
func (e *ConfigurationError) Error() string {
	if e == nil {
		return ErrConfiguration.Error()
	}

	if e.Matcher == "" {
		return e.Message
	}

	return e.Matcher + ": " + e.Message
}

// Unwrap returns ErrConfiguration for errors.Is.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}
