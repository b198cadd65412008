package constant

// Assertion flag keys understood by the expect package.
const (
	// FlagObject holds the subject under test.
	FlagObject = "object"
	// FlagNegate is set by Not().
	FlagNegate = "negate"
	// FlagDoLength is set by the property form of length/lengthOf.
	FlagDoLength = "doLength"
	// FlagMessage is an optional user prefix for failure messages.
	FlagMessage = "message"
)

// Environment variables read by lib-bigmatch.
const (
	// EnvEnvironment is the general deployment environment name.
	EnvEnvironment = "ENV"
	// EnvGoEnvironment is the Go-specific deployment environment name.
	EnvGoEnvironment = "GO_ENV"
	// EnvBigmatchEnvironment selects the logger profile of the bigmatch command.
	EnvBigmatchEnvironment = "BIGMATCH_ENV"
	// EnvBigmatchLogLevel overrides the log level of the bigmatch command.
	EnvBigmatchLogLevel = "BIGMATCH_LOG_LEVEL"
)
