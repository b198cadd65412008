package zap

import "strings"

// controlCharReplacer escapes control characters that can be used for log injection (CWE-117).
// Assertion messages embed raw operand text, so a numeric string carrying a
// newline must not forge a second log entry in console encoders.
var controlCharReplacer = strings.NewReplacer(
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

func sanitizeString(s string) string {
	return controlCharReplacer.Replace(s)
}
