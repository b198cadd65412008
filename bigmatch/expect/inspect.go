package expect

import "github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"

// Inspect renders v for the subject position of a message. Strings are
// quoted so "5" and 5 read differently.
func Inspect(v any) string {
	if s, ok := v.(string); ok {
		return "'" + s + "'"
	}

	return bignum.Format(v)
}

// Display renders v the way it appears as a matcher argument.
func Display(v any) string {
	return bignum.Format(v)
}
