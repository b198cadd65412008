package log

import (
	"context"
	"fmt"
	"math/big"
	"strings"
)

// Logger receives the structured entries emitted by registries, matchers and
// scenario runs.
type Logger interface {
	Log(ctx context.Context, level Level, msg string, fields ...Field)
	With(fields ...Field) Logger
	WithGroup(name string) Logger
	Enabled(level Level) bool
	Sync(ctx context.Context) error
}

// Level is a verbosity ceiling. A logger set to a level emits entries at that
// level and at every more severe one, so LevelError is the quietest.
type Level uint8

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var levelNames = [...]string{
	LevelError: "error",
	LevelWarn:  "warn",
	LevelInfo:  "info",
	LevelDebug: "debug",
}

func (level Level) String() string {
	if int(level) < len(levelNames) {
		return levelNames[level]
	}

	return "unknown"
}

// ParseLevel reads a level name as accepted by --log-level and
// BIGMATCH_LOG_LEVEL. Matching ignores case and surrounding spaces, and
// "warning" is accepted for LevelWarn.
func ParseLevel(name string) (Level, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "warning" {
		return LevelWarn, nil
	}

	for level, known := range levelNames {
		if normalized == known {
			return Level(level), nil
		}
	}

	return LevelError, fmt.Errorf("unknown log level %q (want one of %s)", name, strings.Join(levelNames[:], ", "))
}

// Field is one key/value attribute of an entry. Backends decide how to encode
// Value; strings and canonical integers get dedicated encodings.
type Field struct {
	Key   string
	Value any
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// BigInt carries a canonical operand. The value is kept as is, so it must not
// be mutated after logging.
func BigInt(key string, value *big.Int) Field {
	return Field{Key: key, Value: value}
}

// Err creates the conventional `error` field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
