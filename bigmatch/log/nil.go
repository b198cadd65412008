package log

import "context"

// discard drops every entry. It backs registries and runners built without a
// logger.
type discard struct{}

var nop Logger = discard{}

// NewNop returns the shared logger that drops everything.
//
//nolint:ireturn
func NewNop() Logger { return nop }

// OrNop returns logger, or NewNop() when logger is nil.
//
//nolint:ireturn
func OrNop(logger Logger) Logger {
	if logger == nil {
		return nop
	}

	return logger
}

func (discard) Log(context.Context, Level, string, ...Field) {}

//nolint:ireturn
func (d discard) With(...Field) Logger { return d }

//nolint:ireturn
func (d discard) WithGroup(string) Logger { return d }

func (discard) Enabled(Level) bool { return false }

func (discard) Sync(context.Context) error { return nil }
