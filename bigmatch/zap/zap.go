package zap

import (
	"context"
	"math/big"

	"github.com/LerianStudio/lib-bigmatch/bigmatch/bignum"
	logpkg "github.com/LerianStudio/lib-bigmatch/bigmatch/log"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger writes matcher, registry and scenario entries to zap.
type Logger struct {
	base *zap.Logger
}

var _ logpkg.Logger = (*Logger)(nil)

// NewFromZap wraps an existing zap logger, such as one built on a test
// observer core. A nil logger yields a no-op Logger.
func NewFromZap(logger *zap.Logger) *Logger {
	return &Logger{base: logger}
}

func (l *Logger) logger() *zap.Logger {
	if l == nil || l.base == nil {
		return zap.NewNop()
	}

	return l.base
}

// Log writes one entry. When ctx carries a sampled span, trace_id and span_id
// are attached so a failed assertion can be found from the test's trace.
func (l *Logger) Log(ctx context.Context, level logpkg.Level, msg string, fields ...logpkg.Field) {
	ce := l.logger().Check(zapLevel(level), sanitizeString(msg))
	if ce == nil {
		return
	}

	encoded := encodeFields(fields)

	if ctx != nil {
		if sc := trace.SpanFromContext(ctx).SpanContext(); sc.IsValid() {
			encoded = append(encoded,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	ce.Write(encoded...)
}

//nolint:ireturn
func (l *Logger) With(fields ...logpkg.Field) logpkg.Logger {
	return &Logger{base: l.logger().With(encodeFields(fields)...)}
}

// WithGroup nests the fields of later entries under name.
//
//nolint:ireturn
func (l *Logger) WithGroup(name string) logpkg.Logger {
	return &Logger{base: l.logger().With(zap.Namespace(name))}
}

func (l *Logger) Enabled(level logpkg.Level) bool {
	return l.logger().Core().Enabled(zapLevel(level))
}

// Sync flushes buffered entries. It gives up when ctx is done, since some
// sinks block on flush.
func (l *Logger) Sync(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	done := make(chan error, 1)

	go func() { done <- l.logger().Sync() }()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

func zapLevel(level logpkg.Level) zapcore.Level {
	switch level {
	case logpkg.LevelError:
		return zapcore.ErrorLevel
	case logpkg.LevelWarn:
		return zapcore.WarnLevel
	case logpkg.LevelDebug:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

func encodeFields(fields []logpkg.Field) []zap.Field {
	encoded := make([]zap.Field, len(fields))
	for i, f := range fields {
		encoded[i] = encodeField(f)
	}

	return encoded
}

// encodeField keeps operands readable. Canonical integers are rendered in
// decimal through their Stringer, and wrapped big numbers are written in plain
// notation instead of their struct layout. Strings are escaped since operands
// come from user input.
func encodeField(f logpkg.Field) zap.Field {
	switch v := f.Value.(type) {
	case string:
		return zap.String(f.Key, sanitizeString(v))
	case bool:
		return zap.Bool(f.Key, v)
	case *big.Int:
		return zap.Stringer(f.Key, v)
	case error:
		return zap.NamedError(f.Key, v)
	}

	if bignum.IsBigNumber(f.Value) {
		return zap.String(f.Key, bignum.Format(f.Value))
	}

	return zap.Any(f.Key, f.Value)
}
