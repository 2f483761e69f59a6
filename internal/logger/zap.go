package logger

import (
	"fmt"
	"sync/atomic"

	"github.com/leandrodaf/miditime/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLogger implements contracts.Logger on top of Uber's zap.
// It is safe to share between goroutines, including while SetDestination runs.
type ZapLogger struct {
	logger atomic.Pointer[zap.Logger]
	level  zap.AtomicLevel
}

func newZap(l *zap.Logger, level zap.AtomicLevel) *ZapLogger {
	z := &ZapLogger{level: level}
	z.logger.Store(l)
	return z
}

// NewZapLogger creates a production zap logger writing JSON to stderr.
func NewZapLogger() contracts.Logger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}
	return newZap(l, level)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() contracts.Logger {
	return newZap(zap.NewNop(), zap.NewAtomicLevel())
}

// NewZapLoggerWithCore wraps an existing core, such as a zaptest observer,
// keeping level control in the wrapper.
func NewZapLoggerWithCore(core zapcore.Core) *ZapLogger {
	level := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	return newZap(zap.New(&leveledCore{Core: core, level: level}), level)
}

// Info logs a message at the INFO level
func (z *ZapLogger) Info(msg string, fields ...contracts.Field) {
	z.logger.Load().Info(msg, zapFields(fields)...)
}

// Error logs a message at the ERROR level
func (z *ZapLogger) Error(msg string, fields ...contracts.Field) {
	z.logger.Load().Error(msg, zapFields(fields)...)
}

// Debug logs a message at the DEBUG level
func (z *ZapLogger) Debug(msg string, fields ...contracts.Field) {
	z.logger.Load().Debug(msg, zapFields(fields)...)
}

// Warn logs a message at the WARN level
func (z *ZapLogger) Warn(msg string, fields ...contracts.Field) {
	z.logger.Load().Warn(msg, zapFields(fields)...)
}

// Fatal logs a message at the FATAL level and terminates the application
func (z *ZapLogger) Fatal(msg string, fields ...contracts.Field) {
	z.logger.Load().Fatal(msg, zapFields(fields)...)
}

// Field returns a new instance of Field
func (z *ZapLogger) Field() contracts.Field {
	return &field{}
}

// SetLevel sets the logging level
func (z *ZapLogger) SetLevel(level contracts.LogLevel) {
	z.level.SetLevel(toZapLevel(level))
}

// SetDestination rebuilds the logger so it writes to the console or to filePath.
func (z *ZapLogger) SetDestination(dest contracts.LogDestination, filePath ...string) error {
	cfg := zap.NewProductionConfig()
	cfg.Level = z.level
	switch dest {
	case contracts.ConsoleLog:
		cfg.OutputPaths = []string{"stderr"}
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			return fmt.Errorf("file destination requires a path")
		}
		cfg.OutputPaths = []string{filePath[0]}
	default:
		return fmt.Errorf("unknown log destination %q", dest)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build zap logger: %w", err)
	}
	if old := z.logger.Swap(l); old != nil {
		_ = old.Sync()
	}
	return nil
}

func zapFields(fields []contracts.Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	collect(fields, func(key string, value interface{}) {
		if err, ok := value.(error); ok {
			out = append(out, zap.NamedError(key, err))
			return
		}
		out = append(out, zap.Any(key, value))
	})
	return out
}

func toZapLevel(level contracts.LogLevel) zapcore.Level {
	switch level {
	case contracts.DebugLevel:
		return zapcore.DebugLevel
	case contracts.WarnLevel:
		return zapcore.WarnLevel
	case contracts.ErrorLevel:
		return zapcore.ErrorLevel
	case contracts.FatalLevel:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// leveledCore gates an arbitrary core behind an atomic level.
type leveledCore struct {
	zapcore.Core
	level zap.AtomicLevel
}

func (c *leveledCore) Enabled(l zapcore.Level) bool {
	return c.level.Enabled(l) && c.Core.Enabled(l)
}

func (c *leveledCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if !c.level.Enabled(e.Level) {
		return ce
	}
	return c.Core.Check(e, ce)
}

func (c *leveledCore) With(fields []zapcore.Field) zapcore.Core {
	return &leveledCore{Core: c.Core.With(fields), level: c.level}
}
