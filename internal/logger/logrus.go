package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/leandrodaf/miditime/sdk/contracts"
	"github.com/sirupsen/logrus"
)

const defaultOwner = "miditime"

// StandardLogger implements contracts.Logger on top of logrus with a
// human-readable text format.
type StandardLogger struct {
	logger *logrus.Logger

	mu   sync.Mutex // guards file; logrus serialises writes against SetOutput itself
	file *os.File
}

// ownerFormatter prefixes every message with the owning component.
type ownerFormatter struct {
	owner string
	lf    logrus.Formatter
}

// Format satisfies the logrus.Formatter interface.
func (f *ownerFormatter) Format(e *logrus.Entry) ([]byte, error) {
	e.Message = fmt.Sprintf("[%s] %s", f.owner, e.Message)
	return f.lf.Format(e)
}

// NewStandardLogger creates a text logger writing to stderr.
func NewStandardLogger() contracts.Logger {
	return NewStandardLoggerFor(defaultOwner, os.Stderr)
}

// NewStandardLoggerFor creates a text logger tagged with owner and writing to out.
func NewStandardLoggerFor(owner string, out io.Writer) *StandardLogger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&ownerFormatter{
		owner: owner,
		lf: &logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.StampMilli,
		},
	})
	return &StandardLogger{logger: l}
}

func (s *StandardLogger) Info(msg string, fields ...contracts.Field) {
	s.entry(fields).Info(msg)
}

func (s *StandardLogger) Error(msg string, fields ...contracts.Field) {
	s.entry(fields).Error(msg)
}

func (s *StandardLogger) Debug(msg string, fields ...contracts.Field) {
	s.entry(fields).Debug(msg)
}

func (s *StandardLogger) Warn(msg string, fields ...contracts.Field) {
	s.entry(fields).Warn(msg)
}

// Fatal logs at FATAL level and exits the process.
func (s *StandardLogger) Fatal(msg string, fields ...contracts.Field) {
	s.entry(fields).Fatal(msg)
}

func (s *StandardLogger) Field() contracts.Field {
	return &field{}
}

func (s *StandardLogger) SetLevel(level contracts.LogLevel) {
	s.logger.SetLevel(toLogrusLevel(level))
}

// SetDestination switches output between stderr and an append-only file.
func (s *StandardLogger) SetDestination(dest contracts.LogDestination, filePath ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch dest {
	case contracts.ConsoleLog:
		s.logger.SetOutput(os.Stderr)
		return s.closeFile()
	case contracts.FileLog:
		if len(filePath) == 0 || filePath[0] == "" {
			return fmt.Errorf("file destination requires a path")
		}
		f, err := os.OpenFile(filePath[0], os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		s.logger.SetOutput(f)
		if err := s.closeFile(); err != nil {
			return err
		}
		s.file = f
		return nil
	default:
		return fmt.Errorf("unknown log destination %q", dest)
	}
}

// closeFile closes the current log file. Call only when holding mu.
func (s *StandardLogger) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

func (s *StandardLogger) entry(fields []contracts.Field) *logrus.Entry {
	data := make(logrus.Fields, len(fields))
	collect(fields, func(key string, value interface{}) {
		data[key] = value
	})
	return s.logger.WithFields(data)
}

func toLogrusLevel(level contracts.LogLevel) logrus.Level {
	switch level {
	case contracts.DebugLevel:
		return logrus.DebugLevel
	case contracts.WarnLevel:
		return logrus.WarnLevel
	case contracts.ErrorLevel:
		return logrus.ErrorLevel
	case contracts.FatalLevel:
		return logrus.FatalLevel
	default:
		return logrus.InfoLevel
	}
}
