package logger

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/leandrodaf/miditime/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_LevelsAndFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewZapLoggerWithCore(core)

	l.Debug("hidden")
	l.Info("tick", l.Field().Uint64("elapsed", 42), l.Field().Error("error", errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "tick", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, uint64(42), ctx["elapsed"])
	assert.Equal(t, "boom", ctx["error"])

	l.SetLevel(contracts.DebugLevel)
	l.Debug("visible")
	assert.Equal(t, 1, logs.FilterMessage("visible").Len())

	l.SetLevel(contracts.ErrorLevel)
	l.Warn("suppressed")
	assert.Equal(t, 0, logs.FilterMessage("suppressed").Len())
}

func TestZapLogger_SetDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zap.log")
	l := NewZapLogger()

	require.NoError(t, l.SetDestination(contracts.FileLog, path))
	l.Info("written to file")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "written to file")

	assert.Error(t, l.SetDestination(contracts.FileLog))
	assert.Error(t, l.SetDestination("syslog"))
}

func TestStandardLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewStandardLoggerFor("queue", &buf)

	l.Debug("hidden")
	l.Warn("dropping MIDI event", l.Field().Int("capacity", 2))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[queue] dropping MIDI event")
	assert.Contains(t, out, "capacity=2")

	l.SetLevel(contracts.DebugLevel)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestStandardLogger_SetDestinationFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "std.log")
	l := NewStandardLoggerFor("timer", &bytes.Buffer{})

	require.NoError(t, l.SetDestination(contracts.FileLog, path))
	l.Info("to file")
	require.NoError(t, l.SetDestination(contracts.ConsoleLog))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[timer] to file")
}

func TestForeignFieldsAreIgnored(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewZapLoggerWithCore(core)

	l.Info("msg", nil, l.Field().String("", "no key"), l.Field().Bool("ok", true))

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, map[string]interface{}{"ok": true}, logs.All()[0].ContextMap())
}

// logUntilClosed logs from a separate goroutine until stop is closed.
func logUntilClosed(l contracts.Logger, stop <-chan struct{}, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
				l.Debug("tick", l.Field().Int("n", 1))
				l.Error("poll failed", l.Field().Error("error", errors.New("boom")))
			}
		}
	}()
}

func TestZapLogger_SetDestinationWhileLogging(t *testing.T) {
	dir := t.TempDir()
	l := NewZapLogger()
	require.NoError(t, l.SetDestination(contracts.FileLog, filepath.Join(dir, "first.log")))

	var wg sync.WaitGroup
	stop := make(chan struct{})
	logUntilClosed(l, stop, &wg)
	logUntilClosed(l, stop, &wg)

	for i := 0; i < 20; i++ {
		require.NoError(t, l.SetDestination(contracts.FileLog, filepath.Join(dir, fmt.Sprintf("zap-%d.log", i))))
	}
	close(stop)
	wg.Wait()

	l.Info("after switching")
	data, err := os.ReadFile(filepath.Join(dir, "zap-19.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "after switching")
}

func TestStandardLogger_SetDestinationWhileLogging(t *testing.T) {
	dir := t.TempDir()
	l := NewStandardLoggerFor("poller", &bytes.Buffer{})
	t.Cleanup(func() { _ = l.SetDestination(contracts.ConsoleLog) })

	var wg sync.WaitGroup
	stop := make(chan struct{})
	logUntilClosed(l, stop, &wg)

	var switchers sync.WaitGroup
	for g := 0; g < 2; g++ {
		switchers.Add(1)
		go func(g int) {
			defer switchers.Done()
			for i := 0; i < 10; i++ {
				assert.NoError(t, l.SetDestination(contracts.FileLog, filepath.Join(dir, fmt.Sprintf("std-%d-%d.log", g, i))))
			}
		}(g)
	}
	switchers.Wait()
	close(stop)
	wg.Wait()

	l.Info("after switching")
	require.NoError(t, l.SetDestination(contracts.ConsoleLog))
}
