// Package debug provides conditional debug logging for wt.
//
// Debug logging is enabled by setting the WT_DEBUG environment variable:
//
//	WT_DEBUG=1 wt cloud --data reviews.db
//
// When enabled, messages go to stderr through a zap development logger.
// When disabled (default), every function is a no-op backed by zap.NewNop.
//
//	debug.Log("placed %d words", n)
//	defer debug.LogEnterExit("layoutTree")()
//	debug.Logger().Info("fetch", zap.String("word", w))
package debug

import (
	"os"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop()
	sugar   = logger.Sugar()
)

func init() {
	if os.Getenv("WT_DEBUG") != "" {
		SetEnabled(true)
	}
}

func newDevLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000000")
	cfg.EncoderConfig.EncodeCaller = nil
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l.Named("wt")
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// SetEnabled switches debug logging on or off.
func SetEnabled(e bool) {
	mu.Lock()
	defer mu.Unlock()
	enabled = e
	if e {
		logger = newDevLogger()
	} else {
		_ = logger.Sync()
		logger = zap.NewNop()
	}
	sugar = logger.Sugar()
}

// SetLogger installs l as the debug logger and enables logging. Tests use
// this with zaptest or observer loggers.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	enabled = true
	logger = l
	sugar = l.Sugar()
}

// Logger returns the structured logger. It is a no-op logger when debug
// logging is disabled.
func Logger() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Log writes a printf-style debug message.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	mu.RLock()
	s := sugar
	mu.RUnlock()
	s.Debugf(format, args...)
}

// LogTiming writes a timing message.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	Logger().Debug("timing", zap.String("op", name), zap.Duration("took", d))
}

// LogIf writes a debug message only if cond is true.
func LogIf(cond bool, format string, args ...any) {
	if cond {
		Log(format, args...)
	}
}

// LogEnterExit logs entry and exit of a function with timing.
//
//	defer debug.LogEnterExit("layoutTree")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	Logger().Debug("-> " + name)
	start := time.Now()
	return func() {
		Logger().Debug("<- "+name, zap.Duration("took", time.Since(start)))
	}
}

// Sync flushes buffered log entries.
func Sync() {
	_ = Logger().Sync()
}
