// Package logging provides the process-wide leveled logger used by the dashboard.
package logging

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents severity.
type LogLevel int32

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = map[string]LogLevel{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var zapLevels = map[LogLevel]zapcore.Level{
	LevelDebug: zapcore.DebugLevel,
	LevelInfo:  zapcore.InfoLevel,
	LevelWarn:  zapcore.WarnLevel,
	LevelError: zapcore.ErrorLevel,
}

var (
	atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	base        atomic.Pointer[zap.SugaredLogger]
)

func init() {
	base.Store(newLogger(atomicLevel).Sugar())
}

func newLogger(level zap.AtomicLevel) *zap.Logger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	cfg := zap.Config{
		Level:             level,
		Encoding:          "console",
		EncoderConfig:     encCfg,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	l, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return l
}

// SetLogLevel parses and sets global log level. Unknown names are ignored.
func SetLogLevel(s string) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return
	}
	atomicLevel.SetLevel(zapLevels[l])
}

// ValidLevel reports whether s names a known level.
func ValidLevel(s string) bool {
	_, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// GetLogLevel returns current global log level.
func GetLogLevel() LogLevel {
	switch atomicLevel.Level() {
	case zapcore.DebugLevel:
		return LevelDebug
	case zapcore.WarnLevel:
		return LevelWarn
	case zapcore.ErrorLevel, zapcore.DPanicLevel, zapcore.PanicLevel, zapcore.FatalLevel:
		return LevelError
	default:
		return LevelInfo
	}
}

// SetOutput replaces the backing logger, e.g. with zaptest/observer in tests.
// The returned func restores the previous logger.
func SetOutput(l *zap.Logger) func() {
	prev := base.Swap(l.Sugar())
	return func() { base.Store(prev) }
}

// L returns the current sugared logger.
func L() *zap.SugaredLogger { return base.Load() }

// With returns a child logger carrying the given key/value pairs (session id etc).
func With(kv ...interface{}) *zap.SugaredLogger { return base.Load().With(kv...) }

func logf(l LogLevel, format string, args ...interface{}) {
	// Plain messages skip fmt so literal % characters survive.
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	lg := base.Load()
	switch l {
	case LevelDebug:
		lg.Debug(msg)
	case LevelWarn:
		lg.Warn(msg)
	case LevelError:
		lg.Error(msg)
	default:
		lg.Info(msg)
	}
}

// Public helpers
func Debugf(format string, a ...interface{}) { logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { logf(LevelError, format, a...) }

// Timing helper for phases.
func TimeTrack(start time.Time, label string) {
	dur := time.Since(start)
	Debugf("%s took %s", label, dur)
}
