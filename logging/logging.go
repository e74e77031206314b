// Package logging builds the zap loggers used by the digit classifier binaries.
package logging

import "testing"

import "go.uber.org/zap"
import "go.uber.org/zap/zapcore"
import "go.uber.org/zap/zaptest"
import "go.uber.org/zap/zaptest/observer"

// NewLoggerConfig returns the console config shared by all binaries.
// Stacktraces are disabled and levels are colored.
func NewLoggerConfig() zap.Config {
	return zap.Config{
		Level:    zap.NewAtomicLevelAt(zap.InfoLevel),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalColorLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		DisableStacktrace: true,
		OutputPaths:       []string{"stderr"},
		ErrorOutputPaths:  []string{"stderr"},
	}
}

// NewLogger returns a named logger at Info level, or Debug level when debug is set.
func NewLogger(name string, debug bool) *zap.SugaredLogger {
	cfg := NewLoggerConfig()
	if debug {
		cfg.Level.SetLevel(zap.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		panic(err)
	}
	return logger.Sugar().Named(name)
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// NewTestLogger returns a Debug level logger writing to tb.
func NewTestLogger(tb testing.TB) *zap.SugaredLogger {
	return zaptest.NewLogger(tb).Sugar()
}

// NewObservedTestLogger returns a Debug level logger whose entries can be inspected.
func NewObservedTestLogger(tb testing.TB) (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	logger := zap.New(zapcore.NewTee(core, zaptest.NewLogger(tb).Core()))
	return logger.Sugar(), logs
}
