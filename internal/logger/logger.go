// Package logger provides the package-level zap logger used across the engine.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the global logger instance. cmd/vaspd builds it with InitLogger
// first thing in main(); the helpers below call InitLogger on first use
// if it has not run yet.
var Log *zap.Logger

// Component identifies the subsystem emitting a log line, for filtering
// and for the `component` field attached by For.
type Component string

const (
	ComponentCondition Component = "condition"
	ComponentPayment   Component = "payment"
	ComponentValidator Component = "validator"
	ComponentOffchain  Component = "offchain"
	ComponentEngine    Component = "engine"
	ComponentAPI       Component = "api"
	ComponentKeystore  Component = "keystore"
)

// InitLogger builds the global logger. VASP_ENV=release selects a
// production JSON encoder with ISO8601 timestamps; anything else
// (including unset) selects a colorized development encoder.
func InitLogger() {
	env := os.Getenv("VASP_ENV")

	var cfg zap.Config
	if env == "release" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	built, err := cfg.Build()
	if err != nil {
		panic("logger: failed to initialize: " + err.Error())
	}
	Log = built
}

// For exposes a child logger tagged with the given component, running
// InitLogger first if it has not run yet (tests).
func For(component Component) *zap.Logger {
	if Log == nil {
		InitLogger()
	}
	return Log.With(zap.String("component", string(component)))
}

// Info logs a message at InfoLevel on the global logger.
func Info(msg string, fields ...zapcore.Field) {
	if Log == nil {
		InitLogger()
	}
	Log.Info(msg, fields...)
}

// Error logs a message at ErrorLevel on the global logger.
func Error(msg string, fields ...zapcore.Field) {
	if Log == nil {
		InitLogger()
	}
	Log.Error(msg, fields...)
}

// Warn logs a message at WarnLevel on the global logger.
func Warn(msg string, fields ...zapcore.Field) {
	if Log == nil {
		InitLogger()
	}
	Log.Warn(msg, fields...)
}

// Debug logs a message at DebugLevel on the global logger.
func Debug(msg string, fields ...zapcore.Field) {
	if Log == nil {
		InitLogger()
	}
	Log.Debug(msg, fields...)
}

// Fatal logs a message at FatalLevel then exits the process.
func Fatal(msg string, fields ...zapcore.Field) {
	if Log == nil {
		InitLogger()
	}
	Log.Fatal(msg, fields...)
}

// Sync flushes any buffered log entries.
func Sync() error {
	if Log == nil {
		return nil
	}
	return Log.Sync()
}
