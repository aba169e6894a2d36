// Package logger provides structured logging using zap.
//
// Console output goes to stderr by default so that stdout carries only the
// view lines. A log file, when configured, is rotated by lumberjack.
package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger instance. It is nil until Init.
var Log *zap.Logger

// Rotation limits of the log file.
const (
	fileMaxSizeMB  = 10
	fileMaxBackups = 3
	fileMaxAgeDays = 7
)

// Options selects what is logged and where.
type Options struct {
	Level string // debug, info, warn or error

	// File, when set, receives a copy of every entry.
	File string

	// Console receives human-readable entries. Nil means stderr with
	// coloured levels.
	Console io.Writer
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	encCfg := zapcore.EncoderConfig{
		TimeKey:          "time",
		LevelKey:         "level",
		MessageKey:       "msg",
		EncodeTime:       zapcore.TimeEncoderOfLayout("15:04:05"),
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: " ",
	}

	console := opts.Console
	consoleCfg := encCfg
	if console == nil {
		console = os.Stderr
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.Lock(zapcore.AddSync(console)), lvl),
	}

	if opts.File != "" {
		fileCfg := encCfg
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		fileCfg.CallerKey = "caller"
		fileCfg.EncodeCaller = zapcore.ShortCallerEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(fileCfg),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   opts.File,
				MaxSize:    fileMaxSizeMB,
				MaxBackups: fileMaxBackups,
				MaxAge:     fileMaxAgeDays,
				LocalTime:  true,
			}),
			lvl,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Init replaces the global logger.
func Init(opts Options) error {
	l, err := New(opts)
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// L returns the global logger, or a no-op logger before Init.
func L() *zap.Logger {
	if Log == nil {
		return zap.NewNop()
	}
	return Log
}

// Quad returns the fields identifying a quad in log entries.
func Quad(index int, id string) zap.Field {
	return zap.Dict("quad", zap.Int("index", index), zap.String("id", id))
}

// Sync flushes any buffered log entries.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

// Debug logs a debug message.
func Debug(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Debug(msg, fields...)
}

// Info logs an info message.
func Info(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Info(msg, fields...)
}

// Warn logs a warning message.
func Warn(msg string, fields ...zap.Field) {
	L().WithOptions(zap.AddCallerSkip(1)).Warn(msg, fields...)
}
