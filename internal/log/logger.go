// Package log wraps a process-wide zap logger. Init must run before the
// first log call; until then all helpers write to a no-op logger.
package log

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = zap.NewNop()

func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

// Init builds the global logger. Console output is always on; when file
// is non-empty a JSON core with rotation is added next to it.
func Init(level, file string) {
	Logger = newZap(level, file)
}

func Sync() {
	_ = Logger.Sync()
}

func newZap(level, file string) *zap.Logger {
	encodeConfig := zap.NewProductionEncoderConfig()
	encodeConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encodeConfig)
	consoleWriter := zapcore.AddSync(os.Stdout)

	logLevel := parseLevel(level)

	cores := []zapcore.Core{
		zapcore.NewCore(consoleEncoder, consoleWriter, logLevel),
	}

	if file != "" {
		rotationLog := &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}

		fileEncoder := zapcore.NewJSONEncoder(encodeConfig)
		cores = append(cores, zapcore.NewCore(fileEncoder, zapcore.AddSync(rotationLog), logLevel))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
