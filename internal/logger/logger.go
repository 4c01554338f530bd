package logger

import (
	"log"
	"log/slog"
	"os"
)

var logger *slog.Logger

// Init installs the process logger.
// env: "development" gives human readable text at debug level, anything else JSON at info.
func Init(env string) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: true,
	}

	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// GetLogger returns the process logger, initialising a development one if Init was not called.
func GetLogger() *slog.Logger {
	if logger == nil {
		Init("development")
	}
	return logger
}

// StdLogger adapts the process logger for libraries that want a *log.Logger (gorm).
func StdLogger(level slog.Level) *log.Logger {
	return slog.NewLogLogger(GetLogger().Handler(), level)
}

func Debug(msg string, args ...any) {
	GetLogger().Debug(msg, args...)
}

func Info(msg string, args ...any) {
	GetLogger().Info(msg, args...)
}

func Warn(msg string, args ...any) {
	GetLogger().Warn(msg, args...)
}

func Error(msg string, args ...any) {
	GetLogger().Error(msg, args...)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, args ...any) {
	GetLogger().Error(msg, args...)
	os.Exit(1)
}

// With returns a logger with extra fields.
// Example: logger.With("vacancy_id", id).Info("vacancy published")
func With(args ...any) *slog.Logger {
	return GetLogger().With(args...)
}
