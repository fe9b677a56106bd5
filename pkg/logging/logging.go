package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New はアプリ共通のJSONロガーを作る。
// levelは debug/info/warn/error（不明な値はinfo）。
func New(level string, env string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})

	logger := slog.New(handler).With(slog.String("env", env))
	slog.SetDefault(logger)
	return logger
}
