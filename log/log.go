// Package log provides category-tagged structured logging for paintzone.
//
// Every record carries a "cat" attribute so audio, music, fade and scene
// traffic can be filtered independently.
package log

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
)

// Category tags the subsystem a record came from.
type Category string

const (
	CatAudio   Category = "audio"
	CatPool    Category = "pool"
	CatMusic   Category = "music"
	CatFade    Category = "fade"
	CatScene   Category = "scene"
	CatCatalog Category = "catalog"
	CatConfig  Category = "config"
	CatGame    Category = "game"
)

var logger atomic.Pointer[slog.Logger]

func init() {
	logger.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

// Init replaces the process logger. level is one of debug, info, warn, error;
// anything else means info.
func Init(w io.Writer, level string) {
	if w == nil {
		w = os.Stderr
	}
	logger.Store(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})))
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger returns the current process logger.
func Logger() *slog.Logger {
	return logger.Load()
}

func Debug(cat Category, msg string, args ...any) {
	logger.Load().Debug(msg, withCategory(cat, args)...)
}

func Info(cat Category, msg string, args ...any) {
	logger.Load().Info(msg, withCategory(cat, args)...)
}

func Warn(cat Category, msg string, args ...any) {
	logger.Load().Warn(msg, withCategory(cat, args)...)
}

func Error(cat Category, msg string, args ...any) {
	logger.Load().Error(msg, withCategory(cat, args)...)
}

func withCategory(cat Category, args []any) []any {
	out := make([]any, 0, len(args)+2)
	out = append(out, "cat", string(cat))
	return append(out, args...)
}
