// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

// LevelCritical is the most severe level, above slog.LevelError.
const LevelCritical = slog.Level(12)

// levelName returns the label printed for a level.
func levelName(l slog.Level) string {
	switch {
	case l >= LevelCritical:
		return "CRITICAL"
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// ParseLevel converts a level name to slog.Level.
// Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "critical", "fatal":
		return LevelCritical
	default:
		return slog.LevelInfo
	}
}

// LevelString is the inverse of ParseLevel.
func LevelString(l slog.Level) string {
	return strings.ToLower(levelName(l))
}

var (
	debugColor    = newLevelColor(color.FgHiBlack, color.Bold)
	infoColor     = newLevelColor(color.FgGreen, color.Bold)
	warnColor     = newLevelColor(color.FgYellow, color.Bold)
	errorColor    = newLevelColor(color.FgRed, color.Bold)
	criticalColor = newLevelColor(color.BgRed, color.FgHiWhite, color.Bold)
)

// newLevelColor builds a color that ignores color.NoColor; the handler
// decides whether to colorize.
func newLevelColor(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

func levelColor(l slog.Level) *color.Color {
	switch {
	case l >= LevelCritical:
		return criticalColor
	case l >= slog.LevelError:
		return errorColor
	case l >= slog.LevelWarn:
		return warnColor
	case l >= slog.LevelInfo:
		return infoColor
	default:
		return debugColor
	}
}
