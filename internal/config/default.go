package config

import (
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
	"github.com/yndnr/calllog-go/pkg/redact"
)

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultColor    = string(logger.ColorAuto)
)

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Log: LogSection{
			Level:    DefaultLogLevel,
			File:     logger.DefaultFilePath,
			MaxBytes: logger.DefaultMaxBytes,
			Backups:  logger.DefaultBackups,
			Console:  true,
			Color:    DefaultColor,
		},
		Redact: RedactSection{
			Keys:        append([]string(nil), redact.DefaultKeys...),
			Placeholder: redact.Placeholder,
		},
	}
}

// defaultMap is Default as the nested map the loader starts from.
func defaultMap() map[string]any {
	d := Default()
	return map[string]any{
		"log": map[string]any{
			"level":    d.Log.Level,
			"file":     d.Log.File,
			"maxbytes": d.Log.MaxBytes,
			"backups":  d.Log.Backups,
			"maxage":   d.Log.MaxAge,
			"compress": d.Log.Compress,
			"console":  d.Log.Console,
			"color":    d.Log.Color,
		},
		"redact": map[string]any{
			"keys":        d.Redact.Keys,
			"placeholder": d.Redact.Placeholder,
		},
		"metrics": map[string]any{
			"addr": d.Metrics.Addr,
		},
	}
}
