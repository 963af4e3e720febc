package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/calllog-go/internal/telemetry/logger"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("invalid configuration")

var levels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true,
	"error": true, "critical": true, "fatal": true,
}

// Verify validates the configuration and reports every problem found.
func Verify(cfg *Config) error {
	var errs []error
	errs = append(errs, verifyLog(&cfg.Log)...)
	errs = append(errs, verifyRedact(&cfg.Redact)...)
	errs = append(errs, verifyMetrics(&cfg.Metrics)...)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func verifyLog(cfg *LogSection) []error {
	var errs []error
	if !levels[strings.ToLower(cfg.Level)] {
		errs = append(errs, fmt.Errorf("log.level %q is not a level", cfg.Level))
	}
	if cfg.File == "" {
		errs = append(errs, errors.New("log.file is required"))
	}
	if cfg.MaxBytes < 0 {
		errs = append(errs, fmt.Errorf("log.maxbytes must not be negative, got %d", cfg.MaxBytes))
	}
	if cfg.Backups < 0 {
		errs = append(errs, fmt.Errorf("log.backups must not be negative, got %d", cfg.Backups))
	}
	if cfg.MaxAge < 0 {
		errs = append(errs, fmt.Errorf("log.maxage must not be negative, got %d", cfg.MaxAge))
	}
	if !logger.ColorMode(cfg.Color).Valid() {
		errs = append(errs, fmt.Errorf("log.color %q must be auto, always or never", cfg.Color))
	}
	return errs
}

func verifyRedact(cfg *RedactSection) []error {
	if cfg.Placeholder == "" {
		return []error{errors.New("redact.placeholder must not be empty")}
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) []error {
	if cfg.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return []error{fmt.Errorf("metrics.addr: %w", err)}
	}
	return nil
}

// Normalize cleans values that arrive in loose form, such as a comma
// separated key list from the environment.
func Normalize(cfg *Config) {
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Color = strings.ToLower(strings.TrimSpace(cfg.Log.Color))

	var keys []string
	for _, k := range cfg.Redact.Keys {
		for _, part := range strings.Split(k, ",") {
			if part = strings.TrimSpace(part); part != "" {
				keys = append(keys, part)
			}
		}
	}
	cfg.Redact.Keys = keys
}
