package config

import (
	"github.com/yndnr/calllog-go/pkg/redact"
)

// Sanitize returns the configuration as a map with denylisted keys masked,
// for display.
func Sanitize(cfg *Config) map[string]any {
	out, _ := cfg.Masker().Mask(cfg).(map[string]any)
	return out
}

// Masker returns the masker described by the redact section.
func (c *Config) Masker() *redact.Masker {
	var opts []redact.Option
	if c.Redact.Placeholder != "" {
		opts = append(opts, redact.WithPlaceholder(c.Redact.Placeholder))
	}
	return redact.New(c.Redact.Keys, opts...)
}
