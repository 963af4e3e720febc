package config

import (
	"github.com/yndnr/calllog-go/internal/infra/confloader"
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
)

// NewLoader returns a loader for path that starts from Default.
func NewLoader(path string, opts ...confloader.Option) *confloader.Loader {
	base := []confloader.Option{
		confloader.WithDefaults(defaultMap()),
		confloader.WithConfigFile(path),
	}
	return confloader.NewLoader(append(base, opts...)...)
}

// Load reads defaults, the file at path (if any) and CALLLOG_ environment
// variables, then normalizes and verifies the result.
func Load(path string, opts ...confloader.Option) (*Config, *confloader.Loader, error) {
	l := NewLoader(path, opts...)
	cfg, err := load(l.Load)
	if err != nil {
		return nil, nil, err
	}
	return cfg, l, nil
}

// Reload reads the configuration again through l.
func Reload(l *confloader.Loader) (*Config, error) {
	return load(l.Reload)
}

func load(fn func(any) error) (*Config, error) {
	var cfg Config
	if err := fn(&cfg); err != nil {
		return nil, err
	}
	Normalize(&cfg)
	if err := Verify(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SinkConfig converts the log section to a default sink configuration.
func (c *Config) SinkConfig() logger.SinkConfig {
	sc := logger.DefaultSinkConfig()
	sc.FilePath = c.Log.File
	sc.MaxBytes = c.Log.MaxBytes
	sc.Backups = c.Log.Backups
	sc.MaxAgeDays = c.Log.MaxAge
	sc.Compress = c.Log.Compress
	sc.Level = c.Log.Level
	sc.Color = logger.ColorMode(c.Log.Color)
	sc.Masker = c.Masker()
	sc.RootConsole = c.Log.Console
	return sc
}
