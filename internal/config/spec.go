package config

// Config is the root configuration.
type Config struct {
	Log     LogSection     `koanf:"log" json:"log" yaml:"log"`
	Redact  RedactSection  `koanf:"redact" json:"redact" yaml:"redact"`
	Metrics MetricsSection `koanf:"metrics" json:"metrics" yaml:"metrics"`
}

// LogSection configures the log sink.
type LogSection struct {
	// Level is the threshold: debug, info, warning, error or critical.
	Level string `koanf:"level" json:"level" yaml:"level"`
	// File is the rotating log file.
	File string `koanf:"file" json:"file" yaml:"file"`
	// MaxBytes is the rotation size.
	MaxBytes int64 `koanf:"maxbytes" json:"maxbytes" yaml:"maxbytes"`
	// Backups is the number of rotated files kept.
	Backups int `koanf:"backups" json:"backups" yaml:"backups"`
	// MaxAge removes rotated files older than this many days. Zero keeps them.
	MaxAge int `koanf:"maxage" json:"maxage" yaml:"maxage"`
	// Compress gzips rotated files.
	Compress bool `koanf:"compress" json:"compress" yaml:"compress"`
	// Console also writes the root logger to stderr.
	Console bool `koanf:"console" json:"console" yaml:"console"`
	// Color is auto, always or never.
	Color string `koanf:"color" json:"color" yaml:"color"`
}

// RedactSection configures secret masking.
type RedactSection struct {
	// Keys replaces the default denylist when non-empty.
	Keys []string `koanf:"keys" json:"keys" yaml:"keys"`
	// Placeholder replaces masked values.
	Placeholder string `koanf:"placeholder" json:"placeholder" yaml:"placeholder"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	// Addr serves /metrics when set, e.g. "127.0.0.1:9464".
	Addr string `koanf:"addr" json:"addr" yaml:"addr"`
}
