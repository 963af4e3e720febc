// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yndnr/calllog-go/pkg/redact"
)

// Default rotation settings.
const (
	DefaultFilePath = "outputs/logs/logs.log"
	DefaultMaxBytes = 10 * 1024 * 1024
	DefaultBackups  = 5
)

const megabyte = 1024 * 1024

// FactoryConfig configures a Factory.
type FactoryConfig struct {
	// FilePath is the rotating log file shared by the factory's loggers.
	FilePath string
	// MaxBytes is the size at which the file rotates. Zero or negative
	// selects DefaultMaxBytes; rotation cannot be disabled.
	MaxBytes int64
	// Backups is the number of rotated files kept. Zero or negative
	// selects DefaultBackups; there is no "keep none" setting.
	Backups int
	// MaxAgeDays removes rotated files older than this. Zero keeps them.
	MaxAgeDays int
	// Compress gzips rotated files.
	Compress bool
	// Level is the threshold of every handler (defaults to info).
	Level string
	// Color selects console colorization.
	Color ColorMode
	// Console is the console stream (defaults to os.Stderr).
	Console io.Writer
	// Masker redacts attributes (defaults to the default denylist).
	Masker *redact.Masker
}

// DefaultFactoryConfig returns the default factory configuration.
func DefaultFactoryConfig() FactoryConfig {
	return FactoryConfig{
		FilePath: DefaultFilePath,
		MaxBytes: DefaultMaxBytes,
		Backups:  DefaultBackups,
		Level:    "info",
		Color:    ColorAuto,
		Console:  os.Stderr,
	}
}

func (c FactoryConfig) withDefaults() FactoryConfig {
	d := DefaultFactoryConfig()
	if c.FilePath == "" {
		c.FilePath = d.FilePath
	}
	if c.MaxBytes <= 0 {
		c.MaxBytes = d.MaxBytes
	}
	if c.Backups <= 0 {
		c.Backups = d.Backups
	}
	if c.Level == "" {
		c.Level = d.Level
	}
	if c.Color == "" {
		c.Color = d.Color
	}
	if c.Console == nil {
		c.Console = d.Console
	}
	if c.Masker == nil {
		c.Masker = redact.New(nil)
	}
	return c
}

// Factory builds named loggers that write to a rotating file and,
// optionally, to the console.
//
// Loggers never propagate to the default sink. Handler state is per
// logger; the rotating writer is shared by every logger of the same file
// path so rotation happens in one place.
type Factory struct {
	cfg    FactoryConfig
	level  *slog.LevelVar
	masker *SharedMasker

	mu      sync.Mutex
	writers map[string]*lumberjack.Logger
	loggers map[string]Logger
	closed  bool
}

// ErrFactoryClosed is returned by Setup after Close.
var ErrFactoryClosed = errors.New("logger: factory closed")

// NewFactory creates a factory. Zero fields of cfg take their defaults.
func NewFactory(cfg FactoryConfig) *Factory {
	cfg = cfg.withDefaults()

	level := new(slog.LevelVar)
	level.Set(ParseLevel(cfg.Level))

	return &Factory{
		cfg:     cfg,
		level:   level,
		masker:  NewSharedMasker(cfg.Masker),
		writers: make(map[string]*lumberjack.Logger),
		loggers: make(map[string]Logger),
	}
}

// SetupOption overrides rotation settings for one logger.
type SetupOption func(*setupOptions)

type setupOptions struct {
	filePath string
	maxBytes int64
	backups  int
}

// WithMaxBytes sets the rotation size. Zero or negative keeps the
// factory's setting.
func WithMaxBytes(n int64) SetupOption {
	return func(o *setupOptions) {
		if n > 0 {
			o.maxBytes = n
		}
	}
}

// WithBackups sets the number of rotated files kept. Zero or negative
// keeps the factory's setting.
func WithBackups(n int) SetupOption {
	return func(o *setupOptions) {
		if n > 0 {
			o.backups = n
		}
	}
}

// WithFilePath writes this logger to a different file.
func WithFilePath(path string) SetupOption {
	return func(o *setupOptions) {
		if path != "" {
			o.filePath = path
		}
	}
}

// Setup returns the logger registered under name, creating it on first use.
//
// A new logger always writes to the rotating file at the factory level
// (info by default) and, when console is true, also to the colorized
// console. Calling Setup again with the same name returns the existing
// logger unchanged, so handlers are never duplicated.
func (f *Factory) Setup(name string, console bool, opts ...SetupOption) (Logger, error) {
	o := setupOptions{
		filePath: f.cfg.FilePath,
		maxBytes: f.cfg.MaxBytes,
		backups:  f.cfg.Backups,
	}
	for _, opt := range opts {
		opt(&o)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrFactoryClosed
	}
	if l, ok := f.loggers[name]; ok {
		return l, nil
	}

	w, err := f.writerLocked(o)
	if err != nil {
		return nil, err
	}

	handlers := fanout{
		NewTextHandler(w, &HandlerOptions{
			Name:    name,
			Level:   f.level,
			Secrets: f.masker,
		}),
	}
	if console {
		handlers = append(handlers, NewTextHandler(f.cfg.Console, &HandlerOptions{
			Name:    name,
			Level:   f.level,
			Color:   f.cfg.Color.Enabled(f.cfg.Console),
			Secrets: f.masker,
		}))
	}

	l := newSlogLogger(name, handlers)
	f.loggers[name] = l
	return l, nil
}

// writerLocked returns the rotating writer for a path. The first
// logger to use a path decides its rotation settings.
func (f *Factory) writerLocked(o setupOptions) (*lumberjack.Logger, error) {
	path, err := filepath.Abs(o.filePath)
	if err != nil {
		return nil, fmt.Errorf("resolve log path %s: %w", o.filePath, err)
	}
	if w, ok := f.writers[path]; ok {
		return w, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    megabytes(o.maxBytes),
		MaxBackups: o.backups,
		MaxAge:     f.cfg.MaxAgeDays,
		Compress:   f.cfg.Compress,
	}
	f.writers[path] = w
	return w, nil
}

// megabytes rounds a byte count up to whole MiB, the unit lumberjack rotates in.
func megabytes(n int64) int {
	mb := int((n + megabyte - 1) / megabyte)
	if mb < 1 {
		mb = 1
	}
	return mb
}

// Lookup returns a registered logger.
func (f *Factory) Lookup(name string) (Logger, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.loggers[name]
	return l, ok
}

// SetLevel changes the threshold of every logger built by the factory.
func (f *Factory) SetLevel(level string) {
	f.level.Set(ParseLevel(level))
}

// Level returns the current threshold name.
func (f *Factory) Level() string {
	return LevelString(f.level.Level())
}

// Masker returns the attribute masker shared by the factory's loggers.
func (f *Factory) Masker() *redact.Masker {
	return f.masker.Load()
}

// SetMasker replaces the attribute masker of every logger built by the
// factory, including loggers derived with With. A nil m restores the
// default denylist.
func (f *Factory) SetMasker(m *redact.Masker) {
	f.masker.Store(m)
}

// Close closes every rotating writer. Loggers must not be used afterwards.
func (f *Factory) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	var errs []error
	for path, w := range f.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", path, err))
		}
	}
	return errors.Join(errs...)
}
