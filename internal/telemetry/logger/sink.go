// Package logger provides leveled, named loggers for calllog.
package logger

import (
	"sync"
)

// RootName is the name of the default sink logger.
const RootName = "root"

// SilentName is the name of the file-only logger returned by Silent.
const SilentName = "silent_logger"

// SinkConfig configures the process-wide default sink.
type SinkConfig struct {
	FactoryConfig
	// RootConsole also writes the root logger to the console stream.
	RootConsole bool
}

// DefaultSinkConfig returns the default sink configuration:
// console plus outputs/logs/logs.log.
func DefaultSinkConfig() SinkConfig {
	return SinkConfig{
		FactoryConfig: DefaultFactoryConfig(),
		RootConsole:   true,
	}
}

// Sink is the handle to the process-wide default sink.
type Sink struct {
	factory *Factory
	root    Logger
}

var (
	sinkOnce sync.Once
	sink     *Sink
	sinkErr  error
)

// Init initializes the default sink exactly once and installs its root
// logger as the package default. Later calls return the first result and
// ignore cfg.
func Init(cfg SinkConfig) (*Sink, error) {
	sinkOnce.Do(func() {
		f := NewFactory(cfg.FactoryConfig)
		root, err := f.Setup(RootName, cfg.RootConsole)
		if err != nil {
			sinkErr = err
			return
		}
		sink = &Sink{factory: f, root: root}
		SetDefault(root)
	})
	return sink, sinkErr
}

// Logger returns the root logger.
func (s *Sink) Logger() Logger {
	return s.root
}

// Factory returns the factory that owns the sink's file.
func (s *Sink) Factory() *Factory {
	return s.factory
}

// Close closes the sink's files. The package default keeps pointing at
// the closed root logger; call it during shutdown only.
func (s *Sink) Close() error {
	return s.factory.Close()
}

// Setup returns a named logger from the default sink's factory,
// initializing the sink with DefaultSinkConfig if needed.
func Setup(name string, console bool, opts ...SetupOption) (Logger, error) {
	s, err := Init(DefaultSinkConfig())
	if err != nil {
		return nil, err
	}
	return s.factory.Setup(name, console, opts...)
}

// Silent returns the file-only logger of the default sink.
func Silent() (Logger, error) {
	return Setup(SilentName, false)
}
