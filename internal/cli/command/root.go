package command

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/calllog-go/internal/cli/output"
	"github.com/yndnr/calllog-go/internal/config"
	"github.com/yndnr/calllog-go/internal/infra/buildinfo"
	"github.com/yndnr/calllog-go/internal/infra/confloader"
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
)

const envKey = "env"

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "calllog",
		Usage:   "Structured call logging with secret redaction",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			MaskCommand(),
			DurationCommand(),
			DemoCommand(),
			ConfigCommand(),
			WatchCommand(),
			VersionCommand(),
		},
		Before: before,
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to a YAML configuration file",
			EnvVars: []string{"CALLLOG_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Override log.level: debug, info, warning, error, critical",
		},
		&cli.StringFlag{
			Name:  "color",
			Usage: "Override log.color: auto, always, never",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
			Value:   string(output.FormatTable),
		},
	}
}

// env is what every command works from once Before has run.
type env struct {
	cfg    *config.Config
	loader *confloader.Loader
	format output.Format
}

// before loads the configuration. Flags win over environment, file and
// defaults, in that order.
func before(c *cli.Context) error {
	format, err := output.ParseFormat(c.String("output"))
	if err != nil {
		return err
	}

	cfg, loader, err := config.Load(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if c.IsSet("log-level") || c.IsSet("color") {
		if c.IsSet("log-level") {
			cfg.Log.Level = c.String("log-level")
		}
		if c.IsSet("color") {
			cfg.Log.Color = c.String("color")
		}
		config.Normalize(cfg)
		if err := config.Verify(cfg); err != nil {
			return err
		}
	}

	c.App.Metadata[envKey] = &env{cfg: cfg, loader: loader, format: format}
	return nil
}

func getEnv(c *cli.Context) (*env, error) {
	if e, ok := c.App.Metadata[envKey].(*env); ok {
		return e, nil
	}
	return nil, errors.New("configuration not loaded")
}

// print writes data to the app's output in the selected format.
func (e *env) print(c *cli.Context, data any) error {
	return output.NewFormatter(e.format).Format(c.App.Writer, data)
}

// openLogs builds the log factory described by the configuration and
// installs its root logger as the package default. The console stream is
// the app's error writer.
func (e *env) openLogs(c *cli.Context) (*logger.Factory, logger.Logger, error) {
	sc := e.cfg.SinkConfig()
	sc.Console = c.App.ErrWriter

	f := logger.NewFactory(sc.FactoryConfig)
	root, err := f.Setup(logger.RootName, sc.RootConsole)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("open logs: %w", err)
	}
	logger.SetDefault(root)
	return f, root, nil
}
