package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/calllog-go/internal/config"
)

// ConfigCommand returns the config subcommand group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration management",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration with secrets masked",
				Action: configShow,
			},
			{
				Name:      "validate",
				Usage:     "Validate a configuration file",
				ArgsUsage: "[FILE]",
				Action:    configValidate,
			},
		},
	}
}

func configShow(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	return e.print(c, config.Sanitize(e.cfg))
}

// configValidate checks FILE, or the --config file when FILE is omitted.
// Environment overrides apply as they would at startup.
func configValidate(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = c.String("config")
	}
	if path == "" {
		return fmt.Errorf("configuration file path required")
	}

	if _, _, err := config.Load(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(c.App.Writer, "configuration is valid: %s\n", path)
	return err
}
