package command

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/calllog-go/pkg/redact"
)

// MaskCommand returns the mask command.
func MaskCommand() *cli.Command {
	return &cli.Command{
		Name:      "mask",
		Usage:     "Mask secret values in a JSON document",
		ArgsUsage: "[FILE]",
		Description: "Reads a JSON document from FILE, or from stdin when FILE is omitted or \"-\",\n" +
			"and prints it with the values of denylisted keys replaced at any depth.",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "keys",
				Aliases: []string{"k"},
				Usage:   "Secret keys, replacing redact.keys (repeat or comma separate)",
			},
			&cli.StringFlag{
				Name:  "placeholder",
				Usage: "Replacement for masked values (default: redact.placeholder)",
			},
		},
		Action: maskAction,
	}
}

func maskAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	raw, err := readInput(c, c.Args().First())
	if err != nil {
		return err
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	keys := e.cfg.Redact.Keys
	if c.IsSet("keys") {
		keys = c.StringSlice("keys")
	}
	placeholder := e.cfg.Redact.Placeholder
	if c.IsSet("placeholder") {
		placeholder = c.String("placeholder")
	}

	masker := redact.New(keys, redact.WithPlaceholder(placeholder))
	return e.print(c, masker.Mask(doc))
}

// readInput reads the named file, or the app's reader for "" and "-".
func readInput(c *cli.Context, name string) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if name == "" || name == "-" {
		raw, err = io.ReadAll(c.App.Reader)
	} else {
		raw, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("read input: empty document")
	}
	return raw, nil
}
