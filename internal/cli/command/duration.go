package command

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/calllog-go/internal/telemetry/instrument"
)

// DurationCommand returns the duration command.
func DurationCommand() *cli.Command {
	return &cli.Command{
		Name:      "duration",
		Usage:     "Format seconds as a call record duration",
		ArgsUsage: "SECONDS...",
		Action:    durationAction,
	}
}

type durationResult struct {
	Seconds  float64 `json:"seconds" yaml:"seconds"`
	Duration string  `json:"duration" yaml:"duration"`
}

func durationAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		return errors.New("duration: at least one value in seconds is required")
	}

	results := make([]durationResult, 0, c.NArg())
	for _, arg := range c.Args().Slice() {
		s, err := strconv.ParseFloat(arg, 64)
		if err != nil || math.IsNaN(s) || math.IsInf(s, 0) {
			return fmt.Errorf("duration: %q is not a number", arg)
		}
		results = append(results, durationResult{Seconds: s, Duration: instrument.FormatSeconds(s)})
	}

	if len(results) == 1 {
		return e.print(c, results[0].Duration)
	}
	return e.print(c, results)
}
