package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/calllog-go/internal/cli/output"
	"github.com/yndnr/calllog-go/internal/telemetry/instrument"
	"github.com/yndnr/calllog-go/internal/telemetry/logger"
)

// DemoCommand returns the demo command.
func DemoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Run an instrumented calculator and log its calls",
		Description: "Calls add (with a password keyword), multiply (excluded from logging)\n" +
			"and divide (once by zero) through an instrumented calculator, logging to\n" +
			"the configured file and console.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "thread",
				Usage: "Thread name recorded in call records (default: goroutine-<id>)",
			},
		},
		Action: demoAction,
	}
}

// ErrDivisionByZero is returned by Calculator.Divide for a zero divisor.
var ErrDivisionByZero = errors.New("division by zero")

// Calculator is the service the demo command instruments.
type Calculator interface {
	Add(ctx context.Context, x, y float64, password string) (float64, error)
	Multiply(ctx context.Context, x, y float64) (float64, error)
	Divide(ctx context.Context, x, y float64) (float64, error)
}

type calculator struct{}

func (calculator) Add(_ context.Context, x, y float64, _ string) (float64, error) {
	return x + y, nil
}

func (calculator) Multiply(_ context.Context, x, y float64) (float64, error) {
	return x * y, nil
}

func (calculator) Divide(_ context.Context, x, y float64) (float64, error) {
	if y == 0 {
		return 0, ErrDivisionByZero
	}
	return x / y, nil
}

// instrumentedCalculator logs every call of next except multiply.
type instrumentedCalculator struct {
	next Calculator
	typ  *instrument.Type
}

// NewInstrumentedCalculator wraps next so its methods are logged as
// MathOperations.<method>. Multiply is registered but excluded.
func NewInstrumentedCalculator(next Calculator, in *instrument.Instrumentor) Calculator {
	return &instrumentedCalculator{
		next: next,
		typ:  in.Type("MathOperations", "multiply").Register("add", "multiply", "divide"),
	}
}

func (c *instrumentedCalculator) Add(ctx context.Context, x, y float64, password string) (float64, error) {
	args := instrument.Args{
		Positional: []any{x, y},
		Keyword:    map[string]any{"password": password},
	}
	return instrument.Method(ctx, c.typ, "add", args, func(ctx context.Context) (float64, error) {
		return c.next.Add(ctx, x, y, password)
	})
}

func (c *instrumentedCalculator) Multiply(ctx context.Context, x, y float64) (float64, error) {
	return instrument.Method(ctx, c.typ, "multiply", instrument.Positional(x, y), func(ctx context.Context) (float64, error) {
		return c.next.Multiply(ctx, x, y)
	})
}

func (c *instrumentedCalculator) Divide(ctx context.Context, x, y float64) (float64, error) {
	return instrument.Method(ctx, c.typ, "divide", instrument.Positional(x, y), func(ctx context.Context) (float64, error) {
		return c.next.Divide(ctx, x, y)
	})
}

type demoResult struct {
	Operation string   `json:"operation" yaml:"operation"`
	Result    *float64 `json:"result,omitempty" yaml:"result,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
}

func demoAction(c *cli.Context) error {
	e, err := getEnv(c)
	if err != nil {
		return err
	}

	f, root, err := e.openLogs(c)
	if err != nil {
		return err
	}
	defer f.Close()

	in := instrument.New(
		instrument.WithLogger(root),
		instrument.WithMasker(e.cfg.Masker()),
	)
	calc := NewInstrumentedCalculator(calculator{}, in)

	ctx := c.Context
	if name := c.String("thread"); name != "" {
		ctx = logger.WithThread(ctx, name)
	}

	steps := []struct {
		name string
		run  func() (float64, error)
	}{
		{"add(5, 3)", func() (float64, error) { return calc.Add(ctx, 5, 3, "hunter2") }},
		{"multiply(5, 3)", func() (float64, error) { return calc.Multiply(ctx, 5, 3) }},
		{"divide(6, 3)", func() (float64, error) { return calc.Divide(ctx, 6, 3) }},
		{"divide(1, 0)", func() (float64, error) { return calc.Divide(ctx, 1, 0) }},
	}

	results := make([]demoResult, 0, len(steps))
	for _, s := range steps {
		v, err := s.run()
		r := demoResult{Operation: s.name}
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Result = &v
		}
		results = append(results, r)
	}

	if e.format == output.FormatTable {
		return e.print(c, demoTable(results))
	}
	return e.print(c, results)
}

// demoTable keeps the operation column first.
func demoTable(results []demoResult) *output.Table {
	t := &output.Table{Headers: []string{"OPERATION", "RESULT", "ERROR"}}
	for _, r := range results {
		result, errText := "-", "-"
		if r.Result != nil {
			result = output.FormatNumber(*r.Result)
		}
		if r.Error != "" {
			errText = r.Error
		}
		t.AddRow(r.Operation, result, errText)
	}
	return t
}
