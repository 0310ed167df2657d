// Command pipecalc evaluates Reynolds numbers and Colebrook-White friction
// factors from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	colebrook "Pipeflow/internal/calc/colebrook"
	reynolds "Pipeflow/internal/calc/reynolds"
	"Pipeflow/internal/calc/rootfind"
	config "Pipeflow/internal/config"

	"github.com/urfave/cli"
)

const (
	exitOK      = 0
	exitFailure = 1
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	app := newApp(stdout, stderr)
	if err := app.Run(args); err != nil {
		fmt.Fprintf(stderr, "pipecalc: %v\n", err)
		return exitFailure
	}
	return exitOK
}

func newApp(stdout, stderr io.Writer) *cli.App {
	app := cli.NewApp()
	app.Name = "pipecalc"
	app.Usage = "Pipe-flow hydraulics: Reynolds numbers and Darcy friction factors"
	app.Version = "0.1.0"
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.BoolFlag{Name: "trace", Usage: "log solver iterations to stderr"},
	}
	app.Commands = []cli.Command{
		frictionCommand(),
		compareCommand(),
		reynoldsCommand(),
	}
	app.CommandNotFound = func(ctx *cli.Context, command string) {
		fmt.Fprintf(ctx.App.ErrWriter, "'%s %v' is not a pipecalc subcommand\n", ctx.App.Name, command)
	}
	return app
}

var caseFlags = []cli.Flag{
	cli.Float64Flag{Name: "roughness, e", Usage: "absolute roughness, same unit as the diameter"},
	cli.Float64Flag{Name: "diameter, d", Usage: "hydraulic diameter"},
	cli.Float64Flag{Name: "reynolds, r", Usage: "Reynolds number"},
	cli.Float64Flag{Name: "lo", Value: colebrook.DefaultBracket.Lo, Usage: "lower end of the friction factor bracket"},
	cli.Float64Flag{Name: "hi", Value: colebrook.DefaultBracket.Hi, Usage: "upper end of the friction factor bracket"},
	cli.Float64Flag{Name: "tol", Value: colebrook.DefaultTolerance, Usage: "bracket width at termination"},
	cli.IntFlag{Name: "max-iter", Usage: "iteration budget, 0 for the method default"},
	cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
}

func caseInput(ctx *cli.Context) colebrook.Input {
	return colebrook.Input{
		Method:            ctx.String("method"),
		Roughness:         ctx.Float64("roughness"),
		HydraulicDiameter: ctx.Float64("diameter"),
		Reynolds:          ctx.Float64("reynolds"),
		BracketLo:         ctx.Float64("lo"),
		BracketHi:         ctx.Float64("hi"),
		Tolerance:         ctx.Float64("tol"),
		MaxIterations:     ctx.Int("max-iter"),
	}
}

func frictionCommand() cli.Command {
	return cli.Command{
		Name:  "friction",
		Usage: "Solve the Colebrook-White equation for the Darcy friction factor",
		Flags: append([]cli.Flag{
			cli.StringFlag{Name: "method, m", Value: string(rootfind.MethodBrent), Usage: "bisection or brent"},
		}, caseFlags...),
		Action: func(ctx *cli.Context) error {
			in := caseInput(ctx)
			var onStep func(rootfind.Step)
			if ctx.GlobalBool("trace") {
				onStep = stepLogger(ctx.App.ErrWriter)
			}
			res, err := colebrook.CalculateWithSteps(in, onStep)
			if err != nil {
				return err
			}
			if ctx.Bool("json") {
				return printJSON(ctx.App.Writer, res)
			}
			fmt.Fprintf(ctx.App.Writer, "f = %.6f (%s, %d iterations, %s flow)\n",
				res.FrictionFactor, res.Method, res.Iterations, res.Regime)
			return nil
		},
	}
}

// stepLogger logs every solver iteration at debug level.
func stepLogger(w io.Writer) func(rootfind.Step) {
	logger := config.NewLogger(w, slog.LevelDebug)
	return func(s rootfind.Step) {
		logger.Debug("step", "i", s.Iteration, "x", s.X, "fx", s.FX, "lo", s.Lo, "hi", s.Hi)
	}
}

func compareCommand() cli.Command {
	return cli.Command{
		Name:  "compare",
		Usage: "Solve with bisection and brent and report the difference",
		Flags: caseFlags,
		Action: func(ctx *cli.Context) error {
			cmp, err := colebrook.Compare(caseInput(ctx))
			if err != nil {
				return err
			}
			if ctx.Bool("json") {
				return printJSON(ctx.App.Writer, cmp)
			}
			fmt.Fprintf(ctx.App.Writer, "bisection f = %.10f (%d iterations)\n", cmp.Bisection.FrictionFactor, cmp.Bisection.Iterations)
			fmt.Fprintf(ctx.App.Writer, "brent     f = %.10f (%d iterations)\n", cmp.Brent.FrictionFactor, cmp.Brent.Iterations)
			fmt.Fprintf(ctx.App.Writer, "difference  = %.3g (agree: %v)\n", cmp.Difference, cmp.Agree)
			return nil
		},
	}
}

func reynoldsCommand() cli.Command {
	return cli.Command{
		Name:  "reynolds",
		Usage: "Evaluate one of the Reynolds number formulas",
		Flags: []cli.Flag{
			cli.StringFlag{Name: "variant", Value: string(reynolds.VariantVelocityDiameter), Usage: fmt.Sprintf("one of %v", reynolds.Variants())},
			cli.Float64Flag{Name: "density, rho", Usage: "fluid density"},
			cli.Float64Flag{Name: "velocity, u", Usage: "mean velocity"},
			cli.Float64Flag{Name: "flow-rate, q", Usage: "volumetric flow rate"},
			cli.Float64Flag{Name: "diameter, d", Usage: "hydraulic diameter"},
			cli.Float64Flag{Name: "area, a", Usage: "cross-sectional area"},
			cli.Float64Flag{Name: "perimeter, p", Usage: "wetted perimeter"},
			cli.Float64Flag{Name: "mu", Usage: "dynamic viscosity"},
			cli.Float64Flag{Name: "nu", Usage: "kinematic viscosity"},
			cli.BoolFlag{Name: "json", Usage: "print the full result as JSON"},
		},
		Action: func(ctx *cli.Context) error {
			res, err := reynolds.Calculate(reynolds.Input{
				Variant:            reynolds.Variant(ctx.String("variant")),
				Density:            ctx.Float64("density"),
				Velocity:           ctx.Float64("velocity"),
				FlowRate:           ctx.Float64("flow-rate"),
				HydraulicDiameter:  ctx.Float64("diameter"),
				Area:               ctx.Float64("area"),
				Perimeter:          ctx.Float64("perimeter"),
				DynamicViscosity:   ctx.Float64("mu"),
				KinematicViscosity: ctx.Float64("nu"),
			})
			if err != nil {
				return err
			}
			if ctx.Bool("json") {
				return printJSON(ctx.App.Writer, res)
			}
			fmt.Fprintf(ctx.App.Writer, "Re = %.6f (%s)\n", res.Reynolds, res.Regime)
			return nil
		},
	}
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
