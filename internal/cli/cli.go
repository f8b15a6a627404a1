// Package cli implements the spiro command.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"honnef.co/go/spiro"
)

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spiro",
		Short: "Convert Spiro control points to Bézier curves",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Disable usage printing on errors
			cmd.SilenceUsage = true
			return setupLogging(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Log solver progress to stderr")
	flags.Bool("open", false, "Treat the input as a single open contour instead of a tagged point list")
	flags.Int("max-iterations", spiro.DefaultMaxIterations, "Maximum number of solver iterations")
	flags.Float64("tolerance", spiro.DefaultTolerance, "Solver convergence tolerance")
	flags.Int("max-depth", spiro.DefaultMaxDepth, "Maximum subdivision depth per segment")
	flags.Float64("accuracy", 0, "Maximum relative deviation of cubics from the spline (0 disables the check)")
	flags.Bool("quadratic", false, "Emit quadratic instead of cubic Béziers")
	flags.Float64("quad-accuracy", spiro.DefaultQuadAccuracy, "Maximum deviation of quadratic approximations")

	cobra.EnableCommandSorting = false

	rootCmd.AddCommand(
		NewSVGCmd(),
		NewPNGCmd(),
		NewSolveCmd(),
	)

	return rootCmd
}

func setupLogging(cmd *cobra.Command) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return err
	}
	if !verbose {
		spiro.SetLogger(zap.NewNop())
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	spiro.SetLogger(l)
	return nil
}

func optionsFromFlags(cmd *cobra.Command) (spiro.Options, error) {
	var opts spiro.Options
	var err error
	flags := cmd.Flags()
	if opts.MaxIterations, err = flags.GetInt("max-iterations"); err != nil {
		return opts, err
	}
	if opts.Tolerance, err = flags.GetFloat64("tolerance"); err != nil {
		return opts, err
	}
	if opts.MaxDepth, err = flags.GetInt("max-depth"); err != nil {
		return opts, err
	}
	if opts.Accuracy, err = flags.GetFloat64("accuracy"); err != nil {
		return opts, err
	}
	if opts.Quadratic, err = flags.GetBool("quadratic"); err != nil {
		return opts, err
	}
	if opts.QuadAccuracy, err = flags.GetFloat64("quad-accuracy"); err != nil {
		return opts, err
	}
	return opts, nil
}

// readInput reads control points from the file named by the first argument,
// or from stdin if there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]spiro.ControlPoint, error) {
	var r io.Reader = cmd.InOrStdin()
	name := "<stdin>"
	if len(args) > 0 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
		name = args[0]
	}
	points, err := spiro.ReadPoints(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return points, nil
}

// solveInput reads and solves the input, honoring the --open flag.
func solveInput(cmd *cobra.Command, args []string) ([]*spiro.Spline, error) {
	points, err := readInput(cmd, args)
	if err != nil {
		return nil, err
	}
	opts, err := optionsFromFlags(cmd)
	if err != nil {
		return nil, err
	}
	open, err := cmd.Flags().GetBool("open")
	if err != nil {
		return nil, err
	}
	if open {
		sp, err := spiro.Solve(points, false, opts)
		if err != nil {
			return nil, err
		}
		return []*spiro.Spline{sp}, nil
	}
	return spiro.SolveTagged(points, opts)
}

// buildPath solves the input and converts it to a path.
func buildPath(cmd *cobra.Command, args []string) (spiro.BezPath, error) {
	splines, err := solveInput(cmd, args)
	if err != nil {
		return nil, err
	}
	var b spiro.PathBuilder
	for _, sp := range splines {
		if err := sp.Emit(&b); err != nil {
			return nil, err
		}
	}
	return b.Path(), nil
}
