package cli

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"honnef.co/go/spiro"
)

func NewSVGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "svg [FILE]",
		Short: "Write SVG path data",
		Long:  "Solve the control points in FILE (plate or JSON, default stdin) and write the resulting outline as SVG path data.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  svgHandler,
	}

	cmd.Flags().Int("precision", spiro.DefaultSVGPrecision, "Significant digits of non-integral coordinates")
	cmd.Flags().Bool("document", false, "Write a complete SVG document instead of bare path data")
	cmd.Flags().Bool("flip", false, "Flip the y axis, for y-up input")
	cmd.Flags().Float64("margin", 10, "Margin around the outline in document mode")

	return cmd
}

func svgHandler(cmd *cobra.Command, args []string) error {
	precision, err := cmd.Flags().GetInt("precision")
	if err != nil {
		return err
	}
	document, err := cmd.Flags().GetBool("document")
	if err != nil {
		return err
	}
	flip, err := cmd.Flags().GetBool("flip")
	if err != nil {
		return err
	}
	margin, err := cmd.Flags().GetFloat64("margin")
	if err != nil {
		return err
	}

	path, err := buildPath(cmd, args)
	if err != nil {
		return err
	}
	if flip {
		path = path.Transform(spiro.FlipY)
	}

	w := bufio.NewWriter(cmd.OutOrStdout())
	if err := writeSVG(w, path, spiro.SVGOptions{Precision: precision}, document, margin); err != nil {
		return err
	}
	return w.Flush()
}

func writeSVG(w io.Writer, path spiro.BezPath, opts spiro.SVGOptions, document bool, margin float64) error {
	if !document {
		if err := spiro.WriteSVGPath(w, opts, path.Replay); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	box := path.ControlBox().Inflate(margin, margin)
	if _, err := fmt.Fprintf(w,
		"<svg xmlns=\"http://www.w3.org/2000/svg\" viewBox=\"%g %g %g %g\">\n  <path fill=\"none\" stroke=\"black\" d=\"",
		box.X0, box.Y0, box.Width(), box.Height()); err != nil {
		return err
	}
	if err := spiro.WriteSVGPath(w, opts, path.Replay); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\"/>\n</svg>\n")
	return err
}
