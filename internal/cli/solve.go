package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func NewSolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [FILE]",
		Short: "Print the solved segments",
		Long:  "Solve the control points in FILE (plate or JSON, default stdin) and print the curvature of each segment.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  solveHandler,
	}

	cmd.Flags().Bool("degrees", false, "Print angles in degrees")

	return cmd
}

func solveHandler(cmd *cobra.Command, args []string) error {
	degrees, err := cmd.Flags().GetBool("degrees")
	if err != nil {
		return err
	}
	splines, err := solveInput(cmd, args)
	if err != nil {
		return err
	}

	angle := func(th float64) string {
		if degrees {
			th *= 180 / math.Pi
		}
		return strconv.FormatFloat(th, 'f', 4, 64)
	}
	num := func(f float64) string {
		return strconv.FormatFloat(f, 'f', 4, 64)
	}

	var data [][]string
	for c, sp := range splines {
		for i, seg := range sp.Segments() {
			data = append(data, []string{
				strconv.Itoa(c),
				strconv.Itoa(i),
				string(rune(seg.Type)),
				seg.Start.String(),
				seg.End.String(),
				angle(sp.KnotAngle(i)),
				num(seg.Length),
				num(seg.K[0]),
				num(seg.K[1]),
				num(seg.K[2]),
				num(seg.K[3]),
			})
		}
	}

	w := cmd.OutOrStdout()
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"CONTOUR", "SEG", "TYPE", "START", "END", "ANGLE", "LENGTH", "K0", "K1", "K2", "K3"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	for c, sp := range splines {
		kind := "closed"
		if !sp.Closed() {
			kind = "open"
		}
		if _, err := fmt.Fprintf(w, "contour %d: %s, %d knots, %d iterations\n", c, kind, sp.Knots(), sp.Iterations()); err != nil {
			return err
		}
	}
	return nil
}
