package cli

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"honnef.co/go/spiro"
)

func NewPNGCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "png [FILE]",
		Short: "Render the filled outline to a PNG image",
		Long:  "Solve the control points in FILE (plate or JSON, default stdin), fill the outline and write it as a PNG image.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  pngHandler,
	}

	cmd.Flags().IntP("size", "s", 512, "Width and height of the image in pixels")
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	cmd.Flags().Bool("flip", true, "Flip the y axis, for y-up input")
	cmd.Flags().Int("margin", 16, "Margin around the outline in pixels")

	return cmd
}

func pngHandler(cmd *cobra.Command, args []string) error {
	size, err := cmd.Flags().GetInt("size")
	if err != nil {
		return err
	}
	if size <= 0 {
		return errors.New("size must be positive")
	}
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	flip, err := cmd.Flags().GetBool("flip")
	if err != nil {
		return err
	}
	margin, err := cmd.Flags().GetInt("margin")
	if err != nil {
		return err
	}

	path, err := buildPath(cmd, args)
	if err != nil {
		return err
	}
	img, err := render(path, size, margin, flip)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := png.Encode(w, img); err != nil {
		return err
	}
	spiro.Logger().Debug("wrote image", zap.String("output", output), zap.Int("size", size))
	return nil
}

// render fills path in black on a white square image of the given size,
// scaled to fit within margin pixels of the border.
func render(path spiro.BezPath, size, margin int, flip bool) (*image.RGBA, error) {
	dst := spiro.Rect{X0: 0, Y0: 0, X1: float64(size), Y1: float64(size)}.
		Inflate(-float64(margin), -float64(margin))
	aff := spiro.FitRect(path.ControlBox(), dst, flip)

	mask, err := spiro.Rasterize(size, size, aff, path.Replay)
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	spiro.Composite(img, mask, image.NewUniform(color.Black))
	return img, nil
}
