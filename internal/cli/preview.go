package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/internal/config"
	"github.com/ose-d3d/frame/mesh"
	"github.com/ose-d3d/frame/preview"
)

func (c *CLI) previewCommand() *cobra.Command {
	var (
		in       = config.DefaultInput()
		output   string
		segments int
		view     = preview.DefaultView
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Draw a frame to a PNG image",
		Long: `Draw a frame to a PNG image. Without --pipe and --corner the default
explicit box is drawn.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				a   *frame.Assembly
				err error
			)
			if in.PipeName == "" && in.CornerName == "" {
				a, err = frame.Layout(frame.NewBox())
			} else {
				a, err = c.inputFrame(in)
			}
			if err != nil {
				return err
			}
			opts, err := c.meshOptions(segments, true)
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			prog := newProgress(logger)
			r, err := mesh.NewAssemblyRenderer(a, opts)
			if err != nil {
				return err
			}
			model, err := mesh.RenderAll(r)
			if err != nil {
				return err
			}
			logger.Debug("tessellated", "triangles", len(model))

			path := c.outputPath(output)
			fp, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := preview.Render(model, view, fp); err != nil {
				fp.Close()
				return err
			}
			if err := fp.Close(); err != nil {
				return err
			}
			prog.done("Drew " + path)
			printFile(cmd.OutOrStdout(), path)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.LX, "lx", in.LX, "frame length along X")
	cmd.Flags().StringVar(&in.LY, "ly", in.LY, "frame length along Y")
	cmd.Flags().StringVar(&in.LZ, "lz", in.LZ, "frame length along Z")
	cmd.Flags().StringVar(&in.PipeName, "pipe", "", "pipe part name")
	cmd.Flags().StringVar(&in.CornerName, "corner", "", "corner part name")
	cmd.Flags().StringVarP(&output, "output", "o", "frame.png", "PNG output file")
	cmd.Flags().IntVar(&segments, "segments", 0, "facets around every circle (default from config)")
	cmd.Flags().IntVar(&view.Width, "width", view.Width, "image width in pixels")
	cmd.Flags().IntVar(&view.Height, "height", view.Height, "image height in pixels")
	return cmd
}
