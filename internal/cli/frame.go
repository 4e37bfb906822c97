package cli

import (
	"github.com/spf13/cobra"

	"github.com/ose-d3d/frame/internal/config"
)

func (c *CLI) frameCommand() *cobra.Command {
	def := config.DefaultInput()
	var (
		in = def
		ef exportFlags
	)

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Build a frame from catalog parts",
		Long: `Build a frame from a pipe and a corner fitting of the catalog tables.

The gap comes from the corner fitting and the pipe wall from the pipe
diameters. List part names with "d3dframe catalog".`,
		Example: `  d3dframe frame --pipe "NPS 1 in PVC SCH 40" --corner F0013WE
  d3dframe frame --pipe "NPS 1 in PVC SCH 40" --corner F0013WE --lx "30 cm" --no-stl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.inputFrame(in)
			if err != nil {
				return err
			}
			return c.export(cmd, a, ef)
		},
	}

	cmd.Flags().StringVar(&in.LX, "lx", def.LX, "frame length along X")
	cmd.Flags().StringVar(&in.LY, "ly", def.LY, "frame length along Y")
	cmd.Flags().StringVar(&in.LZ, "lz", def.LZ, "frame length along Z")
	cmd.Flags().StringVar(&in.PipeName, "pipe", def.PipeName, "pipe part name")
	cmd.Flags().StringVar(&in.CornerName, "corner", def.CornerName, "corner part name")
	ef.register(cmd)
	return cmd
}
