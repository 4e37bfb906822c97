package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/mesh"
)

// exportFlags are the output flags shared by commands that write models.
type exportFlags struct {
	output   string
	noSTL    bool
	solid    bool
	segments int
	imports  []string
}

func (f *exportFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "frame.stl", "STL output file")
	cmd.Flags().BoolVar(&f.noSTL, "no-stl", false, "print the cut list only")
	cmd.Flags().BoolVar(&f.solid, "solid", true, "model pipes as tubes with their wall thickness")
	cmd.Flags().IntVar(&f.segments, "segments", 0, "facets around every circle (default from config)")
	cmd.Flags().StringArrayVar(&f.imports, "import", nil, `add an STL part, i.e. "mount.stl" or "mount.stl@150,100,30 cm"`)
}

// parseImport splits "path[@x,y,z]" into the file and its placement.
// Coordinates accept units and default to the origin.
func parseImport(s string) (string, frame.Placement, error) {
	path, at := s, ""
	if i := strings.LastIndex(s, "@"); i >= 0 {
		path, at = s[:i], s[i+1:]
	}
	if path == "" {
		return "", frame.Placement{}, fmt.Errorf("import %q: empty file name", s)
	}
	var base r3.Vec
	if at != "" {
		coords := strings.Split(at, ",")
		if len(coords) != 3 {
			return "", frame.Placement{}, fmt.Errorf("import %q: want x,y,z after @", s)
		}
		for i, dst := range []*float64{&base.X, &base.Y, &base.Z} {
			v, err := quantityFlag(coords[i])
			if err != nil {
				return "", frame.Placement{}, fmt.Errorf("import %q: %w", s, err)
			}
			*dst = v
		}
	}
	return path, frame.Translation(base), nil
}

// export adds imported parts to a, prints its cut list and writes its STL
// unless disabled.
func (c *CLI) export(cmd *cobra.Command, a *frame.Assembly, f exportFlags) error {
	logger := loggerFromContext(cmd.Context())
	for _, imp := range f.imports {
		path, pl, err := parseImport(imp)
		if err != nil {
			return err
		}
		o, err := mesh.ImportPart(a, path, pl)
		if err != nil {
			return err
		}
		logger.Debug("imported part", "label", o.Label, "facets", len(o.Part.Facets), "fixed", o.Part.Fixed)
	}
	opts, err := c.meshOptions(f.segments, f.solid)
	if err != nil {
		return err
	}
	r, err := mesh.NewAssemblyRenderer(a, opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printCutList(out, a, r.Bounds())
	if f.noSTL {
		return nil
	}
	path := c.outputPath(f.output)
	prog := newProgress(logger)
	if err := mesh.CreateSTL(path, r); err != nil {
		return err
	}
	prog.done("Wrote " + path)
	printSuccess(out, "frame model written")
	printFile(out, path)
	return nil
}

func (c *CLI) boxCommand() *cobra.Command {
	def := frame.NewBox()
	var (
		lx, ly, lz  string
		gap         string
		pod, thk    string
		corner      = def.Corner
		cornerFlags struct{ h, m, pod, pid string }
		ef          exportFlags
	)

	cmd := &cobra.Command{
		Use:   "box",
		Short: "Build a frame from explicit dimensions",
		Long: `Build a frame from explicit pipe, gap and span dimensions.

Lengths accept units, i.e. "30 cm", "12 in" or "300" (millimetres).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			b := def
			for _, f := range []struct {
				text string
				dst  *float64
			}{
				{lx, &b.LX}, {ly, &b.LY}, {lz, &b.LZ},
				{gap, &b.G}, {pod, &b.POD}, {thk, &b.Thk},
				{cornerFlags.h, &corner.H}, {cornerFlags.m, &corner.M},
				{cornerFlags.pod, &corner.POD}, {cornerFlags.pid, &corner.PID},
			} {
				v, err := quantityFlag(f.text)
				if err != nil {
					return err
				}
				*f.dst = v
			}
			corner.G = b.G
			b.Corner = corner
			b.PID = b.POD - 2*b.Thk
			loggerFromContext(cmd.Context()).Debug("box", "LX", b.LX, "LY", b.LY, "LZ", b.LZ, "G", b.G)

			a, err := frame.Layout(b)
			if err != nil {
				return err
			}
			return c.export(cmd, a, ef)
		},
	}

	q := frame.FormatQuantity
	cmd.Flags().StringVar(&lx, "lx", q(def.LX), "frame length along X")
	cmd.Flags().StringVar(&ly, "ly", q(def.LY), "frame length along Y")
	cmd.Flags().StringVar(&lz, "lz", q(def.LZ), "frame length along Z")
	cmd.Flags().StringVar(&gap, "gap", q(def.G), "distance from frame vertex to pipe end")
	cmd.Flags().StringVar(&pod, "pod", q(def.POD), "pipe outer diameter")
	cmd.Flags().StringVar(&thk, "thk", q(def.Thk), "pipe wall thickness")
	cmd.Flags().StringVar(&cornerFlags.h, "corner-h", q(def.Corner.H), "corner socket depth from the vertex")
	cmd.Flags().StringVar(&cornerFlags.m, "corner-m", q(def.Corner.M), "corner outer diameter")
	cmd.Flags().StringVar(&cornerFlags.pod, "corner-pod", q(def.Corner.POD), "corner socket bore")
	cmd.Flags().StringVar(&cornerFlags.pid, "corner-pid", q(def.Corner.PID), "corner channel bore")
	ef.register(cmd)
	return cmd
}
