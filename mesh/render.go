// Package mesh tessellates frame assemblies into triangles and reads and
// writes them as binary STL.
package mesh

import (
	"errors"
	"fmt"
	"io"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/helpers/matter"
	"github.com/ose-d3d/frame/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams triangles. ReadTriangles returns io.EOF once every
// triangle has been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// RenderAll reads the full contents of a Renderer and returns the slice read.
// It does not return error on io.EOF, like io.ReadAll.
func RenderAll(r Renderer) ([]Triangle3, error) {
	var err error
	var nt int
	result := make([]Triangle3, 0, 1<<12)
	buf := make([]Triangle3, 1024)
	for {
		nt, err = r.ReadTriangles(buf)
		result = append(result, buf[:nt]...)
		if err != nil {
			break
		}
	}
	if err == io.EOF {
		return result, nil
	}
	return result, err
}

type triangle3Buffer struct {
	buf []Triangle3
}

// Read reads from this buffer.
func (b *triangle3Buffer) Read(t []Triangle3) int {
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n
}

// Write appends triangles to this buffer.
func (b *triangle3Buffer) Write(t []Triangle3) int {
	b.buf = append(b.buf, t...)
	return len(t)
}

func (b *triangle3Buffer) Len() int { return len(b.buf) }

// Options configures assembly tessellation.
type Options struct {
	// Segments is the number of facets around every circle.
	Segments int
	// Solid renders pipes as hollow tubes of the real wall thickness.
	// Otherwise pipes are rods of the pipe inner diameter.
	Solid bool
	// Material compensates fitting sockets for printing when not nil.
	Material *matter.ViscousMaterial
}

// DefaultOptions renders solid pipes with 32 facets per circle.
// Imported parts keep their own facets.
var DefaultOptions = Options{Segments: 32, Solid: true}

// AssemblyRenderer streams the triangles of every object in an assembly
// moved by the object placement.
type AssemblyRenderer struct {
	objects   []*frame.Object
	local     map[*frame.Object][]Triangle3
	bounds    map[*frame.Object]d3.Box
	next      int
	unwritten triangle3Buffer
}

// NewAssemblyRenderer tessellates the source geometry of a. Clones reuse
// the geometry of their original.
func NewAssemblyRenderer(a *frame.Assembly, opts Options) (*AssemblyRenderer, error) {
	if opts.Segments < MinSegments {
		return nil, fmt.Errorf("need at least %d segments, got %d", MinSegments, opts.Segments)
	}
	ar := &AssemblyRenderer{
		objects: a.Objects(),
		local:   make(map[*frame.Object][]Triangle3),
		bounds:  make(map[*frame.Object]d3.Box),
	}
	for _, o := range ar.objects {
		src := o.Original()
		if _, ok := ar.local[src]; ok {
			continue
		}
		var (
			model []Triangle3
			err   error
		)
		switch src.Kind {
		case frame.KindPipe:
			od, id := src.Pipe.OD, src.Pipe.ID()
			if !opts.Solid {
				od, id = id, 0
			}
			model, err = Tube(od, id, src.Pipe.H, opts.Segments)
		case frame.KindCorner:
			model, err = Fitting(src.Corner, opts.Segments, opts.Material)
		case frame.KindPart:
			model, err = partTriangles(src.Part)
		default:
			err = fmt.Errorf("unknown object kind %v", src.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Label, err)
		}
		ar.local[src] = model
		ar.bounds[src] = Bounds(model)
	}
	return ar, nil
}

func partTriangles(p *frame.Part) ([]Triangle3, error) {
	if p == nil || len(p.Facets) == 0 {
		return nil, errors.New("part has no facets")
	}
	model := make([]Triangle3, len(p.Facets))
	for i, f := range p.Facets {
		model[i] = f
	}
	return model, nil
}

// Bounds returns the box enclosing the placed solids. Unlike
// frame.Assembly.Bounds it includes pipe walls and fitting hubs.
func (ar *AssemblyRenderer) Bounds() r3.Box {
	var bb d3.Box
	for i, o := range ar.objects {
		placed := o.Placement.Transform().TransformBox(ar.bounds[o.Original()])
		if i == 0 {
			bb = placed
			continue
		}
		bb = bb.Include(placed.Min).Include(placed.Max)
	}
	return r3.Box(bb)
}

// ReadTriangles writes triangles rendered from the assembly into dst.
func (ar *AssemblyRenderer) ReadTriangles(dst []Triangle3) (n int, err error) {
	if len(dst) == 0 {
		panic("cannot write to empty triangle slice")
	}
	for n < len(dst) {
		if ar.unwritten.Len() > 0 {
			n += ar.unwritten.Read(dst[n:])
			continue
		}
		if ar.next == len(ar.objects) {
			return n, io.EOF
		}
		o := ar.objects[ar.next]
		ar.next++
		m := o.Placement.Transform()
		src := ar.local[o.Original()]
		moved := make([]Triangle3, len(src))
		for i, t := range src {
			moved[i] = t.Transform(m)
		}
		ar.unwritten.Write(moved)
	}
	return n, nil
}
