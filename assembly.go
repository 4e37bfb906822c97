package frame

import (
	"fmt"
	"math"
	"sort"

	"github.com/ose-d3d/frame/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Kind is the kind of part an Object represents.
type Kind int

const (
	KindPipe Kind = iota + 1
	KindCorner
	// KindPart is geometry imported from a file.
	KindPart
)

func (k Kind) String() string {
	switch k {
	case KindPipe:
		return "pipe"
	case KindCorner:
		return "corner"
	case KindPart:
		return "part"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Object is a placed part in a Document.
type Object struct {
	Label     string
	Kind      Kind
	Placement Placement
	// Source is the object this one was cloned from, nil for originals.
	Source *Object
	// Pipe is set for KindPipe, Corner for KindCorner and Part for
	// KindPart. Clones carry a copy of their source dimensions.
	Pipe   Pipe
	Corner Corner
	Part   *Part
}

// Part is imported triangle geometry in its own coordinates.
type Part struct {
	// Source is the file the part was read from.
	Source string
	// Facets are wound counter-clockwise when seen from outside.
	Facets [][3]r3.Vec
	// Fixed marks the part other parts are positioned against. Only the
	// first imported part of an assembly is fixed.
	Fixed bool
}

// Bounds returns the box enclosing the part facets in part coordinates.
func (p *Part) Bounds() d3.Box {
	if len(p.Facets) == 0 {
		return d3.Box{}
	}
	bb := d3.Box{Min: p.Facets[0][0], Max: p.Facets[0][0]}
	for _, f := range p.Facets {
		bb = bb.Include(f[0]).Include(f[1]).Include(f[2])
	}
	return bb
}

// IsClone reports whether o shares the geometry of another object.
func (o *Object) IsClone() bool { return o.Source != nil }

// Original follows the clone chain back to the object owning the geometry.
func (o *Object) Original() *Object {
	for o.Source != nil {
		o = o.Source
	}
	return o
}

// Assembly is an in-memory Document. Objects are kept in creation order.
type Assembly struct {
	objects []*Object
	labels  map[string]int
}

var _ Document = (*Assembly)(nil)

// NewAssembly returns an empty assembly.
func NewAssembly() *Assembly {
	return &Assembly{labels: make(map[string]int)}
}

// AddPipe adds a pipe at placement pl.
func (a *Assembly) AddPipe(label string, p Pipe, pl Placement) *Object {
	return a.add(&Object{Label: label, Kind: KindPipe, Pipe: p, Placement: pl})
}

// AddCorner adds a corner fitting at placement pl.
func (a *Assembly) AddCorner(label string, c Corner, pl Placement) *Object {
	return a.add(&Object{Label: label, Kind: KindCorner, Corner: c, Placement: pl})
}

// AddPart adds imported geometry at placement pl. The part is fixed when
// no other part of the assembly is.
func (a *Assembly) AddPart(label string, p Part, pl Placement) *Object {
	p.Fixed = true
	for _, o := range a.objects {
		if o.Kind == KindPart && o.Part.Fixed {
			p.Fixed = false
			break
		}
	}
	return a.add(&Object{Label: label, Kind: KindPart, Part: &p, Placement: pl})
}

// Clone adds an object sharing the geometry of src at placement pl.
// The clone is labelled after its original with a numeric suffix.
func (a *Assembly) Clone(src *Object, pl Placement) *Object {
	o := *src
	o.Source = src
	o.Placement = pl
	o.Label = src.Original().Label
	return a.add(&o)
}

func (a *Assembly) add(o *Object) *Object {
	n := a.labels[o.Label]
	a.labels[o.Label] = n + 1
	if n > 0 {
		o.Label = fmt.Sprintf("%s%03d", o.Label, n)
	}
	a.objects = append(a.objects, o)
	return o
}

// Objects returns the objects of the assembly in creation order.
func (a *Assembly) Objects() []*Object { return a.objects }

// Count returns the number of objects of kind k.
func (a *Assembly) Count(k Kind) (n int) {
	for _, o := range a.objects {
		if o.Kind == k {
			n++
		}
	}
	return n
}

// Bounds returns the box enclosing pipe centerlines, fitting vertices and
// the placed bounding boxes of imported parts.
func (a *Assembly) Bounds() r3.Box {
	var bb d3.Box
	for i, o := range a.objects {
		var pts []r3.Vec
		switch o.Kind {
		case KindPipe:
			pts = []r3.Vec{o.Placement.Apply(r3.Vec{}), o.Placement.Apply(r3.Vec{Z: o.Pipe.H})}
		case KindPart:
			pb := o.Placement.Transform().TransformBox(o.Part.Bounds())
			pts = []r3.Vec{pb.Min, pb.Max}
		default:
			pts = []r3.Vec{o.Placement.Apply(r3.Vec{})}
		}
		if i == 0 {
			bb = d3.Box{Min: pts[0], Max: pts[0]}
		}
		for _, p := range pts {
			bb = bb.Include(p)
		}
	}
	return r3.Box(bb)
}

// CutItem is a line of a pipe cut list.
type CutItem struct {
	Length float64
	OD     float64
	Thk    float64
	Count  int
	Labels []string
}

// CutList groups the pipes of the assembly by dimensions, longest first.
// Lengths are compared to within a micrometre.
func (a *Assembly) CutList() []CutItem {
	const tol = 1e-3
	var items []CutItem
next:
	for _, o := range a.objects {
		if o.Kind != KindPipe {
			continue
		}
		p := o.Pipe
		for i := range items {
			it := &items[i]
			if math.Abs(it.Length-p.H) < tol && math.Abs(it.OD-p.OD) < tol && math.Abs(it.Thk-p.Thk) < tol {
				it.Count++
				it.Labels = append(it.Labels, o.Label)
				continue next
			}
		}
		items = append(items, CutItem{Length: p.H, OD: p.OD, Thk: p.Thk, Count: 1, Labels: []string{o.Label}})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Length > items[j].Length })
	return items
}

// TotalPipeLength returns the summed length of every pipe.
func (a *Assembly) TotalPipeLength() (l float64) {
	for _, o := range a.objects {
		if o.Kind == KindPipe {
			l += o.Pipe.H
		}
	}
	return l
}
