package mesh

import (
	"github.com/ose-d3d/frame/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangle3 is a 3D triangle. Vertices are ordered counter-clockwise
// when seen from outside the solid.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	return r3.Unit(r3.Cross(e1, e2))
}

// Degenerate returns true if two vertices are within tol of each other.
func (t Triangle3) Degenerate(tol float64) bool {
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Transform returns the triangle with every vertex moved by m.
func (t Triangle3) Transform(m d3.Transform) Triangle3 {
	return Triangle3{m.Transform(t[0]), m.Transform(t[1]), m.Transform(t[2])}
}

// Bounds returns the bounding box of a triangle soup.
func Bounds(model []Triangle3) d3.Box {
	if len(model) == 0 {
		return d3.Box{}
	}
	bb := d3.Box{Min: model[0][0], Max: model[0][0]}
	for _, t := range model {
		bb = bb.Include(t[0]).Include(t[1]).Include(t[2])
	}
	return bb
}
