package frame

import (
	"math"

	"github.com/ose-d3d/frame/internal/d3"
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Axis unit vectors.
var (
	AxisX = r3.Vec{X: 1}
	AxisY = r3.Vec{Y: 1}
	AxisZ = r3.Vec{Z: 1}
)

// Placement positions an object: its local geometry is first rotated
// about the origin and then moved to Base.
type Placement struct {
	Base     r3.Vec
	Rotation r3.Rotation
}

// NewPlacement returns a placement at base rotated by degrees about axis
// following the right hand rule.
func NewPlacement(base, axis r3.Vec, degrees float64) Placement {
	return Placement{Base: base, Rotation: r3.NewRotation(degrees*math.Pi/180, axis)}
}

// Translation returns an unrotated placement at base.
func Translation(base r3.Vec) Placement {
	return Placement{Base: base, Rotation: r3.Rotation{Real: 1}}
}

// rotation returns the placement rotation with the zero value read as identity.
func (p Placement) rotation() r3.Rotation {
	if p.Rotation == (r3.Rotation{}) {
		return r3.Rotation{Real: 1}
	}
	return p.Rotation
}

// Multiply returns the placement equivalent to applying b and then p.
func (p Placement) Multiply(b Placement) Placement {
	rp := p.rotation()
	return Placement{
		Base:     r3.Add(p.Base, rp.Rotate(b.Base)),
		Rotation: r3.Rotation(quat.Mul(quat.Number(rp), quat.Number(b.rotation()))),
	}
}

// Apply maps a point in local coordinates to global coordinates.
func (p Placement) Apply(v r3.Vec) r3.Vec {
	return r3.Add(p.Base, p.rotation().Rotate(v))
}

// Transform returns the placement as a rigid transform.
func (p Placement) Transform() d3.Transform {
	return d3.ComposeTransform(p.Base, p.rotation())
}

// Equals reports whether two placements map every point to within tol of each other.
// Quaternions q and -q are the same rotation.
func (p Placement) Equals(b Placement, tol float64) bool {
	return p.Transform().Equals(b.Transform(), tol)
}
