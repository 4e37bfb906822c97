package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Transform represents a rigid 3D transformation: a rotation followed by a
// translation. The zero value of Transform is the identity transform.
type Transform struct {
	// To make the zero value the identity we store the rotation matrix
	// with the identity subtracted from its diagonal:
	//  d00 = x00-1, d11 = x11-1, d22 = x22-1
	// so that identity checks can be written as
	//  if T == (Transform{})
	d00, x01, x02 float64
	x10, d11, x12 float64
	x20, x21, d22 float64
	// translation
	tx, ty, tz float64
}

// Transform applies the Transform to the argument point and returns the result.
func (t Transform) Transform(v r3.Vec) r3.Vec {
	return r3.Vec{
		X: (t.d00+1)*v.X + t.x01*v.Y + t.x02*v.Z + t.tx,
		Y: t.x10*v.X + (t.d11+1)*v.Y + t.x12*v.Z + t.ty,
		Z: t.x20*v.X + t.x21*v.Y + (t.d22+1)*v.Z + t.tz,
	}
}

// ComposeTransform creates a new transform for a translation to position
// after a quaternion rotation q. The identity Transform is constructed with
//  ComposeTransform(r3.Vec{}, r3.Rotation{Real: 1})
// q need not be normalized.
func ComposeTransform(position r3.Vec, q r3.Rotation) Transform {
	n := q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag
	if n == 0 {
		// A zero quaternion carries no rotation.
		return Transform{}.Translate(position)
	}
	s := 2 / n
	xx := q.Imag * q.Imag * s
	yy := q.Jmag * q.Jmag * s
	zz := q.Kmag * q.Kmag * s
	xy := q.Imag * q.Jmag * s
	xz := q.Imag * q.Kmag * s
	yz := q.Jmag * q.Kmag * s
	wx := q.Real * q.Imag * s
	wy := q.Real * q.Jmag * s
	wz := q.Real * q.Kmag * s

	return Transform{
		d00: -(yy + zz), x01: xy - wz, x02: xz + wy,
		x10: xy + wz, d11: -(xx + zz), x12: yz - wx,
		x20: xz - wy, x21: yz + wx, d22: -(xx + yy),
		tx: position.X, ty: position.Y, tz: position.Z,
	}
}

// Translate adds v to the positional part of the Transform.
func (t Transform) Translate(v r3.Vec) Transform {
	t.tx += v.X
	t.ty += v.Y
	t.tz += v.Z
	return t
}

// Equals tests the equality of the Transforms to within a tolerance.
func (t Transform) Equals(b Transform, tolerance float64) bool {
	a, c := t.SliceCopy(), b.SliceCopy()
	for i := range a {
		if math.Abs(a[i]-c[i]) > tolerance {
			return false
		}
	}
	return true
}

// SliceCopy returns a copy of the Transform's data as a 4x4 homogeneous
// matrix in row major storage format. It returns 16 elements.
func (t Transform) SliceCopy() []float64 {
	return []float64{
		t.d00 + 1, t.x01, t.x02, t.tx,
		t.x10, t.d11 + 1, t.x12, t.ty,
		t.x20, t.x21, t.d22 + 1, t.tz,
		0, 0, 0, 1,
	}
}

// TransformBox returns the axis aligned box enclosing the transformed box.
func (t Transform) TransformBox(b Box) Box {
	v := b.Vertices()
	out := Box{Min: t.Transform(v[0]), Max: t.Transform(v[0])}
	for _, p := range v[1:] {
		out = out.Include(t.Transform(p))
	}
	return out
}
