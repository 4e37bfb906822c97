package d3

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-12

func TestComposeTransformRotations(t *testing.T) {
	for _, test := range []struct {
		name  string
		axis  r3.Vec
		angle float64
		in    r3.Vec
		want  r3.Vec
	}{
		{"y90 x", r3.Vec{Y: 1}, math.Pi / 2, r3.Vec{X: 1}, r3.Vec{Z: -1}},
		{"y90 z", r3.Vec{Y: 1}, math.Pi / 2, r3.Vec{Z: 1}, r3.Vec{X: 1}},
		{"x-90 z", r3.Vec{X: 1}, -math.Pi / 2, r3.Vec{Z: 1}, r3.Vec{Y: 1}},
		{"z180 x", r3.Vec{Z: 1}, math.Pi, r3.Vec{X: 1}, r3.Vec{X: -1}},
		{"z270 y", r3.Vec{Z: 1}, 3 * math.Pi / 2, r3.Vec{Y: 1}, r3.Vec{X: 1}},
	} {
		tf := ComposeTransform(r3.Vec{}, r3.NewRotation(test.angle, test.axis))
		got := tf.Transform(test.in)
		if !EqualWithin(got, test.want, tol) {
			t.Errorf("%s: got %v, want %v", test.name, got, test.want)
		}
		// rotations keep lengths.
		v := r3.Vec{X: 1, Y: 2, Z: 3}
		if got := r3.Norm(tf.Transform(v)); math.Abs(got-r3.Norm(v)) > tol {
			t.Errorf("%s: length %g, want %g", test.name, got, r3.Norm(v))
		}
	}
}

func TestTransformZeroValueIsIdentity(t *testing.T) {
	p := r3.Vec{X: 1, Y: -2, Z: 3}
	if got := (Transform{}).Transform(p); got != p {
		t.Errorf("identity moved point %v to %v", p, got)
	}
	id := ComposeTransform(r3.Vec{}, r3.Rotation{Real: 1})
	if !id.Equals(Transform{}, tol) {
		t.Errorf("unit quaternion did not produce identity: %v", id.SliceCopy())
	}
}

func TestTransformBox(t *testing.T) {
	b := Box{Min: r3.Vec{}, Max: r3.Vec{X: 1, Y: 2, Z: 3}}
	tf := ComposeTransform(r3.Vec{X: 5}, r3.NewRotation(math.Pi/2, r3.Vec{Z: 1}))
	got := tf.TransformBox(b)
	want := Box{Min: r3.Vec{X: 3, Y: 0, Z: 0}, Max: r3.Vec{X: 5, Y: 1, Z: 3}}
	if !EqualWithin(got.Min, want.Min, 1e-9) || !EqualWithin(got.Max, want.Max, 1e-9) {
		t.Errorf("got %v, want %v", got, want)
	}
}
