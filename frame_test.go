package frame_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ose-d3d/frame"
	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func equalVec(a, b r3.Vec) bool {
	return math.Abs(a.X-b.X) < tol && math.Abs(a.Y-b.Y) < tol && math.Abs(a.Z-b.Z) < tol
}

func testBox() frame.Box {
	b := frame.NewBox()
	b.LX, b.LY, b.LZ, b.G = 30, 20, 25, 2
	b.Corner.G = 2
	return b
}

func TestBoxValidate(t *testing.T) {
	for _, test := range []struct {
		name  string
		edit  func(b *frame.Box)
		field string
		msg   string
	}{
		{name: "ok", edit: func(b *frame.Box) {}},
		{name: "zero POD", edit: func(b *frame.Box) { b.POD = 0 }, field: "POD", msg: "POD=0 mm"},
		{name: "negative Thk", edit: func(b *frame.Box) { b.Thk = -1 }, field: "POD", msg: "Thk=-1 mm"},
		{name: "infinite POD", edit: func(b *frame.Box) { b.POD = math.Inf(1) }, field: "POD", msg: "POD=+Inf mm"},
		{name: "LX equal 2G", edit: func(b *frame.Box) { b.LX = 4 }, field: "LX", msg: "LX 4 mm"},
		{name: "LY short", edit: func(b *frame.Box) { b.LY = 1 }, field: "LY", msg: "LY 1 mm"},
		{name: "LZ short", edit: func(b *frame.Box) { b.LZ = 3.9 }, field: "LZ", msg: "LZ 3.9 mm"},
		{name: "LX infinite", edit: func(b *frame.Box) { b.LX = math.Inf(1) }, field: "LX", msg: "LX +Inf mm"},
		{name: "LZ NaN", edit: func(b *frame.Box) { b.LZ = math.NaN() }, field: "LZ", msg: "LZ NaN mm"},
		{name: "G infinite", edit: func(b *frame.Box) { b.G = math.Inf(-1) }, field: "G", msg: "G -Inf mm"},
	} {
		b := testBox()
		test.edit(&b)
		err := b.Validate()
		if test.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", test.name, err)
			}
			continue
		}
		if !errors.Is(err, frame.ErrImplausibleDimensions) {
			t.Errorf("%s: got %v, want ErrImplausibleDimensions", test.name, err)
			continue
		}
		var derr *frame.DimensionError
		if !errors.As(err, &derr) {
			t.Errorf("%s: %v is not a *DimensionError", test.name, err)
		} else if derr.Field != test.field {
			t.Errorf("%s: got field %q, want %q", test.name, derr.Field, test.field)
		}
		if !strings.Contains(err.Error(), test.msg) {
			t.Errorf("%s: message %q does not contain %q", test.name, err, test.msg)
		}
	}
}

func TestPipeLengths(t *testing.T) {
	x, y, z := testBox().PipeLengths()
	if x != 26 || y != 16 || z != 21 {
		t.Errorf("got pipe lengths %g, %g, %g, want 26, 16, 21", x, y, z)
	}
}

func TestCreateRejectsWithoutOutput(t *testing.T) {
	b := testBox()
	b.LZ = 1
	a := frame.NewAssembly()
	if err := b.Create(a); !errors.Is(err, frame.ErrImplausibleDimensions) {
		t.Fatalf("got %v, want ErrImplausibleDimensions", err)
	}
	if n := len(a.Objects()); n != 0 {
		t.Errorf("document has %d objects after failed create", n)
	}
}

func TestLayoutPipes(t *testing.T) {
	b := testBox()
	a, err := frame.Layout(b)
	if err != nil {
		t.Fatal(err)
	}
	if n := a.Count(frame.KindPipe); n != 12 {
		t.Fatalf("got %d pipes, want 12", n)
	}
	lengths := map[string]float64{"x": b.LX, "y": b.LY, "z": b.LZ}
	seen := make(map[[2]r3.Vec]bool)
	for _, o := range a.Objects() {
		if o.Kind != frame.KindPipe {
			continue
		}
		start := o.Placement.Apply(r3.Vec{})
		end := o.Placement.Apply(r3.Vec{Z: o.Pipe.H})
		dir := r3.Sub(end, start)
		var axis string
		var along float64
		switch {
		case math.Abs(dir.X) > tol:
			axis, along = "x", start.X
		case math.Abs(dir.Y) > tol:
			axis, along = "y", start.Y
		default:
			axis, along = "z", start.Z
		}
		if math.Abs(r3.Norm(dir)-(lengths[axis]-2*b.G)) > tol {
			t.Errorf("%s: length %g, want %g", o.Label, r3.Norm(dir), lengths[axis]-2*b.G)
		}
		if math.Abs(along-b.G) > tol {
			t.Errorf("%s: starts at %g along %s, want G=%g", o.Label, along, axis, b.G)
		}
		if dir.X < -tol || dir.Y < -tol || dir.Z < -tol {
			t.Errorf("%s: points along %v, want positive axis", o.Label, dir)
		}
		// every pipe must lie on a box edge.
		for _, c := range []float64{start.X, start.Y, start.Z} {
			if !(math.Abs(c) < tol || math.Abs(c-b.G) < tol || math.Abs(c-b.LX) < tol || math.Abs(c-b.LY) < tol || math.Abs(c-b.LZ) < tol) {
				t.Errorf("%s: start %v off the box edges", o.Label, start)
			}
		}
		key := [2]r3.Vec{start, end}
		if seen[key] {
			t.Errorf("%s: duplicate pipe at %v", o.Label, start)
		}
		seen[key] = true
	}
}

func TestLayoutCorners(t *testing.T) {
	b := testBox()
	a, err := frame.Layout(b)
	if err != nil {
		t.Fatal(err)
	}
	if n := a.Count(frame.KindCorner); n != 8 {
		t.Fatalf("got %d corners, want 8", n)
	}
	center := r3.Vec{X: b.LX / 2, Y: b.LY / 2, Z: b.LZ / 2}
	vertices := make(map[r3.Vec]bool)
	for _, o := range a.Objects() {
		if o.Kind != frame.KindCorner {
			continue
		}
		vertex := o.Placement.Apply(r3.Vec{})
		vertices[vertex] = true
		inward := r3.Sub(center, vertex)
		var covered r3.Vec
		for _, arm := range []r3.Vec{frame.AxisX, frame.AxisY, frame.AxisZ} {
			d := r3.Sub(o.Placement.Apply(arm), vertex)
			// arm must be axis aligned and point into the box.
			if r3.Dot(d, inward) <= 0 {
				t.Errorf("%s at %v: arm %v maps to %v, pointing outward", o.Label, vertex, arm, d)
			}
			covered = r3.Add(covered, r3.Vec{X: math.Abs(d.X), Y: math.Abs(d.Y), Z: math.Abs(d.Z)})
		}
		if !equalVec(covered, r3.Vec{X: 1, Y: 1, Z: 1}) {
			t.Errorf("%s at %v: arms do not cover all three axes: %v", o.Label, vertex, covered)
		}
	}
	if len(vertices) != 8 {
		t.Errorf("corners occupy %d distinct vertices, want 8", len(vertices))
	}
	for _, v := range []r3.Vec{{}, {X: b.LX, Y: b.LY, Z: b.LZ}, {Y: b.LY, Z: b.LZ}} {
		found := false
		for got := range vertices {
			if equalVec(got, v) {
				found = true
			}
		}
		if !found {
			t.Errorf("no corner at vertex %v", v)
		}
	}
}

func TestLayoutClones(t *testing.T) {
	a, err := frame.Layout(testBox())
	if err != nil {
		t.Fatal(err)
	}
	objs := a.Objects()
	if len(objs) != 20 {
		t.Fatalf("got %d objects, want 20", len(objs))
	}
	originals := 0
	for _, o := range objs {
		if !o.IsClone() {
			originals++
			continue
		}
		if o.Original().IsClone() {
			t.Errorf("%s: original is itself a clone", o.Label)
		}
		if o.Kind != o.Original().Kind {
			t.Errorf("%s: kind %v differs from original %v", o.Label, o.Kind, o.Original().Kind)
		}
	}
	if originals != 4 {
		t.Errorf("got %d original objects, want 4", originals)
	}
	want := []string{"z-pipe", "x-pipe", "y-pipe", "z-pipe001", "z-pipe002", "z-pipe003", "x-pipe001"}
	for i, label := range want {
		if objs[i].Label != label {
			t.Errorf("object %d: label %q, want %q", i, objs[i].Label, label)
		}
	}
	if last := objs[len(objs)-1].Label; last != "corner007" {
		t.Errorf("last label %q, want corner007", last)
	}
}

func TestCutList(t *testing.T) {
	b := testBox()
	a, err := frame.Layout(b)
	if err != nil {
		t.Fatal(err)
	}
	items := a.CutList()
	if len(items) != 3 {
		t.Fatalf("got %d cut list items, want 3", len(items))
	}
	wantLen := []float64{26, 21, 16}
	for i, it := range items {
		if it.Count != 4 {
			t.Errorf("item %d: count %d, want 4", i, it.Count)
		}
		if math.Abs(it.Length-wantLen[i]) > tol {
			t.Errorf("item %d: length %g, want %g", i, it.Length, wantLen[i])
		}
	}
	if got := a.TotalPipeLength(); math.Abs(got-4*(26+21+16)) > tol {
		t.Errorf("total pipe length %g", got)
	}
}

func TestAssemblyBounds(t *testing.T) {
	b := testBox()
	a, err := frame.Layout(b)
	if err != nil {
		t.Fatal(err)
	}
	bb := a.Bounds()
	if !equalVec(bb.Min, r3.Vec{}) || !equalVec(bb.Max, r3.Vec{X: b.LX, Y: b.LY, Z: b.LZ}) {
		t.Errorf("bounds %v", bb)
	}
}

func TestPlacementMultiply(t *testing.T) {
	first := frame.NewPlacement(r3.Vec{}, frame.AxisZ, 180)
	second := frame.NewPlacement(r3.Vec{X: 1, Y: 2, Z: 3}, frame.AxisX, 90)
	composed := second.Multiply(first)
	p := r3.Vec{X: 1, Y: 1, Z: 1}
	want := second.Apply(first.Apply(p))
	if got := composed.Apply(p); !equalVec(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	// zero value placement is the identity.
	if got := (frame.Placement{}).Apply(p); got != p {
		t.Errorf("zero placement moved %v to %v", p, got)
	}
	if !composed.Equals(composed.Multiply(frame.Placement{}), tol) {
		t.Error("multiplying by the zero placement changed the placement")
	}
}

func TestParseQuantity(t *testing.T) {
	for _, test := range []struct {
		in   string
		want float64
		bad  bool
	}{
		{in: "30 cm", want: 300},
		{in: "12 in", want: 304.8},
		{in: "12in", want: 304.8},
		{in: "1.315 in", want: 33.401},
		{in: "2.5mm", want: 2.5},
		{in: "8", want: 8},
		{in: "1 ft", want: 304.8},
		{in: "0.5 m", want: 500},
		{in: " 4 IN ", want: 101.6},
		{in: "", bad: true},
		{in: "cm", bad: true},
		{in: "3 furlongs", bad: true},
	} {
		got, err := frame.ParseQuantity(test.in)
		if test.bad {
			if !errors.Is(err, frame.ErrBadQuantity) {
				t.Errorf("%q: got %v, %v, want ErrBadQuantity", test.in, got, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", test.in, err)
			continue
		}
		if math.Abs(got-test.want) > 1e-9 {
			t.Errorf("%q: got %g, want %g", test.in, got, test.want)
		}
	}
}

func TestCornerValidate(t *testing.T) {
	if err := frame.DefaultCorner.Validate(); err != nil {
		t.Fatalf("default corner: %v", err)
	}
	c := frame.DefaultCorner
	c.PID = c.POD
	if err := c.Validate(); !errors.Is(err, frame.ErrImplausibleDimensions) {
		t.Errorf("got %v, want ErrImplausibleDimensions", err)
	}
	c = frame.DefaultCorner
	c.H = c.G
	if err := c.Validate(); !errors.Is(err, frame.ErrImplausibleDimensions) {
		t.Errorf("got %v, want ErrImplausibleDimensions", err)
	}
}
