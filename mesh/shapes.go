package mesh

import (
	"fmt"
	"math"
	"runtime/debug"

	"github.com/ose-d3d/frame"
	"github.com/ose-d3d/frame/helpers/matter"
	"github.com/ose-d3d/frame/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// MinSegments is the smallest number of facets allowed around a circle.
const MinSegments = 3

type shapeErr struct {
	panicObj interface{}
	stack    string
}

func (s *shapeErr) Error() string {
	return fmt.Sprintf("%s", s.panicObj)
}

func (s *shapeErr) Unwrap() error {
	err, _ := s.panicObj.(error)
	return err
}

// Tube returns the triangles of a hollow cylinder of outer diameter od and
// inner diameter id extending along +Z from z=0 to z=h. With id == 0 the
// tube is a solid rod.
func Tube(od, id, h float64, segments int) (model []Triangle3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return mustTube(od, id, 0, h, segments), err
}

// Fitting returns the triangles of a three way corner fitting with its
// vertex at the origin and sockets opening along +X, +Y and +Z. A non-nil
// material grows the socket bores and scales the part to compensate print
// shrinkage.
func Fitting(c frame.Corner, segments int, material *matter.ViscousMaterial) (model []Triangle3, err error) {
	defer func() {
		if a := recover(); a != nil {
			err = &shapeErr{
				panicObj: a,
				stack:    string(debug.Stack()),
			}
		}
	}()
	return mustFitting(c, segments, material), err
}

func mustTube(od, id, z0, z1 float64, segments int) []Triangle3 {
	switch {
	case segments < MinSegments:
		panic(fmt.Sprintf("need at least %d segments, got %d", MinSegments, segments))
	case od <= 0:
		panic("tube outer diameter must be positive")
	case id < 0 || id >= od:
		panic("tube inner diameter must be in [0, od)")
	case z1 <= z0:
		panic("tube length must be positive")
	}
	ro, ri := od/2, id/2
	solid := ri == 0
	model := make([]Triangle3, 0, 8*segments)
	at := func(r, a, z float64) r3.Vec {
		return r3.Vec{X: r * math.Cos(a), Y: r * math.Sin(a), Z: z}
	}
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a0, a1 := float64(i)*step, float64(i+1)*step
		if i == segments-1 {
			a1 = 0 // close the seam exactly.
		}
		b0, b1 := at(ro, a0, z0), at(ro, a1, z0)
		t0, t1 := at(ro, a0, z1), at(ro, a1, z1)
		model = append(model, Triangle3{b0, b1, t1}, Triangle3{b0, t1, t0})
		if solid {
			top, bot := r3.Vec{Z: z1}, r3.Vec{Z: z0}
			model = append(model, Triangle3{top, t0, t1}, Triangle3{bot, b1, b0})
			continue
		}
		ib0, ib1 := at(ri, a0, z0), at(ri, a1, z0)
		it0, it1 := at(ri, a0, z1), at(ri, a1, z1)
		model = append(model,
			// bore faces the axis.
			Triangle3{ib0, it1, ib1}, Triangle3{ib0, it0, it1},
			// top ring.
			Triangle3{it0, t0, t1}, Triangle3{it0, t1, it1},
			// bottom ring.
			Triangle3{ib0, b1, b0}, Triangle3{ib0, ib1, b1},
		)
	}
	return model
}

// mustCube returns an axis aligned cube of side s centered at the origin.
func mustCube(s float64) []Triangle3 {
	if s <= 0 {
		panic("cube side must be positive")
	}
	v := d3.NewBox(r3.Vec{}, d3.Elem(s)).Vertices()
	// faces as quads of vertex indices wound counter-clockwise from outside.
	quads := [6][4]int{
		{0, 2, 6, 4}, // -Z
		{1, 5, 7, 3}, // +Z
		{0, 4, 5, 1}, // -Y
		{2, 3, 7, 6}, // +Y
		{0, 1, 3, 2}, // -X
		{4, 6, 7, 5}, // +X
	}
	model := make([]Triangle3, 0, 12)
	for _, q := range quads {
		model = append(model,
			Triangle3{v[q[0]], v[q[1]], v[q[2]]},
			Triangle3{v[q[0]], v[q[2]], v[q[3]]},
		)
	}
	return model
}

func mustFitting(c frame.Corner, segments int, material *matter.ViscousMaterial) []Triangle3 {
	if err := c.Validate(); err != nil {
		panic(err)
	}
	bore := c.POD
	if material != nil {
		bore = material.InternalDimScale(c.POD)
		if bore >= c.M {
			panic(fmt.Sprintf("compensated socket bore %g exceeds fitting diameter %g", bore, c.M))
		}
	}
	hub := c.M / 2
	var arm []Triangle3
	if c.G > hub {
		// channel between hub and socket shoulder.
		arm = append(arm, mustTube(c.M, c.PID, hub, c.G, segments)...)
	}
	if start := math.Max(c.G, hub); c.H > start {
		arm = append(arm, mustTube(c.M, bore, start, c.H, segments)...)
	}
	model := mustCube(c.M)
	for _, rot := range []r3.Rotation{
		r3.NewRotation(math.Pi/2, frame.AxisY),  // Z to X.
		r3.NewRotation(-math.Pi/2, frame.AxisX), // Z to Y.
		{Real: 1},
	} {
		m := d3.ComposeTransform(r3.Vec{}, rot)
		for _, t := range arm {
			model = append(model, t.Transform(m))
		}
	}
	if material != nil {
		for i, t := range model {
			model[i] = Triangle3{material.Scale(t[0]), material.Scale(t[1]), material.Scale(t[2])}
		}
	}
	return model
}
