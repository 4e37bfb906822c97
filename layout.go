package frame

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Document receives the objects that make up a frame. It is the geometry
// backend a Box is built into: implementations create primitives in local
// coordinates and position them with a Placement. A clone shares its source's
// local geometry and replaces the source placement with its own.
type Document interface {
	AddPipe(label string, p Pipe, pl Placement) *Object
	AddCorner(label string, c Corner, pl Placement) *Object
	Clone(src *Object, pl Placement) *Object
}

// Create validates the box and builds its pipes and corners into doc.
// Nothing is added to doc if validation fails.
func (b Box) Create(doc Document) error {
	if err := b.Validate(); err != nil {
		return err
	}
	b.CreatePipes(doc)
	b.AddCorners(doc)
	return nil
}

// Layout builds the box into a new Assembly.
func Layout(b Box) (*Assembly, error) {
	a := NewAssembly()
	if err := b.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

// CreatePipes adds the twelve pipes of the frame. One pipe per axis is
// created next to the origin vertex and the remaining nine are clones of
// these moved along the box edges. Pipes are not validated here, use Create.
func (b Box) CreatePipes(doc Document) {
	lx, ly, lz := b.PipeLengths()
	pipe := Pipe{OD: b.POD, Thk: b.Thk}

	pipe.H = lz
	zpipe := doc.AddPipe("z-pipe", pipe, Translation(r3.Vec{Z: b.G}))
	pipe.H = lx
	xpipe := doc.AddPipe("x-pipe", pipe, NewPlacement(r3.Vec{X: b.G}, AxisY, 90))
	pipe.H = ly
	ypipe := doc.AddPipe("y-pipe", pipe, NewPlacement(r3.Vec{Y: b.G}, AxisX, -90))

	// z pipes are parallel to their source and need no rotation.
	doc.Clone(zpipe, Translation(r3.Vec{X: b.LX, Z: b.G}))
	doc.Clone(zpipe, Translation(r3.Vec{Y: b.LY, Z: b.G}))
	doc.Clone(zpipe, Translation(r3.Vec{X: b.LX, Y: b.LY, Z: b.G}))

	doc.Clone(xpipe, NewPlacement(r3.Vec{X: b.G, Y: b.LY}, AxisY, 90))
	doc.Clone(xpipe, NewPlacement(r3.Vec{X: b.G, Z: b.LZ}, AxisY, 90))
	doc.Clone(xpipe, NewPlacement(r3.Vec{X: b.G, Y: b.LY, Z: b.LZ}, AxisY, 90))

	doc.Clone(ypipe, NewPlacement(r3.Vec{X: b.LX, Y: b.G}, AxisX, -90))
	doc.Clone(ypipe, NewPlacement(r3.Vec{Y: b.G, Z: b.LZ}, AxisX, -90))
	doc.Clone(ypipe, NewPlacement(r3.Vec{X: b.LX, Y: b.G, Z: b.LZ}, AxisX, -90))
}

// AddCorners adds a corner fitting at the origin and seven clones at the
// remaining vertices. Each clone is rotated so the fitting's +X, +Y and +Z
// arms point along the three edges leaving its vertex.
func (b Box) AddCorners(doc Document) {
	corner := doc.AddCorner("corner", b.Corner, Translation(r3.Vec{}))

	doc.Clone(corner, NewPlacement(r3.Vec{Z: b.LZ}, AxisY, 90))
	doc.Clone(corner, NewPlacement(r3.Vec{X: b.LX, Z: b.LZ}, AxisY, 180))
	doc.Clone(corner, NewPlacement(r3.Vec{X: b.LX}, AxisY, 270))

	doc.Clone(corner, NewPlacement(r3.Vec{X: b.LX, Y: b.LY}, AxisZ, 180))
	doc.Clone(corner, NewPlacement(r3.Vec{Y: b.LY}, AxisZ, 270))

	doc.Clone(corner, NewPlacement(r3.Vec{Y: b.LY, Z: b.LZ}, AxisX, 180))
	// The far vertex has no single axis rotation mapping all three arms
	// inward: turn about Z first, then about X.
	first := NewPlacement(r3.Vec{}, AxisZ, 180)
	second := NewPlacement(r3.Vec{X: b.LX, Y: b.LY, Z: b.LZ}, AxisX, 90)
	doc.Clone(corner, second.Multiply(first))
}
