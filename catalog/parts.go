package catalog

import (
	"fmt"

	"github.com/ose-d3d/frame"
)

// Pipe is a pipe catalog entry.
type Pipe struct {
	Name string
	ID   float64
	OD   float64
}

// Thk returns the pipe wall thickness.
func (p Pipe) Thk() float64 { return (p.OD - p.ID) / 2 }

// Corner is a corner fitting catalog entry.
type Corner struct {
	Name string
	frame.Corner
}

// Pipe looks up a pipe by name in a table with PipeColumns.
func (t *Table) Pipe(name string) (Pipe, error) {
	row, err := t.find("pipe", name)
	if err != nil {
		return Pipe{}, err
	}
	p := Pipe{Name: name}
	if p.ID, err = row.Length("ID"); err != nil {
		return Pipe{}, err
	}
	if p.OD, err = row.Length("OD"); err != nil {
		return Pipe{}, err
	}
	return p, nil
}

// Corner looks up a corner fitting by name in a table with CornerColumns.
func (t *Table) Corner(name string) (Corner, error) {
	row, err := t.find("corner", name)
	if err != nil {
		return Corner{}, err
	}
	c := Corner{Name: name}
	for _, f := range []struct {
		col string
		dst *float64
	}{
		{"G", &c.G}, {"H", &c.H}, {"M", &c.M}, {"POD", &c.POD}, {"PID", &c.PID},
	} {
		if *f.dst, err = row.Length(f.col); err != nil {
			return Corner{}, err
		}
	}
	return c, nil
}

// BoxFromTable builds frame boxes with pipe and corner dimensions taken
// from catalog tables.
type BoxFromTable struct {
	Pipes   *Table
	Corners *Table
	// Span lengths in millimetres.
	LX, LY, LZ float64
}

// NewBoxFromTable returns a BoxFromTable with 12x10x8 inch spans.
func NewBoxFromTable(pipes, corners *Table) *BoxFromTable {
	return &BoxFromTable{
		Pipes:   pipes,
		Corners: corners,
		LX:      12 * 25.4,
		LY:      10 * 25.4,
		LZ:      8 * 25.4,
	}
}

// Box resolves the named parts and returns the frame box. The gap is
// taken from the corner fitting and the wall thickness from the pipe
// diameters. A missing part returns an error wrapping ErrPartNotFound.
func (bt *BoxFromTable) Box(pipeName, cornerName string) (frame.Box, error) {
	corner, err := bt.Corners.Corner(cornerName)
	if err != nil {
		return frame.Box{}, err
	}
	pipe, err := bt.Pipes.Pipe(pipeName)
	if err != nil {
		return frame.Box{}, err
	}
	return frame.Box{
		G:      corner.G,
		LX:     bt.LX,
		LY:     bt.LY,
		LZ:     bt.LZ,
		POD:    pipe.OD,
		PID:    pipe.ID,
		Thk:    pipe.Thk(),
		Corner: corner.Corner,
	}, nil
}

// Create resolves the named parts and builds the box into doc.
func (bt *BoxFromTable) Create(doc frame.Document, pipeName, cornerName string) error {
	b, err := bt.Box(pipeName, cornerName)
	if err != nil {
		return err
	}
	if err := b.Create(doc); err != nil {
		return fmt.Errorf("pipe %q corner %q: %w", pipeName, cornerName, err)
	}
	return nil
}
