package frame

import (
	"errors"
	"fmt"
	"math"
)

// ErrImplausibleDimensions is matched by every error returned from Box.Validate.
var ErrImplausibleDimensions = errors.New("implausible dimensions")

// DimensionError describes a dimension that can not produce a frame.
type DimensionError struct {
	// Field is the name of the offending dimension, i.e. "LX" or "POD".
	Field string
	msg   string
}

func (e *DimensionError) Error() string {
	return ErrImplausibleDimensions.Error() + ": " + e.msg
}

// Is reports target as ErrImplausibleDimensions.
func (e *DimensionError) Is(target error) bool { return target == ErrImplausibleDimensions }

func dimErr(field, format string, args ...interface{}) error {
	return &DimensionError{Field: field, msg: fmt.Sprintf(format, args...)}
}

// Corner holds the dimensions of an outer corner fitting. All lengths in millimetres.
//
// The fitting's canonical orientation has its vertex at the origin and three
// socket arms pointing along +X, +Y and +Z.
type Corner struct {
	// G is the distance from the vertex to where an inserted pipe ends.
	G float64
	// H is the arm length measured from the vertex.
	H float64
	// M is the arm outer diameter and hub side length.
	M float64
	// POD is the socket bore, the outer diameter of the accepted pipe.
	POD float64
	// PID is the diameter of the channel between hub and socket.
	PID float64
}

// Validate checks the corner fitting can be built.
func (c Corner) Validate() error {
	switch {
	case c.POD <= 0 || c.PID <= 0 || c.M <= 0:
		return dimErr("M", "corner diameters must be positive: M=%g mm, POD=%g mm, PID=%g mm", c.M, c.POD, c.PID)
	case c.PID >= c.POD:
		return dimErr("PID", "corner channel PID %g mm must be smaller than socket POD %g mm", c.PID, c.POD)
	case c.POD >= c.M:
		return dimErr("M", "corner arm M %g mm must be larger than socket POD %g mm", c.M, c.POD)
	case c.G < 0 || c.H <= c.G:
		return dimErr("H", "corner arm H %g mm must be larger than gap G %g mm", c.H, c.G)
	}
	return nil
}

// Pipe is a straight pipe segment along +Z starting at the origin.
type Pipe struct {
	OD  float64 // outer diameter
	Thk float64 // wall thickness
	H   float64 // length
}

// ID returns the inner diameter of the pipe.
func (p Pipe) ID() float64 { return p.OD - 2*p.Thk }

// Box is a rectangular frame of twelve pipes joined by eight corner fittings.
// All lengths in millimetres.
type Box struct {
	// G is the gap offset from each vertex to the start of a pipe.
	G float64
	// Span lengths of the box, measured between vertices.
	LX, LY, LZ float64
	// POD is the pipe outer diameter.
	POD float64
	// Thk is the pipe wall thickness.
	Thk float64
	// PID is the pipe inner diameter as listed by a catalog. It is informational;
	// pipe geometry is defined by POD and Thk.
	PID float64
	// Corner is the fitting placed at each vertex.
	Corner Corner
}

// DefaultCorner is the corner fitting used by NewBox.
var DefaultCorner = Corner{G: 20, H: 55, M: 38, POD: 30, PID: 22}

// NewBox returns a box with the default dimensions of 300x200x635 mm
// built from 30 mm pipe.
func NewBox() Box {
	return Box{
		G:      DefaultCorner.G,
		LX:     300,
		LY:     200,
		LZ:     25 * mmPerInch,
		POD:    30,
		Thk:    5,
		PID:    20,
		Corner: DefaultCorner,
	}
}

// Validate returns an error matching ErrImplausibleDimensions when the pipe
// dimensions are not positive, a dimension is not finite or a span is not
// larger than twice the gap.
func (b Box) Validate() error {
	if !(b.POD > 0 && b.Thk > 0) || math.IsInf(b.POD, 0) || math.IsInf(b.Thk, 0) {
		return dimErr("POD", "pipe dimensions must be positive, they are POD=%g mm and Thk=%g mm instead", b.POD, b.Thk)
	}
	if math.IsInf(b.G, 0) || math.IsNaN(b.G) {
		return dimErr("G", "the gap G %g mm must be finite", b.G)
	}
	for _, span := range []struct {
		name string
		l    float64
	}{{"LX", b.LX}, {"LY", b.LY}, {"LZ", b.LZ}} {
		if math.IsInf(span.l, 0) {
			return dimErr(span.name, "the length %s %g mm must be finite", span.name, span.l)
		}
		if !(span.l > 2*b.G) {
			return dimErr(span.name, "the length %s %g mm must be larger than 2*G %g mm", span.name, span.l, 2*b.G)
		}
	}
	return nil
}

// PipeLengths returns the lengths of the pipes parallel to X, Y and Z.
func (b Box) PipeLengths() (x, y, z float64) {
	return b.LX - 2*b.G, b.LY - 2*b.G, b.LZ - 2*b.G
}
