package matter

import (
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// PLA (polylactic acid) is the most widely used plastic filament material in 3D printing.
	PLA = ViscousMaterial{Name: "PLA", shrink: 0.2e-2, pullShrink: .45} // 0.2% shrinkage
	// PETG shrinks more than PLA and pulls harder on small holes.
	PETG = ViscousMaterial{Name: "PETG", shrink: 0.4e-2, pullShrink: .5}
)

type ViscousMaterial struct {
	Name string
	// shrink is the thermal contraction shrinkage of a material once the material
	// cools to room temperature after the heated bed is turned off.
	shrink float64
	// pullShrink takes into account viscoelastic shrinkage.
	pullShrink float64
}

// Lookup returns the material called name, ignoring case.
func Lookup(name string) (ViscousMaterial, bool) {
	for _, m := range []ViscousMaterial{PLA, PETG} {
		if strings.EqualFold(m.Name, name) {
			return m, true
		}
	}
	return ViscousMaterial{}, false
}

// ScaleFactor is the uniform scale that undoes thermal shrinkage.
func (m ViscousMaterial) ScaleFactor() float64 {
	return 1 / (1 - m.shrink)
}

// Scale scales a point about the origin to compensate shrinkage.
func (m ViscousMaterial) Scale(v r3.Vec) r3.Vec {
	return r3.Scale(m.ScaleFactor(), v)
}

// InternalDimScale returns the dimension to model so a printed hole comes
// out at real millimetres.
func (m ViscousMaterial) InternalDimScale(real float64) float64 {
	if real <= 0 {
		panic("InternalDimScale only works for non-zero dimensions")
	}
	return real*(m.shrink+1) + m.pullShrink
}
