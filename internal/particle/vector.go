package particle

import (
	"math"
	"strconv"
)

// Vector is an energy-momentum vector stored as momentum plus mass.
type Vector struct {
	Px   float64 `json:"px" yaml:"px"`
	Py   float64 `json:"py" yaml:"py"`
	Pz   float64 `json:"pz" yaml:"pz"`
	Mass float64 `json:"mass" yaml:"mass"`
}

// P returns the momentum magnitude.
func (v Vector) P() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py + v.Pz*v.Pz)
}

// E returns the energy.
func (v Vector) E() float64 {
	return math.Sqrt(v.Px*v.Px + v.Py*v.Py + v.Pz*v.Pz + v.Mass*v.Mass)
}

// Pt returns the transverse momentum.
func (v Vector) Pt() float64 {
	return math.Hypot(v.Px, v.Py)
}

// Phi returns the azimuthal angle in (-pi, pi]; zero for a vector along z.
func (v Vector) Phi() float64 {
	if v.Px == 0 && v.Py == 0 {
		return 0
	}
	return math.Atan2(v.Py, v.Px)
}

// Eta returns the pseudorapidity. A vector along the beam axis has no finite
// eta; it reports ±1e10 like the usual Lorentz-vector libraries.
func (v Vector) Eta() float64 {
	pt := v.Pt()
	if pt == 0 {
		switch {
		case v.Pz > 0:
			return 1e10
		case v.Pz < 0:
			return -1e10
		default:
			return 0
		}
	}
	return math.Asinh(v.Pz / pt)
}

// formatFloat mirrors default stream formatting: six significant digits.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
