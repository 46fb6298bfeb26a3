// Package physics models the wax blobs of the lamp: a lumped-parameter heat
// exchange with the surrounding solvent, a linear equation of state mapping
// temperature to density, buoyant vertical motion, and collision response
// against the container's canted walls.
package physics

import "fmt"

// Fluid holds the physical constants shared by every blob. The expansion
// coefficient is negative: density falls as temperature rises, which is what
// makes a heated blob buoyant.
type Fluid struct {
	Gravity          float64
	AmbientDensity   float64 // solvent density, kg/m^3
	ReferenceDensity float64 // blob density at the reference temperature
	ReferenceTemp    float64
	ExpansionCoeff   float64 // 1/K, negative
	HeatTransfer     float64 // relaxation coefficient in (0, 1)
	Dt               float64
}

// NewFluid returns wax-in-solvent constants tuned for a desk lamp.
func NewFluid() *Fluid {
	return &Fluid{
		Gravity:          9.81,
		AmbientDensity:   940,
		ReferenceDensity: 950,
		ReferenceTemp:    20.0,
		ExpansionCoeff:   -0.0004,
		HeatTransfer:     0.05,
		Dt:               0.1,
	}
}

// Density evaluates the equation of state at the given temperature.
func (f *Fluid) Density(temp float64) float64 {
	return f.ReferenceDensity * (1 + f.ExpansionCoeff*(temp-f.ReferenceTemp))
}

func (f *Fluid) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity":      f.Gravity,
		"ambient":      f.AmbientDensity,
		"refDensity":   f.ReferenceDensity,
		"expansion":    f.ExpansionCoeff,
		"heatTransfer": f.HeatTransfer,
	}
}

func (f *Fluid) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		f.Gravity = value
	case "ambient":
		f.AmbientDensity = value
	case "refDensity":
		f.ReferenceDensity = value
	case "expansion":
		f.ExpansionCoeff = value
	case "heatTransfer":
		f.HeatTransfer = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}
