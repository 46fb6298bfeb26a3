// Package field implements the 1-D heat-diffusion temperature profile of the
// lamp's fluid column. The profile is advanced with an explicit
// finite-difference scheme with Dirichlet boundaries: the top and bottom
// samples stay pinned to the configured boundary temperatures after every
// step while interior samples diffuse.
//
// Stability of the explicit scheme requires alpha*dt/dx^2 <= 0.5. That is a
// configuration discipline, asserted by tests, not a per-step runtime check.
package field

import "errors"

// ErrTooFewSamples indicates a field resolution below the minimum of three
// samples (two boundaries plus at least one interior point).
var ErrTooFewSamples = errors.New("field: need at least 3 samples")

// Field is the vertical temperature profile. Sample 0 is the top boundary,
// sample N-1 the bottom boundary. The resolution is fixed for the field's
// lifetime, commonly one sample per unit of container height.
type Field struct {
	temps []float64
	buf   []float64

	topY   float64
	height float64

	topTemp    float64
	bottomTemp float64

	alpha float64
	dt    float64
	dx    float64
}

// New builds a field of n samples spanning [topY, topY+height], initialized
// to a linear gradient between the boundary temperatures.
func New(n int, topY, height, topTemp, bottomTemp, alpha, dt, dx float64) (*Field, error) {
	if n < 3 {
		return nil, ErrTooFewSamples
	}

	f := &Field{
		temps:      make([]float64, n),
		buf:        make([]float64, n),
		topY:       topY,
		height:     height,
		topTemp:    topTemp,
		bottomTemp: bottomTemp,
		alpha:      alpha,
		dt:         dt,
		dx:         dx,
	}
	for i := range f.temps {
		f.temps[i] = topTemp + (bottomTemp-topTemp)*float64(i)/float64(n)
	}
	f.temps[0] = topTemp
	f.temps[n-1] = bottomTemp
	return f, nil
}

func (f *Field) Len() int { return len(f.temps) }

// Step advances the profile by one time increment, mutating it in place.
func (f *Field) Step() {
	n := len(f.temps)
	r := f.alpha * f.dt / (f.dx * f.dx)

	copy(f.buf, f.temps)
	for i := 1; i < n-1; i++ {
		f.buf[i] = f.temps[i] + r*(f.temps[i+1]-2*f.temps[i]+f.temps[i-1])
	}
	f.buf[0] = f.topTemp
	f.buf[n-1] = f.bottomTemp

	f.temps, f.buf = f.buf, f.temps
}

// Sample maps a vertical coordinate to the nearest profile index and returns
// that sample's temperature. Out-of-range coordinates clamp to the
// boundaries; sampling never fails.
func (f *Field) Sample(y float64) float64 {
	return f.temps[f.indexAt(y)]
}

func (f *Field) indexAt(y float64) int {
	n := len(f.temps)
	i := int((y - f.topY) / f.height * float64(n-1))
	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// At returns the raw sample at index i.
func (f *Field) At(i int) float64 { return f.temps[i] }

// Set overwrites the sample at index i. Boundary samples are re-pinned on
// the next Step.
func (f *Field) Set(i int, temp float64) { f.temps[i] = temp }

// Profile returns a copy of the sample sequence for renderers.
func (f *Field) Profile() []float64 {
	p := make([]float64, len(f.temps))
	copy(p, f.temps)
	return p
}

// Normalized maps a temperature to [0, 1] between the boundary temperatures,
// used by the live view's gradient column.
func (f *Field) Normalized(temp float64) float64 {
	if f.bottomTemp == f.topTemp {
		return 0
	}
	t := (temp - f.topTemp) / (f.bottomTemp - f.topTemp)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// DiffusionNumber returns alpha*dt/dx^2. Values above 0.5 make the explicit
// scheme oscillate and grow.
func (f *Field) DiffusionNumber() float64 {
	return f.alpha * f.dt / (f.dx * f.dx)
}

func (f *Field) TopTemp() float64    { return f.topTemp }
func (f *Field) BottomTemp() float64 { return f.bottomTemp }
