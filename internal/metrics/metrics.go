// Package metrics provides per-run scalar metrics for lamp simulations.
package metrics

import (
	"math"

	"github.com/san-kum/lavasim/internal/geometry"
	"github.com/san-kum/lavasim/internal/physics"
)

// RiseHeight measures how far the mean blob height has climbed above its
// first observed value. Positive values mean the blobs rose (Y decreased).
type RiseHeight struct {
	first   float64
	minMean float64
	samples int
}

func NewRiseHeight() *RiseHeight { return &RiseHeight{} }

func (r *RiseHeight) Name() string { return "rise_height" }

func (r *RiseHeight) Observe(blobs []*physics.Blob, t float64) {
	if len(blobs) == 0 {
		return
	}
	sum := 0.0
	for _, b := range blobs {
		sum += b.Y
	}
	mean := sum / float64(len(blobs))

	if r.samples == 0 {
		r.first = mean
		r.minMean = mean
	}
	r.minMean = math.Min(r.minMean, mean)
	r.samples++
}

func (r *RiseHeight) Value() float64 { return r.first - r.minMean }

func (r *RiseHeight) Reset() {
	r.first = 0
	r.minMean = 0
	r.samples = 0
}

// MeanTemperature averages blob temperature over blobs and ticks.
type MeanTemperature struct {
	total   float64
	samples int
}

func NewMeanTemperature() *MeanTemperature { return &MeanTemperature{} }

func (m *MeanTemperature) Name() string { return "mean_temperature" }

func (m *MeanTemperature) Observe(blobs []*physics.Blob, t float64) {
	for _, b := range blobs {
		m.total += b.Temperature
		m.samples++
	}
}

func (m *MeanTemperature) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanTemperature) Reset() {
	m.total = 0
	m.samples = 0
}

// WallPenetration tracks the deepest intrusion of any blob past a wall over
// the run. Zero means the collision response held every blob inside.
type WallPenetration struct {
	container *geometry.Container
	max       float64
}

func NewWallPenetration(c *geometry.Container) *WallPenetration {
	return &WallPenetration{container: c}
}

func (w *WallPenetration) Name() string { return "wall_penetration" }

func (w *WallPenetration) Observe(blobs []*physics.Blob, t float64) {
	for _, b := range blobs {
		left, right := w.container.WallDistances(geometry.Vec2{X: b.X, Y: b.Y})
		d := math.Min(left, right)
		if pen := b.Radius - d; pen > w.max {
			w.max = pen
		}
	}
}

func (w *WallPenetration) Value() float64 { return w.max }

func (w *WallPenetration) Reset() { w.max = 0 }
