// Package sim drives the coupled lamp simulation: a heat-diffusion field and
// a set of buoyant blobs advanced once per tick in a fixed order. The field
// is fully stepped before any blob samples it; blobs are mutually
// independent and only ever read the field.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/lavasim/internal/field"
	"github.com/san-kum/lavasim/internal/geometry"
	"github.com/san-kum/lavasim/internal/physics"
)

// spawnBand is the vertical range above the lamp floor that randomized
// blobs may start in, matching the lamp's pooled-wax look.
const spawnBand = 50.0

// Lamp owns the container, the temperature field, and the blobs. Nothing
// else mutates any of them.
type Lamp struct {
	Container *geometry.Container
	Field     *field.Field
	Fluid     *physics.Fluid
	Blobs     []*physics.Blob

	mode      physics.CollisionMode
	metrics   []Metric
	observers []Observer
	ticks     int
}

func New(c *geometry.Container, f *field.Field, fl *physics.Fluid, mode physics.CollisionMode) *Lamp {
	return &Lamp{
		Container: c,
		Field:     f,
		Fluid:     fl,
		mode:      mode,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (l *Lamp) AddMetric(m Metric)     { l.metrics = append(l.metrics, m) }
func (l *Lamp) AddObserver(o Observer) { l.observers = append(l.observers, o) }

// AddBlob places a blob explicitly. Its temperature is inherited from the
// field at its spawn height.
func (l *Lamp) AddBlob(x, y, radius float64) *physics.Blob {
	b := physics.NewBlob(x, y, radius, l.Field, l.Fluid)
	l.Blobs = append(l.Blobs, b)
	return b
}

// SpawnBlobs places count blobs at rest near the lamp floor, horizontally
// randomized between the walls. Deterministic for a given seed.
func (l *Lamp) SpawnBlobs(count int, radius float64, seed int64) {
	rng := rand.New(rand.NewSource(seed))
	c := l.Container

	for i := 0; i < count; i++ {
		y := c.BottomY() - radius - rng.Float64()*spawnBand

		// Keep the blob clear of the slanted walls at its spawn height.
		// A horizontal clearance of r/|n.x| gives a perpendicular
		// clearance of r against a canted wall.
		half := c.HalfWidthAt(y)
		leftOffset := wallClearance(radius, c.LeftNormal().X)
		rightOffset := wallClearance(radius, c.RightNormal().X)

		lo := c.CenterX - half + leftOffset
		hi := c.CenterX + half - rightOffset
		x := c.CenterX
		if hi > lo {
			x = lo + rng.Float64()*(hi-lo)
		}

		l.AddBlob(x, y, radius)
	}
}

func wallClearance(radius, normalX float64) float64 {
	nx := math.Abs(normalX)
	if nx < 1e-9 {
		return radius
	}
	return radius / nx
}

// Time returns the simulated time, ticks elapsed times the step size.
func (l *Lamp) Time() float64 { return float64(l.ticks) * l.Fluid.Dt }

func (l *Lamp) Ticks() int { return l.ticks }

// Step advances one tick: the field diffuses first, then every blob updates
// against the freshly stepped profile.
func (l *Lamp) Step() {
	l.Field.Step()
	for _, b := range l.Blobs {
		b.Update(l.Field, l.Container, l.Fluid, l.mode)
	}
	l.ticks++
}

// Run advances the simulation for the given number of ticks, recording a
// snapshot per tick and feeding metrics and observers. The context is
// checked every tick; cancellation returns the partial result.
func (l *Lamp) Run(ctx context.Context, ticks int) (*Result, error) {
	if ticks <= 0 {
		return nil, fmt.Errorf("ticks must be positive, got %d", ticks)
	}

	result := &Result{
		Snapshots: make([]Snapshot, 0, ticks+1),
		Metrics:   make(map[string]float64),
	}

	for _, m := range l.metrics {
		m.Reset()
	}

	result.Snapshots = append(result.Snapshots, snapshot(l.Blobs, l.Time()))

	for i := 0; i < ticks; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		l.Step()
		t := l.Time()

		for _, m := range l.metrics {
			m.Observe(l.Blobs, t)
		}
		for _, o := range l.observers {
			o.OnTick(l.Blobs, t)
		}

		result.Snapshots = append(result.Snapshots, snapshot(l.Blobs, t))
		result.TicksTaken++
	}

	for _, m := range l.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
