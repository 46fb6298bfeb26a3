package sim

import "github.com/san-kum/lavasim/internal/physics"

// Metric accumulates a scalar over a run, observed once per tick.
type Metric interface {
	Name() string
	Observe(blobs []*physics.Blob, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every completed tick.
type Observer interface {
	OnTick(blobs []*physics.Blob, t float64)
}

// BlobState is a copy of one blob's readable state at a tick boundary, the
// surface a renderer consumes.
type BlobState struct {
	X, Y        float64
	VX, VY      float64
	Radius      float64
	Temperature float64
	Density     float64
}

// Snapshot captures all blobs at one tick.
type Snapshot struct {
	Time  float64
	Blobs []BlobState
}

// Result is the record of a completed run.
type Result struct {
	Snapshots  []Snapshot
	Metrics    map[string]float64
	TicksTaken int
}

func snapshot(blobs []*physics.Blob, t float64) Snapshot {
	s := Snapshot{Time: t, Blobs: make([]BlobState, len(blobs))}
	for i, b := range blobs {
		s.Blobs[i] = BlobState{
			X: b.X, Y: b.Y,
			VX: b.VX, VY: b.VY,
			Radius:      b.Radius,
			Temperature: b.Temperature,
			Density:     b.Density,
		}
	}
	return s
}
