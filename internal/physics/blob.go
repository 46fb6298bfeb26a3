package physics

import "github.com/san-kum/lavasim/internal/geometry"

// Sampler provides read-only access to the ambient temperature at a vertical
// coordinate. The temperature field satisfies it; blobs never hold a
// reference to the field itself.
type Sampler interface {
	Sample(y float64) float64
}

// Blob is one buoyant wax particle. Density is always derived from
// temperature through the fluid's equation of state; no other state feeds it.
type Blob struct {
	X, Y        float64
	VX, VY      float64
	Radius      float64
	Temperature float64
	Density     float64

	// Collision readouts from the most recent update, surfaced by the
	// live view's stats pane.
	CollidedLeft  bool
	CollidedRight bool
	DistanceLeft  float64
	DistanceRight float64
}

// NewBlob spawns a blob at rest, inheriting its temperature from the ambient
// field at its initial height.
func NewBlob(x, y, radius float64, amb Sampler, fl *Fluid) *Blob {
	b := &Blob{
		X:           x,
		Y:           y,
		Radius:      radius,
		Temperature: amb.Sample(y),
	}
	b.Density = fl.Density(b.Temperature)
	return b
}

// Update advances the blob by one tick against the current field. The order
// is fixed: heat exchange, equation of state, buoyant integration, vertical
// containment, wall collision, horizontal integration.
func (b *Blob) Update(amb Sampler, c *geometry.Container, fl *Fluid, mode CollisionMode) {
	// Newton's law of heating: first-order relaxation toward the local
	// ambient temperature, not the diffusion equation.
	solventTemp := amb.Sample(b.Y)
	b.Temperature += fl.HeatTransfer * (solventTemp - b.Temperature)

	b.Density = fl.Density(b.Temperature)

	// Buoyancy: forward Euler, no sub-stepping.
	specificNetForce := (b.Density - fl.AmbientDensity) * fl.Gravity
	acceleration := specificNetForce / b.Density
	b.VY += acceleration * fl.Dt
	b.Y += b.VY

	// Inelastic stop at the top and bottom of the chamber.
	minY := c.TopY + b.Radius
	maxY := c.BottomY() - b.Radius
	if b.Y < minY {
		b.Y = minY
		b.VY = 0
	} else if b.Y > maxY {
		b.Y = maxY
		b.VY = 0
	}

	b.CollidedLeft, b.CollidedRight = b.collideWalls(c, mode)

	b.X += b.VX
}
