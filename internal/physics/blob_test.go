package physics

import (
	"math"
	"testing"

	"github.com/san-kum/lavasim/internal/geometry"
)

// constAmbient holds the sampled temperature fixed regardless of height.
type constAmbient float64

func (c constAmbient) Sample(y float64) float64 { return float64(c) }

func classicContainer(t *testing.T) *geometry.Container {
	t.Helper()
	c, err := geometry.NewContainer(0, 0, 60, 150, 300)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	return c
}

func invertedContainer(t *testing.T) *geometry.Container {
	t.Helper()
	c, err := geometry.NewContainer(0, 0, 150, 60, 300)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	return c
}

func TestDensityStrictlyDecreasing(t *testing.T) {
	fl := NewFluid()

	temps := []float64{-10, 0, 10, 20, 33.3, 46.3, 60, 100}
	for i := 1; i < len(temps); i++ {
		lo, hi := fl.Density(temps[i-1]), fl.Density(temps[i])
		if lo <= hi {
			t.Errorf("density(%f)=%f should exceed density(%f)=%f",
				temps[i-1], lo, temps[i], hi)
		}
	}
}

func TestDensityAtReferenceTemperature(t *testing.T) {
	fl := NewFluid()
	if got := fl.Density(fl.ReferenceTemp); got != fl.ReferenceDensity {
		t.Errorf("density at reference = %f, want %f", got, fl.ReferenceDensity)
	}
}

func TestBlobInheritsSpawnTemperature(t *testing.T) {
	fl := NewFluid()
	b := NewBlob(0, 250, 10, constAmbient(47.5), fl)

	if b.Temperature != 47.5 {
		t.Errorf("spawn temperature = %f, want 47.5", b.Temperature)
	}
	if b.Density != fl.Density(47.5) {
		t.Errorf("spawn density = %f, want %f", b.Density, fl.Density(47.5))
	}
	if b.VX != 0 || b.VY != 0 {
		t.Errorf("expected zero spawn velocity, got (%f, %f)", b.VX, b.VY)
	}
}

func TestHeatExchangeRelaxesTowardAmbient(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	b := NewBlob(0, 250, 10, constAmbient(20), fl)
	b.Update(constAmbient(60), c, fl, CollisionNormal)

	want := 20 + fl.HeatTransfer*(60-20)
	if math.Abs(b.Temperature-want) > 1e-12 {
		t.Errorf("temperature after update = %f, want %f", b.Temperature, want)
	}
	if math.Abs(b.Density-fl.Density(b.Temperature)) > 1e-12 {
		t.Errorf("density %f not derived from temperature %f", b.Density, b.Temperature)
	}
}

func TestHotBlobAcceleratesUpward(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	b := NewBlob(0, 250, 10, constAmbient(60), fl)
	b.Update(constAmbient(60), c, fl, CollisionNormal)

	if b.VY >= 0 {
		t.Errorf("hot blob should accelerate upward, vy = %f", b.VY)
	}
	if b.Y >= 250 {
		t.Errorf("hot blob should have risen, y = %f", b.Y)
	}
}

func TestColdBlobSinks(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	b := NewBlob(0, 150, 10, constAmbient(20), fl)
	b.Update(constAmbient(20), c, fl, CollisionNormal)

	if b.VY <= 0 {
		t.Errorf("cold blob should accelerate downward, vy = %f", b.VY)
	}
}

func TestVerticalContainment(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	t.Run("bottom", func(t *testing.T) {
		b := NewBlob(0, 280, 10, constAmbient(20), fl)
		b.VY = 50
		b.Update(constAmbient(20), c, fl, CollisionNormal)

		if want := c.BottomY() - b.Radius; b.Y != want {
			t.Errorf("y = %f, want clamp at %f", b.Y, want)
		}
		if b.VY != 0 {
			t.Errorf("vy after clamp = %f, want exactly 0", b.VY)
		}
	})

	t.Run("top", func(t *testing.T) {
		b := NewBlob(0, 20, 10, constAmbient(60), fl)
		b.VY = -50
		b.Update(constAmbient(60), c, fl, CollisionNormal)

		if want := c.TopY + b.Radius; b.Y != want {
			t.Errorf("y = %f, want clamp at %f", b.Y, want)
		}
		if b.VY != 0 {
			t.Errorf("vy after clamp = %f, want exactly 0", b.VY)
		}
	})
}

func TestLeftWallCollisionSlidesAlongWall(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	b := NewBlob(-45, 150, 25, constAmbient(40), fl)
	b.VY = -5
	b.Update(constAmbient(40), c, fl, CollisionNormal)

	if !b.CollidedLeft {
		t.Fatal("expected left wall collision")
	}
	d := c.LeftWall()
	if cross := b.VX*d.Y - b.VY*d.X; math.Abs(cross) > 1e-9 {
		t.Errorf("velocity not parallel to wall, cross = %e", cross)
	}
	// Sliding up the narrowing left wall pushes the blob toward center.
	if b.VX <= 0 {
		t.Errorf("expected positive vx after left wall slide, got %f", b.VX)
	}
}

func TestRightWallCollisionSlidesAlongWall(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	b := NewBlob(45, 150, 25, constAmbient(40), fl)
	b.VY = -5
	b.Update(constAmbient(40), c, fl, CollisionNormal)

	if !b.CollidedRight {
		t.Fatal("expected right wall collision")
	}
	d := c.RightWall()
	if cross := b.VX*d.Y - b.VY*d.X; math.Abs(cross) > 1e-9 {
		t.Errorf("velocity not parallel to wall, cross = %e", cross)
	}
	if b.VX >= 0 {
		t.Errorf("expected negative vx after right wall slide, got %f", b.VX)
	}
}

func TestNoCollisionMovingTowardWideEnd(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	// Near the left wall but moving down, toward the wide end: the wall
	// opens up, no redirect.
	b := NewBlob(-45, 150, 25, constAmbient(40), fl)
	b.VY = 5
	b.Update(constAmbient(40), c, fl, CollisionNormal)

	if b.CollidedLeft || b.CollidedRight {
		t.Error("unexpected collision while moving toward the wide end")
	}
	if b.VX != 0 {
		t.Errorf("vx should be untouched, got %f", b.VX)
	}
}

func TestInvertedContainerCollidesMovingDown(t *testing.T) {
	c := invertedContainer(t)
	fl := NewFluid()

	b := NewBlob(-45, 150, 25, constAmbient(20), fl)
	b.VY = 5
	b.Update(constAmbient(20), c, fl, CollisionNormal)

	if !b.CollidedLeft {
		t.Fatal("expected left wall collision in inverted container")
	}
	d := c.LeftWall()
	if cross := b.VX*d.Y - b.VY*d.X; math.Abs(cross) > 1e-9 {
		t.Errorf("velocity not parallel to wall, cross = %e", cross)
	}
}

func TestHalfWidthModeTriggersOnBound(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	// x - radius crosses the interpolated left bound at this depth.
	b := NewBlob(-40, 150, 25, constAmbient(40), fl)
	b.VX = -2
	b.Update(constAmbient(40), c, fl, CollisionHalfWidth)

	if !b.CollidedLeft {
		t.Fatal("expected left bound collision in halfwidth mode")
	}
	d := c.LeftWall()
	if cross := b.VX*d.Y - b.VY*d.X; math.Abs(cross) > 1e-9 {
		t.Errorf("velocity not parallel to wall, cross = %e", cross)
	}
}

func TestSustainedDriveDoesNotPenetrate(t *testing.T) {
	c := classicContainer(t)
	fl := NewFluid()

	b := NewBlob(-35, 200, 25, constAmbient(60), fl)
	for i := 0; i < 300; i++ {
		b.Update(constAmbient(60), c, fl, CollisionNormal)

		left, right := c.WallDistances(geometry.Vec2{X: b.X, Y: b.Y})
		if left < b.Radius-6 || right < b.Radius-6 {
			t.Fatalf("tick %d: blob penetrated wall, left=%f right=%f", i, left, right)
		}
	}
}

func TestFluidParams(t *testing.T) {
	fl := NewFluid()

	params := fl.GetParams()
	if params["gravity"] != fl.Gravity {
		t.Errorf("gravity = %f, want %f", params["gravity"], fl.Gravity)
	}

	if err := fl.SetParam("heatTransfer", 0.1); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if fl.HeatTransfer != 0.1 {
		t.Errorf("heat transfer = %f, want 0.1", fl.HeatTransfer)
	}

	if err := fl.SetParam("viscosity", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestCollisionModeValid(t *testing.T) {
	if !CollisionNormal.Valid() || !CollisionHalfWidth.Valid() {
		t.Error("builtin modes should be valid")
	}
	if CollisionMode("bounce").Valid() {
		t.Error("unknown mode should be invalid")
	}
}
