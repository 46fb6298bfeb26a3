package geometry

import "math"

// Vec2 is a 2-D vector. Y grows downward, matching the lamp's screen-space
// convention: the top of the container has the smallest Y.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Dot(o Vec2) float64   { return v.X*o.X + v.Y*o.Y }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }
func (v Vec2) Norm() float64        { return math.Hypot(v.X, v.Y) }

// Perp returns v rotated 90 degrees counterclockwise in screen space.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Container is the fluid chamber of the lamp: a vertically oriented frustum
// (a trapezoid in 2-D). Either end may be the narrow one. All derived
// quantities (corners, wall direction vectors, inward normals) are computed
// once at construction and never change.
type Container struct {
	BottomWidth float64
	TopWidth    float64
	Height      float64
	CenterX     float64
	TopY        float64

	topLeft     Vec2
	topRight    Vec2
	bottomLeft  Vec2
	bottomRight Vec2

	leftDir  Vec2 // unit vector along the left wall, narrow end toward wide end
	rightDir Vec2
	leftN    Vec2 // unit inward normal of the left wall
	rightN   Vec2
}

// NewContainer validates the dimensions and derives the wall geometry.
// Degenerate shapes are a fatal configuration error, never a runtime check.
func NewContainer(centerX, topY, topWidth, bottomWidth, height float64) (*Container, error) {
	if height <= 0 || topWidth <= 0 || bottomWidth <= 0 {
		return nil, ErrNonPositiveDimension
	}

	c := &Container{
		BottomWidth: bottomWidth,
		TopWidth:    topWidth,
		Height:      height,
		CenterX:     centerX,
		TopY:        topY,
	}

	bottomY := topY + height
	c.topLeft = Vec2{centerX - topWidth/2, topY}
	c.topRight = Vec2{centerX + topWidth/2, topY}
	c.bottomLeft = Vec2{centerX - bottomWidth/2, bottomY}
	c.bottomRight = Vec2{centerX + bottomWidth/2, bottomY}

	var err error
	if c.leftDir, err = wallDirection(c.topLeft, c.bottomLeft, c.NarrowAtTop()); err != nil {
		return nil, err
	}
	if c.rightDir, err = wallDirection(c.topRight, c.bottomRight, c.NarrowAtTop()); err != nil {
		return nil, err
	}

	c.leftN = inwardNormal(c.leftDir, c.bottomLeft, Vec2{centerX, topY + height/2})
	c.rightN = inwardNormal(c.rightDir, c.bottomRight, Vec2{centerX, topY + height/2})

	return c, nil
}

// wallDirection returns the unit vector along a wall segment, oriented from
// the narrow end of the container toward the wide end.
func wallDirection(top, bottom Vec2, narrowTop bool) (Vec2, error) {
	d := bottom.Sub(top)
	if !narrowTop {
		d = top.Sub(bottom)
	}
	n := d.Norm()
	if n == 0 {
		return Vec2{}, ErrDegenerateWall
	}
	return d.Scale(1 / n), nil
}

// inwardNormal picks the perpendicular of dir that points into the chamber.
func inwardNormal(dir, onWall, interior Vec2) Vec2 {
	n := dir.Perp()
	if n.Dot(interior.Sub(onWall)) < 0 {
		n = n.Scale(-1)
	}
	return n
}

// NarrowAtTop reports which end of the frustum is the narrow one. A straight
// chamber counts as narrow at the top so collision checks stay well defined.
func (c *Container) NarrowAtTop() bool { return c.TopWidth <= c.BottomWidth }

func (c *Container) BottomY() float64 { return c.TopY + c.Height }

func (c *Container) LeftWall() Vec2  { return c.leftDir }
func (c *Container) RightWall() Vec2 { return c.rightDir }

func (c *Container) LeftNormal() Vec2  { return c.leftN }
func (c *Container) RightNormal() Vec2 { return c.rightN }

func (c *Container) TopLeft() Vec2     { return c.topLeft }
func (c *Container) TopRight() Vec2    { return c.topRight }
func (c *Container) BottomLeft() Vec2  { return c.bottomLeft }
func (c *Container) BottomRight() Vec2 { return c.bottomRight }

// Depth returns the fraction of the chamber height below the top edge,
// clamped to [0, 1].
func (c *Container) Depth(y float64) float64 {
	t := (y - c.TopY) / c.Height
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// HalfWidthAt interpolates the permitted horizontal half-width at depth y.
func (c *Container) HalfWidthAt(y float64) float64 {
	t := c.Depth(y)
	return (c.TopWidth*(1-t) + c.BottomWidth*t) / 2
}

// WallDistances returns the perpendicular distance from p to the left and
// right walls. Distances are positive inside the chamber.
func (c *Container) WallDistances(p Vec2) (left, right float64) {
	left = p.Sub(c.bottomLeft).Dot(c.leftN)
	right = p.Sub(c.bottomRight).Dot(c.rightN)
	return left, right
}
