package physics

import "github.com/san-kum/lavasim/internal/geometry"

// CollisionMode selects how wall contact is detected. Both modes share the
// same response: the velocity is projected onto the wall direction vector,
// removing its perpendicular component so the blob slides along the wall.
type CollisionMode string

const (
	// CollisionNormal triggers on the blob's perpendicular distance to a
	// wall while it is moving toward the container's narrow end.
	CollisionNormal CollisionMode = "normal"

	// CollisionHalfWidth triggers when the blob's extent crosses the
	// interpolated horizontal bound at its current depth.
	CollisionHalfWidth CollisionMode = "halfwidth"
)

func (m CollisionMode) Valid() bool {
	return m == CollisionNormal || m == CollisionHalfWidth
}

func (b *Blob) collideWalls(c *geometry.Container, mode CollisionMode) (left, right bool) {
	if mode == CollisionHalfWidth {
		return b.collideHalfWidth(c)
	}
	return b.collideNormal(c)
}

func (b *Blob) collideNormal(c *geometry.Container) (left, right bool) {
	pos := geometry.Vec2{X: b.X, Y: b.Y}
	b.DistanceLeft, b.DistanceRight = c.WallDistances(pos)

	// Only vertical motion toward the narrow end can drive the blob
	// further into a wall.
	towardNarrow := b.VY < 0
	if !c.NarrowAtTop() {
		towardNarrow = b.VY > 0
	}

	if b.DistanceLeft <= b.Radius && towardNarrow {
		b.slideAlong(c.LeftWall())
		return true, false
	}
	if b.DistanceRight <= b.Radius && towardNarrow {
		b.slideAlong(c.RightWall())
		return false, true
	}
	return false, false
}

func (b *Blob) collideHalfWidth(c *geometry.Container) (left, right bool) {
	half := c.HalfWidthAt(b.Y)
	b.DistanceLeft = b.X - (c.CenterX - half)
	b.DistanceRight = (c.CenterX + half) - b.X

	if b.X-b.Radius < c.CenterX-half {
		b.slideAlong(c.LeftWall())
		return true, false
	}
	if b.X+b.Radius > c.CenterX+half {
		b.slideAlong(c.RightWall())
		return false, true
	}
	return false, false
}

// slideAlong replaces the velocity with its projection onto the wall
// direction, a wall-sliding response with no restitution or friction.
func (b *Blob) slideAlong(dir geometry.Vec2) {
	s := geometry.Vec2{X: b.VX, Y: b.VY}.Dot(dir)
	b.VX = s * dir.X
	b.VY = s * dir.Y
}
