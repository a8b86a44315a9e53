package geom

import (
	"errors"
	"math"
	"math/rand"
)

// separationSlop is added to every collision push so a resolved pair ends up
// strictly apart; touching boxes count as overlapping.
const separationSlop = 1e-6

// ErrNotCardinal is returned by DistanceToEdge when the side vector is not
// one of the four axis directions.
var ErrNotCardinal = errors.New("geom: side is not a cardinal direction")

// BoundingBox is a rectangle centred on Position and rotated by Angle, with
// extents [XMin,XMax]×[YMin,YMax] in its own local frame. It is used for
// hitboxes and for the battle border.
//
// Absolute (world) and relative (local) coordinates convert as
//
//	world = rotate(local, Angle) + Position
//	local = rotate(world - Position, -Angle)
type BoundingBox struct {
	Position   Vector2D
	XMin, XMax float64
	YMin, YMax float64
	Angle      float64
}

// NewBox returns a box centred on pos with symmetric half extents.
func NewBox(pos Vector2D, halfW, halfH, angle float64) BoundingBox {
	return BoundingBox{
		Position: pos,
		XMin:     -halfW,
		XMax:     halfW,
		YMin:     -halfH,
		YMax:     halfH,
		Angle:    angle,
	}
}

// BoxFromCorners builds an axis-aligned box spanning two absolute corners,
// with Position at their midpoint.
func BoxFromCorners(c1, c2 Vector2D) BoundingBox {
	pos := c1.Plus(c2).ScaledBy(0.5)
	return BoundingBox{
		Position: pos,
		XMin:     math.Min(c1.X, c2.X) - pos.X,
		XMax:     math.Max(c1.X, c2.X) - pos.X,
		YMin:     math.Min(c1.Y, c2.Y) - pos.Y,
		YMax:     math.Max(c1.Y, c2.Y) - pos.Y,
	}
}

// Width is the local X extent.
func (b BoundingBox) Width() float64 { return b.XMax - b.XMin }

// Height is the local Y extent.
func (b BoundingBox) Height() float64 { return b.YMax - b.YMin }

// ToRelative converts an absolute point into this box's local frame.
func (b BoundingBox) ToRelative(p Vector2D) Vector2D {
	p.Subtract(b.Position)
	p.RotateBy(-b.Angle)
	return p
}

// ToAbs converts a local point into absolute coordinates.
func (b BoundingBox) ToAbs(p Vector2D) Vector2D {
	p.RotateBy(b.Angle)
	p.Add(b.Position)
	return p
}

// ContainsAbsPoint reports whether p lies inside the box. Edges count as inside.
func (b BoundingBox) ContainsAbsPoint(p Vector2D) bool {
	return b.ContainsRelPoint(b.ToRelative(p))
}

func (b BoundingBox) ContainsRelPoint(p Vector2D) bool {
	return p.X <= b.XMax && p.X >= b.XMin && p.Y <= b.YMax && p.Y >= b.YMin
}

// FindClosestEdge returns the local-frame vector from p to the nearest edge,
// which is either purely along X or purely along Y. p should be inside the
// box. Ties favour the lower edge on each axis and the X axis overall.
func (b BoundingBox) FindClosestEdge(p Vector2D) Vector2D {
	r := b.ToRelative(p)

	dx := b.XMin - r.X
	if math.Abs(b.XMax-r.X) < math.Abs(dx) {
		dx = b.XMax - r.X
	}
	dy := b.YMin - r.Y
	if math.Abs(b.YMax-r.Y) < math.Abs(dy) {
		dy = b.YMax - r.Y
	}

	if math.Abs(dx) > math.Abs(dy) {
		return Vector2D{Y: dy}
	}
	return Vector2D{X: dx}
}

// DistanceToEdge returns the signed local distance from p to the edge that
// side points at. side must be an exact cardinal direction in the local frame.
func (b BoundingBox) DistanceToEdge(p, side Vector2D) (float64, error) {
	r := b.ToRelative(p)
	switch {
	case side.X > 0 && side.Y == 0:
		return b.XMax - r.X, nil
	case side.X < 0 && side.Y == 0:
		return b.XMin - r.X, nil
	case side.Y > 0 && side.X == 0:
		return b.YMax - r.Y, nil
	case side.Y < 0 && side.X == 0:
		return b.YMin - r.Y, nil
	}
	return 0, ErrNotCardinal
}

// RelCorners returns the local corners, clockwise from (XMin, YMin).
func (b BoundingBox) RelCorners() [4]Vector2D {
	return [4]Vector2D{
		{X: b.XMin, Y: b.YMin},
		{X: b.XMin, Y: b.YMax},
		{X: b.XMax, Y: b.YMax},
		{X: b.XMax, Y: b.YMin},
	}
}

// AbsCorners returns the corners in absolute coordinates, in RelCorners order.
func (b BoundingBox) AbsCorners() [4]Vector2D {
	cs := b.RelCorners()
	for i := range cs {
		cs[i] = b.ToAbs(cs[i])
	}
	return cs
}

// DetectOverlapOneWay reports whether any corner of other lies inside b.
func (b BoundingBox) DetectOverlapOneWay(other BoundingBox) bool {
	for _, c := range other.AbsCorners() {
		if b.ContainsAbsPoint(c) {
			return true
		}
	}
	return false
}

// DetectOverlapTwoWay reports whether either box has a corner inside the
// other. Touching counts as overlapping.
func DetectOverlapTwoWay(a, b BoundingBox) bool {
	return a.DetectOverlapOneWay(b) || b.DetectOverlapOneWay(a)
}

// CalcCollisionOneWay returns the shortest absolute translation of other,
// along one of b's four local axis directions, that carries every corner of
// other past the corresponding edge of b. Zero when no corner of other is
// inside b.
func (b BoundingBox) CalcCollisionOneWay(other BoundingBox) Vector2D {
	if !b.DetectOverlapOneWay(other) {
		return Vector2D{}
	}

	corners := other.AbsCorners()
	rel := make([]Vector2D, 0, len(corners))
	for _, c := range corners {
		rel = append(rel, b.ToRelative(c))
	}

	north := Vector2D{Y: 1}
	south := Vector2D{Y: -1}
	east := Vector2D{X: 1}
	west := Vector2D{X: -1}

	// Candidates in order north, south, east, west; strict < keeps the first
	// on ties.
	low, _ := MostExtreme(rel, south)
	best := Vector2D{Y: b.YMax - low.Y + separationSlop}

	high, _ := MostExtreme(rel, north)
	if c := (Vector2D{Y: b.YMin - high.Y - separationSlop}); c.Length() < best.Length() {
		best = c
	}

	left, _ := MostExtreme(rel, west)
	if c := (Vector2D{X: b.XMax - left.X + separationSlop}); c.Length() < best.Length() {
		best = c
	}

	right, _ := MostExtreme(rel, east)
	if c := (Vector2D{X: b.XMin - right.X - separationSlop}); c.Length() < best.Length() {
		best = c
	}

	best.RotateBy(b.Angle)
	return best
}

// CalcCollisionTwoWay returns the translation to apply to box2 that separates
// it from box1: the shorter of box1's push-out of box2 and the negation of
// box2's push-out of box1. Zero when the boxes do not overlap.
func CalcCollisionTwoWay(box1, box2 BoundingBox) Vector2D {
	c1 := box1.CalcCollisionOneWay(box2)
	c2 := box2.CalcCollisionOneWay(box1).ScaledBy(-1)

	if c2.Length() == 0 {
		return c1
	}
	if c1.Length() == 0 {
		return c2
	}
	if c1.Length() <= c2.Length() {
		return c1
	}
	return c2
}

// CalcContainment returns the absolute translation that brings every corner
// of other inside b. It returns zero when other already fits, and also when
// two corners demand opposite pushes along the same local axis: no single
// translation exists then and other is left where it is.
func (b BoundingBox) CalcContainment(other BoundingBox) Vector2D {
	var trans Vector2D

	for _, c := range other.AbsCorners() {
		c = b.ToRelative(c)

		if c.X > b.XMax {
			if trans.X > 0 {
				return Vector2D{}
			}
			trans.X = math.Min(trans.X, b.XMax-c.X)
		} else if c.X < b.XMin {
			if trans.X < 0 {
				return Vector2D{}
			}
			trans.X = math.Max(trans.X, b.XMin-c.X)
		}

		if c.Y > b.YMax {
			if trans.Y > 0 {
				return Vector2D{}
			}
			trans.Y = math.Min(trans.Y, b.YMax-c.Y)
		} else if c.Y < b.YMin {
			if trans.Y < 0 {
				return Vector2D{}
			}
			trans.Y = math.Max(trans.Y, b.YMin-c.Y)
		}
	}

	trans.RotateBy(b.Angle)
	return trans
}

// RandomInteriorPos samples a uniformly random absolute point inside b.
func (b BoundingBox) RandomInteriorPos(rng *rand.Rand) Vector2D {
	local := Vector2D{
		X: rng.Float64()*b.Width() + b.XMin,
		Y: rng.Float64()*b.Height() + b.YMin,
	}
	return b.ToAbs(local)
}
