package game

import (
	"image/color"
	"math"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/geom"
)

// shape is an outline in field coordinates. Filled shapes are closed.
type shape struct {
	pts    []geom.Vector2D
	fill   bool
	closed bool
	// radius > 0 marks a circle centred on pts[0].
	radius float64
}

// quadAlong returns a rectangle centred on c, halfLen along dir and halfWid
// across it.
func quadAlong(c, dir geom.Vector2D, halfLen, halfWid float64) []geom.Vector2D {
	north := dir
	north.ScaleTo(halfLen)
	east := dir.RotatedBy(-math.Pi / 2)
	east.ScaleTo(halfWid)
	return []geom.Vector2D{
		c.Plus(north).Plus(east),
		c.Plus(north).Minus(east),
		c.Minus(north).Minus(east),
		c.Minus(north).Plus(east),
	}
}

// glyphShapes returns the black symbol drawn over a unit's hitbox.
func glyphShapes(u battle.UnitState) []shape {
	box := u.Hitbox
	pos := box.Position
	facing := geom.FromAngle(box.Angle, 1)

	switch u.Glyph {
	case battle.GlyphCross:
		c := box.AbsCorners()
		return []shape{
			{pts: []geom.Vector2D{c[0], c[2]}},
			{pts: []geom.Vector2D{c[1], c[3]}},
		}
	case battle.GlyphTriangle:
		v := geom.FromAngle(box.Angle, 5)
		pts := make([]geom.Vector2D, 3)
		for i := range pts {
			pts[i] = pos.Plus(v)
			v.RotateBy(2 * math.Pi / 3)
		}
		return []shape{{pts: pts, fill: true, closed: true}}
	case battle.GlyphDot:
		return []shape{{pts: []geom.Vector2D{pos}, fill: true, radius: 4}}
	case battle.GlyphBigDot:
		return []shape{{pts: []geom.Vector2D{pos}, fill: true, radius: 6}}
	case battle.GlyphBolt:
		return []shape{{pts: quadAlong(pos, facing, 4, 2), fill: true, closed: true}}
	case battle.GlyphLens:
		return []shape{{pts: quadAlong(pos, facing, 3, 3), fill: true, closed: true}}
	case battle.GlyphShield:
		x := (2*box.XMax + box.XMin) / 3
		return []shape{{pts: []geom.Vector2D{
			box.ToAbs(geom.Vec(x, box.YMin)),
			box.ToAbs(geom.Vec(x, box.YMax)),
		}}}
	case battle.GlyphNestedBoxes:
		var out []shape
		for _, scale := range []float64{0.6, 0.2} {
			c := box.AbsCorners()
			pts := c[:]
			geom.Dilate(pts, pos, scale)
			out = append(out, shape{pts: pts, closed: true})
		}
		return out
	}
	return nil
}

// projectileShape returns the outline of a projectile: a circle, a bolt
// along its velocity for guided shots, or a beam from origin to the border.
func projectileShape(p battle.ProjectileState) shape {
	switch p.Kind {
	case battle.ProjectileGuided:
		if p.Vel.IsZero() {
			break
		}
		return shape{pts: quadAlong(p.Pos, p.Vel, 4, 2), fill: true, closed: true}
	case battle.ProjectileLaser:
		if p.Vel.IsZero() {
			break
		}
		ray := p.End.Minus(p.Origin)
		if ray.IsZero() {
			break
		}
		mid := p.Origin.Plus(ray.ScaledBy(0.5))
		return shape{pts: quadAlong(mid, ray, ray.Length()/2, 2), fill: true, closed: true}
	}
	return shape{pts: []geom.Vector2D{p.Pos}, fill: true, radius: p.Radius}
}

// projectileFill is white for shots that can hit anyone, else the team colour.
func projectileFill(p battle.ProjectileState) color.RGBA {
	if p.FriendlyFire {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	return battle.TeamColor(p.Team)
}
