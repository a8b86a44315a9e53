package battle

import "github.com/Garsondee/little-boxes/internal/geom"

// Entity is anything a unit can receive an attack from.
type Entity interface {
	Team() int
	Position() geom.Vector2D
	Velocity() geom.Vector2D
	Active() bool
}

// entity is the state shared by units, projectiles and particles.
type entity struct {
	team   int
	pos    geom.Vector2D
	vel    geom.Vector2D
	active bool
}

func (e *entity) Team() int               { return e.team }
func (e *entity) Position() geom.Vector2D { return e.pos }
func (e *entity) Velocity() geom.Vector2D { return e.vel }
func (e *entity) Active() bool            { return e.active }

func (e *entity) move() {
	e.pos.Add(e.vel)
}

// clampTo keeps the point inside an axis-aligned border, zeroing the
// velocity component that hit a wall.
func (e *entity) clampTo(border geom.BoundingBox) {
	xMin := border.Position.X + border.XMin
	xMax := border.Position.X + border.XMax
	yMin := border.Position.Y + border.YMin
	yMax := border.Position.Y + border.YMax

	if e.pos.X > xMax {
		e.pos.X = xMax
		e.vel.X = 0
	}
	if e.pos.X < xMin {
		e.pos.X = xMin
		e.vel.X = 0
	}
	if e.pos.Y > yMax {
		e.pos.Y = yMax
		e.vel.Y = 0
	}
	if e.pos.Y < yMin {
		e.pos.Y = yMin
		e.vel.Y = 0
	}
}
