package battle

import "github.com/Garsondee/little-boxes/internal/geom"

// Particle is a cosmetic dot that drifts and shrinks. It never collides.
type Particle struct {
	entity
	radius float64
	dr     float64
}

// NewParticle returns an active particle. dr is added to the radius each
// tick and should be negative.
func NewParticle(team int, pos, vel geom.Vector2D, radius, dr float64) *Particle {
	return &Particle{
		entity: entity{team: team, pos: pos, vel: vel, active: true},
		radius: radius,
		dr:     dr,
	}
}

func (p *Particle) Radius() float64 { return p.radius }

func (p *Particle) update(border geom.BoundingBox) {
	if !p.active {
		return
	}
	p.move()
	p.clampTo(border)
	p.radius += p.dr
	if p.radius <= 0 {
		p.active = false
	}
}
