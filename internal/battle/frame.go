package battle

import (
	"github.com/google/uuid"

	"github.com/Garsondee/little-boxes/internal/geom"
)

// UnitState is a copy of what a renderer needs to draw one unit.
type UnitState struct {
	ID         int
	Kind       UnitKind
	Team       int
	Hitbox     geom.BoundingBox
	Velocity   geom.Vector2D
	Health     float64
	BaseHealth float64
	Active     bool
	Glyph      Glyph
	Reach      float64
	// TargetID is the current target's ID, or 0.
	TargetID int
}

// ProjectileState is a copy of one projectile. For beams, Origin and End are
// the two ends of the drawn ray.
type ProjectileState struct {
	Kind         ProjectileKind
	Team         int
	Pos          geom.Vector2D
	Vel          geom.Vector2D
	Radius       float64
	FriendlyFire bool
	Origin       geom.Vector2D
	End          geom.Vector2D
}

type ParticleState struct {
	Team   int
	Pos    geom.Vector2D
	Radius float64
}

// Frame is a consistent copy of the battle taken between ticks.
type Frame struct {
	BattleID         uuid.UUID
	Tick             int
	Border           geom.BoundingBox
	TeamArea         *geom.BoundingBox
	Units            []UnitState
	Projectiles      []ProjectileState
	Particles        []ParticleState
	Banner           int
	Paused           bool
	ParticlesEnabled bool
	Antialias        bool
}

// Alive counts active units per team.
func (f Frame) Alive() map[int]int {
	out := map[int]int{}
	for _, u := range f.Units {
		if u.Active {
			out[u.Team]++
		}
	}
	return out
}

// Snapshot copies the current state for rendering on another goroutine.
func (b *Battle) Snapshot() Frame {
	b.mu.RLock()
	defer b.mu.RUnlock()

	f := Frame{
		BattleID:         b.ID,
		Tick:             b.tick,
		Border:           b.border,
		Banner:           b.banner,
		Paused:           b.paused,
		ParticlesEnabled: b.showParticles,
		Antialias:        b.antialias,
		Units:            make([]UnitState, 0, len(b.units)),
		Projectiles:      make([]ProjectileState, 0, len(b.projectiles)),
	}
	if b.teamArea != nil {
		a := *b.teamArea
		f.TeamArea = &a
	}

	for _, u := range b.units {
		target := 0
		if u.target != nil {
			target = u.target.id
		}
		f.Units = append(f.Units, UnitState{
			ID:         u.id,
			Kind:       u.kind,
			Team:       u.team,
			Hitbox:     u.Hitbox(),
			Velocity:   u.vel,
			Health:     u.health,
			BaseHealth: u.stats.baseHealth,
			Active:     u.active,
			Glyph:      u.stats.glyph,
			Reach:      u.stats.reach,
			TargetID:   target,
		})
	}
	for _, p := range b.projectiles {
		ps := ProjectileState{
			Kind:         p.kind,
			Team:         p.team,
			Pos:          p.pos,
			Vel:          p.vel,
			Radius:       p.radius,
			FriendlyFire: p.friendlyFire,
			Origin:       p.origin,
			End:          p.pos,
		}
		if p.kind == ProjectileLaser {
			ps.End = p.beamEnd(b.border)
		}
		f.Projectiles = append(f.Projectiles, ps)
	}
	if b.showParticles {
		f.Particles = make([]ParticleState, 0, len(b.particles))
		for _, p := range b.particles {
			f.Particles = append(f.Particles, ParticleState{Team: p.team, Pos: p.pos, Radius: p.radius})
		}
	}
	return f
}
