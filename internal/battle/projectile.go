package battle

import "github.com/Garsondee/little-boxes/internal/geom"

// Unlimited is the durability of a projectile that never runs out of hits.
const Unlimited = -1

const (
	projectileRadius     = 3
	cannonballRadius     = 6
	cannonballDurability = 10
	guidedAgility        = 0.05
	laserLifetime        = 15

	beamParticleSpeed = 0.1
	beamParticleSize  = 3
	beamParticleDR    = -3.0 / 60
)

// ProjectileSpec describes a projectile to fire.
type ProjectileSpec struct {
	Kind ProjectileKind
	// Owner is the firing unit. A projectile starts just outside its hitbox.
	Owner *Unit
	// Target is only used by guided projectiles.
	Target *Unit

	Team         int
	Pos, Vel     geom.Vector2D
	Strength     float64
	Inertia      float64
	FriendlyFire bool
	// Durability is the number of hits before the projectile is spent, or
	// Unlimited.
	Durability int
}

// Projectile is a moving hit test. It is active from creation until it runs
// out of hits, leaves the border, or (beams) its display lifetime ends.
type Projectile struct {
	entity
	battle *Battle

	kind         ProjectileKind
	owner        *Unit
	target       *Unit
	strength     float64
	inertia      float64
	friendlyFire bool
	blockable    bool
	remaining    int
	radius       float64

	// alreadyHit is set for kinds that may strike each unit only once.
	alreadyHit map[*Unit]bool

	origin   geom.Vector2D
	fired    bool
	timer    int
	lifetime int
}

func newProjectile(b *Battle, spec ProjectileSpec) *Projectile {
	p := &Projectile{
		entity:       entity{team: spec.Team, pos: spec.Pos, vel: spec.Vel, active: true},
		battle:       b,
		kind:         spec.Kind,
		owner:        spec.Owner,
		target:       spec.Target,
		strength:     spec.Strength,
		inertia:      spec.Inertia,
		friendlyFire: spec.FriendlyFire,
		blockable:    true,
		remaining:    spec.Durability,
		radius:       projectileRadius,
	}

	switch spec.Kind {
	case ProjectileCannonball:
		p.radius = cannonballRadius
		p.alreadyHit = map[*Unit]bool{}
	case ProjectileGuided:
		p.blockable = false
	case ProjectileLaser:
		p.blockable = false
		p.alreadyHit = map[*Unit]bool{}
		p.lifetime = laserLifetime
	}

	p.origin = p.pos
	if p.owner != nil && !p.vel.IsZero() {
		box := p.owner.Hitbox()
		for box.ContainsAbsPoint(p.pos) {
			p.move()
		}
	}
	return p
}

func (p *Projectile) Kind() ProjectileKind { return p.kind }
func (p *Projectile) Owner() *Unit         { return p.owner }
func (p *Projectile) Radius() float64      { return p.radius }
func (p *Projectile) FriendlyFire() bool   { return p.friendlyFire }
func (p *Projectile) Blockable() bool      { return p.blockable }

// RemainingHits is the hits left before the projectile is spent, or Unlimited.
func (p *Projectile) RemainingHits() int { return p.remaining }

// Origin is where a beam was fired from.
func (p *Projectile) Origin() geom.Vector2D { return p.origin }

func (p *Projectile) update() {
	if !p.active {
		return
	}
	switch p.kind {
	case ProjectileGuided:
		p.steer()
		p.advance()
	case ProjectileLaser:
		p.updateBeam()
	default:
		p.advance()
	}
}

// advance retires a spent or out-of-bounds projectile, otherwise moves it and
// resolves at most one hit.
func (p *Projectile) advance() {
	if p.remaining == 0 || !p.battle.border.ContainsAbsPoint(p.pos) {
		p.active = false
		return
	}
	p.move()
	p.checkHit()
}

func (p *Projectile) checkHit() {
	for _, u := range p.battle.units {
		if !u.active || (!p.friendlyFire && u.team == p.team) {
			continue
		}
		if p.kind == ProjectileLaser && u == p.owner {
			continue
		}
		if p.alreadyHit[u] {
			continue
		}
		if !u.Hitbox().ContainsAbsPoint(p.pos) {
			continue
		}

		landed := u.ReceiveAttack(p, p.strength, p.vel.ScaledBy(p.inertia))
		if p.alreadyHit != nil {
			p.alreadyHit[u] = true
		}
		if landed && p.remaining > 0 {
			p.remaining--
		}
		return
	}
}

// steer turns a guided projectile toward its target while the target lives.
func (p *Projectile) steer() {
	if p.target == nil || !p.target.active {
		return
	}
	want := p.target.pos.Minus(p.pos).Angle()
	p.vel.RotateBy(geom.StepAngle(p.vel.Angle(), want, guidedAgility))
}

// updateBeam runs the whole flight of a laser on its first update, leaving a
// trail of particles, then keeps the beam visible for its lifetime.
func (p *Projectile) updateBeam() {
	if p.owner == nil || !p.owner.active {
		p.active = false
		return
	}
	if !p.fired {
		p.fired = true
		if p.vel.IsZero() {
			p.active = false
			return
		}
		for p.active {
			p.advance()
			p.battle.addParticle(NewParticle(
				TeamNeutral,
				p.pos,
				geom.RandomDirection(p.battle.rng, beamParticleSpeed),
				beamParticleSize,
				beamParticleDR,
			))
		}
		p.active = true
		return
	}
	p.timer++
	if p.timer > p.lifetime {
		p.active = false
	}
}

// beamEnd is the first point along the beam's path outside the border.
func (p *Projectile) beamEnd(border geom.BoundingBox) geom.Vector2D {
	if p.vel.IsZero() {
		return p.origin
	}
	end := p.origin
	for border.ContainsAbsPoint(end) {
		end.Add(p.vel)
	}
	return end
}
