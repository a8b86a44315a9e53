package battle

import (
	"math"

	"github.com/Garsondee/little-boxes/internal/geom"
)

const (
	// ricochetVariance is the largest random turn added to a reflected projectile.
	ricochetVariance = 0.1
	// shieldArc is the half-angle in front of a shield that blocks projectiles.
	shieldArc = math.Pi / 4

	revivalBurst       = 40
	revivalParticleDR  = -3.0 / 100
	revivalParticleVel = 1
)

// behavior is the per-kind part of a unit: how it attacks, how fast it wants
// to move, and how it takes a hit.
type behavior interface {
	attack(u *Unit)
	idealSpeed(u *Unit) float64
	receiveAttack(u *Unit, source Entity, amount float64, knockback geom.Vector2D) bool
}

func behaviorFor(kind UnitKind) behavior {
	switch kind {
	case KindRanged, KindSmartRanged, KindCannon, KindLaser:
		return rangedBehavior{}
	case KindShieldBearer:
		return shieldBehavior{}
	case KindResurrector:
		return resurrectorBehavior{}
	default:
		return meleeBehavior{}
	}
}

// meleeBehavior strikes a point in front of the unit. Every enemy whose
// hitbox contains that point is hit.
type meleeBehavior struct{}

func (meleeBehavior) attack(u *Unit) {
	kb := geom.FromAngle(u.angle, u.stats.knockback)
	p := u.attackPoint()
	for _, o := range u.battle.units {
		if o.team != u.team && o.active && o.Hitbox().ContainsAbsPoint(p) {
			o.ReceiveAttack(u, u.stats.attackStrength, kb)
		}
	}
}

func (meleeBehavior) idealSpeed(u *Unit) float64 {
	if u.target == nil {
		return 0
	}
	return u.stats.topSpeed
}

func (meleeBehavior) receiveAttack(u *Unit, source Entity, amount float64, knockback geom.Vector2D) bool {
	return u.takeHit(source, amount, knockback)
}

// rangedBehavior fires the kind's projectile along the unit's facing and
// backs away from targets inside the standoff distance.
type rangedBehavior struct{}

func (rangedBehavior) attack(u *Unit) {
	if u.target == nil {
		return
	}
	st := u.stats
	spec := ProjectileSpec{
		Kind:     st.projectile,
		Owner:    u,
		Team:     u.team,
		Pos:      u.pos,
		Vel:      geom.FromAngle(u.angle, st.projectileSpeed),
		Strength: st.attackStrength,
		Inertia:  st.knockback / st.projectileSpeed,
	}
	switch st.projectile {
	case ProjectileGuided:
		spec.Target = u.target
		spec.Durability = 1
	case ProjectileCannonball:
		spec.FriendlyFire = true
		spec.Durability = cannonballDurability
	case ProjectileLaser:
		spec.Durability = Unlimited
	default:
		spec.FriendlyFire = true
		spec.Durability = 1
	}

	p := newProjectile(u.battle, spec)
	u.battle.addProjectile(p)
	if st.projectile == ProjectileLaser {
		u.beam = p
		u.vel = geom.Vector2D{}
	}
}

func (rangedBehavior) idealSpeed(u *Unit) float64 {
	if u.target == nil {
		return 0
	}
	if u.beam != nil && u.beam.active {
		return 0
	}
	if u.target.pos.Minus(u.pos).Length() < u.stats.standoff {
		return -u.stats.topSpeed
	}
	return u.stats.topSpeed
}

func (rangedBehavior) receiveAttack(u *Unit, source Entity, amount float64, knockback geom.Vector2D) bool {
	return u.takeHit(source, amount, knockback)
}

// shieldBehavior fights like melee but reflects blockable projectiles that
// arrive head-on.
type shieldBehavior struct {
	meleeBehavior
}

func (shieldBehavior) receiveAttack(u *Unit, source Entity, amount float64, knockback geom.Vector2D) bool {
	p, ok := source.(*Projectile)
	if !ok || !p.blockable {
		return u.takeHit(source, amount, knockback)
	}

	// A projectile arriving head-on travels opposite to the facing.
	incoming := u.angle + math.Pi
	if math.Abs(geom.AngleDiff(p.vel.Angle(), incoming)) >= shieldArc {
		return u.takeHit(source, amount, knockback)
	}

	u.ReceiveImpulse(knockback)

	v := p.vel
	v.RotateBy(-2 * (v.Angle() - u.angle))
	v.ScaleBy(-1)
	v.RotateBy(u.battle.rng.Float64() * ricochetVariance)
	p.vel = v
	p.move()

	u.battle.record(u, "combat", "block", sourceLabel(p), amount)
	return false
}

// resurrectorBehavior never attacks. Any hit revives every fallen teammate
// and consumes the resurrector instead.
type resurrectorBehavior struct {
	meleeBehavior
}

func (resurrectorBehavior) attack(*Unit) {}

func (resurrectorBehavior) receiveAttack(u *Unit, source Entity, _ float64, _ geom.Vector2D) bool {
	b := u.battle
	revived := 0
	for _, o := range b.units {
		if o.team != u.team || o.active || o.kind == KindResurrector {
			continue
		}
		o.Resurrect()
		revived++
		b.record(o, "unit", "resurrect", u.Label(), o.health)
		for i := 0; i < revivalBurst; i++ {
			b.addParticle(NewParticle(
				o.team,
				o.Hitbox().RandomInteriorPos(b.rng),
				o.vel.Plus(geom.RandomDirection(b.rng, revivalParticleVel)),
				3,
				revivalParticleDR,
			))
		}
	}

	u.active = false
	b.record(u, "combat", "absorb", sourceLabel(source), float64(revived))
	return true
}
