package battle

import (
	"fmt"

	"github.com/Garsondee/little-boxes/internal/geom"
)

// Unit is an autonomous fighter. A new unit is inactive: it only takes part
// in the battle after Resurrect (SpawnUnit and AddUnit do this).
type Unit struct {
	entity

	id       int
	kind     UnitKind
	stats    unitStats
	behavior behavior
	battle   *Battle

	angle    float64
	health   float64
	cooldown int
	target   *Unit

	// beam is the laser currently fired by this unit, if any.
	beam *Projectile
}

func newUnit(b *Battle, id int, kind UnitKind, team int, pos geom.Vector2D, angle float64) *Unit {
	st := statsTable[kind]
	u := &Unit{
		entity:   entity{team: team, pos: pos},
		id:       id,
		kind:     kind,
		stats:    st,
		behavior: behaviorFor(kind),
		battle:   b,
		angle:    angle,
		health:   st.baseHealth,
	}
	u.cooldown = b.rng.Intn(st.attackInterval)
	return u
}

func (u *Unit) ID() int             { return u.id }
func (u *Unit) Kind() UnitKind      { return u.kind }
func (u *Unit) Angle() float64      { return u.angle }
func (u *Unit) Health() float64     { return u.health }
func (u *Unit) BaseHealth() float64 { return u.stats.baseHealth }

// Target is the enemy chosen on the last update, or nil.
func (u *Unit) Target() *Unit { return u.target }

// Label is a short identifier for logs, e.g. "#12".
func (u *Unit) Label() string { return fmt.Sprintf("#%d", u.id) }

// Hitbox returns the unit's oriented collision box in world space.
func (u *Unit) Hitbox() geom.BoundingBox {
	return geom.NewBox(u.pos, u.stats.halfW, u.stats.halfH, u.angle)
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s[team=%s health=%.1f pos=%v vel=%v rot=%.3f]",
		u.stats.name, TeamName(u.team), u.health, u.pos, u.vel, u.angle)
}

// Resurrect restores full health and activates the unit.
func (u *Unit) Resurrect() {
	u.health = u.stats.baseHealth
	u.active = true
}

func (u *Unit) update() {
	if !u.active {
		return
	}
	if u.checkHealth() {
		return
	}

	u.findNearestTarget()
	u.rotate()
	u.accelerate()
	u.move()
	u.checkCollision()
	u.checkAttack()
	u.emitTrail()
}

// checkHealth deactivates the unit once its health is spent and reports
// whether that happened.
func (u *Unit) checkHealth() bool {
	if u.health > 0 {
		return false
	}
	u.health = 0
	if u.active {
		u.active = false
		u.battle.record(u, "combat", "kill", u.stats.name, 0)
	}
	return true
}

// findNearestTarget picks the closest active unit of another team. When
// there is none it clears the target and raises the banner for this team.
func (u *Unit) findNearestTarget() {
	var best *Unit
	bestDist := 0.0
	for _, o := range u.battle.units {
		if o.team == u.team || !o.active {
			continue
		}
		d := o.pos.Minus(u.pos).Length()
		if best == nil || d < bestDist {
			best, bestDist = o, d
		}
	}
	u.target = best
	if best == nil {
		u.battle.setBanner(u.team)
	} else {
		u.battle.setBanner(TeamNeutral)
	}
}

func (u *Unit) rotate() {
	if u.target == nil {
		return
	}
	want := u.target.pos.Minus(u.pos).Angle()
	u.angle += geom.StepAngle(u.angle, want, u.stats.rotationSpeed)
}

func (u *Unit) accelerate() {
	ideal := geom.FromAngle(u.angle, u.behavior.idealSpeed(u))
	dv := ideal.Minus(u.vel)
	if dv.Length() > u.stats.acceleration {
		dv.ScaleTo(u.stats.acceleration)
	}
	u.vel.Add(dv)
}

func (u *Unit) move() {
	u.entity.move()
	u.checkBorders()
}

// checkBorders pulls the whole hitbox back inside the battle border.
func (u *Unit) checkBorders() {
	u.pos.Add(u.battle.border.CalcContainment(u.Hitbox()))
}

func (u *Unit) checkCollision() {
	for _, o := range u.battle.units {
		if o == u || !o.active {
			continue
		}
		u.collide(o)
	}
}

// collide separates two overlapping units. Each moves by the share of the
// separation equal to the other's fraction of the total inertia.
func (u *Unit) collide(o *Unit) {
	a, b := u.Hitbox(), o.Hitbox()
	if !geom.DetectOverlapTwoWay(a, b) {
		return
	}
	t := geom.CalcCollisionTwoWay(a, b)
	if t.IsZero() {
		return
	}

	total := u.stats.inertia + o.stats.inertia
	u.pos.Add(t.ScaledBy(-o.stats.inertia / total))
	o.pos.Add(t.ScaledBy(u.stats.inertia / total))

	u.checkBorders()
	o.checkBorders()
}

func (u *Unit) checkAttack() {
	u.cooldown--
	if u.cooldown <= 0 {
		u.behavior.attack(u)
		u.cooldown = u.stats.attackInterval
	}
}

// emitTrail spawns one particle per whole unit of the particle rate plus
// one more with probability equal to the remainder.
func (u *Unit) emitTrail() {
	rate := u.stats.particleRate
	for ; rate >= 1; rate-- {
		u.spawnTrailParticle()
	}
	if u.battle.rng.Float64() < rate {
		u.spawnTrailParticle()
	}
}

func (u *Unit) spawnTrailParticle() {
	rng := u.battle.rng
	size := u.stats.particleSize
	pos := u.Hitbox().RandomInteriorPos(rng)
	u.battle.addParticle(NewParticle(
		TeamNeutral,
		pos,
		geom.RandomDirection(rng, u.stats.particleSpeed),
		size,
		-size/u.stats.particleDuration,
	))
	u.battle.recordVerbose(u, "unit", "trail", fmt.Sprintf("(%.0f, %.0f)", pos.X, pos.Y), size)
}

// ReceiveAttack applies damage and knockback from source. It returns false
// when the attack was blocked outright.
func (u *Unit) ReceiveAttack(source Entity, amount float64, knockback geom.Vector2D) bool {
	return u.behavior.receiveAttack(u, source, amount, knockback)
}

// takeHit is the default attack response: lose health, then get pushed.
func (u *Unit) takeHit(source Entity, amount float64, knockback geom.Vector2D) bool {
	u.health -= amount
	u.battle.record(u, "combat", "hit", sourceLabel(source), amount)
	u.checkHealth()
	u.ReceiveImpulse(knockback)
	return true
}

// ReceiveImpulse changes velocity by impulse/inertia and moves once so the
// push shows up immediately.
func (u *Unit) ReceiveImpulse(impulse geom.Vector2D) {
	u.vel.Add(impulse.ScaledBy(1 / u.stats.inertia))
	u.move()
}

// attackPoint is the world position a melee strike lands on.
func (u *Unit) attackPoint() geom.Vector2D {
	return geom.FromAngle(u.angle, u.stats.reach).Plus(u.pos)
}

func sourceLabel(e Entity) string {
	switch s := e.(type) {
	case *Unit:
		return s.Label() + " " + s.stats.name
	case *Projectile:
		if s.owner != nil {
			return s.owner.Label() + " " + s.kind.String()
		}
		return s.kind.String()
	default:
		return "--"
	}
}
