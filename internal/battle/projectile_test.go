package battle

import (
	"math"
	"testing"

	"github.com/Garsondee/little-boxes/internal/geom"
)

// lineOfTargets places n idle team-1 melee units 30px apart along y=400.
func lineOfTargets(n int) []SimOption {
	opts := make([]SimOption, 0, n)
	for i := 0; i < n; i++ {
		opts = append(opts, WithUnit(KindMelee, 1, 100+float64(i)*30, 400, 0))
	}
	return opts
}

func TestCannonball_HitsAtMostDurabilityDistinctUnits(t *testing.T) {
	ts := NewTestSim(lineOfTargets(8)...)
	ball := ts.Battle.AddProjectile(ProjectileSpec{
		Kind:         ProjectileCannonball,
		Team:         0,
		Pos:          geom.Vec(50, 400),
		Vel:          geom.Vec(6, 0),
		Strength:     1,
		Inertia:      1,
		FriendlyFire: true,
		Durability:   3,
	})

	ts.RunTicks(200)

	damaged := 0
	for _, u := range ts.Units {
		switch u.health {
		case 100:
		case 99:
			damaged++
		default:
			t.Fatalf("unit %s hit more than once, health %.1f", u.Label(), u.health)
		}
	}
	if damaged != 3 {
		t.Fatalf("want exactly 3 distinct hits, got %d\n%s", damaged, ts.SimLog.Format())
	}
	if ball.Active() {
		t.Fatal("spent cannonball should be inactive")
	}
}

func TestCannonball_LingeringInsideHitsOnce(t *testing.T) {
	ts := NewTestSim(WithUnit(KindMelee, 1, 400, 400, 0))
	target := ts.Units[0]
	ts.Battle.AddProjectile(ProjectileSpec{
		Kind:         ProjectileCannonball,
		Team:         0,
		Pos:          geom.Vec(385, 400),
		Vel:          geom.Vec(0.25, 0),
		Strength:     5,
		Inertia:      0,
		FriendlyFire: true,
		Durability:   10,
	})

	ts.RunTicks(150)

	if target.health != 95 {
		t.Fatalf("ball inside the hitbox for many ticks should hit once, health %.1f", target.health)
	}
	if n := ts.SimLog.CountCategory("combat", "hit"); n != 1 {
		t.Fatalf("want 1 hit entry, got %d", n)
	}
}

func TestProjectile_SingleHitThenSpent(t *testing.T) {
	ts := NewTestSim(lineOfTargets(3)...)
	p := ts.Battle.AddProjectile(ProjectileSpec{
		Kind:       ProjectilePlain,
		Team:       0,
		Pos:        geom.Vec(50, 400),
		Vel:        geom.Vec(2, 0),
		Strength:   10,
		Inertia:    1,
		Durability: 1,
	})
	ts.RunTicks(200)

	if ts.Units[0].health != 90 || ts.Units[1].health != 100 || ts.Units[2].health != 100 {
		t.Fatalf("only the first unit should be hit: %.0f %.0f %.0f",
			ts.Units[0].health, ts.Units[1].health, ts.Units[2].health)
	}
	if p.Active() {
		t.Fatal("projectile should be spent")
	}
}

func TestProjectile_NoFriendlyFireSkipsTeammates(t *testing.T) {
	ts := NewTestSim(WithUnit(KindMelee, 0, 100, 400, 0), WithUnit(KindMelee, 1, 160, 400, 0))
	for _, u := range ts.Units {
		u.stats.topSpeed = 0
		u.cooldown = 10000
	}
	ts.Battle.AddProjectile(ProjectileSpec{
		Kind:       ProjectilePlain,
		Team:       0,
		Pos:        geom.Vec(50, 400),
		Vel:        geom.Vec(2, 0),
		Strength:   10,
		Inertia:    1,
		Durability: 1,
	})
	ts.RunTicks(60)
	if ts.Units[0].health != 100 {
		t.Fatalf("teammate hit without friendly fire, health %.1f", ts.Units[0].health)
	}
	if ts.Units[1].health >= 100 {
		t.Fatal("enemy behind the teammate should be hit")
	}
}

func TestProjectile_LeavesBorderAndIsPruned(t *testing.T) {
	ts := NewTestSim()
	p := ts.Battle.AddProjectile(ProjectileSpec{
		Kind: ProjectilePlain, Pos: geom.Vec(795, 400), Vel: geom.Vec(4, 0), Durability: 1,
	})
	ts.RunTicks(3)
	if p.Active() {
		t.Fatal("projectile outside the border should be inactive")
	}
	n := -1
	ts.Battle.View(func(_ []*Unit, ps []*Projectile, _ []*Particle) { n = len(ps) })
	if n != 0 {
		t.Fatalf("inactive projectiles should be pruned, %d left", n)
	}
}

func TestProjectile_SpawnClearsOwnerHitbox(t *testing.T) {
	ts := NewTestSim(WithUnit(KindCannon, 0, 400, 400, 0.3))
	owner := ts.Units[0]
	p := ts.Battle.AddProjectile(ProjectileSpec{
		Kind: ProjectileCannonball, Owner: owner, Pos: owner.pos, Vel: geom.FromAngle(0.3, 6), Durability: 10,
	})
	if owner.Hitbox().ContainsAbsPoint(p.pos) {
		t.Fatalf("projectile %v still inside owner", p.pos)
	}
	if d := p.pos.Minus(owner.pos).Length(); math.Abs(d-12) > 1e-9 {
		t.Fatalf("want two 6px steps of clearance, got %.6f", d)
	}
}

func TestUpdate_ProjectileFiredMidTickWaitsForNextTick(t *testing.T) {
	ts := NewTestSim(
		WithUnit(KindCannon, 0, 200, 400, 0),
		WithUnit(KindMelee, 1, 600, 400, math.Pi),
	)
	cannon := ts.Units[0]
	cannon.cooldown = 1

	ts.RunTicks(1)

	var p *Projectile
	ts.Battle.View(func(_ []*Unit, ps []*Projectile, _ []*Particle) {
		if len(ps) == 1 {
			p = ps[0]
		}
	})
	if p == nil {
		t.Fatal("cannon should have fired exactly one ball")
	}
	if d := p.pos.Minus(cannon.pos).Length(); math.Abs(d-12) > 1e-6 {
		t.Fatalf("ball should not have moved on the tick it was fired, %.4f from owner", d)
	}

	first := p.pos
	ts.RunTicks(1)
	if got := p.pos.Minus(first); math.Abs(got.Length()-6) > 1e-9 {
		t.Fatalf("ball should move exactly once on the next tick, moved %v", got)
	}
}

func TestGuided_TurnsTowardLiveTarget(t *testing.T) {
	ts := NewTestSim(WithUnit(KindMelee, 1, 100, 300, 0))
	target := ts.Units[0]
	p := ts.Battle.AddProjectile(ProjectileSpec{
		Kind: ProjectileGuided, Target: target, Team: 0, Pos: geom.Vec(100, 100), Vel: geom.Vec(3, 0), Durability: 1,
	})
	ts.RunTicks(1)
	if math.Abs(p.vel.Angle()-guidedAgility) > 1e-9 {
		t.Fatalf("guided should turn by %.2f, heading %.4f", guidedAgility, p.vel.Angle())
	}

	target.active = false
	before := p.vel
	ts.RunTicks(1)
	if p.vel != before {
		t.Fatalf("guided should fly straight once the target is down: %v → %v", before, p.vel)
	}
}

func TestLaserBeam_KillsSameTickThenLingersForLifetime(t *testing.T) {
	ts := NewTestSim(
		WithUnit(KindLaser, 0, 100, 400, 0),
		WithUnit(KindMelee, 1, 300, 400, math.Pi),
	)
	laser, enemy := ts.Units[0], ts.Units[1]
	laser.cooldown = 10000

	beam := ts.Battle.AddProjectile(ProjectileSpec{
		Kind:       ProjectileLaser,
		Owner:      laser,
		Team:       0,
		Pos:        laser.pos,
		Vel:        geom.Vec(1, 0),
		Strength:   100,
		Inertia:    50,
		Durability: Unlimited,
	})

	ts.RunTicks(1)
	if enemy.Active() {
		t.Fatalf("enemy should die on the firing tick, health %.1f", enemy.health)
	}
	if !beam.Active() {
		t.Fatal("beam should stay visible after firing")
	}

	for i := 1; i <= laserLifetime; i++ {
		ts.RunTicks(1)
		if !beam.Active() {
			t.Fatalf("beam went dark after %d ticks, want %d", i, laserLifetime)
		}
	}
	ts.RunTicks(1)
	if beam.Active() {
		t.Fatal("beam should end once its lifetime has passed")
	}

	if n := ts.SimLog.CountCategory("combat", "hit"); n != 1 {
		t.Fatalf("beam should hit once, got %d\n%s", n, ts.SimLog.Format())
	}
}

func TestLaserBeam_SkipsOwnerAndDiesWithIt(t *testing.T) {
	ts := NewTestSim(WithUnit(KindLaser, 0, 100, 400, 0))
	laser := ts.Units[0]
	laser.cooldown = 10000
	beam := ts.Battle.AddProjectile(ProjectileSpec{
		Kind: ProjectileLaser, Owner: laser, Pos: laser.pos, Vel: geom.Vec(-1, 0), Strength: 100, Durability: Unlimited,
	})
	ts.RunTicks(1)
	if laser.health != laser.BaseHealth() {
		t.Fatal("beam must not hit its owner")
	}
	laser.active = false
	ts.RunTicks(1)
	if beam.Active() {
		t.Fatal("beam should end when its owner is gone")
	}
}

func TestLaserBeam_LeavesTrail(t *testing.T) {
	ts := NewTestSim(WithUnit(KindLaser, 0, 100, 400, 0))
	laser := ts.Units[0]
	laser.cooldown = 10000
	ts.Battle.AddProjectile(ProjectileSpec{
		Kind: ProjectileLaser, Owner: laser, Pos: laser.pos, Vel: geom.Vec(1, 0), Durability: Unlimited,
	})
	ts.RunTicks(1)

	trail := 0
	ts.Battle.View(func(_ []*Unit, _ []*Projectile, ps []*Particle) {
		for _, p := range ps {
			if p.Radius() == beamParticleSize {
				trail++
			}
		}
	})
	// From x≈111 to the far border at 1px per step.
	if trail < 680 {
		t.Fatalf("expected a particle per beam step, got %d", trail)
	}
}
