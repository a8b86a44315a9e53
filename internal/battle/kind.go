package battle

import (
	"fmt"
	"strings"
)

// UnitKind selects a unit's stats and behaviour.
type UnitKind int

const (
	KindMelee UnitKind = iota
	KindJuggernaut
	KindCharger
	KindRanged
	KindSmartRanged
	KindCannon
	KindLaser
	KindShieldBearer
	KindResurrector
)

// AllKinds lists every kind in control-panel order.
var AllKinds = []UnitKind{
	KindMelee, KindJuggernaut, KindCharger,
	KindRanged, KindSmartRanged, KindCannon, KindLaser,
	KindShieldBearer, KindResurrector,
}

// Glyph is the symbol a renderer draws on top of a unit's hitbox.
type Glyph int

const (
	GlyphCross       Glyph = iota // diagonals between the hitbox corners
	GlyphTriangle                 // small triangle pointing forward
	GlyphDot                      // filled circle, radius 4
	GlyphBigDot                   // filled circle, radius 6
	GlyphBolt                     // elongated quad along the facing
	GlyphLens                     // square quad along the facing
	GlyphShield                   // line across the front third
	GlyphNestedBoxes              // two shrunken copies of the hitbox
)

// ProjectileKind selects how a projectile moves and hits.
type ProjectileKind int

const (
	ProjectilePlain ProjectileKind = iota
	ProjectileCannonball
	ProjectileGuided
	ProjectileLaser
)

func (k ProjectileKind) String() string {
	switch k {
	case ProjectilePlain:
		return "projectile"
	case ProjectileCannonball:
		return "cannonball"
	case ProjectileGuided:
		return "guided"
	case ProjectileLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// unitStats holds every per-kind constant. Melee variants use reach; ranged
// variants use the projectile fields.
type unitStats struct {
	name string
	key  string

	halfW, halfH float64

	inertia       float64
	acceleration  float64
	topSpeed      float64
	rotationSpeed float64

	baseHealth     float64
	attackStrength float64
	knockback      float64
	attackInterval int

	particleRate     float64
	particleDuration float64
	particleSpeed    float64
	particleSize     float64

	reach float64

	projectile      ProjectileKind
	projectileSpeed float64
	standoff        float64

	glyph Glyph
}

func baseStats() unitStats {
	return unitStats{
		halfW:            10,
		halfH:            10,
		inertia:          10,
		acceleration:     0.1,
		topSpeed:         1,
		rotationSpeed:    0.1,
		baseHealth:       100,
		attackInterval:   30,
		particleRate:     0.1,
		particleDuration: 200,
		particleSpeed:    0.05,
		particleSize:     3,
	}
}

func meleeStats() unitStats {
	s := baseStats()
	s.name, s.key = "Melee Unit", "melee"
	s.attackStrength = 20
	s.knockback = 20
	s.reach = 15
	s.glyph = GlyphCross
	return s
}

func rangedStats() unitStats {
	s := baseStats()
	s.name, s.key = "Ranged Unit", "ranged"
	s.attackStrength = 10
	s.knockback = 10
	s.topSpeed = 0.7
	s.projectile = ProjectilePlain
	s.projectileSpeed = 2
	s.standoff = 200
	s.glyph = GlyphDot
	return s
}

// statsTable maps each kind to its constants.
var statsTable = buildStatsTable()

func buildStatsTable() map[UnitKind]unitStats {
	t := map[UnitKind]unitStats{}

	t[KindMelee] = meleeStats()

	jug := meleeStats()
	jug.name, jug.key = "Juggernaut", "juggernaut"
	jug.halfW, jug.halfH = 20, 20
	jug.attackStrength = 40
	jug.reach = 25
	jug.knockback = 60
	jug.baseHealth = 600
	jug.inertia = 100
	jug.topSpeed = 0.5
	jug.acceleration = 0.05
	jug.rotationSpeed = 0.03
	t[KindJuggernaut] = jug

	ch := meleeStats()
	ch.name, ch.key = "Charger", "charger"
	ch.topSpeed = 6
	ch.rotationSpeed = 0.3
	ch.attackInterval = 1
	ch.attackStrength = 1
	ch.knockback = 3
	ch.inertia = 30
	ch.particleRate = 0.6
	ch.particleDuration = 100
	ch.glyph = GlyphTriangle
	t[KindCharger] = ch

	t[KindRanged] = rangedStats()

	smart := rangedStats()
	smart.name, smart.key = "Smart Ranged Unit", "smart_ranged"
	smart.attackInterval = 100
	smart.standoff = 400
	smart.projectile = ProjectileGuided
	smart.projectileSpeed = 3
	smart.glyph = GlyphBolt
	t[KindSmartRanged] = smart

	cannon := rangedStats()
	cannon.name, cannon.key = "Cannon", "cannon"
	cannon.attackStrength = 50
	cannon.knockback = 75
	cannon.projectile = ProjectileCannonball
	cannon.projectileSpeed = 6
	cannon.attackInterval = 200
	cannon.standoff = 400
	cannon.topSpeed = 0.5
	cannon.glyph = GlyphBigDot
	t[KindCannon] = cannon

	laser := rangedStats()
	laser.name, laser.key = "Laser Unit", "laser"
	laser.topSpeed = 0.5
	laser.standoff = 600
	laser.rotationSpeed = 0.03
	laser.baseHealth = 30
	laser.projectile = ProjectileLaser
	laser.projectileSpeed = 1
	laser.attackStrength = 100
	laser.knockback = 50
	laser.attackInterval = 200
	laser.glyph = GlyphLens
	t[KindLaser] = laser

	shield := meleeStats()
	shield.name, shield.key = "Shield Bearer", "shield_bearer"
	shield.halfH = 20
	shield.baseHealth = 200
	shield.inertia = 70
	shield.topSpeed = 0.7
	shield.acceleration = 0.07
	shield.rotationSpeed = 0.01
	shield.glyph = GlyphShield
	t[KindShieldBearer] = shield

	res := baseStats()
	res.name, res.key = "Resurrector", "resurrector"
	res.topSpeed = 0.2
	res.rotationSpeed = 0.01
	res.glyph = GlyphNestedBoxes
	t[KindResurrector] = res

	return t
}

// Valid reports whether k is a known kind.
func (k UnitKind) Valid() bool {
	_, ok := statsTable[k]
	return ok
}

// String returns the display name, e.g. "Smart Ranged Unit".
func (k UnitKind) String() string {
	if s, ok := statsTable[k]; ok {
		return s.name
	}
	return fmt.Sprintf("UnitKind(%d)", int(k))
}

// Key returns the short identifier used in scenario files, e.g. "smart_ranged".
func (k UnitKind) Key() string {
	if s, ok := statsTable[k]; ok {
		return s.key
	}
	return ""
}

// Glyph returns the symbol drawn for units of this kind.
func (k UnitKind) Glyph() Glyph {
	return statsTable[k].glyph
}

// BaseHealth is the health a unit of this kind is resurrected with.
func (k UnitKind) BaseHealth() float64 {
	return statsTable[k].baseHealth
}

// ParseKind accepts either the display name or the short key, ignoring case
// and treating spaces, dashes and underscores alike.
func ParseKind(name string) (UnitKind, error) {
	want := normalizeKindName(name)
	for _, k := range AllKinds {
		s := statsTable[k]
		if want == normalizeKindName(s.name) || want == normalizeKindName(s.key) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

func normalizeKindName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}
