package battle

import (
	"math/rand"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/Garsondee/little-boxes/internal/geom"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 800
	DefaultTPS    = 60
)

// Battle owns every unit, projectile and particle on one field and advances
// them a tick at a time. All exported methods are safe for concurrent use;
// renderers read state through Snapshot or View.
type Battle struct {
	ID uuid.UUID

	mu sync.RWMutex

	tick     int
	border   geom.BoundingBox
	teamArea *geom.BoundingBox

	units       []*Unit
	projectiles []*Projectile
	particles   []*Particle

	// Spawns made while a tick is running wait here until it ends.
	updating           bool
	pendingUnits       []*Unit
	pendingProjectiles []*Projectile
	pendingParticles   []*Particle

	paused        bool
	banner        int
	showParticles bool
	antialias     bool

	rng    *rand.Rand
	log    *SimLog
	budget Budget
	nextID int
}

// Option configures a Battle at construction.
type Option func(*Battle)

// WithSeed seeds the battle's random source.
func WithSeed(seed int64) Option {
	return func(b *Battle) {
		b.rng = rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation randomness
	}
}

// WithField sets the border to a w×h field with its corner at the origin.
func WithField(w, h float64) Option {
	return func(b *Battle) {
		b.border = geom.BoundingBox{XMax: w, YMax: h}
	}
}

// WithSimLog records battle events to sl.
func WithSimLog(sl *SimLog) Option {
	return func(b *Battle) {
		b.log = sl
	}
}

// WithBudget makes spawns for teams other than 0 pay from budget.
func WithBudget(budget Budget) Option {
	return func(b *Battle) {
		b.budget = budget
	}
}

// New creates an empty, running battle on a DefaultWidth×DefaultHeight field.
func New(opts ...Option) *Battle {
	b := &Battle{
		ID:            uuid.New(),
		border:        geom.BoundingBox{XMax: DefaultWidth, YMax: DefaultHeight},
		banner:        TeamNeutral,
		showParticles: true,
		antialias:     true,
		rng:           rand.New(rand.NewSource(1)), // #nosec G404 -- simulation randomness
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// SpawnRequest describes a unit to place.
type SpawnRequest struct {
	Kind  UnitKind
	Team  int
	Pos   geom.Vector2D
	Angle float64
	// AutoFace turns the unit to face away from the nearest border edge,
	// ignoring Angle.
	AutoFace bool
	// AddImmediately adds the unit to the battle and resurrects it. Otherwise
	// the unit is returned detached and inactive for a later AddUnit.
	AddImmediately bool
}

// SpawnUnit creates a unit. It fails with ErrSpawnZone when the position is
// inside the reserved team area and the team is not 0, and with the budget's
// error when the team cannot pay.
func (b *Battle) SpawnUnit(req SpawnRequest) (*Unit, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.spawnUnit(req)
}

func (b *Battle) spawnUnit(req SpawnRequest) (*Unit, error) {
	if !req.Kind.Valid() {
		return nil, ErrUnknownKind
	}
	if b.teamArea != nil && req.Team != 0 && b.teamArea.ContainsAbsPoint(req.Pos) {
		return nil, ErrSpawnZone
	}
	if b.budget != nil && req.Team != 0 {
		if err := b.budget.Charge(req.Kind); err != nil {
			return nil, err
		}
	}

	angle := req.Angle
	if req.AutoFace {
		angle = b.inwardAngle(req.Pos)
	}

	b.nextID++
	u := newUnit(b, b.nextID, req.Kind, req.Team, req.Pos, angle)
	b.record(u, "spawn", req.Kind.Key(), u.pos.String(), angle)

	if req.AddImmediately {
		b.attachUnit(u)
		u.Resurrect()
	}
	return u, nil
}

// inwardAngle is the facing pointing away from the border edge nearest to p.
func (b *Battle) inwardAngle(p geom.Vector2D) float64 {
	edge := b.border.FindClosestEdge(p)
	if edge.IsZero() {
		return b.border.Angle
	}
	edge.ScaleBy(-1)
	edge.RotateBy(b.border.Angle)
	return edge.Angle()
}

// AddUnit adds a detached unit, resurrects it and gives it a first target.
func (b *Battle) AddUnit(u *Unit) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u.battle = b
	b.attachUnit(u)
	u.Resurrect()
	u.findNearestTarget()
}

func (b *Battle) attachUnit(u *Unit) {
	if b.updating {
		b.pendingUnits = append(b.pendingUnits, u)
		return
	}
	b.units = append(b.units, u)
}

// AddProjectile fires a projectile into the battle.
func (b *Battle) AddProjectile(spec ProjectileSpec) *Projectile {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := newProjectile(b, spec)
	b.addProjectile(p)
	return p
}

func (b *Battle) addProjectile(p *Projectile) {
	if b.updating {
		b.pendingProjectiles = append(b.pendingProjectiles, p)
		return
	}
	b.projectiles = append(b.projectiles, p)
}

// AddParticle adds a cosmetic particle.
func (b *Battle) AddParticle(p *Particle) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.addParticle(p)
}

func (b *Battle) addParticle(p *Particle) {
	if b.updating {
		b.pendingParticles = append(b.pendingParticles, p)
		return
	}
	b.particles = append(b.particles, p)
}

// RemoveUnit takes u off the field and refunds its price to the budget when
// one applies. It reports whether u was in the battle.
func (b *Battle) RemoveUnit(u *Unit) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := slices.Index(b.units, u)
	if i < 0 {
		return false
	}
	b.units = slices.Delete(b.units, i, i+1)
	u.active = false
	u.target = nil

	refund := 0
	if b.budget != nil && u.team != 0 {
		refund = b.budget.Refund(u.kind)
	}
	b.record(u, "unit", "remove", u.stats.name, float64(refund))
	return true
}

// UnitAt returns the first active unit whose hitbox contains p, or nil.
func (b *Battle) UnitAt(p geom.Vector2D) *Unit {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, u := range b.units {
		if u.active && u.Hitbox().ContainsAbsPoint(p) {
			return u
		}
	}
	return nil
}

// ResurrectAll revives every unit on the field.
func (b *Battle) ResurrectAll() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range b.units {
		u.Resurrect()
	}
	b.recordBattle("unit", "resurrect_all", "", float64(len(b.units)))
}

// ClearAll empties the field and resets the team area and banner. The battle
// must be paused.
func (b *Battle) ClearAll() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.paused {
		return ErrNotPaused
	}
	b.units = nil
	b.projectiles = nil
	b.particles = nil
	b.pendingUnits = nil
	b.pendingProjectiles = nil
	b.pendingParticles = nil
	b.teamArea = nil
	b.banner = TeamNeutral
	b.recordBattle("battle", "clear", "", 0)
	return nil
}

// Update advances the battle by one tick: units first, then projectiles,
// then particles. Inactive projectiles and particles are pruned; units stay
// so they can be resurrected. Anything spawned during the tick is added once
// it ends.
func (b *Battle) Update() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.updating = true
	b.tick++

	for _, u := range b.units {
		u.update()
	}

	for _, p := range b.projectiles {
		p.update()
	}
	b.projectiles = slices.DeleteFunc(b.projectiles, func(p *Projectile) bool { return !p.active })

	for _, p := range b.particles {
		p.update(b.border)
	}
	b.particles = slices.DeleteFunc(b.particles, func(p *Particle) bool { return !p.active })

	b.updating = false
	b.splicePending()
}

func (b *Battle) splicePending() {
	b.units = append(b.units, b.pendingUnits...)
	b.projectiles = append(b.projectiles, b.pendingProjectiles...)
	b.particles = append(b.particles, b.pendingParticles...)
	b.pendingUnits = nil
	b.pendingProjectiles = nil
	b.pendingParticles = nil
}

func (b *Battle) setBanner(team int) {
	if b.banner == team {
		return
	}
	b.banner = team
	if team != TeamNeutral {
		b.recordBattle("battle", "victory", TeamName(team), float64(team))
	}
}

// Banner returns the sole remaining team, if only one is left.
func (b *Battle) Banner() (int, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.banner, b.banner != TeamNeutral
}

// BannerText is the headline shown over a decided battle, or "" when there
// is none. In campaign mode team 0 is the enemy: its win only counts as a
// defeat once the player can no longer afford anything.
func (b *Battle) BannerText(campaign bool) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.banner == TeamNeutral {
		return ""
	}
	if !campaign {
		return TeamName(b.banner) + " victory!"
	}
	if b.banner != 0 {
		return "Victory!"
	}
	if b.budget != nil && b.budget.Bankrupt() {
		return "Defeat!"
	}
	return ""
}

func (b *Battle) SetTeamArea(area *geom.BoundingBox) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if area == nil {
		b.teamArea = nil
		return
	}
	a := *area
	b.teamArea = &a
}

// TeamArea returns a copy of the reserved area, or nil.
func (b *Battle) TeamArea() *geom.BoundingBox {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.teamArea == nil {
		return nil
	}
	a := *b.teamArea
	return &a
}

func (b *Battle) Border() geom.BoundingBox {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.border
}

func (b *Battle) Tick() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.tick
}

func (b *Battle) SetPaused(p bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.paused == p {
		return
	}
	b.paused = p
	b.recordBattle("battle", "pause", boolWord(p), 0)
}

func (b *Battle) Paused() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.paused
}

// SetParticlesEnabled is a rendering hint; particles are simulated either way.
func (b *Battle) SetParticlesEnabled(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.showParticles = on
}

func (b *Battle) ParticlesEnabled() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.showParticles
}

// SetAntialiasing is a rendering hint.
func (b *Battle) SetAntialiasing(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.antialias = on
}

func (b *Battle) Antialiasing() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.antialias
}

// Budget returns the spawn budget, or nil in sandbox mode.
func (b *Battle) Budget() Budget {
	return b.budget
}

// Log returns the attached SimLog, or nil.
func (b *Battle) Log() *SimLog {
	return b.log
}

// View calls fn with the live collections under the read lock. fn must not
// retain the slices or call back into b.
func (b *Battle) View(fn func(units []*Unit, projectiles []*Projectile, particles []*Particle)) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	fn(b.units, b.projectiles, b.particles)
}

// record logs an event about u. Safe with no SimLog attached.
func (b *Battle) record(u *Unit, category, key, value string, num float64) {
	if b.log == nil {
		return
	}
	b.log.Add(b.tick, u.Label(), TeamName(u.team), category, key, value, num)
}

// recordVerbose logs a per-tick event about u when the SimLog is verbose.
func (b *Battle) recordVerbose(u *Unit, category, key, value string, num float64) {
	if b.log == nil {
		return
	}
	b.log.AddVerbose(b.tick, u.Label(), TeamName(u.team), category, key, value, num)
}

func (b *Battle) recordBattle(category, key, value string, num float64) {
	if b.log == nil {
		return
	}
	b.log.Add(b.tick, "--", "--", category, key, value, num)
}

func boolWord(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
