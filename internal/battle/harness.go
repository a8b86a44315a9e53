package battle

import "github.com/Garsondee/little-boxes/internal/geom"

// TestSim is a headless battle harness for tests and batch reports. It
// mirrors the front ends' tick loop without a clock and always records to a
// SimLog.
type TestSim struct {
	Battle *Battle
	SimLog *SimLog
	Units  []*Unit

	width, height float64
	seed          int64
	budget        Budget
	teamArea      *geom.BoundingBox
	units         []simUnit
}

type simUnit struct {
	req     SpawnRequest
	dormant bool
}

// simOptionKind controls the pass in which an option is applied.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota // field size, seed, verbose, budget; applied first
	simOptUnit                       // add units; applied after the battle exists
)

// SimOption is a builder function applied to a TestSim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*TestSim)
}

// WithFieldSize sets the border dimensions.
func WithFieldSize(w, h float64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.width = w
		ts.height = h
	}}
}

// WithSimSeed sets the RNG seed for deterministic runs.
func WithSimSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.seed = seed
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.SimLog = NewSimLog(v)
	}}
}

// WithSimBudget charges spawns for teams other than 0.
func WithSimBudget(b Budget) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.budget = b
	}}
}

// WithSimTeamArea reserves an area for team 0.
func WithSimTeamArea(area geom.BoundingBox) SimOption {
	return SimOption{simOptInfra, func(ts *TestSim) {
		ts.teamArea = &area
	}}
}

// WithUnit adds an active unit facing angle.
func WithUnit(kind UnitKind, team int, x, y, angle float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.units = append(ts.units, simUnit{req: SpawnRequest{
			Kind: kind, Team: team, Pos: geom.Vec(x, y), Angle: angle, AddImmediately: true,
		}})
	}}
}

// WithDormantUnit adds a unit to the field without resurrecting it.
func WithDormantUnit(kind UnitKind, team int, x, y, angle float64) SimOption {
	return SimOption{simOptUnit, func(ts *TestSim) {
		ts.units = append(ts.units, simUnit{req: SpawnRequest{
			Kind: kind, Team: team, Pos: geom.Vec(x, y), Angle: angle,
		}, dormant: true})
	}}
}

// NewTestSim constructs a TestSim from the given options in two ordered passes:
//  1. Infrastructure (field size, seed, verbose, budget, team area)
//  2. Units, in option order
//
// Units that the spawn rules reject are skipped.
func NewTestSim(opts ...SimOption) *TestSim {
	ts := &TestSim{
		width:  DefaultWidth,
		height: DefaultHeight,
		seed:   1,
		SimLog: NewSimLog(false),
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(ts)
		}
	}

	bopts := []Option{WithField(ts.width, ts.height), WithSeed(ts.seed), WithSimLog(ts.SimLog)}
	if ts.budget != nil {
		bopts = append(bopts, WithBudget(ts.budget))
	}
	ts.Battle = New(bopts...)
	ts.Battle.SetTeamArea(ts.teamArea)

	for _, o := range opts {
		if o.kind == simOptUnit {
			o.fn(ts)
		}
	}
	for _, su := range ts.units {
		u, err := ts.Battle.SpawnUnit(su.req)
		if err != nil {
			continue
		}
		if su.dormant {
			ts.Battle.mu.Lock()
			ts.Battle.attachUnit(u)
			ts.Battle.mu.Unlock()
		}
		ts.Units = append(ts.Units, u)
	}
	return ts
}

// Tick returns the battle's current tick.
func (ts *TestSim) Tick() int {
	return ts.Battle.Tick()
}

// RunTicks advances the battle n ticks.
func (ts *TestSim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		ts.Battle.Update()
	}
}

// RunUntil advances the simulation up to maxTicks, stopping early if predicate
// returns true. Returns the tick at which the predicate was satisfied, or -1.
func (ts *TestSim) RunUntil(predicate func(*TestSim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		ts.Battle.Update()
		if predicate(ts) {
			return ts.Battle.Tick()
		}
	}
	return -1
}

// AliveByTeam counts active units on a team.
func (ts *TestSim) AliveByTeam(team int) int {
	n := 0
	for _, u := range ts.Units {
		if u.team == team && u.active {
			n++
		}
	}
	return n
}

// Decided reports whether at most one team is still standing.
func (ts *TestSim) Decided() bool {
	r := ts.Battle.Outcome()
	return r.Outcome != OutcomeInconclusive || len(r.Totals) <= 1
}
