package game

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/config"
	"github.com/Garsondee/little-boxes/internal/geom"
	"github.com/Garsondee/little-boxes/internal/scenario"
)

// borderWidth is the pixel gap between the window edge and the battlefield.
const borderWidth = 16

// hudHeight is the strip under the field holding the key legend.
const hudHeight = 64

// statusTicks is how long a status message stays on screen.
const statusTicks = 180

// playerTeam is the team the player buys units for in campaign levels.
const playerTeam = 1

var speeds = []float64{0.25, 0.5, 1, 2, 4}

// Game is the windowed front end: it places units from mouse input, drives
// the battle clock from Update and draws a Frame in Draw.
type Game struct {
	cfg      config.Config
	scenario *scenario.Scenario

	battle *battle.Battle
	simLog *battle.SimLog
	clock  *battle.Clock
	frame  battle.Frame

	feed    *EventFeed
	logSeen int

	width, height int
	offX, offY    int
	scale         float64

	selectedKind battle.UnitKind
	selectedTeam int
	speedIdx     int
	showHUD      bool

	status     string
	statusLeft int

	inspector Inspector
}

// New creates a game for sc using the sim and render settings in cfg.
func New(cfg config.Config, sc *scenario.Scenario) (*Game, error) {
	if sc == nil {
		return nil, errors.New("game: no scenario")
	}
	g := &Game{
		cfg:      cfg,
		scenario: sc,
		clock:    battle.NewClock(cfg.Sim.TPS),
		feed:     NewEventFeed(),
		scale:    cfg.Render.Scale,
		speedIdx: 2,
		showHUD:  true,
		offX:     borderWidth,
		offY:     borderWidth,
	}
	g.width = borderWidth*2 + int(cfg.Sim.Width*g.scale) + feedPanelWidth
	g.height = borderWidth*2 + int(cfg.Sim.Height*g.scale) + hudHeight
	if sc.Campaign {
		g.selectedTeam = playerTeam
	}
	if err := g.load(); err != nil {
		return nil, err
	}
	return g, nil
}

// load builds a fresh battle from the scenario, paused so the player can
// place units first.
func (g *Game) load() error {
	g.simLog = battle.NewSimLog(false)
	opts := append(g.cfg.BattleOptions(), battle.WithSimLog(g.simLog))
	b, err := g.scenario.NewBattle(opts...)
	if err != nil {
		return fmt.Errorf("load %s: %w", g.scenario.Name, err)
	}
	b.SetParticlesEnabled(g.cfg.Render.Particles)
	b.SetAntialiasing(g.cfg.Render.Antialias)
	b.SetPaused(true)

	g.battle = b
	g.logSeen = 0
	g.feed.Reset()
	g.inspector = Inspector{}
	if kinds := g.availableKinds(); len(kinds) > 0 {
		g.selectedKind = kinds[0]
	}
	g.pullEvents()
	g.frame = b.Snapshot()
	return nil
}

// Battle returns the running battle.
func (g *Game) Battle() *battle.Battle { return g.battle }

// availableKinds is the purchasable roster in campaign mode, else every kind.
func (g *Game) availableKinds() []battle.UnitKind {
	if pool, ok := g.battle.Budget().(*battle.ResourcePool); ok && pool != nil {
		return pool.Kinds()
	}
	return battle.AllKinds
}

func (g *Game) Update() error {
	g.handleInput()

	elapsed := time.Duration(float64(time.Second) / g.clock.TPS())
	g.clock.Step(g.battle, elapsed)

	g.pullEvents()
	g.frame = g.battle.Snapshot()
	if g.statusLeft > 0 {
		g.statusLeft--
	}
	return nil
}

// pullEvents copies SimLog entries recorded since the last call into the feed.
func (g *Game) pullEvents() {
	g.battle.View(func(_ []*battle.Unit, _ []*battle.Projectile, _ []*battle.Particle) {
		for _, e := range g.simLog.Since(g.logSeen) {
			if e.Category == "spawn" {
				continue
			}
			g.feed.Add(e)
		}
		g.logSeen = g.simLog.Len()
	})
}

func (g *Game) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.statusLeft = statusTicks
}

// toField converts window pixels to field coordinates.
func (g *Game) toField(x, y int) geom.Vector2D {
	return geom.Vec(float64(x-g.offX)/g.scale, float64(y-g.offY)/g.scale)
}

// toScreen converts field coordinates to window pixels.
func (g *Game) toScreen(v geom.Vector2D) (float32, float32) {
	return float32(float64(g.offX) + v.X*g.scale), float32(float64(g.offY) + v.Y*g.scale)
}

func (g *Game) onField(p geom.Vector2D) bool {
	return g.frame.Border.ContainsAbsPoint(p)
}

func (g *Game) handleInput() {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		p := g.toField(ebiten.CursorPosition())
		if g.onField(p) {
			if shift {
				g.inspectAt(p)
			} else {
				g.placeAt(p)
			}
		}
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		p := g.toField(ebiten.CursorPosition())
		if g.onField(p) {
			g.removeAt(p)
		}
	}

	// 1-9: pick a unit kind from the roster.
	digitKeys := []ebiten.Key{
		ebiten.Key1, ebiten.Key2, ebiten.Key3,
		ebiten.Key4, ebiten.Key5, ebiten.Key6,
		ebiten.Key7, ebiten.Key8, ebiten.Key9,
	}
	kinds := g.availableKinds()
	for i, k := range digitKeys {
		if i < len(kinds) && inpututil.IsKeyJustPressed(k) {
			g.selectedKind = kinds[i]
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.togglePause()
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		g.stepOnce()
	case inpututil.IsKeyJustPressed(ebiten.KeyComma):
		g.changeSpeed(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyPeriod):
		g.changeSpeed(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyT):
		g.cycleTeam()
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.battle.ResurrectAll()
	case inpututil.IsKeyJustPressed(ebiten.KeyX):
		g.clearField()
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		if err := g.load(); err != nil {
			g.setStatus("%v", err)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.battle.SetParticlesEnabled(!g.battle.ParticlesEnabled())
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.battle.SetAntialiasing(!g.battle.Antialiasing())
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.inspector.rawView = !g.inspector.rawView
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.inspector.selectedID = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.copyReport()
	}
}

// placeAt spawns the selected kind at p facing away from the nearest edge.
func (g *Game) placeAt(p geom.Vector2D) {
	_, err := g.battle.SpawnUnit(battle.SpawnRequest{
		Kind:           g.selectedKind,
		Team:           g.selectedTeam,
		Pos:            p,
		AutoFace:       true,
		AddImmediately: true,
	})
	switch {
	case err == nil:
	case errors.Is(err, battle.ErrSpawnZone):
		g.setStatus("Cannot place units in the enemy's area")
	case errors.Is(err, battle.ErrInsufficientFunds):
		g.setStatus("Not enough resources for a %s", g.selectedKind)
	case errors.Is(err, battle.ErrNotAvailable):
		g.setStatus("%s is not available on this level", g.selectedKind)
	default:
		g.setStatus("%v", err)
	}
}

// removeAt takes the unit under p off the field. In campaign mode only the
// player's own units can be removed.
func (g *Game) removeAt(p geom.Vector2D) {
	u := g.battle.UnitAt(p)
	if u == nil {
		return
	}
	if g.scenario.Campaign && u.Team() != playerTeam {
		g.setStatus("Cannot remove enemy units")
		return
	}
	g.battle.RemoveUnit(u)
	if g.inspector.selectedID == u.ID() {
		g.inspector.selectedID = 0
	}
}

func (g *Game) inspectAt(p geom.Vector2D) {
	if u := g.battle.UnitAt(p); u != nil {
		g.inspector.selectedID = u.ID()
		return
	}
	g.inspector.selectedID = 0
}

func (g *Game) togglePause() {
	g.battle.SetPaused(!g.battle.Paused())
}

// stepOnce runs a single tick while paused.
func (g *Game) stepOnce() {
	if !g.battle.Paused() {
		return
	}
	g.battle.Update()
}

func (g *Game) changeSpeed(delta int) {
	g.speedIdx += delta
	if g.speedIdx < 0 {
		g.speedIdx = 0
	}
	if g.speedIdx >= len(speeds) {
		g.speedIdx = len(speeds) - 1
	}
	g.clock.SetSpeed(speeds[g.speedIdx])
}

// cycleTeam picks the next team to place units for. Campaign levels fix the
// player's team.
func (g *Game) cycleTeam() {
	if g.scenario.Campaign {
		return
	}
	g.selectedTeam = (g.selectedTeam + 1) % battle.MaxTeams
}

// clearField empties the battle, pausing around the clear if needed.
func (g *Game) clearField() {
	paused := g.battle.Paused()
	g.battle.SetPaused(true)
	if err := g.battle.ClearAll(); err != nil {
		g.setStatus("%v", err)
	}
	g.battle.SetPaused(paused)
	g.inspector.selectedID = 0
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// WindowSize returns the window size that shows the field at 1:1 scale.
func (g *Game) WindowSize() (int, int) {
	return g.width, g.height
}
