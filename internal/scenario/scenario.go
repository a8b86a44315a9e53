// Package scenario loads static battle layouts and places them on a field.
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/geom"
)

//go:embed scenarios/*.yaml
var builtin embed.FS

// ErrNotFound is returned when no built-in scenario has the requested name.
var ErrNotFound = errors.New("scenario: not found")

// Point is an [x, y] pair.
type Point [2]float64

func (p Point) Vec() geom.Vector2D { return geom.Vec(p[0], p[1]) }

// Area is an axis-aligned rectangle given by two opposite corners.
type Area struct {
	Min Point `yaml:"min"`
	Max Point `yaml:"max"`
}

func (a Area) Box() geom.BoundingBox {
	return geom.BoxFromCorners(a.Min.Vec(), a.Max.Vec())
}

// UnitPlacement is a single unit.
type UnitPlacement struct {
	Kind     string  `yaml:"kind"`
	Team     int     `yaml:"team"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Angle    float64 `yaml:"angle"`
	AutoFace bool    `yaml:"auto_face"`
}

// LinePlacement is a row of evenly spaced units.
type LinePlacement struct {
	Kind   string `yaml:"kind"`
	Team   int    `yaml:"team"`
	From   Point  `yaml:"from"`
	To     Point  `yaml:"to"`
	Facing Facing `yaml:"facing"`
	Count  int    `yaml:"count"`
}

// Scenario is a level or sandbox layout. In campaign scenarios team 0 is the
// level's army and every other team buys units from Resources at Prices.
type Scenario struct {
	Name       string          `yaml:"name"`
	Title      string          `yaml:"title"`
	Background Background      `yaml:"background"`
	Campaign   bool            `yaml:"campaign"`
	Resources  int             `yaml:"resources"`
	Prices     map[string]int  `yaml:"prices"`
	TeamArea   *Area           `yaml:"team_area"`
	Units      []UnitPlacement `yaml:"units"`
	Lines      []LinePlacement `yaml:"lines"`
}

// Parse decodes and validates a YAML scenario.
func Parse(data []byte) (*Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("scenario %q: %w", s.Name, err)
	}
	return &s, nil
}

// LoadFile reads a scenario from disk.
func LoadFile(filename string) (*Scenario, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}
	return Parse(b)
}

// Builtin returns an embedded scenario by name, e.g. "level-2".
func Builtin(name string) (*Scenario, error) {
	b, err := builtin.ReadFile(path.Join("scenarios", name+".yaml"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return Parse(b)
}

// Names lists the embedded scenarios in sorted order.
func Names() []string {
	entries, err := builtin.ReadDir("scenarios")
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		out = append(out, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(out)
	return out
}

// Resolve loads filename when it is set, otherwise the built-in name.
func Resolve(filename, name string) (*Scenario, error) {
	if filename != "" {
		return LoadFile(filename)
	}
	return Builtin(name)
}

func (s *Scenario) validate() error {
	if s.Background != "" {
		if _, ok := backgrounds[s.Background]; !ok {
			return fmt.Errorf("unknown background %q", s.Background)
		}
	}
	for k, p := range s.Prices {
		if _, err := battle.ParseKind(k); err != nil {
			return err
		}
		if p < 0 {
			return fmt.Errorf("negative price for %s", k)
		}
	}
	for i, u := range s.Units {
		if _, err := battle.ParseKind(u.Kind); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
		if err := checkTeam(u.Team); err != nil {
			return fmt.Errorf("unit %d: %w", i, err)
		}
	}
	for i, l := range s.Lines {
		if _, err := battle.ParseKind(l.Kind); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if err := checkTeam(l.Team); err != nil {
			return fmt.Errorf("line %d: %w", i, err)
		}
		if l.Count < 1 {
			return fmt.Errorf("line %d: count must be at least 1", i)
		}
	}
	return nil
}

func checkTeam(team int) error {
	if team < 0 || team >= battle.MaxTeams {
		return fmt.Errorf("team %d out of range [0,%d]", team, battle.MaxTeams-1)
	}
	return nil
}

// Budget returns the player's resource pool, or nil outside campaign mode.
func (s *Scenario) Budget() *battle.ResourcePool {
	if !s.Campaign {
		return nil
	}
	prices := make(map[battle.UnitKind]int, len(s.Prices))
	for k, p := range s.Prices {
		kind, err := battle.ParseKind(k)
		if err != nil {
			continue
		}
		prices[kind] = p
	}
	return battle.NewResourcePool(s.Resources, prices)
}

// NewBattle creates a battle for the scenario, charging campaign spawns to
// the scenario's budget, and places its units.
func (s *Scenario) NewBattle(opts ...battle.Option) (*battle.Battle, error) {
	if pool := s.Budget(); pool != nil {
		opts = append(opts, battle.WithBudget(pool))
	}
	b := battle.New(opts...)
	if _, err := s.Apply(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Apply reserves the team area and places every unit and line, returning the
// units added. Single units that cannot be placed are an error; line
// positions the spawn rules reject are skipped.
func (s *Scenario) Apply(b *battle.Battle) ([]*battle.Unit, error) {
	if s.TeamArea != nil {
		box := s.TeamArea.Box()
		b.SetTeamArea(&box)
	} else {
		b.SetTeamArea(nil)
	}

	var placed []*battle.Unit
	for _, l := range s.Lines {
		kind, err := battle.ParseKind(l.Kind)
		if err != nil {
			return placed, err
		}
		placed = append(placed, PlaceLine(b, kind, l.Team, l.From.Vec(), l.To.Vec(), l.Facing, l.Count)...)
	}
	for _, p := range s.Units {
		kind, err := battle.ParseKind(p.Kind)
		if err != nil {
			return placed, err
		}
		u, err := b.SpawnUnit(battle.SpawnRequest{
			Kind:           kind,
			Team:           p.Team,
			Pos:            geom.Vec(p.X, p.Y),
			Angle:          p.Angle,
			AutoFace:       p.AutoFace,
			AddImmediately: true,
		})
		if err != nil {
			return placed, fmt.Errorf("place %s at (%g, %g): %w", kind.Key(), p.X, p.Y, err)
		}
		placed = append(placed, u)
	}
	return placed, nil
}
