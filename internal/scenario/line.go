package scenario

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/geom"
)

// Facing is a number of extra quarter turns applied to a line's base facing,
// which is the right-hand side of the line walking from start to end.
type Facing int

const (
	East Facing = iota
	South
	West
	North
)

var facingNames = []string{"east", "south", "west", "north"}

func (f Facing) String() string {
	if f >= 0 && int(f) < len(facingNames) {
		return facingNames[f]
	}
	return "Facing(" + strconv.Itoa(int(f)) + ")"
}

// UnmarshalYAML accepts a direction name or a quarter-turn count.
func (f *Facing) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: facing must be a scalar", value.Line)
	}
	if n, err := strconv.Atoi(value.Value); err == nil {
		*f = Facing(((n % 4) + 4) % 4)
		return nil
	}
	for i, name := range facingNames {
		if strings.EqualFold(value.Value, name) {
			*f = Facing(i)
			return nil
		}
	}
	return fmt.Errorf("line %d: unknown facing %q", value.Line, value.Value)
}

func (f Facing) MarshalYAML() (interface{}, error) {
	return f.String(), nil
}

// LineAngle returns the facing shared by every unit of a line from start to
// end. A degenerate line faces east before the extra turns.
func LineAngle(start, end geom.Vector2D, f Facing) float64 {
	dir := end.Minus(start)
	if dir.IsZero() {
		dir = geom.Vec(0, -1)
	}
	return dir.Unit().RotatedBy(math.Pi / 2 * float64(1+f)).Angle()
}

// LinePositions returns count points evenly spaced from start to end, or the
// midpoint when count is 1.
func LinePositions(start, end geom.Vector2D, count int) []geom.Vector2D {
	if count < 1 {
		return nil
	}
	ray := end.Minus(start)
	if count == 1 {
		return []geom.Vector2D{start.Plus(ray.ScaledBy(0.5))}
	}
	step := ray.ScaledBy(1 / float64(count-1))
	out := make([]geom.Vector2D, count)
	for i := range out {
		out[i] = start.Plus(step.ScaledBy(float64(i)))
	}
	return out
}

// PlaceLine spawns count units of kind along the line from start to end and
// adds them to b. Positions the spawn rules reject are left empty; the rest
// of the line keeps its spacing.
func PlaceLine(b *battle.Battle, kind battle.UnitKind, team int, start, end geom.Vector2D, f Facing, count int) []*battle.Unit {
	angle := LineAngle(start, end, f)
	var placed []*battle.Unit
	for _, p := range LinePositions(start, end, count) {
		u, err := b.SpawnUnit(battle.SpawnRequest{
			Kind:           kind,
			Team:           team,
			Pos:            p,
			Angle:          angle,
			AddImmediately: true,
		})
		if err != nil {
			continue
		}
		placed = append(placed, u)
	}
	return placed
}
