package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/little-boxes/internal/battle"
)

// reportTicks is how far back the per-unit timeline in a report reaches.
const reportTicks = 300

// battleReport summarises the battle and, if a unit is selected, its recent
// log entries. Callers must not hold the battle lock.
func battleReport(b *battle.Battle, scenarioName string, selectedID, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = reportTicks
	}
	outcome := b.Outcome()
	tick := b.Tick()
	fromTick := tick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}
	sl := b.Log()

	var sb strings.Builder
	b.View(func(units []*battle.Unit, projectiles []*battle.Projectile, _ []*battle.Particle) {
		fmt.Fprintf(&sb, "--- Little Boxes battle report ---\n")
		fmt.Fprintf(&sb, "battle=%s scenario=%s tick=%d\n", b.ID, scenarioName, tick)
		fmt.Fprintf(&sb, "outcome: %s\n", outcome)
		fmt.Fprintf(&sb, "units=%d projectiles=%d\n\n", len(units), len(projectiles))
		if sl == nil {
			return
		}
		sb.WriteString(sl.Summary(tick, units))
		sb.WriteString(battle.FormatGrades(battle.GradeUnits(sl, units)))

		if selectedID == 0 {
			return
		}
		label := fmt.Sprintf("#%d", selectedID)
		fmt.Fprintf(&sb, "\n== SELECTED %s T=%d..%d ==\n", label, fromTick, tick)
		n := 0
		for _, e := range sl.FilterEntity(label) {
			if e.Tick < fromTick {
				continue
			}
			sb.WriteString(e.String())
			sb.WriteByte('\n')
			n++
		}
		if n == 0 {
			sb.WriteString("(no entries in range)\n")
		}
	})
	return sb.String()
}

// copyReport puts the battle report on the system clipboard.
func (g *Game) copyReport() {
	report := battleReport(g.battle, g.scenario.Name, g.inspector.selectedID, reportTicks)
	if err := clipboard.WriteAll(report); err != nil {
		g.setStatus("clipboard: %v", err)
		return
	}
	g.setStatus("Report copied (%d lines)", strings.Count(report, "\n"))
}
