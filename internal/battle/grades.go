package battle

import (
	"fmt"
	"sort"
	"strings"
)

// Grading weights.
const (
	gradeSurvivalMax = 30.0
	gradeDamageMax   = 45.0
	gradeKillPoints  = 10.0
	gradeKillMax     = 25.0
)

// UnitGrade is an after-action score for one unit, built from the SimLog.
type UnitGrade struct {
	Label       string
	Kind        UnitKind
	Team        int
	Survived    bool
	HealthFrac  float64
	DamageDealt float64
	DamageTaken float64
	HitsLanded  int
	Kills       int
	Blocks      int
	Score       float64
	Grade       string
	GoodTraits  []string
	BadTraits   []string
}

// attackerLabel extracts "#7" from a hit source such as "#7 Cannonball".
func attackerLabel(source string) string {
	if !strings.HasPrefix(source, "#") {
		return ""
	}
	label, _, _ := strings.Cut(source, " ")
	return label
}

// GradeUnits scores every unit from sl. A kill is credited to the last unit
// that hit the victim. Grades are sorted by team, then label. Call it
// through Battle.View while the battle is running.
func GradeUnits(sl *SimLog, units []*Unit) []UnitGrade {
	byLabel := make(map[string]*UnitGrade, len(units))
	grades := make([]*UnitGrade, 0, len(units))
	for _, u := range units {
		g := &UnitGrade{
			Label:    u.Label(),
			Kind:     u.kind,
			Team:     u.team,
			Survived: u.active,
		}
		if u.active && u.stats.baseHealth > 0 {
			g.HealthFrac = clamp01(u.health / u.stats.baseHealth)
		}
		byLabel[g.Label] = g
		grades = append(grades, g)
	}

	if sl != nil {
		lastHitBy := map[string]string{}
		for _, e := range sl.Entries() {
			if e.Category != "combat" {
				continue
			}
			victim := byLabel[e.Entity]
			switch e.Key {
			case "hit":
				attacker := attackerLabel(e.Value)
				if victim != nil {
					victim.DamageTaken += e.NumVal
				}
				if a := byLabel[attacker]; a != nil && attacker != e.Entity {
					a.DamageDealt += e.NumVal
					a.HitsLanded++
					lastHitBy[e.Entity] = attacker
				}
			case "block":
				if victim != nil {
					victim.Blocks++
				}
			case "kill":
				if a := byLabel[lastHitBy[e.Entity]]; a != nil {
					a.Kills++
				}
			}
		}
	}

	out := make([]UnitGrade, 0, len(grades))
	for _, g := range grades {
		g.Score = scoreUnit(g)
		g.Grade = LetterGrade(g.Score)
		g.GoodTraits, g.BadTraits = unitTraits(g)
		out = append(out, *g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Team != out[j].Team {
			return out[i].Team < out[j].Team
		}
		return labelID(out[i].Label) < labelID(out[j].Label)
	})
	return out
}

func labelID(label string) int {
	var id int
	_, _ = fmt.Sscanf(label, "#%d", &id)
	return id
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func scoreUnit(g *UnitGrade) float64 {
	survival := 0.0
	if g.Survived {
		survival = gradeSurvivalMax * g.HealthFrac
	}
	damage := g.DamageDealt / 100 * 15
	if damage > gradeDamageMax {
		damage = gradeDamageMax
	}
	kills := float64(g.Kills) * gradeKillPoints
	if kills > gradeKillMax {
		kills = gradeKillMax
	}
	return survival + damage + kills
}

func unitTraits(g *UnitGrade) (good, bad []string) {
	if g.Survived && g.HealthFrac >= 0.75 {
		good = append(good, "unscathed")
	}
	if g.Kills >= 2 {
		good = append(good, "multi_kill")
	}
	if g.DamageDealt >= 200 {
		good = append(good, "heavy_hitter")
	}
	if g.Blocks >= 3 {
		good = append(good, "wall")
	}

	if !g.Survived && g.DamageDealt == 0 {
		bad = append(bad, "died_without_damage")
	}
	if g.DamageDealt == 0 && g.DamageTaken == 0 && g.Blocks == 0 {
		bad = append(bad, "never_engaged")
	}
	return good, bad
}

// LetterGrade maps a 0-100 score to a letter.
func LetterGrade(score float64) string {
	switch {
	case score >= 93:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 78:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 62:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 45:
		return "D"
	default:
		return "F"
	}
}

// FormatGrades returns a human-readable grade sheet grouped by team.
func FormatGrades(grades []UnitGrade) string {
	var sb strings.Builder
	sb.WriteString("=== Unit Grades ===\n")

	team := TeamNeutral - 1
	for _, g := range grades {
		if g.Team != team {
			team = g.Team
			fmt.Fprintf(&sb, "--- %s ---\n", strings.ToUpper(TeamName(team)))
		}
		status := "survived"
		if !g.Survived {
			status = "KIA"
		}
		fmt.Fprintf(&sb, "  %-2s %-4s %-18s [%s] dealt=%.0f taken=%.0f kills=%d blocks=%d\n",
			g.Grade, g.Label, g.Kind, status, g.DamageDealt, g.DamageTaken, g.Kills, g.Blocks)
		if len(g.GoodTraits) > 0 {
			fmt.Fprintf(&sb, "       Good: %s\n", strings.Join(g.GoodTraits, ", "))
		}
		if len(g.BadTraits) > 0 {
			fmt.Fprintf(&sb, "       Bad:  %s\n", strings.Join(g.BadTraits, ", "))
		}
	}
	return sb.String()
}
