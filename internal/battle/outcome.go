package battle

import (
	"fmt"
	"sort"
	"strings"
)

type Outcome int

const (
	OutcomeInconclusive Outcome = iota
	OutcomeVictory
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDraw:
		return "draw"
	case OutcomeInconclusive:
		return "inconclusive"
	default:
		return "unknown"
	}
}

type OutcomeReport struct {
	Outcome     Outcome
	Winner      int
	Survivors   map[int]int
	Totals      map[int]int
	Description string
}

// Teams returns the teams that fielded units, in ascending order.
func (r OutcomeReport) Teams() []int {
	teams := make([]int, 0, len(r.Totals))
	for t := range r.Totals {
		teams = append(teams, t)
	}
	sort.Ints(teams)
	return teams
}

func (r OutcomeReport) String() string {
	var parts []string
	for _, t := range r.Teams() {
		parts = append(parts, fmt.Sprintf("%s %d/%d", TeamName(t), r.Survivors[t], r.Totals[t]))
	}
	return fmt.Sprintf("%s (%s) %s", r.Outcome, strings.Join(parts, ", "), r.Description)
}

// DetermineOutcome classifies a set of units: one team left standing is a
// victory, nobody left is a draw, anything else is still open.
func DetermineOutcome(units []*Unit) OutcomeReport {
	r := OutcomeReport{
		Winner:    TeamNeutral,
		Survivors: map[int]int{},
		Totals:    map[int]int{},
	}
	for _, u := range units {
		r.Totals[u.team]++
		if u.active {
			r.Survivors[u.team]++
		}
	}

	var standing []int
	for _, t := range r.Teams() {
		if r.Survivors[t] > 0 {
			standing = append(standing, t)
		}
	}

	switch {
	case len(r.Totals) == 0:
		r.Outcome = OutcomeInconclusive
		r.Description = "empty_field"
	case len(standing) == 0:
		r.Outcome = OutcomeDraw
		r.Description = "all_units_down"
	case len(standing) == 1 && len(r.Totals) > 1:
		r.Outcome = OutcomeVictory
		r.Winner = standing[0]
		r.Description = "decisive_" + strings.ToLower(TeamName(standing[0])) + "_victory"
	case len(standing) == 1:
		r.Outcome = OutcomeInconclusive
		r.Description = "single_team_field"
	default:
		r.Outcome = OutcomeInconclusive
		r.Description = fmt.Sprintf("%d_teams_standing", len(standing))
	}
	return r
}

// Outcome classifies the battle's current units.
func (b *Battle) Outcome() OutcomeReport {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return DetermineOutcome(b.units)
}
