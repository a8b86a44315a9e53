package main

import (
	"strings"
	"testing"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/config"
	"github.com/Garsondee/little-boxes/internal/scenario"
)

func TestDetectStalemate_TrueWhenNobodyDiesLate(t *testing.T) {
	rs := runStats{
		ticks:        4000,
		lastKillTick: 1200,
		outcome: battle.OutcomeReport{
			Outcome:   battle.OutcomeInconclusive,
			Survivors: map[int]int{0: 3, 1: 2},
		},
	}
	stale, reason := detectStalemate(rs)
	if !stale {
		t.Fatalf("expected stalemate, reason=%s", reason)
	}
	if !strings.Contains(reason, "teams_standing=2") {
		t.Fatalf("reason %q", reason)
	}
}

func TestDetectStalemate_FalseWhenDecided(t *testing.T) {
	rs := runStats{
		ticks:   900,
		outcome: battle.OutcomeReport{Outcome: battle.OutcomeVictory, Survivors: map[int]int{1: 2}},
	}
	if stale, reason := detectStalemate(rs); stale || reason != "decided:victory" {
		t.Fatalf("stale=%v reason=%s", stale, reason)
	}
}

func TestDetectStalemate_FalseAfterLateKill(t *testing.T) {
	rs := runStats{
		ticks:        4000,
		lastKillTick: 3500,
		outcome: battle.OutcomeReport{
			Outcome:   battle.OutcomeInconclusive,
			Survivors: map[int]int{0: 1, 1: 1},
		},
	}
	if stale, _ := detectStalemate(rs); stale {
		t.Fatal("a kill in the last quarter is not a stalemate")
	}
}

func TestRunScenario_Duel(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: duel
units:
  - {kind: juggernaut, team: 0, x: 400, y: 350, angle: 1.5707963267948966}
  - {kind: melee, team: 1, x: 400, y: 450, angle: -1.5707963267948966}
`))
	if err != nil {
		t.Fatal(err)
	}
	rs, err := runScenario(config.Default(), sc, 1, 7, 3000, false)
	if err != nil {
		t.Fatal(err)
	}
	if rs.outcome.Outcome != battle.OutcomeVictory || rs.outcome.Winner != 0 {
		t.Fatalf("juggernaut should win: %s", rs.outcome)
	}
	if rs.firstKillTick < 0 || rs.victoryTick < rs.firstKillTick || rs.ticks != rs.victoryTick {
		t.Fatalf("markers kill=%d victory=%d ticks=%d", rs.firstKillTick, rs.victoryTick, rs.ticks)
	}
	if rs.killsByTeam["Blue"] != 1 || rs.hits == 0 {
		t.Fatalf("kills %v hits %d", rs.killsByTeam, rs.hits)
	}
}

func TestRunScenario_VerboseAddsTrailsOnly(t *testing.T) {
	sc, err := scenario.Parse([]byte(`
name: duel
units:
  - {kind: juggernaut, team: 0, x: 400, y: 350, angle: 1.5707963267948966}
  - {kind: melee, team: 1, x: 400, y: 450, angle: -1.5707963267948966}
`))
	if err != nil {
		t.Fatal(err)
	}
	quiet, err := runScenario(config.Default(), sc, 1, 7, 3000, false)
	if err != nil {
		t.Fatal(err)
	}
	loud, err := runScenario(config.Default(), sc, 1, 7, 3000, true)
	if err != nil {
		t.Fatal(err)
	}
	if quiet.trails != 0 || loud.trails == 0 {
		t.Fatalf("trails quiet=%d verbose=%d", quiet.trails, loud.trails)
	}
	if loud.ticks != quiet.ticks || loud.hits != quiet.hits {
		t.Fatalf("verbose run diverged: ticks %d/%d hits %d/%d", loud.ticks, quiet.ticks, loud.hits, quiet.hits)
	}
}

func TestJoinCounts(t *testing.T) {
	if joinCounts(nil) != "none" {
		t.Fatal("empty map")
	}
	if got := joinCounts(map[string]int{"Red": 2, "Blue": 1}); got != "Blue=1,Red=2" {
		t.Fatalf("got %q", got)
	}
}

func TestKindPerformance(t *testing.T) {
	all := []runStats{
		{grades: []battle.UnitGrade{
			{Kind: battle.KindMelee, Score: 40, GoodTraits: []string{"unscathed"}, Survived: true},
			{Kind: battle.KindCannon, Score: 90, BadTraits: []string{"never_engaged"}},
		}},
		{grades: []battle.UnitGrade{
			{Kind: battle.KindMelee, Score: 60, GoodTraits: []string{"unscathed", "multi_kill"}},
		}},
	}
	rows := kindPerformance(all)
	if len(rows) != 2 || rows[0].kind != battle.KindMelee || rows[1].kind != battle.KindCannon {
		t.Fatalf("rows %+v", rows)
	}
	if rows[0].avgScore != 50 || rows[0].survRate != 50 || rows[0].count != 2 {
		t.Fatalf("melee row %+v", rows[0])
	}
	if rows[0].topGood != "unscathed(2)" || rows[1].topBad != "never_engaged(1)" || rows[1].topGood != "" {
		t.Fatalf("traits %+v", rows)
	}
}
