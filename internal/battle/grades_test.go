package battle

import (
	"math"
	"slices"
	"strings"
	"testing"
)

func TestGradeUnits_CreditsLastHitter(t *testing.T) {
	ts := NewTestSim(
		WithDormantUnit(KindMelee, 1, 500, 400, 0),
		WithUnit(KindShieldBearer, 0, 300, 400, 0),
	)
	sl := NewSimLog(false)
	sl.Add(10, "#2", "Blue", "combat", "hit", "#1 Melee Unit", 0)
	sl.Add(20, "#1", "Blue", "combat", "hit", "#2 Shield Bearer", 60)
	sl.Add(50, "#1", "Blue", "combat", "hit", "#2 Shield Bearer", 50)
	sl.Add(51, "#1", "Blue", "combat", "kill", "Melee Unit", 0)
	for i := 0; i < 3; i++ {
		sl.Add(60+i, "#2", "Red", "combat", "block", "#1 Cannonball", 10)
	}
	sl.Add(70, "#2", "Red", "combat", "hit", "--", 10)

	grades := GradeUnits(sl, ts.Units)
	if len(grades) != 2 || grades[0].Label != "#2" || grades[1].Label != "#1" {
		t.Fatalf("want team 0 first, got %+v", grades)
	}

	shield := grades[0]
	if shield.DamageDealt != 110 || shield.HitsLanded != 2 || shield.Kills != 1 {
		t.Fatalf("shield credit %+v", shield)
	}
	if shield.Blocks != 3 || shield.DamageTaken != 10 || !shield.Survived {
		t.Fatalf("shield defence %+v", shield)
	}
	if math.Abs(shield.Score-56.5) > 1e-9 || shield.Grade != "C" {
		t.Fatalf("score %.2f grade %s", shield.Score, shield.Grade)
	}
	if !slices.Contains(shield.GoodTraits, "wall") || !slices.Contains(shield.GoodTraits, "unscathed") {
		t.Fatalf("traits %v", shield.GoodTraits)
	}

	melee := grades[1]
	if melee.Survived || melee.DamageTaken != 110 || melee.Score != 0 || melee.Grade != "F" {
		t.Fatalf("melee %+v", melee)
	}
	if !slices.Contains(melee.BadTraits, "died_without_damage") || slices.Contains(melee.BadTraits, "never_engaged") {
		t.Fatalf("traits %v", melee.BadTraits)
	}
}

func TestGradeUnits_FromRealBattle(t *testing.T) {
	ts := NewTestSim(
		WithUnit(KindJuggernaut, 0, 350, 400, 0),
		WithUnit(KindMelee, 1, 420, 400, math.Pi),
	)
	ts.RunUntil((*TestSim).Decided, 2000)
	if ts.AliveByTeam(1) != 0 {
		t.Fatal("melee unit should have fallen")
	}

	var grades []UnitGrade
	ts.Battle.View(func(units []*Unit, _ []*Projectile, _ []*Particle) {
		grades = GradeUnits(ts.SimLog, units)
	})
	if grades[0].Kills != 1 || grades[0].DamageDealt < 100 {
		t.Fatalf("juggernaut %+v", grades[0])
	}
	sheet := FormatGrades(grades)
	if !strings.Contains(sheet, "--- RED ---") || !strings.Contains(sheet, "[KIA]") {
		t.Fatalf("sheet:\n%s", sheet)
	}
}

func TestLetterGrade_Bounds(t *testing.T) {
	cases := map[float64]string{100: "A+", 93: "A+", 92.9: "A", 70: "B", 44.9: "F", 0: "F"}
	for score, want := range cases {
		if got := LetterGrade(score); got != want {
			t.Fatalf("LetterGrade(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestAttackerLabel(t *testing.T) {
	if attackerLabel("#12 Laser") != "#12" || attackerLabel("--") != "" || attackerLabel("#3") != "#3" {
		t.Fatal("bad label parse")
	}
}
