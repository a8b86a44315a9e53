package battle

import (
	"strings"
	"testing"
)

func TestSimLog_FiltersAndCounts(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, "#1", "Red", "spawn", "melee", "(100, 100)", 0)
	sl.Add(4, "#1", "Red", "combat", "hit", "#2", 20)
	sl.Add(9, "#2", "Blue", "combat", "hit", "#1", 20)
	sl.Add(9, "#2", "Blue", "combat", "kill", "Melee Unit", 0)
	sl.AddVerbose(9, "#2", "Blue", "unit", "trail", "", 0)

	if sl.Len() != 4 {
		t.Fatalf("verbose entry recorded in quiet log, len %d", sl.Len())
	}
	if n := sl.CountCategory("combat", "hit"); n != 2 {
		t.Fatalf("hits %d", n)
	}
	if n := len(sl.Filter("combat", "")); n != 3 {
		t.Fatalf("combat entries %d", n)
	}
	if n := len(sl.FilterEntity("#2")); n != 2 {
		t.Fatalf("#2 entries %d", n)
	}
	if n := len(sl.FilterTickRange(4, 8)); n != 1 {
		t.Fatalf("ticks 4-8: %d", n)
	}
	if e, ok := sl.FirstOf("combat", "hit"); !ok || e.Tick != 4 {
		t.Fatalf("first hit %+v", e)
	}
	if e, ok := sl.LastOf("combat", "hit"); !ok || e.Entity != "#2" {
		t.Fatalf("last hit %+v", e)
	}
	if _, ok := sl.FirstOf("combat", "block"); ok {
		t.Fatal("no block was logged")
	}
	if !sl.HasEntry("combat", "kill", "Melee") || sl.HasEntry("combat", "kill", "Cannon") {
		t.Fatal("HasEntry substring match wrong")
	}
	if n := len(sl.Since(3)); n != 1 {
		t.Fatalf("since 3: %d", n)
	}
}

func TestSimLog_VerboseKeepsTrailEntries(t *testing.T) {
	sl := NewSimLog(true)
	sl.AddVerbose(1, "#1", "Red", "unit", "trail", "", 0)
	if sl.Len() != 1 {
		t.Fatal("verbose log dropped entry")
	}
}

func TestSimLog_FormatAndSummary(t *testing.T) {
	ts := NewTestSim(WithUnit(KindMelee, 0, 100, 100, 0), WithDormantUnit(KindMelee, 1, 600, 600, 0))
	ts.RunTicks(1)

	out := ts.SimLog.Format()
	if !strings.Contains(out, "[T=000] #1") || !strings.Contains(out, "spawn") {
		t.Fatalf("unexpected log:\n%s", out)
	}
	sum := ts.SimLog.Summary(ts.Tick(), ts.Units)
	for _, want := range []string{"T=001", "Red     alive=1/1", "Blue    alive=0/1", "Victory: Red"} {
		if !strings.Contains(sum, want) {
			t.Fatalf("summary missing %q:\n%s", want, sum)
		}
	}
}
