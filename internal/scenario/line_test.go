package scenario

import (
	"math"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/geom"
)

func TestLinePositions_EvenSpacing(t *testing.T) {
	ps := LinePositions(geom.Vec(100, 100), geom.Vec(400, 100), 4)
	if len(ps) != 4 {
		t.Fatalf("want 4 positions, got %d", len(ps))
	}
	for i, p := range ps {
		if math.Abs(p.X-(100+float64(i)*100)) > 1e-9 || p.Y != 100 {
			t.Fatalf("position %d = %v", i, p)
		}
	}
}

func TestLinePositions_SingleIsMidpoint(t *testing.T) {
	ps := LinePositions(geom.Vec(0, 0), geom.Vec(200, 100), 1)
	if len(ps) != 1 || ps[0] != geom.Vec(100, 50) {
		t.Fatalf("got %v", ps)
	}
	if LinePositions(geom.Vec(0, 0), geom.Vec(1, 1), 0) != nil {
		t.Fatal("zero count should place nothing")
	}
}

func TestLineAngle_QuarterTurns(t *testing.T) {
	start, end := geom.Vec(300, 200), geom.Vec(500, 200)
	want := map[Facing]float64{
		East:  math.Pi / 2,
		South: math.Pi,
		West:  -math.Pi / 2,
		North: 0,
	}
	for f, w := range want {
		if got := LineAngle(start, end, f); math.Abs(geom.AngleDiff(got, w)) > 1e-9 {
			t.Fatalf("%s: want %.4f, got %.4f", f, w, got)
		}
	}
	if got := LineAngle(start, start, East); math.Abs(got) > 1e-9 {
		t.Fatalf("degenerate line should face east, got %.4f", got)
	}
}

func TestPlaceLine_SkipsRejectedPositionsKeepingSpacing(t *testing.T) {
	b := battle.New()
	area := geom.BoxFromCorners(geom.Vec(180, 0), geom.Vec(220, 800))
	b.SetTeamArea(&area)

	units := PlaceLine(b, battle.KindMelee, 1, geom.Vec(100, 400), geom.Vec(400, 400), East, 4)
	if len(units) != 3 {
		t.Fatalf("want 3 units outside the team area, got %d", len(units))
	}
	xs := []float64{100, 300, 400}
	for i, u := range units {
		if math.Abs(u.Position().X-xs[i]) > 1e-9 {
			t.Fatalf("unit %d at %v, want x=%.0f", i, u.Position(), xs[i])
		}
		if !u.Active() {
			t.Fatal("placed units should be active")
		}
	}
}

func TestFacing_YAML(t *testing.T) {
	var v struct {
		A Facing `yaml:"a"`
		B Facing `yaml:"b"`
		C Facing `yaml:"c"`
	}
	if err := yaml.Unmarshal([]byte("a: West\nb: 7\nc: -1\n"), &v); err != nil {
		t.Fatal(err)
	}
	if v.A != West || v.B != North || v.C != North {
		t.Fatalf("got %v %v %v", v.A, v.B, v.C)
	}
	out, err := yaml.Marshal(struct {
		F Facing `yaml:"f"`
	}{South})
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != "f: south\n" {
		t.Fatalf("marshalled %q", out)
	}
	if err := yaml.Unmarshal([]byte("a: [1]\n"), &v); err == nil {
		t.Fatal("sequence facing should fail")
	}
}
