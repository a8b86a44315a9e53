package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"
)

func TestContainsAbsPoint_EdgesInside(t *testing.T) {
	b := NewBox(Vec(0, 0), 10, 5, 0)
	for _, p := range []Vector2D{Vec(10, 0), Vec(-10, 5), Vec(0, -5), Vec(3, 2)} {
		if !b.ContainsAbsPoint(p) {
			t.Errorf("point %v should be inside", p)
		}
	}
	if b.ContainsAbsPoint(Vec(10.01, 0)) {
		t.Error("point just past the edge should be outside")
	}
}

func TestContainsAbsPoint_RotationInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(11)) // #nosec G404 -- test only
	for i := 0; i < 300; i++ {
		pos := Vec(rng.Float64()*200, rng.Float64()*200)
		b := BoundingBox{Position: pos, XMin: -12, XMax: 8, YMin: -4, YMax: 20}
		p := pos.Plus(Vec(rng.Float64()*50-25, rng.Float64()*50-25))
		a := rng.Float64() * 2 * math.Pi

		rotated := b
		rotated.Angle += a
		q := p.Minus(pos)
		q.RotateBy(a)
		q.Add(pos)

		// Skip points sitting on an edge where float noise could flip the answer.
		r := b.ToRelative(p)
		if near(r.X, b.XMin, 1e-6) || near(r.X, b.XMax, 1e-6) || near(r.Y, b.YMin, 1e-6) || near(r.Y, b.YMax, 1e-6) {
			continue
		}
		if b.ContainsAbsPoint(p) != rotated.ContainsAbsPoint(q) {
			t.Fatalf("containment changed under rotation: box=%+v p=%v angle=%.4f", b, p, a)
		}
	}
}

func TestToAbsToRelative_RoundTrip(t *testing.T) {
	b := BoundingBox{Position: Vec(40, -7), XMin: -1, XMax: 1, YMin: -1, YMax: 1, Angle: 0.7}
	p := Vec(13, 29)
	got := b.ToAbs(b.ToRelative(p))
	if !near(got.X, p.X, 1e-9) || !near(got.Y, p.Y, 1e-9) {
		t.Fatalf("round trip: want %v got %v", p, got)
	}
}

func TestBoxFromCorners(t *testing.T) {
	b := BoxFromCorners(Vec(600, 300), Vec(200, 100))
	if b.Position != Vec(400, 200) {
		t.Fatalf("position: %v", b.Position)
	}
	if b.XMin != -200 || b.XMax != 200 || b.YMin != -100 || b.YMax != 100 {
		t.Fatalf("extents: %+v", b)
	}
}

func TestFindClosestEdge(t *testing.T) {
	border := BoundingBox{XMin: 0, XMax: 800, YMin: 0, YMax: 800}
	got := border.FindClosestEdge(Vec(100, 400))
	if got != Vec(-100, 0) {
		t.Fatalf("expected (-100,0), got %v", got)
	}
	got = border.FindClosestEdge(Vec(400, 790))
	if got != Vec(0, 10) {
		t.Fatalf("expected (0,10), got %v", got)
	}
}

func TestDistanceToEdge(t *testing.T) {
	b := NewBox(Vec(0, 0), 10, 5, 0)
	d, err := b.DistanceToEdge(Vec(2, 1), Vec(1, 0))
	if err != nil || d != 8 {
		t.Fatalf("east: d=%v err=%v", d, err)
	}
	d, err = b.DistanceToEdge(Vec(2, 1), Vec(0, -3))
	if err != nil || d != -6 {
		t.Fatalf("south: d=%v err=%v", d, err)
	}
}

func TestDistanceToEdge_NonCardinal(t *testing.T) {
	b := NewBox(Vec(0, 0), 10, 5, 0)
	_, err := b.DistanceToEdge(Vec(0, 0), Vec(1, 1))
	if !errors.Is(err, ErrNotCardinal) {
		t.Fatalf("expected ErrNotCardinal, got %v", err)
	}
}

func TestDetectOverlapTwoWay_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(5)) // #nosec G404 -- test only
	for i := 0; i < 500; i++ {
		a := NewBox(Vec(rng.Float64()*60, rng.Float64()*60), 1+rng.Float64()*20, 1+rng.Float64()*20, rng.Float64()*math.Pi)
		b := NewBox(Vec(rng.Float64()*60, rng.Float64()*60), 1+rng.Float64()*20, 1+rng.Float64()*20, rng.Float64()*math.Pi)
		if DetectOverlapTwoWay(a, b) != DetectOverlapTwoWay(b, a) {
			t.Fatalf("asymmetric overlap for %+v / %+v", a, b)
		}
	}
}

func TestDetectOverlap_Containment(t *testing.T) {
	big := NewBox(Vec(0, 0), 50, 50, 0)
	small := NewBox(Vec(5, 5), 2, 2, 0.3)
	if big.DetectOverlapOneWay(small) != true {
		t.Fatal("small box corners are inside big box")
	}
	if small.DetectOverlapOneWay(big) {
		t.Fatal("big box has no corners inside small box")
	}
	if !DetectOverlapTwoWay(small, big) {
		t.Fatal("two-way check must catch nested boxes")
	}
}

func TestCalcCollisionTwoWay_Separates(t *testing.T) {
	rng := rand.New(rand.NewSource(9)) // #nosec G404 -- test only
	for i := 0; i < 500; i++ {
		a := NewBox(Vec(rng.Float64()*30, rng.Float64()*30), 2+rng.Float64()*15, 2+rng.Float64()*15, 0)
		b := NewBox(Vec(rng.Float64()*30, rng.Float64()*30), 2+rng.Float64()*15, 2+rng.Float64()*15, 0)
		if !DetectOverlapTwoWay(a, b) {
			continue
		}
		trans := CalcCollisionTwoWay(a, b)
		if trans.IsZero() {
			t.Fatalf("overlapping boxes produced zero translation: %+v %+v", a, b)
		}
		b.Position.Add(trans)
		if DetectOverlapTwoWay(a, b) {
			t.Fatalf("still overlapping after applying %v: %+v %+v", trans, a, b)
		}
	}
}

func TestCalcCollisionTwoWay_NoOverlap(t *testing.T) {
	a := NewBox(Vec(0, 0), 5, 5, 0)
	b := NewBox(Vec(100, 0), 5, 5, 0)
	if got := CalcCollisionTwoWay(a, b); !got.IsZero() {
		t.Fatalf("expected zero, got %v", got)
	}
}

func TestCalcCollisionOneWay_ShortestAxis(t *testing.T) {
	a := NewBox(Vec(0, 0), 10, 10, 0)
	b := NewBox(Vec(18, 2), 10, 10, 0)
	got := a.CalcCollisionOneWay(b)
	// b's left edge sits at x=8; pushing east by 2 clears a's right edge.
	if !near(got.X, 2, 1e-5) || got.Y != 0 {
		t.Fatalf("expected ~(2,0), got %v", got)
	}
}

func TestCalcContainment_PullsBackInside(t *testing.T) {
	border := BoundingBox{XMin: 0, XMax: 800, YMin: 0, YMax: 800}
	box := NewBox(Vec(795, 3), 10, 10, 0)
	trans := border.CalcContainment(box)
	if trans != Vec(-5, 7) {
		t.Fatalf("expected (-5,7), got %v", trans)
	}
	box.Position.Add(trans)
	for _, c := range box.AbsCorners() {
		if !border.ContainsAbsPoint(c) {
			t.Fatalf("corner %v still outside", c)
		}
	}
}

func TestCalcContainment_Inside(t *testing.T) {
	border := BoundingBox{XMin: 0, XMax: 800, YMin: 0, YMax: 800}
	if got := border.CalcContainment(NewBox(Vec(400, 400), 10, 10, 1)); !got.IsZero() {
		t.Fatalf("expected zero for a box already inside, got %v", got)
	}
}

func TestCalcContainment_ConflictReturnsZero(t *testing.T) {
	border := BoundingBox{XMin: 0, XMax: 10, YMin: 0, YMax: 800}
	tooWide := NewBox(Vec(5, 400), 20, 5, 0)
	if got := border.CalcContainment(tooWide); !got.IsZero() {
		t.Fatalf("a box wider than the border must yield zero, got %v", got)
	}
}

func TestRandomInteriorPos_Inside(t *testing.T) {
	rng := rand.New(rand.NewSource(2)) // #nosec G404 -- test only
	b := NewBox(Vec(50, 50), 10, 20, 0.9)
	for i := 0; i < 200; i++ {
		p := b.RandomInteriorPos(rng)
		r := b.ToRelative(p)
		if r.X < b.XMin-1e-9 || r.X > b.XMax+1e-9 || r.Y < b.YMin-1e-9 || r.Y > b.YMax+1e-9 {
			t.Fatalf("sample %v outside box", p)
		}
	}
}

func TestBox_WidthHeight(t *testing.T) {
	b := NewBox(Vec(50, 50), 10, 4, 1.2)
	if b.Width() != 20 || b.Height() != 8 {
		t.Fatalf("extent %vx%v", b.Width(), b.Height())
	}
}
