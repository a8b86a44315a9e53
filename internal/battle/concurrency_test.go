package battle

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

// Run with -race: readers share the collections with a running battle.
func TestRun_ReadersSeeWholeCollectionsWhileRunning(t *testing.T) {
	down, up := math.Pi/2, -math.Pi/2
	ts := NewTestSim(
		WithUnit(KindCannon, 0, 250, 300, down),
		WithUnit(KindLaser, 0, 400, 300, down),
		WithUnit(KindSmartRanged, 0, 550, 300, down),
		WithUnit(KindResurrector, 0, 400, 150, down),
		WithUnit(KindShieldBearer, 1, 300, 500, up),
		WithUnit(KindRanged, 1, 500, 500, up),
		WithUnit(KindMelee, 1, 400, 520, up),
		WithUnit(KindResurrector, 1, 400, 650, up),
	)
	b := ts.Battle

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, b, NewClock(240), nil)
	}()

	var sawProjectiles, sawParticles bool
	deadline := time.Now().Add(5 * time.Second)
	for b.Tick() < 150 && time.Now().Before(deadline) {
		f := b.Snapshot()
		if len(f.Units) != len(ts.Units) {
			t.Fatalf("snapshot has %d units, want %d", len(f.Units), len(ts.Units))
		}
		sawProjectiles = sawProjectiles || len(f.Projectiles) > 0
		sawParticles = sawParticles || len(f.Particles) > 0

		b.View(func(units []*Unit, projectiles []*Projectile, particles []*Particle) {
			for _, p := range projectiles {
				if p == nil {
					t.Error("nil projectile in view")
				}
			}
			for _, p := range particles {
				if p == nil {
					t.Error("nil particle in view")
				}
			}
			if len(units) != len(ts.Units) {
				t.Errorf("view has %d units", len(units))
			}
		})
		_ = b.BannerText(false)
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Run returned %v", err)
	}
	if b.Tick() < 150 {
		t.Fatalf("battle only reached tick %d", b.Tick())
	}
	if !sawProjectiles || !sawParticles {
		t.Fatalf("projectiles seen %v, particles seen %v", sawProjectiles, sawParticles)
	}
}
