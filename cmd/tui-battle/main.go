package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/config"
	"github.com/Garsondee/little-boxes/internal/scenario"
)

var speeds = []float64{0.25, 0.5, 1, 2, 4}

func main() {
	var (
		configPath string
		name       string
		file       string
	)
	flag.StringVar(&configPath, "config", "", "config file (default ./littleboxes.yaml)")
	flag.StringVar(&name, "scenario", "", "built-in scenario name (default from config)")
	flag.StringVar(&file, "file", "", "scenario YAML file, overrides -scenario")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal(err)
	}
	if name == "" {
		name = cfg.Scenario.Name
	}
	if file == "" {
		file = cfg.Scenario.Path
	}
	sc, err := scenario.Resolve(file, name)
	if err != nil {
		log.Fatalf("%v (built-in: %s)", err, strings.Join(scenario.Names(), ", "))
	}
	b, err := sc.NewBattle(cfg.BattleOptions()...)
	if err != nil {
		log.Fatal(err)
	}
	b.SetParticlesEnabled(cfg.Render.Particles)

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	if err := run(screen, b, sc.Campaign, battle.NewClock(cfg.Sim.TPS)); err != nil {
		screen.Fini()
		log.Fatal(err)
	}
}

// run drives b on its own goroutine and redraws whenever a new frame
// arrives, until the user quits.
func run(screen tcell.Screen, b *battle.Battle, campaign bool, clock *battle.Clock) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Only the latest frame matters; older ones are dropped.
	frames := make(chan battle.Frame, 1)
	done := make(chan error, 1)
	go func() {
		done <- battle.Run(ctx, b, clock, func(f battle.Frame) {
			select {
			case <-frames:
			default:
			}
			frames <- f
		})
	}()

	events := make(chan tcell.Event, 100)
	go pumpEvents(ctx, screen.PollEvent, events)

	speedIdx := 2
	frame := b.Snapshot()
	redraw := func() {
		drawFrame(screen, frame, speeds[speedIdx], b.BannerText(campaign))
	}
	redraw()

	for {
		select {
		case err := <-done:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		case frame = <-frames:
			redraw()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				screen.Sync()
				redraw()
			case *tcell.EventKey:
				switch {
				case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC,
					ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
					cancel()
					return nil
				case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
					b.SetPaused(!b.Paused())
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'r':
					b.ResurrectAll()
				case ev.Key() == tcell.KeyRune && ev.Rune() == 'g':
					b.SetParticlesEnabled(!b.ParticlesEnabled())
				case ev.Key() == tcell.KeyRune && (ev.Rune() == '+' || ev.Rune() == '.'):
					if speedIdx < len(speeds)-1 {
						speedIdx++
					}
					clock.SetSpeed(speeds[speedIdx])
				case ev.Key() == tcell.KeyRune && (ev.Rune() == '-' || ev.Rune() == ','):
					if speedIdx > 0 {
						speedIdx--
					}
					clock.SetSpeed(speeds[speedIdx])
				}
				frame = b.Snapshot()
				redraw()
			}
		}
	}
}

// pumpEvents forwards polled events until poll returns nil or ctx is done.
func pumpEvents(ctx context.Context, poll func() tcell.Event, events chan<- tcell.Event) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}
