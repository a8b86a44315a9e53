package main

import (
	"flag"
	"log"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/little-boxes/internal/config"
	"github.com/Garsondee/little-boxes/internal/game"
	"github.com/Garsondee/little-boxes/internal/scenario"
)

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

	g, err := game.New(cfg, sc)
	if err != nil {
		log.Fatal(err)
	}

	title := "Little Boxes"
	if sc.Title != "" {
		title += " - " + sc.Title
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(g.WindowSize())
	ebiten.SetTPS(int(cfg.Sim.TPS))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
