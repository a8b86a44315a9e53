package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/geom"
)

// statusRows is the space kept under the field for the status line.
const statusRows = 2

// kindRunes is the letter drawn for each unit kind.
var kindRunes = map[battle.UnitKind]rune{
	battle.KindMelee:        'm',
	battle.KindJuggernaut:   'J',
	battle.KindCharger:      'c',
	battle.KindRanged:       'r',
	battle.KindSmartRanged:  'R',
	battle.KindCannon:       'C',
	battle.KindLaser:        'L',
	battle.KindShieldBearer: 'S',
	battle.KindResurrector:  '+',
}

// viewport maps field coordinates onto a cols x rows character grid.
type viewport struct {
	border     geom.BoundingBox
	cols, rows int
}

func newViewport(border geom.BoundingBox, screenW, screenH int) viewport {
	rows := screenH - statusRows
	if rows < 1 {
		rows = 1
	}
	if screenW < 1 {
		screenW = 1
	}
	return viewport{border: border, cols: screenW, rows: rows}
}

// cell returns the grid cell holding p, and false when p is off the field.
func (v viewport) cell(p geom.Vector2D) (int, int, bool) {
	w := v.border.Width()
	h := v.border.Height()
	if w <= 0 || h <= 0 {
		return 0, 0, false
	}
	fx := (p.X - v.border.XMin) / w
	fy := (p.Y - v.border.YMin) / h
	if fx < 0 || fx > 1 || fy < 0 || fy > 1 {
		return 0, 0, false
	}
	x := int(fx * float64(v.cols))
	y := int(fy * float64(v.rows))
	if x == v.cols {
		x--
	}
	if y == v.rows {
		y--
	}
	return x, y, true
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func unitRune(u battle.UnitState) rune {
	if !u.Active {
		return 'x'
	}
	if r, ok := kindRunes[u.Kind]; ok {
		return r
	}
	return '?'
}

// beamCells samples the cells along a laser from origin to end.
func (v viewport) beamCells(from, to geom.Vector2D) [][2]int {
	ray := to.Minus(from)
	steps := v.cols + v.rows
	var out [][2]int
	seen := map[[2]int]bool{}
	for i := 0; i <= steps; i++ {
		p := from.Plus(ray.ScaledBy(float64(i) / float64(steps)))
		x, y, ok := v.cell(p)
		if !ok {
			continue
		}
		c := [2]int{x, y}
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// statusLine summarises the frame for the bottom row.
func statusLine(f battle.Frame, speed float64, banner string) string {
	state := "running"
	if f.Paused {
		state = "paused"
	}
	alive := f.Alive()
	s := fmt.Sprintf("T=%d %s x%.2g |", f.Tick, state, speed)
	for t := 0; t < battle.MaxTeams; t++ {
		if n, ok := alive[t]; ok {
			s += fmt.Sprintf(" %s:%d", battle.TeamName(t), n)
		}
	}
	if banner != "" {
		s += " | " + banner
	}
	return s
}

// drawFrame paints f onto screen. Particles go first so units stay on top.
func drawFrame(screen tcell.Screen, f battle.Frame, speed float64, banner string) {
	screen.Clear()
	w, h := screen.Size()
	v := newViewport(f.Border, w, h)
	base := tcell.StyleDefault

	if f.ParticlesEnabled {
		for _, p := range f.Particles {
			if x, y, ok := v.cell(p.Pos); ok {
				screen.SetContent(x, y, '.', nil, base.Foreground(rgb(battle.TeamColor(p.Team))))
			}
		}
	}
	for _, p := range f.Projectiles {
		style := base.Foreground(rgb(battle.TeamColor(p.Team)))
		if p.FriendlyFire {
			style = base.Foreground(tcell.ColorWhite)
		}
		if p.Kind == battle.ProjectileLaser && !p.Vel.IsZero() {
			for _, c := range v.beamCells(p.Origin, p.End) {
				screen.SetContent(c[0], c[1], '-', nil, style)
			}
			continue
		}
		if x, y, ok := v.cell(p.Pos); ok {
			screen.SetContent(x, y, '*', nil, style)
		}
	}
	for _, u := range f.Units {
		x, y, ok := v.cell(u.Hitbox.Position)
		if !ok {
			continue
		}
		style := base.Foreground(tcell.ColorBlack).Background(rgb(battle.TeamColor(u.Team)))
		if !u.Active {
			style = base.Foreground(tcell.ColorGray)
		}
		screen.SetContent(x, y, unitRune(u), nil, style)
	}

	for i, r := range statusLine(f, speed, banner) {
		if i >= w {
			break
		}
		screen.SetContent(i, h-1, r, nil, base.Reverse(true))
	}
	screen.Show()
}
