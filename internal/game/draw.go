package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/little-boxes/internal/battle"
	"github.com/Garsondee/little-boxes/internal/geom"
)

var (
	colWindow    = color.RGBA{R: 24, G: 26, B: 30, A: 255}
	colOutline   = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	colDead      = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	colHighlight = color.RGBA{R: 255, G: 255, B: 255, A: 200}
	colHUD       = color.RGBA{R: 14, G: 16, B: 20, A: 255}
	colStatus    = color.RGBA{R: 255, G: 210, B: 90, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colWindow)
	f := g.frame
	aa := f.Antialias

	g.drawField(screen, f)
	if f.ParticlesEnabled {
		for _, p := range f.Particles {
			x, y := g.toScreen(p.Pos)
			vector.FillCircle(screen, x, y, float32(p.Radius*g.scale), battle.TeamColor(p.Team), aa)
		}
	}
	for _, u := range f.Units {
		g.drawUnit(screen, u, aa)
	}
	for _, p := range f.Projectiles {
		g.drawShape(screen, projectileShape(p), projectileFill(p), aa)
	}
	if u, ok := g.inspector.selectedUnit(f); ok {
		corners := u.Hitbox.AbsCorners()
		g.drawPolygonOutline(screen, corners[:], 2, colHighlight, aa)
	}

	if !f.Paused {
		g.drawBanner(screen, f)
	}

	g.feed.Draw(screen, g.width-feedPanelWidth, g.height)
	g.drawInspector(screen)
	if g.showHUD {
		g.drawHUD(screen, f)
	}
}

// drawField fills the battlefield and shades the reserved team area.
func (g *Game) drawField(screen *ebiten.Image, f battle.Frame) {
	bg := g.scenario.Background
	x0, y0 := g.toScreen(geom.Vec(f.Border.XMin, f.Border.YMin))
	x1, y1 := g.toScreen(geom.Vec(f.Border.XMax, f.Border.YMax))
	vector.FillRect(screen, x0, y0, x1-x0, y1-y0, bg.Color(), false)

	if f.TeamArea != nil {
		corners := f.TeamArea.AbsCorners()
		g.fillPolygon(screen, corners[:], bg.Darker(), f.Antialias)
	}
	vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colOutline, false)
}

func (g *Game) drawUnit(screen *ebiten.Image, u battle.UnitState, aa bool) {
	fill := battle.TeamColor(u.Team)
	if !u.Active {
		fill = colDead
	}
	corners := u.Hitbox.AbsCorners()
	g.fillPolygon(screen, corners[:], fill, aa)
	g.drawPolygonOutline(screen, corners[:], 1, colOutline, aa)

	for _, s := range glyphShapes(u) {
		g.drawShape(screen, s, colOutline, aa)
	}
}

// drawShape renders s in c: circles, filled polygons, or open/closed polylines.
func (g *Game) drawShape(screen *ebiten.Image, s shape, c color.RGBA, aa bool) {
	switch {
	case s.radius > 0:
		x, y := g.toScreen(s.pts[0])
		vector.FillCircle(screen, x, y, float32(s.radius*g.scale), c, aa)
	case s.fill:
		g.fillPolygon(screen, s.pts, c, aa)
	case s.closed:
		g.drawPolygonOutline(screen, s.pts, 1, c, aa)
	default:
		for i := 1; i < len(s.pts); i++ {
			ax, ay := g.toScreen(s.pts[i-1])
			bx, by := g.toScreen(s.pts[i])
			vector.StrokeLine(screen, ax, ay, bx, by, 1, c, aa)
		}
	}
}

func (g *Game) fillPolygon(screen *ebiten.Image, pts []geom.Vector2D, c color.RGBA, aa bool) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	x, y := g.toScreen(pts[0])
	path.MoveTo(x, y)
	for _, p := range pts[1:] {
		x, y = g.toScreen(p)
		path.LineTo(x, y)
	}
	path.Close()

	opts := &vector.DrawPathOptions{AntiAlias: aa}
	opts.ColorScale.ScaleWithColor(c)
	vector.FillPath(screen, &path, &vector.FillOptions{}, opts)
}

func (g *Game) drawPolygonOutline(screen *ebiten.Image, pts []geom.Vector2D, width float32, c color.RGBA, aa bool) {
	for i := range pts {
		ax, ay := g.toScreen(pts[i])
		bx, by := g.toScreen(pts[(i+1)%len(pts)])
		vector.StrokeLine(screen, ax, ay, bx, by, width, c, aa)
	}
}

// drawBanner shows the victory message centred on the field.
func (g *Game) drawBanner(screen *ebiten.Image, f battle.Frame) {
	msg := g.battle.BannerText(g.scenario.Campaign)
	if msg == "" {
		return
	}
	const charW, boxH = 7, 32
	w := len(msg)*charW + 24
	cx, cy := g.toScreen(f.Border.Position)
	x := int(cx) - w/2
	y := int(cy) - boxH/2
	vector.FillRect(screen, float32(x), float32(y), float32(w), boxH, color.RGBA{A: 200}, false)
	col := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	if team, ok := g.battle.Banner(); ok && team >= 0 {
		col = battle.TeamColor(team)
	}
	text.Draw(screen, msg, basicfont.Face7x13, x+12, y+21, col)
}

// hudLines is the key legend and state readout under the field.
func (g *Game) hudLines(f battle.Frame) []string {
	state := "RUNNING"
	if f.Paused {
		state = "PAUSED"
	}
	place := fmt.Sprintf("place: %s", g.selectedKind)
	if pool, ok := g.battle.Budget().(*battle.ResourcePool); ok && pool != nil {
		price, _ := pool.Price(g.selectedKind)
		place = fmt.Sprintf("place: %s (%d)  resources: %d", g.selectedKind, price, pool.Remaining())
	} else {
		place += fmt.Sprintf("  team: %s", battle.TeamName(g.selectedTeam))
	}

	var roster string
	for i, k := range g.availableKinds() {
		if i >= 9 {
			break
		}
		roster += fmt.Sprintf("%d:%s ", i+1, k.Key())
	}
	return []string{
		fmt.Sprintf("%s  T=%d  speed x%.2g  %s", state, f.Tick, g.clock.Speed(), place),
		roster,
		"LMB place  Shift+LMB inspect  RMB remove  Space pause  N step  ,/. speed  T team",
		"R resurrect  X clear  L reload  G particles  V antialias  C copy report  H hud",
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, f battle.Frame) {
	top := g.height - hudHeight
	vector.FillRect(screen, 0, float32(top), float32(g.width-feedPanelWidth), hudHeight, colHUD, false)
	y := top + 2
	for _, l := range g.hudLines(f) {
		ebitenutil.DebugPrintAt(screen, l, borderWidth, y)
		y += feedLineHeight
	}
	if g.statusLeft > 0 && g.status != "" {
		text.Draw(screen, g.status, basicfont.Face7x13, borderWidth+4, borderWidth+16, colStatus)
	}
}
