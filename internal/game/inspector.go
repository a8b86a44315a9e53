package game

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/little-boxes/internal/battle"
)

// Inspector panel, rendered into an offscreen buffer at 1x then blitted at inspScale.
const (
	inspScale = 2
	inspBufW  = 180
	inspBufH  = 150
	inspPad   = 4
	inspLineH = 13
)

// Inspector holds the selected unit and view toggle state.
type Inspector struct {
	selectedID int
	rawView    bool // false = curated, true = raw dump
	buf        *ebiten.Image
}

// selectedUnit finds the inspected unit in f.
func (in Inspector) selectedUnit(f battle.Frame) (battle.UnitState, bool) {
	if in.selectedID == 0 {
		return battle.UnitState{}, false
	}
	for _, u := range f.Units {
		if u.ID == in.selectedID {
			return u, true
		}
	}
	return battle.UnitState{}, false
}

// healthBar renders v in [0,1] as a fixed-width text bar.
func healthBar(v float64) string {
	const width = 14
	filled := int(v * width)
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return strings.Repeat("#", filled) + strings.Repeat(".", width-filled)
}

// inspectorLines is the text shown for u.
func inspectorLines(u battle.UnitState, raw bool) []string {
	if raw {
		return []string{
			fmt.Sprintf("id=%d kind=%d team=%d", u.ID, u.Kind, u.Team),
			fmt.Sprintf("pos=(%.1f,%.1f)", u.Hitbox.Position.X, u.Hitbox.Position.Y),
			fmt.Sprintf("ang=%.3f", u.Hitbox.Angle),
			fmt.Sprintf("vel=(%.2f,%.2f)", u.Velocity.X, u.Velocity.Y),
			fmt.Sprintf("hp=%.2f/%.0f", u.Health, u.BaseHealth),
			fmt.Sprintf("box=[%.0f,%.0f]x[%.0f,%.0f]", u.Hitbox.XMin, u.Hitbox.XMax, u.Hitbox.YMin, u.Hitbox.YMax),
			fmt.Sprintf("reach=%.0f target=%d active=%v", u.Reach, u.TargetID, u.Active),
		}
	}

	frac := 0.0
	if u.BaseHealth > 0 {
		frac = u.Health / u.BaseHealth
	}
	status := "alive"
	if !u.Active {
		status = "dead"
	}
	target := "none"
	if u.TargetID != 0 {
		target = fmt.Sprintf("#%d", u.TargetID)
	}
	return []string{
		fmt.Sprintf("%s  %s", u.Kind, status),
		fmt.Sprintf("hp %s %.0f", healthBar(frac), u.Health),
		fmt.Sprintf("target: %s", target),
		fmt.Sprintf("speed: %.2f", u.Velocity.Length()),
		fmt.Sprintf("pos: (%.0f,%.0f)", u.Hitbox.Position.X, u.Hitbox.Position.Y),
	}
}

// drawInspector renders the inspector panel into an offscreen buffer at 1x,
// then blits it onto the screen at inspScale for readability.
func (g *Game) drawInspector(screen *ebiten.Image) {
	u, ok := g.inspector.selectedUnit(g.frame)
	if !ok {
		return
	}
	if g.inspector.buf == nil {
		g.inspector.buf = ebiten.NewImage(inspBufW, inspBufH)
	}
	buf := g.inspector.buf
	buf.Clear()

	bw := float32(inspBufW)
	bh := float32(inspBufH)
	panelBg := color.RGBA{R: 14, G: 16, B: 20, A: 230}
	panelBorder := battle.TeamColor(u.Team)
	vector.FillRect(buf, 0, 0, bw, bh, panelBg, false)
	vector.StrokeRect(buf, 0, 0, bw, bh, 1, panelBorder, false)

	lx, ly := inspPad, inspPad
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("[ %s #%d ]", battle.TeamName(u.Team), u.ID), lx, ly)
	ly += inspLineH + 2

	viewName := "CURATED"
	if g.inspector.rawView {
		viewName = "RAW"
	}
	ebitenutil.DebugPrintAt(buf, fmt.Sprintf("view: %s  [I] toggle", viewName), lx, ly)
	ly += inspLineH + 4
	vector.StrokeLine(buf, float32(lx), float32(ly), bw-inspPad, float32(ly), 1, panelBorder, false)
	ly += 4

	for _, l := range inspectorLines(u, g.inspector.rawView) {
		ebitenutil.DebugPrintAt(buf, l, lx, ly)
		ly += inspLineH
	}

	// Bottom-right of the field.
	fieldRight := g.width - feedPanelWidth - borderWidth
	px := fieldRight - inspBufW*inspScale - 8
	py := g.height - hudHeight - borderWidth - inspBufH*inspScale - 8
	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(inspScale, inspScale)
	opts.GeoM.Translate(float64(px), float64(py))
	screen.DrawImage(buf, opts)
}
