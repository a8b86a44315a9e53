package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/little-boxes/internal/battle"
)

const (
	feedPanelWidth = 300
	feedMaxEntries = 60
	feedLineHeight = 14
)

// EventFeed is a ring buffer of the latest battle events rendered on-screen.
type EventFeed struct {
	entries []battle.SimLogEntry
	head    int
	count   int
}

// NewEventFeed creates a feed with a fixed capacity.
func NewEventFeed() *EventFeed {
	return &EventFeed{
		entries: make([]battle.SimLogEntry, feedMaxEntries),
	}
}

// Add appends an entry, overwriting the oldest when full.
func (f *EventFeed) Add(e battle.SimLogEntry) {
	f.entries[f.head] = e
	f.head = (f.head + 1) % feedMaxEntries
	if f.count < feedMaxEntries {
		f.count++
	}
}

// Reset drops every entry.
func (f *EventFeed) Reset() {
	f.head = 0
	f.count = 0
}

// Recent returns entries in chronological order (oldest first).
func (f *EventFeed) Recent() []battle.SimLogEntry {
	result := make([]battle.SimLogEntry, f.count)
	for i := 0; i < f.count; i++ {
		idx := (f.head - f.count + i + feedMaxEntries) % feedMaxEntries
		result[i] = f.entries[idx]
	}
	return result
}

// feedLine formats an entry for the panel.
func feedLine(e battle.SimLogEntry) string {
	switch {
	case e.Category == "combat" && e.Key == "hit":
		return fmt.Sprintf("%4d %s hit by %s (%.0f)", e.Tick, e.Entity, e.Value, e.NumVal)
	case e.Entity == "--":
		return fmt.Sprintf("%4d %s %s", e.Tick, e.Key, e.Value)
	default:
		return fmt.Sprintf("%4d %s %s %s", e.Tick, e.Entity, e.Key, e.Value)
	}
}

func feedTeamColor(name string) color.RGBA {
	for t := 0; t < battle.MaxTeams; t++ {
		if battle.TeamName(t) == name {
			return battle.TeamColor(t)
		}
	}
	return color.RGBA{R: 90, G: 90, B: 90, A: 255}
}

// Draw renders the feed panel at panelX, newest entries at the bottom.
func (f *EventFeed) Draw(screen *ebiten.Image, panelX, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, float32(panelH), color.RGBA{R: 24, G: 24, B: 28, A: 250}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1, color.RGBA{R: 70, G: 70, B: 80, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, feedPanelWidth, 16, color.RGBA{R: 40, G: 40, B: 48, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "EVENTS", panelX+8, 0)

	entries := f.Recent()
	maxVisible := (panelH - 24) / feedLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const highlighted = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-highlighted {
			vector.FillRect(screen, float32(panelX+2), float32(y), feedPanelWidth-4, feedLineHeight, color.RGBA{R: 50, G: 50, B: 60, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+4), 3, 6, feedTeamColor(e.Team), false)
		ebitenutil.DebugPrintAt(screen, feedLine(e), panelX+12, y-1)
		y += feedLineHeight
	}
}
