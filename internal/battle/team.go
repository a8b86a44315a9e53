package battle

import (
	"fmt"
	"image/color"
)

// TeamNeutral marks cosmetic entities that belong to no side.
const TeamNeutral = -1

// MaxTeams is the number of selectable teams.
const MaxTeams = 6

var teamPalette = []color.RGBA{
	{R: 255, G: 0, B: 0, A: 255},     // red
	{R: 0, G: 102, B: 255, A: 255},   // blue
	{R: 0, G: 255, B: 0, A: 255},     // green
	{R: 255, G: 200, B: 0, A: 255},   // orange, named "Yellow"
	{R: 255, G: 0, B: 255, A: 255},   // magenta, named "Purple"
	{R: 192, G: 192, B: 192, A: 255}, // light gray
}

var teamNames = []string{"Red", "Blue", "Green", "Yellow", "Purple", "Gray"}

// TeamColor returns the fill colour for a team. Indices outside the palette
// fall back to light gray.
func TeamColor(team int) color.RGBA {
	if team >= 0 && team < len(teamPalette) {
		return teamPalette[team]
	}
	return teamPalette[len(teamPalette)-1]
}

// TeamName returns the display name for a team.
func TeamName(team int) string {
	if team >= 0 && team < len(teamNames) {
		return teamNames[team]
	}
	return fmt.Sprintf("Team %d", team)
}
