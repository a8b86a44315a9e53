package scenario

import "image/color"

// Background names the ground colour a renderer fills the field with.
type Background string

const (
	Sand  Background = "sand"
	Grass Background = "grass"
	Dirt  Background = "dirt"
	Snow  Background = "snow"
	Stone Background = "stone"
)

var backgrounds = map[Background]color.RGBA{
	Sand:  {R: 255, G: 240, B: 179, A: 255},
	Grass: {R: 110, G: 173, B: 69, A: 255},
	Dirt:  {R: 179, G: 128, B: 77, A: 255},
	Snow:  {R: 255, G: 255, B: 255, A: 255},
	Stone: {R: 192, G: 192, B: 192, A: 255},
}

// Color returns the fill colour. An empty background is stone.
func (b Background) Color() color.RGBA {
	if c, ok := backgrounds[b]; ok {
		return c
	}
	return backgrounds[Stone]
}

// Darker is the shade drawn outside the reserved team area.
func (b Background) Darker() color.RGBA {
	c := b.Color()
	return color.RGBA{R: uint8(float64(c.R) * 0.7), G: uint8(float64(c.G) * 0.7), B: uint8(float64(c.B) * 0.7), A: 255}
}
