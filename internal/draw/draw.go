// Package draw renders the game world to terminals.
package draw

import "github.com/lucasb-eyer/go-colorful"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Half-block runes; each terminal cell holds two vertical pixels.
const (
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ResetStyle clears all SGR attributes.
const ResetStyle = "\033[0m"

// black is the terminal background colour that faded colours blend towards.
var black = colorful.Color{}

// Fade blends col towards the background. alpha 1 keeps the colour, 0 makes it invisible.
func Fade(col colorful.Color, alpha float64) colorful.Color {
	if alpha >= 1 {
		return col
	}
	if alpha <= 0 {
		return black
	}
	return black.BlendRgb(col, alpha)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
