// Package display contains the terminal front ends the frame loop renders to.
package display

import "github.com/lucasb-eyer/go-colorful"

// HUD text
const (
	gameOverTitle = "GAME OVER"
	gameOverHint  = "Press R to restart or Q to quit"
)

var (
	colorHUD      = colorful.Color{R: 1, G: 1, B: 1}
	colorGameOver = colorful.Color{R: 1, G: 0.2, B: 0.2}
	colorNotice   = colorful.Color{R: 1, G: 0.65, B: 0}
)

// centerCol returns the 0-based column that centers s in a row of width cells.
func centerCol(width int, s string) int {
	col := (width - len(s)) / 2
	if col < 0 {
		return 0
	}
	return col
}
