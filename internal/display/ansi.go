package display

import (
	"fmt"
	"io"

	"github.com/tomz197/splitfire/internal/draw"
)

// ANSI renders frames as escape sequences to a writer, e.g. an SSH session or a
// raw local terminal. Output is buffered by a ChunkWriter and sent on Flush.
type ANSI struct {
	cw   *draw.ChunkWriter
	size draw.TermSizeFunc
	cols int
	rows int
}

// NewANSI creates an ANSI display writing to w. size reports the terminal
// dimensions; nil means the local stdout terminal.
func NewANSI(w io.Writer, size draw.TermSizeFunc) *ANSI {
	if size == nil {
		size = draw.DefaultTermSizeFunc
	}
	return &ANSI{
		cw:   draw.NewChunkWriter(w),
		size: size,
	}
}

// Start hides the cursor and clears the terminal.
func (a *ANSI) Start() error {
	draw.HideCursor(a.cw)
	draw.ClearScreen(a.cw)
	return a.cw.Flush()
}

// Close clears the terminal and restores the cursor.
func (a *ANSI) Close() error {
	draw.ClearScreen(a.cw)
	draw.ShowCursor(a.cw)
	return a.cw.Flush()
}

// Size returns the terminal dimensions in cells.
func (a *ANSI) Size() (int, int, error) {
	cols, rows, err := a.size()
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	a.cols, a.rows = cols, rows
	return cols, rows, nil
}

// Clear starts a new frame.
func (a *ANSI) Clear() {
	draw.ClearScreen(a.cw)
}

// Present queues the canvas contents.
func (a *ANSI) Present(canvas *draw.Canvas) error {
	return canvas.Render(a.cw)
}

// SetScore shows the score in the top-left corner.
func (a *ANSI) SetScore(text string) {
	a.cw.WriteColorAt(2, 1, text, colorHUD)
}

// ShowGameOver shows the game-over banner in the middle of the terminal.
func (a *ANSI) ShowGameOver(over bool) {
	if !over {
		return
	}
	mid := a.rows / 2
	a.cw.WriteColorAt(centerCol(a.cols, gameOverTitle)+1, mid-1, gameOverTitle, colorGameOver)
	a.cw.WriteAt(centerCol(a.cols, gameOverHint)+1, mid+1, gameOverHint)
}

// ShowNotice shows text on the bottom row. Empty text shows nothing.
func (a *ANSI) ShowNotice(text string) {
	if text == "" {
		return
	}
	a.cw.WriteColorAt(centerCol(a.cols, text)+1, a.rows, text, colorNotice)
}

// Flush writes the frame to the terminal.
func (a *ANSI) Flush() error {
	return a.cw.Flush()
}
