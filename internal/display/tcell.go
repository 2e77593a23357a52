package display

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/splitfire/internal/draw"
	"github.com/tomz197/splitfire/internal/input"
)

// Tcell renders frames through a tcell screen and forwards its key events to
// an input stream.
type Tcell struct {
	screen tcell.Screen
	stream *input.Stream
}

// NewTcell creates a display on screen that pushes key presses to stream.
func NewTcell(screen tcell.Screen, stream *input.Stream) *Tcell {
	return &Tcell{screen: screen, stream: stream}
}

// Start initializes the screen and begins polling its events.
func (t *Tcell) Start() error {
	if err := t.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	t.screen.HideCursor()
	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	t.screen.Clear()

	go t.pollEvents()
	return nil
}

// Close restores the terminal. The input stream reports Quit afterwards.
func (t *Tcell) Close() {
	t.screen.Fini()
}

func (t *Tcell) pollEvents() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			t.stream.Close()
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.pushKey(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

// pushKey encodes a key event as the bytes a terminal would send.
func (t *Tcell) pushKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		t.stream.PushString("\x1b[A")
	case tcell.KeyDown:
		t.stream.PushString("\x1b[B")
	case tcell.KeyRight:
		t.stream.PushString("\x1b[C")
	case tcell.KeyLeft:
		t.stream.PushString("\x1b[D")
	case tcell.KeyCtrlC:
		t.stream.Push('\x03')
	case tcell.KeyRune:
		if r := ev.Rune(); r < 0x80 {
			t.stream.Push(byte(r))
		}
	}
}

// Size returns the screen dimensions in cells.
func (t *Tcell) Size() (int, int, error) {
	cols, rows := t.screen.Size()
	return cols, rows, nil
}

// Clear starts a new frame.
func (t *Tcell) Clear() {
	t.screen.Clear()
}

// Present copies the canvas cells to the screen.
func (t *Tcell) Present(canvas *draw.Canvas) error {
	canvas.Cells(func(c draw.Cell) {
		style := tcell.StyleDefault.Foreground(tcellColor(c.Fg))
		if c.HasBg {
			style = style.Background(tcellColor(c.Bg))
		} else {
			style = style.Background(tcell.ColorBlack)
		}
		t.screen.SetContent(c.Col, c.Row, c.Rune, nil, style)
	})
	return nil
}

// SetScore shows the score in the top-left corner.
func (t *Tcell) SetScore(text string) {
	t.putString(1, 0, text, colorHUD)
}

// ShowGameOver shows the game-over banner in the middle of the screen.
func (t *Tcell) ShowGameOver(over bool) {
	if !over {
		return
	}
	cols, rows := t.screen.Size()
	mid := rows / 2
	t.putString(centerCol(cols, gameOverTitle), mid-1, gameOverTitle, colorGameOver)
	t.putString(centerCol(cols, gameOverHint), mid+1, gameOverHint, colorHUD)
}

// ShowNotice shows text on the bottom row. Empty text shows nothing.
func (t *Tcell) ShowNotice(text string) {
	if text == "" {
		return
	}
	cols, rows := t.screen.Size()
	t.putString(centerCol(cols, text), rows-1, text, colorNotice)
}

// Flush makes the frame visible.
func (t *Tcell) Flush() error {
	t.screen.Show()
	return nil
}

func (t *Tcell) putString(col, row int, s string, fg colorful.Color) {
	style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcell.ColorBlack).Bold(true)
	for i, r := range s {
		t.screen.SetContent(col+i, row, r, nil, style)
	}
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
