package draw

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/term"
)

// ChunkWriter collects one frame of terminal output and sends it in MTU-sized
// chunks on Flush, so SSH sessions see few large writes. It is the io.Writer
// passed to Canvas.Render.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte // Scratch space for integer formatting
}

// maxChunkSize keeps each write under a typical MTU.
const maxChunkSize = 1400

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{bufw: bufio.NewWriterSize(w, 8192)}
}

// MoveCursor appends a cursor position sequence. col and row are 1-based.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col), 10))
	cw.buf.WriteByte('H')
}

func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteAt writes s starting at a 1-based cell position.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.MoveCursor(col, row)
	cw.buf.WriteString(s)
}

// WriteColorAt writes a string in the given foreground colour at a specific position.
func (cw *ChunkWriter) WriteColorAt(col, row int, s string, fg colorful.Color) {
	r, g, b := fg.Clamped().RGB255()
	cw.MoveCursor(col, row)
	fmt.Fprintf(&cw.buf, "\033[1;38;2;%d;%d;%dm%s%s", r, g, b, s, ResetStyle)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush sends the frame and empties the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
	for start := 0; start < len(data); start += maxChunkSize {
		end := min(start+maxChunkSize, len(data))
		if _, err := cw.bufw.WriteString(data[start:end]); err != nil {
			return err
		}
	}
	return cw.bufw.Flush()
}

// TermSizeFunc reports terminal dimensions in cells.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc reads the size of the stdout terminal.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

const (
	seqClearScreen = "\033[H\033[2J"
	seqHideCursor  = "\033[?25l"
	seqShowCursor  = "\033[?25h"
)

func ClearScreen(w io.Writer) { io.WriteString(w, seqClearScreen) }
func HideCursor(w io.Writer)  { io.WriteString(w, seqHideCursor) }
func ShowCursor(w io.Writer)  { io.WriteString(w, seqShowCursor) }
