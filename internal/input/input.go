// Package input decodes terminal key bytes into the per-frame control state.
package input

import (
	"io"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
// Left, Right, Forward and Reverse are held controls. Fire and Restart are
// true only in the frame their key arrived.
type Input struct {
	Quit    bool
	Left    bool
	Right   bool
	Forward bool
	Reverse bool
	Fire    bool
	Shots   int // Fire presses this frame
	Restart bool
	Pressed []byte // Raw bytes received this frame
}

// keyState tracks the last time each held key was pressed.
type keyState struct {
	left    time.Time
	right   time.Time
	forward time.Time
	reverse time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Incomplete escape sequence carried into the next read
	closed  bool
	once    sync.Once
	now     func() time.Time
}

// NewStream creates a stream that is fed with Push.
func NewStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 128),
		now: time.Now,
	}
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The stream reports Quit once r is exhausted. Bytes arriving while nobody
// reads the stream are dropped, so the goroutine ends with r.
func StartStream(r io.ByteReader) *Stream {
	s := NewStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				s.Close()
				return
			}
			s.Push(b)
		}
	}()
	return s
}

// Push queues a key byte. It drops the byte if the stream buffer is full.
func (s *Stream) Push(b byte) {
	select {
	case s.ch <- b:
	default:
	}
}

// PushString queues each byte of seq, e.g. an arrow key escape sequence.
func (s *Stream) PushString(seq string) {
	for i := 0; i < len(seq); i++ {
		s.Push(seq[i])
	}
}

// Close marks the end of input. Safe to call more than once.
func (s *Stream) Close() {
	s.once.Do(func() { close(s.ch) })
}

// Reset forgets held keys, e.g. after a restart.
func (s *Stream) Reset() {
	s.state = keyState{}
	s.pending = nil
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
// Uses key state persistence to allow detecting simultaneous key combinations.
// An arrow sequence cut off at the end of the drained bytes is finished on
// the next call.
func ReadInput(s *Stream) Input {
	now := s.now()
	var fresh []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			fresh = append(fresh, b)
		default:
			break drain
		}
	}

	input := Input{Pressed: fresh, Quit: s.closed}

	buf := append(s.pending, fresh...)
	s.pending = nil

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && !s.closed && isPartialCSI(buf[i+1:]) {
			s.pending = append([]byte(nil), buf[i:]...)
			break
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.forward = now
				i += 2
				continue
			case 'B':
				s.state.reverse = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByte(&s.state, &input, b, now)
	}

	input.Left = now.Sub(s.state.left) < keyHoldDuration
	input.Right = now.Sub(s.state.right) < keyHoldDuration
	input.Forward = now.Sub(s.state.forward) < keyHoldDuration
	input.Reverse = now.Sub(s.state.reverse) < keyHoldDuration

	return input
}

// isPartialCSI reports whether rest, the bytes after an ESC, could still
// become an arrow key sequence.
func isPartialCSI(rest []byte) bool {
	return len(rest) == 0 || (len(rest) == 1 && rest[0] == '[')
}

// applyByte updates held-key timestamps and one-shot actions for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		in.Quit = true
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case 'w', 'W', 'k', 'K':
		state.forward = now
	case 's', 'S', 'j', 'J':
		state.reverse = now
	case ' ':
		in.Fire = true
		in.Shots++
	case 'r', 'R':
		in.Restart = true
	}
}
