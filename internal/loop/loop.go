// Package loop runs the frame loop: input, fire/restart, the guarded
// simulation tick and the render step.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/draw"
	"github.com/tomz197/splitfire/internal/game"
	"github.com/tomz197/splitfire/internal/input"
)

// ErrInactive is returned by Run when the player sent no input for too long.
var ErrInactive = errors.New("disconnected for inactivity")

// Display is a front end the render step draws to.
type Display interface {
	// Size returns the display dimensions in terminal cells.
	Size() (cols, rows int, err error)
	Clear()
	Present(canvas *draw.Canvas) error
	SetScore(text string)
	ShowGameOver(over bool)
	// ShowNotice shows a transient message. Empty text shows nothing.
	ShowNotice(text string)
	Flush() error
}

// Options configures Run.
type Options struct {
	Display Display
	Input   *input.Stream
	Game    game.Options
	Logger  *log.Logger

	TickRate int // Frames per second, defaults to config.TickRate

	// Inactivity limits. Zero disables the check.
	InactivityWarn       time.Duration
	InactivityDisconnect time.Duration
}

// runner holds the state of one Run call.
type runner struct {
	display Display
	stream  *input.Stream
	logger  *log.Logger
	canvas  *draw.Canvas

	game  *game.Game
	frame int

	frameTime time.Duration
	warnAfter time.Duration
	quitAfter time.Duration
	lastInput time.Time
	notice    string // Inactivity warning, empty when active
	now       func() time.Time
	tick      func(g *game.Game, in input.Input)
}

func newRunner(opts Options) *runner {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Game.Logger == nil {
		opts.Game.Logger = opts.Logger
	}
	rate := opts.TickRate
	if rate <= 0 {
		rate = config.TickRate
	}

	g := game.New(opts.Game)
	screen := g.Screen()

	return &runner{
		display:   opts.Display,
		stream:    opts.Input,
		logger:    opts.Logger,
		canvas:    draw.NewCanvas(1, 1, screen.Width, screen.Height),
		game:      g,
		frameTime: time.Second / time.Duration(rate),
		warnAfter: opts.InactivityWarn,
		quitAfter: opts.InactivityDisconnect,
		lastInput: time.Now(),
		now:       time.Now,
		tick:      (*game.Game).Tick,
	}
}

// Run plays a game on the display until the player quits, the context is
// cancelled or the player is inactive for too long.
func Run(ctx context.Context, opts Options) error {
	if opts.Display == nil || opts.Input == nil {
		return errors.New("loop: display and input are required")
	}
	r := newRunner(opts)
	r.logger.Info("game started", "width", r.game.Screen().Width, "height", r.game.Screen().Height)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("game stopped", "score", r.game.Score())
			return nil
		default:
		}

		frameStart := r.now()

		done, err := r.step()
		if err != nil {
			r.logger.Warn("game ended", "score", r.game.Score(), "frames", r.frame, "err", err)
			return err
		}
		if done {
			r.logger.Info("game ended", "score", r.game.Score(), "frames", r.frame)
			return nil
		}

		// Frame timing
		elapsed := r.now().Sub(frameStart)
		if elapsed < r.frameTime {
			time.Sleep(r.frameTime - elapsed)
		}
	}
}

// step runs one frame. done is true when the player asked to quit.
func (r *runner) step() (done bool, err error) {
	r.frame++

	in := input.ReadInput(r.stream)
	if in.Quit {
		return true, nil
	}
	if err := r.checkInactivity(in); err != nil {
		return true, err
	}

	r.advance(in)

	if err := r.present(); err != nil {
		return true, err
	}
	return false, nil
}

// present runs the render step. A panic while drawing drops the frame; the
// next frame draws from scratch.
func (r *runner) present() (err error) {
	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("render failed, skipping frame", "frame", r.frame, "panic", v)
			r.canvas.ResetTranslate()
			err = nil
		}
	}()
	return r.render()
}

// advance applies the frame's actions and ticks a copy of the game. The copy
// replaces the live game only if the tick completes; after a panic the
// previous state is kept for the next frame.
func (r *runner) advance(in input.Input) {
	next := r.game.Clone()

	defer func() {
		if v := recover(); v != nil {
			r.logger.Error("tick failed, keeping previous state", "frame", r.frame, "panic", v)
		}
	}()

	for range in.Shots {
		next.Fire()
	}
	if in.Restart && next.GameOver() {
		next.Restart()
		r.stream.Reset()
	}
	r.tick(next, in)

	r.game = next
}

// checkInactivity tracks the time since the last key press.
func (r *runner) checkInactivity(in input.Input) error {
	now := r.now()
	if len(in.Pressed) > 0 {
		r.lastInput = now
		r.notice = ""
		return nil
	}

	idle := now.Sub(r.lastInput)
	switch {
	case r.quitAfter > 0 && idle >= r.quitAfter:
		return ErrInactive
	case r.warnAfter > 0 && idle >= r.warnAfter && r.quitAfter > 0:
		left := int(math.Ceil((r.quitAfter - idle).Seconds()))
		r.notice = fmt.Sprintf("Inactive. Disconnecting in %d seconds. Press any key to continue", left)
	case r.warnAfter > 0 && idle >= r.warnAfter:
		r.notice = "Inactive. Press any key to continue"
	}
	return nil
}
