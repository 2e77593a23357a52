package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/display"
	"github.com/tomz197/splitfire/internal/game"
	"github.com/tomz197/splitfire/internal/input"
	"github.com/tomz197/splitfire/internal/logger"
	"github.com/tomz197/splitfire/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load(); err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go nowhere unless LOG_FILE is set.
	lg, closer, err := logger.Open(config.GetEnv("LOG_LEVEL", ""), config.GetEnv("LOG_FILE", ""), io.Discard, "game")
	if err != nil {
		return err
	}
	defer closer.Close()

	width, err := config.GetEnvFloat("WORLD_WIDTH", config.WorldWidth)
	if err != nil {
		lg.Warn("using default world width", "err", err)
	}
	height, err := config.GetEnvFloat("WORLD_HEIGHT", config.WorldHeight)
	if err != nil {
		lg.Warn("using default world height", "err", err)
	}
	tickRate, err := config.GetEnvInt("TICK_RATE", config.TickRate)
	if err != nil {
		lg.Warn("using default tick rate", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := loop.Options{
		Game:     game.Options{Width: width, Height: height},
		Logger:   lg,
		TickRate: tickRate,
	}

	switch mode := config.GetEnv("GAME_DISPLAY", "tcell"); mode {
	case "tcell":
		return runTcell(ctx, opts)
	case "ansi":
		return runANSI(ctx, opts)
	default:
		return fmt.Errorf("unknown GAME_DISPLAY %q (want tcell or ansi)", mode)
	}
}

// runTcell plays on a tcell screen.
func runTcell(ctx context.Context, opts loop.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}

	stream := input.NewStream()
	d := display.NewTcell(screen, stream)
	if err := d.Start(); err != nil {
		return err
	}
	defer d.Close()

	opts.Display = d
	opts.Input = stream
	return loop.Run(ctx, opts)
}

// runANSI plays on the raw terminal with escape sequences.
func runANSI(ctx context.Context, opts loop.Options) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	d := display.NewANSI(os.Stdout, nil)
	if err := d.Start(); err != nil {
		return err
	}
	defer func() {
		if err := d.Close(); err != nil {
			opts.Logger.Error("restore terminal", "err", err)
		}
	}()

	opts.Display = d
	opts.Input = input.StartStream(bufio.NewReader(os.Stdin))
	return loop.Run(ctx, opts)
}

var (
	_ loop.Display = (*display.Tcell)(nil)
	_ loop.Display = (*display.ANSI)(nil)
)
