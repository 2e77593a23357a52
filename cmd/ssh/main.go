package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	uuid "github.com/satori/go.uuid"

	"github.com/tomz197/splitfire/internal/config"
	"github.com/tomz197/splitfire/internal/display"
	"github.com/tomz197/splitfire/internal/draw"
	"github.com/tomz197/splitfire/internal/game"
	"github.com/tomz197/splitfire/internal/input"
	"github.com/tomz197/splitfire/internal/logger"
	"github.com/tomz197/splitfire/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
	shutdownTimeout    = 5 * time.Second
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	lg, closer, err := logger.Open(config.GetEnv("LOG_LEVEL", ""), config.GetEnv("LOG_FILE", ""), os.Stderr, "ssh")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(lg); err != nil {
		lg.Error("server stopped", "err", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(lg *log.Logger) error {
	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)

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
	lg.Info("ssh config", "host", host, "port", port, "host_key", hostKeyPath,
		"world", fmt.Sprintf("%.0fx%.0f", width, height), "tick_rate", tickRate)

	// Sessions stop when ctx is cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sessions := &sessionGroup{
		ctx:      ctx,
		logger:   lg,
		world:    game.Options{Width: width, Height: height},
		tickRate: tickRate,
	}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			sessions.middleware,
			activeterm.Middleware(),
			logging.StructuredMiddlewareWithLogger(lg, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	lg.Info("starting ssh server", "addr", s.Addr)
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	}
	lg.Info("shutting down server")

	// End running games so their sessions close cleanly.
	cancel()
	sessions.wait(shutdownTimeout)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// sessionGroup runs one independent game per SSH session.
type sessionGroup struct {
	ctx      context.Context
	logger   *log.Logger
	world    game.Options
	tickRate int
	wg       sync.WaitGroup
}

// middleware handles SSH sessions and runs a game on each.
func (g *sessionGroup) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		g.wg.Add(1)
		defer g.wg.Done()

		id := uuid.Must(uuid.NewV4()).String()
		lg := g.logger.With("session", id, "user", sess.User())
		lg.Info("new game session", "term", pty.Term, "size", fmt.Sprintf("%dx%d", pty.Window.Width, pty.Window.Height))

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(g.ctx)
		defer cancel()
		go func() {
			select {
			case <-sess.Context().Done():
				cancel()
			case <-ctx.Done():
			}
		}()

		d := display.NewANSI(sess, sizeTracker.getSize)
		if err := d.Start(); err != nil {
			lg.Warn("start display", "err", err)
			return
		}

		world := g.world
		world.Logger = lg
		err := loop.Run(ctx, loop.Options{
			Display:              d,
			Input:                input.StartStream(bufio.NewReader(sess)),
			Game:                 world,
			Logger:               lg,
			TickRate:             g.tickRate,
			InactivityWarn:       config.InactivityWarnUser,
			InactivityDisconnect: config.InactivityDisconnectUser,
		})
		_ = d.Close()

		switch {
		case errors.Is(err, loop.ErrInactive):
			fmt.Fprintln(sess, "Disconnected for inactivity.")
		case err != nil:
			lg.Error("game error", "err", err)
		}

		lg.Info("session ended")
		next(sess)
	}
}

// wait blocks until every session has ended or the timeout passes.
func (g *sessionGroup) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		g.logger.Warn("sessions still open after shutdown timeout")
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
