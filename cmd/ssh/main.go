package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/rs/zerolog"

	"github.com/tomz197/relativity-wars/internal/audio"
	"github.com/tomz197/relativity-wars/internal/config"
	"github.com/tomz197/relativity-wars/internal/draw"
	rwlog "github.com/tomz197/relativity-wars/internal/logging"
	"github.com/tomz197/relativity-wars/internal/loop"
	"github.com/tomz197/relativity-wars/internal/score"
)

const shutdownGrace = 15 * time.Second

// games tracks the sessions being played so shutdown can end them.
type games struct {
	cfg   config.Config
	store score.Store
	log   zerolog.Logger

	ctx context.Context
	wg  sync.WaitGroup
}

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log := rwlog.Setup(os.Stderr, cfg.LogLevel)

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn().Err(workErr).Msg("Failed to get working directory")
	}
	log.Info().
		Str("host", cfg.SSH.Host).
		Str("port", cfg.SSH.Port).
		Str("hostKeyPath", cfg.SSH.HostKey).
		Str("workingDir", workingDir).
		Msg("SSH config")

	store, err := score.Open(cfg.Score.Backend, cfg.Score.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open score store")
	}
	defer score.Close(store)

	ctx, cancelGames := context.WithCancel(context.Background())
	g := &games{cfg: cfg, store: store, log: log, ctx: ctx}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(cfg.SSH.Host, cfg.SSH.Port)),
		wish.WithMiddleware(
			g.middleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// TCP_NODELAY keeps input latency low
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if cfg.SSH.HostKey != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKey))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Str("addr", s.Addr).Msg("Starting SSH server")
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	<-done
	log.Info().Msg("Shutting down server...")

	cancelGames()
	g.wait(shutdownGrace)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}
}

// middleware plays one independent game per PTY session.
func (g *games) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log := g.log.With().
			Str("user", sess.User()).
			Str("remote", sess.RemoteAddr().String()).
			Logger()
		log.Info().
			Str("terminal", pty.Term).
			Int("width", pty.Window.Width).
			Int("height", pty.Window.Height).
			Msg("New game session")

		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		ctx, cancel := context.WithCancel(sess.Context())
		defer cancel()
		stop := context.AfterFunc(g.ctx, cancel)
		defer stop()

		g.wg.Add(1)
		defer g.wg.Done()

		t := loop.Terminal{
			In:    bufio.NewReader(sess),
			Out:   sess,
			Size:  sizeTracker.getSize,
			Audio: audio.Discard{},

			IdleWarn:    g.cfg.SSH.IdleWarn,
			IdleTimeout: g.cfg.SSH.IdleTimeout,
		}
		settings := g.cfg.SessionSettings()
		// Remote players get no sound, but the menu toggles still work.
		if err := loop.Run(ctx, t, settings, loop.WithLogger(log), loop.WithStore(g.store)); err != nil {
			log.Error().Err(err).Msg("Game error")
		}

		log.Info().Msg("Session ended")
		next(sess)
	}
}

// wait blocks until every session has returned or timeout passes.
func (g *games) wait(timeout time.Duration) {
	finished := make(chan struct{})
	go func() {
		g.wg.Wait()
		close(finished)
	}()
	select {
	case <-finished:
	case <-time.After(timeout):
		g.log.Warn().Dur("timeout", timeout).Msg("Sessions still running at shutdown")
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

var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
