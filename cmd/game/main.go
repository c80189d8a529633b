package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/relativity-wars/internal/audio/synth"
	"github.com/tomz197/relativity-wars/internal/config"
	"github.com/tomz197/relativity-wars/internal/logging"
	"github.com/tomz197/relativity-wars/internal/loop"
	"github.com/tomz197/relativity-wars/internal/score"
)

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	if err := run(*configDir); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run(configDir string) error {
	cfg, err := config.Load(configDir)
	if err != nil {
		return err
	}

	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logging.Setup(logFile, cfg.LogLevel)

	store, err := score.Open(cfg.Score.Backend, cfg.Score.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := score.Close(store); err != nil {
			log.Warn().Err(err).Msg("Failed to close score store")
		}
	}()

	player := synth.NewPlayer()
	if err := player.Initialize(); err != nil {
		log.Warn().Err(err).Msg("Audio unavailable, playing silently")
	}
	defer player.Close()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().
		Str("scoreBackend", cfg.Score.Backend).
		Int64("seed", cfg.Seed).
		Msg("Starting local game")

	t := loop.Terminal{
		In:    bufio.NewReader(os.Stdin),
		Out:   os.Stdout,
		Audio: player,
	}
	err = loop.Run(ctx, t, cfg.SessionSettings(),
		loop.WithLogger(log.With().Str("frontend", "terminal").Logger()),
		loop.WithStore(store),
	)
	if err != nil {
		log.Error().Err(err).Msg("Game ended with error")
		return err
	}
	log.Info().Msg("Game ended")
	return nil
}
