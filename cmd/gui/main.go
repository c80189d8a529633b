package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

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
	defer score.Close(store)

	player := synth.NewPlayer()
	if err := player.Initialize(); err != nil {
		log.Warn().Err(err).Msg("Audio unavailable, playing silently")
	}
	defer player.Close()

	settings := cfg.SessionSettings()
	session := loop.NewSession(settings,
		loop.WithLogger(log.With().Str("frontend", "gui").Logger()),
		loop.WithStore(store),
	)
	g := newGame(session, player, settings.Music)

	ebiten.SetWindowSize(int(settings.Width), int(settings.Height))
	ebiten.SetWindowTitle("Relativity Wars")
	ebiten.SetWindowResizable(true)
	ebiten.SetTPS(loop.TickRate)

	log.Info().Msg("Starting desktop game")
	err = ebiten.RunGame(g)
	session.Shutdown()
	if err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	log.Info().Int("highScore", session.HighScore()).Msg("Game ended")
	return nil
}
