package main

import (
	_ "embed"
	"flag"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	"github.com/tomz197/relativity-wars/internal/config"
	"github.com/tomz197/relativity-wars/internal/logging"
	"github.com/tomz197/relativity-wars/internal/score"
)

//go:embed index.html
var htmlPage string

var page = template.Must(template.New("index").Parse(htmlPage))

type pageData struct {
	SSHHost   string
	SSHPort   string
	HighScore int
}

func main() {
	configDir := flag.String("config", ".", "directory containing "+config.FileName)
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	log := logging.Setup(os.Stderr, cfg.LogLevel)

	store, err := score.Open(cfg.Score.Backend, cfg.Score.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open score store")
	}
	defer score.Close(store)

	http.Handle("/", indexHandler(cfg, store, log))

	addr := net.JoinHostPort(cfg.Web.Host, cfg.Web.Port)
	log.Info().Str("addr", "http://"+addr).Msg("Starting web server")
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

// indexHandler renders the connect page with the current high score.
func indexHandler(cfg config.Config, store score.Store, log zerolog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		high, err := store.Load()
		if err != nil {
			log.Warn().Err(err).Msg("Failed to load high score")
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := pageData{
			SSHHost:   cfg.Web.SSHDisplayHost,
			SSHPort:   cfg.SSH.Port,
			HighScore: high,
		}
		if err := page.Execute(w, data); err != nil {
			log.Error().Err(err).Msg("Failed to render page")
		}
	})
}
