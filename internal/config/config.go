// Package config loads frontend configuration from an optional JSON file
// and RW_-prefixed environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tomz197/relativity-wars/internal/loop"
	"github.com/tomz197/relativity-wars/internal/score"
)

// FileName is the config file looked up in the config directory.
const FileName = "relativity.json"

type ScreenConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`
	Height float64 `json:"height" mapstructure:"height"`
}

// ScoreConfig selects where the high score is persisted.
type ScoreConfig struct {
	Backend string `json:"backend" mapstructure:"backend"`
	Path    string `json:"path" mapstructure:"path"`
}

// SSHConfig configures the SSH frontend. Idle sessions are warned after
// IdleWarn and disconnected after IdleTimeout; 0 disables the kick.
type SSHConfig struct {
	Host        string        `json:"host" mapstructure:"host"`
	Port        string        `json:"port" mapstructure:"port"`
	HostKey     string        `json:"hostKey" mapstructure:"hostKey"`
	IdleWarn    time.Duration `json:"idleWarn" mapstructure:"idleWarn"`
	IdleTimeout time.Duration `json:"idleTimeout" mapstructure:"idleTimeout"`
}

type WebConfig struct {
	Host           string `json:"host" mapstructure:"host"`
	Port           string `json:"port" mapstructure:"port"`
	SSHDisplayHost string `json:"sshDisplayHost" mapstructure:"sshDisplayHost"`
}

// Config is the full frontend configuration.
type Config struct {
	LogLevel     string       `json:"logLevel" mapstructure:"logLevel"`
	LogFile      string       `json:"logFile" mapstructure:"logFile"`
	Screen       ScreenConfig `json:"screen" mapstructure:"screen"`
	Seed         int64        `json:"seed" mapstructure:"seed"`
	SoundEffects bool         `json:"soundEffects" mapstructure:"soundEffects"`
	Music        bool         `json:"music" mapstructure:"music"`
	Score        ScoreConfig  `json:"score" mapstructure:"score"`
	SSH          SSHConfig    `json:"ssh" mapstructure:"ssh"`
	Web          WebConfig    `json:"web" mapstructure:"web"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "./relativity.log")

	v.SetDefault("screen.width", 1280)
	v.SetDefault("screen.height", 720)
	v.SetDefault("seed", 0)
	v.SetDefault("soundEffects", true)
	v.SetDefault("music", true)

	v.SetDefault("score.backend", score.BackendJSON)
	v.SetDefault("score.path", "./highscore.json")

	v.SetDefault("ssh.host", "::")
	v.SetDefault("ssh.port", "2222")
	v.SetDefault("ssh.hostKey", "/app/keys/host_key")
	v.SetDefault("ssh.idleWarn", 90*time.Second)
	v.SetDefault("ssh.idleTimeout", 120*time.Second)

	v.SetDefault("web.host", "0.0.0.0")
	v.SetDefault("web.port", "8080")
	v.SetDefault("web.sshDisplayHost", "your-server.com")
}

// Load reads relativity.json from configDir if present, applies RW_
// environment overrides (RW_SSH_PORT, RW_SCORE_BACKEND, ...) and fills
// everything else with defaults. A missing file is fine; a malformed one
// is an error.
func Load(configDir string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(strings.TrimSuffix(FileName, ".json"))
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("RW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values no frontend can run with.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("invalid screen size %vx%v", c.Screen.Width, c.Screen.Height)
	}
	switch c.Score.Backend {
	case score.BackendJSON, score.BackendSQLite:
	default:
		return fmt.Errorf("unknown score backend %q", c.Score.Backend)
	}
	if c.Score.Path == "" {
		return errors.New("score.path must not be empty")
	}
	return nil
}

// SessionSettings converts the game knobs into session settings.
func (c Config) SessionSettings() loop.Settings {
	return loop.Settings{
		Width:        c.Screen.Width,
		Height:       c.Screen.Height,
		Seed:         c.Seed,
		SoundEffects: c.SoundEffects,
		Music:        c.Music,
	}
}
