package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/relativity-wars/internal/score"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "./relativity.log", cfg.LogFile)
	assert.Equal(t, 1280.0, cfg.Screen.Width)
	assert.Equal(t, 720.0, cfg.Screen.Height)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.True(t, cfg.SoundEffects)
	assert.True(t, cfg.Music)
	assert.Equal(t, score.BackendJSON, cfg.Score.Backend)
	assert.Equal(t, "./highscore.json", cfg.Score.Path)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, "2222", cfg.SSH.Port)
	assert.Equal(t, "/app/keys/host_key", cfg.SSH.HostKey)
	assert.Equal(t, 90*time.Second, cfg.SSH.IdleWarn)
	assert.Equal(t, 2*time.Minute, cfg.SSH.IdleTimeout)
	assert.Equal(t, "0.0.0.0", cfg.Web.Host)
	assert.Equal(t, "8080", cfg.Web.Port)
	assert.Equal(t, "your-server.com", cfg.Web.SSHDisplayHost)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := writeConfig(t, `{
		"logLevel": "debug",
		"seed": 42,
		"music": false,
		"score": { "backend": "sqlite", "path": "/tmp/scores.db" },
		"ssh": { "port": "2323", "idleTimeout": "5m" }
	}`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.False(t, cfg.Music)
	assert.True(t, cfg.SoundEffects)
	assert.Equal(t, score.BackendSQLite, cfg.Score.Backend)
	assert.Equal(t, "/tmp/scores.db", cfg.Score.Path)
	assert.Equal(t, "2323", cfg.SSH.Port)
	assert.Equal(t, "::", cfg.SSH.Host)
	assert.Equal(t, 5*time.Minute, cfg.SSH.IdleTimeout)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := writeConfig(t, `{ "ssh": { "port": "2323" } }`)
	t.Setenv("RW_SSH_PORT", "4000")
	t.Setenv("RW_WEB_SSHDISPLAYHOST", "play.example.org")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.SSH.Port)
	assert.Equal(t, "play.example.org", cfg.Web.SSHDisplayHost)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := writeConfig(t, `{ "logLevel": `)

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"backend", `{ "score": { "backend": "postgres" } }`, "unknown score backend"},
		{"screen", `{ "screen": { "width": 0 } }`, "invalid screen size"},
		{"path", `{ "score": { "path": "" } }`, "score.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSessionSettings(t *testing.T) {
	cfg, err := Load(writeConfig(t, `{ "seed": 7, "soundEffects": false, "screen": { "width": 800, "height": 600 } }`))
	require.NoError(t, err)

	s := cfg.SessionSettings()
	assert.Equal(t, 800.0, s.Width)
	assert.Equal(t, 600.0, s.Height)
	assert.Equal(t, int64(7), s.Seed)
	assert.False(t, s.SoundEffects)
	assert.True(t, s.Music)
}
