package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobalLevel(t *testing.T) {
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"Info", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestSetup_InfoLevel_FiltersDebug(t *testing.T) {
	resetGlobalLevel(t)
	var buf bytes.Buffer
	log := Setup(&buf, "info")

	log.Debug().Msg("should be filtered")
	log.Info().Str("mode", "playing").Msg("should appear")

	out := buf.String()
	assert.NotContains(t, out, "should be filtered")
	assert.Contains(t, out, "should appear")
	assert.Contains(t, out, "mode=playing")
	assert.NotContains(t, out, "\x1b[", "non-terminal writers get no colors")
}

func TestSetup_DebugLevel(t *testing.T) {
	resetGlobalLevel(t)
	var buf bytes.Buffer
	log := Setup(&buf, "debug")

	log.Debug().Msg("debug msg")
	assert.Contains(t, buf.String(), "debug msg")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestOpenFile_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "relativity.log")
	f, err := OpenFile(path)
	require.NoError(t, err)

	resetGlobalLevel(t)
	log := Setup(f, "info")
	log.Info().Msg("to file")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}
