package score

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONStoreMissingFile(t *testing.T) {
	s := NewJSONStore(filepath.Join(t.TempDir(), "highscore.json"))
	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "highscore.json")
	s := NewJSONStore(path)
	require.NoError(t, s.Save(42))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"high_score": 42}`, string(data))

	got, err := NewJSONStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestJSONStoreMalformed(t *testing.T) {
	tests := map[string]string{
		"garbage":  "not json",
		"wrong":    `{"high_score": "lots"}`,
		"negative": `{"high_score": -3}`,
		"empty":    "",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "highscore.json")
			require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
			got, err := NewJSONStore(path).Load()
			require.NoError(t, err)
			assert.Equal(t, 0, got)
		})
	}
}

func TestJSONStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewJSONStore(filepath.Join(dir, "highscore.json"))
	require.NoError(t, s.Save(1))
	require.NoError(t, s.Save(2))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSQLiteStore(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "scores.db"))
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 0, got)

	require.NoError(t, s.Save(10))
	require.NoError(t, s.Save(7))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, 10, got, "lower scores never overwrite")

	require.NoError(t, s.Save(25))
	got, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, 25, got)

	var rows int64
	require.NoError(t, s.db.Model(&HighScore{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestMemoryStore(t *testing.T) {
	var m Memory
	require.NoError(t, m.Save(3))
	got, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	js, err := Open(BackendJSON, filepath.Join(dir, "hs.json"))
	require.NoError(t, err)
	assert.IsType(t, &JSONStore{}, js)
	assert.NoError(t, Close(js))

	db, err := Open(BackendSQLite, filepath.Join(dir, "hs.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, db)
	require.NoError(t, db.Save(4))
	assert.NoError(t, Close(db))

	_, err = Open("redis", "")
	assert.ErrorContains(t, err, "unknown score backend")
}
