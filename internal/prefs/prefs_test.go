package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePrefs(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "prefs.toml")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTheme string
		want24h   bool
	}{
		{"theme and 12h", "theme = \"Slate\"\nclock = \"12H\"\n", "Slate", false},
		{"theme only", "theme = \"Kanagawa\"\n", "Kanagawa", true},
		{"blank theme", "theme = \"  \"\nclock = \"12h\"\n", defaultTheme, false},
		{"unknown clock", "clock = \"analog\"\n", defaultTheme, true},
		{"invalid toml", "not valid toml {{{\n", defaultTheme, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePrefs(t, t.TempDir(), tt.body)

			p, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTheme, p.Theme)
			assert.Equal(t, tt.want24h, p.Use24h())
		})
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, defaults(), p, "missing file")

	writePrefs(t, filepath.Join(home, ".config", "vie"), "theme = \"Slate\"\n")
	p, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "Slate", p.Theme)
}

func TestSave_RoundTripsThroughNewDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.toml")
	p := Prefs{Theme: "Slate"}.WithUse24h(false)

	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)
}

func TestWithUse24h(t *testing.T) {
	p := defaults()
	assert.True(t, p.Use24h())

	p = p.WithUse24h(false)
	assert.Equal(t, Clock12h, p.Clock)
	assert.False(t, p.Use24h())

	assert.True(t, p.WithUse24h(true).Use24h())
}
