package logtail

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf(`{"level":"info","tick":%d}`, i))
	}
	path := filepath.Join(t.TempDir(), "vie.log")
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))

	for _, tt := range []struct {
		max  int
		want []string
	}{
		{0, lines},
		{-1, lines},
		{3, lines[7:]},
		{10, lines},
		{25, lines},
	} {
		t.Run(fmt.Sprint(tt.max), func(t *testing.T) {
			got, err := Read(path, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRead_MissingFile(t *testing.T) {
	lines, err := Read(filepath.Join(t.TempDir(), "nope.log"), 10)
	if err != nil {
		t.Fatalf("Read() error = %v, want nil", err)
	}
	if lines != nil {
		t.Fatalf("Read() = %v, want nil", lines)
	}
}

func TestPretty(t *testing.T) {
	input := []string{
		`{"level":"info","component":"gps","time":"2026-10-19T10:00:00Z","message":"gps connected"}`,
		"plain text line",
		`{"level":"warn","message":"link failure","failures":2}`,
		"{broken",
	}

	got := Pretty(input, false)
	if len(got) != len(input) {
		t.Fatalf("Pretty() returned %d lines, want %d", len(got), len(input))
	}
	for _, want := range []string{"INF", "gps connected", "component=gps"} {
		if !strings.Contains(got[0], want) {
			t.Errorf("Pretty()[0] = %q, want it to contain %q", got[0], want)
		}
	}
	if got[1] != "plain text line" {
		t.Errorf("Pretty()[1] = %q, want passthrough", got[1])
	}
	if !strings.Contains(got[2], "WRN") || !strings.Contains(got[2], "failures=2") {
		t.Errorf("Pretty()[2] = %q, want WRN with failures=2", got[2])
	}
	if got[3] != "{broken" {
		t.Errorf("Pretty()[3] = %q, want passthrough for invalid JSON", got[3])
	}
	if strings.Contains(got[0], "\x1b[") {
		t.Errorf("Pretty() without color emitted escape codes: %q", got[0])
	}
}
