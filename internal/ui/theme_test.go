package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestThemeNames(t *testing.T) {
	assert.Equal(t, []string{"Nightfox", "Kanagawa", "Slate"}, ThemeNames())
}

func TestNextTheme(t *testing.T) {
	assert.Equal(t, "Kanagawa", NextTheme("Nightfox"))
	assert.Equal(t, "Slate", NextTheme("Kanagawa"))
	assert.Equal(t, "Nightfox", NextTheme("Slate"))
	assert.Equal(t, "Nightfox", NextTheme("Unknown"))
}

func TestGetTheme(t *testing.T) {
	for _, name := range ThemeNames() {
		assert.Equal(t, name, GetTheme(name).Name)
	}
	assert.Equal(t, "Nightfox", GetTheme("Solarized").Name, "unknown names fall back")
}

func TestStatusStyleMapsLinkStatuses(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		styles := th.Styles()
		assert.Equal(t, lipgloss.Color(th.Success), styles.StatusStyle("ok").GetForeground(), name)
		assert.Equal(t, lipgloss.Color(th.Warning), styles.StatusStyle("degraded").GetForeground(), name)
		assert.Equal(t, lipgloss.Color(th.Danger), styles.StatusStyle("failed").GetForeground(), name)
		assert.Equal(t, lipgloss.Color(th.Muted), styles.StatusStyle("unknown").GetForeground(), name)
	}
}

func TestStatusStyleFallsBackToMuted(t *testing.T) {
	th := GetTheme("Slate")
	styles := th.Styles()

	assert.Equal(t, lipgloss.Color(th.Muted), styles.StatusStyle("bogus").GetForeground())
}
