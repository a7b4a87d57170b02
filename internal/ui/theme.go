package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines colors for the face.
type Theme struct {
	Name string

	// Base colors
	Background string // Outermost background
	SurfaceAlt string // Log pane and footer

	// Border colors
	Border      string
	BorderMuted string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string // link ok
	Warning string // link degraded, sun times
	Danger  string // link failed
	Info    string // weather
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)),

		Clock: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 3),

		statusColors: map[string]string{
			"ok":       t.Success,
			"degraded": t.Warning,
			"failed":   t.Danger,
		},
		muted: t.Muted,
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	WarningText lipgloss.Style
	InfoText    lipgloss.Style
	DangerText  lipgloss.Style

	Clock  lipgloss.Style
	Footer lipgloss.Style
	Panel  lipgloss.Style

	statusColors map[string]string
	muted        string
}

// StatusStyle returns the foreground style for a link status name.
func (s Styles) StatusStyle(status string) lipgloss.Style {
	color := s.statusColors[status]
	if color == "" {
		color = s.muted
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return themeOrder
}

// Palettes from https://github.com/EdenEast/nightfox.nvim,
// https://github.com/rebelot/kanagawa.nvim and https://tailwindcss.com/docs/colors.

func nightfoxTheme() Theme {
	return Theme{
		Name:        "Nightfox",
		Background:  "#131a24",
		SurfaceAlt:  "#212e3f",
		Border:      "#39506d",
		BorderMuted: "#212e3f",
		Text:        "#cdcecf",
		Muted:       "#738091",
		Faint:       "#71839b",
		Accent:      "#719cd6",
		Success:     "#81b29a",
		Warning:     "#dbc074",
		Danger:      "#c94f6d",
		Info:        "#63cdcf",
	}
}

func kanagawaTheme() Theme {
	return Theme{
		Name:        "Kanagawa",
		Background:  "#16161D",
		SurfaceAlt:  "#2A2A37",
		Border:      "#54546D",
		BorderMuted: "#2A2A37",
		Text:        "#DCD7BA",
		Muted:       "#C8C093",
		Faint:       "#727169",
		Accent:      "#7E9CD8",
		Success:     "#98BB6C",
		Warning:     "#E6C384",
		Danger:      "#E46876",
		Info:        "#7FB4CA",
	}
}

func slateTheme() Theme {
	return Theme{
		Name:        "Slate",
		Background:  "#020617",
		SurfaceAlt:  "#1e293b",
		Border:      "#334155",
		BorderMuted: "#1e293b",
		Text:        "#f1f5f9",
		Muted:       "#94a3b8",
		Faint:       "#64748b",
		Accent:      "#38bdf8",
		Success:     "#22c55e",
		Warning:     "#f59e0b",
		Danger:      "#ef4444",
		Info:        "#06b6d4",
	}
}
