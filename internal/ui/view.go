package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/state"
	"github.com/five82/vie/internal/weather"
)

var weatherGlyphs = map[weather.Image]string{
	weather.ImageClearDay:          "☀",
	weather.ImageClearNight:        "☾",
	weather.ImageRain:              "☂",
	weather.ImageSnow:              "❄",
	weather.ImageSleet:             "⁂",
	weather.ImageWind:              "≋",
	weather.ImageFog:               "≡",
	weather.ImageCloudy:            "☁",
	weather.ImagePartlyCloudyDay:   "◐",
	weather.ImagePartlyCloudyNight: "◑",
	weather.ImageNoData:            "?",
}

// weatherGlyph returns the symbol drawn for the weather picture.
func weatherGlyph(snap state.Snapshot) string {
	if !snap.HasImage {
		return "·"
	}
	if g, ok := weatherGlyphs[snap.Image]; ok {
		return g
	}
	return weatherGlyphs[weather.ImageNoData]
}

// renderMain renders the face, the optional log pane and the footer.
func (m Model) renderMain() string {
	snap := m.store.Snapshot()

	panel := m.renderFace(snap)
	faceView := lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)

	parts := []string{faceView}
	if m.showLogs {
		parts = append(parts, m.renderLogs())
	}

	body := lipgloss.JoinVertical(lipgloss.Left, parts...)
	footer := m.renderFooter()
	if errLine := m.renderError(snap); errLine != "" {
		footer = errLine + "\n" + footer
	}

	gap := m.height - lipgloss.Height(body) - lipgloss.Height(footer)
	if gap > 0 {
		body += strings.Repeat("\n", gap)
	}
	return body + "\n" + footer
}

// renderFace draws the watch face panel.
func (m Model) renderFace(snap state.Snapshot) string {
	styles := m.theme.Styles()
	compact := m.width < LayoutCompactWidth
	width := FaceWidth
	if compact {
		width = m.width - 4
	}

	status := snap.Link.String()
	indicator := styles.StatusStyle(status).Render("● " + status)

	rows := []string{
		spread(styles.AccentText.Bold(true).Render(snap.Text(face.FieldWeekday)), indicator, width),
		styles.Text.Render(snap.Text(face.FieldDate)),
		"",
		lipgloss.PlaceHorizontal(width, lipgloss.Center, styles.Clock.Render(strings.TrimSpace(snap.Text(face.FieldClock)))),
		"",
		spread(
			styles.InfoText.Render(weatherGlyph(snap)+" "+snap.Text(face.FieldTemperature)),
			styles.MutedText.Render(snap.Text(face.FieldMoon)),
			width,
		),
		m.renderSun(snap, styles, compact, width),
	}

	if counters := m.renderCounters(snap, styles); counters != "" {
		rows = append(rows, "", counters)
	}

	panel := styles.Panel.BorderForeground(lipgloss.Color(m.linkBorder(snap.Link)))
	if compact {
		panel = panel.Padding(0, 1)
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderSun(snap state.Snapshot, styles Styles, compact bool, width int) string {
	rise, set := snap.Text(face.FieldSunrise), snap.Text(face.FieldSunset)
	if compact {
		return styles.WarningText.Render(rise + " " + set)
	}
	return spread(
		styles.WarningText.Render("↑ "+rise),
		styles.WarningText.Render("↓ "+set),
		width,
	)
}

func (m Model) renderCounters(snap state.Snapshot, styles Styles) string {
	missed, unread := snap.Text(face.FieldMissed), snap.Text(face.FieldUnread)
	if missed == "" && unread == "" {
		return ""
	}
	return styles.FaintText.Render("missed ") + styles.Text.Render(missed) +
		styles.FaintText.Render("  unread ") + styles.Text.Render(unread)
}

// linkBorder picks the panel border color for the link status.
func (m Model) linkBorder(status link.Status) string {
	switch status {
	case link.Degraded:
		return m.theme.Warning
	case link.Failed:
		return m.theme.Danger
	default:
		return m.theme.Border
	}
}

// renderFooter renders the key hints and the theme name.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.SurfaceAlt)

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		hints = append(hints, bg.Render(h.Key, styles.AccentText)+bg.Render(" "+h.Desc, styles.MutedText))
	}
	left := bg.Join(hints, "  ")
	right := bg.Render(m.theme.Name, styles.FaintText)

	return bg.FillLine(spread(left, right, m.width), m.width)
}

// renderError shows the last failed request until one succeeds.
func (m Model) renderError(snap state.Snapshot) string {
	if snap.LastError == nil {
		return ""
	}
	styles := m.theme.Styles()

	label := "ERROR"
	if snap.IsOffline() {
		label = fmt.Sprintf("OFFLINE (%d failures)", snap.ConsecutiveFailures)
	}
	text := truncate(snap.LastError.Error(), m.width-lipgloss.Width(label)-3)
	return " " + styles.DangerText.Bold(true).Render(label) + " " + styles.DangerText.Render(text)
}

// truncate shortens value to limit runes, ending in an ellipsis.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if limit <= 0 || len(runes) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}

// spread places left and right at the edges of width.
func spread(left, right string, width int) string {
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
