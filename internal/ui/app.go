package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/location"
	"github.com/five82/vie/internal/logtail"
	"github.com/five82/vie/internal/prefs"
	"github.com/five82/vie/internal/state"
	"github.com/five82/vie/internal/timezone"
	"github.com/five82/vie/internal/weather"
)

// Options configures the UI.
type Options struct {
	Context context.Context
	Clock   clockwork.Clock

	// Location is the zone the device clock reads in. Nil means time.Local.
	Location *time.Location

	Store   *state.Store
	Monitor *link.Monitor
	Locator location.Source
	Zones   timezone.Source
	Weather weather.Fetcher

	Face      face.Config
	Prefs     prefs.Prefs
	PrefsPath string
	LogPath   string
}

// Model is the root application state for Bubble Tea. Update is the only
// place face.Step runs, so events are handled one at a time.
type Model struct {
	// Configuration
	ctx       context.Context
	clock     clockwork.Clock
	loc       *time.Location
	store     *state.Store
	monitor   *link.Monitor
	locator   location.Source
	zones     timezone.Source
	weather   weather.Fetcher
	prefsPath string
	logPath   string

	// Face state
	face     face.State
	prefs    prefs.Prefs
	locating bool

	// UI state
	theme    Theme
	keys     keyMap
	width    int
	height   int
	ready    bool
	showHelp bool

	// Log pane
	showLogs    bool
	logViewport viewport.Model
	logErr      error
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	store := opts.Store
	if store == nil {
		store = &state.Store{}
	}

	monitor := opts.Monitor
	if monitor == nil {
		var pinger link.Pinger
		if opts.Weather != nil {
			pinger = opts.Weather
		}
		monitor = link.NewMonitor(pinger, clock)
	}

	cfg := opts.Face
	cfg.Use24h = opts.Prefs.Use24h()

	return Model{
		ctx:         ctx,
		clock:       clock,
		loc:         loc,
		store:       store,
		monitor:     monitor,
		locator:     opts.Locator,
		zones:       opts.Zones,
		weather:     opts.Weather,
		prefsPath:   opts.PrefsPath,
		logPath:     opts.LogPath,
		face:        face.New(cfg),
		prefs:       opts.Prefs,
		theme:       GetTheme(opts.Prefs.Theme),
		keys:        DefaultKeyMap(),
		logViewport: viewport.New(0, 0),
	}
}

// Init implements tea.Model. The face is drawn at once, then again on every
// wall-clock minute.
func (m Model) Init() tea.Cmd {
	now := m.now()
	return tea.Batch(
		func() tea.Msg { return tickMsg{Time: now} },
		tickCmd(m.ctx, m.clock, m.loc),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeLogViewport()
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case locationMsg:
		if msg.Err != nil {
			log.Warn().Str("component", "ui").Err(msg.Err).Msg("location unavailable")
			// Still marked as locating, so the face's immediate retry is
			// left to the next tick.
			cmd := m.dispatch(face.LocationLost{Err: msg.Err})
			m.locating = false
			return m, cmd
		}
		m.locating = false
		cmd := m.dispatch(face.LocationFix{
			Coordinate: msg.Fix.Coordinate(),
			Altitude:   msg.Fix.Alt,
			Accuracy:   msg.Fix.Accuracy,
		})
		return m, cmd

	case timezoneMsg:
		if msg.Err != nil {
			log.Warn().Str("component", "ui").Err(msg.Err).Msg("time zone lookup failed")
			m.store.Report(msg.Err)
			return m, nil
		}
		cmd := m.dispatch(face.TimezoneInfo{
			UTCOffsetSeconds: msg.Info.WireOffsetSeconds(),
			IsDST:            msg.Info.IsDST,
			Unix:             msg.Info.Unix,
			Name:             msg.Info.Name,
			Clock:            m.now(),
		})
		return m, cmd

	case weatherMsg:
		cmd := m.handleWeather(msg)
		return m, cmd

	case pingMsg:
		var cmds []tea.Cmd
		if msg.Err != nil {
			cmds = append(cmds, m.dispatch(face.SendFailure{Reason: msg.Err}))
		}
		cmds = append(cmds, m.setLink(msg.Status))
		cmd := tea.Batch(cmds...)
		return m, cmd

	case face.MessageReceived:
		linkCmd := m.setLink(m.monitor.HandleSuccess())
		cmd := tea.Batch(linkCmd, m.dispatch(msg))
		return m, cmd

	case logLinesMsg:
		m.setLogLines(msg)
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.showHelp {
		return m.renderHelp()
	}

	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.prefs.Theme = m.theme.Name
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.ToggleClock):
		m.prefs = m.prefs.WithUse24h(!m.prefs.Use24h())
		m.savePrefs()
		cmd := m.dispatch(face.SettingsChanged{Use24h: m.prefs.Use24h(), Time: m.now()})
		return m, cmd

	case key.Matches(msg, m.keys.Refresh):
		// Dropping the fix makes the face ask for a new one before the
		// next weather request.
		cmd := m.dispatch(face.LocationLost{})
		return m, cmd

	case key.Matches(msg, m.keys.ToggleLogs):
		m.showLogs = !m.showLogs
		m.resizeLogViewport()
		if m.showLogs {
			return m, readLogsCmd(m.logPath)
		}
		return m, nil
	}

	if m.showLogs {
		return m.handleLogsKey(msg)
	}
	return m, nil
}

// handleTick feeds a minute tick to the face.
func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.dispatch(face.Tick{Time: msg.Time})}

	if m.showLogs {
		cmds = append(cmds, readLogsCmd(m.logPath))
	}

	if msg.Rearm {
		cmds = append(cmds, tickCmd(m.ctx, m.clock, m.loc))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleWeather(msg weatherMsg) tea.Cmd {
	if msg.Err != nil {
		log.Warn().Str("component", "ui").Err(msg.Err).Uint32("cookie", msg.Cookie).Msg("weather request failed")
		m.store.Report(msg.Err)
		status := 0
		var se *weather.StatusError
		if errors.As(msg.Err, &se) {
			status = se.Status
		}
		return tea.Batch(
			m.setLink(m.monitor.HandleFailure(msg.Err)),
			m.dispatch(face.WeatherFailure{Cookie: msg.Cookie, Status: status, Err: msg.Err}),
		)
	}

	m.store.Report(nil)
	return tea.Batch(
		m.setLink(m.monitor.HandleSuccess()),
		m.dispatch(face.WeatherSuccess{
			Cookie: msg.Response.Cookie,
			Status: msg.Response.Status,
			Fields: msg.Response.Fields,
		}),
	)
}

// dispatch steps the face, writes its display effects to the store and turns
// its requests into commands.
func (m *Model) dispatch(ev face.Event) tea.Cmd {
	var effects []face.Effect
	m.face, effects = face.Step(m.face, ev)
	m.store.Apply(effects)

	var cmds []tea.Cmd
	for _, e := range effects {
		switch e := e.(type) {
		case face.RequestLocation:
			if m.locator == nil || m.locating {
				continue
			}
			m.locating = true
			cmds = append(cmds, locateCmd(m.ctx, m.locator))
		case face.RequestTimezone:
			if m.zones != nil {
				cmds = append(cmds, timezoneCmd(m.ctx, m.zones))
			}
		case face.RequestWeather:
			cmds = append(cmds, weatherCmd(m.ctx, m.weather, e.Request))
		case face.Ping:
			cmds = append(cmds, pingCmd(m.ctx, m.monitor))
		}
	}
	return tea.Batch(cmds...)
}

// setLink publishes a link status when it differs from what the face shows.
func (m *Model) setLink(status link.Status) tea.Cmd {
	if status == m.face.Link {
		return nil
	}
	snap := m.monitor.Snapshot()
	log.Info().Str("component", "ui").
		Str("from", m.face.Link.String()).
		Str("to", status.String()).
		Int("failures", snap.ConsecutiveFailures).
		Time("last_success", snap.LastSuccess).
		Msg("link status changed")
	m.store.SetLink(status)
	return m.dispatch(face.LinkStatusChanged{Status: status})
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		log.Warn().Str("component", "ui").Err(err).Msg("save preferences")
	}
}

func (m Model) now() time.Time {
	return m.clock.Now().In(m.loc)
}

// NewProgram builds the Bubble Tea program for the face. The program stops
// when opts.Context is cancelled.
func NewProgram(opts Options) *tea.Program {
	m := New(opts)
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	_, err := NewProgram(opts).Run()
	return err
}

// tailLog reads and formats the end of the log file.
func tailLog(path string) ([]string, error) {
	lines, err := logtail.Read(path, LogTailLines)
	if err != nil {
		return nil, err
	}
	return logtail.Pretty(lines, true), nil
}
