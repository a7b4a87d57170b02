package ui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"

	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/location"
	"github.com/five82/vie/internal/timezone"
	"github.com/five82/vie/internal/weather"
)

var errNoWeather = errors.New("no weather service configured")

// Messages

type tickMsg struct {
	Time time.Time
	// Rearm schedules the following tick. Only the aligned chain sets it.
	Rearm bool
}

type locationMsg struct {
	Fix location.Fix
	Err error
}

type timezoneMsg struct {
	Info timezone.Info
	Err  error
}

type weatherMsg struct {
	Cookie   uint32
	Response weather.Response
	Err      error
}

type pingMsg struct {
	Status link.Status
	Err    error
}

type logLinesMsg struct {
	Lines []string
	Err   error
}

// Commands

// untilNextMinute returns the wait until the next wall-clock minute starts.
func untilNextMinute(now time.Time) time.Duration {
	return now.Truncate(time.Minute).Add(time.Minute).Sub(now)
}

func tickCmd(ctx context.Context, clock clockwork.Clock, loc *time.Location) tea.Cmd {
	return func() tea.Msg {
		select {
		case t := <-clock.After(untilNextMinute(clock.Now())):
			return tickMsg{Time: t.In(loc), Rearm: true}
		case <-ctx.Done():
			return nil
		}
	}
}

func locateCmd(ctx context.Context, src location.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		fix, err := src.Locate(ctx)
		return locationMsg{Fix: fix, Err: err}
	}
}

func timezoneCmd(ctx context.Context, src timezone.Source) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		info, err := src.Lookup(ctx)
		return timezoneMsg{Info: info, Err: err}
	}
}

func weatherCmd(ctx context.Context, f weather.Fetcher, req weather.Request) tea.Cmd {
	return func() tea.Msg {
		if f == nil {
			return weatherMsg{Cookie: req.Cookie, Err: errNoWeather}
		}
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		resp, err := f.Fetch(ctx, req)
		return weatherMsg{Cookie: req.Cookie, Response: resp, Err: err}
	}
}

func pingCmd(ctx context.Context, m *link.Monitor) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, RequestTimeout)
		defer cancel()
		status, err := m.Ping(ctx)
		return pingMsg{Status: status, Err: err}
	}
}

func readLogsCmd(path string) tea.Cmd {
	return func() tea.Msg {
		lines, err := tailLog(path)
		return logLinesMsg{Lines: lines, Err: err}
	}
}
