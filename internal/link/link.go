// Package link tracks connectivity to the weather service.
//
// The monitor is fed by heartbeats and by the outcome of regular requests.
// Consecutive failures move the status from OK to Degraded and then to
// Failed; any success resets it to OK.
package link

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// Status is the connectivity state shown on the face.
type Status int

const (
	Unknown Status = iota
	OK
	Degraded
	Failed
)

// FailedAfter is the number of consecutive failures that marks the link failed.
const FailedAfter = 3

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Degraded:
		return "degraded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Pinger is anything that can answer a heartbeat.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Snapshot is a point-in-time copy of the monitor state.
type Snapshot struct {
	Status              Status
	ConsecutiveFailures int
	LastSuccess         time.Time
	LastFailure         time.Time
	LastError           error
}

// Monitor records heartbeat outcomes. It is safe for concurrent use.
type Monitor struct {
	pinger Pinger
	clock  clockwork.Clock

	mu   sync.Mutex
	snap Snapshot
}

// NewMonitor returns a monitor in the Unknown state. A nil clock means the
// real clock.
func NewMonitor(p Pinger, clock clockwork.Clock) *Monitor {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Monitor{pinger: p, clock: clock}
}

// Ping sends one heartbeat and records its outcome.
func (m *Monitor) Ping(ctx context.Context) (Status, error) {
	if m.pinger == nil {
		return m.Status(), nil
	}
	if err := m.pinger.Ping(ctx); err != nil {
		return m.HandleFailure(err), err
	}
	return m.HandleSuccess(), nil
}

// HandleSuccess resets the failure count and marks the link OK.
func (m *Monitor) HandleSuccess() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.snap.Status != OK {
		log.Debug().Str("component", "link").Str("from", m.snap.Status.String()).Msg("link restored")
	}
	m.snap.Status = OK
	m.snap.ConsecutiveFailures = 0
	m.snap.LastError = nil
	m.snap.LastSuccess = m.clock.Now()
	return m.snap.Status
}

// HandleFailure counts a failure and returns the resulting status.
func (m *Monitor) HandleFailure(reason error) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.snap.ConsecutiveFailures++
	m.snap.LastError = reason
	m.snap.LastFailure = m.clock.Now()
	if m.snap.ConsecutiveFailures >= FailedAfter {
		m.snap.Status = Failed
	} else {
		m.snap.Status = Degraded
	}
	log.Debug().Str("component", "link").Err(reason).
		Int("failures", m.snap.ConsecutiveFailures).
		Str("status", m.snap.Status.String()).
		Msg("link failure")
	return m.snap.Status
}

// Status returns the current status.
func (m *Monitor) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap.Status
}

// Snapshot returns a copy of the monitor state.
func (m *Monitor) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}
