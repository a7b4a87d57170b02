package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/weather"
)

// Snapshot represents what the face currently shows.
type Snapshot struct {
	Texts               [face.FieldCount]string
	Image               weather.Image
	HasImage            bool
	Link                link.Status
	Version             uint64
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int // Number of consecutive failed requests
}

// Text returns the text of one field.
func (s Snapshot) Text(f face.Field) string {
	if f < 0 || int(f) >= len(s.Texts) {
		return ""
	}
	return s.Texts[f]
}

// IsOffline returns true when requests have failed several times in a row.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store holds the display. The UI dispatcher is its only writer.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	changed  chan struct{}
}

// Apply writes display effects and ignores the rest. It reports whether
// anything visible changed.
func (s *Store) Apply(effects []face.Effect) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	dirty := false
	for _, e := range effects {
		switch e := e.(type) {
		case face.SetText:
			if int(e.Field) < 0 || int(e.Field) >= len(s.snapshot.Texts) {
				continue
			}
			if s.snapshot.Texts[e.Field] != e.Text {
				s.snapshot.Texts[e.Field] = e.Text
				dirty = true
			}
		case face.SetImage:
			if !s.snapshot.HasImage || s.snapshot.Image != e.Image {
				s.snapshot.Image = e.Image
				s.snapshot.HasImage = true
				dirty = true
			}
		}
	}
	if dirty {
		s.bumpLocked()
	}
	return dirty
}

// SetLink records the link status.
func (s *Store) SetLink(status link.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot.Link == status {
		return
	}
	s.snapshot.Link = status
	s.bumpLocked()
}

// Report records the outcome of a request. When err is non-nil the face is
// kept but the error is recorded and shown next to it. A change in the error
// text or the offline state counts as a visible change.
func (s *Store) Report(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before, wasOffline := errorText(s.snapshot.LastError), s.snapshot.IsOffline()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
	} else {
		s.snapshot.LastError = nil
		s.snapshot.ConsecutiveFailures = 0
	}

	if errorText(s.snapshot.LastError) != before || s.snapshot.IsOffline() != wasOffline {
		s.bumpLocked()
		return
	}
	s.snapshot.LastUpdated = time.Now()
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

// Changed returns a channel that is closed at the next visible change.
func (s *Store) Changed() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.changed == nil {
		s.changed = make(chan struct{})
	}
	return s.changed
}

func (s *Store) bumpLocked() {
	s.snapshot.Version++
	s.snapshot.LastUpdated = time.Now()
	if s.changed != nil {
		close(s.changed)
		s.changed = nil
	}
}
