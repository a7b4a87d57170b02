package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/weather"
)

func TestStore_ApplyAndSnapshot(t *testing.T) {
	var s Store

	before := time.Now()
	dirty := s.Apply([]face.Effect{
		face.SetText{Field: face.FieldClock, Text: "10:00 "},
		face.SetImage{Image: weather.ImageClearDay},
		face.RequestTimezone{},
	})
	if !dirty {
		t.Fatal("Apply() = false, want true for new text")
	}

	snap := s.Snapshot()
	if got := snap.Text(face.FieldClock); got != "10:00 " {
		t.Fatalf("clock = %q, want %q", got, "10:00 ")
	}
	if !snap.HasImage || snap.Image != weather.ImageClearDay {
		t.Fatalf("image = %v (has=%v), want clear-day", snap.Image, snap.HasImage)
	}
	if snap.Version != 1 {
		t.Fatalf("Version = %d, want 1", snap.Version)
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}

	// Same content again is not a change.
	if s.Apply([]face.Effect{face.SetText{Field: face.FieldClock, Text: "10:00 "}}) {
		t.Fatal("Apply() = true for identical text")
	}
	if v := s.Snapshot().Version; v != 1 {
		t.Fatalf("Version = %d after no-op, want 1", v)
	}
}

func TestStore_IgnoresUnknownField(t *testing.T) {
	var s Store
	if s.Apply([]face.Effect{face.SetText{Field: face.Field(99), Text: "x"}}) {
		t.Fatal("Apply() = true for out-of-range field")
	}
	if got := s.Snapshot().Text(face.Field(99)); got != "" {
		t.Fatalf("Text(99) = %q, want empty", got)
	}
}

func TestStore_ChangedIsClosedOnUpdate(t *testing.T) {
	var s Store
	ch := s.Changed()

	select {
	case <-ch:
		t.Fatal("Changed closed before any update")
	default:
	}

	s.SetLink(link.OK)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("Changed not closed after SetLink")
	}

	next := s.Changed()
	if next == ch {
		t.Fatal("Changed should hand out a fresh channel after a change")
	}
	s.SetLink(link.OK)
	select {
	case <-next:
		t.Fatal("unchanged link should not signal")
	default:
	}
}

func TestStore_ReportKeepsDisplay(t *testing.T) {
	var s Store
	s.Apply([]face.Effect{face.SetText{Field: face.FieldTemperature, Text: "21°"}})

	origErr := errors.New("boom")
	s.Report(origErr)

	snap := s.Snapshot()
	if snap.Text(face.FieldTemperature) != "21°" {
		t.Fatalf("temperature changed on error: %q", snap.Text(face.FieldTemperature))
	}
	if snap.LastError == nil || snap.LastError.Error() != "boom" {
		t.Fatalf("LastError = %v, want boom", snap.LastError)
	}
	if reflect.ValueOf(snap.LastError).Pointer() == reflect.ValueOf(origErr).Pointer() {
		t.Fatalf("Snapshot should clone error instance")
	}
}

func TestStore_ConsecutiveFailures(t *testing.T) {
	var s Store

	snap := s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() {
		t.Fatalf("fresh store: failures=%d offline=%v", snap.ConsecutiveFailures, snap.IsOffline())
	}

	s.Report(errors.New("fail 1"))
	if snap = s.Snapshot(); snap.IsOffline() {
		t.Fatal("IsOffline() = true, want false with 1 failure")
	}

	s.Report(errors.New("fail 2"))
	if snap = s.Snapshot(); !snap.IsOffline() {
		t.Fatal("IsOffline() = false, want true with 2 failures")
	}

	s.Report(nil)
	snap = s.Snapshot()
	if snap.ConsecutiveFailures != 0 || snap.IsOffline() || snap.LastError != nil {
		t.Fatalf("after success: failures=%d err=%v", snap.ConsecutiveFailures, snap.LastError)
	}
}

func TestStore_ReportSignalsVisibleChanges(t *testing.T) {
	var s Store

	s.Report(nil)
	if v := s.Snapshot().Version; v != 0 {
		t.Fatalf("Version = %d after clean success, want 0", v)
	}

	ch := s.Changed()
	s.Report(errors.New("status 502"))
	select {
	case <-ch:
	default:
		t.Fatal("Changed not closed after first error")
	}
	if v := s.Snapshot().Version; v != 1 {
		t.Fatalf("Version = %d after first error, want 1", v)
	}

	// Same text, but two failures in a row flip the offline state.
	s.Report(errors.New("status 502"))
	if v := s.Snapshot().Version; v != 2 {
		t.Fatalf("Version = %d after going offline, want 2", v)
	}

	s.Report(errors.New("status 502"))
	if v := s.Snapshot().Version; v != 2 {
		t.Fatalf("Version = %d after repeated error, want 2", v)
	}

	s.Report(nil)
	if v := s.Snapshot().Version; v != 3 {
		t.Fatalf("Version = %d after recovery, want 3", v)
	}
}
