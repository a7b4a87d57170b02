package format

import (
	"testing"
	"time"
)

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th",
		11: "th", 12: "th", 13: "th",
		21: "st", 22: "nd", 23: "rd", 24: "th",
		30: "th", 31: "st",
	}
	for day, want := range cases {
		if got := Ordinal(day); got != want {
			t.Errorf("Ordinal(%d) = %q, want %q", day, got, want)
		}
	}
}

func TestDisplayHour(t *testing.T) {
	cases := []struct {
		hour   int
		use24h bool
		want   int
	}{
		{0, true, 0},
		{0, false, 12},
		{12, false, 12},
		{13, false, 1},
		{23, false, 11},
		{23, true, 23},
	}
	for _, tc := range cases {
		if got := DisplayHour(tc.hour, tc.use24h); got != tc.want {
			t.Errorf("DisplayHour(%d, %v) = %d, want %d", tc.hour, tc.use24h, got, tc.want)
		}
	}
}

func TestClock(t *testing.T) {
	midnight := time.Date(2026, 10, 19, 0, 7, 0, 0, time.UTC)
	if got := Clock(midnight, true); got != "00:07 " {
		t.Fatalf("Clock(24h) = %q, want %q", got, "00:07 ")
	}
	if got := Clock(midnight, false); got != "12:07 " {
		t.Fatalf("Clock(12h) = %q, want %q", got, "12:07 ")
	}
	afternoon := time.Date(2026, 10, 19, 13, 45, 0, 0, time.UTC)
	if got := Clock(afternoon, false); got != "01:45 " {
		t.Fatalf("Clock(12h, 13:45) = %q, want %q", got, "01:45 ")
	}
}

func TestDate(t *testing.T) {
	cases := []struct {
		when time.Time
		want string
	}{
		{time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC), "Oct 19th, 2026"},
		{time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC), "Jan 1st, 2026"},
		{time.Date(2026, 3, 22, 8, 0, 0, 0, time.UTC), "Mar 22nd, 2026"},
		{time.Date(2026, 5, 13, 8, 0, 0, 0, time.UTC), "May 13th, 2026"},
	}
	for _, tc := range cases {
		if got := Date(tc.when); got != tc.want {
			t.Errorf("Date(%v) = %q, want %q", tc.when, got, tc.want)
		}
	}
}

func TestHourTime(t *testing.T) {
	if got := HourTime(6.5, true); got != "06:30" {
		t.Fatalf("HourTime(6.5) = %q, want 06:30", got)
	}
	if got := HourTime(19.75, false); got != "07:45" {
		t.Fatalf("HourTime(19.75, 12h) = %q, want 07:45", got)
	}
	if got := HourTime(0.25, false); got != "12:15" {
		t.Fatalf("HourTime(0.25, 12h) = %q, want 12:15", got)
	}
}

func TestTemperatureAndCounter(t *testing.T) {
	if got := Temperature(21); got != "21°" {
		t.Fatalf("Temperature(21) = %q", got)
	}
	if got := Temperature(-4); got != "-4°" {
		t.Fatalf("Temperature(-4) = %q", got)
	}
	if got := Counter(3, false); got != "?" {
		t.Fatalf("Counter(link down) = %q, want ?", got)
	}
	if got := Counter(3, true); got != "3" {
		t.Fatalf("Counter(link ok) = %q, want 3", got)
	}
}

func TestHourGate(t *testing.T) {
	var g HourGate
	if !g.Changed(9) {
		t.Fatal("first Changed should report true")
	}
	if g.Changed(9) {
		t.Fatal("same hour should not report a change")
	}
	if !g.Changed(10) {
		t.Fatal("new hour should report a change")
	}
	g.Reset()
	if !g.Changed(10) {
		t.Fatal("Changed after Reset should report true")
	}
}

func TestHourGate_MidnightOn24HourClock(t *testing.T) {
	var g HourGate
	g.Changed(DisplayHour(23, true))
	if !g.Changed(DisplayHour(0, true)) {
		t.Fatal("23 -> 0 must refresh the date")
	}
}

func TestWeekdaysFor(t *testing.T) {
	monday := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	cases := map[string]string{
		"":      "Monday",
		"en-US": "Monday",
		"de":    "Montag",
		"fr-CH": "Lundi",
		"nl":    "Maandag",
		"!!":    "Monday",
	}
	for lang, want := range cases {
		if got := WeekdaysFor(lang).Name(monday); got != want {
			t.Errorf("WeekdaysFor(%q).Name = %q, want %q", lang, got, want)
		}
	}
}
