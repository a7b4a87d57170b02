package geo

import "testing"

func TestFromDegrees_RoundTrips(t *testing.T) {
	c := FromDegrees(52.52, 13.405)
	if c.LatE4 != 525200 || c.LngE4 != 134050 {
		t.Fatalf("FromDegrees = %+v, want 525200/134050", c)
	}
	if got := c.Lat(); got < 52.5199 || got > 52.5201 {
		t.Fatalf("Lat() = %v, want ~52.52", got)
	}
	if got := c.String(); got != "52.5200,13.4050" {
		t.Fatalf("String() = %q", got)
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		lat, lng float64
		want     bool
	}{
		{0, 0, true},
		{-90, 180, true},
		{90.5, 0, false},
		{0, -181, false},
	}
	for _, tc := range cases {
		if got := FromDegrees(tc.lat, tc.lng).Valid(); got != tc.want {
			t.Errorf("Valid(%v,%v) = %v, want %v", tc.lat, tc.lng, got, tc.want)
		}
	}
}
