package timezone

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystem_Berlin(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC))
	s, err := NewSystem("Europe/Berlin", clock)
	require.NoError(t, err)

	info, err := s.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7200, info.UTCOffsetSeconds)
	assert.True(t, info.IsDST)
	assert.Equal(t, "Europe/Berlin", info.Name)
	assert.Equal(t, clock.Now().Unix(), info.Unix)

	clock.Advance(200 * 24 * time.Hour)
	info, err = s.Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3600, info.UTCOffsetSeconds)
	assert.False(t, info.IsDST)
}

func TestInfo_WireOffsetSeconds(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want int
	}{
		{"berlin summer", Info{UTCOffsetSeconds: 7200, IsDST: true}, 10800},
		{"berlin winter", Info{UTCOffsetSeconds: 3600}, 0},
		{"new york winter", Info{UTCOffsetSeconds: -18000}, -21600},
		{"utc", Info{}, -3600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.WireOffsetSeconds())
		})
	}
}

func TestSystem_UnknownZone(t *testing.T) {
	_, err := NewSystem("Mars/Olympus_Mons", nil)
	assert.Error(t, err)
}

func TestHTTP_Lookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"raw_offset":3600,"dst_offset":3600,"dst":true,"unixtime":1782900000,"timezone":"Europe/Berlin"}`))
	}))
	t.Cleanup(server.Close)

	info, err := NewHTTP(server.URL).Lookup(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Info{UTCOffsetSeconds: 7200, IsDST: true, Unix: 1782900000, Name: "Europe/Berlin"}, info)
}

func TestHTTP_Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := NewHTTP(server.URL).Lookup(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}
