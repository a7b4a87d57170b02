package mirror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/link"
	"github.com/five82/vie/internal/state"
	"github.com/five82/vie/internal/weather"
)

func newStore() *state.Store {
	store := &state.Store{}
	store.Apply([]face.Effect{face.SetText{Field: face.FieldClock, Text: "12:00 "}})
	store.Apply([]face.Effect{face.SetText{Field: face.FieldTemperature, Text: "21°"}})
	store.Apply([]face.Effect{face.SetImage{Image: weather.ImageRain}})
	store.SetLink(link.OK)
	return store
}

func TestDisplayFrom(t *testing.T) {
	d := DisplayFrom(newStore().Snapshot())

	assert.Equal(t, "12:00 ", d.Fields["clock"])
	assert.Equal(t, "21°", d.Fields["temperature"])
	assert.Equal(t, "", d.Fields["sunrise"])
	assert.Len(t, d.Fields, face.FieldCount)
	assert.Equal(t, "rain", d.Image)
	assert.Equal(t, "ok", d.Link)
	assert.Equal(t, uint64(4), d.Version)
	assert.Empty(t, d.LastError)
	assert.False(t, d.Offline)
}

func TestDisplayFromReportsErrors(t *testing.T) {
	store := newStore()
	store.Report(errors.New("weather: status 502"))

	d := DisplayFrom(store.Snapshot())
	assert.Equal(t, "weather: status 502", d.LastError)
	assert.False(t, d.Offline)

	store.Report(errors.New("weather: status 502"))
	assert.True(t, DisplayFrom(store.Snapshot()).Offline)

	store.Report(nil)
	d = DisplayFrom(store.Snapshot())
	assert.Empty(t, d.LastError)
	assert.False(t, d.Offline)
}

func TestDisplayFromWithoutImage(t *testing.T) {
	d := DisplayFrom((&state.Store{}).Snapshot())
	assert.Empty(t, d.Image)
	assert.Equal(t, "unknown", d.Link)
}

func TestGetDisplay(t *testing.T) {
	srv := httptest.NewServer(New(newStore(), nil).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/display")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	var d Display
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, "21°", d.Fields["temperature"])
}

func TestPostMessage(t *testing.T) {
	got := make(chan face.MessageReceived, 1)
	srv := httptest.NewServer(New(newStore(), func(m face.MessageReceived) { got <- m }).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/message", "application/json", strings.NewReader(`{"missed":3}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusAccepted, resp.StatusCode)

	msg := <-got
	require.NotNil(t, msg.Missed)
	assert.Equal(t, 3, *msg.Missed)
	assert.Nil(t, msg.Unread)
}

func TestPostMessageRejectsBadBodies(t *testing.T) {
	srv := httptest.NewServer(New(newStore(), nil).Handler())
	defer srv.Close()

	for _, body := range []string{`not json`, `{}`} {
		resp, err := http.Post(srv.URL+"/api/message", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	}
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestWebsocketPushesChanges(t *testing.T) {
	store := newStore()
	srv := httptest.NewServer(New(store, nil).Handler())
	defer srv.Close()
	conn := dial(t, srv)

	var d Display
	require.NoError(t, conn.ReadJSON(&d))
	assert.Equal(t, "21°", d.Fields["temperature"])

	store.Apply([]face.Effect{face.SetText{Field: face.FieldTemperature, Text: "22°"}})

	require.NoError(t, conn.ReadJSON(&d))
	assert.Equal(t, "22°", d.Fields["temperature"])
	assert.Equal(t, uint64(5), d.Version)

	store.Report(errors.New("time zone: status 503"))

	require.NoError(t, conn.ReadJSON(&d))
	assert.Equal(t, "time zone: status 503", d.LastError)
}

func TestWebsocketDeliversMessages(t *testing.T) {
	got := make(chan face.MessageReceived, 2)
	srv := httptest.NewServer(New(newStore(), func(m face.MessageReceived) { got <- m }).Handler())
	defer srv.Close()
	conn := dial(t, srv)

	var d Display
	require.NoError(t, conn.ReadJSON(&d))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`garbage`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"unread":7}`)))

	select {
	case msg := <-got:
		require.NotNil(t, msg.Unread)
		assert.Equal(t, 7, *msg.Unread)
	case <-time.After(5 * time.Second):
		t.Fatal("message not delivered")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New(newStore(), nil).Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/api/display")
	require.NoError(t, err)
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
