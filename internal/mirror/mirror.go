// Package mirror serves what the face shows over HTTP so another device can
// follow it, and accepts the counter messages that device sends back.
//
// Routes:
//
//	GET  /api/display   current display as JSON
//	POST /api/message   {"missed":n,"unread":n}, either key optional
//	GET  /ws            display pushed on every change; inbound text
//	                    frames are messages in the /api/message shape
package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/five82/vie/internal/face"
	"github.com/five82/vie/internal/state"
)

const (
	writeTimeout    = 10 * time.Second
	requestTimeout  = 10 * time.Second
	shutdownTimeout = 5 * time.Second
	maxMessageBytes = 4096
)

// Display is the JSON form of a store snapshot.
type Display struct {
	Fields  map[string]string `json:"fields"`
	Image   string            `json:"image,omitempty"`
	Link    string            `json:"link"`
	Version uint64            `json:"version"`
	Updated time.Time         `json:"updated"`

	// LastError is the most recent failed request, empty once one succeeds.
	LastError string `json:"last_error,omitempty"`
	Offline   bool   `json:"offline"`
}

// Message is an inbound message from the other device.
type Message struct {
	Missed *int `json:"missed,omitempty"`
	Unread *int `json:"unread,omitempty"`
}

// Event converts the message for the face.
func (m Message) Event() face.MessageReceived {
	return face.MessageReceived{Missed: m.Missed, Unread: m.Unread}
}

// DisplayFrom converts a snapshot to its JSON form.
func DisplayFrom(snap state.Snapshot) Display {
	fields := make(map[string]string, face.FieldCount)
	for i := 0; i < face.FieldCount; i++ {
		f := face.Field(i)
		fields[f.String()] = snap.Text(f)
	}
	d := Display{
		Fields:  fields,
		Link:    snap.Link.String(),
		Version: snap.Version,
		Updated: snap.LastUpdated,
		Offline: snap.IsOffline(),
	}
	if snap.LastError != nil {
		d.LastError = snap.LastError.Error()
	}
	if snap.HasImage {
		d.Image = snap.Image.String()
	}
	return d
}

// Server mirrors a store.
type Server struct {
	store    *state.Store
	deliver  func(face.MessageReceived)
	upgrader websocket.Upgrader
	quit     chan struct{}
}

// New returns a server reading from store. deliver receives inbound
// messages and may be nil.
func New(store *state.Store, deliver func(face.MessageReceived)) *Server {
	if deliver == nil {
		deliver = func(face.MessageReceived) {}
	}
	return &Server{
		store:   store,
		deliver: deliver,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		quit: make(chan struct{}),
	}
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Get("/api/display", s.handleDisplay)
		r.Post("/api/message", s.handleMessage)
	})
	r.Get("/ws", s.handleWS)
	return r
}

// Run listens on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("mirror listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: requestTimeout,
	}

	go func() {
		<-ctx.Done()
		close(s.quit)
		shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			log.Warn().Str("component", "mirror").Err(err).Msg("shutdown")
		}
	}()

	log.Info().Str("component", "mirror").Str("addr", ln.Addr().String()).Msg("mirror listening")
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mirror serve: %w", err)
	}
	return nil
}

func (s *Server) handleDisplay(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, DisplayFrom(s.store.Snapshot()))
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxMessageBytes))
	if err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	msg, err := parseMessage(body)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.deliver(msg.Event())
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Str("component", "mirror").Err(err).Msg("websocket upgrade")
		return
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(maxMessageBytes)

	log.Debug().Str("component", "mirror").Str("remote", r.RemoteAddr).Msg("client connected")

	closed := make(chan struct{})
	go s.readLoop(conn, closed)

	var last uint64
	first := true
	for {
		changed := s.store.Changed()
		snap := s.store.Snapshot()
		if first || snap.Version != last {
			if err := writeFrame(conn, DisplayFrom(snap)); err != nil {
				log.Debug().Str("component", "mirror").Err(err).Msg("client write")
				return
			}
			first = false
			last = snap.Version
		}

		select {
		case <-changed:
		case <-closed:
			log.Debug().Str("component", "mirror").Str("remote", r.RemoteAddr).Msg("client disconnected")
			return
		case <-s.quit:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""),
				time.Now().Add(writeTimeout))
			return
		}
	}
}

// readLoop delivers inbound frames until the connection fails.
func (s *Server) readLoop(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := parseMessage(data)
		if err != nil {
			log.Debug().Str("component", "mirror").Err(err).Msg("skip message")
			continue
		}
		s.deliver(msg.Event())
	}
}

func parseMessage(data []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	if msg.Missed == nil && msg.Unread == nil {
		return Message{}, errors.New("message carries no counters")
	}
	return msg, nil
}

func writeFrame(conn *websocket.Conn, d Display) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(d)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug().Str("component", "mirror").Err(err).Msg("write response")
	}
}
