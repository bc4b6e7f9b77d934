package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/theirongolddev/regimen/internal/logger"
	"github.com/theirongolddev/regimen/internal/view"
)

// DefaultAddr keeps the action API on loopback.
const DefaultAddr = "127.0.0.1:8787"

// Status is served at /v1/status.
type Status struct {
	SessionID       string    `json:"session_id"`
	StartedAt       time.Time `json:"started_at"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Server exposes a Session over HTTP.
type Server struct {
	sess *Session
	addr string
}

// NewServer returns a server for sess listening on addr.
func NewServer(sess *Session, addr string) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Server{sess: sess, addr: addr}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.addr }

// Handler returns the API routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/status", s.handleStatus)
	mux.HandleFunc("GET /v1/view", s.handleView)
	mux.HandleFunc("GET /v1/transitions", s.handleTransitions)
	mux.HandleFunc("POST /v1/actions", s.handleAction)
	mux.HandleFunc("GET /v1/events", s.handleEvents)
	mux.HandleFunc("GET /v1/stream", s.handleStream)
	return mux
}

// Run listens on the server address and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.addr)
	if err != nil {
		return fmt.Errorf("action api: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully. Request contexts derive from ctx so open streams end with it.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("action api listening", "addr", ln.Addr().String(), "session", s.sess.ID())

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("action api: %w", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Status{
		SessionID:       s.sess.ID(),
		StartedAt:       s.sess.StartedAt(),
		EventCount:      len(s.sess.Events()),
		SubscriberCount: s.sess.subscriberCount(),
	})
}

func (s *Server) handleView(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.View())
}

func (s *Server) handleTransitions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Transitions())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Screen == "" || req.Action == "" {
		http.Error(w, "screen and action are required", http.StatusBadRequest)
		return
	}

	resp, err := s.sess.Apply(r.Context(), req)
	if err != nil {
		status := http.StatusServiceUnavailable
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = http.StatusRequestTimeout
		}
		http.Error(w, err.Error(), status)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.sess.Events())
}

type streamFrame struct {
	Type  string          `json:"type"`
	Event *Event          `json:"event,omitempty"`
	View  *view.ViewModel `json:"view,omitempty"`
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan update, 16)
	id := s.sess.addSubscriber(ch)
	defer s.sess.removeSubscriber(id)

	// Current view first, then every event with the view it produced.
	vm := s.sess.View()
	writeSSE(w, streamFrame{Type: "snapshot", View: &vm})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.sess.done:
			return
		case u := <-ch:
			writeSSE(w, streamFrame{Type: u.Event.Type, Event: &u.Event, View: &u.View})
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, f streamFrame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", f.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
