package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-drift/uicore/pkg/errors"
	"github.com/go-drift/uicore/pkg/snapshot"
)

// Inspectable is the read-only view of an app served by an Inspector.
// *App satisfies it for any component type.
type Inspectable interface {
	Snapshot() *snapshot.Snapshot
	Timeline() FrameTimeline
	Stats() Stats
}

// Inspector serves an app's tree, display list and frame timings over HTTP.
type Inspector struct {
	source   Inspectable
	mu       sync.Mutex
	server   *http.Server
	listener net.Listener
}

// NewInspector creates an inspector for src. It does not listen until Start.
func NewInspector(src Inspectable) *Inspector {
	return &Inspector{source: src}
}

// Handler returns the inspector's routes:
//
//	/health  liveness probe
//	/tree    tree and display list snapshot; ?format=yaml for YAML
//	/frames  recent frame samples; ?limit=N and ?min_ms=F filter them
//	/debug   node and handler counts
func (s *Inspector) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/tree", s.handleTree)
	mux.HandleFunc("/frames", s.handleFrameTimeline)
	mux.HandleFunc("/debug", s.handleDebug)
	return mux
}

// Start listens on addr, for example "localhost:0", and serves in the
// background. It returns the bound port. Calling Start on a running
// inspector returns its current port.
func (s *Inspector) Start(addr string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.server != nil {
		return s.listener.Addr().(*net.TCPAddr).Port, nil
	}

	// Bind first to fail fast on port conflicts.
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return 0, fmt.Errorf("inspector listen: %w", err)
	}

	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.mu.Lock()
			if s.server == server {
				s.server = nil
				s.listener = nil
			}
			s.mu.Unlock()
			errors.Report(&errors.UIError{
				Op:        "engine.Inspector",
				Kind:      errors.KindHost,
				Err:       err,
				Timestamp: time.Now(),
			})
		}
	}()

	return listener.Addr().(*net.TCPAddr).Port, nil
}

// Stop gracefully shuts the server down. It is a no-op when not running.
func (s *Inspector) Stop() {
	s.mu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.mu.Unlock()

	if server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	server.Shutdown(ctx)
}

func (s *Inspector) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Inspector) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// Recover from panics during serialization
	defer func() {
		if rec := recover(); rec != nil {
			http.Error(w, fmt.Sprintf("panic: %v", rec), http.StatusInternalServerError)
		}
	}()

	snap := s.source.Snapshot()
	if snap.DisplayOps == nil {
		http.Error(w, "no frame rendered", http.StatusServiceUnavailable)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	data, err := snap.Encode(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.EqualFold(format, "json") {
		w.Header().Set("Content-Type", "application/json")
	} else {
		w.Header().Set("Content-Type", "application/yaml")
	}
	w.Write(data)
}

func (s *Inspector) handleFrameTimeline(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if value := r.URL.Query().Get("limit"); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	resp := s.source.Timeline().Filter(limit, parseFloatQuery(r, "min_ms"))
	writeJSON(w, resp)
}

func (s *Inspector) handleDebug(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.source.Stats())
}

func writeJSON(w http.ResponseWriter, v any) {
	// Encode to buffer first so we can catch errors
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func parseFloatQuery(r *http.Request, key string) float64 {
	value := r.URL.Query().Get(key)
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}
