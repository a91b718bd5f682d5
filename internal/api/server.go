// Package api exposes window enumeration and capture over HTTP. Capture
// endpoints stream the encoded image directly in the response body.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/winshot/winshot/internal/capture"
	"github.com/winshot/winshot/internal/config"
	"github.com/winshot/winshot/internal/logger"
	"github.com/winshot/winshot/internal/output"
	"github.com/winshot/winshot/internal/window"
)

// WindowLister resolves and enumerates windows for the API handlers.
type WindowLister interface {
	List() ([]window.Info, error)
	Find(title string) (window.Handle, error)
	Match(pattern string) (window.Info, error)
}

// Capturer grabs pixels for the API handlers.
type Capturer interface {
	CaptureWindow(hwnd capture.WindowHandle, opts capture.Options) (*capture.PixelBuffer, error)
	CaptureDisplay() (*capture.PixelBuffer, error)
}

// Server represents the HTTP API server.
type Server struct {
	router    *mux.Router
	windows   WindowLister
	capturer  Capturer
	configMgr *config.Manager
	upgrader  websocket.Upgrader
	log       *zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(windows WindowLister, capturer Capturer, configMgr *config.Manager) *Server {
	s := &Server{
		router:    mux.NewRouter(),
		windows:   windows,
		capturer:  capturer,
		configMgr: configMgr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins for development
			},
		},
		log: logger.WithComponent("api"),
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Window enumeration
	api.HandleFunc("/windows", s.handleListWindows).Methods("GET")
	api.HandleFunc("/windows/events", s.handleWindowEvents)

	// Capture
	api.HandleFunc("/capture/window", s.handleCaptureWindow).Methods("GET")
	api.HandleFunc("/capture/display", s.handleCaptureDisplay).Methods("GET")

	// Configuration
	api.HandleFunc("/config", s.handleGetConfig).Methods("GET")
	api.HandleFunc("/config", s.handleUpdateConfig).Methods("PUT")

	// Health check
	api.HandleFunc("/health", s.handleHealth).Methods("GET")
}

// Router returns the configured handler, CORS included.
func (s *Server) Router() http.Handler {
	return s.enableCORS(s.router)
}

// Start starts the HTTP server.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Info().Str("addr", addr).Msg("starting server")
	return http.ListenAndServe(addr, s.Router())
}

// enableCORS adds CORS headers
func (s *Server) enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// HTTP Handlers

func (s *Server) handleListWindows(w http.ResponseWriter, r *http.Request) {
	infos, err := s.windows.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

func (s *Server) handleCaptureWindow(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	hwnd, err := s.resolveTarget(q.Get("title"), q.Get("pattern"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, window.ErrWindowNotFound) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}

	opts, err := s.parseOptions(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	buf, err := s.capturer.CaptureWindow(capture.WindowHandle(hwnd), opts)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, capture.ErrInvalidCaptureCombination) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	s.writeImage(w, q.Get("format"), buf)
}

func (s *Server) handleCaptureDisplay(w http.ResponseWriter, r *http.Request) {
	buf, err := s.capturer.CaptureDisplay()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.writeImage(w, r.URL.Query().Get("format"), buf)
}

// resolveTarget turns a title or pattern query into a window handle. Exactly
// one of the two must be set.
func (s *Server) resolveTarget(title, pattern string) (window.Handle, error) {
	switch {
	case title != "" && pattern != "":
		return 0, fmt.Errorf("%w: title and pattern are mutually exclusive", window.ErrWindowNotFound)
	case title != "":
		return s.windows.Find(title)
	case pattern != "":
		info, err := s.windows.Match(pattern)
		if err != nil {
			return 0, err
		}
		return info.Handle, nil
	default:
		return 0, fmt.Errorf("%w: title or pattern query parameter required", window.ErrWindowNotFound)
	}
}

func (s *Server) parseOptions(q map[string][]string) (capture.Options, error) {
	get := func(key string) string {
		if v, ok := q[key]; ok && len(v) > 0 {
			return v[0]
		}
		return ""
	}

	var opts capture.Options
	var err error

	cfg := s.configMgr.Get()
	opts.Depth = cfg.Depth

	method := get("method")
	if method == "" {
		method = cfg.Method
	}
	if opts.Method, err = capture.ParseMethod(method); err != nil {
		return opts, err
	}

	area := get("area")
	if area == "" {
		area = cfg.Area
	}
	if opts.Area, err = capture.ParseArea(area); err != nil {
		return opts, err
	}

	if d := get("depth"); d != "" {
		if opts.Depth, err = strconv.Atoi(d); err != nil {
			return opts, fmt.Errorf("depth %q: %w", d, err)
		}
	}

	if c := get("crop"); c != "" {
		crop, err := ParseCrop(c)
		if err != nil {
			return opts, err
		}
		opts.Crop = &crop
	}

	return opts, nil
}

// ParseCrop parses an "x,y,width,height" crop specification.
func ParseCrop(s string) (capture.Crop, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return capture.Crop{}, fmt.Errorf("crop %q: want x,y,width,height", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return capture.Crop{}, fmt.Errorf("crop %q: %w", s, err)
		}
		vals[i] = v
	}
	return capture.Crop{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

func (s *Server) writeImage(w http.ResponseWriter, format string, buf *capture.PixelBuffer) {
	cfg := s.configMgr.Get()
	if format == "" {
		format = cfg.Format
	}
	enc, err := output.ForFormat(format)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if j, ok := enc.(output.JPEGEncoder); ok && cfg.JPEGQuality > 0 {
		j.Quality = cfg.JPEGQuality
		enc = j
	}

	w.Header().Set("Content-Type", output.ContentType(enc.Name()))
	if err := enc.Encode(w, buf); err != nil {
		s.log.Error().Err(err).Str("format", enc.Name()).Msg("encode failed")
	}
}

// windowEvent is one message on the /api/windows/events stream.
type windowEvent struct {
	Windows []window.Info `json:"windows"`
}

func (s *Server) handleWindowEvents(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	interval := time.Duration(s.configMgr.Get().PollIntervalMs) * time.Millisecond
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var last []window.Info
	send := func() error {
		infos, err := s.windows.List()
		if err != nil {
			s.log.Error().Err(err).Msg("window enumeration failed")
			return nil
		}
		if sameWindows(last, infos) {
			return nil
		}
		last = infos
		return conn.WriteJSON(windowEvent{Windows: infos})
	}

	// Initial snapshot, then only changes.
	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-r.Context().Done():
			return
		case <-ticker.C:
			if err := send(); err != nil {
				return
			}
		}
	}
}

func sameWindows(a, b []window.Info) bool {
	if a == nil || len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	cfg := s.configMgr.Get()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(cfg)
}

func (s *Server) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	var cfg config.Config
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.configMgr.Update(&cfg); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "success"})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}
