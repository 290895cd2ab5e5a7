// internal/httpserver/server.go
//
// HTTP server wiring for the Freebee backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, request log).
//   - Public endpoints: "/", "/health".
//   - Static store endpoint: GET /puzzles/{key}.json.
//   - Game endpoints under /game, scoped to the caller's device.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the device cookie works).
//   - Every request gets a device ID; see device.go.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/freebee/internal/daily"
	"github.com/robalobadob/freebee/internal/puzzle"
	"github.com/robalobadob/freebee/internal/session"
)

// Config carries the server's environment-derived settings.
type Config struct {
	ClientOrigin string // CORS origin allowed with credentials
	PublicURL    string // page URL that share links point at
	DeviceSecret string // secret the device cookie key is derived from
	Secure       bool   // production cookies (Secure, SameSite=None)
}

// Server bundles router, puzzle source, session engine and per-device controllers.
type Server struct {
	r       *chi.Mux
	cfg     Config
	fetcher puzzle.Fetcher
	engine  *session.Engine
	codec   *daily.Codec
	devKey  []byte

	mu          sync.Mutex                     // guards controllers
	controllers map[string]*session.Controller // keyed by device ID
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, f puzzle.Fetcher, e *session.Engine, c *daily.Codec) *Server {
	s := &Server{
		r:           chi.NewRouter(),
		cfg:         cfg,
		fetcher:     f,
		engine:      e,
		codec:       c,
		devKey:      deriveDeviceKey(cfg.DeviceSecret),
		controllers: make(map[string]*session.Controller),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(requestLogger)                   // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"freebee","endpoints":["/health","/puzzles/{key}.json","/game","POST /game/guess","POST /game/day","/game/random","/game/levels","/game/words","/game/share"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Static store role: serve documents the way the public bucket does.
	s.r.Get("/puzzles/{file}", s.handlePuzzleDoc)

	// Game endpoints, one private key space per device.
	s.mountGame(s.r.With(s.withDevice))

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// controller returns the device's controller, creating it on first use.
func (s *Server) controller(device string) *session.Controller {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.controllers[device]
	if !ok {
		c = session.NewController()
		s.controllers[device] = c
	}
	return c
}

// handlePuzzleDoc serves GET /puzzles/<key>.json from the configured fetcher.
func (s *Server) handlePuzzleDoc(w http.ResponseWriter, r *http.Request) {
	key, ok := strings.CutSuffix(chi.URLParam(r, "file"), ".json")
	if !ok {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	if _, err := daily.Decode(key); err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	p, err := s.fetcher.Fetch(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusNotFound, "no_puzzle")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requestLogger logs method, path, status and latency for each request.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("reqId", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

// ------------------------------- helpers -----------------------------------

type errorRes struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, errorRes{Error: code})
}

func writeMessage(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, errorRes{Error: code, Message: msg})
}
