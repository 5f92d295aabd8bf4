// internal/httpserver/server.go
//
// HTTP server wiring for the word-chain backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints (optional auth): /game/new, /game/{id}, /game/guess,
//     /game/restart and the live feed /game/{id}/ws.
//   - History endpoints (optional auth): GET/DELETE /history.
//   - Daily Challenge endpoints (optional auth): mounted under /daily.
//   - Auth + profile/stat endpoints: /auth/*, /stats/me.
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - Guests are identified by an anonymous cookie; their history is moved
//     to the account on signup/login.
//   - The websocket route sits outside the request timeout.

package httpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/amithcabraal/qw-chain-20/internal/config"
	"github.com/amithcabraal/qw-chain-20/internal/daily"
	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/history"
	"github.com/amithcabraal/qw-chain-20/internal/store"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

// Deps are the collaborators a Server needs.
type Deps struct {
	Config  config.Config
	DB      *sql.DB
	Lookup  game.Lookup
	History history.Store
	// Selector picks hidden words; the zero value draws from crypto/rand.
	Selector game.Selector
	// Now is the wall clock used for daily keys. Defaults to time.Now.
	Now func() time.Time
}

// Server bundles router, live sessions and persistence handles.
type Server struct {
	r        *chi.Mux
	cfg      config.Config
	db       *sql.DB
	lookup   game.Lookup
	history  history.Store
	selector game.Selector
	now      func() time.Time
	sessions store.Store[*session]
	daily    *dailyServer
	upgrader websocket.Upgrader
}

// New constructs a Server, installs middleware, and registers routes.
func New(d Deps) *Server {
	s := &Server{
		r:        chi.NewRouter(),
		cfg:      d.Config,
		db:       d.DB,
		lookup:   d.Lookup,
		history:  d.History,
		selector: d.Selector,
		now:      d.Now,
		sessions: store.NewMemoryStore[*session](),
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer) // recover from panics
	s.r.Use(jsonContentType) // default JSON responses
	s.r.Use(s.cors)          // credentials-friendly CORS

	// Live feed: long-lived, so no request timeout.
	s.r.With(s.withOptionalAuth()).Get("/game/{id}/ws", s.handleWS)

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(10 * time.Second)) // bound handler time

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"service":"chain-go","endpoints":["/health","POST /game/new","POST /game/guess","POST /game/restart","GET /game/{id}/ws","/history","/daily/*","/auth/*"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]int{"starters": words.Stats(), "sessions": s.sessions.Len()})
		})

		// Game + history: optional auth, guests can play
		opt := r.With(s.withOptionalAuth())
		s.mountGame(opt)
		s.mountHistory(opt)

		// Daily Challenge: optional auth, result persisted on finish
		s.mountDaily(opt)

		// Auth + profile/stats
		s.mountAuthRoutes(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr and sweeps idle sessions in the background.
func (s *Server) Start(addr string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.sweepLoop(ctx, time.Minute)
	return http.ListenAndServe(addr, s.r)
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// sweepLoop evicts sessions idle for longer than the configured cutoff.
func (s *Server) sweepLoop(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep closes and forgets idle sessions. It returns how many were evicted.
func (s *Server) Sweep(ctx context.Context) int {
	idle := s.cfg.SessionIdle
	if idle <= 0 {
		idle = 30 * time.Minute
	}
	evicted := s.sessions.Sweep(ctx, idle)
	for _, sess := range evicted {
		sess.close()
		s.daily.forget(sess)
	}
	if len(evicted) > 0 {
		log.Debug().Int("evicted", len(evicted)).Msg("swept idle sessions")
	}
	return len(evicted)
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured CLIENT_ORIGIN.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// checkOrigin admits same-host requests, non-browser clients and the
// configured client origin.
func (s *Server) checkOrigin(r *http.Request) bool {
	o := r.Header.Get("Origin")
	if o == "" || o == s.cfg.ClientOrigin {
		return true
	}
	return o == "http://"+r.Host || o == "https://"+r.Host
}

// ------------------------------ responses ----------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorRes is the body of every failed game request. State is included when
// the round is known so clients can resync.
type errorRes struct {
	Error string     `json:"error"`
	State *roundView `json:"state,omitempty"`
}

// errorCode maps engine and input errors to a status and a stable code.
func errorCode(err error) (int, string) {
	switch {
	case errors.Is(err, game.ErrNotMatching):
		return http.StatusUnprocessableEntity, "not_matching"
	case errors.Is(err, game.ErrEngineBusy):
		return http.StatusConflict, "engine_busy"
	case errors.Is(err, game.ErrNotPlaying):
		return http.StatusConflict, "not_playing"
	case errors.Is(err, game.ErrSuperseded):
		return http.StatusConflict, "superseded"
	case errors.Is(err, game.ErrLookupFailed):
		return http.StatusBadGateway, "lookup_failed"
	case errors.Is(err, game.ErrNoSeed):
		return http.StatusBadRequest, "no_seed"
	case errors.Is(err, words.ErrVowelCount):
		return http.StatusBadRequest, "vowel_count"
	case errors.Is(err, words.ErrNotVowel):
		return http.StatusBadRequest, "not_vowel"
	case errors.Is(err, errEmptyGuess):
		return http.StatusBadRequest, "empty_guess"
	case errors.Is(err, errDailyLocked):
		return http.StatusConflict, "daily_locked"
	default:
		return http.StatusInternalServerError, "server_error"
	}
}

// writeGameError writes err with the session's current view, if any.
func writeGameError(w http.ResponseWriter, err error, view *roundView) {
	status, code := errorCode(err)
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("game request failed")
	}
	writeJSON(w, status, errorRes{Error: code, State: view})
}

// todayKey returns the daily key of the server clock.
func (s *Server) todayKey() string { return daily.DateKey(s.now()) }
