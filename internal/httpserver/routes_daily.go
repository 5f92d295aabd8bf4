// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes two endpoints under /daily:
//   - POST /daily/new         → start (or resume) today's daily round
//   - GET  /daily/leaderboard → fetch top 20 results for today (or a given date)
//
// Guessing uses the regular /game/guess route with the returned gameId.
// Each owner gets one counted round per day (enforced by DB + session map).
// Deterministic seed selection is based on date + salt.

package httpserver

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/amithcabraal/qw-chain-20/internal/daily"
	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

// dailyServer wraps dependencies for /daily endpoints.
type dailyServer struct {
	srv    *Server
	store  *daily.Store
	salt   string
	active map[string]string // owner|date → session ID
	mu     sync.Mutex        // guards active
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	salt := s.cfg.DailySalt
	if salt == "" {
		salt = "local_dev_salt"
	}
	s.daily = &dailyServer{
		srv:    s,
		store:  daily.NewStore(s.db),
		salt:   salt,
		active: make(map[string]string),
	}
	r.Post("/daily/new", s.daily.handleNew)
	r.Get("/daily/leaderboard", s.daily.handleLeaderboard)
}

// seedNow returns today's date key, seed index and seed word.
func (d *dailyServer) seedNow() dailySeed {
	now := d.srv.now()
	word, idx := daily.Seed(now, d.salt, words.Starters())
	return dailySeed{date: daily.DateKey(now), wordIndex: idx, word: word}
}

// forget drops the session from the active map once it is evicted.
func (d *dailyServer) forget(sess *session) {
	if d == nil || sess.mode != modeDaily {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	key := sess.owner + "|" + sess.date
	if d.active[key] == sess.id {
		delete(d.active, key)
	}
}

// -----------------------------------------------------------------------------
// /daily/new

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	GameID string     `json:"gameId,omitempty"`
	Date   string     `json:"date"`
	Played bool       `json:"played"`
	State  *roundView `json:"state,omitempty"`
}

// handleNew creates or resumes a daily session for the current date.
//   - If the owner already has a DB row for today → Played=true, no session.
//   - If a session for today is live → return it.
//   - Otherwise start a new session from the day's seed word.
func (d *dailyServer) handleNew(w http.ResponseWriter, r *http.Request) {
	owner, userID := d.srv.ownerOf(w, r)
	ds := d.seedNow()
	if ds.word == "" {
		http.Error(w, `{"error":"no_starters"}`, http.StatusServiceUnavailable)
		return
	}

	// Check if already played (persisted in DB).
	if played, err := d.store.AlreadyPlayed(r.Context(), owner, ds.date); err == nil && played {
		writeJSON(w, http.StatusOK, dailyNewRes{Date: ds.date, Played: true})
		return
	}

	sess, created, err := d.sessionFor(r.Context(), owner, userID, ds)
	if err != nil {
		writeGameError(w, err, nil)
		return
	}
	snap := sess.engine.Snapshot()
	if created {
		snap, err = sess.engine.Start(r.Context(), ds.word)
		if err != nil {
			d.drop(r.Context(), sess)
			writeGameError(w, err, nil)
			return
		}
	}
	v := sess.view(snap)
	writeJSON(w, http.StatusOK, dailyNewRes{
		GameID: sess.id,
		Date:   ds.date,
		Played: snap.Status == game.StatusFinished,
		State:  &v,
	})
}

// sessionFor returns the owner's live session for ds.date, creating it when
// there is none. created reports whether the caller must start the round.
func (d *dailyServer) sessionFor(ctx context.Context, owner, userID string, ds dailySeed) (*session, bool, error) {
	key := owner + "|" + ds.date
	d.mu.Lock()
	defer d.mu.Unlock()
	if id, ok := d.active[key]; ok {
		if sess, err := d.srv.sessions.Get(ctx, id); err == nil {
			return sess, false, nil
		}
		delete(d.active, key)
	}
	sess, err := d.srv.newSession(ctx, owner, userID, &ds)
	if err != nil {
		return nil, false, err
	}
	d.active[key] = sess.id
	return sess, true, nil
}

// drop forgets a session whose round never started.
func (d *dailyServer) drop(ctx context.Context, sess *session) {
	_ = d.srv.sessions.Delete(ctx, sess.id)
	d.forget(sess)
	sess.close()
}

// -----------------------------------------------------------------------------
// /daily/leaderboard

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (d *dailyServer) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = d.srv.todayKey()
	}
	rows, err := d.store.Leaderboard(r.Context(), date, 20)
	if err != nil {
		http.Error(w, `{"error":"server_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
