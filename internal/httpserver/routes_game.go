// internal/httpserver/routes_game.go
//
// HTTP routes for free play:
//   - POST /game/new      → start a session from a seed (or a random starter)
//   - GET  /game/{id}     → current round view
//   - POST /game/guess    → submit a whole word, or the vowels of the masked word
//   - POST /game/restart  → abandon the round and start over (replay via seed)
//
// Sessions belong to whoever created them (user ID or anonymous cookie).

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

// errDailyLocked is returned when a daily round is asked to restart.
var errDailyLocked = errors.New("daily round cannot be restarted")

func (s *Server) mountGame(r chi.Router) {
	r.Post("/game/new", s.handleNewGame)
	r.Post("/game/guess", s.handleGuess)
	r.Post("/game/restart", s.handleRestart)
	r.Get("/game/{id}", s.handleGetGame)
}

// newGameReq/Res payloads for POST /game/new.
type newGameReq struct {
	Seed string `json:"seed"` // optional; random starter when empty
}
type newGameRes struct {
	GameID string    `json:"gameId"`
	State  roundView `json:"state"`
}

// handleNewGame creates a session and starts its first round.
// A failed start leaves nothing behind.
func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	owner, userID := s.ownerOf(w, r)
	sess, err := s.newSession(r.Context(), owner, userID, nil)
	if err != nil {
		writeGameError(w, err, nil)
		return
	}
	snap, err := sess.engine.Start(r.Context(), req.Seed)
	if err != nil {
		_ = s.sessions.Delete(r.Context(), sess.id)
		sess.close()
		writeGameError(w, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.id, State: sess.view(snap)})
}

// handleGetGame returns the current view of a session.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess.view(sess.engine.Snapshot()))
}

// guessReq/Res payloads for POST /game/guess. Exactly one of Guess or Vowels
// is expected; Vowels fills the blanks of the masked word left to right.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
	Vowels string `json:"vowels"`
}
type guessRes struct {
	Correct bool      `json:"correct"`
	State   roundView `json:"state"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.sessionFor(w, r, req.GameID)
	if !ok {
		return
	}
	snap, err := sess.submit(r.Context(), req.Guess, req.Vowels)
	if err != nil {
		v := sess.view(snap)
		writeGameError(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, guessRes{Correct: true, State: sess.view(snap)})
}

// errEmptyGuess is returned when neither a word nor vowels were sent.
var errEmptyGuess = errors.New("empty guess")

// submit turns a word or a vowel fill into a guess and hands it to the engine.
func (ss *session) submit(ctx context.Context, guess, vowels string) (game.Snapshot, error) {
	if strings.TrimSpace(vowels) != "" {
		snap := ss.engine.Snapshot()
		if snap.Status != game.StatusPlaying {
			return snap, game.ErrNotPlaying
		}
		filled, err := words.Fill(snap.Target, vowels)
		if err != nil {
			return snap, err
		}
		guess = filled
	}
	if strings.TrimSpace(guess) == "" {
		return ss.engine.Snapshot(), errEmptyGuess
	}
	return ss.engine.SubmitGuess(ctx, guess)
}

// restartReq payload for POST /game/restart.
type restartReq struct {
	GameID string `json:"gameId"`
	Seed   string `json:"seed"`
}

// handleRestart starts a fresh round in an existing session. Daily sessions
// are locked to their one round.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	var req restartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	sess, ok := s.sessionFor(w, r, req.GameID)
	if !ok {
		return
	}
	if sess.mode == modeDaily {
		v := sess.view(sess.engine.Snapshot())
		writeGameError(w, errDailyLocked, &v)
		return
	}
	snap, err := sess.engine.Restart(r.Context(), req.Seed)
	if err != nil {
		v := sess.view(snap)
		writeGameError(w, err, &v)
		return
	}
	writeJSON(w, http.StatusOK, newGameRes{GameID: sess.id, State: sess.view(snap)})
}

// sessionFor loads a session the caller owns, writing 404/403 otherwise.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request, id string) (*session, bool) {
	if id == "" {
		http.Error(w, `{"error":"missing_game_id"}`, http.StatusBadRequest)
		return nil, false
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	if !s.owns(r, sess) {
		http.Error(w, `{"error":"forbidden"}`, http.StatusForbidden)
		return nil, false
	}
	return sess, true
}

// owns reports whether the request comes from the session's owner, either as
// the signed-in user or through the anonymous cookie the session started with.
func (s *Server) owns(r *http.Request, sess *session) bool {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil && me.ID == sess.owner {
		return true
	}
	if c, err := r.Cookie(anonCookieName); err == nil && c.Value != "" && c.Value == sess.owner {
		return true
	}
	return false
}
