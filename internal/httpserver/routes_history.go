// internal/httpserver/routes_history.go
//
// Finished-round history of the caller (user or anonymous cookie):
//   - GET    /history → newest first, at most HISTORY_LIMIT entries
//   - DELETE /history → forget all of it
//
// Replaying a round is POST /game/new with the entry's startWord as seed.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/amithcabraal/qw-chain-20/internal/history"
)

func (s *Server) mountHistory(r chi.Router) {
	r.Get("/history", s.handleListHistory)
	r.Delete("/history", s.handleClearHistory)
}

type historyRes struct {
	Entries []history.Summary `json:"entries"`
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	owner, _ := s.ownerOf(w, r)
	list, err := s.history.List(r.Context(), owner)
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("list history")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, historyRes{Entries: list})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	owner, _ := s.ownerOf(w, r)
	if err := s.history.Clear(r.Context(), owner); err != nil {
		log.Error().Err(err).Str("owner", owner).Msg("clear history")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
