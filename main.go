// main.go
//
// Entry point of the word-chain server: loads configuration, opens the
// database, picks the word lookup and history backend, then serves HTTP.

package main

import (
	"database/sql"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/amithcabraal/qw-chain-20/internal/config"
	"github.com/amithcabraal/qw-chain-20/internal/database"
	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/history"
	"github.com/amithcabraal/qw-chain-20/internal/httpserver"
	"github.com/amithcabraal/qw-chain-20/internal/lookup"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(cfg.StarterWordsFile); err != nil {
		log.Fatal().Err(err).Msg("failed to load starter words")
	}

	db, err := database.OpenMigrated(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()

	lk, err := newLookup(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up word lookup")
	}

	srv := httpserver.New(httpserver.Deps{
		Config:  cfg,
		DB:      db,
		Lookup:  lk,
		History: newHistory(cfg, db),
	})
	log.Info().
		Str("port", cfg.Port).
		Str("lookup", cfg.LookupMode).
		Str("history", cfg.HistoryBackend).
		Int("starters", words.Stats()).
		Msg("starting chain server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// newLookup returns the dictionary client, or the embedded thesaurus when
// LOOKUP_MODE=static.
func newLookup(cfg config.Config) (game.Lookup, error) {
	if cfg.LookupMode == config.LookupStatic {
		return lookup.LoadStatic()
	}
	return lookup.NewHTTP(cfg.LookupURL, cfg.LookupTimeout, cfg.LookupRetries), nil
}

func newHistory(cfg config.Config, db *sql.DB) history.Store {
	if cfg.HistoryBackend == config.HistoryMemory {
		return history.NewMemoryStore(cfg.HistoryLimit)
	}
	return history.NewSQLStore(db, cfg.HistoryLimit)
}
