// internal/httpserver/session.go
//
// A session is one player's engine plus the plumbing around it: the countdown
// ticker, the websocket subscribers and the persistence hooks run when a
// round finishes.

package httpserver

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amithcabraal/qw-chain-20/internal/clock"
	"github.com/amithcabraal/qw-chain-20/internal/daily"
	"github.com/amithcabraal/qw-chain-20/internal/game"
	"github.com/amithcabraal/qw-chain-20/internal/history"
	"github.com/amithcabraal/qw-chain-20/internal/words"
)

// Session modes.
const (
	modeNormal = "normal"
	modeDaily  = daily.Mode
)

type session struct {
	id     string
	owner  string // user ID or anonymous ID
	userID string // empty for guests
	mode   string
	engine *game.Engine
	tick   time.Duration

	// daily sessions only
	date      string
	wordIndex int

	mu     sync.Mutex // guards ticker, phase, subs, closed
	ticker *clock.Ticker
	phase  tickPhase
	subs   map[*subscriber]struct{}
	closed bool
}

// tickPhase identifies one countdown: a new round or a longer chain resets
// the timer to a full RoundSeconds, and the ticker is restarted to match.
type tickPhase struct {
	round uint64
	links int
}

// dailySeed pins a session to a daily challenge.
type dailySeed struct {
	date      string
	wordIndex int
	word      string
}

// newSession builds a session and registers it. ds is nil for normal play.
func (s *Server) newSession(ctx context.Context, owner, userID string, ds *dailySeed) (*session, error) {
	sess := &session{
		owner:  owner,
		userID: userID,
		mode:   modeNormal,
		tick:   s.cfg.TickInterval,
		subs:   make(map[*subscriber]struct{}),
	}
	if sess.tick <= 0 {
		sess.tick = time.Second
	}
	if ds != nil {
		sess.mode = modeDaily
		sess.date = ds.date
		sess.wordIndex = ds.wordIndex
	}
	sess.engine = game.New(s.lookup, game.Options{
		Selector: s.selector,
		Recorder: history.Recorder(s.history, owner, sess.mode, func(sum history.Summary) { s.roundSaved(sess, sum) }),
		Starter:  words.RandomStarter,
		Observer: sess.observe,
		Strict:   s.cfg.StrictGuesses,
	})
	sess.id = sess.engine.ID
	if err := s.sessions.Save(ctx, sess.id, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// observe runs after every engine state change. It keeps the ticker running
// exactly while a round is live and pushes the new view to subscribers.
func (ss *session) observe(snap game.Snapshot) {
	ss.mu.Lock()
	// Read the state under ss.mu so the last observer to run sees the latest state.
	cur := ss.engine.Snapshot()
	switch cur.Status {
	case game.StatusPlaying:
		phase := tickPhase{round: cur.Round, links: len(cur.Chain)}
		if !ss.closed && (ss.ticker == nil || ss.phase != phase) {
			ss.ticker.Stop()
			ss.phase = phase
			ss.startTickerLocked()
		}
	case game.StatusLoading:
	default:
		ss.ticker.Stop()
		ss.ticker = nil
	}
	subs := ss.subscribersLocked()
	ss.mu.Unlock()

	if len(subs) == 0 {
		return
	}
	msg, err := json.Marshal(wsMessage{Type: "state", State: ss.view(snap)})
	if err != nil {
		log.Warn().Err(err).Str("game", ss.id).Msg("encode state")
		return
	}
	for _, sub := range subs {
		sub.send(msg)
	}
}

// startTickerLocked replaces the ticker. A stopped ticker that already fired
// sees it is no longer current and skips its tick.
func (ss *session) startTickerLocked() {
	var t *clock.Ticker
	t = clock.Start(ss.tick, func() bool {
		ss.mu.Lock()
		live := ss.ticker == t
		ss.mu.Unlock()
		if !live {
			return false
		}
		ss.engine.Tick()
		return true
	})
	ss.ticker = t
}

func (ss *session) subscribersLocked() []*subscriber {
	out := make([]*subscriber, 0, len(ss.subs))
	for sub := range ss.subs {
		out = append(out, sub)
	}
	return out
}

// subscribe registers sub; false if the session is already closed.
func (ss *session) subscribe(sub *subscriber) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	if ss.closed {
		return false
	}
	ss.subs[sub] = struct{}{}
	return true
}

func (ss *session) unsubscribe(sub *subscriber) {
	ss.mu.Lock()
	delete(ss.subs, sub)
	ss.mu.Unlock()
	sub.close()
}

// close stops the ticker and disconnects subscribers. The session must not be
// used afterwards.
func (ss *session) close() {
	ss.mu.Lock()
	ss.closed = true
	ss.ticker.Stop()
	ss.ticker = nil
	subs := ss.subscribersLocked()
	ss.subs = make(map[*subscriber]struct{})
	ss.mu.Unlock()
	for _, sub := range subs {
		sub.close()
	}
}

// ticking reports whether the countdown goroutine is running (tests).
func (ss *session) ticking() bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.ticker != nil
}

func (ss *session) currentTicker() *clock.Ticker {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	return ss.ticker
}

func (ss *session) view(snap game.Snapshot) roundView {
	return newRoundView(ss.id, ss.mode, snap)
}

// roundSaved runs after a finished round reached history: account stats for
// signed-in players and the daily result for daily rounds.
func (s *Server) roundSaved(sess *session, sum history.Summary) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if sess.userID != "" {
		if err := s.bumpStats(ctx, sess.userID, sum.Score, len(sum.Chain)); err != nil {
			log.Warn().Err(err).Str("user", sess.userID).Msg("bump stats")
		}
	}
	if sess.mode == modeDaily && s.db != nil {
		ok, err := s.daily.store.InsertResult(ctx, daily.Result{
			Owner:       sess.owner,
			Date:        sess.date,
			WordIndex:   sess.wordIndex,
			StartWord:   sum.StartWord,
			Score:       sum.Score,
			ChainLength: len(sum.Chain),
		})
		if err != nil {
			log.Warn().Err(err).Str("owner", sess.owner).Msg("insert daily result")
		} else if !ok {
			log.Debug().Str("owner", sess.owner).Str("date", sess.date).Msg("daily result already recorded")
		}
	}
}
