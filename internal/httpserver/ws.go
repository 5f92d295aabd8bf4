// internal/httpserver/ws.go
//
// Live round feed over WebSocket: GET /game/{id}/ws.
//   - On connect the client receives the current state.
//   - Every engine change (ticks included) is pushed as {"type":"state"}.
//   - The client may send {"type":"guess","guess":"..."} or
//     {"type":"guess","vowels":"..."}; failures come back as {"type":"error"}
//     to that client only, successes arrive as the next state push.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
	wsSendBuffer = 32
)

// wsMessage is every frame the server sends.
type wsMessage struct {
	Type  string    `json:"type"` // state | error
	State roundView `json:"state"`
	Error string    `json:"error,omitempty"`
}

// wsRequest is every frame the server accepts.
type wsRequest struct {
	Type   string `json:"type"`
	Guess  string `json:"guess"`
	Vowels string `json:"vowels"`
}

// subscriber is one connected socket. Writes happen on its own goroutine.
type subscriber struct {
	conn *websocket.Conn
	out  chan []byte
	once sync.Once
	done chan struct{}
}

func newSubscriber(conn *websocket.Conn) *subscriber {
	return &subscriber{conn: conn, out: make(chan []byte, wsSendBuffer), done: make(chan struct{})}
}

// send queues msg; a client too slow to drain its buffer misses frames.
func (sub *subscriber) send(msg []byte) {
	select {
	case <-sub.done:
	case sub.out <- msg:
	default:
		log.Debug().Msg("ws subscriber lagging, frame dropped")
	}
}

func (sub *subscriber) close() {
	sub.once.Do(func() { close(sub.done) })
}

// writeLoop drains the queue and keeps the connection alive with pings.
func (sub *subscriber) writeLoop() {
	ping := time.NewTicker(wsPingPeriod)
	defer func() {
		ping.Stop()
		_ = sub.conn.Close()
	}()
	for {
		select {
		case <-sub.done:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			_ = sub.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-sub.out:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				sub.close()
				return
			}
		case <-ping.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sub.close()
				return
			}
		}
	}
}

// handleWS upgrades the request and attaches it to the session.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.sessionFor(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("game", sess.id).Msg("ws upgrade")
		return
	}

	sub := newSubscriber(conn)
	if !sess.subscribe(sub) {
		_ = conn.Close()
		return
	}
	go sub.writeLoop()
	if msg, err := json.Marshal(wsMessage{Type: "state", State: sess.view(sess.engine.Snapshot())}); err == nil {
		sub.send(msg)
	}

	s.wsReadLoop(sess, sub)
	sess.unsubscribe(sub)
}

// wsReadLoop handles client frames until the connection fails or closes.
func (s *Server) wsReadLoop(sess *session, sub *subscriber) {
	conn := sub.conn
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		var req wsRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("game", sess.id).Msg("ws read")
			}
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		// Every frame counts as activity, so a socket-only player is not swept.
		if _, err := s.sessions.Get(ctx, sess.id); err != nil {
			cancel()
			return
		}
		if req.Type != "guess" {
			cancel()
			s.wsError(sess, sub, "unknown_type")
			continue
		}
		_, err := sess.submit(ctx, req.Guess, req.Vowels)
		cancel()
		if err != nil {
			_, code := errorCode(err)
			s.wsError(sess, sub, code)
		}
	}
}

func (s *Server) wsError(sess *session, sub *subscriber, code string) {
	msg, err := json.Marshal(wsMessage{Type: "error", Error: code, State: sess.view(sess.engine.Snapshot())})
	if err == nil {
		sub.send(msg)
	}
}
