package boardcollab

import (
	"net/http"
	"strconv"
	"sync/atomic"

	"cdr.dev/slog"
	"nhooyr.io/websocket"
)

// Server upgrades incoming HTTP requests to websocket connections and
// wires each into the Hub. cmd/boardsim -collab mounts it at a single
// path; nothing here is D2-render-specific, it's pure peer fan-out.
type Server struct {
	Hub *Hub
	Log slog.Logger

	// IDGen assigns a peer ID to each new connection; defaults to a
	// counter-based generator if nil.
	IDGen func() string

	// OnMessage, if set, is called for every inbound message from any
	// peer before it's broadcast, letting the caller mirror collab
	// state (e.g. for a server-side spectator view).
	OnMessage func(Message)

	nextID int64
}

// NewServer constructs a Server bound to hub.
func NewServer(hub *Hub, log slog.Logger) *Server {
	return &Server{Hub: hub, Log: log}
}

func (s *Server) newPeerID() string {
	if s.IDGen != nil {
		return s.IDGen()
	}
	return "peer-" + strconv.FormatInt(atomic.AddInt64(&s.nextID, 1), 10)
}

// ServeHTTP implements http.Handler: accept the websocket upgrade and
// block serving that one connection until it disconnects.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // cmd/boardsim is a local dev harness, not a hosted service
	})
	if err != nil {
		s.Log.Error(r.Context(), "websocket accept failed", slog.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "")

	peer := newPeer(s.newPeerID(), s.Hub, conn, s.Log, s.OnMessage)
	peer.run(r.Context())
}
