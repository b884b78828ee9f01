package boardcollab

import (
	"context"

	"cdr.dev/slog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

// sendBuffer bounds how many unsent messages pile up behind a slow
// peer before Hub.Broadcast starts dropping updates for it.
const sendBuffer = 16

// Peer is one connected board session's websocket endpoint. writeLoop
// runs on its own goroutine and ends when unregister closes send;
// readLoop runs on the goroutine that called run and ends when the
// connection closes or ctx is done.
type Peer struct {
	ID   string
	hub  *Hub
	conn *websocket.Conn
	log  slog.Logger
	send chan Message

	// onMessage is invoked from readLoop for every inbound message
	// before it's rebroadcast, letting the server apply a peer's
	// update to its own local Collab mirror (Server.OnMessage).
	onMessage func(Message)
}

func newPeer(id string, hub *Hub, conn *websocket.Conn, log slog.Logger, onMessage func(Message)) *Peer {
	return &Peer{
		ID:        id,
		hub:       hub,
		conn:      conn,
		log:       log,
		send:      make(chan Message, sendBuffer),
		onMessage: onMessage,
	}
}

// run registers the peer, starts its write loop, and blocks in the
// read loop until the connection closes or ctx is done.
func (p *Peer) run(ctx context.Context) {
	p.hub.register(p)
	go p.writeLoop(ctx)
	p.readLoop(ctx)
	p.hub.unregister(p)
}

func (p *Peer) readLoop(ctx context.Context) {
	for {
		var msg Message
		if err := wsjson.Read(ctx, p.conn, &msg); err != nil {
			p.log.Debug(ctx, "peer disconnected", slog.F("peer", p.ID), slog.Error(err))
			return
		}
		msg.From = p.ID
		if p.onMessage != nil {
			p.onMessage(msg)
		}
		p.hub.Broadcast(p, msg)
	}
}

func (p *Peer) writeLoop(ctx context.Context) {
	for msg := range p.send {
		if err := wsjson.Write(ctx, p.conn, msg); err != nil {
			p.log.Debug(ctx, "write to peer failed", slog.F("peer", p.ID), slog.Error(err))
			p.conn.Close(websocket.StatusInternalError, "write failed")
			return
		}
	}
}
