package boardcollab

import (
	"context"

	"cdr.dev/slog"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"oss.terrastruct.com/boardlogic/boardgraph"
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// ClientCollab implements boardgraph.Collab by dialing a boardcollab
// Server and forwarding every call as a fire-and-forget Message. Its
// methods never block on the network: each send goes through a
// buffered channel drained by its own goroutine, matching the port's
// "the core never blocks on it" contract.
type ClientCollab struct {
	userID string
	conn   *websocket.Conn
	log    slog.Logger
	out    chan Message

	// OnPeerMessage is invoked for every message received from the
	// server (i.e. rebroadcast from another peer), nil to ignore.
	OnPeerMessage func(Message)
}

// DialClientCollab connects to a boardcollab Server at url and starts
// its background send/receive loops. The returned context.CancelFunc
// stops both loops and closes the connection.
func DialClientCollab(ctx context.Context, url, userID string, log slog.Logger) (*ClientCollab, context.CancelFunc, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, nil, err
	}
	runCtx, cancel := context.WithCancel(ctx)
	c := &ClientCollab{
		userID: userID,
		conn:   conn,
		log:    log,
		out:    make(chan Message, sendBuffer),
	}
	go c.sendLoop(runCtx)
	go c.recvLoop(runCtx)
	return c, func() {
		cancel()
		conn.Close(websocket.StatusNormalClosure, "")
	}, nil
}

func (c *ClientCollab) sendLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-c.out:
			if err := wsjson.Write(ctx, c.conn, msg); err != nil {
				c.log.Debug(ctx, "collab send failed", slog.Error(err))
				return
			}
		}
	}
}

func (c *ClientCollab) recvLoop(ctx context.Context) {
	for {
		var msg Message
		if err := wsjson.Read(ctx, c.conn, &msg); err != nil {
			c.log.Debug(ctx, "collab receive ended", slog.Error(err))
			return
		}
		if c.OnPeerMessage != nil {
			c.OnPeerMessage(msg)
		}
	}
}

func (c *ClientCollab) enqueue(msg Message) {
	msg.From = c.userID
	select {
	case c.out <- msg:
	default:
		// Drop rather than block; a stale cursor/viewport update is
		// superseded by the next one anyway.
	}
}

func (c *ClientCollab) UpdateCursor(x, y float64) {
	c.enqueue(Message{Kind: KindCursor, X: x, Y: y})
}

func (c *ClientCollab) UpdateSelected(ids []string) {
	c.enqueue(Message{Kind: KindSelected, IDs: ids})
}

func (c *ClientCollab) UpdateViewport(pan geo.Point, zoom float64) {
	c.enqueue(Message{Kind: KindViewport, Pan: pan, Zoom: zoom})
}

func (c *ClientCollab) UpdateFollowingUser(id string) {
	c.enqueue(Message{Kind: KindFollowingUser, FollowingUserID: id})
}

func (c *ClientCollab) UpdateDrawingElement(e *boardgraph.Element) {
	if e == nil {
		c.enqueue(Message{Kind: KindDrawingElement, DrawingElement: nil})
		return
	}
	encoded, err := boardgraph.SerializeElements([]*boardgraph.Element{e})
	if err != nil {
		c.log.Error(context.Background(), "encode drawing element failed", slog.Error(err))
		return
	}
	c.enqueue(Message{Kind: KindDrawingElement, DrawingElement: encoded})
}

var _ boardgraph.Collab = (*ClientCollab)(nil)
