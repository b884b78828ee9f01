package boardcollab_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"cdr.dev/slog/sloggers/slogtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"oss.terrastruct.com/boardlogic/boardcollab"
)

func newTestServer(t *testing.T) (*httptest.Server, *boardcollab.Hub) {
	t.Helper()
	hub := boardcollab.NewHub()
	srv := boardcollab.NewServer(hub, slogtest.Make(t, nil))
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return ts, hub
}

func dialRaw(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	url := "ws" + ts.URL[len("http"):]
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func TestHubBroadcastsToOtherPeersNotSender(t *testing.T) {
	ts, hub := newTestServer(t)

	a := dialRaw(t, ts)
	b := dialRaw(t, ts)

	// Give the server a moment to register both connections.
	require.Eventually(t, func() bool { return hub.PeerCount() == 2 }, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, wsjson.Write(ctx, a, boardcollab.Message{Kind: boardcollab.KindCursor, X: 3, Y: 4}))

	var got boardcollab.Message
	require.NoError(t, wsjson.Read(ctx, b, &got))
	assert.Equal(t, boardcollab.KindCursor, got.Kind)
	assert.Equal(t, 3.0, got.X)
	assert.Equal(t, 4.0, got.Y)
}

func TestHubPeerCountDropsAfterDisconnect(t *testing.T) {
	ts, hub := newTestServer(t)

	conn := dialRaw(t, ts)
	require.Eventually(t, func() bool { return hub.PeerCount() == 1 }, time.Second, 10*time.Millisecond)

	conn.Close(websocket.StatusNormalClosure, "")
	require.Eventually(t, func() bool { return hub.PeerCount() == 0 }, time.Second, 10*time.Millisecond)
}
