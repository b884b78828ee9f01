// Package boardcollab is a reference implementation of the
// boardgraph.Collab port (§6) over a websocket, broadcasting cursor,
// selection, viewport, and drawing-preview updates between peers
// editing the same board. It's the networking sibling of
// boardgraph.MemoryStore: a real deployment could swap either out for
// a persistent store or a different transport without boardinput
// knowing the difference.
package boardcollab

import (
	"oss.terrastruct.com/boardlogic/lib/geo"
)

// Kind is the wire discriminator for a collaboration message.
type Kind string

const (
	KindCursor          Kind = "update_cursor"
	KindSelected        Kind = "update_selected"
	KindViewport        Kind = "update_viewport"
	KindFollowingUser   Kind = "update_following_user"
	KindDrawingElement  Kind = "update_drawing_element"
)

// Message is the single envelope every peer update travels in. Only
// the field matching Kind is populated; the others are left at their
// zero value and omitted on the wire, except Pan, a struct, which is
// always encoded.
type Message struct {
	Kind Kind   `json:"kind"`
	From string `json:"from"`

	X, Y float64  `json:"x,omitempty"`
	IDs  []string `json:"ids,omitempty"`

	Pan  geo.Point `json:"pan,omitempty"`
	Zoom float64   `json:"zoom,omitempty"`

	FollowingUserID string `json:"followingUserId,omitempty"`

	// DrawingElement is the serialized live-draw preview element
	// (encoded with boardgraph.SerializeElements, a one-element
	// slice), or nil to clear the peer's preview.
	DrawingElement []byte `json:"drawingElement,omitempty"`
}
