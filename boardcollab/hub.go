package boardcollab

import "sync"

// Hub fans a Message out to every connected peer except its sender.
// It owns no board state; boardgraph.MemoryStore (or whatever Store
// implementation the server is wired to) remains the single source of
// truth, same as the in-process Controller.
type Hub struct {
	mu    sync.RWMutex
	peers map[*Peer]struct{}
}

// NewHub constructs an empty Hub.
func NewHub() *Hub {
	return &Hub{peers: make(map[*Peer]struct{})}
}

func (h *Hub) register(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p] = struct{}{}
}

func (h *Hub) unregister(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.peers, p)
	close(p.send)
}

// Broadcast enqueues msg onto every peer's send buffer except the
// sender's own connection. A peer whose send buffer is full misses
// this message (it stays connected) rather than blocking the
// broadcaster, since cursor/viewport
// updates are inherently last-value-wins and a slow peer shouldn't
// stall everyone else.
func (h *Hub) Broadcast(sender *Peer, msg Message) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for p := range h.peers {
		if p == sender {
			continue
		}
		select {
		case p.send <- msg:
		default:
		}
	}
}

// PeerCount reports the number of currently connected peers.
func (h *Hub) PeerCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}
