// Package bridge carries raw message payloads between the two
// execution contexts. It models a postMessage-style channel: delivery
// is fire-and-forget with no reply correlation, and messages posted
// from one end arrive at the other end in FIFO order.
package bridge

import (
	"encoding/json"
	"sync"
)

// DefaultBuffer is the per-direction queue depth used by New when the
// caller passes zero.
const DefaultBuffer = 16

type link struct {
	mu            sync.Mutex
	done          bool
	hostToSurface chan json.RawMessage
	surfaceToHost chan json.RawMessage
}

// Port is one end of a bridge. Post sends to the peer; Messages
// receives what the peer posted.
type Port struct {
	link *link
	out  chan json.RawMessage
	in   chan json.RawMessage
}

// New creates a connected pair of ports. The first is conventionally
// held by the host page context, the second by the rendering surface.
func New(buffer int) (host, surface *Port) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}

	l := &link{
		hostToSurface: make(chan json.RawMessage, buffer),
		surfaceToHost: make(chan json.RawMessage, buffer),
	}

	host = &Port{link: l, out: l.hostToSurface, in: l.surfaceToHost}
	surface = &Port{link: l, out: l.surfaceToHost, in: l.hostToSurface}
	return host, surface
}

// Post enqueues a payload for the peer. It never blocks: when the peer
// queue is full or the bridge is closed the payload is dropped, which
// is the posture a real cross-realm postMessage forces on the sender.
// The return reports whether the payload was enqueued.
func (p *Port) Post(payload json.RawMessage) bool {
	p.link.mu.Lock()
	defer p.link.mu.Unlock()

	if p.link.done {
		return false
	}

	select {
	case p.out <- payload:
		return true
	default:
		return false
	}
}

// Messages returns the receive channel for this end. The channel is
// closed when the bridge closes.
func (p *Port) Messages() <-chan json.RawMessage {
	return p.in
}

// Close tears down both directions. Either port may close the bridge;
// closing twice is a no-op.
func (p *Port) Close() {
	p.link.mu.Lock()
	defer p.link.mu.Unlock()

	if p.link.done {
		return
	}
	p.link.done = true
	close(p.link.hostToSurface)
	close(p.link.surfaceToHost)
}
