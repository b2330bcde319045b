// Package overlay owns the host-page side of the overlay: keyboard
// shortcut capture, the visibility state machine, and outbound command
// dispatch to the rendering surface. It is the single source of truth
// for "is the overlay visible, and in which mode" on the host side;
// every outbound command goes through its transitions.
package overlay

import (
	"encoding/json"
	"log/slog"
	"strings"
	"sync"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/protocol"
)

// State is the controller's visibility state.
type State int

const (
	StateHidden State = iota
	StateSearch
	StateAdd
)

func (s State) String() string {
	switch s {
	case StateHidden:
		return "HIDDEN"
	case StateSearch:
		return "VISIBLE_SEARCH"
	case StateAdd:
		return "VISIBLE_ADD"
	}
	return "UNKNOWN"
}

// KeyEvent is the distilled keyboard event the embedder captures from
// the host page. Key carries the key value ("k", "Escape"); matching
// on it is case-insensitive.
type KeyEvent struct {
	Key   string
	Meta  bool
	Ctrl  bool
	Shift bool
}

// primary reports whether the platform primary modifier is held.
func (e KeyEvent) primary() bool {
	return e.Meta || e.Ctrl
}

// Sender posts a payload toward the rendering surface. bridge.Port
// satisfies it.
type Sender interface {
	Post(payload json.RawMessage) bool
}

// Config wires a Controller.
type Config struct {
	// Send carries commands to the surface.
	Send Sender
	// PageInfo snapshots the host page when an open command is issued.
	PageInfo func() core.PageInfo
	// OnVisibility is invoked on every hidden/visible flip so the
	// embedder can sync the surface's pointer-events and opacity. The
	// surface must not be interactive while hidden.
	OnVisibility func(visible bool)
	Logger       *slog.Logger
}

// Controller is the host-side state machine.
type Controller struct {
	mu           sync.Mutex
	state        State
	send         Sender
	pageInfo     func() core.PageInfo
	onVisibility func(bool)
	logger       *slog.Logger
}

// NewController creates a controller in StateHidden.
func NewController(cfg Config) *Controller {
	pageInfo := cfg.PageInfo
	if pageInfo == nil {
		pageInfo = func() core.PageInfo { return core.PageInfo{} }
	}
	return &Controller{
		state:        StateHidden,
		send:         cfg.Send,
		pageInfo:     pageInfo,
		onVisibility: cfg.OnVisibility,
		logger:       cfg.Logger,
	}
}

// State returns the current visibility state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleKey feeds a captured keyboard event through the state machine.
// It returns true when the event was consumed, in which case the
// embedder must suppress the DOM default action: Mod+K and Mod+Shift+K
// collide with browser and OS bindings.
//
// Mod+K opens search, Mod+Shift+K opens add; either shortcut while the
// other overlay is open switches modes directly, re-emitting the new
// open command with no intermediate close. The matching shortcut while
// already open is an idempotent no-op. Escape closes, and is only
// consumed while something is visible.
func (c *Controller) HandleKey(ev KeyEvent) bool {
	key := strings.ToLower(ev.Key)

	switch {
	case key == "k" && ev.primary() && !ev.Shift:
		c.open(StateSearch)
		return true
	case key == "k" && ev.primary() && ev.Shift:
		c.open(StateAdd)
		return true
	case key == "escape":
		return c.closeVisible()
	}
	return false
}

// Close hides the overlay and tells the surface, regardless of mode.
// This is the background-click path; closing while already hidden is a
// no-op.
func (c *Controller) Close() {
	c.closeVisible()
}

// HandleNotification feeds a raw payload received from the surface
// through validation. CLOSE_OVERLAY hides the overlay without echoing
// a CLOSE back (the surface already closed itself); while hidden it is
// a no-op. Malformed payloads are dropped silently.
func (c *Controller) HandleNotification(raw json.RawMessage) {
	msg, ok := protocol.DecodeSurfaceToHost(raw)
	if !ok {
		if c.logger != nil {
			c.logger.Debug("dropped unrecognized notification")
		}
		return
	}

	switch msg.(type) {
	case protocol.CloseOverlay:
		c.mu.Lock()
		if c.state == StateHidden {
			c.mu.Unlock()
			return
		}
		c.state = StateHidden
		c.mu.Unlock()
		c.setVisible(false)
	}
}

func (c *Controller) open(target State) {
	c.mu.Lock()
	if c.state == target {
		c.mu.Unlock()
		return
	}
	wasHidden := c.state == StateHidden
	c.state = target
	c.mu.Unlock()

	info := c.pageInfo()
	var cmd protocol.HostToSurface
	if target == StateSearch {
		cmd = protocol.OpenSearch{PageInfo: info}
	} else {
		cmd = protocol.OpenAdd{PageInfo: info}
	}
	c.emit(cmd)

	if wasHidden {
		c.setVisible(true)
	}
	if c.logger != nil {
		c.logger.Debug("overlay opened", "state", target.String())
	}
}

func (c *Controller) closeVisible() bool {
	c.mu.Lock()
	if c.state == StateHidden {
		c.mu.Unlock()
		return false
	}
	c.state = StateHidden
	c.mu.Unlock()

	c.emit(protocol.Close{})
	c.setVisible(false)
	if c.logger != nil {
		c.logger.Debug("overlay closed")
	}
	return true
}

func (c *Controller) emit(cmd protocol.HostToSurface) {
	raw, err := protocol.EncodeHostToSurface(cmd)
	if err != nil {
		if c.logger != nil {
			c.logger.Error("encode command failed", "error", err)
		}
		return
	}
	if c.send != nil && !c.send.Post(raw) && c.logger != nil {
		c.logger.Debug("command dropped, surface queue unavailable")
	}
}

func (c *Controller) setVisible(visible bool) {
	if c.onVisibility != nil {
		c.onVisibility(visible)
	}
}
