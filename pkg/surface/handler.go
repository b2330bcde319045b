// Package surface is the mirror state machine inside the isolated
// rendering surface. It is driven only by validated command messages,
// never by DOM events from the host page: the surface may run in a
// separate realm with no reliable access to host-page key events, and
// must not trust them anyway.
package surface

import (
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/protocol"
)

// Mode is the surface-side overlay mode, mapping 1:1 to the host
// controller's states.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSearching
	ModeAdding
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeSearching:
		return "SEARCHING"
	case ModeAdding:
		return "ADDING"
	}
	return "UNKNOWN"
}

// Notifier posts a payload back to the host context. bridge.Port
// satisfies it.
type Notifier interface {
	Post(payload json.RawMessage) bool
}

// Config wires a Handler.
type Config struct {
	// Notify carries close notifications back to the host.
	Notify Notifier
	// OnModeChange is invoked after every transition with the new mode
	// and the page info carried by the command (zero for idle). The UI
	// collaborator renders from it.
	OnModeChange func(mode Mode, info core.PageInfo)
	Logger       *slog.Logger
}

// Handler receives validated commands and drives the local overlay
// mode.
type Handler struct {
	mu       sync.Mutex
	mode     Mode
	pageInfo core.PageInfo
	notify   Notifier
	onChange func(Mode, core.PageInfo)
	logger   *slog.Logger
}

// NewHandler creates a handler in ModeIdle.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		mode:     ModeIdle,
		notify:   cfg.Notify,
		onChange: cfg.OnModeChange,
		logger:   cfg.Logger,
	}
}

// Mode returns the current overlay mode.
func (h *Handler) Mode() Mode {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.mode
}

// PageInfo returns the host page snapshot from the last open command.
// The add form prefills from it.
func (h *Handler) PageInfo() core.PageInfo {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pageInfo
}

// HandleCommand validates and applies a raw payload from the host.
// Unrecognized or malformed payloads are dropped with no reply — the
// host page must learn nothing from a rejected probe. A CLOSE while
// already idle is a no-op and does not emit a notification.
func (h *Handler) HandleCommand(raw json.RawMessage) {
	msg, ok := protocol.DecodeHostToSurface(raw)
	if !ok {
		if h.logger != nil {
			h.logger.Debug("dropped unrecognized command")
		}
		return
	}

	switch m := msg.(type) {
	case protocol.OpenSearch:
		h.transition(ModeSearching, m.PageInfo)
	case protocol.OpenAdd:
		h.transition(ModeAdding, m.PageInfo)
	case protocol.Close:
		h.mu.Lock()
		if h.mode == ModeIdle {
			h.mu.Unlock()
			return
		}
		h.mode = ModeIdle
		h.pageInfo = core.PageInfo{}
		h.mu.Unlock()
		h.changed(ModeIdle, core.PageInfo{})
	}
}

// RequestClose is the local close path: cancel button, escape pressed
// inside the surface, outside click. It transitions to idle and posts
// CLOSE_OVERLAY exactly once so the host controller stays
// synchronized. Requesting close while idle does nothing and posts
// nothing.
func (h *Handler) RequestClose() {
	h.mu.Lock()
	if h.mode == ModeIdle {
		h.mu.Unlock()
		return
	}
	h.mode = ModeIdle
	h.pageInfo = core.PageInfo{}
	h.mu.Unlock()

	raw, err := protocol.EncodeSurfaceToHost(protocol.CloseOverlay{})
	if err == nil && h.notify != nil {
		h.notify.Post(raw)
	}
	h.changed(ModeIdle, core.PageInfo{})
}

func (h *Handler) transition(target Mode, info core.PageInfo) {
	h.mu.Lock()
	h.mode = target
	h.pageInfo = info
	h.mu.Unlock()
	h.changed(target, info)
	if h.logger != nil {
		h.logger.Debug("surface mode changed", "mode", target.String())
	}
}

func (h *Handler) changed(mode Mode, info core.PageInfo) {
	if h.onChange != nil {
		h.onChange(mode, info)
	}
}
