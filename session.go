package taskbookmarks

import (
	"context"
	"log/slog"

	"github.com/aretw0/lifecycle"

	"github.com/alx-zhu/task-bookmarks/pkg/bridge"
	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/overlay"
	"github.com/alx-zhu/task-bookmarks/pkg/surface"
)

// SessionConfig wires a Session.
type SessionConfig struct {
	// PageInfo snapshots the host page for open commands.
	PageInfo func() core.PageInfo
	// OnVisibility mirrors the host controller's hidden/visible flips.
	OnVisibility func(visible bool)
	// OnModeChange mirrors the surface handler's transitions.
	OnModeChange func(mode surface.Mode, info core.PageInfo)
	// Buffer is the per-direction bridge depth (0 for default).
	Buffer int
	Logger *slog.Logger
}

// Session is a fully wired host/surface pair: a controller and a
// handler connected through a bridge, with both message pumps running.
// Embedders feed keyboard events to Host and local close actions to
// Surface; the two state machines keep each other synchronized over
// the validated protocol.
type Session struct {
	Host    *overlay.Controller
	Surface *surface.Handler

	hostPort    *bridge.Port
	surfacePort *bridge.Port
}

// NewSession builds the pair and starts the pumps. The session ends
// when ctx is canceled or Close is called.
func NewSession(ctx context.Context, cfg SessionConfig) *Session {
	hostPort, surfacePort := bridge.New(cfg.Buffer)

	s := &Session{
		hostPort:    hostPort,
		surfacePort: surfacePort,
	}
	s.Host = overlay.NewController(overlay.Config{
		Send:         hostPort,
		PageInfo:     cfg.PageInfo,
		OnVisibility: cfg.OnVisibility,
		Logger:       cfg.Logger,
	})
	s.Surface = surface.NewHandler(surface.Config{
		Notify:       surfacePort,
		OnModeChange: cfg.OnModeChange,
		Logger:       cfg.Logger,
	})

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case raw, ok := <-surfacePort.Messages():
				if !ok {
					return nil
				}
				s.Surface.HandleCommand(raw)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if cfg.Logger != nil {
			cfg.Logger.Error("surface pump panic", "error", err)
		}
	}))

	lifecycle.Go(ctx, func(ctx context.Context) error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case raw, ok := <-hostPort.Messages():
				if !ok {
					return nil
				}
				s.Host.HandleNotification(raw)
			}
		}
	}, lifecycle.WithErrorHandler(func(err error) {
		if cfg.Logger != nil {
			cfg.Logger.Error("host pump panic", "error", err)
		}
	}))

	return s
}

// Close tears down the bridge; both pumps drain and exit.
func (s *Session) Close() {
	s.hostPort.Close()
}
