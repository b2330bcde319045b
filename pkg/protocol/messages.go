// Package protocol defines the closed set of message shapes crossing
// the trust boundary between the host page context and the overlay
// rendering surface, and validates untyped payloads at that boundary.
//
// Anything able to post into the host page (including the page's own
// scripts) can address the surface, so every inbound payload is
// structurally validated with rejection by default: unknown types,
// missing fields, wrong field types, and extra fields all fail
// decoding. Rejected payloads are dropped silently by callers; decoding
// never produces an error value to echo back across the boundary.
package protocol

import (
	"github.com/alx-zhu/task-bookmarks/pkg/core"
)

// Wire type discriminators.
const (
	TypeOpenSearch   = "OPEN_SEARCH"
	TypeOpenAdd      = "OPEN_ADD"
	TypeClose        = "CLOSE"
	TypeCloseOverlay = "CLOSE_OVERLAY"
)

// HostToSurface is a command sent from the host page context to the
// rendering surface. The set of implementations is closed.
type HostToSurface interface {
	hostToSurface()
}

// OpenSearch tells the surface to present the search overlay.
type OpenSearch struct {
	PageInfo core.PageInfo
}

// OpenAdd tells the surface to present the add-bookmark overlay.
type OpenAdd struct {
	PageInfo core.PageInfo
}

// Close tells the surface to hide whatever overlay is showing.
type Close struct{}

func (OpenSearch) hostToSurface() {}
func (OpenAdd) hostToSurface()    {}
func (Close) hostToSurface()      {}

// SurfaceToHost is a notification sent from the rendering surface back
// to the host page context.
type SurfaceToHost interface {
	surfaceToHost()
}

// CloseOverlay notifies the host that the surface closed itself
// (cancel button, escape inside the surface, outside click) so the
// host-side controller stays synchronized.
type CloseOverlay struct{}

func (CloseOverlay) surfaceToHost() {}
