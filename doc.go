// Package taskbookmarks is a keyboard-driven bookmark manager core:
// a host-page overlay controller and its isolated rendering-surface
// counterpart, connected by a narrow validated message protocol, over
// a locally persisted task/bookmark store with staleness-aware
// caching.
//
// The typical embedding creates a client over a store location and a
// session for the two-sided overlay state machine:
//
//	client, err := taskbookmarks.New("~/.taskbm")
//	session := taskbookmarks.NewSession(ctx, taskbookmarks.SessionConfig{
//		PageInfo: currentPage,
//	})
//	session.Host.HandleKey(overlay.KeyEvent{Key: "k", Meta: true})
//
// Storage adapters are pluggable behind core.Store; "fs" (JSON files,
// watchable) and "bolt" (bbolt) ship in pkg/adapters.
package taskbookmarks
