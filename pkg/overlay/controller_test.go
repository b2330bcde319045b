package overlay

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/protocol"
)

// recordingSender captures posted commands decoded back to typed form.
type recordingSender struct {
	sent []protocol.HostToSurface
}

func (r *recordingSender) Post(payload json.RawMessage) bool {
	msg, ok := protocol.DecodeHostToSurface(payload)
	if !ok {
		panic("controller emitted an invalid command")
	}
	r.sent = append(r.sent, msg)
	return true
}

func (r *recordingSender) reset() { r.sent = nil }

func testPageInfo() core.PageInfo {
	return core.PageInfo{URL: "https://host.test/page", Title: "Host Page"}
}

func newTestController() (*Controller, *recordingSender, *[]bool) {
	sender := &recordingSender{}
	var flips []bool
	c := NewController(Config{
		Send:         sender,
		PageInfo:     testPageInfo,
		OnVisibility: func(v bool) { flips = append(flips, v) },
	})
	return c, sender, &flips
}

func searchKey() KeyEvent { return KeyEvent{Key: "k", Meta: true} }
func addKey() KeyEvent    { return KeyEvent{Key: "K", Ctrl: true, Shift: true} }
func escapeKey() KeyEvent { return KeyEvent{Key: "Escape"} }

func TestController_OpenSearch(t *testing.T) {
	c, sender, flips := newTestController()

	consumed := c.HandleKey(searchKey())
	assert.True(t, consumed, "shortcut must be consumed so the embedder suppresses the default action")
	assert.Equal(t, StateSearch, c.State())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, protocol.OpenSearch{PageInfo: testPageInfo()}, sender.sent[0])
	assert.Equal(t, []bool{true}, *flips)
}

func TestController_OpenAddWithEitherModifier(t *testing.T) {
	for _, ev := range []KeyEvent{
		{Key: "k", Meta: true, Shift: true},
		{Key: "K", Ctrl: true, Shift: true},
	} {
		c, sender, _ := newTestController()
		assert.True(t, c.HandleKey(ev))
		assert.Equal(t, StateAdd, c.State())
		require.Len(t, sender.sent, 1)
		assert.Equal(t, protocol.OpenAdd{PageInfo: testPageInfo()}, sender.sent[0])
	}
}

func TestController_ModeSwitchEmitsOnlyNewOpen(t *testing.T) {
	c, sender, flips := newTestController()

	c.HandleKey(searchKey())
	sender.reset()

	consumed := c.HandleKey(addKey())
	assert.True(t, consumed)
	assert.Equal(t, StateAdd, c.State())

	require.Len(t, sender.sent, 1, "switching modes emits exactly one command")
	assert.Equal(t, protocol.OpenAdd{PageInfo: testPageInfo()}, sender.sent[0])
	assert.Equal(t, []bool{true}, *flips, "no hidden/visible flip on a mode switch")

	// And back.
	sender.reset()
	c.HandleKey(searchKey())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, protocol.OpenSearch{PageInfo: testPageInfo()}, sender.sent[0])
}

func TestController_ReentryIsIdempotent(t *testing.T) {
	c, sender, _ := newTestController()

	c.HandleKey(searchKey())
	sender.reset()

	consumed := c.HandleKey(searchKey())
	assert.True(t, consumed, "the shortcut still belongs to us while open")
	assert.Equal(t, StateSearch, c.State())
	assert.Empty(t, sender.sent, "no re-emit on same-state shortcut")
}

func TestController_EscapeCloses(t *testing.T) {
	c, sender, flips := newTestController()

	c.HandleKey(addKey())
	sender.reset()

	consumed := c.HandleKey(escapeKey())
	assert.True(t, consumed)
	assert.Equal(t, StateHidden, c.State())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, protocol.Close{}, sender.sent[0])
	assert.Equal(t, []bool{true, false}, *flips)
}

func TestController_EscapeWhileHiddenNotConsumed(t *testing.T) {
	c, sender, _ := newTestController()

	consumed := c.HandleKey(escapeKey())
	assert.False(t, consumed, "escape belongs to the page while the overlay is hidden")
	assert.Empty(t, sender.sent)
}

func TestController_UnrelatedKeysIgnored(t *testing.T) {
	c, sender, _ := newTestController()

	assert.False(t, c.HandleKey(KeyEvent{Key: "k"}), "no modifier")
	assert.False(t, c.HandleKey(KeyEvent{Key: "j", Meta: true}))
	assert.False(t, c.HandleKey(KeyEvent{Key: "Enter", Ctrl: true}))
	assert.Empty(t, sender.sent)
	assert.Equal(t, StateHidden, c.State())
}

func TestController_BackgroundClickClose(t *testing.T) {
	c, sender, _ := newTestController()

	c.HandleKey(searchKey())
	sender.reset()

	c.Close()
	assert.Equal(t, StateHidden, c.State())
	require.Len(t, sender.sent, 1)
	assert.Equal(t, protocol.Close{}, sender.sent[0])

	// Closing again is a no-op.
	sender.reset()
	c.Close()
	assert.Empty(t, sender.sent)
}

func TestController_CloseNotificationFromSurface(t *testing.T) {
	c, sender, flips := newTestController()

	c.HandleKey(searchKey())
	sender.reset()

	raw, err := protocol.EncodeSurfaceToHost(protocol.CloseOverlay{})
	require.NoError(t, err)
	c.HandleNotification(raw)

	assert.Equal(t, StateHidden, c.State())
	assert.Empty(t, sender.sent, "the surface already closed itself; no CLOSE echo")
	assert.Equal(t, []bool{true, false}, *flips)
}

func TestController_CloseNotificationWhileHiddenIsNoop(t *testing.T) {
	c, sender, flips := newTestController()

	raw, err := protocol.EncodeSurfaceToHost(protocol.CloseOverlay{})
	require.NoError(t, err)
	c.HandleNotification(raw)

	assert.Equal(t, StateHidden, c.State())
	assert.Empty(t, sender.sent)
	assert.Empty(t, *flips)
}

func TestController_MalformedNotificationDropped(t *testing.T) {
	c, sender, _ := newTestController()

	c.HandleKey(searchKey())
	sender.reset()

	c.HandleNotification(json.RawMessage(`{"type":"CLOSE_OVERLAY","extra":1}`))
	c.HandleNotification(json.RawMessage(`not json`))
	c.HandleNotification(json.RawMessage(`{"type":"CLOSE"}`))

	assert.Equal(t, StateSearch, c.State(), "malformed notifications must not drive the state machine")
	assert.Empty(t, sender.sent)
}

func TestController_ScenarioSearchToAdd(t *testing.T) {
	// Controller in VISIBLE_SEARCH receives the add shortcut: state
	// becomes VISIBLE_ADD, exactly one OPEN_ADD, zero CLOSE.
	c, sender, _ := newTestController()
	c.HandleKey(searchKey())
	sender.reset()

	c.HandleKey(addKey())

	assert.Equal(t, StateAdd, c.State())
	opens, closes := 0, 0
	for _, msg := range sender.sent {
		switch msg.(type) {
		case protocol.OpenAdd:
			opens++
		case protocol.Close:
			closes++
		}
	}
	assert.Equal(t, 1, opens)
	assert.Equal(t, 0, closes)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "HIDDEN", StateHidden.String())
	assert.Equal(t, "VISIBLE_SEARCH", StateSearch.String())
	assert.Equal(t, "VISIBLE_ADD", StateAdd.String())
}
