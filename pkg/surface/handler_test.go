package surface

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alx-zhu/task-bookmarks/pkg/core"
	"github.com/alx-zhu/task-bookmarks/pkg/protocol"
)

type recordingNotifier struct {
	sent []protocol.SurfaceToHost
}

func (r *recordingNotifier) Post(payload json.RawMessage) bool {
	msg, ok := protocol.DecodeSurfaceToHost(payload)
	if !ok {
		panic("handler emitted an invalid notification")
	}
	r.sent = append(r.sent, msg)
	return true
}

type modeChange struct {
	mode Mode
	info core.PageInfo
}

func newTestHandler() (*Handler, *recordingNotifier, *[]modeChange) {
	notifier := &recordingNotifier{}
	var changes []modeChange
	h := NewHandler(Config{
		Notify:       notifier,
		OnModeChange: func(m Mode, info core.PageInfo) { changes = append(changes, modeChange{m, info}) },
	})
	return h, notifier, &changes
}

func encodeCommand(t *testing.T, msg protocol.HostToSurface) json.RawMessage {
	t.Helper()
	raw, err := protocol.EncodeHostToSurface(msg)
	require.NoError(t, err)
	return raw
}

func TestHandler_OpenCommands(t *testing.T) {
	h, notifier, changes := newTestHandler()
	info := core.PageInfo{URL: "https://host.test", Title: "Host"}

	h.HandleCommand(encodeCommand(t, protocol.OpenSearch{PageInfo: info}))
	assert.Equal(t, ModeSearching, h.Mode())
	assert.Equal(t, info, h.PageInfo())

	h.HandleCommand(encodeCommand(t, protocol.OpenAdd{PageInfo: info}))
	assert.Equal(t, ModeAdding, h.Mode())

	assert.Empty(t, notifier.sent, "open commands emit no notifications")
	assert.Equal(t, []modeChange{{ModeSearching, info}, {ModeAdding, info}}, *changes)
}

func TestHandler_CloseCommand(t *testing.T) {
	h, notifier, _ := newTestHandler()
	info := core.PageInfo{URL: "https://host.test", Title: "Host"}

	h.HandleCommand(encodeCommand(t, protocol.OpenSearch{PageInfo: info}))
	h.HandleCommand(encodeCommand(t, protocol.Close{}))

	assert.Equal(t, ModeIdle, h.Mode())
	assert.Equal(t, core.PageInfo{}, h.PageInfo(), "page info is cleared on close")
	assert.Empty(t, notifier.sent, "host-initiated close must not echo CLOSE_OVERLAY back")
}

func TestHandler_CloseWhileIdleIsNoop(t *testing.T) {
	h, notifier, changes := newTestHandler()

	h.HandleCommand(encodeCommand(t, protocol.Close{}))

	assert.Equal(t, ModeIdle, h.Mode())
	assert.Empty(t, notifier.sent, "idempotent close: no duplicate notification loop")
	assert.Empty(t, *changes)
}

func TestHandler_RequestClose(t *testing.T) {
	h, notifier, _ := newTestHandler()
	info := core.PageInfo{URL: "https://host.test", Title: "Host"}

	h.HandleCommand(encodeCommand(t, protocol.OpenAdd{PageInfo: info}))
	h.RequestClose()

	assert.Equal(t, ModeIdle, h.Mode())
	require.Len(t, notifier.sent, 1, "local close notifies the host exactly once")
	assert.Equal(t, protocol.CloseOverlay{}, notifier.sent[0])

	// A second request changes nothing and posts nothing.
	h.RequestClose()
	assert.Len(t, notifier.sent, 1)
}

func TestHandler_MalformedCommandsDropped(t *testing.T) {
	h, notifier, changes := newTestHandler()

	h.HandleCommand(json.RawMessage(`{"type":"OPEN_SEARCH"}`))
	h.HandleCommand(json.RawMessage(`{"type":"OPEN_SEARCH","pageInfo":{"url":1,"title":"X"}}`))
	h.HandleCommand(json.RawMessage(`{"type":"DROP_TABLES"}`))
	h.HandleCommand(json.RawMessage(`garbage`))

	assert.Equal(t, ModeIdle, h.Mode(), "nothing malformed may drive the state machine")
	assert.Empty(t, notifier.sent, "rejected payloads get no reply")
	assert.Empty(t, *changes)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "IDLE", ModeIdle.String())
	assert.Equal(t, "SEARCHING", ModeSearching.String())
	assert.Equal(t, "ADDING", ModeAdding.String())
}
