package bridge

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridge_FIFOPerDirection(t *testing.T) {
	host, surface := New(8)

	for i := 0; i < 5; i++ {
		require.True(t, host.Post(json.RawMessage(fmt.Sprintf(`{"n":%d}`, i))))
	}

	for i := 0; i < 5; i++ {
		got := <-surface.Messages()
		assert.JSONEq(t, fmt.Sprintf(`{"n":%d}`, i), string(got))
	}
}

func TestBridge_BothDirections(t *testing.T) {
	host, surface := New(0)

	require.True(t, host.Post(json.RawMessage(`{"type":"CLOSE"}`)))
	require.True(t, surface.Post(json.RawMessage(`{"type":"CLOSE_OVERLAY"}`)))

	assert.JSONEq(t, `{"type":"CLOSE"}`, string(<-surface.Messages()))
	assert.JSONEq(t, `{"type":"CLOSE_OVERLAY"}`, string(<-host.Messages()))
}

func TestBridge_PostDropsWhenFull(t *testing.T) {
	host, _ := New(1)

	assert.True(t, host.Post(json.RawMessage(`{}`)))
	// Queue depth is 1 and nobody is reading.
	assert.False(t, host.Post(json.RawMessage(`{}`)))
}

func TestBridge_Close(t *testing.T) {
	host, surface := New(2)
	require.True(t, host.Post(json.RawMessage(`{}`)))

	surface.Close()
	surface.Close() // idempotent

	assert.False(t, host.Post(json.RawMessage(`{}`)))
	assert.False(t, surface.Post(json.RawMessage(`{}`)))

	// Buffered message is still drained, then the channel closes.
	_, open := <-surface.Messages()
	assert.True(t, open)
	_, open = <-surface.Messages()
	assert.False(t, open)

	_, open = <-host.Messages()
	assert.False(t, open)
}
