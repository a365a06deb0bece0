package sse

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/edgepuzzle/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "piece_placed",
			data:      `{"slot":1}`,
			expected:  "event: piece_placed\ndata: {\"slot\":1}\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "grid",
			data:      ". .\n. .",
			expected:  "event: grid\ndata: . .\ndata: . .\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, string(formatSSEMessage(tt.eventName, tt.data)))
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"single line", "hello", []string{"hello"}},
		{"two lines", "line1\nline2", []string{"line1", "line2"}},
		{"trailing newline", "line1\n", []string{"line1"}},
		{"empty string", "", []string{""}},
		{"blank middle line", "a\n\nb", []string{"a", "", "b"}},
		{"crlf line endings", "line1\r\nline2\r\n", []string{"line1", "line2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitLines(tt.input))
		})
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub("puzzle1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	clients := []*Client{
		NewClient(hub, "1.2.3.4:1"),
		NewClient(hub, "1.2.3.4:2"),
	}
	for _, c := range clients {
		require.True(t, hub.Register(c))
	}
	assert.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	hub.BroadcastEvent("update", "data")

	for _, c := range clients {
		assert.Equal(t, "event: update\ndata: data\n\n", receive(t, c))
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub("puzzle1", testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "remote")
	hub.Register(client)
	hub.Unregister(client)

	assert.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 5*time.Millisecond)

	_, open := <-client.send
	assert.False(t, open)
}

func TestClosedHubRejectsClients(t *testing.T) {
	hub := NewHub("puzzle1", testutil.NopLogger())
	go hub.Run()

	hub.Close()
	hub.Close()

	assert.False(t, hub.Register(NewClient(hub, "remote")))
	hub.Unregister(NewClient(hub, "remote")) // must not block
}

func TestHubCloseDisconnectsClients(t *testing.T) {
	hub := NewHub("puzzle1", testutil.NopLogger())
	go hub.Run()

	client := NewClient(hub, "remote")
	require.True(t, hub.Register(client))
	hub.Close()

	select {
	case _, open := <-client.send:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("client channel was not closed")
	}
}

func TestHubManagerGetOrCreateHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	assert.Nil(t, manager.GetHub("abc"))

	hub1 := manager.GetOrCreateHub("abc")
	hub2 := manager.GetOrCreateHub("abc")
	hub3 := manager.GetOrCreateHub("xyz")

	assert.Same(t, hub1, hub2)
	assert.NotSame(t, hub1, hub3)
	assert.Same(t, hub1, manager.GetHub("abc"))
}

func TestHubManagerRemoveHub(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	manager.GetOrCreateHub("abc")

	manager.RemoveHub("abc")
	assert.Nil(t, manager.GetHub("abc"))

	manager.RemoveHub("abc") // no-op
}

func TestHubManagerCleanupEmptyHubs(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.Close()

	manager.GetOrCreateHub("empty")
	busy := manager.GetOrCreateHub("busy")
	client := NewClient(busy, "remote")
	require.True(t, busy.Register(client))
	require.Eventually(t, func() bool { return busy.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	manager.CleanupEmptyHubs()

	assert.Nil(t, manager.GetHub("empty"))
	assert.Same(t, busy, manager.GetHub("busy"))
}

func TestHubManagerRunCleanupStops(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	manager.GetOrCreateHub("empty")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		manager.RunCleanup(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return manager.GetHub("empty") == nil }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunCleanup did not return")
	}
}
