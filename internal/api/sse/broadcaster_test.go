package sse

import (
	"strings"
	"testing"
	"time"

	"github.com/manhuntgame/manhunt/internal/model"
	"github.com/manhuntgame/manhunt/internal/testutil"
)

func receiveFrame(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestBroadcaster_OpenChatMessageSentInFull(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub("ABC234")
	hub := manager.GetOrCreateHub("ABC234")

	client := NewClient(hub)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	b := NewBroadcaster(manager, testutil.NopLogger())
	b.BroadcastChat(&model.ChatMessage{
		ID:         "m1",
		GameID:     "ABC234",
		SenderName: "Alice",
		Message:    "meet at the fountain",
		Channel:    model.ChannelAll,
	})

	frame := receiveFrame(t, client)
	if !strings.HasPrefix(frame, "event: chat\n") {
		t.Errorf("frame = %q, want chat event", frame)
	}
	if !strings.Contains(frame, "meet at the fountain") {
		t.Errorf("open-channel message body missing from frame %q", frame)
	}
}

func TestBroadcaster_DetectivesChatMessageIsStubbed(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	defer manager.RemoveHub("ABC234")
	hub := manager.GetOrCreateHub("ABC234")

	client := NewClient(hub)
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	b := NewBroadcaster(manager, testutil.NopLogger())
	b.BroadcastChat(&model.ChatMessage{
		ID:         "m1",
		GameID:     "ABC234",
		SenderName: "Bob",
		Message:    "he went north",
		Channel:    model.ChannelDetectives,
	})

	// The stream is shared by every watcher including Mr. X, so the frame
	// must not carry the message body
	frame := receiveFrame(t, client)
	if strings.Contains(frame, "he went north") || strings.Contains(frame, "Bob") {
		t.Errorf("detectives-channel content leaked into frame %q", frame)
	}
	if !strings.Contains(frame, `"channel":"detectives"`) {
		t.Errorf("frame = %q, want detectives-channel stub", frame)
	}
}

func TestBroadcaster_NoHubIsNoOp(t *testing.T) {
	manager := NewHubManager(testutil.NopLogger())
	b := NewBroadcaster(manager, testutil.NopLogger())

	// No watchers, nothing to push; must not panic or create hubs
	b.BroadcastRoster("ABC234", nil)
	b.BroadcastBoundary("ABC234")

	if manager.GetHub("ABC234") != nil {
		t.Error("broadcast created a hub for a game with no watchers")
	}
}
