package ws

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestHub() *Hub {
	return NewHub(zerolog.New(os.Stderr))
}

func newTestClient(topics ...string) *Client {
	return &Client{
		ID:     "test-client",
		Topics: topics,
		Send:   make(chan []byte, 8),
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	h := newTestHub()
	c := newTestClient("alerts")
	h.Register(c)

	if h.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", h.ClientCount())
	}

	h.Broadcast("alerts", Event{Type: "alert.created", Topic: "alerts", Timestamp: time.Now()})

	select {
	case data := <-c.Send:
		var evt Event
		if err := json.Unmarshal(data, &evt); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if evt.Type != "alert.created" {
			t.Errorf("unexpected event type %q", evt.Type)
		}
	default:
		t.Fatal("expected event on client channel")
	}
}

func TestHub_BroadcastSkipsOtherTopics(t *testing.T) {
	h := newTestHub()
	c := newTestClient("alerts.critical")
	h.Register(c)

	h.Broadcast("alerts", Event{Type: "alert.created", Topic: "alerts"})

	select {
	case <-c.Send:
		t.Error("client should not receive events for unsubscribed topics")
	default:
	}
}

func TestHub_SubscribeUnsubscribe(t *testing.T) {
	h := newTestHub()
	c := newTestClient()
	h.Register(c)

	h.ProcessMessage(c, ClientMessage{Action: "subscribe", Topics: []string{"alerts"}})
	if h.TopicCount("alerts") != 1 {
		t.Errorf("expected 1 subscriber, got %d", h.TopicCount("alerts"))
	}

	h.ProcessMessage(c, ClientMessage{Action: "unsubscribe", Topics: []string{"alerts"}})
	if h.TopicCount("alerts") != 0 {
		t.Errorf("expected 0 subscribers, got %d", h.TopicCount("alerts"))
	}
}

func TestHub_Unregister(t *testing.T) {
	h := newTestHub()
	c := newTestClient("alerts")
	h.Register(c)
	h.Unregister(c)

	if h.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", h.ClientCount())
	}
	// Channel closed after unregister.
	if _, ok := <-c.Send; ok {
		t.Error("expected closed Send channel")
	}
	// Double unregister is a no-op.
	h.Unregister(c)
}

func TestHub_Publish(t *testing.T) {
	h := newTestHub()
	c := newTestClient("alerts")
	h.Register(c)

	if err := h.Publish(context.Background(), Event{Topic: "alerts", Type: "alert.created"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-c.Send:
	default:
		t.Error("expected published event")
	}
}

func TestHub_FullBufferDoesNotBlock(t *testing.T) {
	h := newTestHub()
	c := &Client{ID: "slow", Topics: []string{"alerts"}, Send: make(chan []byte)}
	h.Register(c)

	done := make(chan struct{})
	go func() {
		h.Broadcast("alerts", Event{Topic: "alerts"})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Error("broadcast blocked on full client buffer")
	}
}
