package api

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func newRedisBroker(t *testing.T) *RedisBroker {
	t.Helper()
	mr := miniredis.RunT(t)
	b, err := NewRedisBroker("redis://" + mr.Addr())
	if err != nil {
		t.Fatalf("NewRedisBroker: %v", err)
	}
	return b
}

func TestRedisBrokerPublishSubscribe(t *testing.T) {
	b := newRedisBroker(t)
	ch := b.Subscribe(TopicRouting)
	defer b.Unsubscribe(TopicRouting, ch)

	b.Publish(TopicRouting, SSEEvent{Type: "plan.completed", Data: map[string]any{"routes": 2.0}})
	select {
	case evt := <-ch:
		if evt.Type != "plan.completed" || evt.Data["routes"] != 2.0 {
			t.Fatalf("event %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("event not delivered")
	}
}

func TestRedisBrokerPublishAfterUnsubscribe(t *testing.T) {
	b := newRedisBroker(t)
	ch := b.Subscribe(TopicRouting)
	b.Unsubscribe(TopicRouting, ch)

	// A publish racing a departed subscriber must neither panic nor
	// deliver; the forwarder owns the close.
	b.Publish(TopicRouting, SSEEvent{Type: "plan.completed"})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt, open := <-ch:
			if !open {
				return
			}
			t.Fatalf("event delivered after unsubscribe: %+v", evt)
		case <-deadline:
			t.Fatal("channel never closed after unsubscribe")
		}
	}
}

func TestRedisBrokerUnsubscribeTwice(t *testing.T) {
	b := newRedisBroker(t)
	ch := b.Subscribe(TopicBatch)
	b.Unsubscribe(TopicBatch, ch)
	b.Unsubscribe(TopicBatch, ch)
}
