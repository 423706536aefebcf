package realtime

import (
	"encoding/json"
	"testing"
)

func addClient(h *Hub, scope string) *Client {
	client := &Client{hub: h, send: make(chan []byte, 1), scope: scope}
	h.clients[client] = true
	return client
}

func receiveEvent(t *testing.T, client *Client) Event {
	t.Helper()
	select {
	case data := <-client.send:
		var event Event
		if err := json.Unmarshal(data, &event); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		return event
	default:
		t.Fatal("client received no event")
		return Event{}
	}
}

func TestBroadcastDeliversWithoutRunLoop(t *testing.T) {
	// Scope-less events fan out under the lock, so nothing is dropped when
	// the register/unregister loop is busy or not yet started.
	h := NewHub()
	a := addClient(h, ScopeKey("2025-2026", 1, 1, "A"))
	b := addClient(h, ScopeKey("2025-2026", 3, 2, "B"))

	h.Broadcast(Event{Type: EventTimeSlotsChanged})

	for _, client := range []*Client{a, b} {
		if event := receiveEvent(t, client); event.Type != EventTimeSlotsChanged {
			t.Errorf("event type = %q, want %q", event.Type, EventTimeSlotsChanged)
		}
	}
}

func TestBroadcastToScopeFilters(t *testing.T) {
	h := NewHub()
	scoped := addClient(h, ScopeKey("2025-2026", 1, 1, "A"))
	other := addClient(h, ScopeKey("2025-2026", 1, 1, "B"))

	h.BroadcastToScope(scoped.scope, Event{Type: EventScheduleCreated})

	event := receiveEvent(t, scoped)
	if event.Type != EventScheduleCreated || event.Scope != scoped.scope {
		t.Errorf("event = %+v", event)
	}

	select {
	case <-other.send:
		t.Error("event leaked into another scope")
	default:
	}
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	h := NewHub()
	slow := addClient(h, ScopeKey("2025-2026", 1, 1, "A"))
	slow.send <- []byte("backlog") // fill the buffer

	h.Broadcast(Event{Type: EventTimeSlotsChanged})

	if _, ok := h.clients[slow]; ok {
		t.Error("slow client was not dropped")
	}
}
