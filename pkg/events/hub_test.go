package events

import "testing"

func drain(ch chan Event) []Event {
	var got []Event
	for {
		select {
		case ev := <-ch:
			got = append(got, ev)
		default:
			return got
		}
	}
}

func TestHubPublishCarriesPayloadName(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	h.Publish(BatteryStateEvent{Mode: "discharging", Percentage: 42})
	h.Publish(NotifiedEvent{Key: 10, Title: "battray"})

	got := drain(ch)
	if len(got) != 2 {
		t.Fatalf("received %d events, want 2", len(got))
	}
	if got[0].Name != BatteryState {
		t.Errorf("first event name = %q, want %q", got[0].Name, BatteryState)
	}
	if got[1].Name != Notified {
		t.Errorf("second event name = %q, want %q", got[1].Name, Notified)
	}

	state, err := DecodeAs[BatteryStateEvent](got[0])
	if err != nil {
		t.Fatalf("failed to decode state event: %v", err)
	}
	if state.Percentage != 42 {
		t.Errorf("decoded percentage = %d, want 42", state.Percentage)
	}
}

func TestHubReplaysLastStateToNewSubscriber(t *testing.T) {
	h := NewHub()

	h.Publish(BatteryStateEvent{Mode: "discharging", Percentage: 80})
	h.Publish(BatteryStateEvent{Mode: "discharging", Percentage: 79})

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	got := drain(ch)
	if len(got) != 1 {
		t.Fatalf("received %d events on subscribe, want the last state only", len(got))
	}
	state, err := DecodeAs[BatteryStateEvent](got[0])
	if err != nil {
		t.Fatalf("failed to decode replayed event: %v", err)
	}
	if state.Percentage != 79 {
		t.Errorf("replayed percentage = %d, want 79", state.Percentage)
	}
}

func TestHubDoesNotReplayNotifiedEvents(t *testing.T) {
	h := NewHub()

	h.Publish(NotifiedEvent{Key: 10, Title: "battray"})

	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	if got := drain(ch); len(got) != 0 {
		t.Errorf("received %d events on subscribe, want 0", len(got))
	}
}

func TestHubDropsEventsForSlowSubscriber(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()
	defer h.Unsubscribe(ch)

	// One more than the subscriber buffer holds; Publish must not block.
	for i := 0; i <= cap(ch); i++ {
		h.Publish(BatteryStateEvent{Mode: "discharging", Percentage: i})
	}

	if got := drain(ch); len(got) != cap(ch) {
		t.Errorf("received %d events, want the buffer size %d", len(got), cap(ch))
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	ch := h.Subscribe()

	h.Unsubscribe(ch)

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after unsubscribe")
	}

	// A second unsubscribe of the same channel is a no-op.
	h.Unsubscribe(ch)
}
