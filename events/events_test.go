package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHub_PublishSubscribe(t *testing.T) {
	h := NewHub(10)
	defer h.Shutdown()

	ch := h.Subscribe(7)
	other := h.Subscribe(8)

	h.Publish(Event{RunId: 7, Kind: PROGRESS, Current: 1, Total: 2})
	h.Publish(Event{RunId: 7, Kind: LOG, Text: "Message sent to: +1"})
	h.Finish(7)

	var got []Event
	for v := range ch {
		got = append(got, v.(Event))
	}

	require.Equal(t, []Event{
		{RunId: 7, Kind: PROGRESS, Current: 1, Total: 2},
		{RunId: 7, Kind: LOG, Text: "Message sent to: +1"},
	}, got)
	require.Len(t, other, 0)

	go h.Unsubscribe(other)
	for range other {
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub(1)
	defer h.Shutdown()

	ch := h.Subscribe(1)
	go h.Unsubscribe(ch)

	for range ch {
	}
}

func TestHub_PublishDoesNotWaitForSlowSubscriber(t *testing.T) {
	h := NewHub(4)
	defer h.Shutdown()

	stalled := h.Subscribe(3)

	published := make(chan struct{})
	go func() {
		for i := 0; i < 500; i++ {
			h.Publish(Event{RunId: 3, Kind: PROGRESS, Current: i + 1, Total: 500})
		}
		close(published)
	}()

	select {
	case <-published:
	case <-time.After(2 * time.Second):
		t.Fatal("publishing waited for a subscriber that does not read")
	}

	h.Finish(3)
	n := 0
	for range stalled {
		n++
	}
	require.Equal(t, 4, n)
}
