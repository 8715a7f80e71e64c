package events

import (
	"strconv"

	"github.com/cskr/pubsub"
)

const (
	//event kinds
	PROGRESS string = "progress"
	LOG             = "log"
	DONE            = "done"
)

type Event struct {
	RunId   uint32 `json:"run_id"`
	Kind    string `json:"kind"`
	Current int    `json:"current,omitempty"`
	Total   int    `json:"total,omitempty"`
	Text    string `json:"text,omitempty"`
	Status  string `json:"status,omitempty"`
	Sent    int    `json:"sent,omitempty"`
	NotSent int    `json:"not_sent,omitempty"`
}

// Hub fans run events out to subscribers. Every run has its own topic.
type Hub interface {
	// Publish never blocks. A subscriber whose buffer is full misses the event.
	Publish(e Event)
	// Subscribe returns a channel with the events of run id. The channel is
	// closed by Finish or Unsubscribe.
	Subscribe(id uint32) chan interface{}
	// Unsubscribe must be called from a goroutine other than the reader, and
	// the reader must drain the channel until it is closed.
	Unsubscribe(ch chan interface{})
	// Finish closes the channels of every subscriber of run id.
	Finish(id uint32)
	Shutdown()
}

type hub struct {
	ps *pubsub.PubSub
}

func NewHub(capacity int) Hub {
	return &hub{ps: pubsub.New(capacity)}
}

func topic(id uint32) string {
	return "run:" + strconv.FormatUint(uint64(id), 10)
}

func (h *hub) Publish(e Event) {
	h.ps.TryPub(e, topic(e.RunId))
}

func (h *hub) Subscribe(id uint32) chan interface{} {
	return h.ps.Sub(topic(id))
}

func (h *hub) Unsubscribe(ch chan interface{}) {
	h.ps.Unsub(ch)
}

func (h *hub) Finish(id uint32) {
	h.ps.Close(topic(id))
}

func (h *hub) Shutdown() {
	h.ps.Shutdown()
}
