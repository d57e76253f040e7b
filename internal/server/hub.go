package server

import (
	"bytes"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/zeusync/physics2d/pkg/generic"
)

// Hub fans encoded snapshots out to subscribers. Each subscriber holds at most
// one pending snapshot; a slow reader only ever sees the newest one.
type Hub struct {
	mu     sync.Mutex
	latest []byte
	subs   map[uint64]chan []byte
	nextID uint64

	buffers *generic.Pool[*bytes.Buffer]
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[uint64]chan []byte),
		buffers: generic.NewPool(
			func() *bytes.Buffer { return new(bytes.Buffer) },
			func(b *bytes.Buffer) { b.Reset() },
		),
	}
}

// Publish encodes snap once and hands it to every subscriber.
func (h *Hub) Publish(snap Snapshot) error {
	buf := h.buffers.Get()
	defer h.buffers.Put(buf)

	if err := json.NewEncoder(buf).Encode(snap); err != nil {
		return errors.Wrap(err, "encode snapshot")
	}
	data := bytes.Clone(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))

	h.mu.Lock()
	defer h.mu.Unlock()
	h.latest = data
	for _, ch := range h.subs {
		offer(ch, data)
	}
	return nil
}

func offer(ch chan []byte, data []byte) {
	select {
	case ch <- data:
		return
	default:
	}
	// replace the stale pending snapshot
	select {
	case <-ch:
	default:
	}
	select {
	case ch <- data:
	default:
	}
}

// Latest returns the most recently published snapshot.
func (h *Hub) Latest() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.latest == nil {
		return nil, ErrNoSnapshot
	}
	return h.latest, nil
}

// Subscribe registers a subscriber, primed with the latest snapshot if any.
// The returned cancel function closes the channel.
func (h *Hub) Subscribe() (<-chan []byte, func()) {
	ch := make(chan []byte, 1)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = ch
	if h.latest != nil {
		ch <- h.latest
	}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, id)
			close(ch)
			h.mu.Unlock()
		})
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
