package realtime

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Event is the payload-less cue written to every connected client after each
// mutation. Clients refetch their views on receipt; the event carries nothing
// describing what changed.
const Event = "data_changed"

// Channel is the Redis pub/sub channel bridging instances.
const Channel = "foodshare:data_changed"

// Hub fans the change cue out to local subscribers. With a Redis client it
// publishes through pub/sub so every instance's clients get the cue; without
// one (tests, single-instance dev) it fans out in-process only.
type Hub struct {
	rdb    *redis.Client
	pubsub *redis.PubSub

	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewHub(rdb *redis.Client) *Hub {
	h := &Hub{
		rdb:  rdb,
		subs: make(map[chan string]struct{}),
	}
	if rdb != nil {
		h.pubsub = rdb.Subscribe(context.Background(), Channel)
		go h.listen()
	}
	return h
}

func (h *Hub) listen() {
	for msg := range h.pubsub.Channel() {
		h.fanout(msg.Payload)
	}
}

// Broadcast publishes the change cue. Fire-and-forget: delivery is not
// confirmed and a publish failure only logs.
func (h *Hub) Broadcast(ctx context.Context) {
	if h.rdb == nil {
		h.fanout(Event)
		return
	}
	if err := h.rdb.Publish(ctx, Channel, Event).Err(); err != nil {
		log.Warn().Err(err).Msg("change broadcast publish failed")
	}
}

// Subscribe registers a local subscriber. The channel is buffered; a
// subscriber that falls behind drops cues, which is harmless because every cue
// means the same thing.
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, 4)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes a subscriber channel.
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
}

func (h *Hub) fanout(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close tears down the Redis subscription. Local subscribers stay registered;
// callers unsubscribe their own channels.
func (h *Hub) Close() error {
	if h.pubsub != nil {
		return h.pubsub.Close()
	}
	return nil
}
