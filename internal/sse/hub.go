package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Event struct {
	ID   int64       `json:"id"`
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type subscriber struct {
	ch chan Event
}

// Hub fans inbox events out to connected clients, keyed by recipient user.
// Every event carries a per-user monotonic ID; events are also appended to
// a redis list so a reconnecting client can resume from its Last-Event-ID.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint][]*subscriber
	rdb         *redis.Client

	seqMu sync.Mutex
	seq   map[uint]int64
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		subscribers: make(map[uint][]*subscriber),
		rdb:         rdb,
		seq:         make(map[uint]int64),
	}
}

func streamKey(userID uint) string {
	return fmt.Sprintf("inbox:stream:%d", userID)
}

func seqKey(userID uint) string {
	return fmt.Sprintf("inbox:seq:%d", userID)
}

// nextID hands out the per-user event sequence. With redis the counter
// survives restarts, which resume depends on; without it a process-local
// counter keeps live IDs monotonic.
func (h *Hub) nextID(userID uint) int64 {
	if h.rdb != nil {
		if id, err := h.rdb.Incr(context.Background(), seqKey(userID)).Result(); err == nil {
			return id
		}
	}
	h.seqMu.Lock()
	defer h.seqMu.Unlock()
	h.seq[userID]++
	return h.seq[userID]
}

func (h *Hub) Subscribe(userID uint) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, 256)}
	h.subscribers[userID] = append(h.subscribers[userID], sub)

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[userID]
		for i, s := range subs {
			if s == sub {
				h.subscribers[userID] = append(subs[:i], subs[i+1:]...)
				close(sub.ch)
				break
			}
		}
		if len(h.subscribers[userID]) == 0 {
			delete(h.subscribers, userID)
		}
	}
	return sub.ch, unsub
}

// Broadcast stamps the event with the next sequence ID, persists it, and
// fans it out to the user's live subscribers.
func (h *Hub) Broadcast(userID uint, event Event) {
	event.ID = h.nextID(userID)

	if h.rdb != nil {
		ctx := context.Background()
		key := streamKey(userID)
		data, _ := json.Marshal(event)
		h.rdb.RPush(ctx, key, string(data))
		h.rdb.LTrim(ctx, key, -500, -1)
		h.rdb.Expire(ctx, key, 7*24*time.Hour)
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[userID] {
		select {
		case sub.ch <- event:
		default:
			// drop if full
		}
	}
}

// ReplayAfter returns persisted events with an ID strictly greater than
// afterID, in order. IDs are read from the stored payload, so trimming the
// list never shifts them.
func (h *Hub) ReplayAfter(userID uint, afterID int64) ([]Event, error) {
	if h.rdb == nil {
		return nil, nil
	}
	ctx := context.Background()
	items, err := h.rdb.LRange(ctx, streamKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for _, item := range items {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		if ev.ID > afterID {
			events = append(events, ev)
		}
	}
	return events, nil
}
