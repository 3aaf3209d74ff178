package feed

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/inventory-orchestrator/console/internal/models"
)

// DefaultLogCapacity bounds the event log when no capacity is configured.
// The upstream feed is unbounded for the life of a session, so retention is
// an explicit policy here: oldest events are evicted first.
const DefaultLogCapacity = 1024

// Log is the shared, insertion-ordered event log. It has a single writer
// (the feed read loop) and many readers (panels, HTTP handlers); reads
// return copies so callers never observe a torn append.
type Log struct {
	mu       sync.RWMutex
	events   []models.Event
	capacity int
	nextSeq  uint64
}

// NewLog creates a bounded event log. Non-positive capacities fall back to
// DefaultLogCapacity.
func NewLog(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultLogCapacity
	}
	return &Log{
		events:   make([]models.Event, 0, capacity),
		capacity: capacity,
		nextSeq:  1,
	}
}

// Append records an event in delivery order and returns it. Sequence numbers
// are monotonic across evictions.
func (l *Log) Append(kind models.Kind, payload json.RawMessage) models.Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	ev := models.Event{
		Seq:        l.nextSeq,
		Kind:       kind,
		Payload:    payload,
		ReceivedAt: time.Now(),
	}
	l.nextSeq++

	l.events = append(l.events, ev)
	if len(l.events) > l.capacity {
		// Evict oldest; shift via copy so the backing array does not grow
		// without bound.
		n := copy(l.events, l.events[len(l.events)-l.capacity:])
		l.events = l.events[:n]
	}

	return ev
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.events)
}

// Snapshot returns a copy of all retained events, oldest first.
func (l *Log) Snapshot() []models.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]models.Event, len(l.events))
	copy(out, l.events)
	return out
}

// Since returns a copy of all retained events with a sequence number greater
// than seq. Subscribers use this to re-scan the batch delivered since their
// last scan.
func (l *Log) Since(seq uint64) []models.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	// Events are sequence-ordered; find the first retained event past seq.
	idx := len(l.events)
	for i, ev := range l.events {
		if ev.Seq > seq {
			idx = i
			break
		}
	}

	out := make([]models.Event, len(l.events)-idx)
	copy(out, l.events[idx:])
	return out
}

// Tail returns a copy of the most recent n events, oldest first. n <= 0 or
// n greater than the retained count returns everything.
func (l *Log) Tail(n int) []models.Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if n <= 0 || n > len(l.events) {
		n = len(l.events)
	}

	out := make([]models.Event, n)
	copy(out, l.events[len(l.events)-n:])
	return out
}
