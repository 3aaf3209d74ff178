// fake_conn.go - Scripted feed transport for testing
package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/inventory-orchestrator/console/internal/feed"
	"github.com/inventory-orchestrator/console/internal/models"
)

// ErrConnClosed is returned by ReadMessage after Close.
var ErrConnClosed = errors.New("fake conn closed")

// FakeConn implements feed.Conn with an in-memory frame queue. Tests push
// inbound frames with Deliver and inspect outbound frames with Written.
type FakeConn struct {
	inbound chan []byte

	mu      sync.Mutex
	written [][]byte
	closed  bool
}

// NewFakeConn creates a fake transport connection.
func NewFakeConn() *FakeConn {
	return &FakeConn{
		inbound: make(chan []byte, 64),
	}
}

// Dialer returns a feed.Dialer that always hands out this connection.
func (f *FakeConn) Dialer() feed.Dialer {
	return func(ctx context.Context, url string) (feed.Conn, error) {
		return f, nil
	}
}

// Deliver queues an inbound named-event frame, as the orchestrator would
// push it.
func (f *FakeConn) Deliver(kind models.Kind, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal payload: %v", err))
	}
	frame, err := json.Marshal(feed.Envelope{Type: kind, Data: data})
	if err != nil {
		panic(fmt.Sprintf("testutil: marshal envelope: %v", err))
	}
	f.inbound <- frame
}

// DeliverRaw queues an arbitrary inbound frame.
func (f *FakeConn) DeliverRaw(frame []byte) {
	f.inbound <- frame
}

// ReadMessage blocks until a frame is delivered or the connection closes.
func (f *FakeConn) ReadMessage() (int, []byte, error) {
	frame, ok := <-f.inbound
	if !ok {
		return 0, nil, ErrConnClosed
	}
	return 1, frame, nil
}

// WriteMessage records an outbound frame.
func (f *FakeConn) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return ErrConnClosed
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	f.written = append(f.written, buf)
	return nil
}

// Close unblocks pending reads. Safe to call more than once.
func (f *FakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.inbound)
	}
	return nil
}

// Written returns a copy of all outbound frames.
func (f *FakeConn) Written() [][]byte {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([][]byte, len(f.written))
	for i, frame := range f.written {
		buf := make([]byte, len(frame))
		copy(buf, frame)
		out[i] = buf
	}
	return out
}

// WrittenEnvelopes decodes all outbound frames.
func (f *FakeConn) WrittenEnvelopes() []feed.Envelope {
	frames := f.Written()
	out := make([]feed.Envelope, 0, len(frames))
	for _, frame := range frames {
		var env feed.Envelope
		if err := json.Unmarshal(frame, &env); err != nil {
			panic(fmt.Sprintf("testutil: unmarshal outbound frame: %v", err))
		}
		out = append(out, env)
	}
	return out
}
