package events

import "sync"

// Stream is a buffered channel sink consumed by the SSE handler. When the
// buffer is full the event is dropped and counted rather than blocking the
// pipeline.
type Stream struct {
	ch      chan Event
	mu      sync.Mutex
	closed  bool
	dropped int
}

// NewStream creates a stream with the given buffer size.
func NewStream(buffer int) *Stream {
	if buffer <= 0 {
		buffer = 256
	}
	return &Stream{ch: make(chan Event, buffer)}
}

// Publish sends the event to the consumer without blocking.
func (s *Stream) Publish(event Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.ch <- event:
	default:
		s.dropped++
	}
}

// Events returns the consumer side of the stream.
func (s *Stream) Events() <-chan Event {
	return s.ch
}

// Dropped reports how many events were discarded because the consumer lagged.
func (s *Stream) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Close closes the stream. Publish becomes a no-op afterwards.
func (s *Stream) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	close(s.ch)
}
