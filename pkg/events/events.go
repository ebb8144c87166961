// Package events carries the seed-run progress stream. The sink is injected
// into the pipeline and forwarded to every builder; publishing never blocks
// the producer.
package events

import "time"

// Level classifies a progress event for the consumer.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Event is a single progress message.
type Event struct {
	Message   string    `json:"message"`
	Level     Level     `json:"level"`
	Timestamp time.Time `json:"timestamp"`
	Step      string    `json:"step,omitempty"`
	// Done marks the sentinel completion event; Data carries the final
	// summary (or fatal error message) alongside it.
	Done bool `json:"done,omitempty"`
	Data any  `json:"data,omitempty"`
}

// Sink receives progress events. Implementations must not block the caller.
type Sink interface {
	Publish(event Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Publish(Event) {}

// MultiSink fans an event out to several sinks.
type MultiSink []Sink

func (m MultiSink) Publish(event Event) {
	for _, s := range m {
		s.Publish(event)
	}
}
