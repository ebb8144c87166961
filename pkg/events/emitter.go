package events

import "time"

// Emitter is a convenience wrapper that stamps and publishes events for one run.
type Emitter struct {
	sink Sink
	step string
}

// NewEmitter creates a new emitter over the given sink.
func NewEmitter(sink Sink) *Emitter {
	if sink == nil {
		sink = NopSink{}
	}
	return &Emitter{sink: sink}
}

// WithStep returns an emitter that tags every event with the given step name.
func (e *Emitter) WithStep(step string) *Emitter {
	return &Emitter{sink: e.sink, step: step}
}

func (e *Emitter) publish(level Level, message string, done bool, data any) {
	e.sink.Publish(Event{
		Message:   message,
		Level:     level,
		Timestamp: time.Now().UTC(),
		Step:      e.step,
		Done:      done,
		Data:      data,
	})
}

// Info publishes an informational progress event.
func (e *Emitter) Info(message string) {
	e.publish(LevelInfo, message, false, nil)
}

// Success publishes a success progress event.
func (e *Emitter) Success(message string) {
	e.publish(LevelSuccess, message, false, nil)
}

// Error publishes an error progress event.
func (e *Emitter) Error(message string) {
	e.publish(LevelError, message, false, nil)
}

// Complete publishes the sentinel completion event carrying the run summary.
func (e *Emitter) Complete(message string, data any) {
	e.publish(LevelSuccess, message, true, data)
}

// Fail publishes the sentinel completion event for a fatal failure.
func (e *Emitter) Fail(message string) {
	e.publish(LevelError, message, true, nil)
}
