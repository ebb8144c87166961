package events

import (
	"context"

	"github.com/Gobusters/ectologger"

	"github.com/modonty1-rgb/modonty-sub003/pkg/kafka"
)

// KafkaSink forwards progress events to a Kafka topic. Publishing is
// best-effort: failures are logged and the event is dropped.
type KafkaSink struct {
	producer *kafka.Producer
	logger   ectologger.Logger
	runID    string
}

// NewKafkaSink creates a sink publishing events for the given run.
func NewKafkaSink(producer *kafka.Producer, runID string, logger ectologger.Logger) *KafkaSink {
	return &KafkaSink{
		producer: producer,
		logger:   logger,
		runID:    runID,
	}
}

func (s *KafkaSink) Publish(event Event) {
	err := s.producer.PublishProgressEvent(context.Background(), &kafka.ProgressEvent{
		RunID:     s.runID,
		Step:      event.Step,
		Level:     string(event.Level),
		Message:   event.Message,
		Timestamp: event.Timestamp,
	})
	if err != nil {
		s.logger.WithError(err).Warn("dropping progress event after kafka publish failure")
	}
}
