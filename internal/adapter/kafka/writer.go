// Package kafka publishes assembly decisions to the sink topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/roofcast/internal/domain"
)

// Writer produces decision messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishDecisions serializes and publishes one message per assembly
// decision in a single WriteMessages call.
func (w *Writer) PublishDecisions(ctx context.Context, results []domain.AssemblyResult) error {
	if len(results) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(results))
	for i := range results {
		msg, err := serializeToMessage(results[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AssemblyResult into a Kafka message keyed
// by assembly ID, with the go/hold status in a header for cheap filtering.
func serializeToMessage(result domain.AssemblyResult) (kafkago.Message, error) {
	data, err := json.Marshal(result)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize assembly decision: %w", err)
	}
	status := "hold"
	if result.LaborGreenLight {
		status = "go"
	}
	return kafkago.Message{
		Key:   []byte(result.Assembly.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "status", Value: []byte(status)},
			{Key: "evaluated_at", Value: []byte(result.EvaluatedAt.Format(time.RFC3339))},
		},
	}, nil
}
