// Package kafka publishes and consumes domain events on a Kafka topic.
package kafka

import (
	"context"
	"fmt"
	"log"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"
)

// readRetryDelay is the pause after a failed read.
var readRetryDelay = time.Second

// waitBeforeRetry sleeps for readRetryDelay and reports false if ctx ends first.
func waitBeforeRetry(ctx context.Context) bool {
	timer := time.NewTimer(readRetryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

// Broker writes to and reads from a single topic.
type Broker struct {
	brokers []string
	topic   string
	writer  *kafkaGo.Writer
}

// NewBroker creates a Broker for topic on the given brokers.
func NewBroker(brokers []string, topic string) *Broker {
	return &Broker{
		brokers: brokers,
		topic:   topic,
		writer: &kafkaGo.Writer{
			Addr:                   kafkaGo.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafkaGo.LeastBytes{},
			AllowAutoTopicCreation: true,
		},
	}
}

// Topic returns the topic the broker is bound to.
func (b *Broker) Topic() string {
	return b.topic
}

// Publish writes one message keyed by key.
func (b *Broker) Publish(ctx context.Context, key string, body []byte) error {
	err := b.writer.WriteMessages(ctx, kafkaGo.Message{
		Key:   []byte(key),
		Value: body,
	})
	if err != nil {
		return fmt.Errorf("failed to write message to %s: %w", b.topic, err)
	}
	return nil
}

// Consume reads the topic as member of groupID and passes every message value
// to handler. It blocks until ctx is cancelled.
func (b *Broker) Consume(ctx context.Context, groupID string, handler func(body []byte) error) {
	reader := kafkaGo.NewReader(kafkaGo.ReaderConfig{
		Brokers: b.brokers,
		Topic:   b.topic,
		GroupID: groupID,
	})
	defer reader.Close()

	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Printf("Kafka consumer on %s shutting down", b.topic)
				return
			}
			log.Printf("Error reading message from %s: %v", b.topic, err)
			if !waitBeforeRetry(ctx) {
				log.Printf("Kafka consumer on %s shutting down", b.topic)
				return
			}
			continue
		}

		if err := handler(msg.Value); err != nil {
			log.Printf("Error handling message at offset %d on %s: %v", msg.Offset, b.topic, err)
		}
	}
}

// Close flushes and closes the writer.
func (b *Broker) Close() error {
	return b.writer.Close()
}
