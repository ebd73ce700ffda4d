package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"

	"github.com/jonesrussell/newscrawl/internal/article"
)

// Kafka defaults.
const (
	DefaultKafkaTopic = "raw_news"
	kafkaMaxRetries   = 3
)

// Kafka publishes records to a topic, keyed by url_hash so retries of the
// same page land in the same partition.
type Kafka struct {
	brokers  []string
	topic    string
	producer sarama.SyncProducer

	// newProducer is swappable for tests.
	newProducer func(brokers []string, config *sarama.Config) (sarama.SyncProducer, error)
}

// NewKafka builds a Kafka sink. An empty topic uses DefaultKafkaTopic.
func NewKafka(brokers []string, topic string) *Kafka {
	if topic == "" {
		topic = DefaultKafkaTopic
	}
	return &Kafka{
		brokers:     brokers,
		topic:       topic,
		newProducer: sarama.NewSyncProducer,
	}
}

// Open connects the producer.
func (s *Kafka) Open(_ context.Context) error {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal
	config.Producer.Retry.Max = kafkaMaxRetries

	producer, err := s.newProducer(s.brokers, config)
	if err != nil {
		return fmt.Errorf("failed to connect kafka producer: %w", err)
	}
	s.producer = producer
	return nil
}

// Send publishes one record.
func (s *Kafka) Send(_ context.Context, record *article.Record) error {
	if s.producer == nil {
		return fmt.Errorf("kafka sink not open")
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	_, _, err = s.producer.SendMessage(&sarama.ProducerMessage{
		Topic: s.topic,
		Key:   sarama.StringEncoder(record.URLHash),
		Value: sarama.ByteEncoder(payload),
	})
	if err != nil {
		return fmt.Errorf("failed to publish record: %w", err)
	}
	return nil
}

// Close shuts the producer down.
func (s *Kafka) Close() error {
	if s.producer == nil {
		return nil
	}
	err := s.producer.Close()
	s.producer = nil
	return err
}
