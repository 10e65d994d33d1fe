// Package kafka ships audit events to a Kafka topic. Each event is one JSON
// record keyed by user so a user's events stay ordered within a partition.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "propaudit/pkg/platform/audit"
)

const defaultProduceTimeout = 5 * time.Second

// Producer is the subset of *kgo.Client used by the store.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

type Store struct {
	producer Producer
	client   *kgo.Client
	topic    string
	timeout  time.Duration
}

type Option func(*Store)

// WithProduceTimeout bounds each synchronous produce.
func WithProduceTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// New dials the brokers and returns a store owning the client.
func New(brokers []string, topic string, opts ...Option) (*Store, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if topic == "" {
		return nil, fmt.Errorf("kafka topic is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	s := NewWithProducer(client, topic, opts...)
	s.client = client
	return s, nil
}

// NewWithProducer wraps an existing producer. The caller keeps ownership.
func NewWithProducer(p Producer, topic string, opts ...Option) *Store {
	s := &Store{producer: p, topic: topic, timeout: defaultProduceTimeout}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type record struct {
	Category   string            `json:"category"`
	Timestamp  time.Time         `json:"timestamp"`
	UserID     string            `json:"user_id,omitempty"`
	Subject    string            `json:"subject,omitempty"`
	Action     string            `json:"action"`
	Reason     string            `json:"reason,omitempty"`
	RequestID  string            `json:"request_id,omitempty"`
	ActorID    string            `json:"actor_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// Append produces the event and waits for the broker acknowledgement.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	category := event.Category
	if category == "" {
		category = audit.AuditEvent(event.Action).Category()
	}
	rec := record{
		Category:   string(category),
		Timestamp:  event.Timestamp,
		Subject:    event.Subject,
		Action:     event.Action,
		Reason:     event.Reason,
		RequestID:  event.RequestID,
		ActorID:    event.ActorID,
		Attributes: event.Attributes,
	}
	var key []byte
	if !event.UserID.IsNil() {
		rec.UserID = event.UserID.String()
		key = []byte(rec.UserID)
	}

	value, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal audit record: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	results := s.producer.ProduceSync(ctx, &kgo.Record{Topic: s.topic, Key: key, Value: value})
	if err := results.FirstErr(); err != nil {
		return fmt.Errorf("produce audit record: %w", err)
	}
	return nil
}

// Close flushes and closes the client when the store owns it.
func (s *Store) Close() {
	if s.client != nil {
		s.client.Close()
	}
}
