// Package events publishes stored form submissions to Kafka so downstream
// consumers (sales notifications, CRM sync) can react without polling the
// database.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"

	"aquads/internal/forms/models"
)

const (
	defaultPublishTimeout = 5 * time.Second
	eventTypePrefix       = "form.submitted."
)

// KafkaPublisher writes one record per submission to a topic.
type KafkaPublisher struct {
	client  *kgo.Client
	topic   string
	timeout time.Duration
}

// NewKafka creates a publisher for topic. brokers must be non-empty. Call
// Close when shutting down.
func NewKafka(brokers []string, topic string) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, errors.New("at least one kafka broker is required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ClientID("aquads"),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &KafkaPublisher{client: client, topic: topic, timeout: defaultPublishTimeout}, nil
}

// EnsureTopic creates the topic with broker defaults if it does not exist.
func (p *KafkaPublisher) EnsureTopic(ctx context.Context) error {
	adm := kadm.NewClient(p.client)
	resp, err := adm.CreateTopics(ctx, 1, -1, nil, p.topic)
	if err != nil {
		return fmt.Errorf("create topic %s: %w", p.topic, err)
	}
	for _, r := range resp {
		if r.Err != nil && !errors.Is(r.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", r.Topic, r.Err)
		}
	}
	return nil
}

// Publish writes event and waits for the broker acknowledgement, bounded by a
// short timeout so a slow broker cannot stall the submission response.
func (p *KafkaPublisher) Publish(ctx context.Context, event models.SubmissionEvent) error {
	record, err := newRecord(event)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce submission event: %w", err)
	}
	return nil
}

// Close releases the client. Safe on a nil publisher.
func (p *KafkaPublisher) Close() {
	if p == nil || p.client == nil {
		return
	}
	p.client.Close()
}

func newRecord(event models.SubmissionEvent) (*kgo.Record, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("marshal submission event: %w", err)
	}
	record := &kgo.Record{
		Key:   []byte(fmt.Sprintf("%s:%d", event.Kind, event.ID)),
		Value: payload,
		Headers: []kgo.RecordHeader{
			{Key: "event_type", Value: []byte(eventTypePrefix + string(event.Kind))},
		},
	}
	if event.RequestID != "" {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: "request_id", Value: []byte(event.RequestID)})
	}
	return record, nil
}
