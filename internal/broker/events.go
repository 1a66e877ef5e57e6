package broker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"yatube/internal/config"
)

type EventType string

const (
	PostCreated    EventType = "post.created"
	PostDeleted    EventType = "post.deleted"
	CommentCreated EventType = "comment.created"
	FollowCreated  EventType = "follow.created"
	FollowRemoved  EventType = "follow.removed"
)

// Event is the JSON payload written to the events topic.
type Event struct {
	Type       EventType `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	ActorID    string    `json:"actorId"`
	AuthorID   string    `json:"authorId,omitempty"`
	PostID     string    `json:"postId,omitempty"`
	CommentID  string    `json:"commentId,omitempty"`
}

// key keeps all events about one author on one partition.
func (e Event) key() []byte {
	if e.AuthorID != "" {
		return []byte(e.AuthorID)
	}
	return []byte(e.ActorID)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer MessageWriter
}

// NewKafkaPublisher creates a publisher writing to cfg.Topic on cfg.Brokers.
func NewKafkaPublisher(cfg config.Kafka) *KafkaPublisher {
	return NewPublisher(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	})
}

func NewPublisher(writer MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	if p.writer == nil {
		return errors.New("kafka writer is nil")
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.Type, err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   event.key(),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("publish event %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// NoopPublisher is used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

// New picks the Kafka publisher when brokers are configured.
func New(cfg config.Kafka) Publisher {
	if !cfg.Enabled() {
		return NoopPublisher{}
	}
	return NewKafkaPublisher(cfg)
}
