package events

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/burenotti/go_wellness_backend/internal/domain"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"github.com/segmentio/kafka-go"
	"log/slog"
	"time"
)

const DefaultWriteTimeout = 10 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ScorePayload is the message value written for every calculated score.
type ScorePayload struct {
	UserID       string            `json:"user_id"`
	Date         string            `json:"date"`
	TotalScore   float64           `json:"total_score"`
	Category     wellness.Category `json:"category"`
	CalculatedAt time.Time         `json:"calculated_at"`
}

// KafkaPublisher forwards score events from the message bus to a Kafka topic.
type KafkaPublisher struct {
	writer       messageWriter
	logger       *slog.Logger
	writeTimeout time.Duration
}

func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return newKafkaPublisher(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Compression:  kafka.Snappy,
	}, logger)
}

func newKafkaPublisher(w messageWriter, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:       w,
		logger:       logger,
		writeTimeout: DefaultWriteTimeout,
	}
}

// HandleScoreCalculated is registered on the bus for wellness.EventScoreCalculated.
func (p *KafkaPublisher) HandleScoreCalculated(event domain.Event) error {
	e, ok := event.(wellness.ScoreCalculatedEvent)
	if !ok {
		return fmt.Errorf("unexpected event %T for %s", event, event.Type())
	}

	msg, err := encodeScore(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.writeTimeout)
	defer cancel()

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish score of user %s: %w", e.UserID, err)
	}
	p.logger.Debug("score event published", "user_id", e.UserID, "date", e.Date.Format(time.DateOnly))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encodeScore(e wellness.ScoreCalculatedEvent) (kafka.Message, error) {
	value, err := json.Marshal(ScorePayload{
		UserID:       e.UserID,
		Date:         e.Date.Format(time.DateOnly),
		TotalScore:   e.TotalScore,
		Category:     e.Category,
		CalculatedAt: e.At,
	})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(e.UserID),
		Value: value,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type())},
		},
	}, nil
}
