package events

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/burenotti/go_wellness_backend/internal/domain/wellness"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"io"
	"log/slog"
	"testing"
	"time"
)

type stubWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *stubWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *stubWriter) Close() error {
	w.closed = true
	return nil
}

type otherEvent struct{}

func (otherEvent) Type() string           { return "other" }
func (otherEvent) PublishedAt() time.Time { return time.Time{} }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestHandleScoreCalculated(t *testing.T) {
	w := &stubWriter{}
	p := newKafkaPublisher(w, testLogger())

	at := time.Date(2026, time.October, 19, 8, 30, 0, 0, time.UTC)
	err := p.HandleScoreCalculated(wellness.ScoreCalculatedEvent{
		At:         at,
		UserID:     "user-1",
		Date:       time.Date(2026, time.October, 19, 0, 0, 0, 0, time.UTC),
		TotalScore: 73.25,
		Category:   wellness.CategoryGood,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	require.Equal(t, "user-1", string(msg.Key))
	require.Equal(t, at, msg.Time)
	require.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte(wellness.EventScoreCalculated)}}, msg.Headers)

	var payload ScorePayload
	require.NoError(t, json.Unmarshal(msg.Value, &payload))
	require.Equal(t, ScorePayload{
		UserID:       "user-1",
		Date:         "2026-10-19",
		TotalScore:   73.25,
		Category:     wellness.CategoryGood,
		CalculatedAt: at,
	}, payload)
}

func TestHandleScoreCalculatedErrors(t *testing.T) {
	boom := errors.New("broker down")
	w := &stubWriter{err: boom}
	p := newKafkaPublisher(w, testLogger())

	err := p.HandleScoreCalculated(wellness.ScoreCalculatedEvent{UserID: "user-1"})
	require.ErrorIs(t, err, boom)

	err = p.HandleScoreCalculated(otherEvent{})
	require.Error(t, err)

	require.NoError(t, p.Close())
	require.True(t, w.closed)
}
