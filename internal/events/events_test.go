package events

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

type ChannelMock struct {
	mock.Mock
}

func (m *ChannelMock) Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, mandatory, immediate, msg)
	return args.Error(0)
}

func TestPublish(t *testing.T) {
	fixed := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	lesson := &models.Lesson{
		ID:       "4b1f9d0e-58a0-4cf4-b0d5-0a3b7d2d6f10",
		Name:     "Piano",
		Start:    time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC),
		Duration: 45,
	}

	ch := new(ChannelMock)
	var body []byte
	ch.On("Publish", "lessons", "lesson.created", false, false, mock.AnythingOfType("amqp.Publishing")).
		Run(func(args mock.Arguments) {
			body = args.Get(4).(amqp.Publishing).Body
		}).
		Return(nil)

	p := NewPublisher(ch, "lessons")
	p.now = func() time.Time { return fixed }

	require.NoError(t, p.Publish(context.Background(), "lesson.created", lesson))
	ch.AssertExpectations(t)

	var got LessonEvent
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "lesson.created", got.Type)
	assert.True(t, fixed.Equal(got.OccurredAt))
	assert.Equal(t, lesson.ID, got.Lesson.ID)
	assert.Equal(t, 45, got.Lesson.Duration)
}

func TestPublishErrors(t *testing.T) {
	t.Run("channel error", func(t *testing.T) {
		ch := new(ChannelMock)
		ch.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(errors.New("closed"))
		err := NewPublisher(ch, "lessons").Publish(context.Background(), "lesson.deleted", &models.Lesson{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "events.Publish")
	})

	t.Run("canceled context", func(t *testing.T) {
		ch := new(ChannelMock)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewPublisher(ch, "lessons").Publish(ctx, "lesson.deleted", &models.Lesson{})
		assert.ErrorIs(t, err, context.Canceled)
		ch.AssertNotCalled(t, "Publish")
	})

	t.Run("nil lesson", func(t *testing.T) {
		err := NewPublisher(new(ChannelMock), "lessons").Publish(context.Background(), "lesson.updated", nil)
		assert.Error(t, err)
	})
}

func TestNoop(t *testing.T) {
	assert.NoError(t, Noop{}.Publish(context.Background(), "lesson.created", nil))
}

func TestAuditHandler(t *testing.T) {
	handle := AuditHandler(slog.New(slog.DiscardHandler))

	body, err := json.Marshal(LessonEvent{
		Type:       "lesson.created",
		OccurredAt: time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC),
		Lesson:     models.Lesson{ID: "l1", UserID: "u1", ClientID: "c1"},
	})
	require.NoError(t, err)

	assert.NoError(t, handle(body))
	assert.ErrorIs(t, handle([]byte("not json")), rabbitmq.ErrPermanent)
	assert.ErrorIs(t, handle([]byte(`{"lesson":{"id":"l1"}}`)), rabbitmq.ErrPermanent)
}
