// Package events публикует события об изменении занятий в RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lesson-scheduler/internal/models"
)

// LessonEvent — тело сообщения о занятии.
type LessonEvent struct {
	Type       string        `json:"type"`
	OccurredAt time.Time     `json:"occurred_at"`
	Lesson     models.Lesson `json:"lesson"`
}

// Publisher публикует события в обменник. Ключ маршрутизации совпадает с типом события.
type Publisher struct {
	ch       rabbitmq.Channel
	exchange string
	now      func() time.Time
}

// NewPublisher создаёт издателя событий поверх канала ch.
func NewPublisher(ch rabbitmq.Channel, exchange string) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: time.Now}
}

// Publish отправляет событие eventType о занятии l.
func (p *Publisher) Publish(ctx context.Context, eventType string, l *models.Lesson) error {
	const op = "events.Publish"
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if l == nil {
		return fmt.Errorf("%s: nil lesson", op)
	}

	event := LessonEvent{
		Type:       eventType,
		OccurredAt: p.now().UTC(),
		Lesson:     *l,
	}
	if err := rabbitmq.PublishMessage(p.ch, p.exchange, eventType, event); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Noop ничего не публикует. Используется, когда брокер не настроен.
type Noop struct{}

// Publish всегда возвращает nil.
func (Noop) Publish(context.Context, string, *models.Lesson) error { return nil }

// AuditHandler возвращает обработчик сообщений очереди аудита: он
// разбирает событие и пишет его в журнал. Неразбираемое сообщение
// и событие без типа отбрасываются: ошибка помечена rabbitmq.ErrPermanent.
func AuditHandler(log *slog.Logger) func([]byte) error {
	return func(body []byte) error {
		const op = "events.AuditHandler"
		var event LessonEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%s: %w", op, rabbitmq.Permanent(err))
		}
		if event.Type == "" {
			return fmt.Errorf("%s: %w", op, rabbitmq.Permanent(errors.New("event type is empty")))
		}
		log.Info("lesson event",
			slog.String("type", event.Type),
			slog.Time("occurred_at", event.OccurredAt),
			slog.String("lesson_id", event.Lesson.ID),
			slog.String("user_id", event.Lesson.UserID),
			slog.String("client_id", event.Lesson.ClientID),
		)
		return nil
	}
}
