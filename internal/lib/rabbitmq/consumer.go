package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
)

// ErrPermanent помечает ошибку обработки, которая не исчезнет при повторной
// доставке (например, неразбираемое тело). Такое сообщение не возвращается в очередь.
var ErrPermanent = errors.New("permanent message error")

// Permanent оборачивает err в ErrPermanent.
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// ConsumerMessage запускает потребителя очереди queueName. Сообщение
// подтверждается, если handler вернул nil. При ErrPermanent сообщение
// отбрасывается, при остальных ошибках возвращается в очередь.
// Одновременно обрабатывается не больше 10 сообщений.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error, log *slog.Logger) error {
	const op = "rabbitmq.ConsumerMessage"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, 10)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(delivery amqp.Delivery) {
					defer func() { <-sem }()
					handleDelivery(delivery, queueName, handler, log)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

func handleDelivery(d amqp.Delivery, queueName string, handler func([]byte) error, log *slog.Logger) {
	err := handler(d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
	case errors.Is(err, ErrPermanent):
		log.Error("handler failed permanently, drop message",
			slog.String("queue", queueName), slog.Int("size", len(d.Body)), sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	default:
		log.Warn("handler failed, requeue", slog.String("queue", queueName), sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	}
}
