// Package main содержит потребителя очереди аудита занятий.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/lesson-scheduler/internal/config"
	"github.com/magabrotheeeer/lesson-scheduler/internal/events"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/lesson-scheduler/internal/lib/sl"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("starting eventlog", slog.String("env", cfg.Env))

	if cfg.RabbitMQ.URL == "" {
		logger.Error("rabbitmq url is not set")
		os.Exit(1)
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQ.URL, cfg.RabbitMQ.Retries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		logger.Error("failed to connect to RabbitMQ", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = conn.Close()
	}()

	ch, err := rabbitmq.SetupChannel(conn, cfg.RabbitMQ.Exchange, rabbitmq.LessonQueues())
	if err != nil {
		logger.Error("failed to setup RabbitMQ channel", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = ch.Close()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rabbitmq.ConsumerMessage(ctx, ch, rabbitmq.LessonAuditQueue, events.AuditHandler(logger), logger); err != nil {
		logger.Error("failed to start consumer", sl.Err(err))
		os.Exit(1)
	}
	logger.Info("consumer started", slog.String("queue", rabbitmq.LessonAuditQueue))

	<-ctx.Done()
	logger.Info("eventlog stopped")
}
