package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"slotbook/backend/internal/config"
	"slotbook/backend/internal/mail"
	"slotbook/backend/internal/queue"
	"slotbook/backend/internal/queue/redisqueue"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})).With(
		slog.String("service", "slotbook-worker"),
	)
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(cfg.LogLevel)})).With(
		slog.String("service", "slotbook-worker"),
	)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := redisqueue.New(ctx, redisqueue.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Error("redis connection failed", slog.Any("err", err), slog.String("redis_addr", cfg.RedisAddr))
		os.Exit(1)
	}
	defer func() {
		if err := q.Close(); err != nil {
			log.Warn("redis close failed", slog.Any("err", err))
		}
	}()

	mailer := mail.NewMailer(mail.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
	})

	log.Info("worker started", slog.String("queue", queue.CancellationMailKey))

	err = q.Consume(ctx, queue.CancellationMailKey, func(ctx context.Context, payload []byte) error {
		var job queue.CancellationMailJob
		if err := json.Unmarshal(payload, &job); err != nil {
			log.Error("malformed job payload dropped", slog.Any("err", err))
			return err
		}

		jobLog := log.With(slog.String("appointment_id", job.AppointmentID.String()))
		if job.Provider.Email == "" {
			jobLog.Error("job has no provider email; dropped")
			return nil
		}

		if err := mailer.Send(job.Provider.Email, mail.CancellationSubject, mail.CancellationBody(job)); err != nil {
			jobLog.Error("cancellation mail send failed", slog.Any("err", err))
			return err
		}

		jobLog.Info("cancellation mail sent", slog.String("to", job.Provider.Email))
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("consume loop stopped with error", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("worker stopped")
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
