package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/positivipy/config"
	"github.com/spacesedan/positivipy/internal/clients"
	"github.com/spacesedan/positivipy/internal/consumers"
	"github.com/spacesedan/positivipy/internal/db"
	"github.com/spacesedan/positivipy/internal/logging"
)

func main() {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	config.LoadEnv(env)
	cfg := config.Load()
	logging.InitLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sinks []string
	for _, name := range cfg.ReplaySinks {
		// replaying into the stream it reads from would loop forever
		if name != db.SinkKafka {
			sinks = append(sinks, name)
		}
	}
	stores, closeStores := db.OpenStores(ctx, cfg, sinks)
	defer closeStores()
	if len(stores) == 0 {
		slog.Error("[Main] No replay sinks available, exiting")
		return
	}

	var consumer *kafka.Consumer
	for {
		var err error
		consumer, err = clients.NewKafkaConsumer(cfg.Kafka)
		if err == nil {
			break
		}

		slog.Warn("Kafka init failed, retrying...", slog.String("error", err.Error()))
		select {
		case <-ctx.Done():
			return
		case <-time.After(5 * time.Second):
		}
	}
	defer consumer.Close()

	slog.Info("[Main] Replaying events", slog.String("topic", cfg.Kafka.Topic), slog.Int("sinks", len(stores)))
	consumers.NewEventConsumer(consumer, stores).Run(ctx)
	slog.Info("[Main] Consumer stopped")
}
