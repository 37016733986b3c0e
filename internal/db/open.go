package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/spacesedan/positivipy/config"
	"github.com/spacesedan/positivipy/internal/clients"
)

const (
	kafkaInitAttempts = 3
	kafkaInitBackoff  = 5 * time.Second
)

// OpenStores connects every named sink and returns them with a func that
// closes their clients. A sink that cannot be opened is skipped so
// persistence problems never keep the service down.
func OpenStores(ctx context.Context, cfg config.AppConfig, sinks []string) ([]Store, func()) {
	var (
		stores  []Store
		closers []func()
	)
	for _, name := range sinks {
		var (
			store  Store
			closer func()
			err    error
		)
		switch name {
		case SinkPostgres:
			store, closer, err = openPostgres(ctx, cfg.Postgres)
		case SinkDynamoDB:
			store, err = openDynamo(ctx, cfg.Dynamo)
		case SinkKafka:
			store, closer, err = openKafka(cfg.Kafka)
		default:
			err = fmt.Errorf("unknown sink %q", name)
		}
		if err != nil {
			slog.Warn("[DB] Sink disabled", slog.String("sink", name), slog.String("error", err.Error()))
			continue
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		slog.Info("[DB] Sink enabled", slog.String("sink", name))
		stores = append(stores, store)
	}

	return stores, func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig) (Store, func(), error) {
	pg, err := clients.NewPostgresClient(ctx, cfg.DSN())
	if err != nil {
		return nil, nil, err
	}
	if cfg.Migrate {
		if err := ApplyMigrations(cfg.DSN()); err != nil {
			slog.Warn("[DB] Migrations failed", slog.String("error", err.Error()))
		}
	}
	return NewPostgresStore(pg.DB), pg.Close, nil
}

func openDynamo(ctx context.Context, cfg config.DynamoConfig) (Store, error) {
	client, err := clients.NewDynamoDBClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewDynamoStore(client, cfg.QuotesTable, cfg.VotesTable), nil
}

func openKafka(cfg config.KafkaConfig) (Store, func(), error) {
	var (
		producer *kafka.Producer
		err      error
	)
	for attempt := 1; attempt <= kafkaInitAttempts; attempt++ {
		producer, err = clients.NewKafkaProducer(cfg)
		if err == nil {
			break
		}
		slog.Warn("Kafka init failed, retrying...",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))
		if attempt < kafkaInitAttempts {
			time.Sleep(kafkaInitBackoff)
		}
	}
	if err != nil {
		return nil, nil, err
	}
	return NewEventStore(producer, cfg.Topic), func() { clients.CloseKafkaProducer(producer) }, nil
}
