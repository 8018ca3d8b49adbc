package main

import (
	"context"
	"os/signal"
	"syscall"

	newsletterrepository "dwellio/internal/newsletter/repository"
	notifierservice "dwellio/internal/notifier/service"
	"dwellio/pkg/config"
	"dwellio/pkg/kafka"
	kafka_config "dwellio/pkg/kafka/config"
)

const ServiceName = "dwellio-notifier"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Dwellio notifier service")

	kafkaCfg := kafka_config.Load()

	dlq := kafka.NewProducer(kafkaCfg, cfg.PropertyEventsDLQ, cfg.Log)
	defer dlq.Close()

	notifier := notifierservice.NewNotifierService(
		newsletterrepository.NewMongoNewsletterRepository(cfg),
		&notifierservice.LogSender{Log: cfg.Log},
		cfg,
	)

	consumer := kafka.NewConsumer(
		kafkaCfg,
		cfg.PropertyEventsTopic,
		cfg.NotifierGroupID,
		notifier.HandleMessage,
		cfg.Log,
		kafka.WithConsumerDLQ(dlq),
	)
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming property events",
		"topic", cfg.PropertyEventsTopic,
		"group", cfg.NotifierGroupID,
	)
	if err := consumer.Run(ctx); err != nil {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped gracefully")
}
