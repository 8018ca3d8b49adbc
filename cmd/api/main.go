package main

import (
	bookinghandler "dwellio/internal/bookings/handler"
	bookingrepository "dwellio/internal/bookings/repository"
	bookingservice "dwellio/internal/bookings/service"
	bookingvalidator "dwellio/internal/bookings/validator"
	lookupshandler "dwellio/internal/lookups/handler"
	lookupsservice "dwellio/internal/lookups/service"
	newsletterhandler "dwellio/internal/newsletter/handler"
	newsletterrepository "dwellio/internal/newsletter/repository"
	newsletterservice "dwellio/internal/newsletter/service"
	predictionhandler "dwellio/internal/prediction/handler"
	predictionservice "dwellio/internal/prediction/service"
	propertyhandler "dwellio/internal/properties/handler"
	propertyrepository "dwellio/internal/properties/repository"
	propertyservice "dwellio/internal/properties/service"
	propertyvalidator "dwellio/internal/properties/validator"
	"dwellio/pkg/app"
	"dwellio/pkg/config"
	"dwellio/pkg/contracts"
	"dwellio/pkg/kafka"
	kafka_config "dwellio/pkg/kafka/config"
	kafka_middleware "dwellio/pkg/kafka/middleware"
)

const ServiceName = "dwellio-api"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Dwellio API service")

	producer := initProducer(cfg)
	if producer != nil {
		defer producer.Close()
	}

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, initHandlers(cfg, producer))
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	if !cfg.EventsEnabled {
		cfg.Log.Info("Property events disabled")
		return nil
	}

	kafkaCfg := kafka_config.Load()
	producer := kafka.NewProducer(
		kafkaCfg,
		cfg.PropertyEventsTopic,
		cfg.Log,
		kafka.WithDLQ(kafkaCfg.Brokers, cfg.PropertyEventsDLQ),
		kafka.WithProducerMiddleware(kafka_middleware.PublishLogging(cfg.Log)),
	)

	cfg.Log.Info("Property event producer initialized",
		"topic", cfg.PropertyEventsTopic,
		"dlq", cfg.PropertyEventsDLQ,
	)
	return producer
}

func initHandlers(cfg *config.Config, producer *kafka.Producer) contracts.Handler {
	propertyRepo := propertyrepository.NewMongoPropertyRepository(cfg)

	var publisher propertyservice.EventPublisher
	if producer != nil {
		publisher = producer
	}
	propertySvc := propertyservice.NewPropertyService(
		propertyRepo,
		propertyvalidator.NewPropertyValidator(),
		publisher,
		cfg,
	)

	bookingSvc := bookingservice.NewBookingService(
		bookingrepository.NewMongoBookingRepository(cfg),
		bookingrepository.NewBookingLockRepository(cfg),
		propertySvc,
		bookingvalidator.NewBookingValidator(),
		cfg,
	)

	newsletterSvc := newsletterservice.NewNewsletterService(
		newsletterrepository.NewMongoNewsletterRepository(cfg),
		cfg,
	)

	lookupsSvc := lookupsservice.NewLookupsService(propertyRepo, cfg)
	predictionSvc := predictionservice.NewPredictionService(cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return contracts.Compose(
		propertyhandler.NewPropertyHandler(propertySvc, cfg.Log),
		bookinghandler.NewBookingHandler(bookingSvc, cfg.Log),
		newsletterhandler.NewNewsletterHandler(newsletterSvc, cfg.Log),
		lookupshandler.NewLookupsHandler(lookupsSvc, cfg.Log),
		predictionhandler.NewPredictionHandler(predictionSvc, cfg.Log),
	)
}
