package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "dwellio"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 60
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	// Canonical pagination defaults. The listings UI asks for 8 per page
	// explicitly; everything else gets 10.
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	DefaultFeaturedLimit = 6
	DefaultSimilarLimit  = 4

	DefaultPredictScript      = "../ml/src/predict.py"
	DefaultPredictInterpreter = "python3"
	DefaultPredictTimeout     = 20 * time.Second

	DefaultCORSOrigin = "http://localhost:5173"

	DefaultPropertyEventsTopic = "property.events"
	DefaultPropertyEventsDLQ   = "property.events.dlq"
	DefaultNotifierGroupID     = "newsletter-notifier"
)

// Booking lifecycle states.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// Payment states.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
	PaymentFailed   = "failed"
)

// Property availability states. Free-form status, not a guarded lifecycle.
const (
	Available   = "available"
	Rented      = "rented"
	Sold        = "sold"
	Maintenance = "maintenance"
)
