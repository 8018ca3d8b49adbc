package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvPredictScript      = "PREDICT_SCRIPT_PATH"
	EnvPredictInterpreter = "PREDICT_INTERPRETER"
	EnvPredictTimeout     = "PREDICT_TIMEOUT"

	EnvCORSOrigin = "CORS_ORIGIN"

	EnvEventsEnabled       = "EVENTS_ENABLED"
	EnvPropertyEventsTopic = "PROPERTY_EVENTS_TOPIC"
	EnvPropertyEventsDLQ   = "PROPERTY_EVENTS_DLQ_TOPIC"
	EnvNotifierGroupID     = "NOTIFIER_GROUP_ID"
)
