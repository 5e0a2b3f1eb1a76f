package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecret = "JWT_SECRET"

	EnvIdentityBaseURL    = "IDENTITY_BASE_URL"
	EnvIdentityRetryDelay = "IDENTITY_RETRY_DELAY"

	EnvStripeSecretKey     = "STRIPE_SECRET_KEY"
	EnvStripeWebhookSecret = "STRIPE_WEBHOOK_SECRET"
	EnvCurrency            = "CURRENCY"
	EnvFrontendOrigin      = "FRONTEND_ORIGIN"

	EnvSMTPHost    = "SMTP_HOST"
	EnvSMTPPort    = "SMTP_PORT"
	EnvSMTPUser    = "SMTP_USER"
	EnvSMTPPass    = "SMTP_PASS"
	EnvSenderEmail = "SENDER_EMAIL"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvBookingLockTTL = "BOOKING_LOCK_TTL"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
