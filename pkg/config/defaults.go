package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "staybook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultIdentityBaseURL    = "http://localhost:9000"
	DefaultIdentityRetryDelay = 2 * time.Second

	DefaultCurrency       = "usd"
	DefaultFrontendOrigin = "http://localhost:3000"

	DefaultSMTPHost = "localhost"
	DefaultSMTPPort = 587

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultBookingLockTTL = 10 * time.Second

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)

const (
	// Booking payment states.
	PayAtHotel = "Pay At Hotel"
	PaidOnline = "Stripe"

	// User roles.
	RoleGuest = "guest"
	RoleOwner = "owner"
)
