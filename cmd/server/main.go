package main

import (
	bookingshandler "staybook/internal/bookings/handler"
	bookingsrepo "staybook/internal/bookings/repository"
	bookingsservice "staybook/internal/bookings/service"
	bookingsvalidator "staybook/internal/bookings/validator"
	hotelshandler "staybook/internal/hotels/handler"
	hotelsrepo "staybook/internal/hotels/repository"
	hotelsservice "staybook/internal/hotels/service"
	hotelsvalidator "staybook/internal/hotels/validator"
	"staybook/internal/notifications"
	paymentsgateway "staybook/internal/payments/gateway"
	paymentshandler "staybook/internal/payments/handler"
	paymentsservice "staybook/internal/payments/service"
	roomshandler "staybook/internal/rooms/handler"
	roomsrepo "staybook/internal/rooms/repository"
	roomsservice "staybook/internal/rooms/service"
	roomsvalidator "staybook/internal/rooms/validator"
	usershandler "staybook/internal/users/handler"
	usersrepo "staybook/internal/users/repository"
	usersservice "staybook/internal/users/service"
	"staybook/pkg/app"
	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/contracts"
	"staybook/pkg/kafka"
	kafka_config "staybook/pkg/kafka/config"
	kafka_middleware "staybook/pkg/kafka/middleware"
	"staybook/pkg/middleware"
)

const ServiceName = "server"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting booking API server")

	publisher := initPublisher(cfg)
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(initHandlers(cfg, publisher)...)
	serverApp.Run()
}

func initPublisher(cfg *config.Config) notifications.Publisher {
	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}

	producer, err := kafka.NewProducer(kafkaCfg, notifications.TopicBookingEvents, notifications.TopicBookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	return notifications.NewKafkaPublisher(producer, ServiceName)
}

func initHandlers(cfg *config.Config, publisher notifications.Publisher) []contracts.Handler {
	auth := middleware.RequireAuth(cfg.JWTSecret, cfg.Log)

	bookingRepo := bookingsrepo.NewMongoBookingRepository(cfg)
	lockRepo := bookingsrepo.NewBookingLockRepository(cfg)
	roomRepo := roomsrepo.NewMongoRoomRepository(cfg)
	hotelRepo := hotelsrepo.NewMongoHotelRepository(cfg)
	userRepo := usersrepo.NewMongoUserRepository(cfg)

	identity := client.NewIdentityClient(cfg.IdentityBaseURL, cfg.IdentityRetryDelay)
	gateway := paymentsgateway.NewStripeGateway(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	bookingService := bookingsservice.NewBookingService(
		bookingRepo,
		lockRepo,
		roomRepo,
		hotelRepo,
		userRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)
	paymentService := paymentsservice.NewPaymentService(bookingRepo, hotelRepo, gateway, cfg)
	roomService := roomsservice.NewRoomService(roomRepo, hotelRepo, roomsvalidator.NewRoomValidator(), cfg)
	hotelService := hotelsservice.NewHotelService(hotelRepo, userRepo, hotelsvalidator.NewHotelValidator(), cfg)
	userService := usersservice.NewUserService(userRepo, identity, cfg)

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		bookingshandler.NewBookingHandler(bookingService, auth, cfg.Log),
		paymentshandler.NewPaymentHandler(paymentService, auth, cfg.Log),
		roomshandler.NewRoomHandler(roomService, auth, cfg.Log),
		hotelshandler.NewHotelHandler(hotelService, auth, cfg.Log),
		usershandler.NewUserHandler(userService, auth, cfg.Log),
	}
}
