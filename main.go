package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"

	"github.com/vivario/reservation-service/config"
	"github.com/vivario/reservation-service/internal/consumer"
	"github.com/vivario/reservation-service/internal/handler"
	"github.com/vivario/reservation-service/internal/i18n"
	"github.com/vivario/reservation-service/internal/middleware"
	"github.com/vivario/reservation-service/internal/repository"
	"github.com/vivario/reservation-service/internal/service"
	"github.com/vivario/reservation-service/internal/session"
	"github.com/vivario/reservation-service/internal/wizard"
	"github.com/vivario/reservation-service/pkg/cep"
	"github.com/vivario/reservation-service/pkg/cpf"
	"github.com/vivario/reservation-service/pkg/database"
	"github.com/vivario/reservation-service/pkg/rabbitmq"
	redisclient "github.com/vivario/reservation-service/pkg/redis"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())

	// Redis: wizard sessions (drafts + carts) with TTL
	rdb, err := redisclient.NewClient(redisclient.Config{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		log.Fatalf("failed to connect to Redis: %v", err)
	}
	defer rdb.Close()

	draftStore := session.NewRedisStore(rdb, cfg.SessionTTL)
	cartStore := session.NewRedisCartStore(rdb, cfg.SessionTTL)

	// RabbitMQ consumer: sync experience catalog from the admin service
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	// RabbitMQ publisher: announce submitted reservations
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, rabbitmq.ReservationExchange)
	if err != nil {
		log.Fatalf("failed to create RabbitMQ publisher: %v", err)
	}
	defer publisher.Close()

	// Repositories
	experienceRepo := repository.NewExperienceRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	experienceConsumer := consumer.NewExperienceConsumer(experienceRepo)
	experienceConsumer.Start(msgs)

	// Wizard core with the CPF checksum collaborator
	machine := wizard.Machine{Validator: wizard.Validator{CheckNationalID: cpf.IsValid}}

	// Services
	wizardSvc := service.NewWizardService(machine, draftStore, cartStore, experienceRepo, reservationRepo, publisher)
	catalogSvc := service.NewCatalogService(experienceRepo, publisher)
	addressSvc := service.NewAddressService(cep.NewClient(cfg.CEPBaseURL))

	translator := i18n.New(cfg.DefaultLocale)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.NewErrorHandler(translator)
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "reservation-service"})
	})

	handler.NewWizardHandler(wizardSvc, machine.Validator, translator).RegisterRoutes(e)
	handler.NewCatalogHandler(catalogSvc).RegisterRoutes(e)
	handler.NewAddressHandler(addressSvc, translator).RegisterRoutes(e)

	log.Printf("Reservation Service starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
