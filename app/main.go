package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"

	"registration/config"
	"registration/domain"
	"registration/services/registration/delivery"
	"registration/services/registration/repository"
	"registration/services/registration/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var log *logrus.Logger
var wg sync.WaitGroup

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on the environment")
	}

	log = config.GetLogrusInstance()

	startHTTP()
}

func bootStore() (domain.RegistrationRepo, error) {
	if config.GetStoreDriver() == "postgres" {
		db, err := config.BootDB()
		if err != nil {
			return nil, err
		}
		return repository.NewPostgresRepository(db), nil
	}

	return repository.NewSheetRepository(config.GetSheetPath()), nil
}

func startHTTP() {
	log.Info("Starting HTTP")
	app := fiber.New(config.GetFiberConfig())

	// CORS Middleware
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	repo, err := bootStore()
	if err != nil {
		log.Fatalf("Failed to boot record store: %v", err)
	}

	if err := repo.EnsureSchema(context.Background()); err != nil {
		log.Fatalf("Failed to initialize record store schema: %v", err)
	}

	uc := usecase.NewRegistrationUseCase(repo, 30*time.Second)
	delivery.NewRegistrationHandler(app, uc)

	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("Starting HTTP server for Public on port %s", config.GetFiberHttpPort())
		if err := app.Listen(config.GetFiberListenAddress()); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, os.Kill)

	<-signalChan

	log.Info("Shutting down the server...")

	if err := app.Shutdown(); err != nil {
		log.Errorf("Error during server shutdown: %v", err)
	}

	wg.Wait()
	log.Info("Server shut down gracefully")
}
