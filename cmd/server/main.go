package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/example/ruchitara/internal/config"
	"github.com/example/ruchitara/internal/database"
	"github.com/example/ruchitara/internal/handlers"
	"github.com/example/ruchitara/internal/otp"
	"github.com/example/ruchitara/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	var store otp.Store
	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Fatalf("redis connection failed: %v", err)
		}
		store = otp.NewRedisStore(client, cfg.OTPTTL, cfg.OTPMaxAttempts)
	} else {
		memStore := otp.NewMemoryStore(cfg.OTPTTL, cfg.OTPMaxAttempts)
		defer memStore.Close()
		store = memStore
	}

	app := fiber.New(fiber.Config{
		AppName:      "Ruchitara Backend",
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, store)

	app.Use(handlers.NotFoundHandler)

	if cfg.OTPBypass {
		log.Println("OTP bypass mode enabled: any submitted code will be accepted")
	}

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
