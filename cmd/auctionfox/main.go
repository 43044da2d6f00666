package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/khoadanwneee/AuctionFox/app/repository"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/cache"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/database"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/env"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/jobqueue"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/metrics/counter"
	"github.com/khoadanwneee/AuctionFox/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	// repositories + background email workers
	repository.InitializeFactory(database.GetDB())
	jobqueue.GetQueue()

	// periodic flush of pending view counters
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			if err := counter.FlushAll(); err != nil {
				log.Printf("Failed to flush view counters: %v", err)
			}
		}
	}()

	// init fiber app
	app := fiber.New(fiber.Config{
		AppName: "AuctionFox",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
