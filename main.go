package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/miamibeach-ops/hk-backend/config"
	"github.com/miamibeach-ops/hk-backend/database"
	"github.com/miamibeach-ops/hk-backend/internal/jobs"
	"github.com/miamibeach-ops/hk-backend/internal/models"
	"github.com/miamibeach-ops/hk-backend/internal/routes"
	"github.com/miamibeach-ops/hk-backend/internal/services"
	"github.com/miamibeach-ops/hk-backend/internal/storage"
)

func main() {
	config.LoadConfig()

	// Initialize storage
	var store storage.Store

	if config.AppConfig.UseMemoryStore {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.User{},
			&models.OtpChallenge{},
			&models.BookingNotification{},
			&models.HousekeepingRecord{},
			&models.RoomConfig{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	storage.SetStore(store)

	// Initialize services
	mailer := services.NewSendGridMailer()
	otpService := services.NewOTPService(store, mailer)
	webhookService := services.NewWebhookService(store)

	// Start the notification retention sweeper
	retentionJob := jobs.NewRetentionJob(store)
	retentionJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName:   "HK Miami Backend v1.0.0",
		BodyLimit: 10 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, store, otpService, webhookService, retentionJob)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping retention job...")
		retentionJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 HK Miami Backend starting on port %s", config.AppConfig.Port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("📧 Email: %s", emailStatus())
	log.Printf("🔔 Webhook endpoint: /webhook/booking")
	log.Println("========================================")

	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}

func storageType() string {
	if config.AppConfig.UseMemoryStore {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func emailStatus() string {
	if config.AppConfig.SendGridAPIKey == "" {
		return "Not configured"
	}
	return "Configured (SendGrid)"
}
