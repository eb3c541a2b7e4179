package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"katalog/internal/clients"
	"katalog/internal/handlers"
	"katalog/internal/middleware"
	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"
)

// NewApp wires the Fiber application from its collaborators. Split out of
// main so tests can assemble the same app against an in-memory database and
// a fake category service.
func NewApp(repo repositories.ProductRepository, categories services.CategoryResolver, events services.EventPublisher, jwtSecret string) (*fiber.App, *services.AuthService) {
	authService := services.NewAuthService(jwtSecret)
	productService := services.NewProductService(repo, categories, events)
	productHandler := handlers.NewProductHandler(productService)

	app := fiber.New()
	app.Use(logger.New()) // Request logger

	api := app.Group("/api")
	productHandler.RegisterRoutes(api, middleware.AdminRequired(authService))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, authService
}

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=katalog port=5432 sslmode=disable")
	viper.SetDefault("JWT_SECRET", "change-me")
	viper.SetDefault("CATEGORY_BASE_URL", "http://localhost:8082/api")
	viper.SetDefault("RABBITMQ_URL", "") // empty disables event publishing
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Database ---
	// TranslateError lets the repository map unique-index violations to
	// Conflict without driver-specific checks.
	db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// --- Downstream category service ---
	categoryClient := clients.NewCategoryClient(viper.GetString("CATEGORY_BASE_URL"), clients.DefaultCategoryTimeout)

	// --- Optional RabbitMQ publisher ---
	var events services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient
	}

	// --- Application ---
	productRepo := repositories.NewGORMProductRepository(db)
	app, _ := NewApp(productRepo, categoryClient, events, viper.GetString("JWT_SECRET"))

	// --- Start HTTP Server ---
	log.Printf("Starting catalog service on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
