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
	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tasklist/internal/handlers"
	"tasklist/internal/middleware"
	"tasklist/internal/models"
	"tasklist/internal/repositories"
	"tasklist/internal/services"
	"tasklist/pkg/rabbitmq"
)

// appConfig holds the token settings newApp needs beyond its collaborators.
type appConfig struct {
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// newApp wires repositories, services and handlers into a Fiber app. The
// event publisher may be nil, in which case task lifecycle events are
// skipped.
func newApp(db *gorm.DB, events services.EventPublisher, cfg appConfig) (*fiber.App, *services.AuthService) {
	userRepo := repositories.NewGORMUserRepository(db)
	taskRepo := repositories.NewGORMTaskRepository(db)

	creds := services.NewCredentialStore()
	authService := services.NewAuthService(userRepo, creds, cfg.jwtSecret, cfg.accessTTL, cfg.refreshTTL)
	userService := services.NewUserService(userRepo)
	taskService := services.NewTaskService(taskRepo, events)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)

	app := fiber.New()

	app.Use(middleware.RequestID())
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Public routes
	authHandler.RegisterRoutes(app)
	userHandler.RegisterRoutes(app)

	// Protected routes (require a bearer token)
	protected := app.Group("", middleware.AuthRequired(authService, userRepo))
	authHandler.RegisterProtectedRoutes(protected)
	userHandler.RegisterProtectedRoutes(protected)
	taskHandler.RegisterProtectedRoutes(protected)

	return app, authService
}

// logTaskEvent records consumed task lifecycle events. Deployments that act
// on the events replace this handler.
func logTaskEvent(msg amqp.Delivery) error {
	log.Printf("Received task event %s (tag %d): %s", msg.Type, msg.DeliveryTag, string(msg.Body))
	return nil
}

func main() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("JWT_SECRET", "123456")
	viper.SetDefault("JWT_ACCESS_TOKEN_EXPIRES_HOURS", 12)
	viper.SetDefault("JWT_REFRESH_TOKEN_EXPIRES_DAYS", 6)
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("SQLITE_PATH", "tasklist.db")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	// Postgres when a DSN is configured, local SQLite file otherwise.
	var dialector gorm.Dialector
	if dsn := viper.GetString("DATABASE_DSN"); dsn != "" {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(viper.GetString("SQLITE_PATH"))
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Task{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// The event publisher is optional; without a broker URL task lifecycle
	// events are simply not published.
	var events services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		go func() {
			log.Println("Starting RabbitMQ consumer for task events...")
			if consumerErr := mqClient.ConsumeTaskEvents(logTaskEvent); consumerErr != nil {
				log.Printf("Failed to start RabbitMQ consumer: %v", consumerErr)
			}
		}()
	}

	app, _ := newApp(db, events, appConfig{
		jwtSecret:  viper.GetString("JWT_SECRET"),
		accessTTL:  time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_EXPIRES_HOURS")) * time.Hour,
		refreshTTL: time.Duration(viper.GetInt("JWT_REFRESH_TOKEN_EXPIRES_DAYS")) * 24 * time.Hour,
	})

	appPort := viper.GetString("APP_PORT")
	log.Printf("Starting server on port %s", appPort)

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
