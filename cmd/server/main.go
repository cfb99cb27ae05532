package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"food_ordering/internal/config"
	"food_ordering/internal/database"
	"food_ordering/internal/handlers"
	"food_ordering/internal/logger"
	"food_ordering/internal/messaging"
	"food_ordering/internal/middleware"
	"food_ordering/internal/migrations"
	"food_ordering/internal/redis"
	"food_ordering/internal/services"
	"food_ordering/pkg/mailer"

	"github.com/gin-gonic/gin"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg := config.Load()
	appLog := logger.NewLogger("food-ordering")

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := migrations.RunMigrations(db, cfg, false, appLog); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	mailClient := mailer.NewClient(cfg.MailAPIURL, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)
	if !mailClient.Enabled() {
		appLog.Warn("startup", "", "MAIL_API_URL not set, notification emails are disabled")
	}

	// Order events are optional; without a broker orders are still placed.
	var orderEvents services.OrderEventPublisher
	var publisher *messaging.Publisher
	if cfg.RabbitMQURL != "" {
		conn, err := messaging.Dial(cfg.RabbitMQURL)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ:", err)
		}
		publisher = messaging.NewPublisher(conn, appLog)
		orderEvents = publisher
	} else {
		appLog.Warn("startup", "", "RABBITMQ_URL not set, order events are disabled")
	}

	// Initialize services
	authService := services.NewAuthService(db, redisClient, services.AuthConfig{
		Secret:     cfg.JWTSecret,
		TokenTTL:   cfg.TokenTTL,
		SessionTTL: cfg.SessionTTL(),
	}, appLog)
	userService := services.NewUserService(db, services.NewNotificationService(mailClient, appLog), appLog)
	restaurantService := services.NewRestaurantService(db, redisClient, appLog)
	menuService := services.NewMenuService(db, redisClient, cfg.MenuCacheTTL(), appLog)
	cartService := services.NewCartService(db, appLog)
	orderService := services.NewOrderService(db, orderEvents, appLog)

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(appLog), middleware.CORS(cfg.CORSAllowedOrigins))

	handlers.RegisterRoutes(router, handlers.Handlers{
		User:       handlers.NewUserHandler(userService, authService, appLog),
		Restaurant: handlers.NewRestaurantHandler(restaurantService, menuService, appLog),
		Cart:       handlers.NewCartHandler(cartService, appLog),
		Order:      handlers.NewOrderHandler(orderService, appLog),
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"database": handlers.PingFunc(func(ctx context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			}),
			"redis": redisClient,
		}),
	}, authService, appLog)

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLog.Info("startup", "", "server starting", slog.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-ctx.Done()
	appLog.Info("shutdown", "", "shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLog.Error("shutdown", "", "http server shutdown failed", err)
	}

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			appLog.Error("shutdown", "", "failed to close rabbitmq connection", err)
		}
	}
	if err := redisClient.Close(); err != nil {
		appLog.Error("shutdown", "", "failed to close redis client", err)
	}
	if err := database.Close(db); err != nil {
		appLog.Error("shutdown", "", "failed to close database", err)
	}
	appLog.Info("shutdown", "", "server stopped")
}
