package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"github.com/HSouheill/itam_backend/config"
	"github.com/HSouheill/itam_backend/controllers"
	"github.com/HSouheill/itam_backend/metrics"
	"github.com/HSouheill/itam_backend/middleware"
	"github.com/HSouheill/itam_backend/repositories"
	"github.com/HSouheill/itam_backend/repositories/memstore"
	"github.com/HSouheill/itam_backend/routes"
	"github.com/HSouheill/itam_backend/services"
	"github.com/HSouheill/itam_backend/utils"
	"github.com/HSouheill/itam_backend/websocket"
)

// stores groups the repositories the services are built on
type stores struct {
	users     repositories.UserStore
	assets    repositories.AssetStore
	requests  repositories.RequestStore
	custom    repositories.CustomRequestStore
	payments  repositories.PaymentStore
	tx        repositories.Transactor
	blacklist repositories.TokenBlacklist
	ping      controllers.PingFunc
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := config.InitLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to database
	var mongoClient *mongo.Client
	var st stores
	switch cfg.StoreDriver {
	case config.DriverMemory:
		zap.L().Warn("Using in-memory store, data is lost on restart")
		st = memoryStores(memstore.New())
	default:
		mongoClient, err = config.ConnectDB(cfg)
		if err != nil {
			zap.L().Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		st = mongoStores(mongoClient, cfg.DBName)
	}

	// Connect to Redis; revocations stay in process memory without it
	redisClient := config.ConnectRedis(cfg)
	if redisClient != nil {
		st.blacklist = repositories.NewRedisTokenBlacklist(redisClient)
	} else if st.blacklist == nil {
		st.blacklist = memstore.New().Blacklist()
	}

	// Initialize Firebase
	var verifier services.IdentityVerifier
	app, err := config.InitFirebase(context.Background(), cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize Firebase", zap.Error(err))
	}
	if app != nil {
		firebaseVerifier, err := services.NewFirebaseVerifier(context.Background(), app)
		if err != nil {
			zap.L().Fatal("Failed to initialize Firebase auth", zap.Error(err))
		}
		verifier = firebaseVerifier
	}

	var provider services.PaymentProvider
	if cfg.StripeSecretKey != "" {
		provider = services.NewStripeProvider(cfg.StripeSecretKey)
	} else {
		zap.L().Warn("STRIPE_SECRET_KEY not set, payment intents are disabled")
	}

	var notifier services.Notifier
	if mail := services.NewMailService(services.MailConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.FromEmail,
	}); mail != nil {
		notifier = mail
	}

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	identity := services.NewIdentityService(st.users)
	assets := services.NewAssetService(st.assets)
	requests := services.NewRequestService(st.requests, st.custom, st.assets, st.tx, wsHub, notifier)
	stats := services.NewStatsService(st.requests, st.custom, st.assets)
	payments := services.NewPaymentService(provider, st.payments, cfg.PaymentTimeout)
	tokens := middleware.NewTokenManager(cfg.TokenSecret, cfg.TokenTTL, st.blacklist)

	// Create a new Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewValidator()

	rateLimiter := middleware.NewRateLimiter()
	stopCleanup := make(chan struct{})
	rateLimiter.StartCleanup(time.Minute, stopCleanup)

	// Middleware
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS(cfg.AllowedOrigins))
	e.Use(middleware.SecurityHeaders())
	e.Use(metrics.Middleware())
	e.Use(rateLimiter.RateLimit())
	if cfg.IsProduction() {
		e.Use(httpsRedirect())
	}

	timeout := cfg.DBTimeout
	routes.SetupRoutes(e, &routes.Handlers{
		Tokens:       tokens,
		Admins:       identity,
		AdminTimeout: timeout,
		Auth:         controllers.NewAuthController(tokens, identity, verifier, cfg.IsProduction(), timeout),
		Users:        controllers.NewUserController(identity, timeout),
		Assets:       controllers.NewAssetController(assets, timeout),
		Requests:     controllers.NewRequestController(requests, timeout),
		Stats:        controllers.NewStatsController(stats, timeout),
		Payments:     controllers.NewPaymentController(payments, timeout),
		Feed:         controllers.NewFeedController(wsHub),
		Health:       controllers.NewHealthController(st.ping, timeout),
	})

	// Start server
	go func() {
		zap.S().Infow("Starting server", "port", cfg.Port, "env", cfg.Env, "store", cfg.StoreDriver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	zap.L().Info("Shutting down server")

	shutdown(e, cfg.ShutdownTimeout, wsHub, mongoClient, redisClient)
	close(stopCleanup)
}

func memoryStores(store *memstore.Store) stores {
	return stores{
		users:     store.Users(),
		assets:    store.Assets(),
		requests:  store.Requests(),
		custom:    store.CustomRequests(),
		payments:  store.Payments(),
		tx:        store,
		blacklist: store.Blacklist(),
	}
}

func mongoStores(client *mongo.Client, dbName string) stores {
	db := client.Database(dbName)
	return stores{
		users:    repositories.NewUserRepository(db),
		assets:   repositories.NewAssetRepository(db),
		requests: repositories.NewRequestRepository(db),
		custom:   repositories.NewCustomRequestRepository(db),
		payments: repositories.NewPaymentRepository(db),
		tx:       repositories.NewMongoTransactor(client),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, readpref.Primary())
		},
	}
}

func shutdown(e *echo.Echo, timeout time.Duration, hub *websocket.Hub, mongoClient *mongo.Client, redisClient *redis.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		zap.L().Error("Server shutdown failed", zap.Error(err))
	}
	hub.Stop()
	if mongoClient != nil {
		config.DisconnectDB(ctx, mongoClient)
	}
	config.CloseRedis(redisClient)
}

func httpsRedirect() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Forwarded-Proto") == "http" {
				return c.Redirect(http.StatusMovedPermanently, "https://"+c.Request().Host+c.Request().RequestURI)
			}
			return next(c)
		}
	}
}
