package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/obelousov/currency-credit/internal/facades"
	"github.com/obelousov/currency-credit/internal/handlers"
	"github.com/obelousov/currency-credit/internal/jwt"
	"github.com/obelousov/currency-credit/internal/logger"
	"github.com/obelousov/currency-credit/internal/middlewares"
	"github.com/obelousov/currency-credit/internal/repositories"
	"github.com/obelousov/currency-credit/internal/services"

	_ "github.com/obelousov/currency-credit/docs"
	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title currency-credit API
// @version 1.0.0
// @description Service selling exchange-rate lookups against a per-user credit balance
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, rateCacheTTL,
		kafkaAddr, kafkaTopic,
		exchangeAPIURL, exchangeAPIKey, exchangeBaseCurrency, exchangeTimeout,
		jwtSecret, jwtExp, jwtRefreshExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword, rateCacheTTL,
		kafkaAddr, kafkaTopic,
		exchangeAPIURL, exchangeAPIKey, exchangeBaseCurrency, exchangeTimeout,
		jwtSecret, jwtExp, jwtRefreshExp,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns all
// application, database, Redis, Kafka, rate-provider, logging, and JWT
// configuration.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string, rateCacheTTL int,
	kafkaAddr, kafkaTopic string,
	exchangeAPIURL, exchangeAPIKey, exchangeBaseCurrency string, exchangeTimeout int,
	jwtSecretKey string, jwtExpSecond, jwtRefreshExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config (rate cache)
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if rateCacheTTL, err = strconv.Atoi(getEnv("RATE_CACHE_TTL_SECOND", "300")); err != nil {
		return
	}

	// Kafka config, optional
	kafkaAddr = getEnv("KAFKA_ADDR", "")
	kafkaTopic = getEnv("KAFKA_TOPIC", "exchange-events")

	// Rate provider config
	exchangeAPIURL = getEnv("EXCHANGE_API_URL", "https://v6.exchangerate-api.com")
	exchangeAPIKey = getEnv("EXCHANGE_API_KEY", "")
	exchangeBaseCurrency = getEnv("EXCHANGE_BASE_CURRENCY", "UAH")
	if exchangeTimeout, err = strconv.Atoi(getEnv("EXCHANGE_TIMEOUT_SECOND", "5")); err != nil {
		return
	}

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "900")); err != nil {
		return
	}
	if jwtRefreshExpSecond, err = strconv.Atoi(getEnv("JWT_REFRESH_EXP_SECOND", "86400")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string, rateCacheTTL int,
	kafkaAddr, kafkaTopic string,
	exchangeAPIURL, exchangeAPIKey, exchangeBaseCurrency string, exchangeTimeout int,
	jwtSecretKey string, jwtExpSecond, jwtRefreshExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL: %s:%d/%s", pgHost, pgPort, pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Fatal("PostgreSQL connection error:", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Fatal("PostgreSQL ping failed:", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password: redisPassword,
		DB:       redisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Fatal("Redis connection error:", err)
	}
	defer rdb.Close()

	// Kafka writer, optional
	var kafkaWriter services.KafkaWriter
	if kafkaAddr != "" {
		w := &kafka.Writer{
			Addr:     kafka.TCP(kafkaAddr),
			Topic:    kafkaTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer w.Close()
		kafkaWriter = w
	}

	// Initialize JWT service
	jwt := jwt.New(jwtSecretKey,
		time.Duration(jwtExpSecond)*time.Second,
		time.Duration(jwtRefreshExpSecond)*time.Second,
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, repositories.TxFromContext)
	balanceReadRepo := repositories.NewBalanceReadRepository(db)
	balanceWriteRepo := repositories.NewBalanceWriteRepository(db, repositories.TxFromContext)
	exchangeReadRepo := repositories.NewExchangeReadRepository(db)
	exchangeWriteRepo := repositories.NewExchangeWriteRepository(db, repositories.TxFromContext)
	rateCacheRepo := repositories.NewRateCacheRepository(rdb, time.Duration(rateCacheTTL)*time.Second)

	// Initialize rate provider facade
	rateFacade := facades.NewExchangeRateHTTPFacade(
		&http.Client{Timeout: time.Duration(exchangeTimeout) * time.Second},
		exchangeAPIURL, exchangeAPIKey, exchangeBaseCurrency,
	)

	// Initialize services
	authService := services.NewAuthService(db, userReadRepo, userWriteRepo, balanceWriteRepo, jwt)
	exchangeService := services.NewExchangeService(
		db,
		balanceReadRepo, balanceWriteRepo,
		exchangeWriteRepo, exchangeReadRepo,
		rateFacade, rateCacheRepo, kafkaWriter,
		exchangeBaseCurrency,
	)

	// Initialize handlers
	registerHandler := handlers.NewRegisterHandler(authService)
	currencyHandler := handlers.NewCurrencyHandler(exchangeService)
	historyHandler := handlers.NewHistoryHandler(exchangeReadRepo)
	balanceHandler := handlers.NewBalanceHandler(balanceReadRepo)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(middlewares.MetricsMiddleware)

	// Public routes
	r.Post("/register", registerHandler)

	// Protected routes with JWT middleware
	r.Group(func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(jwt))
		r.Post("/currency", currencyHandler)
		r.Get("/history", historyHandler)
		r.Get("/balance", balanceHandler)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
