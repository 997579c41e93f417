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
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-coin-exchange/internal/facades"
	"github.com/sbilibin2017/gw-coin-exchange/internal/handlers"
	"github.com/sbilibin2017/gw-coin-exchange/internal/jwt"
	"github.com/sbilibin2017/gw-coin-exchange/internal/logger"
	"github.com/sbilibin2017/gw-coin-exchange/internal/middlewares"
	"github.com/sbilibin2017/gw-coin-exchange/internal/models"
	"github.com/sbilibin2017/gw-coin-exchange/internal/repositories"
	"github.com/sbilibin2017/gw-coin-exchange/internal/services"
	"github.com/sbilibin2017/gw-coin-exchange/internal/transactor"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int
	RedisCacheTTL     time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	MarketBaseURL string
	MarketTimeout time.Duration

	JWTSecretKey string
	JWTExp       time.Duration

	AdminPin    string
	SignupBonus decimal.Decimal
}

// @title gw-coin-exchange API
// @version 1.0.0
// @description Simulated crypto exchange: USDT-quoted trading against a price catalog and admin-approved deposits and withdrawals
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, market data and JWT configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	getSeconds := func(key, defaultValue string) (time.Duration, error) {
		v, err := getInt(key, defaultValue)
		return time.Duration(v) * time.Second, err
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}
	if cfg.RedisCacheTTL, err = getSeconds("REDIS_CACHE_TTL", "10"); err != nil {
		return
	}

	// Kafka config, empty brokers disable publishing
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "coin-exchange.transactions")

	// Market data config
	cfg.MarketBaseURL = strings.TrimRight(getEnv("MARKET_BASE_URL", "https://api.binance.com"), "/")
	if cfg.MarketTimeout, err = getSeconds("MARKET_TIMEOUT", "5"); err != nil {
		return
	}

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.JWTExp, err = getSeconds("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	// Ledger config
	cfg.AdminPin = getEnv("ADMIN_PIN", "")
	if cfg.SignupBonus, err = decimal.NewFromString(getEnv("SIGNUP_BONUS_USDT", "10000")); err != nil {
		err = fmt.Errorf("SIGNUP_BONUS_USDT: %w", err)
		return
	}
	if cfg.SignupBonus.IsNegative() {
		err = fmt.Errorf("SIGNUP_BONUS_USDT: must not be negative")
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka writer, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("PostgreSQL ping failed: %w", err)
	}

	// Apply schema and seed the catalog
	var adminPinHash string
	if cfg.AdminPin != "" {
		if adminPinHash, err = services.HashPin(cfg.AdminPin, bcrypt.DefaultCost); err != nil {
			return fmt.Errorf("hash admin pin: %w", err)
		}
	} else {
		logger.Log.Warn("ADMIN_PIN is empty, no admin user is seeded")
	}
	if err := repositories.Migrate(ctx, db, adminPinHash); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writer
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		logger.Log.Infow("Kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	} else {
		logger.Log.Warn("KAFKA_BROKERS is empty, transaction publishing disabled")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := services.NewMetrics(registry)

	// Initialize JWT service
	jwtSvc := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.JWTExp),
	)

	// Initialize repositories
	coinRepo := repositories.NewCoinReadRepository(db, transactor.GetTxFromContext)
	balanceReadRepo := repositories.NewBalanceReadRepository(db)
	balanceWriteRepo := repositories.NewBalanceWriteRepository(db, transactor.GetTxFromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, transactor.GetTxFromContext)
	userReadRepo := repositories.NewUserReadRepository(db, transactor.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, transactor.GetTxFromContext)
	depositRepo := repositories.NewRequestRepository(db, transactor.GetTxFromContext, models.RequestDeposit)
	withdrawRepo := repositories.NewRequestRepository(db, transactor.GetTxFromContext, models.RequestWithdraw)
	marketCache := repositories.NewMarketCacheRepository(rdb, cfg.RedisCacheTTL)

	// Initialize facades
	marketFacade := facades.NewBinanceMarketFacade(cfg.MarketBaseURL, cfg.MarketTimeout)

	// Initialize services
	tx := transactor.New(db)
	publisher := services.NewKafkaPublisher(kafkaWriter, metrics)

	authService := services.NewAuthService(tx, userReadRepo, userWriteRepo, balanceWriteRepo, txnWriteRepo, jwtSvc, publisher, cfg.SignupBonus)
	walletService := services.NewWalletService(coinRepo, balanceReadRepo, txnReadRepo)
	settlementService := services.NewSettlementService(tx, coinRepo, balanceWriteRepo, txnWriteRepo, publisher, metrics)
	requestService := services.NewRequestService(tx, coinRepo, balanceWriteRepo, txnWriteRepo, depositRepo, withdrawRepo, publisher, metrics)
	marketService := services.NewMarketService(coinRepo, marketFacade, marketCache, metrics)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", handlers.NewRegisterHandler(authService))
		r.Post("/auth/login", handlers.NewLoginHandler(authService))
		r.Get("/coins", handlers.NewListCoinsHandler(walletService))
		r.Get("/market/prices", handlers.NewMarketPricesHandler(marketService))
		r.Get("/market/candles", handlers.NewMarketCandlesHandler(marketService))

		// User routes, authorized by the handlers
		r.Get("/balance", handlers.NewGetBalanceHandler(walletService, jwtSvc))
		r.Get("/transactions", handlers.NewListTransactionsHandler(walletService, jwtSvc))
		r.Post("/buy", handlers.NewBuyHandler(settlementService, jwtSvc))
		r.Post("/sell", handlers.NewSellHandler(settlementService, jwtSvc))
		r.Post("/deposit-requests", handlers.NewDepositRequestHandler(requestService, jwtSvc))
		r.Get("/deposit-requests", handlers.NewListDepositRequestsHandler(requestService, jwtSvc))
		r.Post("/withdraw-requests", handlers.NewWithdrawRequestHandler(requestService, jwtSvc))
		r.Get("/withdraw-requests", handlers.NewListWithdrawRequestsHandler(requestService, jwtSvc))

		// Admin routes
		r.Route("/admin", func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(jwtSvc))
			r.Use(middlewares.AdminMiddleware)
			r.Use(middlewares.TxMiddleware(db))

			r.Get("/users", handlers.NewListUsersHandler(authService))
			r.Post("/users/{username}/reset-pin", handlers.NewResetPinHandler(authService))

			for path, kind := range map[string]models.RequestKind{
				"/deposits":  models.RequestDeposit,
				"/withdraws": models.RequestWithdraw,
			} {
				r.Get(path, handlers.NewAdminListRequestsHandler(kind, requestService))
				r.Post(path+"/{id}/approve", handlers.NewApproveRequestHandler(kind, requestService))
				r.Post(path+"/{id}/reject", handlers.NewRejectRequestHandler(kind, requestService))
			}
		})
	})

	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
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

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
