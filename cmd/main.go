package main

import (
	"context"
	"database/sql"
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
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-ledger/internal/facades"
	"github.com/sbilibin2017/gw-ledger/internal/fees"
	"github.com/sbilibin2017/gw-ledger/internal/handlers"
	"github.com/sbilibin2017/gw-ledger/internal/jwt"
	"github.com/sbilibin2017/gw-ledger/internal/logger"
	"github.com/sbilibin2017/gw-ledger/internal/middlewares"
	"github.com/sbilibin2017/gw-ledger/internal/repositories"
	"github.com/sbilibin2017/gw-ledger/internal/services"
	"github.com/sbilibin2017/gw-ledger/internal/uow"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-ledger API
// @version 1.0.0
// @description Wallet ledger: transfers, payments, card funding, payouts and reversals
// @host localhost:8080
// @BasePath /api/v1
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

type config struct {
	appHost, appPort, logLevel string

	pgHost, pgUser, pgPassword, pgDB string
	pgPort                           int
	pgMaxOpenConns, pgMaxIdleConns   int
	pgMigrate                        bool

	redisHost, redisPassword        string
	redisPort, redisDB              int
	redisPoolSize, redisMinIdleConn int

	rateCacheTTL      time.Duration
	rateLookupTimeout time.Duration
	rateSyncInterval  time.Duration

	gwHost, gwPort string

	kafkaBrokers []string
	kafkaTopic   string

	razorpayKey, razorpaySecret string
	gatewayTimeout              time.Duration
	cardReversalFee             decimal.Decimal

	txMaxAttempts int
	txIsolation   sql.IsolationLevel

	jwtSecretKey string
	jwtExp       time.Duration
}

// parseConfig loads environment variables from a file and returns
// the application, storage, rate, messaging, gateway and JWT configuration.
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
	getMillis := func(key, defaultValue string) (time.Duration, error) {
		v, err := getInt(key, defaultValue)
		return time.Duration(v) * time.Millisecond, err
	}

	// Application config
	cfg.appHost = getEnv("APP_HOST", "localhost")
	cfg.appPort = getEnv("APP_PORT", "8080")
	cfg.logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.pgHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.pgUser = getEnv("POSTGRES_USER", "user")
	cfg.pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.pgDB = getEnv("POSTGRES_DB", "database")
	if cfg.pgPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.pgMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.pgMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}
	if cfg.pgMigrate, err = strconv.ParseBool(getEnv("POSTGRES_MIGRATE", "true")); err != nil {
		err = fmt.Errorf("POSTGRES_MIGRATE: %w", err)
		return
	}

	// Redis config
	cfg.redisHost = getEnv("REDIS_HOST", "localhost")
	cfg.redisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.redisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.redisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.redisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.redisMinIdleConn, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Rates config
	if cfg.rateCacheTTL, err = getSeconds("RATE_CACHE_TTL_SECOND", "60"); err != nil {
		return
	}
	if cfg.rateLookupTimeout, err = getMillis("RATE_LOOKUP_TIMEOUT_MS", "2000"); err != nil {
		return
	}
	if cfg.rateSyncInterval, err = getSeconds("RATE_SYNC_INTERVAL_SECOND", "86400"); err != nil {
		return
	}

	// gRPC config
	cfg.gwHost = getEnv("GW_EXCHANGER_HOST", "localhost")
	cfg.gwPort = getEnv("GW_EXCHANGER_PORT", "50051")

	// Kafka config
	if brokers := getEnv("KAFKA_BROKERS", ""); brokers != "" {
		cfg.kafkaBrokers = strings.Split(brokers, ",")
	}
	cfg.kafkaTopic = getEnv("KAFKA_TOPIC", "ledger.transactions")

	// Gateway config
	cfg.razorpayKey = getEnv("RAZORPAY_KEY", "")
	cfg.razorpaySecret = getEnv("RAZORPAY_SECRET", "")
	if cfg.gatewayTimeout, err = getMillis("GATEWAY_TIMEOUT_MS", "10000"); err != nil {
		return
	}
	if cfg.cardReversalFee, err = decimal.NewFromString(getEnv("CARD_REVERSAL_FEE", "0.50")); err != nil {
		err = fmt.Errorf("CARD_REVERSAL_FEE: %w", err)
		return
	}

	if cfg.txMaxAttempts, err = getInt("TX_MAX_ATTEMPTS", "3"); err != nil {
		return
	}
	if cfg.txIsolation, err = uow.ParseIsolation(getEnv("POSTGRES_TX_ISOLATION", "read_committed")); err != nil {
		err = fmt.Errorf("POSTGRES_TX_ISOLATION: %w", err)
		return
	}

	// JWT config
	cfg.jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if cfg.jwtExp, err = getSeconds("JWT_EXP_SECOND", "3600"); err != nil {
		return
	}

	return
}

// routes are the services the HTTP surface is built on.
type routes struct {
	tokener  middlewares.Tokener
	wallets  *services.WalletService
	payments *services.PaymentService
	rates    *services.RateService
}

// newRouter mounts every endpoint under /api/v1 behind JWT auth.
func newRouter(rt routes, swaggerURL string) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middlewares.AuthMiddleware(rt.tokener))

		r.Post("/wallets", handlers.NewCreateWalletHandler(rt.wallets))
		r.Get("/wallets", handlers.NewListWalletsHandler(rt.wallets))
		r.Get("/wallets/{walletID}/transactions", handlers.NewWalletHistoryHandler(rt.wallets))
		r.Post("/wallets/{walletID}/fund", handlers.NewFundWalletHandler(rt.wallets))

		r.Post("/transfers", handlers.NewTransferHandler(rt.wallets))

		r.Get("/payments/records", handlers.NewListRecordsHandler(rt.payments))
		r.Post("/payments/records/{recordID}/cancel", handlers.NewCancelPaymentHandler(rt.payments))
		r.Post("/payments/{kind}", handlers.NewPaymentHandler(rt.payments))

		r.Post("/payouts", handlers.NewPayoutHandler(rt.payments))
		r.With(middlewares.AdminOnly).Post("/payouts/{transactionID}/confirm", handlers.NewConfirmPayoutHandler(rt.payments))

		r.Post("/transactions/{transactionID}/reverse", handlers.NewReverseHandler(rt.payments))

		r.Get("/rates", handlers.NewGetRateHandler(rt.rates))
		r.Get("/currencies", handlers.NewListCurrenciesHandler(rt.rates))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL(swaggerURL)))

	return r
}

// run initializes the logger, database, Redis, Kafka, gRPC and gateway
// clients, wires the ledger and serves HTTP until ctx is cancelled or a
// shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.logLevel)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.pgUser, cfg.pgPassword, cfg.pgHost, cfg.pgPort, cfg.pgDB)
	logger.Log.Infow("connecting to PostgreSQL", "host", cfg.pgHost, "port", cfg.pgPort, "db", cfg.pgDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("postgres connection: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.pgMaxOpenConns)
	db.SetMaxIdleConns(cfg.pgMaxIdleConns)

	if cfg.pgMigrate {
		if err := repositories.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.redisHost, cfg.redisPort),
		Password:     cfg.redisPassword,
		DB:           cfg.redisDB,
		PoolSize:     cfg.redisPoolSize,
		MinIdleConns: cfg.redisMinIdleConn,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection: %w", err)
	}
	defer rdb.Close()

	// Kafka writer for ledger events. Events are dropped when no brokers are configured.
	var kafkaWriter services.KafkaWriter
	if len(cfg.kafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:         kafka.TCP(cfg.kafkaBrokers...),
			Topic:        cfg.kafkaTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			MaxAttempts:  3,
			WriteTimeout: 10 * time.Second,
		}
		defer w.Close()
		kafkaWriter = w
	} else {
		logger.Log.Warn("KAFKA_BROKERS is empty, ledger events are disabled")
	}

	// Connect to gRPC exchanger
	grpcAddr := fmt.Sprintf("%s:%s", cfg.gwHost, cfg.gwPort)
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("grpc client %s: %w", grpcAddr, err)
	}
	defer conn.Close()
	exchanger := facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn))

	// Card gateway
	var gateway services.CardGateway
	if cfg.razorpayKey != "" {
		gateway = facades.NewRazorpayGateway(cfg.razorpayKey, cfg.razorpaySecret, cfg.gatewayTimeout)
	} else {
		logger.Log.Warn("RAZORPAY_KEY is empty, card funding is disabled")
	}

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.jwtSecretKey), jwt.WithExpiration(cfg.jwtExp))

	// Initialize repositories
	unitOfWork := uow.New(db, uow.WithMaxAttempts(cfg.txMaxAttempts), uow.WithIsolation(cfg.txIsolation))
	walletRepo := repositories.NewWalletRepository(db, uow.GetTx)
	txRepo := repositories.NewTransactionRepository(db, uow.GetTx)
	feeRepo := repositories.NewFeeRepository(db, uow.GetTx)
	recordRepo := repositories.NewRecordRepository(db, uow.GetTx)
	currencyRepo := repositories.NewCurrencyRepository(db, uow.GetTx)
	rateCache := repositories.NewRateCacheRepository(rdb, cfg.rateCacheTTL)

	// Initialize services
	rateService := services.NewRateService(currencyRepo, rateCache, cfg.rateLookupTimeout,
		services.WithLiveSource(exchanger, currencyRepo),
	)
	engine := services.NewMovementEngine(
		unitOfWork,
		walletRepo,
		txRepo,
		feeRepo,
		rateService,
		gateway,
		services.NewEventPublisher(kafkaWriter),
		fees.NewPolicy(fees.WithCardReversalFee(cfg.cardReversalFee)),
	)
	walletService := services.NewWalletService(walletRepo, walletRepo, txRepo, engine)
	paymentService := services.NewPaymentService(engine, recordRepo)

	go services.NewRateSyncer(exchanger, currencyRepo, cfg.rateSyncInterval,
		services.WithCacheInvalidation(rateCache),
	).Run(ctx)

	r := newRouter(routes{
		tokener:  tokens,
		wallets:  walletService,
		payments: paymentService,
		rates:    rateService,
	}, fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.appHost, cfg.appPort))

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.appHost, cfg.appPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.appHost, cfg.appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
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
