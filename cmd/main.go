package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	_ "github.com/sbilibin2017/gw-assessment/docs"
	"github.com/sbilibin2017/gw-assessment/internal/handlers"
	"github.com/sbilibin2017/gw-assessment/internal/health"
	"github.com/sbilibin2017/gw-assessment/internal/jwt"
	"github.com/sbilibin2017/gw-assessment/internal/logger"
	"github.com/sbilibin2017/gw-assessment/internal/middlewares"
	"github.com/sbilibin2017/gw-assessment/internal/migrations"
	"github.com/sbilibin2017/gw-assessment/internal/password"
	"github.com/sbilibin2017/gw-assessment/internal/repositories"
	"github.com/sbilibin2017/gw-assessment/internal/repositories/memory"
	"github.com/sbilibin2017/gw-assessment/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// Storage backends selectable with APP_STORAGE.
const (
	storagePostgres = "postgres"
	storageMemory   = "memory"
)

// Config holds the whole service configuration.
type Config struct {
	App      AppConfig      `envPrefix:"APP_"`
	Postgres PostgresConfig `envPrefix:"POSTGRES_"`
	Redis    RedisConfig    `envPrefix:"REDIS_"`
	Kafka    KafkaConfig    `envPrefix:"KAFKA_"`
	JWT      JWTConfig      `envPrefix:"JWT_"`

	BcryptCost     int    `env:"BCRYPT_COST" envDefault:"10"`
	GRPCHealthPort string `env:"GRPC_HEALTH_PORT" envDefault:"50051"`
}

// AppConfig contains HTTP server parameters.
type AppConfig struct {
	Host     string `env:"HOST" envDefault:"localhost"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Storage  string `env:"STORAGE" envDefault:"postgres"`
}

// PostgresConfig contains database connection parameters.
type PostgresConfig struct {
	Host         string `env:"HOST" envDefault:"localhost"`
	Port         int    `env:"PORT" envDefault:"5432"`
	User         string `env:"USER" envDefault:"user"`
	Password     string `env:"PASSWORD" envDefault:"password"`
	DB           string `env:"DB" envDefault:"database"`
	MaxOpenConns int    `env:"MAX_OPEN_CONNS" envDefault:"16"`
	MaxIdleConns int    `env:"MAX_IDLE_CONNS" envDefault:"8"`
}

// DSN returns the pgx connection string.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DB)
}

// RedisConfig contains question cache parameters. An empty host disables the cache.
type RedisConfig struct {
	Host           string `env:"HOST"`
	Port           int    `env:"PORT" envDefault:"6379"`
	DB             int    `env:"DB" envDefault:"0"`
	Password       string `env:"PASSWORD"`
	PoolSize       int    `env:"POOL_SIZE" envDefault:"10"`
	MinIdleConns   int    `env:"MIN_IDLE_CONNS" envDefault:"2"`
	CacheTTLSecond int    `env:"CACHE_TTL_SECOND" envDefault:"60"`
}

// KafkaConfig contains event publishing parameters. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string `env:"BROKERS" envSeparator:","`
	Topic   string   `env:"TOPIC" envDefault:"assessment-events"`
}

// JWTConfig contains access token parameters.
type JWTConfig struct {
	SecretKey string `env:"SECRET_KEY" envDefault:"my_super_secret_key"`
	ExpSecond int    `env:"EXP_SECOND" envDefault:"3600"`
}

// @title gw-assessment API
// @version 1.0.0
// @description Online assessment backend: users, credentials and checkbox questions
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

// parseConfig loads environment variables from a file, if present, and
// parses them into Config.
func parseConfig(path string) (*Config, error) {
	_ = godotenv.Load(path)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.App.Storage {
	case storagePostgres, storageMemory:
	default:
		return nil, fmt.Errorf("unknown APP_STORAGE %q", cfg.App.Storage)
	}

	return cfg, nil
}

// app bundles the services behind the HTTP routes.
type app struct {
	users       *services.UserService
	credentials *services.CredentialService
	questions   *services.QuestionService
	auth        *services.AuthService
	tokens      *jwt.JWT
	db          *sqlx.DB
	checker     *health.Checker
}

// run initializes the logger, storage, cache, event publisher and servers.
// It blocks until ctx is cancelled or a termination signal arrives.
func run(ctx context.Context, cfg *Config) error {
	if err := logger.Initialize(cfg.App.LogLevel, "service", "gw-assessment", "version", buildVersion); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)

	var (
		db    *sqlx.DB
		cache services.QuestionCache
		err   error
	)

	if cfg.App.Storage == storagePostgres {
		logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.Postgres.Host, "port", cfg.Postgres.Port, "db", cfg.Postgres.DB)
		db, err = sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
		if err != nil {
			return fmt.Errorf("PostgreSQL connection error: %w", err)
		}
		defer db.Close()
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

		if err := migrations.Up(ctx, db.DB); err != nil {
			return fmt.Errorf("migrations failed: %w", err)
		}
	}

	pingers := map[string]health.Pinger{}
	if db != nil {
		pingers["postgres"] = db
	}

	if cfg.Redis.Host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("Redis connection error: %w", err)
		}
		defer rdb.Close()
		cache = repositories.NewQuestionCacheRepository(rdb, time.Duration(cfg.Redis.CacheTTLSecond)*time.Second)
		pingers["redis"] = redisPinger{rdb}
	}

	var writer services.KafkaWriter
	if len(cfg.Kafka.Brokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
			Topic:                  cfg.Kafka.Topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		writer = kw
		logger.Log.Infow("Publishing events to Kafka", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	a := newApp(cfg, db, cache, services.NewEventPublisher(writer))
	a.checker = health.NewChecker(pingers)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	errChan := make(chan error, 2)

	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.App.Host, cfg.GRPCHealthPort)
		if err := a.checker.Run(ctxShutdown, addr, 10*time.Second); err != nil {
			errChan <- fmt.Errorf("gRPC health server failed: %w", err)
		}
	}()

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.App.Host, cfg.App.Port),
		Handler: a.router(cfg),
	}

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.App.Host, cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

// newApp wires repositories into services. A nil db selects in-memory storage.
func newApp(cfg *Config, db *sqlx.DB, cache services.QuestionCache, events *services.EventPublisher) *app {
	var (
		userRepo       services.UserRepository
		credentialRepo services.CredentialRepository
		questionRepo   services.QuestionRepository
		emailReader    services.UserByEmailReader
		activeReader   services.CredentialByUserReader
	)

	if db != nil {
		u := repositories.NewUserRepository(db, middlewares.GetTxFromContext)
		c := repositories.NewCredentialRepository(db, middlewares.GetTxFromContext)
		userRepo, emailReader = u, u
		credentialRepo, activeReader = c, c
		questionRepo = repositories.NewQuestionRepository(db, middlewares.GetTxFromContext)
	} else {
		u := memory.NewUserRepository()
		c := memory.NewCredentialRepository()
		userRepo, emailReader = u, u
		credentialRepo, activeReader = c, c
		questionRepo = memory.NewQuestionRepository()
	}

	hasher := password.NewBcryptHasher(cfg.BcryptCost)
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWT.SecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWT.ExpSecond)*time.Second),
		jwt.WithIssuer("gw-assessment"),
	)

	return &app{
		users:       services.NewUserService(userRepo, credentialRepo, events),
		credentials: services.NewCredentialService(credentialRepo, userRepo, hasher, events),
		questions:   services.NewQuestionService(questionRepo, cache, middlewares.AfterCommit, events),
		auth:        services.NewAuthService(emailReader, activeReader, hasher, tokens),
		tokens:      tokens,
		db:          db,
	}
}

// router mounts every route under /api/v1.
func (a *app) router(cfg *Config) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	if a.db != nil {
		r.Use(middlewares.TxMiddleware(a.db))
	}

	r.Route("/api/v1", func(r chi.Router) {
		if a.checker != nil {
			r.Get("/health", a.checker.Handler())
		}

		// Public routes
		r.Post("/auth/login", handlers.NewLoginHandler(a.auth))
		r.Post("/users", handlers.NewCreateUserHandler(a.users))
		r.Post("/credentials", handlers.NewCreateCredentialHandler(a.credentials))

		// Protected routes with JWT middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(a.tokens))

			r.Get("/users", handlers.NewListUsersHandler(a.users))
			r.Get("/users/me", handlers.NewGetCurrentUserHandler(a.users))
			r.Get("/users/{userID}", handlers.NewGetUserHandler(a.users))
			r.Put("/users/{userID}", handlers.NewUpdateUserHandler(a.users))
			r.Delete("/users/{userID}", handlers.NewDeleteUserHandler(a.users))

			r.Get("/credentials", handlers.NewListCredentialsHandler(a.credentials))
			r.Get("/credentials/{credentialID}", handlers.NewGetCredentialHandler(a.credentials))
			r.Put("/credentials/{credentialID}/password", handlers.NewUpdatePasswordHandler(a.credentials))
			r.Delete("/credentials/{credentialID}", handlers.NewDeleteCredentialHandler(a.credentials))

			r.Post("/questions", handlers.NewCreateQuestionHandler(a.questions))
			r.Get("/questions", handlers.NewListQuestionsHandler(a.questions))
			r.Get("/questions/{questionID}", handlers.NewGetQuestionHandler(a.questions))
			r.Put("/questions/{questionID}", handlers.NewUpdateQuestionHandler(a.questions))
			r.Delete("/questions/{questionID}", handlers.NewDeleteQuestionHandler(a.questions))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.App.Host, cfg.App.Port)),
	))

	return r
}

// redisPinger adapts a redis client to health.Pinger.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
