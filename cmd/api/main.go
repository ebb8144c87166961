package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gobusters/ectoenv"
	"github.com/Gobusters/ectologger"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/modonty1-rgb/modonty-sub003/config"
	"github.com/modonty1-rgb/modonty-sub003/internal/clients/ai"
	"github.com/modonty1-rgb/modonty-sub003/internal/clients/image"
	"github.com/modonty1-rgb/modonty-sub003/internal/clients/news"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/article"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/author"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/category"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/client"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/comment"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/engagement"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/faq"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/industry"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/media"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/settings"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/subscriber"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/tag"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/tier"
	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
	"github.com/modonty1-rgb/modonty-sub003/pkg/kafka"
	"github.com/modonty1-rgb/modonty-sub003/pkg/middleware"
	"github.com/modonty1-rgb/modonty-sub003/pkg/redis"
	"github.com/modonty1-rgb/modonty-sub003/pkg/routes/health"
	"github.com/modonty1-rgb/modonty-sub003/pkg/routes/seed"
	"github.com/modonty1-rgb/modonty-sub003/pkg/seeder"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	cfg := &config.Config{}
	if err := ectoenv.BindEnv(cfg); err != nil {
		return fmt.Errorf("failed to bind environment: %w", err)
	}

	logger, flush, err := newLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer flush()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp := sdktrace.NewTracerProvider()
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Warn("failed to shut down tracer provider")
		}
	}()
	tracing.SetTracer(tp.Tracer(cfg.AppName))

	db, err := database.Connect(ctx, database.ConnectionConfig{
		Driver:          cfg.DatabaseDriver,
		Host:            cfg.DatabaseHost,
		Port:            cfg.DatabasePort,
		UserName:        cfg.DatabaseUserName,
		Password:        cfg.DatabasePassword,
		Name:            cfg.DatabaseName,
		SSLMode:         cfg.DatabaseSSLMode,
		MaxOpenConns:    cfg.DatabaseMaxOpenConns,
		MaxIdleConns:    cfg.DatabaseMaxIdleConns,
		ConnMaxLifetime: cfg.DatabaseConnMaxLifetime,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrateDatabase(cfg, db, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	var locker redis.Locker
	var pinger health.Pinger
	if cfg.RedisEnabled {
		redisClient, err := redis.NewClient(redis.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = redisClient.Close() }()
		locker = redis.NewLocker(redisClient, "seed:")
		pinger = redisClient
	}

	var producer *kafka.Producer
	if cfg.KafkaEnabled {
		producer = kafka.NewProducer(kafka.ProducerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaTopic,
			BatchSize:    cfg.KafkaBatchSize,
			BatchTimeout: time.Duration(cfg.KafkaBatchTimeout) * time.Millisecond,
			RequiredAcks: cfg.KafkaRequiredAcks,
			Compression:  cfg.KafkaCompression,
		}, logger)
		defer func() { _ = producer.Close() }()
	}

	resolver, images, err := buildContentChain(cfg, logger)
	if err != nil {
		return err
	}

	repos := seeder.Repositories{
		Tiers:       tier.NewRepository(db, logger),
		Industries:  industry.NewRepository(db, logger),
		Clients:     client.NewRepository(db, logger),
		Authors:     author.NewRepository(db, logger),
		Categories:  category.NewRepository(db, logger),
		Tags:        tag.NewRepository(db, logger),
		Articles:    article.NewRepository(db, logger),
		Media:       media.NewRepository(db, logger),
		Comments:    comment.NewRepository(db, logger),
		FAQs:        faq.NewRepository(db, logger),
		Subscribers: subscriber.NewRepository(db, logger),
		Settings:    settings.NewRepository(db, logger),
		Engagement:  engagement.NewRepository(db, logger),
	}

	runner := seeder.New(seeder.Config{
		AppEnv:  cfg.AppEnv,
		LockTTL: cfg.RunLockTTL,
	}, repos, resolver, images, locker, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = middleware.Error(logger)
	e.Use(
		echomw.Recover(),
		echomw.CORSWithConfig(echomw.CORSConfig{
			AllowOrigins: cfg.AllowOrigins,
			AllowMethods: cfg.AllowMethods,
		}),
		middleware.Context(),
		middleware.Logger(logger),
	)

	checker := health.NewChecker(db, pinger, version)
	checker.RegisterRoutes(e)
	seed.NewHandler(runner, producer, logger).RegisterRoutes(e)

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Port),
		ReadTimeout:    time.Duration(cfg.HttpServerReadTimeoutSeconds) * time.Second,
		WriteTimeout:   time.Duration(cfg.HttpServerWriteTimeoutSeconds) * time.Second,
		IdleTimeout:    time.Duration(cfg.HttpServerIdleTimeoutSeconds) * time.Second,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		checker.SetReady(false)
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("server shutdown error")
		}
	}()

	checker.SetReady(true)
	logger.WithFields(map[string]any{
		"app":  cfg.AppName,
		"env":  cfg.AppEnv,
		"port": cfg.Port,
	}).Info("starting server")

	if err := e.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// newLogger builds the service logger over a zap core. Ecto log messages are
// handed to zap whole; the encoder renders the structured payload.
func newLogger(cfg *config.Config) (ectologger.Logger, func(), error) {
	zcfg := zap.NewProductionConfig()
	if cfg.PrettyLogs {
		zcfg = zap.NewDevelopmentConfig()
	}
	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	zl, err := zcfg.Build()
	if err != nil {
		return nil, nil, err
	}

	logger := ectologger.NewEctoLogger(func(message ectologger.EctoLogMessage) {
		zl.Info(cfg.AppName, zap.Any("entry", message))
	})

	return logger, func() { _ = zl.Sync() }, nil
}

func migrateDatabase(cfg *config.Config, db database.DB, logger ectologger.Logger) error {
	instance, ok := db.(*database.DatabaseInstance)
	if !ok {
		return fmt.Errorf("database connection does not expose a migration driver")
	}

	driver, err := migratepg.WithInstance(instance.DB.DB, &migratepg.Config{})
	if err != nil {
		return err
	}

	svc := database.NewMigrationService(logger, &database.MigrationConfig{
		MigrationFolderPath: cfg.DatabaseMigrationFolderPath,
		Version:             uint(cfg.DatabaseMigrationVersion),
		Force:               cfg.DatabaseMigrationForce,
		AutoRollback:        cfg.DatabaseMigrationAutoRollback,
	})

	return svc.Migrate(cfg.DatabaseName, driver)
}

// buildContentChain assembles the provider fallback order: news, then AI,
// then the static bank which can never fail. A tier is registered only when
// its credentials are configured; run options can still switch registered
// tiers off per run.
func buildContentChain(cfg *config.Config, logger ectologger.Logger) (*content.Resolver, image.Service, error) {
	var providers []content.Provider

	if cfg.NewsAPIKey != "" {
		newsClient, err := news.NewClient(news.Config{
			BaseURL: cfg.NewsBaseURL,
			APIKey:  cfg.NewsAPIKey,
			Timeout: cfg.NewsRequestTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, newsClient)
	}

	if cfg.AIAPIKey != "" {
		aiClient, err := ai.NewClient(ai.Config{
			BaseURL: cfg.AIBaseURL,
			APIKey:  cfg.AIAPIKey,
			Model:   cfg.AIModel,
			Timeout: cfg.AIRequestTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		providers = append(providers, aiClient)
	}

	providers = append(providers, content.NewStaticProvider(rand.New(rand.NewSource(time.Now().UnixNano()))))
	resolver := content.NewResolver(logger, providers...)

	var images image.Service
	if cfg.ImageCloudName != "" {
		imageClient, err := image.NewClient(image.Config{
			CloudName: cfg.ImageCloudName,
			APIKey:    cfg.ImageAPIKey,
			APISecret: cfg.ImageAPISecret,
			Folder:    cfg.ImageUploadFolder,
			Timeout:   cfg.ImageRequestTimeout,
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		images = imageClient
	}

	return resolver, images, nil
}
