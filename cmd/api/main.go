// @title                      SlimMom Diet API
// @version                    1.0
// @description                Calorie advice, product catalog and token-based sessions.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/slimmom/diet-service/internal/api"
	"github.com/slimmom/diet-service/internal/api/handler"
	"github.com/slimmom/diet-service/internal/core/ports"
	"github.com/slimmom/diet-service/internal/core/service"
	"github.com/slimmom/diet-service/internal/infrastructure/catalog"
	mongodb "github.com/slimmom/diet-service/internal/infrastructure/db/mongo"
	redisdb "github.com/slimmom/diet-service/internal/infrastructure/db/redis"
	"github.com/slimmom/diet-service/internal/infrastructure/security"
	"github.com/slimmom/diet-service/internal/pkg/config"
	"github.com/slimmom/diet-service/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// The logger level comes from config, so this one error goes out raw.
		l := zerolog.New(os.Stderr).With().Timestamp().Logger()
		l.Error().Err(err).Msg("load configuration")
		return err
	}

	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "diet-service",
	})
	log := logger.Get()
	if envErr != nil {
		log.Debug().Msg("no .env file found")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI(), Database: cfg.Mongo.Database})
	if err != nil {
		log.Error().Err(err).Msg("connect mongodb")
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	users := mongodb.NewUserRepository(db)
	checks := map[string]handler.Check{"mongodb": mongodb.Ping(db)}

	var sessions ports.SessionRepository
	switch cfg.SessionStore {
	case config.SessionStoreRedis:
		rdb, err := redisdb.Connect(ctx, redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Error().Err(err).Msg("connect redis")
			return err
		}
		defer rdb.Close()
		sessions = redisdb.NewSessionStore(rdb)
		checks["redis"] = redisdb.Ping(rdb)
		if err := mongodb.EnsureIndexes(ctx, users); err != nil {
			log.Error().Err(err).Msg("ensure indexes")
			return err
		}
	default:
		mongoSessions := mongodb.NewSessionRepository(db)
		sessions = mongoSessions
		if err := mongodb.EnsureIndexes(ctx, users, mongoSessions); err != nil {
			log.Error().Err(err).Msg("ensure indexes")
			return err
		}
	}

	products, err := catalog.Embedded()
	if err != nil {
		log.Error().Err(err).Msg("load product catalog")
		return err
	}

	authService := service.NewAuthService(
		users,
		sessions,
		security.NewBcryptHasher(cfg.BcryptCost),
		security.NewJWTIssuer(cfg.JWTSecret, security.WithTTL(cfg.AccessTokenTTL, cfg.RefreshTokenTTL)),
		log.With().Str("component", "auth").Logger(),
	)
	dietService := service.NewDietService(users, products, log.With().Str("component", "diet").Logger())

	e := api.NewRouter(api.Dependencies{
		Auth:   authService,
		Diet:   dietService,
		Checks: checks,
		Log:    log,
	})

	srvErr := make(chan error, 1)
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("session_store", cfg.SessionStore).
			Int("products", products.Len()).
			Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	select {
	case err := <-srvErr:
		log.Error().Err(err).Msg("server failed")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
		return err
	}
	return nil
}
