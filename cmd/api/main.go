// @title                       Piazza API
// @version                     1.0
// @description                 Content-sharing backend: users, expiring posts, comments and votes.
// @BasePath                    /
// @securityDefinitions.apikey  TokenAuth
// @in                          header
// @name                        auth-token
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/piazza/piazza-api/internal/api"
	"github.com/piazza/piazza-api/internal/core/service"
	"github.com/piazza/piazza-api/internal/infrastructure/db/mongo"
	"github.com/piazza/piazza-api/internal/infrastructure/db/redis"
	"github.com/piazza/piazza-api/internal/pkg/config"
	"github.com/piazza/piazza-api/pkg/logger"

	_ "github.com/piazza/piazza-api/docs"
)

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "piazza-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo unavailable")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	var (
		rdb  *goredis.Client
		idem service.IdempotencyStore
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			OpTimeout: cfg.Redis.OpTimeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("redis unavailable")
		}
		defer rdb.Close()
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	} else {
		log.Info().Msg("REDIS_ADDR not set, idempotency keys are ignored")
	}

	userRepo := mongo.NewUserRepository(db)
	postRepo := mongo.NewPostRepository(db)
	commentRepo := mongo.NewCommentRepository(db)
	tx := mongo.NewTxRunner(client, cfg.Mongo.Transactions)

	deps := api.Deps{
		Users: service.NewUserService(userRepo, cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, cfg.Auth.BcryptCost,
			logger.Component("users")),
		Posts: service.NewPostService(postRepo, commentRepo, userRepo, tx, idem,
			logger.Component("posts")),
		Comments: service.NewCommentService(commentRepo, postRepo, tx, idem,
			logger.Component("comments")),
		TokenSecret: cfg.Auth.TokenSecret,
		Logger:      logger.Component("http"),
		Mongo:       client,
	}
	if rdb != nil {
		deps.Redis = rdb
	}

	e := api.NewRouter(deps)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
