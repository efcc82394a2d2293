package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/revpay/reimbursement-system/docs"
	"github.com/revpay/reimbursement-system/internal/api"
	"github.com/revpay/reimbursement-system/internal/core/service"
	mongodb "github.com/revpay/reimbursement-system/internal/infrastructure/db/mongo"
	redisdb "github.com/revpay/reimbursement-system/internal/infrastructure/db/redis"
	"github.com/revpay/reimbursement-system/internal/infrastructure/queue"
	"github.com/revpay/reimbursement-system/internal/pkg/config"
	"github.com/revpay/reimbursement-system/pkg/logger"
)

// @title           Reimbursement System API
// @version         1.0
// @description     Expense reimbursement workflow service with role-based access control.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, cfg.Mongo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	userRepo := mongodb.NewUserRepository(db)
	reimbRepo := mongodb.NewReimbursementRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index bootstrap failed")
	}
	if err := reimbRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("reimbursement index bootstrap failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Audit pipeline ---
	auditService := service.NewAuditService(mongodb.NewAuditRepository(db), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, cfg.JWTSecret, cfg.TokenTTL, dispatcher, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("reimbursement api started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
	log.Info().Msg("reimbursement api stopped")
}
