package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventlottery/config"
	_ "eventlottery/docs"
	"eventlottery/internal/adapters/auth"
	"eventlottery/internal/adapters/email"
	httpdelivery "eventlottery/internal/delivery/http"
	"eventlottery/internal/delivery/http/controllers"
	"eventlottery/internal/delivery/http/middleware"
	"eventlottery/internal/repository/postgres"
	"eventlottery/internal/services"
)

// @title Event Lottery API
// @version 1.0
// @description Capacity-constrained event registration with waitlists, lottery draws, invitations, and backfill.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	listRepo := postgres.NewEntrantListRepository(db)
	inviteRepo := postgres.NewInviteRepository(db)
	accountRepo := postgres.NewAccountRepository(db)

	notifier, err := email.NewNotifier(email.NotifierConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.SESRegion,
			AccessKeyID:        cfg.SESAccessKeyID,
			SecretAccessKey:    cfg.SESSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipTLS,
		},
	})
	if err != nil {
		logger.Error("create notifier", "err", err)
		os.Exit(1)
	}

	locks := services.NewLockRegistry()
	lotterySvc := services.NewLotteryService(eventRepo, listRepo, inviteRepo, notifier, logger, locks, services.LotteryConfig{
		InviteTTL:         cfg.InviteTTL,
		BackfillOnDecline: cfg.BackfillOnDecline,
	})
	waitlistSvc := services.NewWaitlistService(eventRepo, listRepo, logger, locks)
	eventSvc := services.NewEventService(eventRepo, logger)
	accountSvc := services.NewAccountService(accountRepo, auth.NewBcryptHasher(0), logger)

	router := httpdelivery.NewRouter(
		controllers.NewEventController(logger, eventSvc),
		controllers.NewWaitlistController(logger, waitlistSvc),
		controllers.NewLotteryController(logger, lotterySvc),
		controllers.NewAccountController(logger, accountSvc),
	)

	handler := middleware.Logging(logger, middleware.CORS(cfg.AllowedOrigins, router))
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Periodic auto-decline of invitations whose response window closed.
	go func() {
		ticker := time.NewTicker(cfg.InviteSweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := lotterySvc.SweepExpiredInvites(ctx)
				if err != nil {
					logger.Error("invite sweep failed", "err", err)
					continue
				}
				if n > 0 {
					logger.Info("invite sweep done", "expired", n)
				}
			}
		}
	}()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
