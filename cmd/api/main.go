package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/bot"
	"github.com/cromados/barberia/internal/config"
	dbpkg "github.com/cromados/barberia/internal/db"
	"github.com/cromados/barberia/internal/infra/repository"
	"github.com/cromados/barberia/internal/payments"
	"github.com/cromados/barberia/internal/routes"
	"github.com/cromados/barberia/internal/storage"
	"github.com/cromados/barberia/internal/usecase/reservation"
)

func main() {

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var mp *payments.Client
	if cfg.MPAccessToken != "" {
		client, err := payments.NewClient(
			cfg.MPAccessToken, cfg.MPWebhookSecret,
			cfg.FrontendBase(), cfg.BackendBase(),
			logger,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("mercado pago setup failed")
		}
		mp = client
	} else {
		logger.Warn().Msg("mercado pago disabled: missing access token")
	}

	var store *storage.S3Store
	if cfg.S3Bucket != "" {
		s3store, err := storage.NewS3Store(ctx, cfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("s3 setup failed")
		}
		store = s3store
	} else {
		logger.Warn().Msg("photo uploads disabled: missing s3 config")
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	wired := routes.RegisterRoutes(r, db, rdb, cfg, logger, mp, store)

	// Barrido de turnos que quedaron esperando un pago que no llegó.
	go wired.Reaper.Run(ctx, 5*time.Minute)

	if cfg.TelegramToken != "" && wired.Checkout != nil {
		tgBot, err := bot.New(
			cfg.TelegramToken, db,
			wired.Slots, wired.Checkout,
			cfg.TelegramAdminChatID, logger,
		)
		if err != nil {
			logger.Fatal().Err(err).Msg("telegram bot setup failed")
		}
		go tgBot.Run(ctx)

		// Aviso al barbero cuando el webhook confirma un pago.
		wired.Webhook.SetNotifier(tgBot)

		// Recordatorios de turnos próximos, 6 horas antes.
		reminders := reservation.NewSendReminders(
			repository.NewReservationGormRepository(db), tgBot, logger,
		)
		go reminders.Run(ctx, time.Hour)
	} else {
		logger.Warn().Msg("telegram bot disabled: missing token or payments")
	}

	logger.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
