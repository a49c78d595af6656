package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Morrowga/discordbot/internal/config"
	"github.com/Morrowga/discordbot/internal/discord"
	"github.com/Morrowga/discordbot/internal/handler"
	"github.com/Morrowga/discordbot/internal/i18n"
	"github.com/Morrowga/discordbot/internal/logger"
	"github.com/Morrowga/discordbot/internal/service"
	"github.com/Morrowga/discordbot/internal/store"
	"github.com/Morrowga/discordbot/internal/translate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog := logger.New(cfg.LogLevel, cfg.IsDevelopment())
	defer zlog.Sync()

	i18n.Init(cfg.Locale)

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		zlog.Fatal("load timezone", zap.String("timezone", cfg.Timezone), zap.Error(err))
	}

	recordStore := store.NewRecordStore(cfg.StateFile, zlog)
	attendanceSvc := service.NewAttendanceService(recordStore, loc, zlog)
	translator := translate.NewClient(cfg.TranslateAPIURL, zlog)

	dc, err := discord.NewClient(cfg.BotToken, zlog)
	if err != nil {
		zlog.Fatal("create discord client", zap.Error(err))
	}

	msgHandler := handler.NewMessageHandler(attendanceSvc, dc, translator, cfg.GuildID, cfg.AttendanceChannelID, zlog)
	dc.OnMessage(msgHandler.HandleMessage)

	if err := dc.Open(); err != nil {
		zlog.Fatal("connect to discord", zap.Error(err))
	}
	defer dc.Close()

	if cfg.WebhookSecret != "" {
		// The secret is accepted from config but deliveries are not yet
		// verified against it.
		zlog.Warn("webhook secret set but signature verification is not implemented")
	}

	mux := http.NewServeMux()
	handler.NewWebhookHandler(dc, cfg.GitChannelID, zlog).RegisterRoutes(mux)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("GET /ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler.LoggingMiddleware(zlog)(mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		zlog.Info("webhook server started",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}
