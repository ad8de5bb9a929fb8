package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Dan9191/property-service/internal/config"
	"github.com/Dan9191/property-service/internal/handler"
	"github.com/Dan9191/property-service/internal/integrations/sheets"
	"github.com/Dan9191/property-service/internal/integrations/webhook"
	"github.com/Dan9191/property-service/internal/repository"
	"github.com/Dan9191/property-service/internal/scheduler"
	"github.com/Dan9191/property-service/internal/service"
	"github.com/Dan9191/property-service/internal/utils/email"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	repo := repository.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	// Initialize integrations
	ext := service.Integrations{Listings: sheets.DemoSource{}}
	if cfg.SheetsEnabled() {
		sheet, err := newSheetClient(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to spreadsheet: %v", err)
		}
		ext.Listings = sheet
		ext.Sheet = sheet
	} else {
		logger.Warn("SHEET_ID not set, serving demo listings")
	}
	if cfg.WebhookEnabled() {
		if !webhook.ValidateURL(cfg.WebhookURL) {
			logger.Warnf("WEBHOOK_URL %s does not look like a webhook endpoint", cfg.WebhookURL)
		}
		ext.Webhook = webhook.NewClient(cfg.WebhookURL, logger,
			webhook.WithSecret(cfg.WebhookSecret),
			webhook.WithRateLimit(cfg.WebhookRate))
	}
	if cfg.SMTPHost != "" {
		ext.Mailer = email.NewSender(cfg, logger)
	}

	// Initialize layers
	svc := service.NewService(repo, logger, cfg, ext)
	h := handler.NewHandler(svc, logger)

	var sched *scheduler.Scheduler
	if cfg.SheetsEnabled() {
		sched = scheduler.NewScheduler(svc, logger)
		if err := sched.Start(cfg.SyncSchedule); err != nil {
			logger.Fatalf("Failed to start listing sync: %v", err)
		}
		sched.RunNow()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler.NewRouter(h, cfg),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	go func() {
		logger.Infof("Starting server on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	if sched != nil {
		sched.Stop()
	}
}

func newSheetClient(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*sheets.Client, error) {
	data, err := os.ReadFile(cfg.SheetCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	creds, err := sheets.CredentialsOption(data)
	if err != nil {
		return nil, err
	}
	return sheets.NewClient(ctx, cfg.SheetID, cfg.SheetWorksheet, logger, creds)
}
