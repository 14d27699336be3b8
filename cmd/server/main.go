package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/livestockcare/internal/config"
	"github.com/mamadbah2/livestockcare/internal/repository/mongodb"
	"github.com/mamadbah2/livestockcare/internal/repository/sheets"
	"github.com/mamadbah2/livestockcare/internal/scheduler"
	"github.com/mamadbah2/livestockcare/internal/server/handlers"
	"github.com/mamadbah2/livestockcare/internal/server/metrics"
	"github.com/mamadbah2/livestockcare/internal/server/router"
	adminsvc "github.com/mamadbah2/livestockcare/internal/service/admin"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
	authsvc "github.com/mamadbah2/livestockcare/internal/service/auth"
	gvasvc "github.com/mamadbah2/livestockcare/internal/service/gva"
	"github.com/mamadbah2/livestockcare/internal/service/interpretation"
	knowledgesvc "github.com/mamadbah2/livestockcare/internal/service/knowledge"
	"github.com/mamadbah2/livestockcare/internal/service/messaging"
	"github.com/mamadbah2/livestockcare/internal/service/numbering"
	rationsvc "github.com/mamadbah2/livestockcare/internal/service/ration"
	recordssvc "github.com/mamadbah2/livestockcare/internal/service/records"
	"github.com/mamadbah2/livestockcare/internal/service/registers"
	reportingsvc "github.com/mamadbah2/livestockcare/internal/service/reporting"
	whatsappclient "github.com/mamadbah2/livestockcare/pkg/clients/whatsapp"
	"github.com/mamadbah2/livestockcare/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New())
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStart()

	store, err := mongodb.NewStore(startCtx, cfg.MongoDB.URI, cfg.MongoDB.DBName, logger.Named(baseLogger, "repo.mongodb"))
	if err != nil {
		baseLogger.Fatal("failed to init mongodb store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()
	if err := store.EnsureIndexes(startCtx); err != nil {
		baseLogger.Fatal("failed to ensure indexes", zap.Error(err))
	}

	m, err := metrics.New()
	if err != nil {
		baseLogger.Fatal("failed to register metrics", zap.Error(err))
	}

	recorder := audit.NewRecorder(store, logger.Named(baseLogger, "svc.audit"))

	var exporter gvasvc.Exporter
	if cfg.Sheets.Enabled() {
		sheetExporter, err := sheets.NewGVAExporter(startCtx, cfg.Sheets, logger.Named(baseLogger, "repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets exporter", zap.Error(err))
		}
		if err := sheetExporter.EnsureHeader(startCtx); err != nil {
			baseLogger.Warn("could not write gva sheet header", zap.Error(err))
		}
		exporter = sheetExporter
		baseLogger.Info("google sheets gva export enabled")
	}

	var (
		sender    *messaging.WhatsAppSender
		adminOpts []adminsvc.Option
		reminders reportingsvc.Messenger
	)
	if cfg.WhatsApp.Enabled() {
		sender = messaging.NewWhatsAppSender(cfg.WhatsApp, whatsappclient.NewClient(cfg.WhatsApp), logger.Named(baseLogger, "svc.messaging"))
		adminOpts = append(adminOpts, adminsvc.WithMessenger(sender))
		reminders = sender
		baseLogger.Info("whatsapp messaging enabled")
	} else {
		baseLogger.Warn("whatsapp credentials missing, notifications and reminders stay in-app")
	}

	authService := authsvc.NewService(store, cfg.Auth, logger.Named(baseLogger, "svc.auth"))
	knowledgeService := knowledgesvc.NewService(store, recorder, logger.Named(baseLogger, "svc.knowledge"))
	reportingService := reportingsvc.NewService(store, reminders, logger.Named(baseLogger, "svc.reporting"))
	adminService := adminsvc.NewService(store, recorder, logger.Named(baseLogger, "svc.admin"), adminOpts...)
	gvaService := gvasvc.NewService(store, recorder, cfg.Cache.SettingsTTL, exporter, m, logger.Named(baseLogger, "svc.gva"))

	h := router.Handlers{
		Auth: handlers.NewAuthHandler(authService, logger.Named(baseLogger, "handlers.auth")),
		Records: handlers.NewRecordsHandler(
			recordssvc.NewService(store, logger.Named(baseLogger, "svc.records")),
			logger.Named(baseLogger, "handlers.records"),
		),
		Clinical: handlers.NewClinicalHandler(
			interpretation.NewService(store, knowledgeService, m, logger.Named(baseLogger, "svc.interpretation")),
			knowledgeService,
			reportingService,
			logger.Named(baseLogger, "handlers.clinical"),
		),
		Vet: handlers.NewVetHandler(
			registers.NewService(store, numbering.NewGenerator(store), logger.Named(baseLogger, "svc.registers")),
			reportingService,
			logger.Named(baseLogger, "handlers.vet"),
		),
		Economics: handlers.NewEconomicsHandler(
			gvaService,
			rationsvc.NewService(store, recorder, m, logger.Named(baseLogger, "svc.ration")),
			reportingService,
			logger.Named(baseLogger, "handlers.economics"),
		),
		Admin: handlers.NewAdminHandler(adminService, logger.Named(baseLogger, "handlers.admin")),
	}
	engine := router.New(cfg.Server.APIPrefix, h, authService, m, logger.Named(baseLogger, "router"))

	var sched *scheduler.Scheduler
	if reminders != nil {
		sched, err = scheduler.NewScheduler(cfg.Scheduler, reportingService, logger.Named(baseLogger, "scheduler"))
		if err != nil {
			baseLogger.Fatal("failed to init scheduler", zap.Error(err))
		}
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start scheduler", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
	if sched != nil {
		sched.Stop()
	}
	adminService.Wait()
	gvaService.Wait()
}
