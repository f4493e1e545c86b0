package app

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"stockwatch/internal/config"
	"stockwatch/internal/delivery/api"
	"stockwatch/internal/infra/alpaca"
	"stockwatch/internal/infra/db"
	"stockwatch/internal/infra/log"
	"stockwatch/internal/infra/mail"
	"stockwatch/internal/usecase"
)

type App struct {
	server    *http.Server
	scheduler *cron.Cron
	monitor   *usecase.Monitor
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	alertRepo := db.NewAlertRepository(dbConn)
	userRepo := db.NewUserRepository(dbConn)
	quotes := alpaca.NewClient(cfg.AlpacaBaseURL, cfg.AlpacaKeyID, cfg.AlpacaSecretKey, cfg.AlpacaTimeout, logger)
	mailer := mail.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, logger)

	alertUC := usecase.NewAlertUsecase(alertRepo)
	monitor := usecase.NewMonitor(alertRepo, userRepo, quotes, mailer, cfg.MonitorConcurrency, logger)

	handlers := api.NewHandlers(alertUC, logger)
	server := &http.Server{Addr: cfg.HTTPAddr, Handler: api.NewRouter(handlers)}

	// SkipIfStillRunning keeps overlapping schedules from racing the same
	// alert set; the store's idempotent delete covers multi-instance overlap.
	scheduler := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))
	if _, err := scheduler.AddFunc(cfg.MonitorSchedule, func() {
		if err := monitor.RunOnce(context.Background()); err != nil {
			logger.Error("monitor run failed", zap.Error(err))
		}
	}); err != nil {
		return nil, err
	}

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{
		server:    server,
		scheduler: scheduler,
		monitor:   monitor,
		logger:    logger,
		cleanupFn: cleanup,
	}, nil
}

// RunMonitorOnce executes a single monitoring run and exits, for invocation
// from an external scheduler instead of the built-in one.
func (a *App) RunMonitorOnce(ctx context.Context) error {
	return a.monitor.RunOnce(ctx)
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("stockwatch service starting", zap.String("addr", a.server.Addr))
	a.scheduler.Start()

	serverErr := make(chan error, 1)
	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	a.logger.Info("stockwatch service started")

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return a.server.Shutdown(shutdownCtx)
}

func (a *App) Shutdown() {
	a.logger.Info("stockwatch service shutting down")
	<-a.scheduler.Stop().Done()
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
