package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"DelistRadar/internal/handler/api"
	"DelistRadar/internal/usecase"
	pkgch "DelistRadar/pkg/clickhouse"
	"DelistRadar/pkg/config"
	xhttp "DelistRadar/pkg/http"
	pkgkafka "DelistRadar/pkg/kafka"
	applogger "DelistRadar/pkg/logger"
	pkgredis "DelistRadar/pkg/redis"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	log        *applogger.Logger
	collector  *usecase.Collector
	poller     *usecase.Poller
	pipe       *usecase.Pipeline
	handler    *api.AlertsEchoHandler
	redis      *pkgredis.Client
	chClient   *pkgch.Client
	producer   *pkgkafka.Producer
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.Collector,
	poller *usecase.Poller,
	pipe *usecase.Pipeline,
	handler *api.AlertsEchoHandler,
	redis *pkgredis.Client,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *App {
	return &App{
		cfg:       cfg,
		log:       log,
		collector: collector,
		poller:    poller,
		pipe:      pipe,
		handler:   handler,
		redis:     redis,
		chClient:  chClient,
		producer:  producer,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := a.pipe.Init(ctx); err != nil {
		return err
	}

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithLogger(a.log),
	)

	go func() {
		if err := a.collector.Start(ctx); err != nil {
			a.log.Error("collector error", applogger.Error(err))
		}
	}()
	a.log.Info("collector started",
		applogger.String("stream", a.cfg.Binance.WebSocketURL),
		applogger.String("channel", a.cfg.Binance.Channel))

	a.poller.Start(ctx)
	a.log.Info("poller started",
		applogger.String("api", a.cfg.Bybit.APIURL),
		applogger.Duration("interval", a.cfg.Bybit.PollInterval))

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		return err
	}
	a.log.Info("http server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.log.Info("shutdown signal received")
	cancel()
	return a.shutdown(context.Background())
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if err := a.collector.Shutdown(ctx); err != nil {
		a.log.Warn("collector stop error", applogger.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
	}

	if a.producer != nil {
		if err := a.producer.Close(); err != nil {
			a.log.Warn("kafka close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.log.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("redis close error", applogger.Error(err))
		}
	}

	a.log.Info("shutdown complete")
	return nil
}
