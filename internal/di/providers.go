package di

import (
	"context"
	"fmt"
	"time"

	"DelistRadar/internal/domain/repository"
	"DelistRadar/internal/handler/api"
	"DelistRadar/internal/parser"
	internalrepo "DelistRadar/internal/repository"
	"DelistRadar/internal/service/binance"
	"DelistRadar/internal/service/bybit"
	"DelistRadar/internal/service/fetcher"
	"DelistRadar/internal/usecase"
	pkgch "DelistRadar/pkg/clickhouse"
	"DelistRadar/pkg/config"
	xhttp "DelistRadar/pkg/http"
	pkgkafka "DelistRadar/pkg/kafka"
	applogger "DelistRadar/pkg/logger"
	"DelistRadar/pkg/metrics"
	pkgredis "DelistRadar/pkg/redis"
	"DelistRadar/pkg/server"
)

const alertTable = "delist_alerts"

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	return applogger.New(&applogger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideRedisClient creates a Redis client.
func ProvideRedisClient(cfg *config.Config) (*pkgredis.Client, error) {
	client, err := pkgredis.NewClient(
		pkgredis.WithAddr(cfg.Redis.Addr),
		pkgredis.WithAuth(cfg.Redis.Password, cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis client: %w", err)
	}
	return client, nil
}

// ProvideClickHouseClient creates a ClickHouse client and initializes the
// alert schema. Returns nil when the archive is disabled.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if !cfg.ClickHouse.Enabled {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := client.InitSchema(ctx, internalrepo.AlertSchema(alertTable)); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}
	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer. Returns nil when fan-out
// is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithMaxAttempts(cfg.Kafka.MaxAttempts),
		pkgkafka.WithTimeouts(cfg.Kafka.WriteTimeout, cfg.Kafka.ReadTimeout),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideStateStore creates the Redis-backed novelty state store.
func ProvideStateStore(rc *pkgredis.Client, cfg *config.Config, log *applogger.Logger) repository.StateStore {
	return internalrepo.NewRedisStateStore(rc.Raw(), cfg.Redis.StateKey, log)
}

// ProvideNotifier creates the Telegram notifier.
func ProvideNotifier(cfg *config.Config, log *applogger.Logger) repository.Notifier {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Telegram.Timeout))
	return internalrepo.NewTelegramNotifier(cfg, client, log)
}

// ProvideAlertPublisher creates the Kafka alert publisher or a no-op one.
func ProvideAlertPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.AlertPublisher {
	if producer == nil {
		return internalrepo.NopAlertPublisher{}
	}
	return internalrepo.NewKafkaAlertPublisher(producer, cfg.Kafka.Topic)
}

// ProvideAlertArchive creates the ClickHouse alert archive or a no-op one.
func ProvideAlertArchive(chClient *pkgch.Client) repository.AlertArchive {
	if chClient == nil {
		return internalrepo.NopAlertArchive{}
	}
	return internalrepo.NewClickHouseArchive(chClient, alertTable)
}

// ProvideBinanceStream creates the Binance announcement stream.
func ProvideBinanceStream(cfg *config.Config) repository.AnnouncementStream {
	return binance.New(
		cfg.Binance.WebSocketURL,
		cfg.Binance.Channel,
		cfg.Binance.ReconnectDelay,
		cfg.Binance.PingInterval,
	)
}

// ProvideBybitPoller creates the Bybit announcement feed.
func ProvideBybitPoller(cfg *config.Config) repository.AnnouncementPoller {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Fetcher.Timeout))
	return bybit.New(cfg.Bybit.APIURL, cfg.Bybit.PageLimit, client)
}

// ProvideArticleFetcher creates the announcement page fetcher.
func ProvideArticleFetcher(cfg *config.Config) repository.ArticleFetcher {
	client := xhttp.NewClient(xhttp.WithTimeout(cfg.Fetcher.Timeout))
	return fetcher.New(client)
}

// ProvideParser creates the per-source announcement parser.
func ProvideParser(log *applogger.Logger) *parser.Parser {
	return parser.New(log)
}

// ProvidePipeline creates the ingest pipeline use case.
func ProvidePipeline(
	p *parser.Parser,
	articleFetcher repository.ArticleFetcher,
	state repository.StateStore,
	notifier repository.Notifier,
	archive repository.AlertArchive,
	pub repository.AlertPublisher,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Pipeline {
	return usecase.NewPipeline(p, articleFetcher, state, notifier, archive, pub, m, log, cfg.Novelty.HistorySize)
}

// ProvideCollector creates the announcement collector use case.
func ProvideCollector(
	stream repository.AnnouncementStream,
	pipe *usecase.Pipeline,
	m repository.Metrics,
	log *applogger.Logger,
) *usecase.Collector {
	return usecase.NewCollector(stream, pipe, m, log)
}

// ProvidePoller creates the Bybit poll loop.
func ProvidePoller(
	feed repository.AnnouncementPoller,
	collector *usecase.Collector,
	m repository.Metrics,
	log *applogger.Logger,
	cfg *config.Config,
) *usecase.Poller {
	return usecase.NewPoller(feed, collector, m, log, cfg.Bybit.PollInterval)
}

// ProvideHTTPHandler creates the Echo API handler.
func ProvideHTTPHandler(
	log *applogger.Logger,
	pipe *usecase.Pipeline,
	collector *usecase.Collector,
	archive repository.AlertArchive,
	notifier repository.Notifier,
) *api.AlertsEchoHandler {
	return api.NewAlertsEchoHandler(log, pipe, collector, archive, notifier)
}

// ProvideApp assembles the application.
func ProvideApp(
	cfg *config.Config,
	log *applogger.Logger,
	collector *usecase.Collector,
	poller *usecase.Poller,
	pipe *usecase.Pipeline,
	handler *api.AlertsEchoHandler,
	rc *pkgredis.Client,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
) *server.App {
	return server.New(cfg, log, collector, poller, pipe, handler, rc, chClient, producer)
}
