package di

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"MoonPulse/internal/domain/repository"
	"MoonPulse/internal/handler/api"
	"MoonPulse/internal/lunar"
	"MoonPulse/internal/oracle"
	internalrepo "MoonPulse/internal/repository"
	"MoonPulse/internal/service/astronomy"
	"MoonPulse/internal/service/coingecko"
	"MoonPulse/internal/service/narrator"
	"MoonPulse/internal/service/noaa"
	"MoonPulse/internal/service/stream"
	"MoonPulse/internal/usecase"
	"MoonPulse/pkg/cache"
	pkgch "MoonPulse/pkg/clickhouse"
	"MoonPulse/pkg/config"
	xhttp "MoonPulse/pkg/http"
	pkgkafka "MoonPulse/pkg/kafka"
	applogger "MoonPulse/pkg/logger"
	"MoonPulse/pkg/metrics"
	"MoonPulse/pkg/server"
)

// producerPublisher adapts the Kafka producer to the log collector's
// Publisher interface.
type producerPublisher struct {
	p *pkgkafka.Producer
}

func (pp producerPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return pp.p.Publish(ctx, topic, nil, payload)
}

// ProvideLogger creates the application logger. With a Kafka producer
// available, error logs are also aggregated and shipped to a logs topic.
func ProvideLogger(cfg *config.Config, producer *pkgkafka.Producer) (*applogger.Logger, error) {
	format := "json"
	if cfg.Environment == "development" {
		format = "console"
	}
	l, err := applogger.New(&applogger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, err
	}
	if producer != nil {
		l.AddCollector(&applogger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.Topic + ".logs",
			Publisher:      producerPublisher{p: producer},
		})
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideCache creates the snapshot cache: layered memory+Redis when Redis is
// enabled, memory-only otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}
	host, port := splitHostPort(cfg.Redis.Addr)
	rc, err := cache.NewRedisCache(
		cache.WithRedisHost(host),
		cache.WithRedisPort(port),
		cache.WithRedisPassword(cfg.Redis.Password),
		cache.WithRedisDB(cfg.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return cache.NewLayeredCache(rc), nil
}

func splitHostPort(addr string) (string, int) {
	host, portStr, found := strings.Cut(addr, ":")
	if !found {
		return addr, 6379
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		port = 6379
	}
	return host, port
}

// ProvideMarketSource creates the CoinGecko market-data client.
func ProvideMarketSource(cfg *config.Config, c cache.Service) repository.MarketSource {
	return coingecko.New(
		cfg.CoinGecko.BaseURL,
		cfg.CoinGecko.APIKey,
		cfg.CoinGecko.CoinIDs,
		cfg.CoinGecko.Timeout,
		c,
		cfg.CoinGecko.CacheTTL,
	)
}

// ProvideLunarResolver creates the lunar signal resolver over the astronomy client.
func ProvideLunarResolver(cfg *config.Config, l *applogger.Logger) *lunar.Resolver {
	sky := astronomy.New(cfg.Astronomy.BaseURL, cfg.Astronomy.APIKey, cfg.Astronomy.Location, cfg.Astronomy.Timeout)
	return lunar.NewResolver(sky, l)
}

// ProvideKpResolver creates the geomagnetic resolver over both NOAA feeds.
func ProvideKpResolver(cfg *config.Config, l *applogger.Logger) *lunar.KpResolver {
	realtime := noaa.NewRealtimeSource(cfg.NOAA.BaseURL, cfg.NOAA.RealtimePath, cfg.NOAA.Timeout)
	daily := noaa.NewDailySource(cfg.NOAA.BaseURL, cfg.NOAA.DailyPath, cfg.NOAA.Timeout)
	return lunar.NewKpResolver(realtime, daily, l)
}

// ProvideNarrator creates the language-model narrator.
func ProvideNarrator(cfg *config.Config, l *applogger.Logger) repository.Narrator {
	return narrator.New(cfg.OpenAI.APIKey, cfg.OpenAI.Model, l)
}

// ProvideRand creates the process random source for classification tie-breaks
// and decorative report fields.
func ProvideRand() oracle.Rand {
	return oracle.NewRand(time.Now().UnixNano())
}

// ProvideClassifier creates the archetype classifier.
func ProvideClassifier(rng oracle.Rand) *oracle.Classifier {
	return oracle.NewClassifier(rng)
}

// ProvideReportFormatter creates the report builder/formatter.
func ProvideReportFormatter(rng oracle.Rand) *oracle.Builder {
	return oracle.NewBuilder(rng)
}

// ProvideStreamClient creates the live price stream, or nil when disabled.
func ProvideStreamClient(cfg *config.Config) *stream.Client {
	if !cfg.Stream.Enabled {
		return nil
	}
	return stream.New(
		cfg.Stream.APIKey,
		cfg.Stream.WebSocketURL,
		cfg.Oracle.Symbols,
		cfg.Stream.ReconnectDelay,
		cfg.Stream.PingInterval,
	)
}

// ProvideTickCollector creates the stream collector, or nil when no stream.
func ProvideTickCollector(st *stream.Client, m repository.Metrics) *usecase.TickCollector {
	if st == nil {
		return nil
	}
	return usecase.NewTickCollector(st, m)
}

// ProvideClickHouseClient creates a ClickHouse client when the backend (or the
// kafka archive) needs one; nil otherwise.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	if cfg.ClickHouse.Host == "" {
		return nil, nil
	}
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db := cfg.ClickHouse.Database
	if err := client.InitSchema(ctx, []string{
		"CREATE DATABASE IF NOT EXISTS " + db,
		"CREATE TABLE IF NOT EXISTS " + db + ".oracle_reports (ts DateTime, symbol String, archetype String, quote String, narrative String, posted String, truncated UInt8, report String) ENGINE=MergeTree ORDER BY (symbol, ts)",
	}); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// ProvideKafkaProducer creates a Kafka producer when the backend is kafka.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if cfg.Backend.Type != "kafka" {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideReportPublisher builds the file log plus the configured backend sink.
func ProvideReportPublisher(
	cfg *config.Config,
	producer *pkgkafka.Producer,
	chClient *pkgch.Client,
	m repository.Metrics,
) (*usecase.ReportPublisher, error) {
	fileLog := internalrepo.NewFileSink(cfg.Oracle.ReportLogPath)

	var backend repository.ReportSink
	switch cfg.Backend.Type {
	case "file":
		backend = fileLog
	case "kafka":
		if producer == nil {
			return nil, fmt.Errorf("kafka backend requires a producer")
		}
		backend = internalrepo.NewKafkaSink(producer, cfg.Kafka.Topic)
	case "clickhouse":
		if chClient == nil {
			return nil, fmt.Errorf("clickhouse backend requires a client")
		}
		backend = internalrepo.NewClickHouseSink(chClient.DB(), cfg.ClickHouse.Database+".oracle_reports")
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend.Type)
	}

	return usecase.NewReportPublisher(fileLog, backend, cfg.Backend.Type, m, cfg.Oracle.MaxPostLength), nil
}

// ProvideReportBuilder creates the report pipeline use case.
func ProvideReportBuilder(
	market repository.MarketSource,
	lr *lunar.Resolver,
	kp *lunar.KpResolver,
	n repository.Narrator,
	classifier *oracle.Classifier,
	formatter *oracle.Builder,
	st *stream.Client,
	m repository.Metrics,
) *usecase.ReportBuilder {
	return usecase.NewReportBuilder(market, lr, kp, n, classifier, formatter, st, m)
}

// ProvideKafkaConsumer creates the reports archiver consumer: active only when
// reports flow through Kafka and a ClickHouse archive is available.
func ProvideKafkaConsumer(cfg *config.Config, chClient *pkgch.Client) (*pkgkafka.Consumer, error) {
	if cfg.Backend.Type != "kafka" || chClient == nil {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideReportsHandler registers the archiver for the reports topic.
func ProvideReportsHandler(cfg *config.Config, chClient *pkgch.Client, m repository.Metrics) *usecase.KafkaReportsHandler {
	if cfg.Backend.Type != "kafka" || chClient == nil {
		return nil
	}
	archive := internalrepo.NewClickHouseSink(chClient.DB(), cfg.ClickHouse.Database+".oracle_reports")
	return usecase.NewKafkaReportsHandler(cfg.Kafka.Topic, archive, m)
}

// ProvideHandler creates the oracle HTTP handler.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	builder *usecase.ReportBuilder,
	publisher *usecase.ReportPublisher,
) xhttp.Handler {
	return api.NewOracleEchoHandler(l, builder, publisher, cfg.Oracle.CronToken, cfg.Server.StaticDir)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	handler xhttp.Handler,
	publisher *usecase.ReportPublisher,
	collector *usecase.TickCollector,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaReportsHandler,
	chClient *pkgch.Client,
) *server.App {
	var mh pkgkafka.MessageHandler
	if kh != nil {
		mh = kh
	}
	return server.New(cfg, handler, publisher, collector, consumer, mh, chClient)
}
