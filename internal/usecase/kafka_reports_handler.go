package usecase

import (
	"context"
	"encoding/json"
	"time"

	"MoonPulse/internal/domain/models"
	domrepo "MoonPulse/internal/domain/repository"
	pkgkafka "MoonPulse/pkg/kafka"
)

// KafkaReportsHandler consumes published report records and archives them in
// ClickHouse. Only wired when the backend is Kafka and an archive is configured.
type KafkaReportsHandler struct {
	topic   string
	archive domrepo.ReportSink
	metrics domrepo.Metrics
}

func NewKafkaReportsHandler(topic string, archive domrepo.ReportSink, metrics domrepo.Metrics) *KafkaReportsHandler {
	return &KafkaReportsHandler{topic: topic, archive: archive, metrics: metrics}
}

func (h *KafkaReportsHandler) Topic() string { return h.topic }

func (h *KafkaReportsHandler) Handle(ctx context.Context, b []byte) error {
	var rec models.ReportRecord
	if err := json.Unmarshal(b, &rec); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}

	start := time.Now()
	err := h.archive.Append(ctx, &rec)
	h.metrics.RecordLatency("archive_insert", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_archive")
		return err
	}
	h.metrics.RecordReportBuilt("clickhouse", rec.Report.Symbol)
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaReportsHandler)(nil)
