package usecase

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"MoonPulse/internal/domain/models"
)

func TestKafkaReportsHandlerArchives(t *testing.T) {
	archive := &memSink{}
	h := NewKafkaReportsHandler("oracle.reports", archive, noopMetrics{})
	require.Equal(t, "oracle.reports", h.Topic())

	rec := models.ReportRecord{
		Report: models.OracleReport{Symbol: "SOL", Archetype: models.ArchetypeProphet},
		Posted: "posted text",
	}
	b, err := json.Marshal(rec)
	require.NoError(t, err)

	require.NoError(t, h.Handle(context.Background(), b))
	require.Len(t, archive.recs, 1)
	require.Equal(t, "SOL", archive.recs[0].Report.Symbol)
}

func TestKafkaReportsHandlerBadPayload(t *testing.T) {
	h := NewKafkaReportsHandler("oracle.reports", &memSink{}, noopMetrics{})
	require.Error(t, h.Handle(context.Background(), []byte("{not json")))
}
