package usecase

import (
	"context"
	"time"

	"MoonPulse/internal/domain/models"
	drepo "MoonPulse/internal/domain/repository"
)

// TickCollector consumes the live price stream and keeps the last-price gauge
// current. Gauge updates are throttled per symbol so a busy tape does not
// hammer the metrics registry.
type TickCollector struct {
	stream   drepo.PriceStream
	metrics  drepo.Metrics
	minGap   time.Duration
	lastSeen map[string]time.Time
}

// NewTickCollector creates a new TickCollector.
func NewTickCollector(stream drepo.PriceStream, metrics drepo.Metrics) *TickCollector {
	return &TickCollector{
		stream:   stream,
		metrics:  metrics,
		minGap:   time.Second,
		lastSeen: make(map[string]time.Time),
	}
}

// IsConnected returns true if the price stream is connected.
func (c *TickCollector) IsConnected() bool {
	return c.stream.IsConnected()
}

func (c *TickCollector) Start(ctx context.Context) error {
	if err := c.stream.Connect(ctx); err != nil {
		return err
	}
	if err := c.stream.Subscribe(ctx); err != nil {
		return err
	}
	tickCh, errCh := c.stream.Read(ctx)
	go c.consume(ctx, tickCh, errCh)
	return nil
}

func (c *TickCollector) consume(ctx context.Context, tickCh <-chan *models.PriceTick, errCh <-chan error) {
	for {
		select {
		case <-ctx.Done():
			return
		case err := <-errCh:
			if err != nil {
				c.metrics.RecordError("stream")
				_ = c.stream.Reconnect(ctx)
			}
		case t := <-tickCh:
			if t == nil {
				continue
			}
			now := time.Now()
			if now.Sub(c.lastSeen[t.Symbol]) < c.minGap {
				continue
			}
			c.lastSeen[t.Symbol] = now
			c.metrics.RecordLastPrice(t.Symbol, t.Price)
		}
	}
}

// Shutdown closes the stream.
func (c *TickCollector) Shutdown(ctx context.Context) error {
	return c.stream.Close()
}
