package usecase

import (
	"context"

	"DelistRadar/internal/domain/models"
	drepo "DelistRadar/internal/domain/repository"
	"DelistRadar/pkg/logger"
)

// Collector funnels every feed into a single bounded hand-off channel and
// drains it from exactly one consumer goroutine, which keeps the pipeline
// strictly sequential.
type Collector struct {
	stream  drepo.AnnouncementStream
	pipe    *Pipeline
	metrics drepo.Metrics
	log     *logger.Logger
	in      chan *models.RawAnnouncement
}

// NewCollector creates a Collector.
func NewCollector(stream drepo.AnnouncementStream, pipe *Pipeline, metrics drepo.Metrics, log *logger.Logger) *Collector {
	return &Collector{
		stream:  stream,
		pipe:    pipe,
		metrics: metrics,
		log:     log,
		in:      make(chan *models.RawAnnouncement, 64),
	}
}

// IsConnected returns true if the announcement stream is connected.
func (c *Collector) IsConnected() bool {
	return c.stream.IsConnected()
}

// Submit hands an announcement to the pipeline. It blocks when the
// hand-off channel is full so producers get backpressure instead of
// silent drops.
func (c *Collector) Submit(ctx context.Context, raw *models.RawAnnouncement) error {
	select {
	case c.in <- raw:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start launches the read and consume loops. The initial connection is
// established inside the read loop, so a failure there goes through the
// same retry path as any later drop instead of leaving the stream dead.
func (c *Collector) Start(ctx context.Context) error {
	go c.readStream(ctx)
	go c.consume(ctx)
	return nil
}

// connect establishes the initial stream connection. A failed connect or
// subscribe drops into Reconnect, which keeps retrying until the stream is
// up or the context is cancelled.
func (c *Collector) connect(ctx context.Context) error {
	err := c.stream.Connect(ctx)
	if err == nil {
		err = c.stream.Subscribe(ctx)
	}
	if err == nil {
		return nil
	}
	c.metrics.RecordError("stream")
	c.log.Warn("stream connect failed, retrying", logger.Error(err))
	return c.stream.Reconnect(ctx)
}

// readStream forwards stream items into the hand-off channel and drives
// reconnection. After a reconnect the stream channels are stale and must
// be re-acquired.
func (c *Collector) readStream(ctx context.Context) {
	if err := c.connect(ctx); err != nil {
		return
	}
	c.metrics.RecordStreamUp(true)

	annCh, errCh := c.stream.Read(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				c.metrics.RecordError("stream")
				c.metrics.RecordStreamUp(false)
				c.log.Warn("stream error, reconnecting", logger.Error(err))
				if rerr := c.stream.Reconnect(ctx); rerr != nil {
					return
				}
				c.metrics.RecordStreamUp(true)
				annCh, errCh = c.stream.Read(ctx)
			}
		case raw, ok := <-annCh:
			if !ok {
				annCh = nil
				continue
			}
			if raw == nil {
				continue
			}
			if err := c.Submit(ctx, raw); err != nil {
				return
			}
		}
	}
}

func (c *Collector) consume(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case raw := <-c.in:
			if raw == nil {
				continue
			}
			if err := c.pipe.Ingest(ctx, raw); err != nil {
				c.log.Warn("ingest failed",
					logger.String("source", string(raw.Source)),
					logger.Error(err))
			}
		}
	}
}

// Shutdown closes the stream.
func (c *Collector) Shutdown(ctx context.Context) error {
	c.metrics.RecordStreamUp(false)
	return c.stream.Close()
}
