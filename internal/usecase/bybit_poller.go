package usecase

import (
	"context"
	"time"

	drepo "DelistRadar/internal/domain/repository"
	"DelistRadar/pkg/logger"
)

// Poller drives a pull feed on a fixed interval and submits its items to
// the collector oldest-first, so dedup history fills in publication order.
type Poller struct {
	feed      drepo.AnnouncementPoller
	collector *Collector
	metrics   drepo.Metrics
	log       *logger.Logger
	interval  time.Duration
}

// NewPoller creates a Poller.
func NewPoller(feed drepo.AnnouncementPoller, collector *Collector, metrics drepo.Metrics, log *logger.Logger, interval time.Duration) *Poller {
	return &Poller{
		feed:      feed,
		collector: collector,
		metrics:   metrics,
		log:       log,
		interval:  interval,
	}
}

// Start launches the poll loop. The first fetch happens immediately.
func (p *Poller) Start(ctx context.Context) {
	go func() {
		p.pollOnce(ctx)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.pollOnce(ctx)
			}
		}
	}()
}

func (p *Poller) pollOnce(ctx context.Context) {
	items, err := p.feed.Fetch(ctx)
	if err != nil {
		p.metrics.RecordError("poll")
		p.log.Warn("poll failed", logger.Error(err))
		return
	}

	// API order is newest-first; walk backwards.
	for i := len(items) - 1; i >= 0; i-- {
		if err := p.collector.Submit(ctx, items[i]); err != nil {
			return
		}
	}
}
