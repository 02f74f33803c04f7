package repository

import (
	"context"
	"time"

	"DelistRadar/internal/domain/models"
)

// AnnouncementStream is a push feed of raw announcements (Binance WebSocket).
type AnnouncementStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context) error
	Read(ctx context.Context) (<-chan *models.RawAnnouncement, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// AnnouncementPoller is a pull feed of raw announcements (Bybit REST).
// Items are returned newest-first, the way the upstream API orders them.
type AnnouncementPoller interface {
	Fetch(ctx context.Context) ([]*models.RawAnnouncement, error)
}

// ArticleFetcher retrieves the full HTML of an announcement page.
// A fetch failure means "skip this item, do not record"; the item is
// re-evaluated if the feed delivers it again.
type ArticleFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
}

// StateStore persists the ordered novelty sequence. Load returns an empty
// sequence when no prior state exists or it is unreadable.
type StateStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}

// Notifier delivers a formatted alert to every configured target. Each
// target is attempted independently; per-target failures are logged only.
type Notifier interface {
	Send(ctx context.Context, message string) error
	Targets() int
}

// AlertPublisher fans dispatched alerts out to downstream consumers.
type AlertPublisher interface {
	Publish(ctx context.Context, a *models.Alert) error
	Close() error
}

// AlertArchive keeps a queryable history of dispatched alerts.
type AlertArchive interface {
	Record(ctx context.Context, a *models.Alert) error
	Recent(ctx context.Context, since time.Time, limit int) ([]*models.Alert, error)
	Health(ctx context.Context) error
	Close() error
}

type Metrics interface {
	RecordReceived(source string)
	RecordDispatched(source string)
	RecordDuplicate(source string)
	RecordDropped(source, reason string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
	RecordStreamUp(up bool)
}
