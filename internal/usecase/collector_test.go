package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"DelistRadar/internal/domain/models"
)

type fakeStream struct {
	anns      chan *models.RawAnnouncement
	errs      chan error
	connected bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{
		anns: make(chan *models.RawAnnouncement, 16),
		errs: make(chan error, 1),
	}
}

func (s *fakeStream) Connect(ctx context.Context) error   { s.connected = true; return nil }
func (s *fakeStream) Subscribe(ctx context.Context) error { return nil }
func (s *fakeStream) Reconnect(ctx context.Context) error { s.connected = true; return nil }
func (s *fakeStream) Close() error                        { s.connected = false; return nil }
func (s *fakeStream) IsConnected() bool                   { return s.connected }

func (s *fakeStream) Read(ctx context.Context) (<-chan *models.RawAnnouncement, <-chan error) {
	return s.anns, s.errs
}

func streamItem(id int) *models.RawAnnouncement {
	return &models.RawAnnouncement{
		Source:     models.SourceBinance,
		Identifier: fmt.Sprintf("%d", id),
		Title:      fmt.Sprintf("Binance Will Delist TK%d on 2026-01-01", id),
		Body:       "delist body",
		URL:        fmt.Sprintf("https://binance.com/a/%d", id),
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not reached")
}

func TestCollectorDeliversStreamItems(t *testing.T) {
	f := newFixture(t, nil)
	stream := newFakeStream()
	c := NewCollector(stream, f.pipe, nopMetrics{}, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	stream.anns <- streamItem(1)
	stream.anns <- streamItem(2)

	waitFor(t, func() bool { return f.notifier.sentCount() == 2 })
	if got := len(f.state.snapshots()); got != 2 {
		t.Fatalf("saved %d times, want 2", got)
	}
}

// flakyStream fails every direct Connect so the collector has to fall back
// to the Reconnect retry path.
type flakyStream struct {
	*fakeStream
	reconnects int32
}

func (s *flakyStream) Connect(ctx context.Context) error {
	return errors.New("dial refused")
}

func (s *flakyStream) Reconnect(ctx context.Context) error {
	atomic.AddInt32(&s.reconnects, 1)
	return nil
}

func TestCollectorRetriesInitialConnect(t *testing.T) {
	f := newFixture(t, nil)
	stream := &flakyStream{fakeStream: newFakeStream()}
	c := NewCollector(stream, f.pipe, nopMetrics{}, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	waitFor(t, func() bool { return atomic.LoadInt32(&stream.reconnects) >= 1 })

	// The stream must still deliver once the retry succeeds.
	stream.anns <- streamItem(1)
	waitFor(t, func() bool { return f.notifier.sentCount() == 1 })
}

func TestCollectorSubmitFeedsPipeline(t *testing.T) {
	f := newFixture(t, nil)
	stream := newFakeStream()
	c := NewCollector(stream, f.pipe, nopMetrics{}, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	item := delistItem()
	if err := c.Submit(ctx, item); err != nil {
		t.Fatalf("submit: %v", err)
	}

	waitFor(t, func() bool { return f.notifier.sentCount() == 1 })
}

func TestCollectorSubmitHonorsCancellation(t *testing.T) {
	f := newFixture(t, nil)
	stream := newFakeStream()
	c := NewCollector(stream, f.pipe, nopMetrics{}, testLogger(t))

	// No consumer running: fill the hand-off channel, then expect Submit to
	// unblock on cancellation.
	ctx, cancel := context.WithCancel(context.Background())
	for i := 0; i < cap(c.in); i++ {
		if err := c.Submit(ctx, streamItem(i)); err != nil {
			t.Fatalf("fill: %v", err)
		}
	}
	cancel()
	if err := c.Submit(ctx, streamItem(999)); err == nil {
		t.Fatalf("expected context error")
	}
}

type fakeFeed struct {
	items []*models.RawAnnouncement
	err   error
}

func (p *fakeFeed) Fetch(ctx context.Context) ([]*models.RawAnnouncement, error) {
	return p.items, p.err
}

func TestPollerSubmitsOldestFirst(t *testing.T) {
	f := newFixture(t, nil)
	stream := newFakeStream()
	c := NewCollector(stream, f.pipe, nopMetrics{}, testLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	// API order is newest first.
	feed := &fakeFeed{items: []*models.RawAnnouncement{
		{Source: models.SourceBybit, Identifier: "new", Title: "Delisting of BBB", URL: "https://b/new"},
		{Source: models.SourceBybit, Identifier: "old", Title: "Delisting of AAA", URL: "https://b/old"},
	}}
	p := NewPoller(feed, c, nopMetrics{}, testLogger(t), time.Hour)
	p.Start(ctx)

	waitFor(t, func() bool { return len(f.state.snapshots()) == 2 })
	saved := f.state.snapshots()
	final := saved[len(saved)-1]
	if final[0] != "bybit_old" || final[1] != "bybit_new" {
		t.Fatalf("order = %v", final)
	}
}
