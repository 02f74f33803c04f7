package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"DelistRadar/internal/domain/models"
	drepo "DelistRadar/internal/domain/repository"
	"DelistRadar/internal/format"
	"DelistRadar/internal/novelty"
	"DelistRadar/internal/parser"
	"DelistRadar/pkg/logger"
)

// relevanceKeywords gate announcements before any parsing. A title that
// matches none of them is dropped without a novelty record.
var relevanceKeywords = []string{"delist", "removal", "cease", "trading pairs"}

// Pipeline runs the full path from raw announcement to dispatched alert.
// It owns the novelty tracker and is driven by exactly one goroutine, so
// dedup state needs no locking.
type Pipeline struct {
	parser   *parser.Parser
	tracker  *novelty.Tracker
	fetcher  drepo.ArticleFetcher
	state    drepo.StateStore
	notifier drepo.Notifier
	archive  drepo.AlertArchive
	pub      drepo.AlertPublisher
	metrics  drepo.Metrics
	log      *logger.Logger

	historySize int
}

// NewPipeline creates a Pipeline. Init must be called before Ingest.
func NewPipeline(
	p *parser.Parser,
	fetcher drepo.ArticleFetcher,
	state drepo.StateStore,
	notifier drepo.Notifier,
	archive drepo.AlertArchive,
	pub drepo.AlertPublisher,
	metrics drepo.Metrics,
	log *logger.Logger,
	historySize int,
) *Pipeline {
	if historySize <= 0 {
		historySize = novelty.DefaultLimit
	}
	return &Pipeline{
		parser:      p,
		fetcher:     fetcher,
		state:       state,
		notifier:    notifier,
		archive:     archive,
		pub:         pub,
		metrics:     metrics,
		log:         log,
		historySize: historySize,
	}
}

// Init loads persisted novelty state into the tracker. A missing or
// unreadable state yields an empty tracker, never a startup failure.
func (pl *Pipeline) Init(ctx context.Context) error {
	ids, err := pl.state.Load(ctx)
	if err != nil {
		pl.log.Warn("novelty state load failed, starting fresh", logger.Error(err))
		ids = nil
	}
	pl.tracker = novelty.NewTracker(pl.historySize, ids)
	pl.log.Info("novelty state loaded", logger.Int("entries", pl.tracker.Len()))
	return nil
}

// NoticeID derives the stable dedup identity for a raw announcement.
func NoticeID(raw *models.RawAnnouncement) string {
	switch raw.Source {
	case models.SourceBinance:
		return "binance_ws_" + raw.Identifier
	case models.SourceBybit:
		return "bybit_" + raw.Identifier
	default:
		return string(raw.Source) + "_" + raw.Identifier
	}
}

func relevant(title string) bool {
	t := strings.ToLower(title)
	for _, kw := range relevanceKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// Ingest runs one announcement through relevance, dedup, parse and
// dispatch. Errors that should cause re-evaluation on redelivery (a
// failed article fetch, a total send failure) leave the tracker
// untouched.
func (pl *Pipeline) Ingest(ctx context.Context, raw *models.RawAnnouncement) error {
	start := time.Now()
	src := string(raw.Source)
	pl.metrics.RecordReceived(src)

	if !relevant(raw.Title) {
		pl.metrics.RecordDropped(src, "irrelevant")
		return nil
	}

	id := NoticeID(raw)
	if !pl.tracker.IsNew(id) {
		pl.metrics.RecordDuplicate(src)
		pl.log.Debug("duplicate announcement skipped", logger.String("notice_id", id))
		return nil
	}

	item := raw
	if raw.Source == models.SourceBinance && raw.Body == "" && raw.URL != "" {
		body, err := pl.fetcher.FetchHTML(ctx, raw.URL)
		if err != nil {
			pl.metrics.RecordDropped(src, "fetch_failed")
			pl.metrics.RecordError("fetch")
			pl.log.Warn("article fetch failed, leaving item unrecorded",
				logger.String("notice_id", id),
				logger.Error(err))
			return fmt.Errorf("fetch %s: %w", id, err)
		}
		clone := *raw
		clone.Body = body
		item = &clone
	}

	parsed := pl.parser.Parse(item)
	message := format.DelistingMessage(src, parsed, raw.URL, false)

	if err := pl.notifier.Send(ctx, message); err != nil {
		pl.metrics.RecordError("notify")
		return fmt.Errorf("notify %s: %w", id, err)
	}

	pl.tracker.Record(id)
	if err := pl.state.Save(ctx, pl.tracker.Snapshot()); err != nil {
		pl.metrics.RecordError("state")
		pl.log.Error("novelty state save failed", logger.Error(err))
	}

	alert := &models.Alert{
		Source:     raw.Source,
		NoticeID:   id,
		Tickers:    parsed.Tickers,
		Date:       parsed.Date,
		Time:       parsed.Time,
		URL:        raw.URL,
		DispatchAt: time.Now().UTC(),
	}
	pl.sideEffects(ctx, alert)

	pl.metrics.RecordDispatched(src)
	pl.metrics.RecordLatency("ingest", time.Since(start).Seconds())
	pl.log.Info("alert dispatched",
		logger.String("notice_id", id),
		logger.Strings("tickers", parsed.Tickers),
		logger.String("date", parsed.Date),
		logger.String("time", parsed.Time))
	return nil
}

// TestDispatch sends a synthetic alert through parse and dispatch while
// bypassing the novelty tracker entirely.
func (pl *Pipeline) TestDispatch(ctx context.Context, raw *models.RawAnnouncement) (*models.ParsedAnnouncement, error) {
	parsed := pl.parser.Parse(raw)
	src := string(raw.Source)
	message := format.DelistingMessage(src, parsed, raw.URL, true)

	if err := pl.notifier.Send(ctx, message); err != nil {
		pl.metrics.RecordError("notify")
		return nil, fmt.Errorf("test notify: %w", err)
	}

	alert := &models.Alert{
		Source:     raw.Source,
		NoticeID:   "test_" + raw.Identifier,
		Tickers:    parsed.Tickers,
		Date:       parsed.Date,
		Time:       parsed.Time,
		URL:        raw.URL,
		IsTest:     true,
		DispatchAt: time.Now().UTC(),
	}
	pl.sideEffects(ctx, alert)
	return parsed, nil
}

// sideEffects records and publishes best-effort: the alert is already
// delivered, downstream failures only get logged.
func (pl *Pipeline) sideEffects(ctx context.Context, alert *models.Alert) {
	if err := pl.archive.Record(ctx, alert); err != nil {
		pl.metrics.RecordError("archive")
		pl.log.Error("alert archive failed",
			logger.String("notice_id", alert.NoticeID),
			logger.Error(err))
	}
	if err := pl.pub.Publish(ctx, alert); err != nil {
		pl.metrics.RecordError("publish")
		pl.log.Error("alert publish failed",
			logger.String("notice_id", alert.NoticeID),
			logger.Error(err))
	}
}

// Tracked reports the current novelty history size.
func (pl *Pipeline) Tracked() int {
	if pl.tracker == nil {
		return 0
	}
	return pl.tracker.Len()
}
