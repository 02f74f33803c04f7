package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"DelistRadar/internal/domain/models"
	drepo "DelistRadar/internal/domain/repository"
	pkgch "DelistRadar/pkg/clickhouse"
)

// AlertSchema creates the alert archive table. Passed to
// clickhouse.Client.InitSchema at startup.
func AlertSchema(table string) []string {
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			dispatch_at DateTime64(3) CODEC(Delta, ZSTD(1)),
			source LowCardinality(String),
			notice_id String,
			tickers Array(String),
			delist_date String,
			delist_time String,
			url String,
			is_test UInt8
		) ENGINE = MergeTree()
		PARTITION BY toYYYYMM(dispatch_at)
		ORDER BY (source, dispatch_at)`, table),
	}
}

// ClickHouseArchive implements AlertArchive for ClickHouse.
type ClickHouseArchive struct {
	client *pkgch.Client
	table  string
}

// NewClickHouseArchive creates a ClickHouse alert archive.
func NewClickHouseArchive(client *pkgch.Client, table string) drepo.AlertArchive {
	return &ClickHouseArchive{client: client, table: table}
}

func (a *ClickHouseArchive) Record(ctx context.Context, alert *models.Alert) error {
	q := fmt.Sprintf(`INSERT INTO %s
		(dispatch_at, source, notice_id, tickers, delist_date, delist_time, url, is_test)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, a.table)

	isTest := uint8(0)
	if alert.IsTest {
		isTest = 1
	}
	_, err := a.client.DB().ExecContext(ctx, q,
		alert.DispatchAt,
		string(alert.Source),
		alert.NoticeID,
		alert.Tickers,
		alert.Date,
		alert.Time,
		alert.URL,
		isTest,
	)
	if err != nil {
		return fmt.Errorf("archive record: %w", err)
	}
	return nil
}

func (a *ClickHouseArchive) Recent(ctx context.Context, since time.Time, limit int) ([]*models.Alert, error) {
	q := fmt.Sprintf(`SELECT dispatch_at, source, notice_id, tickers, delist_date, delist_time, url, is_test
		FROM %s
		WHERE dispatch_at >= ?
		ORDER BY dispatch_at DESC
		LIMIT ?`, a.table)

	rows, err := a.client.DB().QueryContext(ctx, q, since, limit)
	if err != nil {
		return nil, fmt.Errorf("archive query: %w", err)
	}
	defer rows.Close()

	var out []*models.Alert
	for rows.Next() {
		var (
			alert  models.Alert
			source string
			isTest uint8
		)
		if err := rows.Scan(&alert.DispatchAt, &source, &alert.NoticeID,
			&alert.Tickers, &alert.Date, &alert.Time, &alert.URL, &isTest); err != nil {
			return nil, fmt.Errorf("archive scan: %w", err)
		}
		alert.Source = models.Source(source)
		alert.IsTest = isTest == 1
		out = append(out, &alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("archive rows: %w", err)
	}
	return out, nil
}

func (a *ClickHouseArchive) Health(ctx context.Context) error {
	return a.client.Health(ctx)
}

func (a *ClickHouseArchive) Close() error {
	return a.client.Close()
}

// ErrArchiveDisabled is returned by query methods when no archive backend
// is configured.
var ErrArchiveDisabled = errors.New("alert archive disabled")

// NopAlertArchive is used when the archive is disabled.
type NopAlertArchive struct{}

func (NopAlertArchive) Record(ctx context.Context, a *models.Alert) error { return nil }

func (NopAlertArchive) Recent(ctx context.Context, since time.Time, limit int) ([]*models.Alert, error) {
	return nil, ErrArchiveDisabled
}

func (NopAlertArchive) Health(ctx context.Context) error { return nil }
func (NopAlertArchive) Close() error                     { return nil }
