package parser

import (
	"reflect"
	"testing"

	"DelistRadar/internal/domain/models"
)

func TestParseBinanceTitleOnly(t *testing.T) {
	p := New(nil)
	got := p.Parse(&models.RawAnnouncement{
		Source:     models.SourceBinance,
		Identifier: "100",
		Title:      "Binance Will Delist AION, MIR and ANC on 2022-11-28",
	})

	if want := []string{"AION", "ANC", "MIR"}; !reflect.DeepEqual(got.Tickers, want) {
		t.Fatalf("tickers = %v, want %v", got.Tickers, want)
	}
	if got.Date != "2022-11-28" {
		t.Fatalf("date = %q", got.Date)
	}
	if got.Time != models.UnknownSentinel {
		t.Fatalf("time = %q", got.Time)
	}
}

func TestParseBinanceHTMLPrefersEmphasized(t *testing.T) {
	p := New(nil)
	body := `<html><body>
		<h1>Notice Regarding the Removal of Trading Pairs</h1>
		<p>Binance will remove <strong>OMG</strong> pairs on 2026-05-20 at 03:00 UTC.</p>
	</body></html>`
	got := p.Parse(&models.RawAnnouncement{
		Source: models.SourceBinance,
		Title:  "Notice",
		Body:   body,
	})

	if want := []string{"OMG"}; !reflect.DeepEqual(got.Tickers, want) {
		t.Fatalf("tickers = %v, want %v", got.Tickers, want)
	}
	if got.Date != "2026-05-20" {
		t.Fatalf("date = %q", got.Date)
	}
	if got.Time != "03:00 (UTC)" {
		t.Fatalf("time = %q", got.Time)
	}
}

func TestParseBinanceHTMLFallsBackToBodyText(t *testing.T) {
	p := New(nil)
	body := `<html><body>
		<h1>Delisting notice</h1>
		<p>The XYZ/USDT pair ceases trading on 2026-01-15.</p>
	</body></html>`
	got := p.Parse(&models.RawAnnouncement{
		Source: models.SourceBinance,
		Title:  "Delisting notice",
		Body:   body,
	})

	if want := []string{"XYZ"}; !reflect.DeepEqual(got.Tickers, want) {
		t.Fatalf("tickers = %v, want %v", got.Tickers, want)
	}
	if got.Date != "2026-01-15" {
		t.Fatalf("date = %q", got.Date)
	}
}

func TestParseBybitHTMLBodyProximity(t *testing.T) {
	p := New(nil)
	got := p.Parse(&models.RawAnnouncement{
		Source: models.SourceBybit,
		Title:  "Delisting notice",
		Body:   `<p><strong>CUDISUSDT</strong> Perpetual Contract at 9AM UTC on Feb 11, 2026</p>`,
	})

	if want := []string{"CUDIS"}; !reflect.DeepEqual(got.Tickers, want) {
		t.Fatalf("tickers = %v, want %v", got.Tickers, want)
	}
	if got.Date != "2026-02-11" {
		t.Fatalf("date = %q", got.Date)
	}
	if got.Time != "09:00 (UTC)" {
		t.Fatalf("time = %q", got.Time)
	}
}

func TestParseUnparseableYieldsFallback(t *testing.T) {
	p := New(nil)
	got := p.Parse(&models.RawAnnouncement{
		Source: models.SourceBybit,
		Title:  "nothing recognizable here",
	})

	if got.HasTickers() {
		t.Fatalf("expected no tickers, got %v", got.Tickers)
	}
	if got.Date != models.UnknownSentinel || got.Time != models.UnknownSentinel {
		t.Fatalf("got %q / %q", got.Date, got.Time)
	}
}

func TestParseUnknownSourceYieldsFallback(t *testing.T) {
	p := New(nil)
	got := p.Parse(&models.RawAnnouncement{
		Source: models.Source("kraken"),
		Title:  "Kraken will delist ABC on 2026-01-01",
	})

	if got.HasTickers() || got.Date != models.UnknownSentinel {
		t.Fatalf("expected fallback, got %+v", got)
	}
}
