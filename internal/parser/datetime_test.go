package parser

import (
	"testing"

	"DelistRadar/internal/domain/models"
)

func TestNormalizeDateLongMonth(t *testing.T) {
	if got := NormalizeDate("February 11, 2026"); got != "2026-02-11" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeDateShortMonth(t *testing.T) {
	if got := NormalizeDate("Feb 11, 2026"); got != "2026-02-11" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeDateCanonicalUnchanged(t *testing.T) {
	if got := NormalizeDate("2022-11-28"); got != "2022-11-28" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeDatePassthrough(t *testing.T) {
	if got := NormalizeDate("sometime soon"); got != "sometime soon" {
		t.Fatalf("got %q", got)
	}
}

func TestNormalizeTime(t *testing.T) {
	cases := map[string]string{
		"9AM":     "09:00",
		"9 AM":    "09:00",
		"3:04PM":  "15:04",
		"10:00":   "10:00",
		"gibber":  "gibber",
		"12PM":    "12:00",
		"12AM":    "00:00",
	}
	for in, want := range cases {
		if got := NormalizeTime(in); got != want {
			t.Fatalf("NormalizeTime(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTitleFirstPrefersTitleDate(t *testing.T) {
	date, tm := ExtractDateTimeTitleFirst(
		"Binance Will Delist AION, MIR and ANC on 2022-11-28",
		"Trading will stop on 2023-01-01 at 10:00 UTC",
	)
	if date != "2022-11-28" {
		t.Fatalf("date = %q", date)
	}
	if tm != "10:00 (UTC)" {
		t.Fatalf("time = %q", tm)
	}
}

func TestTitleFirstFallsBackToBody(t *testing.T) {
	date, _ := ExtractDateTimeTitleFirst(
		"Notice of token removal",
		"Trading ceases on March 3, 2026",
	)
	if date != "2026-03-03" {
		t.Fatalf("date = %q", date)
	}
}

func TestTitleFirstNothingFound(t *testing.T) {
	date, tm := ExtractDateTimeTitleFirst("Notice", "no schedule here")
	if date != models.UnknownSentinel || tm != models.UnknownSentinel {
		t.Fatalf("got %q / %q", date, tm)
	}
}

func TestProximityPicksKeywordNearestDate(t *testing.T) {
	text := "Listed on January 1, 2020. Bybit will terminate trading on 2026-02-11 for several contracts."
	date, _ := ExtractDateTimeProximity(text)
	if date != "2026-02-11" {
		t.Fatalf("date = %q", date)
	}
}

func TestProximityNoKeywordTakesFirstDate(t *testing.T) {
	text := "Effective 2025-06-01, and later 2025-07-01, schedules change."
	date, _ := ExtractDateTimeProximity(text)
	if date != "2025-06-01" {
		t.Fatalf("date = %q", date)
	}
}

func TestProximityTimeInsideWindow(t *testing.T) {
	text := "CUDISUSDT Perpetual Contract at 9AM UTC on Feb 11, 2026"
	date, tm := ExtractDateTimeProximity(text)
	if date != "2026-02-11" {
		t.Fatalf("date = %q", date)
	}
	if tm != "09:00 (UTC)" {
		t.Fatalf("time = %q", tm)
	}
}

func TestProximityTimeOutsideWindowIsUnknown(t *testing.T) {
	text := "Maintenance begins at 8:00 and lasts a while before the delisting of pairs scheduled for 2026-04-01."
	_, tm := ExtractDateTimeProximity(text)
	if tm != models.UnknownSentinel {
		t.Fatalf("time = %q", tm)
	}
}

func TestProximityNoDate(t *testing.T) {
	date, tm := ExtractDateTimeProximity("no schedule at all")
	if date != models.UnknownSentinel || tm != models.UnknownSentinel {
		t.Fatalf("got %q / %q", date, tm)
	}
}
