package parser

import (
	"reflect"
	"testing"
)

func TestExtractTickersDelistTitle(t *testing.T) {
	got := ExtractTickers("Binance Will Delist AION, MIR and ANC on 2022-11-28")
	want := []string{"AION", "ANC", "MIR"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractTickersSuffixStrip(t *testing.T) {
	got := ExtractTickers("CUDISUSDT Perpetual Contract at 9AM UTC on Feb 11, 2026")
	want := []string{"CUDIS"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractTickersSlashPairKeepsLeftSide(t *testing.T) {
	got := ExtractTickers("trading pairs ALPHA/USDT and BETA/BTC will be removed")
	want := []string{"ALPHA", "BETA"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractTickersNoChainedStripping(t *testing.T) {
	// One strip only: the remainder keeps its own quote-like tail.
	got := ExtractTickers("delisting of LUNABTCUSDT")
	want := []string{"LUNABTC"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractTickersStripRequiresTwoCharRemainder(t *testing.T) {
	// Stripping USDT from AUSDT would leave one character, so the token
	// survives whole.
	got := ExtractTickers("removal of AUSDT")
	want := []string{"AUSDT"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestExtractTickersStrippedRemainderRechecked(t *testing.T) {
	// USDUSDT strips to USD, which is itself excluded vocabulary.
	if got := ExtractTickers("USDUSDT"); got != nil {
		t.Fatalf("expected no tickers, got %v", got)
	}
}

func TestExtractTickersEmptyInput(t *testing.T) {
	if got := ExtractTickers(""); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}

func TestExtractTickersExclusionInvariant(t *testing.T) {
	texts := []string{
		"BINANCE SPOT MARGIN will delist TOKEN CONTRACT on 2026-01-01",
		"Bybit delisting of OMG USDT PERPETUAL at 8AM UTC",
		"Notice of removal: XYZ/USDT, USDC pairs cease trading",
	}
	for _, text := range texts {
		for _, tick := range ExtractTickers(text) {
			if tick == "" {
				t.Fatalf("empty ticker from %q", text)
			}
			if _, bad := excluded[tick]; bad {
				t.Fatalf("excluded word %q leaked from %q", tick, text)
			}
		}
	}
}

func TestExtractTickersRejectsNumbersAndClockTokens(t *testing.T) {
	if got := ExtractTickers("at 9AM on 2026, day 11"); got != nil {
		t.Fatalf("expected no tickers, got %v", got)
	}
}

func TestExtractTickersDeduplicatesBareAndPair(t *testing.T) {
	got := ExtractTickers("OMG and OMG/USDT cease trading")
	want := []string{"OMG"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}
