package parser

import (
	"regexp"
	"sort"
	"strings"
)

// quoteSuffixes is the declared priority list for suffix stripping. Order
// matters: the first matching suffix wins and no chained stripping happens,
// so CUDISUSDT becomes CUDIS, not CUDI.
var quoteSuffixes = []string{
	"USDT", "USDC", "BUSD", "FDUSD", "USD", "PERP", "BTC", "ETH", "BNB",
}

// structuralWords are announcement-prose tokens that look like tickers but
// never are.
var structuralWords = []string{
	"BINANCE", "BYBIT", "DELIST", "DELISTING", "LISTING", "NOTICE", "REMOVAL",
	"SUPPORT", "ANNOUNCEMENT", "UTC", "SPOT", "MARGIN", "TOKEN", "PERPETUAL",
	"CONTRACT", "ALL", "AND", "OF", "TO", "FOR", "WITH", "FROM", "VIA", "IN",
	"THE", "AM", "PM", "AT", "ON",
}

var excluded = func() map[string]struct{} {
	m := make(map[string]struct{}, len(quoteSuffixes)+len(structuralWords))
	for _, w := range quoteSuffixes {
		m[w] = struct{}{}
	}
	for _, w := range structuralWords {
		m[w] = struct{}{}
	}
	return m
}()

var (
	bareTickerRe = regexp.MustCompile(`\b[A-Z0-9]{2,10}\b`)
	pairRe       = regexp.MustCompile(`\b([A-Z0-9]{2,10})/[A-Z0-9]{2,10}\b`)
	numericRe    = regexp.MustCompile(`^[0-9]+$`)
	clockTokenRe = regexp.MustCompile(`^[0-9]{1,2}[AP]M$`)
)

// ExtractTickers pulls candidate base-asset symbols out of a text blob.
// Candidates are whole tokens of 2-10 uppercase alphanumerics plus the left
// side of A/B pairs; the exclusion vocabulary is applied before and after
// quote-suffix stripping. The result is deduplicated, upper-case and
// lexicographically sorted. Empty input yields an empty result, never an
// error.
func ExtractTickers(text string) []string {
	if text == "" {
		return nil
	}

	candidates := make(map[string]struct{})
	for _, tok := range bareTickerRe.FindAllString(text, -1) {
		candidates[tok] = struct{}{}
	}
	// The left side of a pair is the delisted asset; the right side is the
	// quote currency.
	for _, m := range pairRe.FindAllStringSubmatch(text, -1) {
		candidates[m[1]] = struct{}{}
	}

	final := make(map[string]struct{}, len(candidates))
	for tok := range candidates {
		if !keepCandidate(tok) {
			continue
		}
		tok = stripQuoteSuffix(tok)
		// A stripped remainder might itself be an excluded word.
		if !keepCandidate(tok) {
			continue
		}
		final[strings.ToUpper(tok)] = struct{}{}
	}

	if len(final) == 0 {
		return nil
	}
	out := make([]string, 0, len(final))
	for t := range final {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// keepCandidate rejects excluded vocabulary, bare numbers (years, day
// numbers) and clock tokens like 9AM.
func keepCandidate(tok string) bool {
	if tok == "" {
		return false
	}
	if _, bad := excluded[tok]; bad {
		return false
	}
	if numericRe.MatchString(tok) || clockTokenRe.MatchString(tok) {
		return false
	}
	return true
}

// stripQuoteSuffix removes at most one quote-currency suffix, provided at
// least two characters remain (handles contract names like CUDISUSDT).
func stripQuoteSuffix(tok string) string {
	for _, suffix := range quoteSuffixes {
		if strings.HasSuffix(tok, suffix) && len(tok)-len(suffix) >= 2 {
			return tok[:len(tok)-len(suffix)]
		}
	}
	return tok
}
