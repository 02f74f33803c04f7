package format

import (
	"fmt"
	"strings"

	"DelistRadar/internal/domain/models"
)

// NoTickersPlaceholder is rendered when extraction found no symbols; the
// alert still goes out so a human can read the linked announcement.
const NoTickersPlaceholder = "⚠️ <b>no tickers found</b>"

// DelistingMessage renders a canonical parse result into the Telegram HTML
// notification. Pure function of its inputs.
func DelistingMessage(source string, p *models.ParsedAnnouncement, url string, isTest bool) string {
	var b strings.Builder

	label := strings.ToUpper(source)
	if isTest {
		fmt.Fprintf(&b, "🧪 <b>TEST %s DELISTING</b> 🧪\n\n", label)
	} else {
		fmt.Fprintf(&b, "🚨 <b>%s DELISTING</b>\n\n", label)
	}

	fmt.Fprintf(&b, "🪙 Coins: %s\n", tickerLine(p))
	fmt.Fprintf(&b, "📅 Date: %s\n", p.Date)
	fmt.Fprintf(&b, "🕒 Time: %s\n\n", p.Time)
	fmt.Fprintf(&b, "🔗 <a href='%s'>Read announcement</a>", url)

	return b.String()
}

func tickerLine(p *models.ParsedAnnouncement) string {
	if !p.HasTickers() {
		return NoTickersPlaceholder
	}
	marked := make([]string, len(p.Tickers))
	for i, t := range p.Tickers {
		marked[i] = fmt.Sprintf("<code>$%s</code>", t)
	}
	return strings.Join(marked, ", ")
}
