package parser

import (
	"DelistRadar/internal/domain/models"
	applogger "DelistRadar/pkg/logger"
)

// Strategy turns one raw announcement into its canonical form. Strategies
// never fail: malformed input yields the best-effort fallback result.
type Strategy interface {
	Parse(raw *models.RawAnnouncement) *models.ParsedAnnouncement
}

// Parser routes announcements to per-source strategies. A source with no
// registered strategy yields the full fallback result and is logged as
// unsupported, not treated as a hard failure.
type Parser struct {
	strategies map[models.Source]Strategy
	log        *applogger.Logger
}

func New(log *applogger.Logger) *Parser {
	return &Parser{
		strategies: map[models.Source]Strategy{
			models.SourceBinance: htmlStrategy{},
			models.SourceBybit:   titleStrategy{},
		},
		log: log,
	}
}

// Register installs or replaces the strategy for a source.
func (p *Parser) Register(src models.Source, s Strategy) {
	p.strategies[src] = s
}

func (p *Parser) Parse(raw *models.RawAnnouncement) *models.ParsedAnnouncement {
	if raw == nil {
		return models.Fallback()
	}
	s, ok := p.strategies[raw.Source]
	if !ok {
		if p.log != nil {
			p.log.Warn("no parser registered for source",
				applogger.String("source", string(raw.Source)))
		}
		return models.Fallback()
	}
	return s.Parse(raw)
}

// htmlStrategy handles full HTML documents (Binance article pages). The date
// is searched title-first: announcement headings carry the effective date far
// more reliably than body prose. Tickers are extracted preferentially from
// emphasized spans before falling back to the whole document.
type htmlStrategy struct{}

func (htmlStrategy) Parse(raw *models.RawAnnouncement) *models.ParsedAnnouncement {
	if raw.Body == "" {
		// Title-only item: the heading doubles as the body.
		date, t := ExtractDateTimeTitleFirst(raw.Title, raw.Title)
		return &models.ParsedAnnouncement{
			Tickers: ExtractTickers(raw.Title),
			Date:    date,
			Time:    t,
		}
	}

	doc, err := reduceHTML(raw.Body)
	if err != nil {
		return models.Fallback()
	}

	title := doc.Heading
	if title == "" {
		title = raw.Title
	}

	tickers := ExtractTickers(doc.Emphasized)
	if len(tickers) == 0 {
		tickers = ExtractTickers(doc.Text)
	}

	date, t := ExtractDateTimeTitleFirst(title, doc.Text)
	return &models.ParsedAnnouncement{Tickers: tickers, Date: date, Time: t}
}

// titleStrategy handles unstructured prose (Bybit titles, descriptions and
// article pages) with proximity-mode date search. An HTML body is reduced to
// plain text first; plain-text bodies survive the reduction unchanged.
type titleStrategy struct{}

func (titleStrategy) Parse(raw *models.RawAnnouncement) *models.ParsedAnnouncement {
	text := raw.Title
	if raw.Body != "" {
		body := raw.Body
		if doc, err := reduceHTML(raw.Body); err == nil && doc.Text != "" {
			body = doc.Text
		}
		if text == "" {
			text = body
		} else {
			text = text + " " + body
		}
	}

	date, t := ExtractDateTimeProximity(text)
	return &models.ParsedAnnouncement{
		Tickers: ExtractTickers(text),
		Date:    date,
		Time:    t,
	}
}
