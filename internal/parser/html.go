package parser

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// document is the tag-stripped view of an announcement page: the heading,
// the flattened text with inter-element whitespace collapsed, and the text
// of emphasized spans (bolded terms are more likely to be tickers).
type document struct {
	Heading    string
	Text       string
	Emphasized string
}

// reduceHTML parses markup into a document. Malformed input is not an
// error: the html parser is lenient and whatever text it recovers is used.
func reduceHTML(markup string) (*document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, err
	}

	heading := collapse(doc.Find("h1").First().Text())
	if heading == "" {
		heading = collapse(doc.Find("h2").First().Text())
	}

	var emphasized []string
	doc.Find("strong, b, em, code").Each(func(_ int, s *goquery.Selection) {
		if t := collapse(s.Text()); t != "" {
			emphasized = append(emphasized, t)
		}
	})

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}

	return &document{
		Heading:    heading,
		Text:       strings.Join(parts, " "),
		Emphasized: strings.Join(emphasized, " "),
	}, nil
}

// collectText joins text nodes with single spaces so adjacent elements do
// not glue their words together. Script and style bodies are not prose.
func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	if n.Type == html.TextNode {
		if t := collapse(n.Data); t != "" {
			*parts = append(*parts, t)
		}
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
