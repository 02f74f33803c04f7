package fetcher

import (
	"context"
	"fmt"

	drepo "DelistRadar/internal/domain/repository"
	dhttp "DelistRadar/pkg/http"
)

// browserHeaders makes announcement pages render the same markup a
// regular browser would receive.
var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// Fetcher implements ArticleFetcher over plain HTTP GET.
type Fetcher struct {
	http *dhttp.Client
}

// New creates a new article Fetcher.
func New(httpClient *dhttp.Client) drepo.ArticleFetcher {
	return &Fetcher{http: httpClient}
}

// FetchHTML downloads the article page at url and returns its markup.
func (f *Fetcher) FetchHTML(ctx context.Context, url string) (string, error) {
	opts := &dhttp.RequestOptions{
		Method:  dhttp.MethodGet,
		URL:     url,
		Headers: browserHeaders,
	}

	var body []byte
	if err := f.http.SendAndParse(ctx, opts, &body); err != nil {
		return "", fmt.Errorf("fetch article: %w", err)
	}
	return string(body), nil
}
