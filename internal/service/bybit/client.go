package bybit

import (
	"context"
	"fmt"

	"DelistRadar/internal/domain/models"
	drepo "DelistRadar/internal/domain/repository"
	dhttp "DelistRadar/pkg/http"
)

// Client implements an AnnouncementPoller backed by the Bybit v5
// announcement REST API.
type Client struct {
	apiURL    string
	pageLimit int
	http      *dhttp.Client
}

// New creates a new Bybit AnnouncementPoller.
func New(apiURL string, pageLimit int, httpClient *dhttp.Client) drepo.AnnouncementPoller {
	return &Client{
		apiURL:    apiURL,
		pageLimit: pageLimit,
		http:      httpClient,
	}
}

type apiAnnouncement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type apiResult struct {
	Total int               `json:"total"`
	List  []apiAnnouncement `json:"list"`
}

type apiResponse struct {
	RetCode int       `json:"retCode"`
	RetMsg  string    `json:"retMsg"`
	Result  apiResult `json:"result"`
}

// Fetch retrieves the latest delisting announcements. Items are
// returned in API order, newest first.
func (c *Client) Fetch(ctx context.Context) ([]*models.RawAnnouncement, error) {
	opts := &dhttp.RequestOptions{
		Method: dhttp.MethodGet,
		URL:    c.apiURL,
		QueryParams: map[string][]string{
			"locale": {"en-US"},
			"type":   {"delistings"},
			"limit":  {fmt.Sprintf("%d", c.pageLimit)},
		},
	}

	var resp apiResponse
	if err := c.http.SendAndParse(ctx, opts, &resp); err != nil {
		return nil, fmt.Errorf("bybit fetch: %w", err)
	}
	if resp.RetCode != 0 {
		return nil, fmt.Errorf("bybit api error %d: %s", resp.RetCode, resp.RetMsg)
	}

	out := make([]*models.RawAnnouncement, 0, len(resp.Result.List))
	for _, item := range resp.Result.List {
		if item.Title == "" || item.URL == "" {
			continue
		}
		out = append(out, &models.RawAnnouncement{
			Source:     models.SourceBybit,
			Identifier: item.URL,
			Title:      item.Title,
			Body:       item.Description,
			URL:        item.URL,
		})
	}
	return out, nil
}
