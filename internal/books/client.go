// Package books is a client for the external catalogue search API.
// Results are shown to the user for ad-hoc search only and are never
// persisted.
package books

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bookhaven/internal/config"
	"bookhaven/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// maxResults caps how many volumes one search requests upstream.
const maxResults = 20

// Searcher searches the external catalogue.
type Searcher interface {
	Search(ctx context.Context, query string) ([]model.SearchResult, error)
}

// Client is an HTTP client for the Google Books volumes API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	enabled    bool
	logger     zerolog.Logger
}

// NewClient creates a catalogue search client. A disabled client answers
// every search with no results.
func NewClient(cfg config.BooksConfig, logger zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		enabled:    cfg.Enabled,
		logger:     logger.With().Str("client", "books").Logger(),
	}
}

// volumesResponse mirrors the slice of the upstream payload we read.
type volumesResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			Description         string   `json:"description"`
			Publisher           string   `json:"publisher"`
			PublishedDate       string   `json:"publishedDate"`
			IndustryIdentifiers []struct {
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
		SaleInfo struct {
			RetailPrice struct {
				Amount float64 `json:"amount"`
			} `json:"retailPrice"`
		} `json:"saleInfo"`
	} `json:"items"`
}

// Search queries the volumes API and normalises the hits for display.
func (c *Client) Search(ctx context.Context, query string) ([]model.SearchResult, error) {
	if !c.enabled || strings.TrimSpace(query) == "" {
		return []model.SearchResult{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("key", c.apiKey)
	params.Set("maxResults", fmt.Sprintf("%d", maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("query", query).Msg("catalogue search request failed")
		return nil, fmt.Errorf("catalogue search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error().Int("status", resp.StatusCode).Str("query", query).
			Msg("catalogue search returned non-OK status")
		return nil, fmt.Errorf("catalogue search returned status %d", resp.StatusCode)
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	results := make([]model.SearchResult, 0, len(payload.Items))
	for _, item := range payload.Items {
		v := item.VolumeInfo

		result := model.SearchResult{
			Title:         v.Title,
			Author:        strings.Join(v.Authors, ", "),
			Description:   v.Description,
			Price:         decimal.NewFromFloat(item.SaleInfo.RetailPrice.Amount).Round(2),
			Image:         v.ImageLinks.Thumbnail,
			Publisher:     v.Publisher,
			PublishedDate: v.PublishedDate,
		}
		if result.Title == "" {
			result.Title = "Unknown Title"
		}
		if result.Author == "" {
			result.Author = "Unknown Author"
		}
		if len(v.IndustryIdentifiers) > 0 {
			result.ISBN = v.IndustryIdentifiers[0].Identifier
		}

		results = append(results, result)
	}

	c.logger.Debug().Str("query", query).Int("count", len(results)).Msg("catalogue search completed")

	return results, nil
}
