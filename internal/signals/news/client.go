// internal/signals/news/client.go
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	apperrors "procurement-workers/internal/common/errors"
	commonhttp "procurement-workers/internal/common/http"
	"procurement-workers/internal/models"
)

// Article is re-exported for callers that only import this package.
type Article = models.Article

// ErrNoAPIKey is returned by FetchArticles when the client has no key configured.
var ErrNoAPIKey = errors.New("news api key not configured")

type ClientConfig struct {
	BaseURL  string
	APIKey   string
	PageSize int
}

// Client queries the NewsAPI /v2/everything endpoint.
type Client struct {
	config ClientConfig
	http   *commonhttp.Client
}

func NewClient(cfg ClientConfig, httpClient *commonhttp.Client) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 20
	}
	return &Client{config: cfg, http: httpClient}
}

type everythingResponse struct {
	Status   string    `json:"status"`
	Articles []Article `json:"articles"`
	Message  string    `json:"message"`
}

// FetchArticles returns the most relevant English articles mentioning query.
func (c *Client) FetchArticles(ctx context.Context, query string) ([]Article, error) {
	if c.config.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("apiKey", c.config.APIKey)
	params.Set("pageSize", strconv.Itoa(c.config.PageSize))
	params.Set("sortBy", "relevancy")
	params.Set("language", "en")

	body, err := c.http.GetBody(ctx, c.config.BaseURL+"/v2/everything?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp everythingResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode news response: %w", err)
	}
	if resp.Status == "error" {
		return nil, apperrors.NewNewsFetchFailedError(errors.New(resp.Message))
	}
	return resp.Articles, nil
}
