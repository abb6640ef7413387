// internal/signals/weather/client.go
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"procurement-workers/internal/common/database"
	apperrors "procurement-workers/internal/common/errors"
	commonhttp "procurement-workers/internal/common/http"
	"procurement-workers/internal/common/logger"
	"procurement-workers/internal/common/metrics"
	"procurement-workers/internal/models"
)

const (
	SourceError        = "error"
	SourceUnconfigured = "unconfigured"

	cacheKeyPrefix = "weather-factor:"
)

// badConditions raise procurement urgency when they appear in the main condition.
var badConditions = []string{"rain", "snow", "storm", "fog"}

type Config struct {
	BaseURL  string
	APIKey   string
	Lat      float64
	Lon      float64
	CacheTTL time.Duration
}

// Client reads current conditions for a fixed location from OpenWeather.
type Client struct {
	config Config
	http   *commonhttp.Client
	cache  *database.RedisClient
	logger logger.Logger
}

func NewClient(cfg Config, httpClient *commonhttp.Client, cache *database.RedisClient, log logger.Logger) *Client {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &Client{
		config: cfg,
		http:   httpClient,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{"signal": "weather"}),
	}
}

type currentWeather struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Factor maps a condition name to the weather factor.
func Factor(condition string) float64 {
	c := strings.ToLower(condition)
	for _, bad := range badConditions {
		if strings.Contains(c, bad) {
			return 1.0
		}
	}
	return 0.0
}

// Current never fails. Upstream problems yield factor 0 with source "error".
func (c *Client) Current(ctx context.Context) models.WeatherSignal {
	if c.config.APIKey == "" {
		metrics.SignalFallbacks.WithLabelValues("weather", SourceUnconfigured).Inc()
		return models.WeatherSignal{Factor: 0, Source: SourceUnconfigured}
	}

	key := c.cacheKey()
	if c.cache != nil {
		var cached models.WeatherSignal
		if err := c.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached
		}
	}

	condition, err := c.fetchCondition(ctx)
	if err != nil {
		c.logger.Warn("Weather fetch failed", map[string]interface{}{"error": err.Error()})
		metrics.SignalFallbacks.WithLabelValues("weather", SourceError).Inc()
		return models.WeatherSignal{Factor: 0, Source: SourceError}
	}

	signal := models.WeatherSignal{Factor: Factor(condition), Source: condition}
	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, key, signal, c.config.CacheTTL); err != nil {
			c.logger.Warn("Weather cache write failed", map[string]interface{}{"error": err.Error()})
		}
	}
	return signal
}

func (c *Client) fetchCondition(ctx context.Context) (string, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(c.config.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(c.config.Lon, 'f', -1, 64))
	params.Set("appid", c.config.APIKey)
	params.Set("units", "metric")

	body, err := c.http.GetBody(ctx, c.config.BaseURL+"/data/2.5/weather?"+params.Encode())
	if err != nil {
		return "", err
	}

	var resp currentWeather
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode weather response: %w", err)
	}
	if len(resp.Weather) == 0 {
		return "", apperrors.NewWeatherFetchFailedError(errors.New("response has no conditions"))
	}
	return strings.ToLower(resp.Weather[0].Main), nil
}

func (c *Client) cacheKey() string {
	return fmt.Sprintf("%s%.4f,%.4f", cacheKeyPrefix, c.config.Lat, c.config.Lon)
}
