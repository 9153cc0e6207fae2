package nager

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/planner-service/internal/config"
)

// Holiday is one entry of the public holiday feed. Only the fields the
// importer needs are decoded.
type Holiday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// Cache is the slice of the Redis wrapper the client needs. A failed read
// reports a miss, so a broken cache never blocks an import.
type Cache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// Client fetches public holidays from the Nager.Date feed. Successful
// payloads are cached; cache failures are treated as misses.
type Client struct {
	baseURL  string
	http     *http.Client
	cache    Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewClient builds a feed client. cache may be nil.
func NewClient(cfg config.NagerConfig, cache Cache, logger *zap.Logger) *Client {
	return &Client{
		baseURL:  cfg.BaseURL,
		http:     &http.Client{Timeout: cfg.Timeout()},
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

// PublicHolidays returns the feed entries for a country and year. Any
// transport failure, timeout or non-200 response is an upstream failure;
// an empty feed is a valid result.
func (c *Client) PublicHolidays(ctx context.Context, country string, year int) ([]Holiday, error) {
	cacheKey := fmt.Sprintf("nager:holidays:%s:%d", country, year)

	if c.cache != nil {
		if body, ok := c.cache.GetBytes(ctx, cacheKey); ok {
			var cached []Holiday
			if err := json.Unmarshal(body, &cached); err == nil {
				c.logger.Debug("holiday feed served from cache", zap.String("key", cacheKey))
				return cached, nil
			}
			c.logger.Warn("discarding undecodable cached feed payload", zap.String("key", cacheKey))
		}
	}

	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", c.baseURL, year, country)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build feed request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch holiday feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday feed responded with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read holiday feed: %w", err)
	}

	var holidays []Holiday
	if err := json.Unmarshal(body, &holidays); err != nil {
		return nil, fmt.Errorf("decode holiday feed: %w", err)
	}

	if c.cache != nil {
		c.cache.SetBytes(ctx, cacheKey, body, c.cacheTTL)
	}
	return holidays, nil
}
