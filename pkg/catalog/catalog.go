// Package catalog fetches the list of available integrations that can be
// suggested for a detected framework.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-retryablehttp"
	lru "github.com/hashicorp/golang-lru/v2"
)

// Integration is one entry of the catalog
type Integration struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Frameworks  []string `json:"frameworks"`
	Version     string   `json:"version,omitempty"`
}

// Supports reports whether the integration lists the framework id
func (i Integration) Supports(frameworkID string) bool {
	for _, id := range i.Frameworks {
		if id == frameworkID {
			return true
		}
	}
	return false
}

// Fetcher returns the integrations catalog. Failures are returned as errors,
// never as an empty list.
type Fetcher interface {
	AvailableIntegrations(ctx context.Context) ([]Integration, error)
}

// Options configures a Client
type Options struct {
	URL       string
	Timeout   time.Duration
	RetryMax  int
	RetryWait time.Duration
	CacheSize int
	Logger    *log.Logger
}

// Client fetches the catalog over HTTP with retries and keeps the decoded
// responses in an LRU cache keyed by URL
type Client struct {
	url   string
	http  *retryablehttp.Client
	cache *lru.Cache[string, []Integration]
}

var _ Fetcher = (*Client)(nil)

// NewClient creates a catalog client
func NewClient(opts Options) (*Client, error) {
	if opts.URL == "" {
		return nil, fmt.Errorf("catalog URL is required")
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 16
	}

	cache, err := lru.New[string, []Integration](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog cache: %w", err)
	}

	httpClient := retryablehttp.NewClient()
	httpClient.RetryMax = opts.RetryMax
	if opts.RetryWait > 0 {
		httpClient.RetryWaitMin = opts.RetryWait
		httpClient.RetryWaitMax = 4 * opts.RetryWait
	}
	if opts.Timeout > 0 {
		httpClient.HTTPClient.Timeout = opts.Timeout
	}
	if opts.Logger != nil {
		httpClient.Logger = leveledLogger{opts.Logger}
	} else {
		httpClient.Logger = nil
	}

	return &Client{
		url:   opts.URL,
		http:  httpClient,
		cache: cache,
	}, nil
}

// AvailableIntegrations fetches the catalog, serving repeated calls from cache
func (c *Client) AvailableIntegrations(ctx context.Context) ([]Integration, error) {
	if cached, ok := c.cache.Get(c.url); ok {
		return cached, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch integrations catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("integrations catalog returned status %d", resp.StatusCode)
	}

	var integrations []Integration
	if err := json.NewDecoder(resp.Body).Decode(&integrations); err != nil {
		return nil, fmt.Errorf("failed to decode integrations catalog: %w", err)
	}
	if integrations == nil {
		integrations = []Integration{}
	}

	c.cache.Add(c.url, integrations)
	return integrations, nil
}

// ForFramework returns the integrations that list frameworkID, in catalog order
func ForFramework(integrations []Integration, frameworkID string) []string {
	slugs := []string{}
	for _, integration := range integrations {
		if integration.Supports(frameworkID) {
			slugs = append(slugs, integration.Slug)
		}
	}
	return slugs
}

type leveledLogger struct {
	logger *log.Logger
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keysAndValues...)
}
