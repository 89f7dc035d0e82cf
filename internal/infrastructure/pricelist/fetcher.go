package pricelist

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// FetcherConfig holds settings for retrieving price-list documents
type FetcherConfig struct {
	Timeout     time.Duration
	Retries     int
	MaxBodySize int64
}

// Fetcher downloads price-list documents from supplier URLs
type Fetcher struct {
	client      *resty.Client
	maxBodySize int64
	logger      *zap.Logger
}

// NewFetcher creates a new price-list fetcher
func NewFetcher(cfg FetcherConfig, logger *zap.Logger) *Fetcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxBodySize <= 0 {
		cfg.MaxBodySize = 20 << 20
	}

	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Fetcher{
		client:      client,
		maxBodySize: cfg.MaxBodySize,
		logger:      logger,
	}
}

// Fetch downloads the document at the given URL. Only http and https
// sources are accepted.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: invalid source url", ErrFetchFailed)
	}

	resp, err := f.client.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		f.logger.Warn("price list fetch failed",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		f.logger.Warn("price list source returned non-success status",
			zap.String("url", rawURL),
			zap.Int("status", resp.StatusCode()),
		)
		return nil, fmt.Errorf("%w: source returned status %d", ErrFetchFailed, resp.StatusCode())
	}

	body := resp.Body()
	if int64(len(body)) > f.maxBodySize {
		return nil, fmt.Errorf("%w: document exceeds %d bytes", ErrFetchFailed, f.maxBodySize)
	}

	return body, nil
}
