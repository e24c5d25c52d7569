package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/relay/core/forward"
	"github.com/dmitrymomot/relay/core/logger"
	"github.com/dmitrymomot/relay/pkg/optional"
)

const maxBodySize = 1 << 20

// errBodySnippet bounds how much of an error body ends up in StatusError.
const errBodySnippet = 256

// Client calls the upstream API with the caller's cookie attached.
type Client struct {
	baseURL    string
	healthPath string
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      Cache
	observer   CacheObserver
	logger     *slog.Logger
}

// CacheObserver is notified of every cache lookup. *metrics.Metrics implements it.
type CacheObserver interface {
	CacheLookup(hit bool)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.httpClient = c
		}
	}
}

// WithCache enables response caching. It has no effect when Config.CacheTTL is zero.
func WithCache(c Cache) Option {
	return func(cl *Client) { cl.cache = c }
}

func WithCacheObserver(o CacheObserver) Option {
	return func(cl *Client) { cl.observer = o }
}

func WithLogger(log *slog.Logger) Option {
	return func(cl *Client) {
		if log != nil {
			cl.logger = log
		}
	}
}

// New creates a Client for cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		healthPath: cfg.HealthPath,
		cacheTTL:   cfg.CacheTTL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get requests path and decodes the JSON body into out. A nil out discards
// the body. Non-2xx responses return *StatusError.
func (c *Client) Get(ctx context.Context, path string, cookie optional.Option[forward.CookieConfig], out any) error {
	log := c.logger.With(logger.Component("upstream"), logger.Path(path), logger.CookiePresent(cookie.IsSome()))

	caching := c.cache != nil && c.cacheTTL > 0
	key := CacheKey(path, cookie)

	if caching {
		body, ok, err := c.cache.Get(ctx, key)
		if err != nil {
			log.WarnContext(ctx, "upstream cache read failed", logger.Error(err))
		}
		if c.observer != nil {
			c.observer.CacheLookup(ok)
		}
		if ok {
			log.DebugContext(ctx, "upstream response", logger.CacheHit(true))
			return decode(body, out)
		}
	}

	start := time.Now()
	body, err := c.do(ctx, path, cookie)
	if err != nil {
		log.WarnContext(ctx, "upstream request failed", logger.Error(err), logger.Elapsed(start))
		return err
	}
	log.DebugContext(ctx, "upstream response", logger.CacheHit(false), logger.Elapsed(start))

	if caching {
		if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
			log.WarnContext(ctx, "upstream cache write failed", logger.Error(err))
		}
	}

	return decode(body, out)
}

// Ping checks the upstream health endpoint without forwarding any cookie.
func (c *Client) Ping(ctx context.Context) error {
	if c.healthPath == "" {
		return nil
	}
	if _, err := c.do(ctx, c.healthPath, optional.None[forward.CookieConfig]()); err != nil {
		return errors.Join(ErrUnhealthy, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, path string, cookie optional.Option[forward.CookieConfig]) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	forward.Apply(req, cookie)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRequestFailed, err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		snippet := strings.TrimSpace(string(body))
		if len(snippet) > errBodySnippet {
			snippet = snippet[:errBodySnippet]
		}
		return nil, &StatusError{Status: res.StatusCode, Body: snippet}
	}
	if len(body) > maxBodySize {
		return nil, fmt.Errorf("%w: response too large (over %d bytes)", ErrRequestFailed, maxBodySize)
	}

	return body, nil
}

func decode(body []byte, out any) error {
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodeResponse, err)
	}
	return nil
}
