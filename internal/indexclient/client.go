// Package indexclient implements cached, rate-limited HTTP lookups
// against a PyPI-shaped JSON metadata endpoint, built on net/http.Client,
// golang.org/x/time/rate, and the shared internal/cache.DiskCache.
package indexclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pypm/internal/observability"
	"pypm/internal/validate"
)

const maxVariantExtras = 64

// metadata is the slimmed-down PyPI JSON record kept in memory for the
// life of the process, mirroring _slim_metadata's {info: {name, version,
// requires_dist}}. Only the existence verdict is persisted to disk.
type metadata struct {
	Info struct {
		Name         string   `json:"name"`
		Version      string   `json:"version"`
		RequiresDist []string `json:"requires_dist"`
	} `json:"info"`
}

// Options configures a Client.
type Options struct {
	BaseURL          string
	UserAgent        string
	RequestTimeout   time.Duration
	MaxRetries       int
	MaxResponseBytes int64
	MaxRedirects     int
	RateLimitPerSec  float64
	RateLimitBurst   int
	ExistingTTL      time.Duration
	AbsentTTL        time.Duration
	CachePath        string
}

// Client is the Index Client: exists/metadata/latest_version/extras over
// HTTP, backed by an in-memory + persistent-disk cache and a token-bucket
// rate limiter.
type Client struct {
	baseURL          string
	userAgent        string
	maxResponseBytes int64
	maxRetries       int
	existingTTL      time.Duration
	absentTTL        time.Duration

	http    *http.Client
	limiter *limiter
	cache   *cacheStore

	mu     sync.RWMutex
	memory map[string]*metadata
}

// New constructs a Client and loads its persistent cache from disk.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://pypi.org"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "pypm/0.1"
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = 10 * time.Second
	}
	if opts.MaxResponseBytes <= 0 {
		opts.MaxResponseBytes = 5 * 1024 * 1024
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = 3
	}
	if opts.ExistingTTL <= 0 {
		opts.ExistingTTL = 7 * 24 * time.Hour
	}
	if opts.AbsentTTL <= 0 {
		opts.AbsentTTL = time.Hour
	}

	transport := &http.Transport{
		MaxIdleConns:        128,
		MaxIdleConnsPerHost: 128,
	}
	httpClient := &http.Client{
		Transport: transport,
		Timeout:   opts.RequestTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= opts.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	store := newCacheStore(opts.CachePath)
	store.Load()

	c := &Client{
		baseURL:          strings.TrimRight(opts.BaseURL, "/"),
		userAgent:        opts.UserAgent,
		maxResponseBytes: opts.MaxResponseBytes,
		maxRetries:       opts.MaxRetries,
		existingTTL:      opts.ExistingTTL,
		absentTTL:        opts.AbsentTTL,
		http:             httpClient,
		limiter:          newLimiter(opts.RateLimitPerSec, opts.RateLimitBurst),
		cache:            store,
		memory:           make(map[string]*metadata),
	}
	return c
}

// Close persists the disk cache atomically, once, at process exit.
func (c *Client) Close() error {
	return c.cache.Save()
}

// Discard drops pending cache writes without persisting them, used on
// cooperative cancellation.
func (c *Client) Discard() {
	c.cache.Discard()
}

// Exists reports whether name is a known PyPI distribution. A cached
// existence verdict (positive or negative) short-circuits the network,
// since existence alone is all the disk cache persists.
func (c *Client) Exists(ctx context.Context, name string) (bool, error) {
	valid, reason := validate.URLSafe(name)
	if !valid {
		return false, fmt.Errorf("unsafe package name %q: %s", name, reason)
	}
	clean := strings.ToLower(name)

	c.mu.RLock()
	md, known := c.memory[clean]
	c.mu.RUnlock()
	if known {
		return md != nil, nil
	}

	if entry, ok := c.cache.lookup(clean, time.Now().Unix()); ok {
		c.rememberCachedVerdict(clean, entry.Exists)
		return entry.Exists, nil
	}

	md, err := c.fetch(ctx, name)
	if err != nil {
		return false, err
	}
	return md != nil, nil
}

func (c *Client) rememberCachedVerdict(name string, exists bool) {
	if !exists {
		c.rememberAbsent(name)
	}
}

// LatestVersion returns name's latest published version, if known.
func (c *Client) LatestVersion(ctx context.Context, name string) (string, bool, error) {
	md, err := c.fetch(ctx, name)
	if err != nil {
		return "", false, err
	}
	if md == nil {
		return "", false, nil
	}
	return md.Info.Version, true, nil
}

// Extras returns the distinct `extra == "..."` names declared in name's
// requires_dist metadata, per
// _examples/original_source/src/pypm/pypi.py's get_package_extras.
func (c *Client) Extras(ctx context.Context, name string) ([]string, error) {
	md, err := c.fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if md == nil {
		return nil, nil
	}

	seen := make(map[string]bool)
	var extras []string
	for _, dist := range md.Info.RequiresDist {
		idx := strings.Index(dist, "extra ==")
		if idx < 0 {
			continue
		}
		part := strings.TrimSpace(dist[idx+len("extra =="):])
		if sp := strings.IndexByte(part, ' '); sp >= 0 {
			part = part[:sp]
		}
		part = strings.Trim(part, `'"`)
		if part == "" || seen[part] {
			continue
		}
		seen[part] = true
		extras = append(extras, part)
		if len(extras) >= maxVariantExtras {
			break
		}
	}
	return extras, nil
}

// fetch returns cached or freshly-retrieved metadata for name, or nil if
// the name is confirmed absent. name must already have passed URL-safe
// validation; fetch re-validates defensively regardless of caller.
func (c *Client) fetch(ctx context.Context, name string) (*metadata, error) {
	valid, reason := validate.URLSafe(name)
	if !valid {
		return nil, fmt.Errorf("unsafe package name %q: %s", name, reason)
	}
	clean := strings.ToLower(name)

	c.mu.RLock()
	if md, ok := c.memory[clean]; ok {
		c.mu.RUnlock()
		return md, nil
	}
	c.mu.RUnlock()

	now := time.Now().Unix()
	if entry, ok := c.cache.lookup(clean, now); ok && !entry.Exists {
		c.rememberAbsent(clean)
		return nil, nil
	}

	md, err := c.fetchRemote(ctx, clean)
	if err != nil {
		return nil, err
	}

	if md == nil {
		c.cache.record(clean, false, now, c.existingTTL, c.absentTTL)
		c.rememberAbsent(clean)
		return nil, nil
	}

	c.cache.record(clean, true, now, c.existingTTL, c.absentTTL)
	c.mu.Lock()
	c.memory[clean] = md
	c.mu.Unlock()
	return md, nil
}

func (c *Client) rememberAbsent(name string) {
	c.mu.Lock()
	c.memory[name] = nil
	c.mu.Unlock()
}

func (c *Client) fetchRemote(ctx context.Context, name string) (*metadata, error) {
	url := fmt.Sprintf("%s/pypi/%s/json", c.baseURL, name)

	var lastErr error
	attempts := c.maxRetries + 1
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 0; attempt < attempts; attempt++ {
		if err := c.limiter.wait(ctx); err != nil {
			return nil, err
		}

		requestStart := time.Now()
		md, status, err := c.doRequest(ctx, url)
		observability.IndexLookupDuration.Observe(time.Since(requestStart).Seconds())

		if err == nil && status == http.StatusNotFound {
			observability.IndexLookupsTotal.WithLabelValues("absent").Inc()
			return nil, nil
		}
		if err == nil && status == http.StatusOK {
			observability.IndexLookupsTotal.WithLabelValues("found").Inc()
			return md, nil
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("unexpected status %d from index", status)
		}

		if attempt+1 < attempts {
			backoff := time.Duration(attempt+1) * 250 * time.Millisecond
			select {
			case <-ctx.Done():
				observability.IndexLookupsTotal.WithLabelValues("error").Inc()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	observability.IndexLookupsTotal.WithLabelValues("error").Inc()
	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, url string) (*metadata, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	limited := io.LimitReader(resp.Body, c.maxResponseBytes+1)
	body, err := io.ReadAll(limited)
	if err != nil {
		return nil, 0, err
	}
	if int64(len(body)) > c.maxResponseBytes {
		return nil, resp.StatusCode, nil
	}

	var full struct {
		Info struct {
			Name         string   `json:"name"`
			Version      string   `json:"version"`
			RequiresDist []string `json:"requires_dist"`
		} `json:"info"`
	}
	if err := json.Unmarshal(body, &full); err != nil {
		return nil, resp.StatusCode, nil
	}
	if full.Info.Name == "" {
		return nil, resp.StatusCode, nil
	}

	md := &metadata{}
	md.Info.Name = full.Info.Name
	md.Info.Version = full.Info.Version
	md.Info.RequiresDist = full.Info.RequiresDist
	return md, resp.StatusCode, nil
}
