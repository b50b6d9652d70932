// Rate-limited HTTP client shared by every Steam-facing resolver.
package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/deeCaTofficial/SteamBadgeHelper/internal/shared"
	"golang.org/x/time/rate"
)

const (
	apiBase       = "https://api.steampowered.com"
	communityBase = "https://steamcommunity.com"
	storeAPIBase  = "https://store.steampowered.com/api"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	defaultRetries      = 3
	defaultCooldown     = 600 * time.Second
	defaultMaxCooldowns = 3
	defaultBackoffStep  = 3 * time.Second
	defaultTimeout      = 15 * time.Second
)

// NewLimiter creates a [rate.Limiter] enforcing a minimum interval between
// requests. Burst 1 means the first request passes immediately and every
// subsequent one waits out the interval.
func NewLimiter(minInterval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(minInterval), 1)
}

// Response is the outcome of a completed request.
type Response struct {
	StatusCode int
	Body       []byte
	FinalURL   string // URL after redirects; gamecards pages redirect away when absent
}

// Client issues GET requests against Steam with a shared minimum
// inter-request interval, linear-backoff retries for transient failures,
// and a long capped cooldown on 429 responses.
//
// The limiter is injected so concurrent components share one request
// budget. The client itself performs no internal locking beyond the
// limiter's; the engine runs a single worker per process.
type Client struct {
	http         *http.Client
	limiter      *rate.Limiter
	retries      int
	cooldown     time.Duration
	maxCooldowns int
	backoffStep  time.Duration
	timeout      time.Duration
	sleep        func(ctx context.Context, d time.Duration) error
	logger       *log.Logger
}

// ClientOption configures a [Client].
type ClientOption func(*Client)

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithRetries sets the retry budget for transient failures.
func WithRetries(n int) ClientOption {
	return func(c *Client) { c.retries = n }
}

// WithCooldown sets the pause taken after a 429 response.
func WithCooldown(d time.Duration) ClientOption {
	return func(c *Client) { c.cooldown = d }
}

// WithMaxCooldowns caps how many 429 cooldowns a single request may absorb
// before failing with [shared.ErrTooManyRequests].
func WithMaxCooldowns(n int) ClientOption {
	return func(c *Client) { c.maxCooldowns = n }
}

// WithTimeout sets the per-request timeout used by the default HTTP
// client. Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.timeout = d }
}

// WithSleepFunc overrides the sleep function for testing.
func WithSleepFunc(f func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) { c.sleep = f }
}

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) ClientOption {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a Client around the given shared limiter.
func NewClient(limiter *rate.Limiter, opts ...ClientOption) *Client {
	c := &Client{
		limiter:      limiter,
		retries:      defaultRetries,
		cooldown:     defaultCooldown,
		maxCooldowns: defaultMaxCooldowns,
		backoffStep:  defaultBackoffStep,
		timeout:      defaultTimeout,
		sleep:        sleepContext,
		logger:       shared.NewLogger(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout, Jar: communityJar()}
	}
	return c
}

// Get performs a rate-limited GET with retries.
//
// The returned error distinguishes [shared.ErrRequestFailed] (the request
// never completed) from [shared.ErrBadStatus] (it completed with a non-2xx
// status). A 429 triggers the long cooldown and loops back without
// consuming a retry slot, up to the cooldown cap.
func (c *Client) Get(ctx context.Context, rawURL string, header http.Header) (*Response, error) {
	return c.get(ctx, rawURL, header, c.retries, c.maxCooldowns)
}

// GetOnce performs a single rate-limited attempt with no retries and no
// cooldowns: a 429 fails immediately instead of sleeping. Used for
// best-effort lookups like vanity resolution.
func (c *Client) GetOnce(ctx context.Context, rawURL string) (*Response, error) {
	return c.get(ctx, rawURL, nil, 1, 0)
}

// Pause sleeps for d, honoring cancellation. Exposed so pagination delays
// go through the same injectable sleep as backoff.
func (c *Client) Pause(ctx context.Context, d time.Duration) error {
	return c.sleep(ctx, d)
}

func (c *Client) get(ctx context.Context, rawURL string, header http.Header, retries, maxCooldowns int) (*Response, error) {
	var lastErr error
	cooldowns := 0

	for attempt := 0; attempt < retries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRequestFailed, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", shared.ErrRequestFailed, err)
		}
		req.Header.Set("User-Agent", userAgent)
		for k, vs := range header {
			for _, v := range vs {
				req.Header.Set(k, v)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrRequestFailed, ctx.Err())
			}
			lastErr = fmt.Errorf("%w: %v", shared.ErrRequestFailed, err)
			c.logger.Warn("request error", "url", rawURL, "attempt", attempt+1, "error", err)
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				if cooldowns >= maxCooldowns {
					return nil, fmt.Errorf("%w: gave up after %d cooldowns", shared.ErrTooManyRequests, cooldowns)
				}
				cooldowns++
				c.logger.Warn("received 429, cooling down", "url", rawURL, "pause", c.cooldown)
				if err := c.sleep(ctx, c.cooldown); err != nil {
					return nil, fmt.Errorf("%w: %v", shared.ErrRequestFailed, err)
				}
				// A 429 does not consume a retry slot
				attempt--
				continue
			case readErr != nil:
				lastErr = fmt.Errorf("%w: %v", shared.ErrRequestFailed, readErr)
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				lastErr = fmt.Errorf("%w: %d", shared.ErrBadStatus, resp.StatusCode)
				c.logger.Warn("bad status", "url", rawURL, "attempt", attempt+1, "status", resp.StatusCode)
			default:
				finalURL := rawURL
				if resp.Request != nil && resp.Request.URL != nil {
					finalURL = resp.Request.URL.String()
				}
				return &Response{StatusCode: resp.StatusCode, Body: body, FinalURL: finalURL}, nil
			}
		}

		if attempt < retries-1 {
			if err := c.sleep(ctx, time.Duration(attempt+1)*c.backoffStep); err != nil {
				return nil, fmt.Errorf("%w: %v", shared.ErrRequestFailed, err)
			}
		}
	}

	return nil, lastErr
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// communityJar returns a cookie jar preloaded with the language and
// age-gate cookies the community and store hosts expect.
func communityJar() http.CookieJar {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil
	}

	communityURL, _ := url.Parse(communityBase)
	storeURL, _ := url.Parse("https://store.steampowered.com")

	jar.SetCookies(communityURL, []*http.Cookie{
		{Name: "steamLogin_lang", Value: "english"},
		{Name: "birthtime", Value: "631152001"},
	})
	jar.SetCookies(storeURL, []*http.Cookie{
		{Name: "birthtime", Value: "631152001"},
		{Name: "wants_mature_content", Value: "1"},
	})

	return jar
}
