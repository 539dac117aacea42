package statsfeed

import (
	"context"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/resilience"
	"github.com/riskibarqy/football-grid/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	defaultTimeout     = 15 * time.Second
	maxResponseBytes   = 1 << 20
	defaultUserAgent   = "football-grid-stats-refresh/1.0"
	playerStatsPathFmt = "/players/%d/stats"
)

var errStatsFeedTransient = crerr.New("stats feed transient failure")

type ClientConfig struct {
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
	// HTTPClient overrides the fasthttp client, mainly for tests.
	HTTPClient *fasthttp.Client
}

// Client reads per-player career totals from the upstream stats feed.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	token      string
	timeout    time.Duration
	maxRetries int
	logger     *logging.Logger
	breaker    *resilience.CircuitBreaker
}

type statsResponse struct {
	Appearances *int   `json:"appearances"`
	Goals       *int   `json:"goals"`
	Assists     *int   `json:"assists"`
	Retired     bool   `json:"retired"`
	Status      string `json:"status"`
}

func NewClient(cfg ClientConfig) (*Client, error) {
	baseURL, err := validateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid stats feed base url")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			Name:                defaultUserAgent,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxResponseBodySize: maxResponseBytes,
		}
	}

	var breaker *resilience.CircuitBreaker
	if cfg.CircuitBreaker.Enabled {
		breaker = resilience.NewCircuitBreaker("stats_feed", cfg.CircuitBreaker)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		token:      strings.TrimSpace(cfg.Token),
		timeout:    timeout,
		maxRetries: max(cfg.MaxRetries, 0),
		logger:     logger,
		breaker:    breaker,
	}, nil
}

// Breaker exposes the circuit breaker so its state can be exported. Nil when
// disabled.
func (c *Client) Breaker() *resilience.CircuitBreaker {
	return c.breaker
}

// FetchPlayerStats looks the player up by its era identifier, which is the
// upstream provider's id.
func (c *Client) FetchPlayerStats(ctx context.Context, p player.Player) (usecase.PlayerStatsSnapshot, error) {
	externalID := p.EraID()
	if externalID <= 0 {
		return usecase.PlayerStatsSnapshot{}, crerr.Newf("player %d has no upstream id", p.ID)
	}

	fullURL := c.buildURL(externalID)
	var (
		raw          []byte
		permanentErr error
	)
	// Only transient failures count against the breaker; a 404 for one player
	// says nothing about the feed's health.
	call := func(ctx context.Context) error {
		body, err := c.executeRequest(ctx, fullURL)
		if err != nil {
			if !stderrors.Is(err, errStatsFeedTransient) && ctx.Err() == nil {
				permanentErr = err
				return nil
			}
			return err
		}
		raw = body
		return nil
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, call)
		if stderrors.Is(err, resilience.ErrCircuitOpen) {
			c.logger.WarnContext(ctx, "stats feed circuit breaker rejected request", "state", string(c.breaker.State()))
			return usecase.PlayerStatsSnapshot{}, fmt.Errorf("%w: stats feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	} else {
		err = call(ctx)
	}
	if err != nil {
		return usecase.PlayerStatsSnapshot{}, err
	}
	if permanentErr != nil {
		return usecase.PlayerStatsSnapshot{}, permanentErr
	}

	return decodeStats(raw)
}

func decodeStats(raw []byte) (usecase.PlayerStatsSnapshot, error) {
	var payload statsResponse
	if err := sonic.Unmarshal(raw, &payload); err != nil {
		return usecase.PlayerStatsSnapshot{}, crerr.Wrap(err, "decode stats feed payload")
	}
	if payload.Appearances == nil || payload.Goals == nil || payload.Assists == nil {
		return usecase.PlayerStatsSnapshot{}, crerr.New("stats feed payload is missing totals")
	}

	retired := payload.Retired || strings.EqualFold(strings.TrimSpace(payload.Status), "retired")
	return usecase.PlayerStatsSnapshot{
		Appearances: max(*payload.Appearances, 0),
		Goals:       max(*payload.Goals, 0),
		Assists:     max(*payload.Assists, 0),
		Retired:     retired,
	}, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		body, status, err := c.do(ctx, fullURL)
		switch {
		case err != nil:
			lastErr = fmt.Errorf("%w: send request: %v", errStatsFeedTransient, err)
		case status >= 200 && status < 300:
			return body, nil
		case isRetryableStatus(status):
			lastErr = fmt.Errorf("%w: feed status=%d body=%s", errStatsFeedTransient, status, abbreviateBody(body))
		default:
			return nil, crerr.Newf("feed status=%d body=%s", status, abbreviateBody(body))
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = crerr.New("stats feed request failed")
	}
	c.logger.WarnContext(ctx, "stats feed request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, fullURL string) ([]byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if c.token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, "Bearer "+c.token)
	}

	timeout := c.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := c.httpClient.DoTimeout(req, resp, timeout); err != nil {
		return nil, 0, err
	}

	body := append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), nil
}

func (c *Client) buildURL(externalID int64) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(c.baseURL)
	_, _ = buf.WriteString(fmt.Sprintf(playerStatsPathFmt, externalID))
	return buf.String()
}

func validateBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}

	uri := fasthttp.AcquireURI()
	defer fasthttp.ReleaseURI(uri)
	if err := uri.Parse(nil, []byte(candidate)); err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	scheme := string(uri.Scheme())
	if scheme != "http" && scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, scheme)
	}
	if len(uri.Host()) == 0 {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= limit {
		return text
	}
	return text[:limit] + "...(" + strconv.Itoa(len(text)) + " bytes)"
}
