package fplapi

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/fplbot/internal/domain/fpl"
	"github.com/riskibarqy/fplbot/internal/observability"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
	"github.com/riskibarqy/fplbot/internal/platform/resilience"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

const (
	defaultBaseURL      = "https://fantasy.premierleague.com/api"
	defaultTimeout      = 10 * time.Second
	defaultUserAgent    = "fplbot"
	maxResponseBodySize = 6 << 20
	upstreamName        = "fpl"
)

const (
	endpointBootstrap = "bootstrap-static"
	endpointStandings = "leagues-classic"
	endpointEntry     = "entry"
)

var errFPLTransient = crerr.New("fpl transient failure")

var tracer = otel.Tracer("fplbot/external/fplapi")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	Timeout        time.Duration
	Logger         *logging.Logger
	Metrics        *observability.Metrics
	CircuitBreaker resilience.BreakerConfig
}

// Client reads the public FPL API. It holds no response state: concurrent
// identical GETs share one round trip and nothing is kept afterwards.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	timeout    time.Duration
	logger     *logging.Logger
	metrics    *observability.Metrics
	breaker    *resilience.CircuitBreaker
	flight     singleflight.Group
}

func NewClient(cfg ClientConfig) *Client {
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
			MaxResponseBodySize: maxResponseBodySize,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	breakerCfg := cfg.CircuitBreaker
	breakerCfg.Name = upstreamName
	breakerCfg.OnStateChange = func(name string, from, to resilience.CircuitState) {
		logger.Warn("fpl circuit state changed", "upstream", name, "from", from, "to", to)
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		timeout:    timeout,
		logger:     logger,
		metrics:    cfg.Metrics,
		breaker:    resilience.NewCircuitBreaker(breakerCfg),
	}
}

func (c *Client) FetchOverallStats(ctx context.Context) (fpl.OverallStats, error) {
	var out fpl.OverallStats
	if err := c.doJSON(ctx, endpointBootstrap, "/bootstrap-static/", &out); err != nil {
		return fpl.OverallStats{}, crerr.Wrap(err, "fetch overall stats")
	}
	return out, nil
}

func (c *Client) FetchLeagueStandings(ctx context.Context, leagueID int64) (fpl.LeagueData, error) {
	if leagueID <= 0 {
		return fpl.LeagueData{}, crerr.Newf("league id must be greater than zero, got %d", leagueID)
	}

	var out fpl.LeagueData
	path := fmt.Sprintf("/leagues-classic/%d/standings/", leagueID)
	if err := c.doJSON(ctx, endpointStandings, path, &out); err != nil {
		return fpl.LeagueData{}, crerr.Wrapf(err, "fetch league standings league_id=%d", leagueID)
	}
	return out, nil
}

func (c *Client) FetchEntry(ctx context.Context, entryID int64) (fpl.EntryData, error) {
	if entryID <= 0 {
		return fpl.EntryData{}, crerr.Newf("entry id must be greater than zero, got %d", entryID)
	}

	var out fpl.EntryData
	path := fmt.Sprintf("/entry/%d/", entryID)
	if err := c.doJSON(ctx, endpointEntry, path, &out); err != nil {
		return fpl.EntryData{}, crerr.Wrapf(err, "fetch entry entry_id=%d", entryID)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, endpoint, path string, target any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fullURL := c.baseURL + path
	ctx, span := tracer.Start(ctx, "fplapi.Client."+endpoint,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", fasthttp.MethodGet),
			attribute.String("url.full", fullURL),
		),
	)
	defer span.End()

	startedAt := time.Now()
	out, err, shared := c.flight.Do(fullURL, func() (any, error) {
		var raw []byte
		execErr := c.breaker.Execute(func() error {
			var reqErr error
			raw, reqErr = c.executeRequest(ctx, fullURL)
			return reqErr
		}, isCircuitFailure)
		return raw, execErr
	})
	c.metrics.ObserveUpstream(upstreamName, endpoint, startedAt, err)
	span.SetAttributes(attribute.Bool("fpl.shared", shared))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return crerr.Newf("unexpected response payload type %T", out)
	}
	if err := sonic.Unmarshal(raw, target); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode")
		return crerr.Wrapf(err, "decode %s payload", endpoint)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")

	// fasthttp has no context support; honour the tighter of ctx and client timeout.
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "error", err)
		return nil, crerr.Mark(crerr.Wrapf(err, "send request %s", fullURL), errFPLTransient)
	}

	status := resp.StatusCode()
	body := resp.Body()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		err := crerr.Newf("fpl api status=%d body=%s", status, abbreviateBody(body))
		if isTransientStatus(status) {
			err = crerr.Mark(err, errFPLTransient)
		}
		c.logger.WarnContext(ctx, "fpl request failed", "url", fullURL, "status", status)
		return nil, err
	}

	// resp is returned to the pool on exit.
	raw := make([]byte, len(body))
	copy(raw, body)
	return raw, nil
}

func isTransientStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError
}

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errFPLTransient)
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	text := strings.TrimSpace(string(raw))
	if len(text) <= maxLen {
		return text
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
