package slack

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fplbot/internal/domain/chat"
	"github.com/riskibarqy/fplbot/internal/observability"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultBaseURL    = "https://slack.com/api"
	defaultTimeout    = 10 * time.Second
	postMessageMethod = "chat.postMessage"
	contentTypeJSON   = "application/json;charset=UTF-8"
	upstreamName      = "slack"
	maxLoggedBody     = 2048
)

type NotifierConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	Timeout    time.Duration
	Logger     *logging.Logger
	Metrics    *observability.Metrics
}

// Notifier posts Block Kit messages through the Slack Web API.
type Notifier struct {
	client   *http.Client
	baseURL  string
	token    string
	logger   *logging.Logger
	metrics  *observability.Metrics
	validate *validator.Validate
}

type postMessageResponse struct {
	OK      bool   `json:"ok"`
	Error   string `json:"error"`
	Warning string `json:"warning"`
	Channel string `json:"channel"`
	TS      string `json:"ts"`
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	return &Notifier{
		client:   client,
		baseURL:  baseURL,
		token:    strings.TrimSpace(cfg.Token),
		logger:   logger,
		metrics:  cfg.Metrics,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// PostMessage sends msg to its channel. Slack answers 200 with ok=false for
// most API errors; those are returned as errors too.
func (n *Notifier) PostMessage(ctx context.Context, msg chat.Message) (err error) {
	startedAt := time.Now()
	defer func() {
		n.metrics.ObserveUpstream(upstreamName, postMessageMethod, startedAt, err)
	}()

	if err := n.validate.StructCtx(ctx, msg); err != nil {
		return crerr.Wrap(err, "invalid slack message")
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(msg); err != nil {
		return crerr.Wrap(err, "marshal slack message")
	}

	postURL := n.baseURL + "/" + postMessageMethod
	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(
			attribute.String("slack.method", postMessageMethod),
			attribute.String("slack.channel", msg.Channel),
			attribute.Int("slack.blocks", len(msg.Blocks)),
			attribute.Int("slack.request_bytes", buf.Len()),
		)
	}
	n.logger.DebugContext(ctx, "slack post request",
		"channel", msg.Channel,
		"blocks", len(msg.Blocks),
		"body", truncateForLog(buf.String(), maxLoggedBody),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL, bytes.NewReader(buf.B))
	if err != nil {
		return crerr.Wrap(err, "create slack request")
	}
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Content-Type", contentTypeJSON)

	resp, err := n.client.Do(req)
	if err != nil {
		return crerr.Wrapf(err, "post %s channel=%s", postMessageMethod, msg.Channel)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return crerr.Wrap(err, "read slack response")
	}

	if resp.StatusCode/100 != 2 {
		return crerr.Newf("%s status=%d body=%s", postMessageMethod, resp.StatusCode, truncateForLog(strings.TrimSpace(string(raw)), 512))
	}

	var out postMessageResponse
	if err := sonic.Unmarshal(raw, &out); err != nil {
		return crerr.Wrap(err, "decode slack response")
	}
	if !out.OK {
		return crerr.Newf("%s rejected channel=%s error=%s", postMessageMethod, msg.Channel, out.Error)
	}
	if out.Warning != "" {
		n.logger.WarnContext(ctx, "slack post warning", "channel", msg.Channel, "warning", out.Warning)
	}

	n.logger.InfoContext(ctx, "slack message posted", "channel", out.Channel, "ts", out.TS, "blocks", len(msg.Blocks))
	return nil
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(value[cut]) {
		cut--
	}
	return value[:cut] + "...(truncated)"
}
