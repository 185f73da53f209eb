package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/fplbot/internal/domain/slackevent"
	"github.com/riskibarqy/fplbot/internal/observability"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
	"github.com/riskibarqy/fplbot/internal/platform/signature"
)

const defaultMaxBodyBytes int64 = 1 << 20

// EventCallbackHandler reacts to verified-or-not event_callback payloads.
type EventCallbackHandler interface {
	HandleEventCallback(ctx context.Context, cb slackevent.EventCallback) (bool, error)
}

type HandlerConfig struct {
	// StrictEventVerification drops event_callback payloads that fail
	// signature or timestamp checks instead of processing them.
	StrictEventVerification bool
	MaxBodyBytes            int64
}

type Handler struct {
	events       EventCallbackHandler
	verifier     *signature.Verifier
	strict       bool
	maxBodyBytes int64
	logger       *logging.Logger
	metrics      *observability.Metrics
}

func NewHandler(
	events EventCallbackHandler,
	verifier *signature.Verifier,
	cfg HandlerConfig,
	logger *logging.Logger,
	metrics *observability.Metrics,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	return &Handler{
		events:       events,
		verifier:     verifier,
		strict:       cfg.StrictEventVerification,
		maxBodyBytes: maxBody,
		logger:       logger,
		metrics:      metrics,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeJSON(ctx, w, http.StatusOK, statusResponse{Status: "ok"})
}
