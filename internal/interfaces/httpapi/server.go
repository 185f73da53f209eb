package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fplbot/internal/platform/logging"
)

// NewRouter mounts the webhook on every path not claimed by a system route.
// metricsHandler may be nil to disable /metrics.
func NewRouter(handler *Handler, metricsHandler http.Handler, logger *logging.Logger) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, metricsHandler)
	registerWebhookRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, recoverPanic(logger, mux)))
}
