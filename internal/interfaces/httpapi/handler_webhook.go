package httpapi

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/riskibarqy/fplbot/internal/domain/slackevent"
	"github.com/riskibarqy/fplbot/internal/observability"
	"github.com/riskibarqy/fplbot/internal/platform/signature"
	"go.opentelemetry.io/otel/attribute"
)

// Webhook receives Slack Events API requests.
//
// Only POST requests with a JSON content type are inspected; everything else
// is acknowledged without verification. url_verification is answered only
// when the signature and timestamp check out. event_callback is acknowledged
// immediately and handled in the background.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Webhook")
	defer span.End()

	if r.Method != http.MethodPost || !isJSONContentType(r.Header.Get("Content-Type")) {
		h.metrics.ObserveWebhook("", observability.OutcomeIgnored)
		writeOK(ctx, w)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.logger.WarnContext(ctx, "webhook body too large", "limit_bytes", tooLarge.Limit)
			h.metrics.ObserveWebhook("", observability.OutcomeRejected)
			writeStatus(ctx, w, http.StatusRequestEntityTooLarge, statusTextTooLarge)
			return
		}
		h.logger.WarnContext(ctx, "read webhook body failed", "error", err)
		h.metrics.ObserveWebhook("", observability.OutcomeRejected)
		writeStatus(ctx, w, http.StatusBadRequest, statusTextBadRequest)
		return
	}

	result := h.verifier.Verify(body, r.Header.Get(signature.HeaderTimestamp), r.Header.Get(signature.HeaderSignature))
	event := slackevent.Parse(body)
	eventType := slackevent.TypeOf(event)

	span.SetAttributes(
		attribute.String("slack.event_type", eventType),
		attribute.Bool("slack.signature_valid", result.SignatureValid),
		attribute.Bool("slack.time_close", result.TimeClose),
	)

	switch ev := event.(type) {
	case slackevent.URLVerification:
		if !result.Verified() {
			h.logger.WarnContext(ctx, "url verification rejected",
				"signature_valid", result.SignatureValid,
				"time_close", result.TimeClose,
			)
			h.metrics.ObserveWebhook(eventType, observability.OutcomeRejected)
			writeStatus(ctx, w, http.StatusForbidden, statusTextUnauthorized)
			return
		}
		h.metrics.ObserveWebhook(eventType, observability.OutcomeOK)
		writeJSON(ctx, w, http.StatusOK, challengeResponse{Challenge: ev.Challenge})

	case slackevent.EventCallback:
		if !result.Verified() {
			if h.strict {
				h.logger.WarnContext(ctx, "unverified event callback dropped",
					"event_id", ev.EventID,
					"signature_valid", result.SignatureValid,
					"time_close", result.TimeClose,
				)
				h.metrics.ObserveWebhook(eventType, observability.OutcomeRejected)
				writeOK(ctx, w)
				return
			}
			h.logger.WarnContext(ctx, "processing unverified event callback",
				"event_id", ev.EventID,
				"signature_valid", result.SignatureValid,
				"time_close", result.TimeClose,
			)
		}

		queued, err := h.events.HandleEventCallback(ctx, ev)
		switch {
		case err != nil:
			h.logger.ErrorContext(ctx, "event callback not queued", "event_id", ev.EventID, "error", err)
			h.metrics.ObserveWebhook(eventType, observability.OutcomeDropped)
		case queued:
			h.metrics.ObserveWebhook(eventType, observability.OutcomeOK)
		default:
			h.metrics.ObserveWebhook(eventType, observability.OutcomeIgnored)
		}
		writeOK(ctx, w)

	default:
		h.logger.DebugContext(ctx, "unhandled webhook payload", "event_type", eventType, "body_bytes", len(body))
		h.metrics.ObserveWebhook(eventType, observability.OutcomeIgnored)
		writeOK(ctx, w)
	}
}

func isJSONContentType(value string) bool {
	return strings.Contains(strings.ToLower(value), "application/json")
}
