package httpapi

import (
	"context"
	"net/http"

	sonic "github.com/bytedance/sonic"
)

const contentTypeJSON = "application/json;charset=UTF-8"

const (
	statusTextOK           = "OK"
	statusTextUnauthorized = "Unauthorized"
	statusTextTooLarge     = "Payload Too Large"
	statusTextBadRequest   = "Bad Request"
	statusTextInternal     = "Internal Server Error"
)

type statusResponse struct {
	Status string `json:"status"`
}

type challengeResponse struct {
	Challenge string `json:"challenge"`
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeStatus(ctx context.Context, w http.ResponseWriter, status int, text string) {
	writeJSON(ctx, w, status, statusResponse{Status: text})
}

func writeOK(ctx context.Context, w http.ResponseWriter) {
	writeStatus(ctx, w, http.StatusOK, statusTextOK)
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeStatus(ctx, w, http.StatusInternalServerError, statusTextInternal)
}
