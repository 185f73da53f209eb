package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteStatus_JSONBody(t *testing.T) {
	rec := httptest.NewRecorder()
	writeStatus(context.Background(), rec, http.StatusForbidden, statusTextUnauthorized)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json;charset=UTF-8" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"status":"Unauthorized"}` {
		t.Fatalf("unexpected body: %s", got)
	}
}

func TestWriteJSON_Challenge(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(context.Background(), rec, http.StatusOK, challengeResponse{Challenge: "3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"})

	want := `{"challenge":"3eZbrw1aBm2rZgRNFdxV2595E9CY3gmdALWMmHkvFXO7tYXAYM8P"}`
	if got := strings.TrimSpace(rec.Body.String()); got != want {
		t.Fatalf("unexpected body: %s", got)
	}
}
