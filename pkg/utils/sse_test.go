package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	SetupSSEHeaders(rec)
	if err := SendSSEEvent(rec, rec, "thinking", map[string]bool{"active": true}); err != nil {
		t.Fatalf("SendSSEEvent err: %v", err)
	}
	if err := SendSSEComment(rec, rec, "ping"); err != nil {
		t.Fatalf("SendSSEComment err: %v", err)
	}

	want := "event: thinking\ndata: {\"active\":true}\n\n: ping\n\n"
	if got := rec.Body.String(); got != want {
		t.Fatalf("body = %q, want %q", got, want)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type = %q", ct)
	}
	if !rec.Flushed {
		t.Fatal("expected flush")
	}
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(rec, http.StatusConflict, "busy")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := rec.Body.String(); got != "{\"error\":\"busy\"}\n" {
		t.Fatalf("body = %q", got)
	}
}
