package httpapi

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tally/internal/bot"
	"tally/internal/events"
	applog "tally/internal/log"
	"tally/internal/session"
	"tally/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	logger := applog.New(applog.Options{
		Handler: slog.NewTextHandler(io.Discard, nil),
	})
	router := bot.NewRouter(memory.New(), session.NewManager(), events.NopPublisher{}, logger, nil)
	return &Server{router: router, logger: logger}
}

func postEvent(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/events", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handleEvent(rec, req)
	return rec
}

func decodeReply(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var reply Reply
	if err := json.NewDecoder(rec.Body).Decode(&reply); err != nil {
		t.Fatalf("decode reply: %v", err)
	}
	return reply.Reply
}

func TestCommandEvent(t *testing.T) {
	s := newTestServer(t)

	rec := postEvent(t, s, `{"user_id": 1, "command": "new", "args": ["wallet"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if reply := decodeReply(t, rec); !strings.Contains(reply, `"wallet"`) {
		t.Fatalf("reply = %q", reply)
	}
}

func TestTextEvent(t *testing.T) {
	s := newTestServer(t)

	postEvent(t, s, `{"user_id": 1, "command": "new", "args": ["wallet"]}`)
	rec := postEvent(t, s, `{"user_id": 1, "text": "-3000 rent"}`)

	if reply := decodeReply(t, rec); !strings.Contains(reply, "Total: -3,000") {
		t.Fatalf("reply = %q", reply)
	}
}

func TestRejectsBadPayload(t *testing.T) {
	s := newTestServer(t)

	cases := []string{
		`{`,
		`{"user_id": 0, "text": "x"}`,
		`{"user_id": 1, "bogus": true}`,
	}
	for _, body := range cases {
		rec := postEvent(t, s, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %q: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestRejectsWrongMethod(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	rec := httptest.NewRecorder()
	s.handleEvent(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("body = %q", rec.Body.String())
	}
}
