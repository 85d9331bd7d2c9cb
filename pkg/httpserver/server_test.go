package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	statex "github.com/claraeverett/Sierra-Agent/agent/state"
)

type echoHandler struct {
	err error
}

func (h *echoHandler) HandleMessage(_ context.Context, sess *statex.Session, text string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	sess.AddConversationEntry(statex.RoleUser, text)
	reply := "echo: " + text
	sess.AddConversationEntry(statex.RoleAssistant, reply)
	return reply, nil
}

func newTestServer(t *testing.T, handler Handler) (*Server, *statex.Store) {
	t.Helper()
	store := statex.NewStore()
	srv, err := New(Config{Addr: ":0"}, store, handler)
	if err != nil {
		t.Fatalf("server setup: %v", err)
	}
	return srv, store
}

func postMessage(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/message", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.httpSrv.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleMessageCreatesSession(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t, &echoHandler{})

	rec := postMessage(t, srv, `{"message": "hello"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d, body %s", rec.Code, rec.Body.String())
	}

	var resp messageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Response != "echo: hello" {
		t.Fatalf("unexpected reply: %q", resp.Response)
	}
	if resp.SessionID == "" {
		t.Fatal("server must mint a session id when absent")
	}
	if len(resp.ConversationHistory) != 2 {
		t.Fatalf("expected transcript in response, got %+v", resp.ConversationHistory)
	}
	if store.Peek(resp.SessionID) == nil {
		t.Fatal("session not stored")
	}
}

func TestHandleMessageReusesSession(t *testing.T) {
	t.Parallel()

	srv, store := newTestServer(t, &echoHandler{})

	first := postMessage(t, srv, `{"message": "one"}`)
	var firstResp messageResponse
	if err := json.Unmarshal(first.Body.Bytes(), &firstResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	second := postMessage(t, srv, `{"message": "two", "sessionId": "`+firstResp.SessionID+`"}`)
	var secondResp messageResponse
	if err := json.Unmarshal(second.Body.Bytes(), &secondResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if secondResp.SessionID != firstResp.SessionID {
		t.Fatal("session id must be stable across turns")
	}
	if len(secondResp.ConversationHistory) != 4 {
		t.Fatalf("transcript must accumulate, got %d entries", len(secondResp.ConversationHistory))
	}
	if store.Len() != 1 {
		t.Fatalf("expected one session, got %d", store.Len())
	}
}

func TestHandleMessageValidation(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &echoHandler{})

	cases := map[string]string{
		"empty body":    ``,
		"no message":    `{"sessionId": "abc"}`,
		"blank message": `{"message": "   "}`,
	}
	for name, body := range cases {
		rec := postMessage(t, srv, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", name, rec.Code)
		}
	}
}

func TestHandleMessageHandlerFailure(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &echoHandler{err: errors.New("model exploded")})

	rec := postMessage(t, srv, `{"message": "hello"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "model exploded") {
		t.Fatal("internal error details must not leak to the client")
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	srv, _ := newTestServer(t, &echoHandler{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.httpSrv.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}
