package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mygiftflora/storefront/internal/platform/requestctx"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	session, err := NewSession(SessionDeps{SigningKey: "test-signing-key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return session
}

func TestSessionMintsCookieForNewVisitor(t *testing.T) {
	session := newTestSession(t)

	var seenID string
	handler := session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = requestctx.SessionID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seenID == "" {
		t.Fatal("expected a session id on the request context")
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("expected a %s cookie, got %+v", CookieName, cookies)
	}
	if !cookies[0].HttpOnly {
		t.Fatal("expected an http-only cookie")
	}
}

func TestSessionReusesValidCookie(t *testing.T) {
	session := newTestSession(t)

	var firstID string
	handler := session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstID = requestctx.SessionID(r.Context())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rec.Result().Cookies()[0]

	var secondID string
	handler = session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondID = requestctx.SessionID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)

	if secondID != firstID {
		t.Fatalf("expected session id %q to be reused, got %q", firstID, secondID)
	}
	if len(rec2.Result().Cookies()) != 0 {
		t.Fatal("expected no new cookie for a returning visitor")
	}
}

func TestSessionRejectsTamperedCookie(t *testing.T) {
	session := newTestSession(t)

	var firstID string
	handler := session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		firstID = requestctx.SessionID(r.Context())
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookie := rec.Result().Cookies()[0]

	cookie.Value = "forged-session-id." + cookie.Value[len(firstID)+1:]

	var secondID string
	handler = session.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondID = requestctx.SessionID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	rec2 := httptest.NewRecorder()
	handler.ServeHTTP(rec2, req)

	if secondID == "forged-session-id" {
		t.Fatal("expected forged session id to be rejected")
	}
	if len(rec2.Result().Cookies()) != 1 {
		t.Fatal("expected a replacement cookie after rejecting the forged one")
	}
}

func TestNewSessionRequiresSigningKey(t *testing.T) {
	if _, err := NewSession(SessionDeps{SigningKey: "  "}); err == nil {
		t.Fatal("expected an error for an empty signing key")
	}
}
