// Package middleware carries the storefront's HTTP middleware that is not
// part of the shared observability stack.
package middleware

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/mygiftflora/storefront/internal/platform/requestctx"
)

// CookieName is the visitor session cookie.
const CookieName = "flora_session"

const cookieMaxAge = 180 * 24 * time.Hour

// SessionDeps configures the session middleware.
type SessionDeps struct {
	SigningKey string
	Secure     bool
	Logger     *zap.Logger
}

// Session identifies the visitor with a signed cookie. A missing or tampered
// cookie is replaced with a freshly minted ULID session, and the verified
// session id is stored on the request context for downstream handlers.
type Session struct {
	key    []byte
	secure bool
	logger *zap.Logger
}

// NewSession validates deps and constructs the middleware.
func NewSession(deps SessionDeps) (*Session, error) {
	if strings.TrimSpace(deps.SigningKey) == "" {
		return nil, errors.New("middleware: session signing key is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		key:    []byte(deps.SigningKey),
		secure: deps.Secure,
		logger: logger,
	}, nil
}

// Handler wraps next with session resolution.
func (s *Session) Handler(next http.Handler) http.Handler {
	if next == nil {
		next = http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := s.sessionFromRequest(r)
		if !ok {
			sessionID = newSessionID()
			s.setCookie(w, sessionID)
		}

		ctx := requestctx.WithSessionID(r.Context(), sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Session) sessionFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}

	id, signature, found := strings.Cut(cookie.Value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(signature), []byte(s.sign(id))) {
		s.logger.Warn("session cookie signature mismatch")
		return "", false
	}
	return id, true
}

func (s *Session) setCookie(w http.ResponseWriter, sessionID string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sessionID + "." + s.sign(sessionID),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Session) sign(value string) string {
	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(value))
	return hex.EncodeToString(mac.Sum(nil))
}

func newSessionID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
