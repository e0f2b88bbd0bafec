package middleware

import (
	"net/http"

	"github.com/nmalet/blog-backend/internal/api/httpx"
	"github.com/nmalet/blog-backend/internal/auth"
)

// SessionCookie carries the session token. httponly, max-age matches
// the token TTL.
const SessionCookie = "token"

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

func tokenFromCookie(r *http.Request) string {
	c, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// Require rejects the request unless the session cookie verifies. The
// wrapped handler never runs for unauthenticated callers.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, err := m.TM.Verify(tokenFromCookie(r))
		if err != nil {
			httpx.Fail(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), ident)))
	})
}

// Optional attaches an identity when a valid cookie is present and
// proceeds anonymously otherwise. Used by public pages that show the
// viewer's name when logged in.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ident, err := m.TM.Verify(tokenFromCookie(r)); err == nil {
			r = r.WithContext(WithIdentity(r.Context(), ident))
		}
		next.ServeHTTP(w, r)
	})
}
