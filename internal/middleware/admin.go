package middleware

import (
	"errors"
	"net/http"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/api/httpx"
	repo "github.com/nmalet/blog-backend/internal/repository"
)

// AdminMiddleware gates admin-only routes. The admin flag inside the
// token is advisory; the check here loads the current user record so a
// revoked admin bit takes effect before the token expires.
type AdminMiddleware struct {
	Users repo.Users
}

func NewAdminMiddleware(users repo.Users) *AdminMiddleware {
	return &AdminMiddleware{Users: users}
}

// Require must run after AuthMiddleware.Require. A valid session
// without the admin bit gets 403, never 401.
func (m *AdminMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ident, ok := IdentityFrom(r.Context())
		if !ok {
			httpx.Fail(w, apperr.ErrTokenMissing)
			return
		}
		u, err := m.Users.GetByID(r.Context(), ident.UserID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				// token outlived the account
				httpx.Fail(w, apperr.ErrForbidden)
				return
			}
			httpx.Fail(w, err)
			return
		}
		if !u.IsAdmin {
			httpx.Fail(w, apperr.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
