package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/api/httpx"
	"github.com/nmalet/blog-backend/internal/api/validate"
	"github.com/nmalet/blog-backend/internal/auth"
	"github.com/nmalet/blog-backend/internal/middleware"
	"github.com/nmalet/blog-backend/internal/services"
)

type SessionHandler struct {
	Users *services.UserService
	TM    *auth.TokenManager
}

func NewSessionHandler(us *services.UserService, tm *auth.TokenManager) *SessionHandler {
	return &SessionHandler{Users: us, TM: tm}
}

type registerReq struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *SessionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	if err := validate.Collect(
		validate.Required("username", req.Username),
		validate.Required("email", req.Email),
		validate.Required("password", req.Password),
	); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_input", err.Error(), err)
		return
	}
	u, err := h.Users.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, u)
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates and hands the client a session cookie. The
// cookie's max-age matches the token TTL, so both expire together.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	u, err := h.Users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	tok, err := h.TM.Issue(u.ID, u.IsAdmin)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(auth.SessionTTL.Seconds()),
	})
	httpx.WriteJSON(w, http.StatusOK, u)
}

// Logout only instructs the client to drop the cookie. There is no
// server-side revocation list, so a captured token stays usable until
// its natural expiry.
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}
