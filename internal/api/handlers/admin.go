package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/api/httpx"
	"github.com/nmalet/blog-backend/internal/services"
)

type AdminHandler struct {
	Users *services.UserService
}

func NewAdminHandler(us *services.UserService) *AdminHandler {
	return &AdminHandler{Users: us}
}

type setTitleReq struct {
	Title string `json:"title"`
}

// SetTitle assigns a free-text title to a user. Admin-only; the guard
// runs in middleware.
func (h *AdminHandler) SetTitle(w http.ResponseWriter, r *http.Request) {
	var req setTitleReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	u, err := h.Users.SetTitle(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// Page answers the admin-only page routes. The HTML shells are served
// by the frontend; the backend's job on these routes is the admin
// guard, so a small descriptor is enough.
func (h *AdminHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"page": name})
	}
}
