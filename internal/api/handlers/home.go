package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nmalet/blog-backend/internal/api/httpx"
	"github.com/nmalet/blog-backend/internal/middleware"
	"github.com/nmalet/blog-backend/internal/models"
	"github.com/nmalet/blog-backend/internal/services"
)

type HomeHandler struct {
	Posts *services.PostService
	Users *services.UserService
}

func NewHomeHandler(ps *services.PostService, us *services.UserService) *HomeHandler {
	return &HomeHandler{Posts: ps, Users: us}
}

type homePayload struct {
	User  *models.User  `json:"user"`
	Posts []models.Post `json:"posts"`
}

// Index is the listing page payload. A failing post query degrades to
// an empty list instead of failing the page, and an invalid cookie just
// renders the page anonymously.
func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	var viewer *models.User
	if ident, ok := middleware.IdentityFrom(r.Context()); ok {
		if u, err := h.Users.Get(r.Context(), ident.UserID); err == nil {
			viewer = &u
		}
	}

	posts, err := h.Posts.List(r.Context())
	if err != nil {
		slog.Error("home listing", "err", err)
		posts = nil
	}
	if posts == nil {
		posts = []models.Post{}
	}
	httpx.WriteJSON(w, http.StatusOK, homePayload{User: viewer, Posts: posts})
}
