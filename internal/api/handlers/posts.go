package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/api/httpx"
	"github.com/nmalet/blog-backend/internal/middleware"
	"github.com/nmalet/blog-backend/internal/models"
	"github.com/nmalet/blog-backend/internal/services"
)

type PostsHandler struct {
	Posts *services.PostService
}

func NewPostsHandler(ps *services.PostService) *PostsHandler {
	return &PostsHandler{Posts: ps}
}

func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.Posts.List(r.Context())
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	if posts == nil {
		posts = []models.Post{}
	}
	httpx.WriteJSON(w, http.StatusOK, posts)
}

func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Posts.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

type postReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())
	var req postReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	p, err := h.Posts.Create(r.Context(), ident.UserID, req.Title, req.Content)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, p)
}

func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())
	var req postReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	p, err := h.Posts.Update(r.Context(), ident, chi.URLParam(r, "id"), req.Title, req.Content)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, p)
}

func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())
	if err := h.Posts.Delete(r.Context(), ident, chi.URLParam(r, "id")); err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type commentReq struct {
	Text string `json:"text"`
}

func (h *PostsHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())
	var req commentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	c, err := h.Posts.AddComment(r.Context(), ident.UserID, chi.URLParam(r, "id"), req.Text)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, c)
}
