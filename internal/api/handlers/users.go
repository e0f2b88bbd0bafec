package handlers

import (
	"log/slog"
	"net/http"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/api/httpx"
	"github.com/nmalet/blog-backend/internal/media"
	"github.com/nmalet/blog-backend/internal/metrics"
	"github.com/nmalet/blog-backend/internal/middleware"
	"github.com/nmalet/blog-backend/internal/services"
)

// maxUploadBytes caps avatar uploads at 8 MiB.
const maxUploadBytes = 8 << 20

type UsersHandler struct {
	Users *services.UserService
	Media media.Store
}

func NewUsersHandler(us *services.UserService, store media.Store) *UsersHandler {
	return &UsersHandler{Users: us, Media: store}
}

// Me returns the caller's own profile.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())
	u, err := h.Users.Get(r.Context(), ident.UserID)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}

// Update handles the multipart profile form: an optional nickname
// field and an optional profilePicture file. The file goes to the blob
// store; only the resulting URL is persisted.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	ident, _ := middleware.IdentityFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpx.Fail(w, apperr.ErrInvalidInput)
		return
	}
	nickname := r.FormValue("nickname")

	var pictureURL string
	if file, header, err := r.FormFile("profilePicture"); err == nil {
		defer file.Close()
		url, err := h.Media.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), file)
		if err != nil {
			metrics.UploadFailures.Inc()
			slog.Error("avatar upload", "err", err, "user", ident.UserID)
			httpx.Fail(w, err)
			return
		}
		pictureURL = url
	}

	u, err := h.Users.UpdateProfile(r.Context(), ident.UserID, nickname, pictureURL)
	if err != nil {
		httpx.Fail(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, u)
}
