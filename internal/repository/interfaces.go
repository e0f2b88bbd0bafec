// Package repository defines the storage boundary. Implementations map
// store-level failures (no rows, unique violations) onto the apperr
// taxonomy so services never see driver errors.
package repository

import (
	"context"

	"github.com/nmalet/blog-backend/internal/models"
)

type Users interface {
	// Create persists a new user; a username or email collision yields
	// apperr.ErrDuplicateIdentity.
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	// Update persists profile fields (username, picture, banner, title,
	// nickname color). It never touches xp/level; see UpdateProgress.
	Update(ctx context.Context, u models.User) error

	// UpdateProgress applies new xp/level only if the stored values
	// still equal (oldXP, oldLevel). Returns false when the guard
	// missed, in which case the caller re-reads and retries.
	UpdateProgress(ctx context.Context, id string, oldXP, oldLevel, newXP, newLevel int) (bool, error)
}

type Posts interface {
	Create(ctx context.Context, p models.Post) (models.Post, error)
	// GetByID resolves the author and the post's comments, comments in
	// insertion order.
	GetByID(ctx context.Context, id string) (models.Post, error)
	// List returns posts newest first with authors resolved, without
	// comment bodies.
	List(ctx context.Context) ([]models.Post, error)
	Update(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error
	AddComment(ctx context.Context, c models.Comment) (models.Comment, error)
}

type Activity interface {
	Create(ctx context.Context, rec models.ActivityRecord) error
}
