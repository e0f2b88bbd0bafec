package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/auth"
	"github.com/nmalet/blog-backend/internal/models"
	repo "github.com/nmalet/blog-backend/internal/repository"
	"github.com/nmalet/blog-backend/internal/worker"
)

type UserService struct {
	users    repo.Users
	activity repo.Activity
	wp       *worker.Pool
}

func NewUserService(users repo.Users, activity repo.Activity, wp *worker.Pool) *UserService {
	return &UserService{users: users, activity: activity, wp: wp}
}

// Register creates a user with isAdmin=false and all gamification
// fields at their defaults. The password is stored only as a bcrypt
// hash.
func (s *UserService) Register(ctx context.Context, email, username, password string) (models.User, error) {
	u := models.User{
		Username: strings.TrimSpace(username),
		Email:    strings.TrimSpace(email),
	}
	if err := u.Validate(); err != nil {
		return models.User{}, err
	}
	if password == "" {
		return models.User{}, apperr.ErrInvalidInput
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = hash
	return s.users.Create(ctx, u)
}

// Authenticate resolves username+password to a user. Unknown username
// and wrong password both come back as ErrInvalidCredentials; bcrypt's
// comparison keeps the effort constant so timing does not tell them
// apart either.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return models.User{}, apperr.ErrInvalidCredentials
		}
		return models.User{}, err
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, apperr.ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Get(ctx context.Context, id string) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile changes the nickname and/or profile picture URL. Empty
// arguments leave the current value in place.
func (s *UserService) UpdateProfile(ctx context.Context, id, nickname, pictureURL string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if nickname != "" {
		u.Username = strings.TrimSpace(nickname)
		if len(u.Username) < 3 {
			return models.User{}, apperr.ErrInvalidInput
		}
	}
	if pictureURL != "" {
		u.ProfilePicture = pictureURL
	}
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// SetTitle assigns an admin-chosen title to a user. The admin check
// itself happens in the authorization guard, not here.
func (s *UserService) SetTitle(ctx context.Context, id, title string) (models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	u.Title = title
	if err := s.users.Update(ctx, u); err != nil {
		return models.User{}, err
	}
	s.record("user", u.ID, "title_set", map[string]any{"title": title})
	return u, nil
}

// record queues a best-effort activity entry; request handling never
// waits on it or fails because of it.
func (s *UserService) record(entityType, entityID, action string, details map[string]any) {
	id := entityID
	s.wp.Submit(func() {
		_ = s.activity.Create(context.Background(), models.ActivityRecord{
			EntityType: entityType,
			EntityID:   &id,
			Action:     action,
			Details:    details,
		})
	})
}
