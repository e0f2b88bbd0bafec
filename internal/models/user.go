package models

import (
	"regexp"
	"strings"
	"time"

	"github.com/nmalet/blog-backend/internal/apperr"
)

// Defaults applied to new users at registration.
const (
	DefaultProfilePicture = "/images/default-avatar.png"
	DefaultBanner         = "/images/default-banner.png"
	DefaultNicknameColor  = "#000000"
)

// emailRe is deliberately loose: local@domain.tld shape, nothing more.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type User struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email,omitempty"`
	PasswordHash   string    `json:"-"`
	IsAdmin        bool      `json:"isAdmin"`
	ProfilePicture string    `json:"profilePicture"`
	Banner         string    `json:"banner"`
	XP             int       `json:"xp"`
	Level          int       `json:"level"`
	Title          string    `json:"title"`
	NicknameColor  string    `json:"nicknameColor"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate checks registration input and fills gamification defaults.
func (u *User) Validate() error {
	if len(strings.TrimSpace(u.Username)) < 3 {
		return apperr.ErrInvalidInput
	}
	if !emailRe.MatchString(u.Email) {
		return apperr.ErrInvalidEmail
	}
	if u.ProfilePicture == "" {
		u.ProfilePicture = DefaultProfilePicture
	}
	if u.Banner == "" {
		u.Banner = DefaultBanner
	}
	if u.NicknameColor == "" {
		u.NicknameColor = DefaultNicknameColor
	}
	if u.Level == 0 {
		u.Level = 1
	}
	return nil
}

// AuthorRef is the resolved author identity attached to posts and
// comments in listings.
type AuthorRef struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	ProfilePicture string `json:"profilePicture"`
}

func (u User) Ref() AuthorRef {
	return AuthorRef{ID: u.ID, Username: u.Username, ProfilePicture: u.ProfilePicture}
}
