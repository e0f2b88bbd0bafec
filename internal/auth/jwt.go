package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nmalet/blog-backend/internal/apperr"
)

// SessionTTL is the fixed lifetime of a session token. There is no
// server-side revocation list; a token stays valid until this elapses.
const SessionTTL = time.Hour

// Identity is what a verified token resolves to.
type Identity struct {
	UserID  string
	IsAdmin bool
}

type Claims struct {
	UserID  string `json:"uid"`
	IsAdmin bool   `json:"adm"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 session tokens. Verification
// is pure: signature plus expiry, no I/O. The signing key comes from
// config at startup; rotating it invalidates all outstanding tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: SessionTTL, now: time.Now}
}

// WithClock overrides the manager's clock. Tests use it to simulate
// expiry without sleeping.
func (tm *TokenManager) WithClock(now func() time.Time) *TokenManager {
	tm.now = now
	return tm
}

func (tm *TokenManager) Issue(userID string, isAdmin bool) (string, error) {
	now := tm.now()
	claims := Claims{
		UserID:  userID,
		IsAdmin: isAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify resolves a token string to an Identity. An empty string maps
// to ErrTokenMissing, an elapsed expiry to ErrTokenExpired, and any
// signature or structure problem to ErrTokenInvalid.
func (tm *TokenManager) Verify(tokenStr string) (Identity, error) {
	if tokenStr == "" {
		return Identity{}, apperr.ErrTokenMissing
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secret, nil
	}, jwt.WithTimeFunc(tm.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, apperr.ErrTokenExpired
		}
		return Identity{}, apperr.ErrTokenInvalid
	}
	return Identity{UserID: claims.UserID, IsAdmin: claims.IsAdmin}, nil
}
