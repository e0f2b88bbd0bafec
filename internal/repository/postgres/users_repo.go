package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/models"
)

type usersRepo struct{ pool *pgxpool.Pool }

const userCols = `id, username, email, password_hash, is_admin, profile_picture, banner, xp, level, title, nickname_color, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsAdmin,
		&u.ProfilePicture, &u.Banner, &u.XP, &u.Level, &u.Title, &u.NicknameColor,
		&u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, apperr.ErrNotFound
	}
	return u, err
}

func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return apperr.ErrDuplicateIdentity
	}
	return err
}

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users(id, username, email, password_hash, is_admin, profile_picture, banner, xp, level, title, nickname_color)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`,
		u.ID, u.Username, u.Email, u.PasswordHash, u.IsAdmin,
		u.ProfilePicture, u.Banner, u.XP, u.Level, u.Title, u.NicknameColor,
	)
	if err != nil {
		return models.User{}, mapUnique(err)
	}
	return r.GetByID(ctx, u.ID)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

func (r *usersRepo) Update(ctx context.Context, u models.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		    SET username=$2, profile_picture=$3, banner=$4, title=$5, nickname_color=$6, updated_at=now()
		  WHERE id=$1`,
		u.ID, u.Username, u.ProfilePicture, u.Banner, u.Title, u.NicknameColor,
	)
	if err != nil {
		return mapUnique(err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// UpdateProgress is the guarded write behind the progression engine's
// optimistic retry loop: the row only changes when xp/level still match
// what the caller read.
func (r *usersRepo) UpdateProgress(ctx context.Context, id string, oldXP, oldLevel, newXP, newLevel int) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users
		    SET xp=$4, level=$5, updated_at=now()
		  WHERE id=$1 AND xp=$2 AND level=$3`,
		id, oldXP, oldLevel, newXP, newLevel,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
