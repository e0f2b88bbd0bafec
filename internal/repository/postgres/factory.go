package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/nmalet/blog-backend/internal/repository"
)

type Repositories struct {
	Users    repo.Users
	Posts    repo.Posts
	Activity repo.Activity
}

func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Users:    &usersRepo{pool},
		Posts:    &postsRepo{pool},
		Activity: &activityRepo{pool},
	}
}
