package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/models"
)

type postsRepo struct{ pool *pgxpool.Pool }

func (r *postsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO posts(id, title, content, author_id)
		 VALUES($1,$2,$3,$4)
		 RETURNING created_at`,
		p.ID, p.Title, p.Content, p.AuthorID,
	).Scan(&p.CreatedAt)
	if err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (r *postsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	var p models.Post
	err := r.pool.QueryRow(ctx,
		`SELECT p.id, p.title, p.content, p.author_id, p.created_at,
		        u.id, u.username, u.profile_picture
		   FROM posts p
		   JOIN users u ON u.id = p.author_id
		  WHERE p.id=$1`, id,
	).Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt,
		&p.Author.ID, &p.Author.Username, &p.Author.ProfilePicture)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, apperr.ErrNotFound
	}
	if err != nil {
		return models.Post{}, err
	}

	// comments in insertion order; id breaks same-timestamp ties
	rows, err := r.pool.Query(ctx,
		`SELECT c.id, c.post_id, c.author_id, c.text, c.created_at,
		        u.id, u.username, u.profile_picture
		   FROM comments c
		   JOIN users u ON u.id = c.author_id
		  WHERE c.post_id=$1
		  ORDER BY c.created_at ASC, c.id ASC`, id)
	if err != nil {
		return models.Post{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Text, &c.CreatedAt,
			&c.Author.ID, &c.Author.Username, &c.Author.ProfilePicture); err != nil {
			return models.Post{}, err
		}
		p.Comments = append(p.Comments, c)
	}
	return p, rows.Err()
}

func (r *postsRepo) List(ctx context.Context) ([]models.Post, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT p.id, p.title, p.content, p.author_id, p.created_at,
		        u.id, u.username, u.profile_picture
		   FROM posts p
		   JOIN users u ON u.id = p.author_id
		  ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Post
	for rows.Next() {
		var p models.Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt,
			&p.Author.ID, &p.Author.Username, &p.Author.ProfilePicture); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *postsRepo) Update(ctx context.Context, id, title, content string) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE posts SET title=$2, content=$3 WHERE id=$1`, id, title, content)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postsRepo) Delete(ctx context.Context, id string) error {
	// comments go with the post (ON DELETE CASCADE)
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *postsRepo) AddComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO comments(id, post_id, author_id, text)
		 VALUES($1,$2,$3,$4)
		 RETURNING created_at`,
		c.ID, c.PostID, c.AuthorID, c.Text,
	).Scan(&c.CreatedAt)
	if err != nil {
		return models.Comment{}, err
	}
	return c, nil
}
