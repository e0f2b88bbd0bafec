package services

import (
	"context"
	"strings"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/auth"
	"github.com/nmalet/blog-backend/internal/metrics"
	"github.com/nmalet/blog-backend/internal/models"
	repo "github.com/nmalet/blog-backend/internal/repository"
	"github.com/nmalet/blog-backend/internal/worker"
)

// PostService owns post and comment CRUD plus the ownership policy.
// Both update and delete use the same rule: the post's author or an
// admin may modify it, nobody else.
type PostService struct {
	posts       repo.Posts
	progression *ProgressionService
	activity    repo.Activity
	wp          *worker.Pool
}

func NewPostService(posts repo.Posts, progression *ProgressionService, activity repo.Activity, wp *worker.Pool) *PostService {
	return &PostService{posts: posts, progression: progression, activity: activity, wp: wp}
}

func (s *PostService) Create(ctx context.Context, authorID, title, content string) (models.Post, error) {
	p := models.Post{Title: title, Content: content, AuthorID: authorID}
	if err := p.Validate(); err != nil {
		return models.Post{}, err
	}
	p, err := s.posts.Create(ctx, p)
	if err != nil {
		return models.Post{}, err
	}
	metrics.PostsCreated.Inc()
	return p, nil
}

func (s *PostService) Get(ctx context.Context, id string) (models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.posts.List(ctx)
}

func canModify(ident auth.Identity, p models.Post) bool {
	return ident.IsAdmin || p.AuthorID == ident.UserID
}

func (s *PostService) Update(ctx context.Context, ident auth.Identity, id, title, content string) (models.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return models.Post{}, err
	}
	if !canModify(ident, p) {
		return models.Post{}, apperr.ErrForbidden
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return models.Post{}, apperr.ErrInvalidInput
	}
	if err := s.posts.Update(ctx, id, title, content); err != nil {
		return models.Post{}, err
	}
	p.Title, p.Content = title, content
	return p, nil
}

func (s *PostService) Delete(ctx context.Context, ident auth.Identity, id string) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !canModify(ident, p) {
		return apperr.ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.record(p.ID, "deleted", map[string]any{"by": ident.UserID})
	return nil
}

// AddComment appends a comment and triggers the progression side
// effect exactly once. The comment is persisted first; a progression
// failure surfaces to the caller but the comment stays.
func (s *PostService) AddComment(ctx context.Context, authorID, postID, text string) (models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Comment{}, apperr.ErrInvalidInput
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return models.Comment{}, err
	}
	c, err := s.posts.AddComment(ctx, models.Comment{PostID: postID, AuthorID: authorID, Text: text})
	if err != nil {
		return models.Comment{}, err
	}
	metrics.CommentsCreated.Inc()
	s.record(postID, "comment_added", map[string]any{"comment_id": c.ID, "author_id": authorID})

	if _, err := s.progression.AwardCommentXP(ctx, authorID); err != nil {
		return models.Comment{}, err
	}
	return c, nil
}

func (s *PostService) record(postID, action string, details map[string]any) {
	id := postID
	s.wp.Submit(func() {
		_ = s.activity.Create(context.Background(), models.ActivityRecord{
			EntityType: "post",
			EntityID:   &id,
			Action:     action,
			Details:    details,
		})
	})
}
