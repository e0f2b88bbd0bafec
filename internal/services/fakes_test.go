package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nmalet/blog-backend/internal/apperr"
	"github.com/nmalet/blog-backend/internal/models"
	"github.com/nmalet/blog-backend/internal/worker"
)

// in-memory repositories mirroring the postgres contracts

type fakeUsersRepo struct {
	mu    sync.Mutex
	users map[string]models.User

	// failCAS makes the next n UpdateProgress calls miss their guard,
	// as if a concurrent writer got there first.
	failCAS int
}

func newFakeUsersRepo() *fakeUsersRepo {
	return &fakeUsersRepo{users: map[string]models.User{}}
}

func (f *fakeUsersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ex := range f.users {
		if ex.Username == u.Username || (u.Email != "" && ex.Email == u.Email) {
			return models.User{}, apperr.ErrDuplicateIdentity
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.CreatedAt = time.Now()
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return models.User{}, apperr.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, apperr.ErrNotFound
}

func (f *fakeUsersRepo) Update(ctx context.Context, u models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.users[u.ID]
	if !ok {
		return apperr.ErrNotFound
	}
	cur.Username = u.Username
	cur.ProfilePicture = u.ProfilePicture
	cur.Banner = u.Banner
	cur.Title = u.Title
	cur.NicknameColor = u.NicknameColor
	f.users[u.ID] = cur
	return nil
}

func (f *fakeUsersRepo) UpdateProgress(ctx context.Context, id string, oldXP, oldLevel, newXP, newLevel int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCAS > 0 {
		f.failCAS--
		return false, nil
	}
	u, ok := f.users[id]
	if !ok || u.XP != oldXP || u.Level != oldLevel {
		return false, nil
	}
	u.XP, u.Level = newXP, newLevel
	f.users[id] = u
	return true, nil
}

type fakePostsRepo struct {
	mu       sync.Mutex
	posts    map[string]models.Post
	comments map[string][]models.Comment
	listErr  error
}

func newFakePostsRepo() *fakePostsRepo {
	return &fakePostsRepo{posts: map[string]models.Post{}, comments: map[string][]models.Comment{}}
}

func (f *fakePostsRepo) Create(ctx context.Context, p models.Post) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	f.posts[p.ID] = p
	return p, nil
}

func (f *fakePostsRepo) GetByID(ctx context.Context, id string) (models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return models.Post{}, apperr.ErrNotFound
	}
	p.Comments = append([]models.Comment(nil), f.comments[id]...)
	return p, nil
}

func (f *fakePostsRepo) List(ctx context.Context) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]models.Post, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakePostsRepo) Update(ctx context.Context, id, title, content string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return apperr.ErrNotFound
	}
	p.Title, p.Content = title, content
	f.posts[id] = p
	return nil
}

func (f *fakePostsRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.posts[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(f.posts, id)
	delete(f.comments, id)
	return nil
}

func (f *fakePostsRepo) AddComment(ctx context.Context, c models.Comment) (models.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	f.comments[c.PostID] = append(f.comments[c.PostID], c)
	return c, nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	records []models.ActivityRecord
}

func (f *fakeActivityRepo) Create(ctx context.Context, rec models.ActivityRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

func newTestPool() *worker.Pool { return worker.NewPool(1) }
