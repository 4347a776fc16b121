package repository

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (string, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	ListByStatus(ctx context.Context, status string) ([]*models.Post, error)
}

// postRepository keeps posts in insertion order in memory. Posts are never
// updated or removed once stored.
type postRepository struct {
	mu    sync.RWMutex
	posts []*models.Post
}

func NewPostRepository(seed ...*models.Post) PostRepository {
	r := &postRepository{}
	for _, p := range seed {
		r.posts = append(r.posts, clonePost(p))
	}
	return r
}

// MockPosts returns the demo schedule shown on a fresh dashboard.
func MockPosts(loc *time.Location) []*models.Post {
	return []*models.Post{
		{
			ID:        "1",
			Date:      time.Date(2025, time.May, 18, 14, 30, 0, 0, loc),
			Platforms: []string{models.PlatformInstagram, models.PlatformFacebook},
			Status:    models.PostStatusScheduled,
		},
		{
			ID:        "2",
			Date:      time.Date(2025, time.May, 20, 9, 0, 0, 0, loc),
			Platforms: []string{models.PlatformYoutube},
			Status:    models.PostStatusScheduled,
		},
		{
			ID:        "3",
			Date:      time.Date(2025, time.May, 15, 17, 15, 0, 0, loc),
			Platforms: []string{models.PlatformInstagram},
			Status:    models.PostStatusPublished,
		},
	}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (string, error) {
	if post == nil {
		return "", errors.New("post is nil")
	}

	stored := clonePost(post)
	if stored.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			slog.Info(err.Error())
			return "", err
		}
		stored.ID = id
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.ID == stored.ID {
			return "", errors.New("post id already exists")
		}
	}
	r.posts = append(r.posts, stored)

	return stored.ID, nil
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.posts {
		if p.ID == id {
			return clonePost(p), nil
		}
	}
	return nil, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	return r.filter(func(*models.Post) bool { return true }), nil
}

func (r *postRepository) ListByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	return r.filter(func(p *models.Post) bool { return p.Status == status }), nil
}

func (r *postRepository) filter(keep func(*models.Post) bool) []*models.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]*models.Post, 0, len(r.posts))
	for _, p := range r.posts {
		if keep(p) {
			posts = append(posts, clonePost(p))
		}
	}
	return posts
}

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.Platforms = append([]string(nil), p.Platforms...)
	if p.Recurrence != nil {
		rec := *p.Recurrence
		rec.SelectedDays = append([]time.Weekday(nil), p.Recurrence.SelectedDays...)
		c.Recurrence = &rec
	}
	return &c
}
