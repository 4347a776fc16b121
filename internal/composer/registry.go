package composer

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/delivery"
	"github.com/maheshrc27/story-scheduler/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var ErrDraftNotFound = errors.New("draft not found")

// Registry keeps the open composers of the draft endpoints.
type Registry struct {
	deps Deps

	mu        sync.Mutex
	composers map[string]*Composer
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{
		deps:      deps,
		composers: make(map[string]*Composer),
	}
}

func (r *Registry) Open(defaultDate time.Time) (string, *Composer, error) {
	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return "", nil, err
	}

	c := New(r.deps)
	if err := c.Open(defaultDate); err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	r.composers[id] = c
	r.mu.Unlock()

	return id, c, nil
}

func (r *Registry) Get(id string) (*Composer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.composers[id]
	if !ok {
		return nil, ErrDraftNotFound
	}
	return c, nil
}

func (r *Registry) Close(id string) error {
	c, err := r.Get(id)
	if err != nil {
		return err
	}
	if err := c.Close(); err != nil {
		return err
	}

	r.mu.Lock()
	delete(r.composers, id)
	r.mu.Unlock()
	return nil
}

// Submit submits the draft and forgets it once the post is recorded.
func (r *Registry) Submit(ctx context.Context, id string) (*models.Post, *delivery.Result, error) {
	c, err := r.Get(id)
	if err != nil {
		return nil, nil, err
	}

	post, result, err := c.Submit(ctx)
	if err != nil {
		return nil, nil, err
	}

	r.mu.Lock()
	delete(r.composers, id)
	r.mu.Unlock()
	return post, result, nil
}

// PruneOlderThan closes drafts opened before cutoff, skipping any that are
// mid-submission.
func (r *Registry) PruneOlderThan(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for id, c := range r.composers {
		if !c.OpenedAt().Before(cutoff) {
			continue
		}
		if err := c.Close(); err != nil {
			continue
		}
		delete(r.composers, id)
		pruned++
	}
	return pruned
}
