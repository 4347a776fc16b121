package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/maheshrc27/story-scheduler/internal/models"
	"github.com/maheshrc27/story-scheduler/internal/repository"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

var ErrPostNotFound = errors.New("post doesn't exist")

type PostService interface {
	List(ctx context.Context, status string) ([]*models.Post, error)
	Partition(ctx context.Context) (*transfer.PostList, error)
	PostInfo(ctx context.Context, id string) (*models.Post, error)
	Stats(ctx context.Context) (*transfer.Stats, error)
}

type postService struct {
	pr  repository.PostRepository
	loc *time.Location
	now func() time.Time
}

func NewPostService(pr repository.PostRepository, loc *time.Location) PostService {
	if loc == nil {
		loc = time.Local
	}
	return &postService{
		pr:  pr,
		loc: loc,
		now: time.Now,
	}
}

func (s *postService) List(ctx context.Context, status string) ([]*models.Post, error) {
	err := v.Validate(status, v.In(models.PostStatusScheduled, models.PostStatusPublished, models.PostStatusFailed))
	if err != nil {
		return nil, fmt.Errorf("invalid status: %w", err)
	}

	if status == "" {
		return s.pr.List(ctx)
	}
	return s.pr.ListByStatus(ctx, status)
}

// Partition splits the schedule into the dashboard's scheduled and published
// tabs, keeping store order.
func (s *postService) Partition(ctx context.Context) (*transfer.PostList, error) {
	posts, err := s.pr.List(ctx)
	if err != nil {
		return nil, err
	}

	list := &transfer.PostList{
		Scheduled: []*models.Post{},
		Published: []*models.Post{},
	}
	for _, p := range posts {
		switch p.Status {
		case models.PostStatusScheduled:
			list.Scheduled = append(list.Scheduled, p)
		case models.PostStatusPublished:
			list.Published = append(list.Published, p)
		}
	}
	return list, nil
}

func (s *postService) PostInfo(ctx context.Context, id string) (*models.Post, error) {
	if id == "" {
		err := errors.New("post id is not valid")
		slog.Info(err.Error())
		return nil, err
	}

	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// Stats counts posts dated in the current week and month along with the
// per-status totals.
func (s *postService) Stats(ctx context.Context) (*transfer.Stats, error) {
	posts, err := s.pr.List(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.loc)
	weekStart, weekEnd := utils.StartOfWeek(now), utils.EndOfWeek(now)

	stats := &transfer.Stats{}
	for _, p := range posts {
		date := p.Date.In(s.loc)
		if !date.Before(weekStart) && !date.After(weekEnd) {
			stats.PostsThisWeek++
		}
		if date.Year() == now.Year() && date.Month() == now.Month() {
			stats.PostsThisMonth++
		}
		switch p.Status {
		case models.PostStatusScheduled:
			stats.Scheduled++
		case models.PostStatusPublished:
			stats.Published++
		}
	}
	return stats, nil
}
