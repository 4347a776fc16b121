package service

import (
	"context"
	"fmt"
	"time"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/maheshrc27/story-scheduler/internal/repository"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

const (
	TabCalendar  = "calendar"
	TabScheduled = "scheduled"
	TabPublished = "published"
)

type DashboardService interface {
	Dashboard(ctx context.Context, tab string, ref time.Time, view CalendarViewMode) (*transfer.DashboardView, error)
	Calendar(ctx context.Context, ref time.Time, view CalendarViewMode) (*transfer.CalendarView, error)
}

type dashboardService struct {
	pr  repository.PostRepository
	ps  PostService
	loc *time.Location
}

func NewDashboardService(pr repository.PostRepository, ps PostService, loc *time.Location) DashboardService {
	if loc == nil {
		loc = time.Local
	}
	return &dashboardService{
		pr:  pr,
		ps:  ps,
		loc: loc,
	}
}

func (s *dashboardService) Dashboard(ctx context.Context, tab string, ref time.Time, view CalendarViewMode) (*transfer.DashboardView, error) {
	if tab == "" {
		tab = TabCalendar
	}
	if err := v.Validate(tab, v.In(TabCalendar, TabScheduled, TabPublished)); err != nil {
		return nil, fmt.Errorf("invalid tab: %w", err)
	}

	stats, err := s.ps.Stats(ctx)
	if err != nil {
		return nil, err
	}
	tabs, err := s.ps.Partition(ctx)
	if err != nil {
		return nil, err
	}
	calendar, err := s.Calendar(ctx, ref, view)
	if err != nil {
		return nil, err
	}

	return &transfer.DashboardView{
		Tab:       tab,
		Stats:     *stats,
		Calendar:  *calendar,
		Scheduled: tabs.Scheduled,
		Published: tabs.Published,
	}, nil
}

func (s *dashboardService) Calendar(ctx context.Context, ref time.Time, view CalendarViewMode) (*transfer.CalendarView, error) {
	posts, err := s.pr.List(ctx)
	if err != nil {
		return nil, err
	}

	picker := NewCalendarPicker(s.loc, ref, nil)
	picker.SetView(view)
	rendered := picker.Render(posts)
	return &rendered, nil
}
