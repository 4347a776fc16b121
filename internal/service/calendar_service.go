package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/models"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

type CalendarViewMode string

const (
	ViewWeek  CalendarViewMode = "week"
	ViewMonth CalendarViewMode = "month"
)

func ParseViewMode(s string) (CalendarViewMode, error) {
	switch m := CalendarViewMode(s); m {
	case "":
		return ViewWeek, nil
	case ViewWeek, ViewMonth:
		return m, nil
	}
	return "", fmt.Errorf("unknown calendar view %q", s)
}

// CalendarPicker holds a reference date and a view mode. Selecting a date
// moves the reference date and notifies the owner through onSelect.
type CalendarPicker struct {
	loc      *time.Location
	now      func() time.Time
	ref      time.Time
	view     CalendarViewMode
	onSelect func(time.Time)
}

func NewCalendarPicker(loc *time.Location, ref time.Time, onSelect func(time.Time)) *CalendarPicker {
	if loc == nil {
		loc = time.Local
	}
	p := &CalendarPicker{
		loc:      loc,
		now:      time.Now,
		view:     ViewWeek,
		onSelect: onSelect,
	}
	if ref.IsZero() {
		ref = p.now()
	}
	p.ref = ref.In(loc)
	return p
}

func (p *CalendarPicker) ReferenceDate() time.Time { return p.ref }
func (p *CalendarPicker) View() CalendarViewMode   { return p.view }

func (p *CalendarPicker) SetView(view CalendarViewMode) {
	if view != "" {
		p.view = view
	}
}

func (p *CalendarPicker) ToggleView() {
	if p.view == ViewWeek {
		p.view = ViewMonth
		return
	}
	p.view = ViewWeek
}

func (p *CalendarPicker) Select(date time.Time) {
	if date.IsZero() {
		return
	}
	p.ref = date.In(p.loc)
	if p.onSelect != nil {
		p.onSelect(p.ref)
	}
}

// Render lays out the current view and marks days carrying posts.
func (p *CalendarPicker) Render(posts []*models.Post) transfer.CalendarView {
	view := transfer.CalendarView{
		View:          string(p.view),
		Title:         p.ref.Format("January 2006"),
		ReferenceDate: p.ref,
	}

	dates := make([]time.Time, 0, len(posts))
	for _, post := range posts {
		dates = append(dates, post.Date.In(p.loc))
	}
	today := p.now().In(p.loc)

	if p.view == ViewMonth {
		grid := utils.MonthGrid(p.ref)
		recurring := p.recurringDates(posts, grid[0][0], utils.EndOfWeek(grid[len(grid)-1][6]))
		for _, week := range grid {
			row := make([]transfer.DayCell, 0, len(week))
			for _, day := range week {
				row = append(row, p.cell(day, today, dates, recurring))
			}
			view.Weeks = append(view.Weeks, row)
		}
		return view
	}

	days := utils.WeekWindow(p.ref)
	recurring := p.recurringDates(posts, days[0], utils.EndOfWeek(days[0]))
	for _, day := range days {
		view.Days = append(view.Days, p.cell(day, today, dates, recurring))
	}
	return view
}

func (p *CalendarPicker) cell(day, today time.Time, dates, recurring []time.Time) transfer.DayCell {
	return transfer.DayCell{
		Date:          day,
		Weekday:       day.Format("Mon"),
		Day:           day.Day(),
		InMonth:       day.Month() == p.ref.Month(),
		IsToday:       utils.IsSameDay(day, today),
		IsSelected:    utils.IsSameDay(day, p.ref),
		HasSchedule:   utils.DayHasSchedule(day, dates),
		HasRecurrence: utils.DayHasSchedule(day, recurring),
	}
}

// recurringDates expands recurring posts inside [from, to], leaving out the
// original date which HasSchedule already covers.
func (p *CalendarPicker) recurringDates(posts []*models.Post, from, to time.Time) []time.Time {
	var out []time.Time
	for _, post := range posts {
		if post.Recurrence == nil {
			continue
		}
		start := post.Date.In(p.loc)
		occurrences, err := utils.Occurrences(start, post.Recurrence.Pattern, post.Recurrence.SelectedDays, from, to)
		if err != nil {
			slog.Info(err.Error(), "post_id", post.ID)
			continue
		}
		for _, o := range occurrences {
			if !o.Equal(start) {
				out = append(out, o)
			}
		}
	}
	return out
}
