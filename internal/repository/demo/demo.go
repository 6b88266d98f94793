// Package demo implements the repository interfaces without any backing
// store. The server falls back to it when no database path is configured,
// so the guest console always has something coherent to show.
//
// Reads serve a fixed, deterministic dataset — the same schedule shape for
// every date, the same todos on every call. Writes fail with
// apperror.ErrUnavailable: demo mode is read-only by definition, and the
// handlers surface that as a 503 rather than pretending to persist.
package demo

import (
	"context"
	"time"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// Store is the no-database fallback. It holds no mutable state, so the
// zero value is ready to use and safe for concurrent reads.
type Store struct{}

var (
	_ repository.ScheduleRepository = (*Store)(nil)
	_ repository.TodoRepository     = (*Store)(nil)
	_ repository.UserRepository     = (*Store)(nil)
)

func New() *Store { return &Store{} }

const unavailableMsg = "database is not configured"

// demoSlot is the fixed daily pattern served for every date. It mirrors a
// plausible owner's day: sleep in the early morning, a block of meetings,
// dinner, personal time late.
func demoSlot(date string, hour int) model.ScheduleSlot {
	slot := model.DefaultSlot(date, hour)
	switch {
	case hour >= 4 && hour <= 7:
		slot.Status = model.StatusBusy
		slot.Activity = "Sleeping"
	case hour >= 10 && hour <= 12:
		slot.Status = model.StatusBusy
		slot.Activity = "Work meeting"
	case hour == 18:
		slot.Status = model.StatusBusy
		slot.Activity = "Dinner"
	case hour >= 22:
		slot.Status = model.StatusBusy
		slot.Activity = "Personal time"
	}
	return slot
}

// SlotsForDate returns the full 24-slot demo day for any date.
func (s *Store) SlotsForDate(_ context.Context, date string) ([]model.ScheduleSlot, error) {
	slots := make([]model.ScheduleSlot, 0, model.HoursPerDay)
	for hour := 0; hour < model.HoursPerDay; hour++ {
		slots = append(slots, demoSlot(date, hour))
	}
	return slots, nil
}

func (s *Store) UpsertSlot(context.Context, *model.ScheduleSlot) error {
	return apperror.Unavailable(unavailableMsg)
}

func (s *Store) UpsertDay(context.Context, []model.ScheduleSlot) error {
	return apperror.Unavailable(unavailableMsg)
}

// Activities derives the non-"Available" labels from the demo pattern for
// each date in the inclusive range, so the stats view ranks the same
// activities a real month of this pattern would produce.
func (s *Store) Activities(_ context.Context, from, to string) ([]string, error) {
	start, err := time.Parse(model.DateLayout, from)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(model.DateLayout, to)
	if err != nil {
		return nil, err
	}

	var activities []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format(model.DateLayout)
		for hour := 0; hour < model.HoursPerDay; hour++ {
			if slot := demoSlot(date, hour); slot.Activity != model.DefaultFreeActivity {
				activities = append(activities, slot.Activity)
			}
		}
	}
	return activities, nil
}

// Dates reports no stored dates — demo data exists for every date equally,
// so there is nothing to enumerate.
func (s *Store) Dates(context.Context) ([]string, error) {
	return []string{}, nil
}

// List returns a fixed pair of example todos.
func (s *Store) List(context.Context) ([]model.TodoItem, error) {
	return []model.TodoItem{
		{ID: "demo-1", Text: "Configure the database to start editing", Completed: false},
		{ID: "demo-2", Text: "This list is read-only demo data", Completed: true},
	}, nil
}

func (s *Store) Create(context.Context, *model.TodoItem) error {
	return apperror.Unavailable(unavailableMsg)
}

func (s *Store) SetCompleted(context.Context, string, bool) error {
	return apperror.Unavailable(unavailableMsg)
}

func (s *Store) Delete(context.Context, string) error {
	return apperror.Unavailable(unavailableMsg)
}

func (s *Store) Upsert(context.Context, *model.User) error {
	return apperror.Unavailable(unavailableMsg)
}

func (s *Store) GetByID(_ context.Context, id string) (*model.User, error) {
	return nil, apperror.NotFound("user", id)
}
