package repository

import (
	"context"

	"github.com/Neetko/SCHEDULE-APP/internal/model"
)

// ScheduleRepository is the CRUD surface over the (date, time_slot)-keyed
// schedules table. It returns raw rows; the 24-hour default fill and the
// stats aggregation live in the service layer.
type ScheduleRepository interface {
	// SlotsForDate returns the stored rows for one calendar date, ordered
	// by time slot. Missing hours are simply absent.
	SlotsForDate(ctx context.Context, date string) ([]model.ScheduleSlot, error)
	// UpsertSlot creates or overwrites one row keyed by (date, time_slot)
	// and stamps updated_at.
	UpsertSlot(ctx context.Context, slot *model.ScheduleSlot) error
	// UpsertDay bulk-upserts all provided slots as one logical operation.
	// Partial application on failure is possible; the caller gets a single error.
	UpsertDay(ctx context.Context, slots []model.ScheduleSlot) error
	// Activities returns the activity column of every row in [from, to]
	// (inclusive date strings) whose activity is not exactly "Available".
	Activities(ctx context.Context, from, to string) ([]string, error)
	// Dates returns the distinct dates that have any rows, newest first.
	Dates(ctx context.Context) ([]string, error)
}

type TodoRepository interface {
	List(ctx context.Context) ([]model.TodoItem, error)
	Create(ctx context.Context, todo *model.TodoItem) error
	SetCompleted(ctx context.Context, id string, completed bool) error
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	// Upsert creates or updates a user keyed by the Discord account id.
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
}
