package demo

import (
	"context"
	"errors"
	"testing"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
)

func TestSlotsForDate_FullDeterministicDay(t *testing.T) {
	store := New()

	first, err := store.SlotsForDate(context.Background(), "2025-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate() error = %v", err)
	}
	if len(first) != model.HoursPerDay {
		t.Fatalf("got %d slots, want %d", len(first), model.HoursPerDay)
	}

	// Deterministic: the same date always yields the same day.
	second, _ := store.SlotsForDate(context.Background(), "2025-03-15")
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("slot %d differs across calls: %+v vs %+v", i, first[i], second[i])
		}
	}

	// The fixed pattern: sleeping early, meetings midday, free evening gap.
	if first[5].Activity != "Sleeping" || first[5].Status != model.StatusBusy {
		t.Errorf("hour 5 = %+v, want the Sleeping block", first[5])
	}
	if first[11].Activity != "Work meeting" {
		t.Errorf("hour 11 = %+v, want the meeting block", first[11])
	}
	if first[15].Status != model.StatusFree || first[15].Activity != model.DefaultFreeActivity {
		t.Errorf("hour 15 = %+v, want the free default", first[15])
	}
}

func TestWrites_Unavailable(t *testing.T) {
	store := New()
	ctx := context.Background()

	calls := map[string]error{
		"UpsertSlot":   store.UpsertSlot(ctx, &model.ScheduleSlot{}),
		"UpsertDay":    store.UpsertDay(ctx, nil),
		"Create":       store.Create(ctx, &model.TodoItem{Text: "x"}),
		"SetCompleted": store.SetCompleted(ctx, "demo-1", true),
		"Delete":       store.Delete(ctx, "demo-1"),
		"Upsert":       store.Upsert(ctx, &model.User{}),
	}
	for name, err := range calls {
		if !errors.Is(err, apperror.ErrUnavailable) {
			t.Errorf("%s error = %v, want ErrUnavailable", name, err)
		}
	}
}

func TestActivities_DerivedFromPattern(t *testing.T) {
	store := New()

	activities, err := store.Activities(context.Background(), "2025-03-14", "2025-03-15")
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}

	counts := make(map[string]int)
	for _, a := range activities {
		if a == model.DefaultFreeActivity {
			t.Fatalf("Activities() leaked the %q filler", model.DefaultFreeActivity)
		}
		counts[a]++
	}
	// Per day: 4 sleeping hours, 3 meeting hours, 1 dinner, 2 personal
	// (22 and 23). Two days in the range.
	if counts["Sleeping"] != 8 {
		t.Errorf("Sleeping count = %d, want 8", counts["Sleeping"])
	}
	if counts["Work meeting"] != 6 {
		t.Errorf("Work meeting count = %d, want 6", counts["Work meeting"])
	}
	if counts["Dinner"] != 2 {
		t.Errorf("Dinner count = %d, want 2", counts["Dinner"])
	}
}

func TestDatesAndTodos(t *testing.T) {
	store := New()

	dates, err := store.Dates(context.Background())
	if err != nil {
		t.Fatalf("Dates() error = %v", err)
	}
	if len(dates) != 0 {
		t.Errorf("Dates() = %v, want empty", dates)
	}

	todos, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("List() returned %d todos, want the fixed pair", len(todos))
	}
	if todos[0].ID != "demo-1" || todos[1].ID != "demo-2" {
		t.Errorf("todo IDs = %q, %q, want demo-1, demo-2", todos[0].ID, todos[1].ID)
	}
}

func TestGetByID_NoUsersInDemoMode(t *testing.T) {
	store := New()

	if _, err := store.GetByID(context.Background(), "anyone"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
