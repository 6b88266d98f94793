package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/Neetko/SCHEDULE-APP/internal/model"
)

func TestSlotsForDate_EmptyDay(t *testing.T) {
	db := newTestDB(t)

	slots, err := db.SlotsForDate(context.Background(), "2025-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate() error = %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("got %d slots for an empty day, want 0", len(slots))
	}
}

func TestUpsertSlot_InsertThenRead(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	slot := &model.ScheduleSlot{
		Date:        "2025-03-15",
		TimeSlot:    "09:00:00",
		Status:      model.StatusBusy,
		Activity:    "Work meeting",
		Description: "standup",
	}
	if err := db.UpsertSlot(ctx, slot); err != nil {
		t.Fatalf("UpsertSlot() error = %v", err)
	}
	if slot.UpdatedAt.IsZero() {
		t.Error("UpsertSlot() should stamp UpdatedAt")
	}

	slots, err := db.SlotsForDate(ctx, "2025-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate() error = %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d slots, want 1", len(slots))
	}
	got := slots[0]
	if got.Status != model.StatusBusy || got.Activity != "Work meeting" || got.Description != "standup" {
		t.Errorf("stored slot = %+v, want the inserted values", got)
	}
}

func TestUpsertSlot_OverwritesExistingKey(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first := &model.ScheduleSlot{
		Date: "2025-03-15", TimeSlot: "09:00:00",
		Status: model.StatusBusy, Activity: "Work meeting",
	}
	if err := db.UpsertSlot(ctx, first); err != nil {
		t.Fatalf("first UpsertSlot() error = %v", err)
	}

	second := &model.ScheduleSlot{
		Date: "2025-03-15", TimeSlot: "09:00:00",
		Status: model.StatusFree, Activity: "Available",
	}
	if err := db.UpsertSlot(ctx, second); err != nil {
		t.Fatalf("second UpsertSlot() error = %v", err)
	}

	slots, err := db.SlotsForDate(ctx, "2025-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate() error = %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("got %d rows after overwrite, want 1 — the key is (date, time_slot)", len(slots))
	}
	if slots[0].Status != model.StatusFree {
		t.Errorf("Status = %q after overwrite, want %q", slots[0].Status, model.StatusFree)
	}
}

func TestSlotsForDate_OrderedAndScopedToDate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, s := range []model.ScheduleSlot{
		{Date: "2025-03-15", TimeSlot: "14:00:00", Status: model.StatusFree, Activity: "Available"},
		{Date: "2025-03-15", TimeSlot: "09:00:00", Status: model.StatusBusy, Activity: "Gym"},
		{Date: "2025-03-16", TimeSlot: "09:00:00", Status: model.StatusBusy, Activity: "Other day"},
	} {
		s := s
		if err := db.UpsertSlot(ctx, &s); err != nil {
			t.Fatalf("UpsertSlot() error = %v", err)
		}
	}

	slots, err := db.SlotsForDate(ctx, "2025-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate() error = %v", err)
	}
	if len(slots) != 2 {
		t.Fatalf("got %d slots, want 2", len(slots))
	}
	if slots[0].TimeSlot != "09:00:00" || slots[1].TimeSlot != "14:00:00" {
		t.Errorf("slots not ordered by time_slot: %+v", slots)
	}
}

func TestUpsertDay_Transactional(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	day := []model.ScheduleSlot{
		{Date: "2025-03-15", TimeSlot: "08:00:00", Status: model.StatusBusy, Activity: "Work meeting"},
		{Date: "2025-03-15", TimeSlot: "09:00:00", Status: model.StatusFree, Activity: "Available"},
		{Date: "2025-03-15", TimeSlot: "10:00:00", Status: model.StatusBusy, Activity: "Gym"},
	}
	if err := db.UpsertDay(ctx, day); err != nil {
		t.Fatalf("UpsertDay() error = %v", err)
	}

	slots, err := db.SlotsForDate(ctx, "2025-03-15")
	if err != nil {
		t.Fatalf("SlotsForDate() error = %v", err)
	}
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}

	// All rows from one commit share the same timestamp.
	for _, s := range slots[1:] {
		if !s.UpdatedAt.Equal(slots[0].UpdatedAt) {
			t.Errorf("UpdatedAt differs across one day commit: %v vs %v", s.UpdatedAt, slots[0].UpdatedAt)
		}
	}
}

func TestUpsertDay_Empty(t *testing.T) {
	db := newTestDB(t)

	if err := db.UpsertDay(context.Background(), nil); err != nil {
		t.Errorf("UpsertDay(nil) error = %v, want nil", err)
	}
}

func TestActivities_FiltersDefaultAndRange(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	seed := []model.ScheduleSlot{
		{Date: "2025-03-10", TimeSlot: "08:00:00", Status: model.StatusBusy, Activity: "Gym"},
		{Date: "2025-03-10", TimeSlot: "09:00:00", Status: model.StatusFree, Activity: "Available"},
		{Date: "2025-03-12", TimeSlot: "08:00:00", Status: model.StatusBusy, Activity: "Gym"},
		{Date: "2025-02-01", TimeSlot: "08:00:00", Status: model.StatusBusy, Activity: "Out of range"},
	}
	for _, s := range seed {
		s := s
		if err := db.UpsertSlot(ctx, &s); err != nil {
			t.Fatalf("UpsertSlot() error = %v", err)
		}
	}

	activities, err := db.Activities(ctx, "2025-03-01", "2025-03-31")
	if err != nil {
		t.Fatalf("Activities() error = %v", err)
	}
	if len(activities) != 2 {
		t.Fatalf("got %d activities, want 2 (no %q, nothing outside the range): %v",
			len(activities), model.DefaultFreeActivity, activities)
	}
	for _, a := range activities {
		if a != "Gym" {
			t.Errorf("unexpected activity %q", a)
		}
	}
}

func TestDates_DistinctNewestFirst(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	for _, s := range []model.ScheduleSlot{
		{Date: "2025-03-10", TimeSlot: "08:00:00", Status: model.StatusBusy, Activity: "Gym"},
		{Date: "2025-03-10", TimeSlot: "09:00:00", Status: model.StatusBusy, Activity: "Gym"},
		{Date: "2025-03-12", TimeSlot: "08:00:00", Status: model.StatusBusy, Activity: "Gym"},
	} {
		s := s
		if err := db.UpsertSlot(ctx, &s); err != nil {
			t.Fatalf("UpsertSlot() error = %v", err)
		}
	}

	dates, err := db.Dates(ctx)
	if err != nil {
		t.Fatalf("Dates() error = %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("Dates() = %v, want 2 distinct dates", dates)
	}
	if dates[0] != "2025-03-12" || dates[1] != "2025-03-10" {
		t.Errorf("Dates() = %v, want newest first", dates)
	}
}

func TestUpsertSlot_StampsNewTimestampOnRepeat(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	slot := &model.ScheduleSlot{
		Date: "2025-03-15", TimeSlot: "09:00:00",
		Status: model.StatusBusy, Activity: "Gym",
	}
	if err := db.UpsertSlot(ctx, slot); err != nil {
		t.Fatalf("UpsertSlot() error = %v", err)
	}
	first := slot.UpdatedAt

	time.Sleep(5 * time.Millisecond)

	// Identical values — the timestamp still moves.
	if err := db.UpsertSlot(ctx, slot); err != nil {
		t.Fatalf("repeat UpsertSlot() error = %v", err)
	}
	if !slot.UpdatedAt.After(first) {
		t.Errorf("UpdatedAt = %v, want later than the first write %v", slot.UpdatedAt, first)
	}
}
