package console

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/Neetko/SCHEDULE-APP/internal/clock"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// fakeScheduleRepo backs the services under test. failAfter < 0 means never
// fail; otherwise the repo errors once that many writes have succeeded,
// which is how the partial-batch cases are driven.
type fakeScheduleRepo struct {
	slots     map[string]model.ScheduleSlot
	writes    int
	failAfter int
	readErr   error
	dayCalls  [][]model.ScheduleSlot
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{
		slots:     make(map[string]model.ScheduleSlot),
		failAfter: -1,
	}
}

func (f *fakeScheduleRepo) key(date, ts string) string { return date + "|" + ts }

func (f *fakeScheduleRepo) SlotsForDate(_ context.Context, date string) ([]model.ScheduleSlot, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	var out []model.ScheduleSlot
	for _, s := range f.slots {
		if s.Date == date {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) UpsertSlot(_ context.Context, slot *model.ScheduleSlot) error {
	if f.failAfter >= 0 && f.writes >= f.failAfter {
		return errors.New("store write failed")
	}
	f.writes++
	slot.UpdatedAt = time.Now()
	f.slots[f.key(slot.Date, slot.TimeSlot)] = *slot
	return nil
}

func (f *fakeScheduleRepo) UpsertDay(_ context.Context, slots []model.ScheduleSlot) error {
	stored := make([]model.ScheduleSlot, len(slots))
	copy(stored, slots)
	f.dayCalls = append(f.dayCalls, stored)
	for _, s := range slots {
		f.slots[f.key(s.Date, s.TimeSlot)] = s
	}
	return nil
}

func (f *fakeScheduleRepo) Activities(_ context.Context, from, to string) ([]string, error) {
	var out []string
	for _, s := range f.slots {
		if s.Date >= from && s.Date <= to && s.Activity != model.DefaultFreeActivity {
			out = append(out, s.Activity)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) Dates(_ context.Context) ([]string, error) {
	return nil, nil
}

var editorNow = time.Date(2025, time.March, 15, 14, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestEditor(t *testing.T) (*SlotEditor, *fakeScheduleRepo) {
	t.Helper()
	repo := newFakeScheduleRepo()
	svc := service.NewScheduleService(repo, clock.NewFixed(editorNow), testLogger())
	editor := NewSlotEditor(svc)
	if err := editor.Load(context.Background(), "2025-03-15"); err != nil {
		t.Fatalf("setup: Load() error = %v", err)
	}
	return editor, repo
}

func TestEditorLoad(t *testing.T) {
	editor, _ := newTestEditor(t)

	if editor.Date() != "2025-03-15" {
		t.Errorf("Date() = %q, want %q", editor.Date(), "2025-03-15")
	}
	if editor.State() != Idle {
		t.Errorf("State() = %d, want Idle", editor.State())
	}
	if day := editor.Day(); len(day) != model.HoursPerDay {
		t.Errorf("Day() has %d slots, want %d", len(day), model.HoursPerDay)
	}
}

func TestBeginEdit_SeedsFormWithBlankActivity(t *testing.T) {
	editor, repo := newTestEditor(t)

	repo.slots[repo.key("2025-03-15", "09:00:00")] = model.ScheduleSlot{
		Date: "2025-03-15", TimeSlot: "09:00:00",
		Status: model.StatusBusy, Activity: "Work meeting", Description: "standup",
	}
	if err := editor.Load(context.Background(), "2025-03-15"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if err := editor.BeginEdit(9); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}

	form := editor.Form()
	if form.Status != model.StatusBusy {
		t.Errorf("form Status = %q, want the slot's current status", form.Status)
	}
	if form.Description != "standup" {
		t.Errorf("form Description = %q, want the slot's description", form.Description)
	}
	// The activity field always starts blank, never pre-filled.
	if form.Activity != "" {
		t.Errorf("form Activity = %q, want blank", form.Activity)
	}
}

func TestBeginEdit_RejectedOutsideIdle(t *testing.T) {
	editor, _ := newTestEditor(t)

	if err := editor.BeginEdit(9); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := editor.BeginEdit(10); err == nil {
		t.Error("second BeginEdit() while a dialog is open should error")
	}
}

func TestSaveEdit_PersistsImmediately(t *testing.T) {
	editor, repo := newTestEditor(t)

	if err := editor.BeginEdit(9); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	err := editor.SaveEdit(context.Background(), SlotForm{
		Status: model.StatusBusy, Activity: "Gym", Description: "leg day",
	})
	if err != nil {
		t.Fatalf("SaveEdit() error = %v", err)
	}

	stored, ok := repo.slots[repo.key("2025-03-15", "09:00:00")]
	if !ok {
		t.Fatal("slot was not written to the store")
	}
	if stored.Activity != "Gym" || stored.Description != "leg day" {
		t.Errorf("stored slot = %+v, want the form values", stored)
	}
	if editor.State() != Idle {
		t.Errorf("State() = %d after save, want Idle", editor.State())
	}
	if editor.Day()[9].Activity != "Gym" {
		t.Errorf("working copy not updated: %+v", editor.Day()[9])
	}
}

func TestSaveEdit_DialogStaysOpenOnFailure(t *testing.T) {
	editor, repo := newTestEditor(t)

	if err := editor.BeginEdit(9); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	repo.failAfter = 0

	err := editor.SaveEdit(context.Background(), SlotForm{Status: model.StatusBusy})
	if err == nil {
		t.Fatal("SaveEdit() should propagate the store failure")
	}
	if editor.State() != SingleEditOpen {
		t.Errorf("State() = %d after failed save, want the dialog still open", editor.State())
	}
}

func TestRangeSelection_InclusiveSpan(t *testing.T) {
	tests := []struct {
		name          string
		first, second int
	}{
		{"forward", 9, 13},
		{"backward", 13, 9}, // order independent
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			editor, _ := newTestEditor(t)

			if err := editor.EnterRangeMode(); err != nil {
				t.Fatalf("EnterRangeMode() error = %v", err)
			}
			if err := editor.ClickCell(tt.first); err != nil {
				t.Fatalf("first ClickCell() error = %v", err)
			}
			if got := editor.Selected(); len(got) != 1 || got[0] != tt.first {
				t.Errorf("after first click Selected() = %v, want [%d]", got, tt.first)
			}

			if err := editor.ClickCell(tt.second); err != nil {
				t.Fatalf("second ClickCell() error = %v", err)
			}
			want := []int{9, 10, 11, 12, 13}
			got := editor.Selected()
			if len(got) != len(want) {
				t.Fatalf("Selected() = %v, want %v", got, want)
			}
			for i := range want {
				if got[i] != want[i] {
					t.Fatalf("Selected() = %v, want %v", got, want)
				}
			}
			if editor.State() != BatchEditOpen {
				t.Errorf("State() = %d, want BatchEditOpen", editor.State())
			}
			if form := editor.Form(); form.Status != model.StatusFree || form.Activity != "" {
				t.Errorf("batch form = %+v, want fresh free form", form)
			}
		})
	}
}

func TestRangeSelection_SameCellTwice(t *testing.T) {
	editor, _ := newTestEditor(t)

	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(9)
	_ = editor.ClickCell(9)

	if got := editor.Selected(); len(got) != 1 || got[0] != 9 {
		t.Errorf("Selected() = %v, want a single-hour span", got)
	}
	if editor.State() != BatchEditOpen {
		t.Errorf("State() = %d, want BatchEditOpen", editor.State())
	}
}

func TestToggleSlot_AddAndRemove(t *testing.T) {
	editor, _ := newTestEditor(t)

	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(9)
	_ = editor.ClickCell(10)

	// add an hour outside the span, keeping the set sorted
	if err := editor.ToggleSlot(5); err != nil {
		t.Fatalf("ToggleSlot(5) error = %v", err)
	}
	if got := editor.Selected(); len(got) != 3 || got[0] != 5 {
		t.Errorf("Selected() = %v, want [5 9 10]", got)
	}

	// toggling again removes it
	if err := editor.ToggleSlot(5); err != nil {
		t.Fatalf("ToggleSlot(5) again error = %v", err)
	}
	if got := editor.Selected(); len(got) != 2 || got[0] != 9 {
		t.Errorf("Selected() = %v, want [9 10]", got)
	}
}

func TestApplyBatch_WritesEverySelectedSlot(t *testing.T) {
	editor, repo := newTestEditor(t)

	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(9)
	_ = editor.ClickCell(11)

	err := editor.ApplyBatch(context.Background(), SlotForm{
		Status: model.StatusBusy, Activity: "Work meeting",
	})
	if err != nil {
		t.Fatalf("ApplyBatch() error = %v", err)
	}

	for hour := 9; hour <= 11; hour++ {
		stored, ok := repo.slots[repo.key("2025-03-15", model.TimeSlotForHour(hour))]
		if !ok {
			t.Fatalf("hour %d not written", hour)
		}
		if stored.Activity != "Work meeting" {
			t.Errorf("hour %d Activity = %q, want %q", hour, stored.Activity, "Work meeting")
		}
	}
	if editor.State() != Idle {
		t.Errorf("State() = %d after apply, want Idle", editor.State())
	}
	if len(editor.Selected()) != 0 {
		t.Errorf("Selected() = %v after apply, want empty", editor.Selected())
	}
}

func TestApplyBatch_PartialFailure(t *testing.T) {
	editor, repo := newTestEditor(t)

	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(9)
	_ = editor.ClickCell(12)

	repo.failAfter = 2 // hours 9 and 10 land, 11 fails

	err := editor.ApplyBatch(context.Background(), SlotForm{Status: model.StatusBusy, Activity: "Gym"})
	if err == nil {
		t.Fatal("ApplyBatch() should fail")
	}

	var batchErr *BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("error = %T, want *BatchError", err)
	}
	if batchErr.Applied != 2 {
		t.Errorf("Applied = %d, want 2", batchErr.Applied)
	}
	if batchErr.Hour != 11 {
		t.Errorf("Hour = %d, want 11", batchErr.Hour)
	}

	// Written slots stay written — no rollback.
	if _, ok := repo.slots[repo.key("2025-03-15", "09:00:00")]; !ok {
		t.Error("hour 9 should remain written")
	}
	if _, ok := repo.slots[repo.key("2025-03-15", "11:00:00")]; ok {
		t.Error("hour 11 should not have been written")
	}

	// The dialog stays open so the caller can surface the partial result.
	if editor.State() != BatchEditOpen {
		t.Errorf("State() = %d after partial failure, want BatchEditOpen", editor.State())
	}
}

func TestCloseBatch_UnconditionalReset(t *testing.T) {
	editor, _ := newTestEditor(t)

	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(9)
	_ = editor.ClickCell(12)

	editor.CloseBatch()

	if editor.State() != Idle {
		t.Errorf("State() = %d, want Idle", editor.State())
	}
	if len(editor.Selected()) != 0 {
		t.Errorf("Selected() = %v, want empty", editor.Selected())
	}

	// Re-entering range mode starts from scratch — no carried-over start.
	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(3)
	if got := editor.Selected(); len(got) != 1 || got[0] != 3 {
		t.Errorf("after reset, first click Selected() = %v, want [3]", got)
	}
}

func TestCloseBatch_MidSelection(t *testing.T) {
	editor, _ := newTestEditor(t)

	_ = editor.EnterRangeMode()
	_ = editor.ClickCell(9) // only the first click landed

	editor.CloseBatch()

	if editor.State() != Idle {
		t.Errorf("State() = %d, want Idle", editor.State())
	}
	if len(editor.Selected()) != 0 {
		t.Errorf("Selected() = %v, want empty", editor.Selected())
	}
}

func TestCommit_SendsFullDay(t *testing.T) {
	editor, repo := newTestEditor(t)

	if err := editor.BeginEdit(9); err != nil {
		t.Fatalf("BeginEdit() error = %v", err)
	}
	if err := editor.SaveEdit(context.Background(), SlotForm{Status: model.StatusBusy, Activity: "Gym"}); err != nil {
		t.Fatalf("SaveEdit() error = %v", err)
	}

	if err := editor.Commit(context.Background()); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if len(repo.dayCalls) != 1 {
		t.Fatalf("UpsertDay called %d times, want 1", len(repo.dayCalls))
	}
	committed := repo.dayCalls[0]
	if len(committed) != model.HoursPerDay {
		t.Fatalf("committed %d slots, want the full %d even when only one was edited",
			len(committed), model.HoursPerDay)
	}
	if committed[9].Activity != "Gym" {
		t.Errorf("committed hour 9 = %+v, want the edited slot", committed[9])
	}
	if committed[8].Activity != model.DefaultFreeActivity {
		t.Errorf("committed hour 8 = %+v, want the default filler", committed[8])
	}
}

func TestCommit_WithoutLoad(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := service.NewScheduleService(repo, clock.NewFixed(editorNow), testLogger())
	editor := NewSlotEditor(svc)

	if err := editor.Commit(context.Background()); err == nil {
		t.Error("Commit() before Load() should error")
	}
}

func TestBeginEdit_WithoutLoad(t *testing.T) {
	repo := newFakeScheduleRepo()
	svc := service.NewScheduleService(repo, clock.NewFixed(editorNow), testLogger())
	editor := NewSlotEditor(svc)

	if err := editor.BeginEdit(5); err == nil {
		t.Error("BeginEdit() before Load() should error")
	}
	if editor.State() != Idle {
		t.Errorf("State() = %d, want Idle", editor.State())
	}
}
