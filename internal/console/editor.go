// Package console models the state of the two views — the owner's slot
// editor and the guest display — as plain Go types over the services.
//
// Rendering (markup, styling, dialogs) is an external concern; what lives
// here is the state machine behind it: which dialog is open, which hours
// are selected, what the working copy of the day looks like, and how edits
// reach the store.
package console

import (
	"context"
	"fmt"
	"sort"

	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// EditorState enumerates the slot editor's dialog states.
//
// Two independent flows share Idle:
//
//	Idle → SingleEditOpen(hour) → Idle            (save or cancel)
//	Idle → RangeSelecting → BatchEditOpen → Idle  (apply, cancel, or modal close)
//
// There is no intermediate "range chosen" state: the second click computes
// the span and opens the batch form in the same step.
type EditorState int

const (
	Idle EditorState = iota
	SingleEditOpen
	RangeSelecting
	BatchEditOpen
)

// SlotForm is the edit dialog's form state, shared by the single-slot and
// batch dialogs.
type SlotForm struct {
	Status      model.Status
	Activity    string
	Description string
}

// BatchError reports a batch apply that failed partway. Slots already
// written remain written — there is no rollback — so the error carries how
// many saves landed before the failure.
type BatchError struct {
	Applied int // slots successfully written before the failure
	Hour    int // hour whose save failed
	Err     error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch edit failed at %s after %d slots: %v",
		model.TimeSlotForHour(e.Hour), e.Applied, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// SlotEditor is the owner console's working state: the currently displayed
// date, its in-memory 24-slot copy, and the dialog state machine.
//
// Persistence is dual-path on purpose: every single-slot or batch save hits
// the store immediately, and "Commit" re-sends the full working day as one
// bulk upsert regardless of what was already saved.
//
// The editor assumes the single-user editing model — one owner, no
// concurrent editors, last write wins at the store.
type SlotEditor struct {
	schedule *service.ScheduleService

	date  string
	day   []model.ScheduleSlot
	state EditorState

	// single edit
	editHour int
	form     SlotForm

	// range / batch selection. rangeStart is -1 while no first click has
	// landed. selected holds hour indices, kept sorted.
	rangeStart int
	selected   []int
}

// NewSlotEditor creates an editor with no date loaded.
func NewSlotEditor(schedule *service.ScheduleService) *SlotEditor {
	return &SlotEditor{
		schedule:   schedule,
		state:      Idle,
		editHour:   -1,
		rangeStart: -1,
	}
}

// Load fetches the given date into the working copy and resets all dialog
// state. Navigation always refetches; there is no cache.
func (e *SlotEditor) Load(ctx context.Context, date string) error {
	day, err := e.schedule.GetDay(ctx, date)
	if err != nil {
		return err
	}
	e.date = date
	e.day = day
	e.reset()
	return nil
}

// Date returns the currently displayed date ("" before the first Load).
func (e *SlotEditor) Date() string { return e.date }

// State returns the current dialog state.
func (e *SlotEditor) State() EditorState { return e.state }

// Day returns a copy of the 24-slot working day.
func (e *SlotEditor) Day() []model.ScheduleSlot {
	out := make([]model.ScheduleSlot, len(e.day))
	copy(out, e.day)
	return out
}

// Form returns the current dialog form state.
func (e *SlotEditor) Form() SlotForm { return e.form }

// Selected returns the currently selected hours, ascending.
func (e *SlotEditor) Selected() []int {
	out := make([]int, len(e.selected))
	copy(out, e.selected)
	return out
}

// BeginEdit opens the single-slot dialog for one hour.
//
// The form seeds the hour's current status and description, but the
// activity field starts blank every time — activity is always re-entered,
// never pre-filled. That is a deliberate product choice.
func (e *SlotEditor) BeginEdit(hour int) error {
	if e.date == "" {
		return fmt.Errorf("console: no day loaded")
	}
	if e.state != Idle {
		return fmt.Errorf("console: cannot open edit dialog in state %d", e.state)
	}
	if hour < 0 || hour >= model.HoursPerDay {
		return fmt.Errorf("console: hour %d out of range", hour)
	}

	slot := e.day[hour]
	e.state = SingleEditOpen
	e.editHour = hour
	e.form = SlotForm{
		Status:      slot.Status,
		Activity:    "",
		Description: slot.Description,
	}
	return nil
}

// SaveEdit persists the single-slot form immediately and closes the dialog.
// On store failure the dialog stays open so the owner can retry or cancel.
func (e *SlotEditor) SaveEdit(ctx context.Context, form SlotForm) error {
	if e.state != SingleEditOpen {
		return fmt.Errorf("console: no edit dialog open")
	}

	saved, err := e.schedule.SaveSlot(ctx, e.date, e.editHour, form.Status, form.Activity, form.Description)
	if err != nil {
		return err
	}

	e.day[e.editHour] = *saved
	e.state = Idle
	e.editHour = -1
	e.form = SlotForm{}
	return nil
}

// CancelEdit closes the single-slot dialog, discarding the form.
func (e *SlotEditor) CancelEdit() {
	if e.state != SingleEditOpen {
		return
	}
	e.state = Idle
	e.editHour = -1
	e.form = SlotForm{}
}

// EnterRangeMode arms range selection. The next two grid clicks define the
// span.
func (e *SlotEditor) EnterRangeMode() error {
	if e.state != Idle {
		return fmt.Errorf("console: cannot enter range mode in state %d", e.state)
	}
	e.state = RangeSelecting
	e.rangeStart = -1
	e.selected = nil
	return nil
}

// ClickCell handles a grid click while in range mode.
//
// The first click sets and highlights the range start. The second click
// selects every hour in the inclusive span between the two clicks — order
// independent, so clicking a cell before the start is legal and swaps the
// effective bounds — and opens the batch dialog.
func (e *SlotEditor) ClickCell(hour int) error {
	if e.state != RangeSelecting {
		return fmt.Errorf("console: not in range selection mode")
	}
	if hour < 0 || hour >= model.HoursPerDay {
		return fmt.Errorf("console: hour %d out of range", hour)
	}

	if e.rangeStart < 0 {
		e.rangeStart = hour
		e.selected = []int{hour}
		return nil
	}

	from, to := e.rangeStart, hour
	if from > to {
		from, to = to, from
	}
	e.selected = e.selected[:0]
	for h := from; h <= to; h++ {
		e.selected = append(e.selected, h)
	}
	e.state = BatchEditOpen
	e.form = SlotForm{Status: model.StatusFree}
	return nil
}

// ToggleSlot is the legacy multi-select: it adds or removes a single hour
// from the batch selection while the batch dialog is open. It coexists
// with the range flow; the two share the same selection set.
func (e *SlotEditor) ToggleSlot(hour int) error {
	if e.state != BatchEditOpen {
		return fmt.Errorf("console: batch dialog is not open")
	}
	if hour < 0 || hour >= model.HoursPerDay {
		return fmt.Errorf("console: hour %d out of range", hour)
	}

	for i, h := range e.selected {
		if h == hour {
			e.selected = append(e.selected[:i], e.selected[i+1:]...)
			return nil
		}
	}
	e.selected = append(e.selected, hour)
	sort.Ints(e.selected)
	return nil
}

// ApplyBatch writes the same form to every selected slot, one SaveSlot per
// hour in ascending order — the legacy path, not a bulk call.
//
// A failure partway returns a *BatchError naming how many slots were
// already written; those stay written. On failure the dialog stays open so
// the caller can surface the partial result; any close path afterwards
// still resets the selection.
func (e *SlotEditor) ApplyBatch(ctx context.Context, form SlotForm) error {
	if e.state != BatchEditOpen {
		return fmt.Errorf("console: batch dialog is not open")
	}
	if len(e.selected) == 0 {
		return fmt.Errorf("console: no slots selected")
	}

	applied := 0
	for _, hour := range e.selected {
		saved, err := e.schedule.SaveSlot(ctx, e.date, hour, form.Status, form.Activity, form.Description)
		if err != nil {
			return &BatchError{Applied: applied, Hour: hour, Err: err}
		}
		e.day[hour] = *saved
		applied++
	}

	e.CloseBatch()
	return nil
}

// CloseBatch exits the batch dialog by any path — apply, explicit cancel,
// or outside-click dismissal — and unconditionally resets all range state
// with no partial carry-over.
func (e *SlotEditor) CloseBatch() {
	if e.state != BatchEditOpen && e.state != RangeSelecting {
		return
	}
	e.reset()
}

// Commit serializes the entire currently-displayed 24-slot day — edited or
// not — and bulk-upserts it in one call. Per-slot saves have already been
// persisted individually; commit re-sends the full day regardless, as a
// batch safety net.
func (e *SlotEditor) Commit(ctx context.Context) error {
	if e.date == "" {
		return fmt.Errorf("console: no day loaded")
	}
	return e.schedule.SaveDay(ctx, e.date, e.Day())
}

func (e *SlotEditor) reset() {
	e.state = Idle
	e.editHour = -1
	e.rangeStart = -1
	e.selected = nil
	e.form = SlotForm{}
}
