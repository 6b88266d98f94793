package console

import (
	"context"
	"log/slog"
	"time"

	"github.com/Neetko/SCHEDULE-APP/internal/clock"
	"github.com/Neetko/SCHEDULE-APP/internal/i18n"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// HistoryWindowDays bounds the history browser: [today−29, today].
const HistoryWindowDays = 30

// GuestView is the read-only public console state: today's grid, the
// collapsible history browser, the activity stats, and the todo display.
//
// Read failures never crash the view — it keeps whatever it showed before,
// or falls back to an empty default day when there is nothing yet. The
// wall-clock tick (current hour) and data refresh (navigation, manual
// refresh) are independent; neither triggers the other.
type GuestView struct {
	schedule *service.ScheduleService
	todos    *service.TodoService
	clk      clock.Clock
	logger   *slog.Logger

	locale      i18n.Locale
	showHistory bool
	historyDate time.Time
	scrolled    bool

	today     []model.ScheduleSlot
	history   []model.ScheduleSlot
	stats     []model.ActivityStat
	todoItems []model.TodoItem
}

// NewGuestView creates a guest view in English with history collapsed and
// the history cursor on today.
func NewGuestView(schedule *service.ScheduleService, todos *service.TodoService, clk clock.Clock, logger *slog.Logger) *GuestView {
	return &GuestView{
		schedule:    schedule,
		todos:       todos,
		clk:         clk,
		logger:      logger,
		locale:      i18n.English,
		historyDate: clk.Now(),
	}
}

// Load fetches today's schedule, the stats, and the todos. Each fetch fails
// independently: an error is logged, the previous data (or the empty
// default day) stays on screen, and the view remains interactive.
func (g *GuestView) Load(ctx context.Context) {
	today, err := g.schedule.GetToday(ctx)
	if err != nil {
		g.logger.Error("guest: loading today failed", slog.String("error", err.Error()))
		if g.today == nil {
			g.today = defaultDay(g.schedule.Today())
		}
	} else {
		g.today = today
	}

	stats, err := g.schedule.ActivityStats(ctx)
	if err != nil {
		g.logger.Error("guest: loading stats failed", slog.String("error", err.Error()))
	} else {
		g.stats = stats
	}

	items, err := g.todos.List(ctx)
	if err != nil {
		g.logger.Error("guest: loading todos failed", slog.String("error", err.Error()))
	} else {
		g.todoItems = items
	}
}

// Refresh is an explicit manual reload: today plus, when the history
// browser is open, the selected historical day.
func (g *GuestView) Refresh(ctx context.Context) {
	g.Load(ctx)
	if g.showHistory {
		g.loadHistory(ctx)
	}
}

// Today returns the 24 slots currently displayed for today.
func (g *GuestView) Today() []model.ScheduleSlot {
	out := make([]model.ScheduleSlot, len(g.today))
	copy(out, g.today)
	return out
}

// Stats returns the displayed activity stats.
func (g *GuestView) Stats() []model.ActivityStat {
	out := make([]model.ActivityStat, len(g.stats))
	copy(out, g.stats)
	return out
}

// Todos returns the displayed todo items.
func (g *GuestView) Todos() []model.TodoItem {
	out := make([]model.TodoItem, len(g.todoItems))
	copy(out, g.todoItems)
	return out
}

// CurrentHourSlot returns the "HH:00:00" key for the wall-clock hour — the
// grid row to highlight.
func (g *GuestView) CurrentHourSlot() string {
	return model.TimeSlotForHour(g.clk.Now().Hour())
}

// ShouldAutoScroll reports whether the grid should scroll the current hour
// into view. It returns true exactly once per page load — data refreshes
// must not re-trigger the scroll.
func (g *GuestView) ShouldAutoScroll() bool {
	if g.scrolled {
		return false
	}
	g.scrolled = true
	return true
}

// OpenHistory expands the history browser at its current date and loads it.
func (g *GuestView) OpenHistory(ctx context.Context) {
	g.showHistory = true
	g.loadHistory(ctx)
}

// CloseHistory collapses the history browser. The cursor date is kept.
func (g *GuestView) CloseHistory() {
	g.showHistory = false
}

// HistoryOpen reports whether the history browser is expanded.
func (g *GuestView) HistoryOpen() bool { return g.showHistory }

// HistoryDate returns the date the history browser is showing.
func (g *GuestView) HistoryDate() string {
	return g.historyDate.Format(model.DateLayout)
}

// History returns the 24 slots of the selected historical day.
func (g *GuestView) History() []model.ScheduleSlot {
	out := make([]model.ScheduleSlot, len(g.history))
	copy(out, g.history)
	return out
}

// HistoryPrev steps the history browser one day back. Past the lower bound
// (today−29) the call is a silent no-op: the date stays unchanged and
// nothing is fetched.
func (g *GuestView) HistoryPrev(ctx context.Context) {
	g.navigateHistory(ctx, -1)
}

// HistoryNext steps one day forward, bounded by today. Also a silent no-op
// at the bound.
func (g *GuestView) HistoryNext(ctx context.Context) {
	g.navigateHistory(ctx, +1)
}

func (g *GuestView) navigateHistory(ctx context.Context, days int) {
	candidate := g.historyDate.AddDate(0, 0, days)

	today := g.clk.Now()
	lower := today.AddDate(0, 0, -(HistoryWindowDays - 1))

	// Compare at date granularity; the bounds are wall-clock dates, not
	// instants.
	if dateAfter(candidate, today) || dateBefore(candidate, lower) {
		return
	}

	g.historyDate = candidate
	if g.showHistory {
		g.loadHistory(ctx)
	}
}

func (g *GuestView) loadHistory(ctx context.Context) {
	day, err := g.schedule.GetDay(ctx, g.HistoryDate())
	if err != nil {
		g.logger.Error("guest: loading history failed",
			slog.String("date", g.HistoryDate()),
			slog.String("error", err.Error()),
		)
		if g.history == nil {
			g.history = defaultDay(g.HistoryDate())
		}
		return
	}
	g.history = day
}

// Locale returns the active display locale.
func (g *GuestView) Locale() i18n.Locale { return g.locale }

// ToggleLocale swaps between the two display languages. It affects
// rendering only; no data is refetched and nothing stored changes.
func (g *GuestView) ToggleLocale() i18n.Locale {
	g.locale = g.locale.Toggle()
	return g.locale
}

// T renders one display string in the active locale.
func (g *GuestView) T(key string) string {
	return i18n.T(g.locale, key)
}

func defaultDay(date string) []model.ScheduleSlot {
	day := make([]model.ScheduleSlot, 0, model.HoursPerDay)
	for hour := 0; hour < model.HoursPerDay; hour++ {
		day = append(day, model.DefaultSlot(date, hour))
	}
	return day
}

func dateAfter(a, b time.Time) bool {
	return a.Format(model.DateLayout) > b.Format(model.DateLayout)
}

func dateBefore(a, b time.Time) bool {
	return a.Format(model.DateLayout) < b.Format(model.DateLayout)
}
