// Package service contains the business logic layer of the application.
//
// The layering follows the usual three-step chain:
//
//	Handler (HTTP)     → parses requests, writes responses
//	Service (business) → validates, applies defaulting rules, orchestrates
//	Repository (data)  → reads/writes the store
//
// Services take repository interfaces, not concrete types, so tests swap in
// in-memory mocks and the store backend (SQLite or the demo fallback) is
// decided once, at wiring time.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/clock"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// StatsWindowDays is the trailing window scanned by ActivityStats:
// today−29 through today, inclusive — 30 calendar days.
const StatsWindowDays = 30

// MaxStats caps the number of (activity, count) pairs returned.
const MaxStats = 10

// ScheduleService is the daily-schedule adapter: it turns sparse store rows
// into complete 24-slot days, applies the activity defaulting rules, and
// computes the activity-frequency stats.
//
// "Today" and all range boundaries come from the injected clock's local
// wall-clock date. This is deliberately approximate — no timezone
// canonicalization is attempted.
type ScheduleService struct {
	repo   repository.ScheduleRepository
	clk    clock.Clock
	logger *slog.Logger
}

func NewScheduleService(repo repository.ScheduleRepository, clk clock.Clock, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		repo:   repo,
		clk:    clk,
		logger: logger,
	}
}

// Today returns the current calendar date as a "2006-01-02" key.
func (s *ScheduleService) Today() string {
	return s.clk.Now().Format(model.DateLayout)
}

// GetDay returns exactly 24 slots for the given date, one per hour 0–23.
//
// The store may hold any subset of the day's rows; hours absent from the
// store are filled with the default {free, "Available", ""}. Store errors
// propagate to the caller — the views log them and keep their previous
// state rather than crashing.
func (s *ScheduleService) GetDay(ctx context.Context, date string) ([]model.ScheduleSlot, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperror.ValidationFailed("date", fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date))
	}

	rows, err := s.repo.SlotsForDate(ctx, date)
	if err != nil {
		s.logger.Error("failed to fetch day",
			slog.String("date", date),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("fetching day %s: %w", date, err)
	}

	// Index stored rows by hour; rows with malformed slot keys are skipped
	// rather than failing the whole day.
	byHour := make(map[int]model.ScheduleSlot, len(rows))
	for _, row := range rows {
		hour, err := row.Hour()
		if err != nil {
			s.logger.Warn("skipping malformed slot row",
				slog.String("date", date),
				slog.String("timeSlot", row.TimeSlot),
			)
			continue
		}
		byHour[hour] = row
	}

	day := make([]model.ScheduleSlot, 0, model.HoursPerDay)
	for hour := 0; hour < model.HoursPerDay; hour++ {
		if slot, ok := byHour[hour]; ok {
			day = append(day, slot)
		} else {
			day = append(day, model.DefaultSlot(date, hour))
		}
	}

	return day, nil
}

// GetToday is GetDay for the clock's current date.
func (s *ScheduleService) GetToday(ctx context.Context) ([]model.ScheduleSlot, error) {
	return s.GetDay(ctx, s.Today())
}

// SaveSlot creates or overwrites one hour of one day.
//
// Activity defaulting is the adapter's rule, stated once here: an empty
// activity becomes "Available" for a free slot and "Busy" for a busy one.
// The write stamps updated_at every time, even for value-wise no-op repeats.
func (s *ScheduleService) SaveSlot(ctx context.Context, date string, hour int, status model.Status, activity, description string) (*model.ScheduleSlot, error) {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return nil, apperror.ValidationFailed("date", fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date))
	}
	if hour < 0 || hour >= model.HoursPerDay {
		return nil, apperror.ValidationFailed("hour", fmt.Sprintf("hour %d out of range 0-23", hour))
	}
	if !status.Valid() {
		return nil, apperror.ValidationFailed("status", fmt.Sprintf("status must be %q or %q", model.StatusFree, model.StatusBusy))
	}

	slot := &model.ScheduleSlot{
		Date:        date,
		TimeSlot:    model.TimeSlotForHour(hour),
		Status:      status,
		Activity:    defaultActivity(status, activity),
		Description: description,
	}

	if err := s.repo.UpsertSlot(ctx, slot); err != nil {
		s.logger.Error("failed to save slot",
			slog.String("date", date),
			slog.String("timeSlot", slot.TimeSlot),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("saving slot %s %s: %w", date, slot.TimeSlot, err)
	}

	s.logger.Info("slot saved",
		slog.String("date", date),
		slog.String("timeSlot", slot.TimeSlot),
		slog.String("status", string(slot.Status)),
		slog.String("activity", slot.Activity),
	)

	return slot, nil
}

// SaveDay bulk-upserts a whole day in one logical operation — the "commit"
// path. Each provided slot is normalised with the same defaulting rule as
// SaveSlot. Partial application on failure is surfaced as a single error;
// no rollback is promised to the caller.
func (s *ScheduleService) SaveDay(ctx context.Context, date string, slots []model.ScheduleSlot) error {
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		return apperror.ValidationFailed("date", fmt.Sprintf("invalid date %q, want YYYY-MM-DD", date))
	}

	normalized := make([]model.ScheduleSlot, 0, len(slots))
	for _, slot := range slots {
		hour, err := slot.Hour()
		if err != nil {
			return apperror.ValidationFailed("timeSlot", fmt.Sprintf("invalid time slot %q", slot.TimeSlot))
		}
		if !slot.Status.Valid() {
			return apperror.ValidationFailed("status", fmt.Sprintf("invalid status %q for %s", slot.Status, slot.TimeSlot))
		}
		normalized = append(normalized, model.ScheduleSlot{
			Date:        date,
			TimeSlot:    model.TimeSlotForHour(hour),
			Status:      slot.Status,
			Activity:    defaultActivity(slot.Status, slot.Activity),
			Description: slot.Description,
		})
	}

	if err := s.repo.UpsertDay(ctx, normalized); err != nil {
		s.logger.Error("failed to save day",
			slog.String("date", date),
			slog.Int("slots", len(normalized)),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("saving day %s: %w", date, err)
	}

	s.logger.Info("day committed",
		slog.String("date", date),
		slog.Int("slots", len(normalized)),
	)

	return nil
}

// ActivityStats scans the trailing 30 days and returns up to 10
// (activity, count) pairs sorted by count descending.
//
// Entries whose activity is exactly "Available" are excluded — default
// filler hours would otherwise dominate every chart. Ties keep first-seen
// order (stable sort), so the result is deterministic for a given input
// order. Recomputed on every call, never cached.
func (s *ScheduleService) ActivityStats(ctx context.Context) ([]model.ActivityStat, error) {
	today := s.clk.Now()
	from := today.AddDate(0, 0, -(StatsWindowDays - 1)).Format(model.DateLayout)
	to := today.Format(model.DateLayout)

	activities, err := s.repo.Activities(ctx, from, to)
	if err != nil {
		s.logger.Error("failed to fetch activity stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetching activities %s..%s: %w", from, to, err)
	}

	counts := make(map[string]int)
	var order []string
	for _, a := range activities {
		if a == model.DefaultFreeActivity {
			// The repository already filters this, but the exclusion is
			// this adapter's contract, so it holds regardless of backend.
			continue
		}
		if _, seen := counts[a]; !seen {
			order = append(order, a)
		}
		counts[a]++
	}

	stats := make([]model.ActivityStat, 0, len(order))
	for _, a := range order {
		stats = append(stats, model.ActivityStat{Activity: a, Count: counts[a]})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Count > stats[j].Count
	})

	if len(stats) > MaxStats {
		stats = stats[:MaxStats]
	}

	return stats, nil
}

// AvailableDates returns the dates that have any stored schedule rows,
// newest first.
func (s *ScheduleService) AvailableDates(ctx context.Context) ([]string, error) {
	dates, err := s.repo.Dates(ctx)
	if err != nil {
		s.logger.Error("failed to fetch dates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetching dates: %w", err)
	}
	return dates, nil
}

// defaultActivity applies the empty-activity rule: "Available" when free,
// "Busy" when busy.
func defaultActivity(status model.Status, activity string) string {
	activity = strings.TrimSpace(activity)
	if activity != "" {
		return activity
	}
	if status == model.StatusBusy {
		return model.DefaultBusyActivity
	}
	return model.DefaultFreeActivity
}
