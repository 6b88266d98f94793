package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// Compile-time check that *DB implements repository.ScheduleRepository.
var _ repository.ScheduleRepository = (*DB)(nil)

// SlotsForDate returns the stored rows for one calendar date, ordered by
// time slot. A day with no rows returns an empty slice, not an error — the
// service layer pads the missing hours with the free/"Available" default.
func (db *DB) SlotsForDate(ctx context.Context, date string) ([]model.ScheduleSlot, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT date, time_slot, status, activity, description, updated_at
		 FROM schedules
		 WHERE date = ?
		 ORDER BY time_slot`,
		date,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying slots for %s: %w", date, err)
	}
	defer rows.Close()

	slots := make([]model.ScheduleSlot, 0, model.HoursPerDay)
	for rows.Next() {
		var s model.ScheduleSlot
		if err := rows.Scan(
			&s.Date, &s.TimeSlot, &s.Status, &s.Activity,
			&s.Description, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning schedule row: %w", err)
		}
		slots = append(slots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating slots for %s: %w", date, err)
	}

	return slots, nil
}

// UpsertSlot creates or overwrites one row keyed by (date, time_slot).
//
// INSERT ... ON CONFLICT DO UPDATE is SQLite's native upsert. updated_at is
// stamped on every call, including value-wise no-op repeats — the operation
// is idempotent value-wise, not timestamp-wise.
func (db *DB) UpsertSlot(ctx context.Context, slot *model.ScheduleSlot) error {
	slot.UpdatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO schedules (date, time_slot, status, activity, description, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (date, time_slot) DO UPDATE SET
			status      = excluded.status,
			activity    = excluded.activity,
			description = excluded.description,
			updated_at  = excluded.updated_at`,
		slot.Date,
		slot.TimeSlot,
		slot.Status,
		slot.Activity,
		slot.Description,
		slot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting slot %s %s: %w", slot.Date, slot.TimeSlot, err)
	}

	return nil
}

// UpsertDay bulk-upserts all provided slots inside one transaction, so the
// whole day lands as a single logical write. A failure rolls the
// transaction back and is surfaced as one error.
func (db *DB) UpsertDay(ctx context.Context, slots []model.ScheduleSlot) error {
	if len(slots) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning day upsert: %w", err)
	}
	// Rollback after Commit is a no-op, so the defer covers every early return.
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO schedules (date, time_slot, status, activity, description, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (date, time_slot) DO UPDATE SET
			status      = excluded.status,
			activity    = excluded.activity,
			description = excluded.description,
			updated_at  = excluded.updated_at`,
	)
	if err != nil {
		return fmt.Errorf("sqlite: preparing day upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for i := range slots {
		slots[i].UpdatedAt = now
		if _, err := stmt.ExecContext(ctx,
			slots[i].Date,
			slots[i].TimeSlot,
			slots[i].Status,
			slots[i].Activity,
			slots[i].Description,
			slots[i].UpdatedAt,
		); err != nil {
			return fmt.Errorf("sqlite: upserting slot %s %s: %w", slots[i].Date, slots[i].TimeSlot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing day upsert: %w", err)
	}

	return nil
}

// Activities returns the activity column of every row in the inclusive
// [from, to] date range whose activity is not exactly "Available". Grouping
// and ranking happen in the service layer; the query mirrors what the view
// needs and nothing more.
func (db *DB) Activities(ctx context.Context, from, to string) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT activity FROM schedules
		 WHERE date >= ? AND date <= ? AND activity != ?`,
		from, to, model.DefaultFreeActivity,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying activities %s..%s: %w", from, to, err)
	}
	defer rows.Close()

	var activities []string
	for rows.Next() {
		var a string
		if err := rows.Scan(&a); err != nil {
			return nil, fmt.Errorf("sqlite: scanning activity row: %w", err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating activities: %w", err)
	}

	return activities, nil
}

// Dates returns the distinct dates that have any schedule rows, newest first.
func (db *DB) Dates(ctx context.Context) ([]string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT DISTINCT date FROM schedules ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: querying dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("sqlite: scanning date row: %w", err)
		}
		dates = append(dates, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating dates: %w", err)
	}

	return dates, nil
}
