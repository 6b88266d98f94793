// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import (
	"fmt"
	"time"
)

// Status is the stored availability state of one hour.
//
// Only two values exist in the store: "free" and "busy".
// The guest/admin views display these as "available"/"unavailable" — that
// mapping is presentation only and never written back to the database.
type Status string

const (
	StatusFree Status = "free"
	StatusBusy Status = "busy"
)

// Valid reports whether s is one of the two stored status values.
func (s Status) Valid() bool {
	return s == StatusFree || s == StatusBusy
}

// Display converts the stored status to its UI label.
func (s Status) Display() string {
	if s == StatusFree {
		return "available"
	}
	return "unavailable"
}

// Default activity labels applied when a slot is saved without one.
const (
	DefaultFreeActivity = "Available"
	DefaultBusyActivity = "Busy"
)

// HoursPerDay is the fixed size of a daily schedule. A day is always
// presented as exactly 24 slots even when the store holds fewer rows.
const HoursPerDay = 24

// DateLayout is the calendar-date key format used by the API and the store.
const DateLayout = "2006-01-02"

// ScheduleSlot is one hour of one calendar day.
//
// The store key is (Date, TimeSlot) with at most one row per key. Slots are
// never deleted — they are created on first write and overwritten thereafter.
type ScheduleSlot struct {
	Date        string    `json:"date"        db:"date"`      // "2006-01-02"
	TimeSlot    string    `json:"timeSlot"    db:"time_slot"` // "HH:00:00"
	Status      Status    `json:"status"      db:"status"`
	Activity    string    `json:"activity"    db:"activity"`
	Description string    `json:"description" db:"description"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// Hour returns the hour-of-day encoded in the slot's time key.
func (s ScheduleSlot) Hour() (int, error) {
	return ParseTimeSlot(s.TimeSlot)
}

// DefaultSlot returns the slot a day is padded with when the store has no
// row for that hour: free, "Available", empty description.
func DefaultSlot(date string, hour int) ScheduleSlot {
	return ScheduleSlot{
		Date:     date,
		TimeSlot: TimeSlotForHour(hour),
		Status:   StatusFree,
		Activity: DefaultFreeActivity,
	}
}

// TimeSlotForHour formats an hour-of-day as the store's "HH:MM:SS" key.
// Minute and second are fixed at zero; only the hour varies.
func TimeSlotForHour(hour int) string {
	return fmt.Sprintf("%02d:00:00", hour)
}

// DisplayTime truncates a "HH:MM:SS" slot key to the "HH:MM" form shown in
// both consoles.
func DisplayTime(timeSlot string) string {
	if len(timeSlot) >= 5 {
		return timeSlot[:5]
	}
	return timeSlot
}

// ParseTimeSlot extracts the hour from a "HH:MM:SS" slot key.
// It rejects keys whose minute or second is not fixed at "00" and hours
// outside 0–23, so malformed keys never reach the store.
func ParseTimeSlot(timeSlot string) (int, error) {
	var hour, minute, second int
	if _, err := fmt.Sscanf(timeSlot, "%02d:%02d:%02d", &hour, &minute, &second); err != nil {
		return 0, fmt.Errorf("model: invalid time slot %q: %w", timeSlot, err)
	}
	if hour < 0 || hour >= HoursPerDay {
		return 0, fmt.Errorf("model: time slot hour %d out of range", hour)
	}
	if minute != 0 || second != 0 {
		return 0, fmt.Errorf("model: time slot %q must be on the hour", timeSlot)
	}
	return hour, nil
}

// ActivityStat is a derived (label, count) pair from the trailing-30-day
// activity scan. It is recomputed on each request, never stored.
type ActivityStat struct {
	Activity string `json:"activity"`
	Count    int    `json:"count"`
}
