package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/clock"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// ScheduleHandler serves the schedule API for both consoles.
//
// Public reads: today's grid, a specific date, the activity stats, the
// dates that have data. Owner writes (behind RequireAuth): one slot, or
// the full-day commit.
type ScheduleHandler struct {
	schedule *service.ScheduleService
	clk      clock.Clock
	logger   *slog.Logger
}

func NewScheduleHandler(schedule *service.ScheduleService, clk clock.Clock, logger *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		schedule: schedule,
		clk:      clk,
		logger:   logger,
	}
}

// slotResponse is a ScheduleSlot plus its presentation fields: the
// truncated "HH:MM" time and the available/unavailable display label.
// The mapping happens here, at the edge — never in the store.
type slotResponse struct {
	model.ScheduleSlot
	Time          string `json:"time"`
	DisplayStatus string `json:"displayStatus"`
}

func toSlotResponses(slots []model.ScheduleSlot) []slotResponse {
	out := make([]slotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotResponse{
			ScheduleSlot:  s,
			Time:          model.DisplayTime(s.TimeSlot),
			DisplayStatus: s.Status.Display(),
		})
	}
	return out
}

// dayResponse is a full 24-slot day.
type dayResponse struct {
	Date  string         `json:"date"`
	Slots []slotResponse `json:"slots"`
	// CurrentSlot is set only on the today view: the "HH:00:00" row the
	// guest grid highlights.
	CurrentSlot string `json:"currentSlot,omitempty"`
}

// HandleToday returns today's 24 slots with the current-hour marker.
//
// HTTP: GET /api/schedule/today
func (h *ScheduleHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	slots, err := h.schedule.GetToday(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dayResponse{
		Date:        h.schedule.Today(),
		Slots:       toSlotResponses(slots),
		CurrentSlot: model.TimeSlotForHour(h.clk.Now().Hour()),
	})
}

// HandleGetDay returns the 24 slots of one date.
//
// HTTP: GET /api/schedule/{date}
func (h *ScheduleHandler) HandleGetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	slots, err := h.schedule.GetDay(r.Context(), date)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dayResponse{
		Date:  date,
		Slots: toSlotResponses(slots),
	})
}

// saveSlotRequest is the body of a single-slot save.
type saveSlotRequest struct {
	Status      model.Status `json:"status"`
	Activity    string       `json:"activity"`
	Description string       `json:"description"`
}

// HandleSaveSlot creates or overwrites one hour of one date.
//
// HTTP: PUT /api/schedule/{date}/slots/{hour} (RequireAuth)
func (h *ScheduleHandler) HandleSaveSlot(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	hour, err := strconv.Atoi(chi.URLParam(r, "hour"))
	if err != nil {
		writeError(w, apperror.ValidationFailed("hour", "hour must be a number between 0 and 23"))
		return
	}

	var req saveSlotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	slot, err := h.schedule.SaveSlot(r.Context(), date, hour, req.Status, req.Activity, req.Description)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, slotResponse{
		ScheduleSlot:  *slot,
		Time:          model.DisplayTime(slot.TimeSlot),
		DisplayStatus: slot.Status.Display(),
	})
}

// commitRequest is the body of a full-day commit: the entire working day
// as currently displayed, edited or not.
type commitRequest struct {
	Slots []struct {
		TimeSlot    string       `json:"timeSlot"`
		Status      model.Status `json:"status"`
		Activity    string       `json:"activity"`
		Description string       `json:"description"`
	} `json:"slots"`
}

// HandleCommitDay bulk-upserts a whole day in one call.
//
// HTTP: PUT /api/schedule/{date} (RequireAuth)
func (h *ScheduleHandler) HandleCommitDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")

	var req commitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	slots := make([]model.ScheduleSlot, 0, len(req.Slots))
	for _, s := range req.Slots {
		slots = append(slots, model.ScheduleSlot{
			Date:        date,
			TimeSlot:    s.TimeSlot,
			Status:      s.Status,
			Activity:    s.Activity,
			Description: s.Description,
		})
	}

	if err := h.schedule.SaveDay(r.Context(), date, slots); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"date":  date,
		"slots": len(slots),
	})
}

// HandleStats returns the trailing-30-day activity counts, top 10.
//
// HTTP: GET /api/schedule/stats
func (h *ScheduleHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.schedule.ActivityStats(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// HandleDates returns the dates that have schedule data, newest first.
//
// HTTP: GET /api/schedule/dates
func (h *ScheduleHandler) HandleDates(w http.ResponseWriter, r *http.Request) {
	dates, err := h.schedule.AvailableDates(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dates)
}
