package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/service"
)

// TodoHandler serves the to-do list. Reads are public (the guest console
// shows the list read-only); writes require the owner session.
type TodoHandler struct {
	todos  *service.TodoService
	logger *slog.Logger
}

func NewTodoHandler(todos *service.TodoService, logger *slog.Logger) *TodoHandler {
	return &TodoHandler{
		todos:  todos,
		logger: logger,
	}
}

// HandleList returns all todos in creation order.
//
// HTTP: GET /api/todos
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	todos, err := h.todos.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, todos)
}

type addTodoRequest struct {
	Text string `json:"text"`
}

// HandleAdd creates a todo.
//
// HTTP: POST /api/todos (RequireAuth)
func (h *TodoHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	var req addTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	todo, err := h.todos.Add(r.Context(), req.Text)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, todo)
}

type updateTodoRequest struct {
	Completed bool `json:"completed"`
}

// HandleUpdate sets a todo's completed flag.
//
// HTTP: PATCH /api/todos/{id} (RequireAuth)
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	if err := h.todos.SetCompleted(r.Context(), id, req.Completed); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// HandleDelete removes a todo.
//
// HTTP: DELETE /api/todos/{id} (RequireAuth)
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.todos.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
