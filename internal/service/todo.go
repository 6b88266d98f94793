package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// MaxTodoTextLength bounds a single task's text.
const MaxTodoTextLength = 500

// TodoService handles the to-do list business rules. The empty-text check
// lives here, on the calling side — blank items never reach the store.
// No retry policy exists at any layer.
type TodoService struct {
	repo   repository.TodoRepository
	logger *slog.Logger
}

func NewTodoService(repo repository.TodoRepository, logger *slog.Logger) *TodoService {
	return &TodoService{
		repo:   repo,
		logger: logger,
	}
}

// List returns all todos in creation order.
func (s *TodoService) List(ctx context.Context) ([]model.TodoItem, error) {
	todos, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list todos", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

// Add creates a new todo from the trimmed text. Empty text after trimming
// is rejected client-side of the store, as a validation error.
func (s *TodoService) Add(ctx context.Context, text string) (*model.TodoItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperror.ValidationFailed("text", "todo text is required")
	}
	if len(text) > MaxTodoTextLength {
		return nil, apperror.ValidationFailed("text",
			fmt.Sprintf("todo text must be %d characters or less", MaxTodoTextLength))
	}

	todo := &model.TodoItem{Text: text}
	if err := s.repo.Create(ctx, todo); err != nil {
		s.logger.Error("failed to add todo", slog.String("error", err.Error()))
		return nil, fmt.Errorf("adding todo: %w", err)
	}

	s.logger.Info("todo added", slog.String("id", todo.ID))
	return todo, nil
}

// SetCompleted toggles one todo's completed flag.
func (s *TodoService) SetCompleted(ctx context.Context, id string, completed bool) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "todo ID is required")
	}

	if err := s.repo.SetCompleted(ctx, id, completed); err != nil {
		return fmt.Errorf("updating todo %s: %w", id, err)
	}

	s.logger.Info("todo updated", slog.String("id", id), slog.Bool("completed", completed))
	return nil
}

// Delete removes one todo.
func (s *TodoService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "todo ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}

	s.logger.Info("todo deleted", slog.String("id", id))
	return nil
}
