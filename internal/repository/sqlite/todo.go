package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Neetko/SCHEDULE-APP/internal/apperror"
	"github.com/Neetko/SCHEDULE-APP/internal/model"
	"github.com/Neetko/SCHEDULE-APP/internal/repository"
)

// compile-time check that *DB implements repository.TodoRepository
var _ repository.TodoRepository = (*DB)(nil)

// List returns all todos in creation order (oldest first).
func (db *DB) List(ctx context.Context) ([]model.TodoItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, text, completed, created_at
		 FROM todos
		 ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.TodoItem, 0)
	for rows.Next() {
		var t model.TodoItem
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning todo row: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating todos: %w", err)
	}

	return todos, nil
}

// Create inserts a new todo. The ID and creation timestamp are assigned
// here; the caller's struct is filled in place (pointer receiver pattern).
// New items always start uncompleted.
func (db *DB) Create(ctx context.Context, todo *model.TodoItem) error {
	todo.ID = xid.New().String()
	todo.Completed = false
	todo.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO todos (id, text, completed, created_at)
		 VALUES (?, ?, ?, ?)`,
		todo.ID,
		todo.Text,
		todo.Completed,
		todo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating todo: %w", err)
	}

	return nil
}

// SetCompleted updates the completed flag of one todo.
// RowsAffected detects "not found" without a separate SELECT.
func (db *DB) SetCompleted(ctx context.Context, id string, completed bool) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE todos SET completed = ? WHERE id = ?`,
		completed, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating todo %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("todo", id)
	}

	return nil
}

// Delete removes a todo by ID.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ?`,
		id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting todo %s: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("todo", id)
	}

	return nil
}
