package model

import "time"

// TodoItem is one task on the owner's to-do list.
//
// The ID is store-assigned. Items start with Completed=false, are mutated
// via toggle, and are listed in creation order.
type TodoItem struct {
	ID        string    `json:"id"        db:"id"`
	Text      string    `json:"text"      db:"text"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
