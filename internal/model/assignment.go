package model

import "time"

// Assignment represents a course assignment.
type Assignment struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date"`
	CreatedAt   time.Time `json:"created_at"`
	IsSubmitted bool      `json:"is_submitted"`
}

// CreateAssignmentRequest is the payload for POST /assignments/create/.
type CreateAssignmentRequest struct {
	Title       string    `json:"title" binding:"required,min=1,max=200"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"due_date" binding:"required"`
}
