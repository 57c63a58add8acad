package model

import "time"

// GradeAssignment is the assignment summary embedded in a grade record.
type GradeAssignment struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"due_date"`
}

// Grade represents a graded submission for the current student.
type Grade struct {
	ID         string          `json:"id"`
	Assignment GradeAssignment `json:"assignment"`
	Grade      int             `json:"grade"`
	Feedback   string          `json:"feedback"`
	GradedAt   time.Time       `json:"graded_at"`
}
