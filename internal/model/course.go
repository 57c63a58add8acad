package model

import "time"

// Course represents a course (the API calls these "books").
type Course struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateCourseRequest is the payload for POST /books/create/.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	Author      string `json:"author"`
}
