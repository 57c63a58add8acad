// Package fixture holds the static demo dataset substituted for live API
// responses in development and offline mode.
package fixture

import (
	"time"

	"github.com/themirmakhmudov/lms-cli/internal/model"
)

// DemoToken is the sentinel bearer token persisted for demo sessions.
const DemoToken = "demo-token"

// AuthToken is the token carried by the canned login/register responses.
const AuthToken = "mock_jwt_token_12345"

// DemoUser is the fixture profile record.
var DemoUser = model.User{
	ID:        "1",
	Username:  "demo_user",
	Email:     "demo@example.com",
	FirstName: "Demo",
	LastName:  "User",
}

// Courses is the fixture course list.
var Courses = []model.Course{
	{
		ID:          "1",
		Title:       "Introduction to Web Development",
		Description: "Learn the fundamentals of web development with HTML, CSS, and JavaScript",
		Author:      "John Smith",
		CreatedAt:   at("2024-01-15T10:00:00Z"),
	},
	{
		ID:          "2",
		Title:       "Advanced React Concepts",
		Description: "Master advanced React patterns and best practices",
		Author:      "Jane Doe",
		CreatedAt:   at("2024-01-20T14:30:00Z"),
	},
	{
		ID:          "3",
		Title:       "Database Design Principles",
		Description: "Learn how to design efficient and scalable databases",
		Author:      "Mike Johnson",
		CreatedAt:   at("2024-01-25T09:15:00Z"),
	},
}

// Assignments is the fixture assignment list.
var Assignments = []model.Assignment{
	{
		ID:          "1",
		Title:       "Build a Portfolio Website",
		Description: "Create a personal portfolio website using HTML, CSS, and JavaScript",
		DueDate:     at("2024-02-15T23:59:59Z"),
		CreatedAt:   at("2024-01-30T10:00:00Z"),
		IsSubmitted: false,
	},
	{
		ID:          "2",
		Title:       "React Component Library",
		Description: "Develop a reusable component library with React and TypeScript",
		DueDate:     at("2024-02-20T23:59:59Z"),
		CreatedAt:   at("2024-02-01T11:00:00Z"),
		IsSubmitted: true,
	},
	{
		ID:          "3",
		Title:       "Database Schema Design",
		Description: "Design a database schema for an e-commerce application",
		DueDate:     at("2024-02-25T23:59:59Z"),
		CreatedAt:   at("2024-02-05T15:30:00Z"),
		IsSubmitted: false,
	},
}

// Grades is the fixture grade list.
var Grades = []model.Grade{
	{
		ID: "1",
		Assignment: model.GradeAssignment{
			ID:      "2",
			Title:   "React Component Library",
			DueDate: at("2024-02-20T23:59:59Z"),
		},
		Grade:    92,
		Feedback: "Excellent work! Your components are well-structured and documented.",
		GradedAt: at("2024-02-21T10:00:00Z"),
	},
	{
		ID: "2",
		Assignment: model.GradeAssignment{
			ID:      "1",
			Title:   "Build a Portfolio Website",
			DueDate: at("2024-02-15T23:59:59Z"),
		},
		Grade:    88,
		Feedback: "Good job! Consider improving the responsive design.",
		GradedAt: at("2024-02-16T14:30:00Z"),
	},
}

// CalendarEvents is the fixture calendar list.
var CalendarEvents = []model.CalendarEvent{
	{
		ID:          "1",
		Title:       "Web Development Workshop",
		Description: "Hands-on workshop covering modern web development techniques",
		StartDate:   at("2024-02-10T14:00:00Z"),
		EndDate:     at("2024-02-10T16:00:00Z"),
		CreatedAt:   at("2024-01-25T10:00:00Z"),
	},
	{
		ID:          "2",
		Title:       "React Study Group",
		Description: "Weekly study group for React developers",
		StartDate:   at("2024-02-12T18:00:00Z"),
		EndDate:     at("2024-02-12T19:30:00Z"),
		CreatedAt:   at("2024-01-28T12:00:00Z"),
	},
	{
		ID:          "3",
		Title:       "Database Design Lecture",
		Description: "Advanced database design concepts and best practices",
		StartDate:   at("2024-02-15T10:00:00Z"),
		EndDate:     at("2024-02-15T11:30:00Z"),
		CreatedAt:   at("2024-02-01T09:00:00Z"),
	},
}

// LoginResponse returns the canned successful login response.
func LoginResponse() model.AuthResponse {
	u := DemoUser
	return model.AuthResponse{Token: AuthToken, User: &u}
}

// RegisterResponse returns the canned registration response with the
// submitted identity fields overlaid on the demo user.
func RegisterResponse(req model.RegisterRequest) model.AuthResponse {
	u := DemoUser
	u.Username = req.Username
	u.Email = req.Email
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}
	return model.AuthResponse{Token: AuthToken, User: &u}
}

// CourseByID returns the fixture course with the given id, or the first
// course when no id matches.
func CourseByID(id string) model.Course {
	for _, c := range Courses {
		if c.ID == id {
			return c
		}
	}
	return Courses[0]
}

// AssignmentByID returns the fixture assignment with the given id, or the
// first assignment when no id matches.
func AssignmentByID(id string) model.Assignment {
	for _, a := range Assignments {
		if a.ID == id {
			return a
		}
	}
	return Assignments[0]
}

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}
