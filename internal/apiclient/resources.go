package apiclient

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/model"
)

// ─── Session mutations ──────────────────────────────────────────────────────

// Login exchanges credentials for an auth response. In fixture mode a failed
// live call yields the canned login response instead of an error.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/login/", req, &out)
	if err == nil {
		return out, nil
	}
	if c.mutationPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API login failed, using fixture response")
		return fixture.LoginResponse(), nil
	}
	return model.AuthResponse{}, err
}

// Register creates an account. In fixture mode a failed live call yields a
// canned response carrying the submitted identity fields.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	var out model.AuthResponse
	err := c.do(ctx, http.MethodPost, "/register/", req, &out)
	if err == nil {
		return out, nil
	}
	if c.mutationPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API registration failed, using fixture response")
		return fixture.RegisterResponse(req), nil
	}
	return model.AuthResponse{}, err
}

// ─── Profile ────────────────────────────────────────────────────────────────

// FetchProfile retrieves the authenticated user's profile. Strict mode
// propagates the failure; fixture mode substitutes the demo user.
func (c *Client) FetchProfile(ctx context.Context) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodGet, "/user/profile/", nil, &out)
	if err == nil {
		return out, nil
	}
	if c.readRecordPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API profile fetch failed, using fixture data")
		return fixture.DemoUser, nil
	}
	return model.User{}, err
}

// UpdateProfile applies a partial profile update. Fixture mode overlays the
// update on the demo user.
func (c *Client) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (model.User, error) {
	var out model.User
	err := c.do(ctx, http.MethodPut, "/user/profile/update/v2/", upd, &out)
	if err == nil {
		return out, nil
	}
	if c.mutationPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API profile update failed, using fixture data")
		u := fixture.DemoUser
		if upd.Username != "" {
			u.Username = upd.Username
		}
		if upd.Email != "" {
			u.Email = upd.Email
		}
		if upd.FirstName != "" {
			u.FirstName = upd.FirstName
		}
		if upd.LastName != "" {
			u.LastName = upd.LastName
		}
		return u, nil
	}
	return model.User{}, err
}

// ─── Courses ────────────────────────────────────────────────────────────────

// ListCourses retrieves the course list. Fixture mode substitutes the
// fixture list on failure; strict mode degrades to an empty list.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var out []model.Course
	err := c.do(ctx, http.MethodGet, "/books/", nil, &out)
	if err == nil {
		return out, nil
	}
	switch c.readListPolicy() {
	case FallbackFixture:
		c.log.Warn().Err(err).Msg("API courses fetch failed, using fixture data")
		return append([]model.Course(nil), fixture.Courses...), nil
	default:
		c.log.Warn().Err(err).Msg("API courses fetch failed")
		return []model.Course{}, nil
	}
}

// GetCourse retrieves a single course by id.
func (c *Client) GetCourse(ctx context.Context, id string) (model.Course, error) {
	var out model.Course
	err := c.do(ctx, http.MethodGet, "/books/"+id+"/", nil, &out)
	if err == nil {
		return out, nil
	}
	if c.readRecordPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Str("id", id).Msg("API course fetch failed, using fixture data")
		return fixture.CourseByID(id), nil
	}
	return model.Course{}, err
}

// CreateCourse creates a course. Fixture mode synthesizes the created record
// from the payload with a time-derived id.
func (c *Client) CreateCourse(ctx context.Context, req model.CreateCourseRequest) (model.Course, error) {
	var out model.Course
	err := c.do(ctx, http.MethodPost, "/books/create/", req, &out)
	if err == nil {
		return out, nil
	}
	if c.mutationPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API course create failed, synthesizing record")
		return model.Course{
			ID:          syntheticID(),
			Title:       req.Title,
			Description: req.Description,
			Author:      req.Author,
			CreatedAt:   time.Now().UTC(),
		}, nil
	}
	return model.Course{}, err
}

// ─── Assignments ────────────────────────────────────────────────────────────

// ListAssignments retrieves the assignment list.
func (c *Client) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	var out []model.Assignment
	err := c.do(ctx, http.MethodGet, "/assignments/", nil, &out)
	if err == nil {
		return out, nil
	}
	switch c.readListPolicy() {
	case FallbackFixture:
		c.log.Warn().Err(err).Msg("API assignments fetch failed, using fixture data")
		return append([]model.Assignment(nil), fixture.Assignments...), nil
	default:
		c.log.Warn().Err(err).Msg("API assignments fetch failed")
		return []model.Assignment{}, nil
	}
}

// GetAssignment retrieves a single assignment by id.
func (c *Client) GetAssignment(ctx context.Context, id string) (model.Assignment, error) {
	var out model.Assignment
	err := c.do(ctx, http.MethodGet, "/assignments/"+id+"/", nil, &out)
	if err == nil {
		return out, nil
	}
	if c.readRecordPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Str("id", id).Msg("API assignment fetch failed, using fixture data")
		return fixture.AssignmentByID(id), nil
	}
	return model.Assignment{}, err
}

// CreateAssignment creates an assignment.
func (c *Client) CreateAssignment(ctx context.Context, req model.CreateAssignmentRequest) (model.Assignment, error) {
	var out model.Assignment
	err := c.do(ctx, http.MethodPost, "/assignments/create/", req, &out)
	if err == nil {
		return out, nil
	}
	if c.mutationPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API assignment create failed, synthesizing record")
		return model.Assignment{
			ID:          syntheticID(),
			Title:       req.Title,
			Description: req.Description,
			DueDate:     req.DueDate,
			CreatedAt:   time.Now().UTC(),
		}, nil
	}
	return model.Assignment{}, err
}

// ─── Grades ─────────────────────────────────────────────────────────────────

// ListGrades retrieves the current student's grades.
func (c *Client) ListGrades(ctx context.Context) ([]model.Grade, error) {
	var out []model.Grade
	err := c.do(ctx, http.MethodGet, "/grades/my/", nil, &out)
	if err == nil {
		return out, nil
	}
	switch c.readListPolicy() {
	case FallbackFixture:
		c.log.Warn().Err(err).Msg("API grades fetch failed, using fixture data")
		return append([]model.Grade(nil), fixture.Grades...), nil
	default:
		c.log.Warn().Err(err).Msg("API grades fetch failed")
		return []model.Grade{}, nil
	}
}

// ─── Calendar ───────────────────────────────────────────────────────────────

// ListCalendar retrieves the calendar events.
func (c *Client) ListCalendar(ctx context.Context) ([]model.CalendarEvent, error) {
	var out []model.CalendarEvent
	err := c.do(ctx, http.MethodGet, "/calendar/", nil, &out)
	if err == nil {
		return out, nil
	}
	switch c.readListPolicy() {
	case FallbackFixture:
		c.log.Warn().Err(err).Msg("API calendar fetch failed, using fixture data")
		return append([]model.CalendarEvent(nil), fixture.CalendarEvents...), nil
	default:
		c.log.Warn().Err(err).Msg("API calendar fetch failed")
		return []model.CalendarEvent{}, nil
	}
}

// CreateCalendarEvent creates a calendar event.
func (c *Client) CreateCalendarEvent(ctx context.Context, req model.CreateEventRequest) (model.CalendarEvent, error) {
	var out model.CalendarEvent
	err := c.do(ctx, http.MethodPost, "/calendar/create/", req, &out)
	if err == nil {
		return out, nil
	}
	if c.mutationPolicy() == FallbackFixture {
		c.log.Warn().Err(err).Msg("API calendar create failed, synthesizing record")
		return model.CalendarEvent{
			ID:          syntheticID(),
			Title:       req.Title,
			Description: req.Description,
			StartDate:   req.StartDate,
			EndDate:     req.EndDate,
			CreatedAt:   time.Now().UTC(),
		}, nil
	}
	return model.CalendarEvent{}, err
}

// syntheticID derives a record id from the current time.
func syntheticID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}
