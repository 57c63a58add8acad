package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/model"
)

// deadServer returns a base URL that refuses connections.
func deadServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	return srv.URL
}

func TestListReadFallback(t *testing.T) {
	t.Run("dev mode substitutes fixture courses", func(t *testing.T) {
		c := newClient(deadServer(t), true, false, nil)
		courses, err := c.ListCourses(context.Background())
		require.NoError(t, err)
		require.Len(t, courses, 3)
		require.Equal(t, "Introduction to Web Development", courses[0].Title)
	})

	t.Run("offline mode substitutes fixture courses", func(t *testing.T) {
		c := newClient(deadServer(t), false, true, nil)
		courses, err := c.ListCourses(context.Background())
		require.NoError(t, err)
		require.Len(t, courses, 3)
	})

	t.Run("strict mode degrades to empty list", func(t *testing.T) {
		c := newClient(deadServer(t), false, false, nil)
		courses, err := c.ListCourses(context.Background())
		require.NoError(t, err)
		require.NotNil(t, courses)
		require.Empty(t, courses)
	})

	t.Run("assignments, grades, calendar follow the same policy", func(t *testing.T) {
		dev := newClient(deadServer(t), true, false, nil)
		strict := newClient(deadServer(t), false, false, nil)

		assignments, err := dev.ListAssignments(context.Background())
		require.NoError(t, err)
		require.Len(t, assignments, 3)

		grades, err := dev.ListGrades(context.Background())
		require.NoError(t, err)
		require.Len(t, grades, 2)

		events, err := dev.ListCalendar(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 3)

		empty, err := strict.ListAssignments(context.Background())
		require.NoError(t, err)
		require.Empty(t, empty)
	})
}

func TestRecordReadFallback(t *testing.T) {
	t.Run("strict profile propagates error", func(t *testing.T) {
		c := newClient(deadServer(t), false, false, nil)
		_, err := c.FetchProfile(context.Background())
		require.Error(t, err)
	})

	t.Run("strict single course propagates error", func(t *testing.T) {
		c := newClient(deadServer(t), false, false, nil)
		_, err := c.GetCourse(context.Background(), "2")
		require.Error(t, err)
	})

	t.Run("dev single course falls back by id", func(t *testing.T) {
		c := newClient(deadServer(t), true, false, nil)
		course, err := c.GetCourse(context.Background(), "2")
		require.NoError(t, err)
		require.Equal(t, "Advanced React Concepts", course.Title)
	})

	t.Run("dev unknown id falls back to first fixture", func(t *testing.T) {
		c := newClient(deadServer(t), true, false, nil)
		course, err := c.GetCourse(context.Background(), "does-not-exist")
		require.NoError(t, err)
		require.Equal(t, fixture.Courses[0].ID, course.ID)
	})
}

func TestMutationFallback(t *testing.T) {
	req := model.LoginRequest{Username: "alice", Password: "secret"}

	t.Run("strict login propagates error", func(t *testing.T) {
		c := newClient(deadServer(t), false, false, nil)
		_, err := c.Login(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("offline login propagates error for the controller demo policy", func(t *testing.T) {
		c := newClient(deadServer(t), false, true, nil)
		_, err := c.Login(context.Background(), req)
		require.Error(t, err)
	})

	t.Run("dev login yields fixture response", func(t *testing.T) {
		c := newClient(deadServer(t), true, false, nil)
		resp, err := c.Login(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, fixture.AuthToken, resp.BearerToken())
		require.NotNil(t, resp.User)
		require.Equal(t, "demo_user", resp.User.Username)
	})

	t.Run("dev register overlays submitted identity", func(t *testing.T) {
		c := newClient(deadServer(t), true, false, nil)
		resp, err := c.Register(context.Background(), model.RegisterRequest{
			Username: "alice",
			Email:    "alice@example.com",
			Password: "hunter22",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", resp.User.Username)
		require.Equal(t, "alice@example.com", resp.User.Email)
	})

	t.Run("dev create course synthesizes record", func(t *testing.T) {
		c := newClient(deadServer(t), true, false, nil)
		course, err := c.CreateCourse(context.Background(), model.CreateCourseRequest{
			Title:  "Go 101",
			Author: "Rob",
		})
		require.NoError(t, err)
		require.NotEmpty(t, course.ID)
		require.Equal(t, "Go 101", course.Title)
	})

	t.Run("strict create course propagates error", func(t *testing.T) {
		c := newClient(deadServer(t), false, false, nil)
		_, err := c.CreateCourse(context.Background(), model.CreateCourseRequest{Title: "Go 101"})
		require.Error(t, err)
	})
}

func TestLiveDataPassesThrough(t *testing.T) {
	live := []model.Course{
		{ID: "42", Title: "Live Course", Author: "Remote", CreatedAt: time.Now().UTC()},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/books/", r.URL.Path)
		json.NewEncoder(w).Encode(live)
	}))
	defer srv.Close()

	// Dev mode must not substitute fixtures when the live call succeeds,
	// and never merges live and fixture data.
	c := newClient(srv.URL, true, false, nil)
	courses, err := c.ListCourses(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.Equal(t, "Live Course", courses[0].Title)
}
