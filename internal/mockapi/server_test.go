package mockapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/mockapi"
	"github.com/themirmakhmudov/lms-cli/internal/model"
)

func newTestServer(t *testing.T, opts mockapi.Options) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(mockapi.NewServer(zerolog.Nop(), opts).Router())
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(buf))
	require.NoError(t, err)
	return resp
}

func getAuthed(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestSchemaEndpoint(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{})
	resp, err := http.Get(srv.URL + "/api/schema/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{})

	t.Run("demo user succeeds", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/login/", model.LoginRequest{
			Username: "demo_user",
			Password: "demo1234",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		auth := decode[model.AuthResponse](t, resp)
		require.NotEmpty(t, auth.BearerToken())
		require.Equal(t, "demo_user", auth.User.Username)
	})

	t.Run("wrong password rejected with detail body", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/login/", model.LoginRequest{
			Username: "demo_user",
			Password: "wrong",
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decode[map[string]string](t, resp)
		require.Equal(t, "Invalid username or password.", body["detail"])
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/login/", map[string]string{"username": "demo_user"})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		resp.Body.Close()
	})
}

func TestRegisterAndProfile(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{})

	resp := postJSON(t, srv.URL+"/register/", model.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "hunter22",
		FirstName: "Alice",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	auth := decode[model.AuthResponse](t, resp)
	require.NotEmpty(t, auth.Token)

	t.Run("duplicate username conflicts", func(t *testing.T) {
		resp := postJSON(t, srv.URL+"/register/", model.RegisterRequest{
			Username: "alice",
			Email:    "alice2@example.com",
			Password: "hunter22",
		})
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("issued token resolves the profile", func(t *testing.T) {
		resp := getAuthed(t, srv.URL+"/user/profile/", auth.Token)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := decode[model.User](t, resp)
		require.Equal(t, "alice", user.Username)
		require.Equal(t, "Alice", user.FirstName)
	})

	t.Run("profile update applies", func(t *testing.T) {
		buf, _ := json.Marshal(model.ProfileUpdate{FirstName: "Alicia"})
		req, err := http.NewRequest(http.MethodPut, srv.URL+"/user/profile/update/v2/", bytes.NewReader(buf))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+auth.Token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		user := decode[model.User](t, resp)
		require.Equal(t, "Alicia", user.FirstName)
	})
}

func TestAuthRequired(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{})

	resp := getAuthed(t, srv.URL+"/books/", "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	require.Contains(t, body["detail"], "credentials")

	resp = getAuthed(t, srv.URL+"/books/", "garbage-token")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestDemoTokenResolvesDemoUser(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{})

	resp := getAuthed(t, srv.URL+"/user/profile/", fixture.DemoToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := decode[model.User](t, resp)
	require.Equal(t, fixture.DemoUser.Username, user.Username)
}

func TestResourceEndpoints(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{})
	token := fixture.DemoToken

	t.Run("courses", func(t *testing.T) {
		resp := getAuthed(t, srv.URL+"/books/", token)
		courses := decode[[]model.Course](t, resp)
		require.Len(t, courses, 3)

		resp = getAuthed(t, srv.URL+"/books/2/", token)
		course := decode[model.Course](t, resp)
		require.Equal(t, "Advanced React Concepts", course.Title)

		resp = getAuthed(t, srv.URL+"/books/999/", token)
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
		resp.Body.Close()
	})

	t.Run("create course", func(t *testing.T) {
		buf, _ := json.Marshal(model.CreateCourseRequest{Title: "Go 101", Author: "Rob"})
		req, err := http.NewRequest(http.MethodPost, srv.URL+"/books/create/", bytes.NewReader(buf))
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		course := decode[model.Course](t, resp)
		require.NotEmpty(t, course.ID)

		list := decode[[]model.Course](t, getAuthed(t, srv.URL+"/books/", token))
		require.Len(t, list, 4)
	})

	t.Run("assignments grades calendar", func(t *testing.T) {
		assignments := decode[[]model.Assignment](t, getAuthed(t, srv.URL+"/assignments/", token))
		require.Len(t, assignments, 3)

		grades := decode[[]model.Grade](t, getAuthed(t, srv.URL+"/grades/my/", token))
		require.Len(t, grades, 2)
		require.Equal(t, 92, grades[0].Grade)

		events := decode[[]model.CalendarEvent](t, getAuthed(t, srv.URL+"/calendar/", token))
		require.Len(t, events, 3)
	})
}

func TestFailMode(t *testing.T) {
	srv := newTestServer(t, mockapi.Options{FailMode: true})

	resp, err := http.Get(srv.URL + "/api/schema/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decode[map[string]string](t, resp)
	require.Equal(t, "Internal server error.", body["detail"])
}
