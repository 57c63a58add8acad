package mockapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/themirmakhmudov/lms-cli/internal/model"
)

// ─── Auth handlers ──────────────────────────────────────────────────────────

// handleLogin godoc
// POST /login/
func (s *Server) handleLogin(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Username and password are required."})
		return
	}

	user, ok := s.users.authenticate(req.Username, req.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid username or password."})
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	c.JSON(http.StatusOK, model.AuthResponse{Token: token, User: &user})
}

// handleRegister godoc
// POST /register/
func (s *Server) handleRegister(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	user, err := s.users.create(req)
	if err != nil {
		if err == errUserExists {
			c.JSON(http.StatusConflict, gin.H{"detail": "A user with that username already exists."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}

	token, err := s.issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		return
	}
	c.JSON(http.StatusCreated, model.AuthResponse{Token: token, User: &user})
}

// ─── Profile handlers ───────────────────────────────────────────────────────

// handleProfile godoc
// GET /user/profile/
func (s *Server) handleProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// handleProfileUpdate godoc
// PUT /user/profile/update/v2/
func (s *Server) handleProfileUpdate(c *gin.Context) {
	var upd model.ProfileUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	user, ok := s.users.update(currentUser(c).Username, upd)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ─── Course handlers ────────────────────────────────────────────────────────

func (s *Server) handleListCourses(c *gin.Context) {
	s.mu.Lock()
	out := append([]model.Course(nil), s.courses...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetCourse(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, course := range s.courses {
		if course.ID == id {
			c.JSON(http.StatusOK, course)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleCreateCourse(c *gin.Context) {
	var req model.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	course := model.Course{
		ID:          s.allocID(),
		Title:       req.Title,
		Description: req.Description,
		Author:      req.Author,
		CreatedAt:   time.Now().UTC(),
	}
	s.courses = append(s.courses, course)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, course)
}

// ─── Assignment handlers ────────────────────────────────────────────────────

func (s *Server) handleListAssignments(c *gin.Context) {
	s.mu.Lock()
	out := append([]model.Assignment(nil), s.assignments...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetAssignment(c *gin.Context) {
	id := c.Param("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.assignments {
		if a.ID == id {
			c.JSON(http.StatusOK, a)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
}

func (s *Server) handleCreateAssignment(c *gin.Context) {
	var req model.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	a := model.Assignment{
		ID:          s.allocID(),
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		CreatedAt:   time.Now().UTC(),
	}
	s.assignments = append(s.assignments, a)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, a)
}

// ─── Grade / calendar handlers ──────────────────────────────────────────────

func (s *Server) handleListGrades(c *gin.Context) {
	s.mu.Lock()
	out := append([]model.Grade(nil), s.grades...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleListCalendar(c *gin.Context) {
	s.mu.Lock()
	out := append([]model.CalendarEvent(nil), s.events...)
	s.mu.Unlock()
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleCreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	ev := model.CalendarEvent{
		ID:          s.allocID(),
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedAt:   time.Now().UTC(),
	}
	s.events = append(s.events, ev)
	s.mu.Unlock()
	c.JSON(http.StatusCreated, ev)
}
