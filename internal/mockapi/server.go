// Package mockapi is a local stand-in for the remote LMS API, used for
// offline development and end-to-end testing of the client. It mirrors the
// remote surface, including its {"detail": ...} error bodies, and serves the
// fixture dataset from memory.
package mockapi

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/model"
)

// Options configures the mock server.
type Options struct {
	JWTSecret string
	// FailMode makes every endpoint answer 500, for exercising the
	// client's fallback paths.
	FailMode bool
}

// Server holds the in-memory dataset and user registry. Everything resets on
// restart.
type Server struct {
	log       zerolog.Logger
	jwtSecret []byte
	failMode  bool
	users     *userStore

	mu          sync.Mutex
	courses     []model.Course
	assignments []model.Assignment
	grades      []model.Grade
	events      []model.CalendarEvent
	nextID      int
}

// NewServer creates a Server seeded with the fixture dataset and the demo
// user.
func NewServer(log zerolog.Logger, opts Options) *Server {
	secret := opts.JWTSecret
	if secret == "" {
		secret = "lms-mockapi-secret"
	}
	return &Server{
		log:         log,
		jwtSecret:   []byte(secret),
		failMode:    opts.FailMode,
		users:       newUserStore(),
		courses:     append([]model.Course(nil), fixture.Courses...),
		assignments: append([]model.Assignment(nil), fixture.Assignments...),
		grades:      append([]model.Grade(nil), fixture.Grades...),
		events:      append([]model.CalendarEvent(nil), fixture.CalendarEvents...),
		nextID:      100,
	}
}

// Router configures the Gin engine with all routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// The stand-in serves local browsers and tools; allow everything.
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	if s.failMode {
		router.Use(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error."})
		})
	}

	// Diagnostic probe target.
	router.GET("/api/schema/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"openapi": "3.0.3", "info": gin.H{"title": "LMS API"}})
	})

	// ─── Auth ──────────────────────────────────────────────────────────
	router.POST("/login/", s.handleLogin)
	router.POST("/register/", s.handleRegister)

	// ─── Protected resources ───────────────────────────────────────────
	authed := router.Group("/")
	authed.Use(s.requireBearer())
	{
		authed.GET("/user/profile/", s.handleProfile)
		authed.PUT("/user/profile/update/v2/", s.handleProfileUpdate)

		authed.GET("/books/", s.handleListCourses)
		authed.GET("/books/:id/", s.handleGetCourse)
		authed.POST("/books/create/", s.handleCreateCourse)

		authed.GET("/assignments/", s.handleListAssignments)
		authed.GET("/assignments/:id/", s.handleGetAssignment)
		authed.POST("/assignments/create/", s.handleCreateAssignment)

		authed.GET("/grades/my/", s.handleListGrades)

		authed.GET("/calendar/", s.handleListCalendar)
		authed.POST("/calendar/create/", s.handleCreateEvent)
	}

	return router
}

// allocID hands out the next record id. Callers hold s.mu.
func (s *Server) allocID() string {
	id := s.nextID
	s.nextID++
	return strconv.Itoa(id)
}
