package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/themirmakhmudov/lms-cli/internal/apiclient"
	"github.com/themirmakhmudov/lms-cli/internal/config"
	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/logger"
	"github.com/themirmakhmudov/lms-cli/internal/model"
	"github.com/themirmakhmudov/lms-cli/internal/probe"
	"github.com/themirmakhmudov/lms-cli/internal/session"
	"github.com/themirmakhmudov/lms-cli/internal/validator"
)

const usage = `Usage: lms <command> [args]

Commands:
  status       Show connection status and current session
  retry        Re-run the connectivity check
  login        Authenticate and persist the session token
  register     Create an account
  logout       Discard the session token
  profile      Show or update the user profile
  courses      List courses, show one, or create one
  assignments  List assignments, show one, or create one
  grades       List my grades
  calendar     List calendar events or create one
`

// app bundles the wired client core for command handlers.
type app struct {
	cfg        *config.Config
	log        zerolog.Logger
	store      *session.Store
	api        *apiclient.Client
	controller *session.Controller
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Wire the client core ──────────────────────────────────────────
	store := session.NewStore(cfg.TokenPath)
	api := apiclient.New(cfg, store, log)
	checker := probe.NewChecker(cfg, log)
	controller := session.NewController(cfg, checker, api, store, log)

	a := &app{cfg: cfg, log: log, store: store, api: api, controller: controller}

	ctx := context.Background()

	var err error
	switch os.Args[1] {
	case "status":
		err = a.cmdStatus(ctx)
	case "retry":
		err = a.cmdRetry(ctx)
	case "login":
		err = a.cmdLogin(ctx, os.Args[2:])
	case "register":
		err = a.cmdRegister(ctx, os.Args[2:])
	case "logout":
		err = a.cmdLogout()
	case "profile":
		err = a.cmdProfile(ctx, os.Args[2:])
	case "courses":
		err = a.cmdCourses(ctx, os.Args[2:])
	case "assignments":
		err = a.cmdAssignments(ctx, os.Args[2:])
	case "grades":
		err = a.cmdGrades(ctx)
	case "calendar":
		err = a.cmdCalendar(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// ─── Session commands ──────────────────────────────────────────────────────

func (a *app) cmdStatus(ctx context.Context) error {
	a.controller.Init(ctx)
	snap := a.controller.Snapshot()

	fmt.Printf("API:        %s\n", a.cfg.BaseURL)
	fmt.Printf("Connection: %s\n", snap.Status)
	if snap.Authenticated() {
		fmt.Printf("Session:    %s <%s>\n", snap.User.Username, snap.User.Email)
	} else {
		fmt.Println("Session:    anonymous")
	}
	if token, ok := a.store.Token(); ok {
		fmt.Printf("Token:      %s\n", describeToken(token))
	}
	if snap.Error != "" {
		fmt.Printf("Error:      %s\n", snap.Error)
	}
	return nil
}

func (a *app) cmdRetry(ctx context.Context) error {
	a.controller.RetryConnection(ctx)
	fmt.Printf("Connection: %s\n", a.controller.Snapshot().Status)
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	username := fs.String("u", "", "username")
	fs.Parse(args)

	if *username == "" {
		v, err := promptLine("Username: ")
		if err != nil {
			return err
		}
		*username = v
	}
	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}

	a.controller.Init(ctx)
	if a.controller.Snapshot().Status == session.StatusDisconnected {
		fmt.Println("Warning: API is unreachable and offline mode is disabled.")
	}

	if err := a.controller.Login(ctx, *username, password); err != nil {
		snap := a.controller.Snapshot()
		if snap.Error != "" {
			return fmt.Errorf("%s", snap.Error)
		}
		return err
	}

	snap := a.controller.Snapshot()
	if snap.OfflineMode {
		fmt.Println("Login successful (offline mode)")
	} else {
		fmt.Println("Login successful")
	}
	fmt.Printf("Signed in as %s <%s>\n", snap.User.Username, snap.User.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	username := fs.String("u", "", "username")
	email := fs.String("e", "", "email address")
	firstName := fs.String("first", "", "first name")
	lastName := fs.String("last", "", "last name")
	fs.Parse(args)

	var err error
	if *username == "" {
		if *username, err = promptLine("Username: "); err != nil {
			return err
		}
	}
	if *email == "" {
		if *email, err = promptLine("Email: "); err != nil {
			return err
		}
	}
	password, err := promptSecret("Password: ")
	if err != nil {
		return err
	}
	confirm, err := promptSecret("Confirm password: ")
	if err != nil {
		return err
	}

	a.controller.Init(ctx)

	req := model.RegisterRequest{
		Username:        *username,
		Email:           *email,
		Password:        password,
		ConfirmPassword: confirm,
		FirstName:       *firstName,
		LastName:        *lastName,
	}
	if err := a.controller.Register(ctx, req); err != nil {
		snap := a.controller.Snapshot()
		if snap.Error != "" {
			return fmt.Errorf("%s", snap.Error)
		}
		return err
	}

	snap := a.controller.Snapshot()
	if snap.OfflineMode {
		fmt.Println("Registration successful (offline mode)")
	} else {
		fmt.Println("Registration successful")
	}
	fmt.Printf("Signed in as %s <%s>\n", snap.User.Username, snap.User.Email)
	return nil
}

func (a *app) cmdLogout() error {
	a.controller.Logout()
	fmt.Println("Signed out")
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	email := fs.String("email", "", "new email address")
	firstName := fs.String("first", "", "new first name")
	lastName := fs.String("last", "", "new last name")
	fs.Parse(args)

	if *email != "" || *firstName != "" || *lastName != "" {
		upd := model.ProfileUpdate{Email: *email, FirstName: *firstName, LastName: *lastName}
		if fields := validator.Struct(upd); fields != nil {
			return fmt.Errorf("invalid profile update: %v", fields)
		}
		user, err := a.api.UpdateProfile(ctx, upd)
		if err != nil {
			return err
		}
		fmt.Println("Profile updated")
		printUser(user)
		return nil
	}

	user, err := a.api.FetchProfile(ctx)
	if err != nil {
		return err
	}
	printUser(user)
	return nil
}

// ─── Resource commands ─────────────────────────────────────────────────────

func (a *app) cmdCourses(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "create" {
		fs := flag.NewFlagSet("courses create", flag.ExitOnError)
		title := fs.String("title", "", "course title")
		desc := fs.String("desc", "", "course description")
		author := fs.String("author", "", "course author")
		fs.Parse(args[1:])

		req := model.CreateCourseRequest{Title: *title, Description: *desc, Author: *author}
		if fields := validator.Struct(req); fields != nil {
			return fmt.Errorf("invalid course: %v", fields)
		}
		course, err := a.api.CreateCourse(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Created course %s: %s\n", course.ID, course.Title)
		return nil
	}

	if len(args) > 0 {
		course, err := a.api.GetCourse(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n    by %s\n    %s\n", course.ID, course.Title, course.Author, course.Description)
		return nil
	}

	courses, err := a.api.ListCourses(ctx)
	if err != nil {
		return err
	}
	for _, c := range courses {
		fmt.Printf("%s  %s (%s)\n", c.ID, c.Title, c.Author)
	}
	return nil
}

func (a *app) cmdAssignments(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "create" {
		fs := flag.NewFlagSet("assignments create", flag.ExitOnError)
		title := fs.String("title", "", "assignment title")
		desc := fs.String("desc", "", "assignment description")
		due := fs.String("due", "", "due date (RFC3339)")
		fs.Parse(args[1:])

		dueDate, err := time.Parse(time.RFC3339, *due)
		if err != nil {
			return fmt.Errorf("invalid due date: %w", err)
		}
		req := model.CreateAssignmentRequest{Title: *title, Description: *desc, DueDate: dueDate}
		if fields := validator.Struct(req); fields != nil {
			return fmt.Errorf("invalid assignment: %v", fields)
		}
		a2, err := a.api.CreateAssignment(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Created assignment %s: %s\n", a2.ID, a2.Title)
		return nil
	}

	if len(args) > 0 {
		asg, err := a.api.GetAssignment(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n    due %s  submitted=%t\n    %s\n",
			asg.ID, asg.Title, asg.DueDate.Format(time.RFC3339), asg.IsSubmitted, asg.Description)
		return nil
	}

	assignments, err := a.api.ListAssignments(ctx)
	if err != nil {
		return err
	}
	for _, asg := range assignments {
		mark := " "
		if asg.IsSubmitted {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s (due %s)\n", mark, asg.ID, asg.Title, asg.DueDate.Format("2006-01-02"))
	}
	return nil
}

func (a *app) cmdGrades(ctx context.Context) error {
	grades, err := a.api.ListGrades(ctx)
	if err != nil {
		return err
	}
	for _, g := range grades {
		fmt.Printf("%3d  %s\n     %s\n", g.Grade, g.Assignment.Title, g.Feedback)
	}
	return nil
}

func (a *app) cmdCalendar(ctx context.Context, args []string) error {
	if len(args) > 0 && args[0] == "create" {
		fs := flag.NewFlagSet("calendar create", flag.ExitOnError)
		title := fs.String("title", "", "event title")
		desc := fs.String("desc", "", "event description")
		start := fs.String("start", "", "start time (RFC3339)")
		end := fs.String("end", "", "end time (RFC3339)")
		fs.Parse(args[1:])

		startAt, err := time.Parse(time.RFC3339, *start)
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		endAt, err := time.Parse(time.RFC3339, *end)
		if err != nil {
			return fmt.Errorf("invalid end time: %w", err)
		}
		req := model.CreateEventRequest{Title: *title, Description: *desc, StartDate: startAt, EndDate: endAt}
		if fields := validator.Struct(req); fields != nil {
			return fmt.Errorf("invalid event: %v", fields)
		}
		ev, err := a.api.CreateCalendarEvent(ctx, req)
		if err != nil {
			return err
		}
		fmt.Printf("Created event %s: %s\n", ev.ID, ev.Title)
		return nil
	}

	events, err := a.api.ListCalendar(ctx)
	if err != nil {
		return err
	}
	for _, ev := range events {
		fmt.Printf("%s  %s - %s  %s\n",
			ev.ID, ev.StartDate.Format("2006-01-02 15:04"), ev.EndDate.Format("15:04"), ev.Title)
	}
	return nil
}

// ─── Helpers ───────────────────────────────────────────────────────────────

func printUser(u model.User) {
	fmt.Printf("Username:   %s\n", u.Username)
	fmt.Printf("Email:      %s\n", u.Email)
	if u.FirstName != "" || u.LastName != "" {
		fmt.Printf("Name:       %s %s\n", u.FirstName, u.LastName)
	}
}

func promptLine(label string) (string, error) {
	fmt.Print(label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func promptSecret(label string) (string, error) {
	fmt.Print(label)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(secret), nil
}

// describeToken summarizes the stored token without verifying it. The demo
// sentinel and the canned fixture token are named as such; JWTs show their
// subject and expiry.
func describeToken(token string) string {
	switch token {
	case fixture.DemoToken:
		return "demo session token"
	case fixture.AuthToken:
		return "fixture auth token"
	}

	claims := &jwt.RegisteredClaims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		return "opaque token"
	}
	if claims.ExpiresAt == nil {
		return fmt.Sprintf("JWT for %q", claims.Subject)
	}
	return fmt.Sprintf("JWT for %q, expires %s", claims.Subject, claims.ExpiresAt.Format(time.RFC3339))
}
