package session

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/themirmakhmudov/lms-cli/internal/config"
	"github.com/themirmakhmudov/lms-cli/internal/fixture"
	"github.com/themirmakhmudov/lms-cli/internal/model"
	"github.com/themirmakhmudov/lms-cli/internal/probe"
	"github.com/themirmakhmudov/lms-cli/internal/validator"
)

// Status is the connection state. It lives in process memory only and is
// reset to StatusChecking at start and on explicit retry.
type Status string

const (
	StatusChecking     Status = "checking"
	StatusConnected    Status = "connected"
	StatusDisconnected Status = "disconnected"
	StatusOffline      Status = "offline"
)

// User-facing failure messages. Raw errors never reach presentation.
const (
	loginFailedMessage    = "Login failed. Please check your credentials and try again."
	registerFailedMessage = "Registration failed. Please try again."
)

// Prober classifies API reachability. Implemented by probe.Checker.
type Prober interface {
	Check(ctx context.Context) probe.Result
}

// API is the slice of the data access layer the controller drives.
// Implemented by apiclient.Client.
type API interface {
	Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error)
	Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error)
	FetchProfile(ctx context.Context) (model.User, error)
}

// TokenStore is the durable token storage. Implemented by Store.
type TokenStore interface {
	Token() (string, bool)
	Save(token string) error
	Clear() error
}

// Snapshot is an immutable view of the controller state handed to consumers.
type Snapshot struct {
	Status      Status
	User        *model.User
	OfflineMode bool
	Error       string
}

// Authenticated reports whether a session is present.
func (s Snapshot) Authenticated() bool { return s.User != nil }

// Controller is the single owner of connection and session state. Connection
// status and session presence are independent axes: a disconnected status
// does not clear an existing session, and an offline status coexists with a
// fabricated demo session.
type Controller struct {
	cfg    *config.Config
	prober Prober
	api    API
	store  TokenStore
	log    zerolog.Logger

	mu      sync.Mutex
	status  Status
	offline bool
	user    *model.User
	errMsg  string
	subs    []chan Snapshot
}

// NewController wires the prober, data access layer, and token store into a
// controller. The machine starts in StatusChecking and Anonymous.
func NewController(cfg *config.Config, prober Prober, api API, store TokenStore, log zerolog.Logger) *Controller {
	return &Controller{
		cfg:    cfg,
		prober: prober,
		api:    api,
		store:  store,
		log:    log,
		status: StatusChecking,
	}
}

// Init resolves the connection status, then restores the session from the
// durable token if one exists. A profile-fetch failure discards the token
// unless the status is offline, where the token may still be valid once
// connectivity returns.
func (c *Controller) Init(ctx context.Context) {
	c.checkConnection(ctx)

	if _, ok := c.store.Token(); !ok {
		return
	}

	user, err := c.api.FetchProfile(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("Failed to fetch user profile")
		if c.Snapshot().Status != StatusOffline {
			if err := c.store.Clear(); err != nil {
				c.log.Warn().Err(err).Msg("Failed to discard token")
			}
		}
		return
	}
	c.setUser(&user)
}

// RetryConnection re-runs the probe and status assignment only; the session
// is untouched.
func (c *Controller) RetryConnection(ctx context.Context) {
	c.checkConnection(ctx)
}

func (c *Controller) checkConnection(ctx context.Context) {
	c.transition(func() {
		c.status = StatusChecking
	})

	result := c.prober.Check(ctx)

	c.transition(func() {
		switch {
		case result.Reachable:
			c.status = StatusConnected
			c.offline = false
		case c.cfg.OfflineMode || c.cfg.DevelopmentMode:
			c.log.Warn().Str("detail", result.Detail).Msg("Connection failed, entering offline mode")
			c.status = StatusOffline
			c.offline = true
		default:
			c.log.Warn().Str("detail", result.Detail).Msg("Connection failed")
			c.status = StatusDisconnected
			c.offline = false
		}
	})
}

// Login authenticates with the given credentials. Empty credentials (after
// trimming) are rejected client-side without touching state. With offline
// mode enabled or in development mode a failed API call still yields a demo
// session: any credentials succeed and the sentinel demo token is persisted,
// even when the API is reachable and rejected them.
func (c *Controller) Login(ctx context.Context, username, password string) error {
	if err := validator.Login(username, password); err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	c.ClearError()

	resp, err := c.api.Login(ctx, model.LoginRequest{Username: username, Password: password})
	if err != nil {
		if c.offlineOrDev() {
			c.log.Warn().Err(err).Msg("Login failed, creating demo session")
			c.persistToken(fixture.DemoToken)
			c.setUser(&model.User{
				ID:        "demo-user",
				Username:  username,
				Email:     username + "@example.com",
				FirstName: "Demo",
				LastName:  "User",
			})
			return nil
		}
		c.log.Error().Err(err).Msg("Login failed")
		c.setError(loginFailedMessage)
		return err
	}

	if token := resp.BearerToken(); token != "" {
		c.persistToken(token)
	}

	user, perr := c.api.FetchProfile(ctx)
	if perr != nil {
		c.log.Warn().Err(perr).Msg("Profile fetch failed, using login response data")
		u := synthesizeUser(resp, username, username+"@example.com")
		c.setUser(&u)
		return nil
	}
	c.setUser(&user)
	return nil
}

// Register creates an account. Client-side validation runs first and fails
// before any network call. The offline/development demo acceptance mirrors
// Login.
func (c *Controller) Register(ctx context.Context, req model.RegisterRequest) error {
	if err := validator.Registration(req); err != nil {
		c.setError(err.Error())
		return err
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	c.ClearError()

	resp, err := c.api.Register(ctx, req)
	if err != nil {
		if c.offlineOrDev() {
			c.log.Warn().Err(err).Msg("Registration failed, creating demo session")
			c.persistToken(fixture.DemoToken)
			c.setUser(&model.User{
				ID:        "demo-user",
				Username:  req.Username,
				Email:     req.Email,
				FirstName: req.FirstName,
				LastName:  req.LastName,
			})
			return nil
		}
		c.log.Error().Err(err).Msg("Registration failed")
		c.setError(registerFailedMessage)
		return err
	}

	if token := resp.BearerToken(); token != "" {
		c.persistToken(token)
	}

	user, perr := c.api.FetchProfile(ctx)
	if perr != nil {
		c.log.Warn().Err(perr).Msg("Profile fetch failed, using registration response data")
		u := synthesizeUser(resp, req.Username, req.Email)
		if u.FirstName == "" {
			u.FirstName = req.FirstName
		}
		if u.LastName == "" {
			u.LastName = req.LastName
		}
		c.setUser(&u)
		return nil
	}
	c.setUser(&user)
	return nil
}

// Logout discards the durable token and clears the session and any surfaced
// error. Connection status is untouched. Idempotent.
func (c *Controller) Logout() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn().Err(err).Msg("Failed to clear token")
	}
	c.transition(func() {
		c.user = nil
		c.errMsg = ""
	})
}

// ClearError clears the surfaced error message.
func (c *Controller) ClearError() {
	c.transition(func() {
		c.errMsg = ""
	})
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Subscribe returns a channel receiving a Snapshot after every state
// transition. Slow consumers miss intermediate snapshots rather than block
// the controller.
func (c *Controller) Subscribe() <-chan Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	ch := make(chan Snapshot, 8)
	c.subs = append(c.subs, ch)
	return ch
}

// ─── internals ──────────────────────────────────────────────────────────────

func (c *Controller) snapshotLocked() Snapshot {
	var user *model.User
	if c.user != nil {
		u := *c.user
		user = &u
	}
	return Snapshot{
		Status:      c.status,
		User:        user,
		OfflineMode: c.offline,
		Error:       c.errMsg,
	}
}

// transition applies a state mutation and notifies subscribers.
func (c *Controller) transition(apply func()) {
	c.mu.Lock()
	apply()
	snap := c.snapshotLocked()
	subs := c.subs
	c.mu.Unlock()

	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (c *Controller) setUser(u *model.User) {
	c.transition(func() {
		c.user = u
	})
}

func (c *Controller) setError(msg string) {
	c.transition(func() {
		c.errMsg = msg
	})
}

// offlineOrDev reports whether a failed auth call yields a demo session.
// Enabling offline mode is enough on its own: a reachable API that rejects
// the credentials still gets the demo session when the flag is set.
func (c *Controller) offlineOrDev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status == StatusOffline || c.cfg.OfflineMode || c.cfg.DevelopmentMode
}

func (c *Controller) persistToken(token string) {
	if err := c.store.Save(token); err != nil {
		c.log.Warn().Err(err).Msg("Failed to persist token")
	}
}

// synthesizeUser builds a minimal session from whatever identity fields the
// auth response carried, defaulting absent fields.
func synthesizeUser(resp model.AuthResponse, username, email string) model.User {
	var u model.User
	if resp.User != nil {
		u = *resp.User
	}
	if u.ID == "" {
		u.ID = resp.ID
	}
	if u.Username == "" {
		u.Username = resp.Username
	}
	if u.Email == "" {
		u.Email = resp.Email
	}
	if u.FirstName == "" {
		u.FirstName = resp.FirstName
	}
	if u.LastName == "" {
		u.LastName = resp.LastName
	}
	if u.ID == "" {
		u.ID = strconv.FormatInt(time.Now().UnixMilli(), 10)
	}
	if u.Username == "" {
		u.Username = username
	}
	if u.Email == "" {
		u.Email = email
	}
	return u
}
