// Package probe classifies reachability of the remote API with a single
// lightweight diagnostic request.
package probe

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
	"github.com/themirmakhmudov/lms-cli/internal/config"
)

// Result is the outcome of one connectivity check. Detail is "timeout",
// "network/cors", or the raw HTTP status text.
type Result struct {
	Reachable bool
	Detail    string
}

// Checker probes the API's diagnostic endpoint. Safe to call repeatedly;
// no side effects beyond the request itself.
type Checker struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

// NewChecker creates a Checker from configuration.
func NewChecker(cfg *config.Config, log zerolog.Logger) *Checker {
	return &Checker{
		baseURL: cfg.BaseURL,
		timeout: cfg.ProbeTimeout,
		http:    &http.Client{},
		log:     log,
	}
}

// Check issues one GET to {base}/api/schema/ bounded by the probe timeout.
// Reachable is true iff the response status is in the success range. Check
// never returns an error; every failure is folded into the Result.
func (c *Checker) Check(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/schema/", nil)
	if err != nil {
		return Result{Reachable: false, Detail: "network/cors"}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		detail := classify(err)
		c.log.Warn().Str("detail", detail).Msg("Connection test failed")
		return Result{Reachable: false, Detail: detail}
	}
	defer resp.Body.Close()

	c.log.Debug().Int("status", resp.StatusCode).Msg("Connection test response")

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	return Result{Reachable: ok, Detail: resp.Status}
}

func classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "timeout"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return "network/cors"
	}
	return err.Error()
}
