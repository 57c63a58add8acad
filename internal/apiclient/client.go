// Package apiclient is the data access layer: one bounded-timeout JSON
// request core plus per-resource operations with explicit fallback policies
// for development and offline mode.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/themirmakhmudov/lms-cli/internal/config"
)

// TokenSource supplies the current bearer token, if any. Implemented by
// session.Store.
type TokenSource interface {
	Token() (string, bool)
}

// FallbackPolicy names the behavior applied when a live call fails.
type FallbackPolicy string

const (
	// FallbackNone propagates the normalized error to the caller.
	FallbackNone FallbackPolicy = "none"
	// FallbackEmpty swallows the error and yields an empty collection.
	FallbackEmpty FallbackPolicy = "empty"
	// FallbackFixture swallows the error and substitutes fixture data.
	FallbackFixture FallbackPolicy = "fixture"
)

// Client issues requests against the remote LMS API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	tokens  TokenSource
	log     zerolog.Logger

	// devMode and offlineMode select the fallback policies. Reads
	// substitute fixtures under either flag; mutations only under
	// development mode, so an offline hard failure reaches the session
	// controller and its demo-session policy.
	devMode     bool
	offlineMode bool
}

// New creates a Client from configuration. tokens may be nil for an
// anonymous client.
func New(cfg *config.Config, tokens TokenSource, log zerolog.Logger) *Client {
	return &Client{
		baseURL:     cfg.BaseURL,
		http:        &http.Client{},
		timeout:     cfg.APITimeout,
		tokens:      tokens,
		log:         log,
		devMode:     cfg.DevelopmentMode,
		offlineMode: cfg.OfflineMode,
	}
}

// readListPolicy is the fallback applied to collection reads.
func (c *Client) readListPolicy() FallbackPolicy {
	if c.devMode || c.offlineMode {
		return FallbackFixture
	}
	// Strict mode: list reads degrade to an empty collection while
	// single-record reads propagate.
	return FallbackEmpty
}

// readRecordPolicy is the fallback applied to profile and single-record reads.
func (c *Client) readRecordPolicy() FallbackPolicy {
	if c.devMode || c.offlineMode {
		return FallbackFixture
	}
	return FallbackNone
}

// mutationPolicy is the fallback applied to login, register, and create
// calls. Offline mode alone does not fabricate mutation success; the hard
// failure propagates so the session controller can apply its own offline
// policy.
func (c *Client) mutationPolicy() FallbackPolicy {
	if c.devMode {
		return FallbackFixture
	}
	return FallbackNone
}

// do issues one JSON request bounded by the configured timeout and decodes
// the response into out (which may be nil). All failures are returned as
// *Error.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetwork, Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	c.log.Debug().Str("method", method).Str("path", path).Msg("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		// A malformed body counts as a failed call for fallback purposes.
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}
