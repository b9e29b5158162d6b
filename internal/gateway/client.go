// Cinelog - Movie Discovery Client
// Copyright 2026 Cinelog Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cinelog/cinelog

package gateway

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/cinelog/cinelog/internal/config"
	"github.com/cinelog/cinelog/internal/logging"
	"github.com/cinelog/cinelog/internal/metrics"
	"github.com/cinelog/cinelog/internal/models"
	"github.com/cinelog/cinelog/internal/token"
)

// Client is the single choke point for every backend call. It attaches
// bearer credentials, intercepts 401 responses for one transparent
// refresh-and-retry, and normalizes every failure into *Error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     token.Store
	limiter    *rate.Limiter

	// refreshMu serializes token refresh exchanges so concurrent 401s
	// share a single round-trip to /token/refresh/.
	refreshMu sync.Mutex

	// onSessionExpired is invoked after a failed refresh clears the
	// session. The presentation layer uses it to navigate to login.
	onSessionExpired func()
}

// NewClient creates a gateway client from configuration and a token store.
func NewClient(cfg config.APIConfig, tokens token.Store) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		tokens:  tokens,
		limiter: limiter,
	}
}

// OnSessionExpired registers the hook invoked when a refresh exchange fails
// and the session is forcibly cleared. Call before issuing requests.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

// request describes one outbound call. The retried flag travels with the
// request value, never through shared state, so the at-most-once retry
// guarantee holds per originating call.
type request struct {
	method   string
	path     string
	query    url.Values
	body     any
	auth     bool // eligible for the 401 refresh-and-retry protocol
	endpoint string
	retried  bool
}

// do dispatches a request and decodes the response into out (when non-nil).
// All failures come back as *Error per the gateway error contract.
func (c *Client) do(ctx context.Context, req request, out any) error {
	err := c.dispatch(ctx, req, out)
	outcome := "success"
	if err != nil {
		if apiErr, ok := err.(*Error); ok {
			outcome = string(apiErr.Kind) + "_error"
		}
	}
	metrics.GatewayRequests.WithLabelValues(req.endpoint, outcome).Inc()
	return err
}

func (c *Client) dispatch(ctx context.Context, req request, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return clientError(err)
		}
	}

	httpReq, err := c.newHTTPRequest(ctx, req)
	if err != nil {
		return clientError(err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	metrics.GatewayRequestDuration.WithLabelValues(req.endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		logging.Ctx(ctx).Warn().Err(err).Str("endpoint", req.endpoint).Msg("request failed in transit")
		return networkError()
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized && req.auth && !req.retried {
		// Drain so the connection is reusable for the retry.
		_, _ = io.Copy(io.Discard, resp.Body)
		staleAccess := accessFromHeader(httpReq)
		if refreshErr := c.refreshTokens(ctx, staleAccess); refreshErr != nil {
			return c.expireSession(refreshErr)
		}
		req.retried = true
		logging.Ctx(ctx).Debug().Str("endpoint", req.endpoint).Msg("retrying request after token refresh")
		return c.dispatch(ctx, req, out)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			body = nil
		}
		return serverError(resp.StatusCode, body)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return clientError(err)
	}
	return nil
}

// newHTTPRequest builds the outgoing request: JSON body, bearer credential
// when an access token is present, and a request ID for correlation.
func (c *Client) newHTTPRequest(ctx context.Context, req request) (*http.Request, error) {
	fullURL := c.baseURL + req.path
	if len(req.query) > 0 {
		fullURL += "?" + req.query.Encode()
	}

	var body io.Reader = http.NoBody
	if req.body != nil {
		data, err := json.Marshal(req.body)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, fullURL, body)
	if err != nil {
		return nil, err
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")

	requestID := logging.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = logging.GenerateRequestID()
	}
	httpReq.Header.Set("X-Request-ID", requestID)

	if access := c.tokens.Access(); access != "" {
		httpReq.Header.Set("Authorization", "Bearer "+access)
	}

	return httpReq, nil
}

// accessFromHeader recovers the access token a rejected request carried so
// the refresh path can tell whether another caller already rotated it.
func accessFromHeader(req *http.Request) string {
	return strings.TrimPrefix(req.Header.Get("Authorization"), "Bearer ")
}

// refreshTokens exchanges the refresh token for a new pair. Exchanges are
// serialized: a caller that blocked behind an in-flight refresh finds the
// access token already rotated and skips its own exchange.
func (c *Client) refreshTokens(ctx context.Context, staleAccess string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if current := c.tokens.Access(); current != "" && current != staleAccess {
		return nil // another request already refreshed
	}

	refresh := c.tokens.Refresh()
	if refresh == "" {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return authError()
	}

	var pair models.AuthTokens
	err := c.dispatch(ctx, request{
		method:   http.MethodPost,
		path:     "/token/refresh/",
		body:     map[string]string{"refresh": refresh},
		endpoint: "token_refresh",
		retried:  true, // the exchange itself is never retried
	}, &pair)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return err
	}

	if err := c.tokens.SetTokens(pair.Access, pair.Refresh); err != nil {
		metrics.TokenRefreshes.WithLabelValues("failure").Inc()
		return clientError(err)
	}
	metrics.TokenRefreshes.WithLabelValues("success").Inc()
	logging.Ctx(ctx).Debug().Msg("access token refreshed")
	return nil
}

// expireSession clears stored credentials after a failed refresh and fires
// the session-expired hook. The caller always receives a KindAuth error.
func (c *Client) expireSession(cause error) error {
	if err := c.tokens.Clear(); err != nil {
		logging.Warn().Err(err).Msg("failed to clear credentials on session expiry")
	}
	logging.Warn().Err(cause).Msg("token refresh failed, session cleared")
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
	return authError()
}
