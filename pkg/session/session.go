// Package session implements the remote-invocation transport for the
// SoftLayer REST API. One Do call is one round trip; there are no retries
// here because order/cancel/update calls are not idempotent.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/slkit/slkit/pkg/filter"
)

// Endpoints for the public API and the backend (metadata) network.
const (
	DefaultEndpoint = "https://api.softlayer.com/rest/v3.1"
	PrivateEndpoint = "https://api.service.softlayer.com/rest/v3.1"
)

const defaultTimeout = 120 * time.Second

// Request describes one remote operation invocation.
type Request struct {
	// Service is the full service name, e.g. "SoftLayer_Network_Vlan_Firewall".
	Service string
	// Method is the remote operation, e.g. "getObject".
	Method string
	// ID is the object id the operation is scoped to, when any.
	ID *int
	// Mask is the object mask, passed verbatim.
	Mask string
	// Filter is the object filter, when any.
	Filter filter.Filter
	// Args are positional parameters; their presence switches the call to POST.
	Args []any
}

// Session holds credentials and transport settings for one API endpoint.
type Session struct {
	Endpoint string
	UserName string
	APIKey   string

	// BearerToken, when set, takes precedence over basic auth.
	BearerToken string

	HTTPClient *http.Client

	limiter *rate.Limiter
	debug   bool
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) { s.HTTPClient = c }
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.HTTPClient.Timeout = d }
}

// WithRateLimit throttles outgoing calls to rps requests per second with the
// given burst. Zero rps leaves the session unthrottled; a burst below one is
// raised to one so the limiter can always make progress.
func WithRateLimit(rps rate.Limit, burst int) Option {
	return func(s *Session) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rps, burst)
	}
}

// WithBearerToken switches the session to IAM bearer-token auth.
func WithBearerToken(token string) Option {
	return func(s *Session) { s.BearerToken = token }
}

// WithDebug enables per-call debug logging.
func WithDebug(debug bool) Option {
	return func(s *Session) { s.debug = debug }
}

// New returns a session for the given endpoint and credentials. An empty
// endpoint selects the public API.
func New(endpoint, username, apiKey string, opts ...Option) *Session {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	s := &Session{
		Endpoint:   endpoint,
		UserName:   username,
		APIKey:     apiKey,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Do invokes one remote operation and decodes the response into result.
// A JSON null response leaves result untouched; callers that need to
// distinguish absence check for the zero value.
func (s *Session) Do(ctx context.Context, req Request, result any) error {
	if req.Service == "" || req.Method == "" {
		return fmt.Errorf("session: service and method are required")
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	httpReq, err := s.buildRequest(ctx, req)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := s.HTTPClient.Do(httpReq)
	if err != nil {
		observeRequest(req.Service, req.Method, "transport_error", time.Since(start))
		return fmt.Errorf("calling %s::%s: %w", req.Service, req.Method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(req.Service, req.Method, "transport_error", time.Since(start))
		return fmt.Errorf("reading %s::%s response: %w", req.Service, req.Method, err)
	}

	elapsed := time.Since(start)
	if s.debug {
		slog.Debug("api call",
			"service", req.Service,
			"method", req.Method,
			"status", resp.StatusCode,
			"duration_ms", elapsed.Milliseconds(),
		)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		observeRequest(req.Service, req.Method, "api_error", elapsed)
		return decodeError(resp.StatusCode, body, httpReq.Header.Get(requestIDHeader))
	}
	observeRequest(req.Service, req.Method, "ok", elapsed)

	if result == nil || isNull(body) {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding %s::%s response: %w", req.Service, req.Method, err)
	}
	return nil
}

const requestIDHeader = "X-Request-Id"

func (s *Session) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	path := s.Endpoint + "/" + req.Service
	if req.ID != nil {
		path += fmt.Sprintf("/%d", *req.ID)
	}
	path += "/" + req.Method + ".json"

	query := url.Values{}
	if req.Mask != "" {
		query.Set("objectMask", req.Mask)
	}
	if req.Filter != nil {
		f, err := req.Filter.JSON()
		if err != nil {
			return nil, fmt.Errorf("encoding object filter: %w", err)
		}
		query.Set("objectFilter", f)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	method := http.MethodGet
	var body io.Reader
	if len(req.Args) > 0 {
		method = http.MethodPost
		encoded, err := json.Marshal(map[string]any{"parameters": req.Args})
		if err != nil {
			return nil, fmt.Errorf("encoding parameters: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(requestIDHeader, uuid.New().String())

	switch {
	case s.BearerToken != "":
		httpReq.Header.Set("Authorization", "Bearer "+s.BearerToken)
	case s.UserName != "":
		httpReq.SetBasicAuth(s.UserName, s.APIKey)
	}
	return httpReq, nil
}

func isNull(body []byte) bool {
	return string(bytes.TrimSpace(body)) == "null"
}
