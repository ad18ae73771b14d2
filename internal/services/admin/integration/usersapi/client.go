// Package usersapi is the HTTP client for the upstream users API consumed by
// the admin panel.
package usersapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
	apperrors "github.com/louisbranch/adminpanel/internal/platform/errors"
	platformotel "github.com/louisbranch/adminpanel/internal/platform/otel"
	"github.com/louisbranch/adminpanel/internal/platform/timeouts"
	"github.com/louisbranch/adminpanel/internal/services/admin/user"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	usersPath        = "/api/users"
	exportPath       = "/api/export"
	liveLocationPath = "/api/live-location"

	// RequestIDHeader carries a per-call identifier to the upstream.
	RequestIDHeader = "X-Request-ID"

	// defaultLoadAttempts bounds retries of the idempotent collection read.
	defaultLoadAttempts = 3
	// maxErrorBody caps how much of a rejected response is kept for logs.
	maxErrorBody = 1 << 10
	// maxLocationPayload caps the live-location payload size.
	maxLocationPayload = 4 << 20

	tracerName = "github.com/louisbranch/adminpanel/internal/services/admin/integration/usersapi"
)

var errPayloadTooLarge = fmt.Errorf("payload exceeds %d bytes", maxLocationPayload)

// Config selects the upstream and call behaviour.
type Config struct {
	// BaseURL is the scheme and host of the upstream, e.g. https://api.example.com.
	BaseURL string
	// HTTPClient overrides the transport. Defaults to a client without timeout;
	// per-call deadlines come from Timeout.
	HTTPClient *http.Client
	// Timeout caps each call. Defaults to timeouts.APIRequest.
	Timeout time.Duration
	// LoadAttempts bounds attempts for ListUsers. Defaults to 3.
	LoadAttempts uint
	// RetryInitialInterval is the first backoff delay for ListUsers retries.
	RetryInitialInterval time.Duration
}

// Client calls the upstream users API.
type Client struct {
	baseURL       *url.URL
	httpClient    *http.Client
	timeout       time.Duration
	loadAttempts  uint
	retryInterval time.Duration
	tracer        trace.Tracer
}

// New validates cfg and builds a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("users api base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse users api base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("users api base url must be http or https, got %q", raw)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("users api base url has no host: %q", raw)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = timeouts.APIRequest
	}
	attempts := cfg.LoadAttempts
	if attempts == 0 {
		attempts = defaultLoadAttempts
	}
	retryInterval := cfg.RetryInitialInterval
	if retryInterval <= 0 {
		retryInterval = 200 * time.Millisecond
	}

	return &Client{
		baseURL:       base,
		httpClient:    httpClient,
		timeout:       timeout,
		loadAttempts:  attempts,
		retryInterval: retryInterval,
		tracer:        platformotel.Tracer(tracerName),
	}, nil
}

// BaseURL returns the normalized upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ExportURL is the upstream spreadsheet download endpoint, without query.
func (c *Client) ExportURL() string {
	return c.endpoint(exportPath)
}

// ListUsers fetches the whole users collection. Transport failures and
// gateway statuses (502, 503, 504) are retried with exponential backoff.
func (c *Client) ListUsers(ctx context.Context) ([]user.User, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.retryInterval

	operation := func() ([]user.User, error) {
		var users []user.User
		if err := c.do(ctx, "ListUsers", http.MethodGet, c.endpoint(usersPath), nil, &users); err != nil {
			if retryable(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		if users == nil {
			users = []user.User{}
		}
		return users, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(c.loadAttempts),
		backoff.WithNotify(func(err error, wait time.Duration) {
			log.Printf("admin users api list users retry in %s: %v", wait, err)
		}),
	)
}

// CreateUser posts draft and returns the record the upstream created.
func (c *Client) CreateUser(ctx context.Context, draft user.Draft) (user.User, error) {
	var created user.User
	if err := c.do(ctx, "CreateUser", http.MethodPost, c.endpoint(usersPath), draft, &created); err != nil {
		return user.User{}, err
	}
	return created, nil
}

// UpdateUser puts the full record and returns the upstream's version of it.
func (c *Client) UpdateUser(ctx context.Context, record user.User) (user.User, error) {
	if record.ID.IsZero() {
		return user.User{}, apperrors.New(apperrors.CodeUserIDEmpty, "update user: id is required")
	}
	var updated user.User
	if err := c.do(ctx, "UpdateUser", http.MethodPut, c.userEndpoint(record.ID), record, &updated); err != nil {
		return user.User{}, err
	}
	return updated, nil
}

// DeleteUser removes the record identified by id.
func (c *Client) DeleteUser(ctx context.Context, id user.ID) error {
	if id.IsZero() {
		return apperrors.New(apperrors.CodeUserIDEmpty, "delete user: id is required")
	}
	return c.do(ctx, "DeleteUser", http.MethodDelete, c.userEndpoint(id), nil, nil)
}

// LiveLocation returns the raw newline-delimited sample payload.
func (c *Client) LiveLocation(ctx context.Context) ([]byte, error) {
	var payload []byte
	err := c.send(ctx, "LiveLocation", http.MethodGet, c.endpoint(liveLocationPath), nil, func(body io.Reader) error {
		data, err := io.ReadAll(io.LimitReader(body, maxLocationPayload+1))
		if err != nil {
			return err
		}
		if len(data) > maxLocationPayload {
			return errPayloadTooLarge
		}
		payload = data
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

func (c *Client) userEndpoint(id user.ID) string {
	return c.endpoint(usersPath + "/" + url.PathEscape(id.String()))
}

// do sends an optional JSON body and decodes a JSON response into out.
func (c *Client) do(ctx context.Context, operation, method, target string, in any, out any) error {
	return c.send(ctx, operation, method, target, in, func(body io.Reader) error {
		if out == nil {
			_, _ = io.Copy(io.Discard, body)
			return nil
		}
		return json.NewDecoder(body).Decode(out)
	})
}

func (c *Client) send(ctx context.Context, operation, method, target string, in any, read func(io.Reader) error) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "usersapi."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.full", target),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrap(apperrors.CodeUnknown, "encode "+operation+" request", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return apperrors.Wrap(apperrors.CodeUnknown, "build "+operation+" request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	platformotel.InjectHTTPHeaders(ctx, req.Header)
	span.SetAttributes(attribute.String("http.request.id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrap(apperrors.CodeUpstreamTimeout, operation+" timed out", err)
		}
		return apperrors.Wrap(apperrors.CodeUpstreamUnavailable, operation+" request failed", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		rejected := apperrors.Rejected(fmt.Sprintf("%s rejected with status %d", operation, resp.StatusCode), resp.StatusCode)
		if text := strings.TrimSpace(string(snippet)); text != "" {
			rejected.Metadata = map[string]string{"body": text}
		}
		return rejected
	}

	if err := read(resp.Body); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return apperrors.Wrap(apperrors.CodeUpstreamTimeout, operation+" timed out reading response", err)
		}
		return apperrors.Wrap(apperrors.CodeUpstreamMalformed, "decode "+operation+" response", err)
	}
	return nil
}

func retryable(err error) bool {
	switch apperrors.CodeOf(err) {
	case apperrors.CodeUpstreamUnavailable, apperrors.CodeUpstreamTimeout:
		return true
	case apperrors.CodeUpstreamRejected:
		status := apperrors.StatusOf(err)
		return status == http.StatusBadGateway ||
			status == http.StatusServiceUnavailable ||
			status == http.StatusGatewayTimeout
	default:
		return false
	}
}
