// Package rest contains the HTTP transport used to talk to the admin server.
package rest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// maxBodySize limits how much of a response body is read.
const maxBodySize = 8 << 20

type Config struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *Metrics

	// Username and Password enable basic authentication when Username is
	// set.
	Username string
	Password string

	// Retry creates the backoff used for idempotent requests. If nil,
	// requests are never retried.
	Retry func() backoff.BackOff
}

type Transport struct {
	baseURL  *url.URL
	client   *http.Client
	logger   *slog.Logger
	metrics  *Metrics
	username string
	password string
	retry    func() backoff.BackOff
}

func New(config Config) *Transport {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{}
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Transport{
		baseURL:  config.BaseURL,
		client:   client,
		logger:   logger,
		metrics:  config.Metrics,
		username: config.Username,
		password: config.Password,
		retry:    config.Retry,
	}
}

// Request describes a single call against the admin server.
type Request struct {
	// Op names the operation for logs and metrics.
	Op     string
	Method string
	// Path is relative to the base URL.
	Path  string
	Query url.Values
	// Form is sent as an application/x-www-form-urlencoded body.
	Form url.Values
	// Idempotent requests may be retried on transient failures.
	Idempotent bool
}

type Response struct {
	StatusCode int
	Body       []byte
}

// Do performs the request. A non-2xx response is returned as an [*Error]
// holding the status code, failures to reach the server as an [*Error]
// with a zero status code.
func (t *Transport) Do(ctx context.Context, req Request) (*Response, error) {
	if !req.Idempotent || t.retry == nil {
		return t.doOnce(ctx, req)
	}

	var res *Response
	attempt := func() error {
		r, err := t.doOnce(ctx, req)
		if err != nil {
			if !IsTransient(err) {
				return backoff.Permanent(err)
			}

			return err
		}

		res = r
		return nil
	}

	notify := func(err error, delay time.Duration) {
		t.logger.Debug(
			"Retrying request",
			slog.String("op", req.Op),
			slog.Duration("delay", delay),
			slog.Any("error", err),
		)
	}

	err := backoff.RetryNotify(attempt, backoff.WithContext(t.retry(), ctx), notify)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (t *Transport) doOnce(ctx context.Context, req Request) (*Response, error) {
	target := t.resolve(req.Path, req.Query)

	var body io.Reader
	if req.Form != nil {
		body = strings.NewReader(req.Form.Encode())
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("creating request: %w", err)}
	}

	httpReq.Header.Set("Accept", "application/json")
	if req.Form != nil {
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	if t.username != "" {
		httpReq.SetBasicAuth(t.username, t.password)
	}

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(
		semconv.HTTPRequestMethodKey.String(req.Method),
		semconv.URLFull(target.String()),
		semconv.ServerAddress(target.Hostname()),
	)

	t.logger.Debug(
		"Sending request",
		slog.String("op", req.Op),
		slog.String("method", req.Method),
		slog.String("url", target.String()),
	)

	start := time.Now()
	httpRes, err := t.client.Do(httpReq)
	if err != nil {
		t.metrics.observe(req.Op, outcomeError, time.Since(start))
		return nil, &Error{Err: err}
	}
	defer httpRes.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpRes.Body, maxBodySize))
	if err != nil {
		t.metrics.observe(req.Op, outcomeError, time.Since(start))
		return nil, &Error{StatusCode: httpRes.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	span.SetAttributes(semconv.HTTPResponseStatusCode(httpRes.StatusCode))
	t.metrics.observe(req.Op, outcomeFor(httpRes.StatusCode), time.Since(start))

	if httpRes.StatusCode < 200 || httpRes.StatusCode > 299 {
		return nil, &Error{
			StatusCode: httpRes.StatusCode,
			Message:    ErrorMessage(data),
		}
	}

	return &Response{
		StatusCode: httpRes.StatusCode,
		Body:       data,
	}, nil
}

func (t *Transport) resolve(path string, query url.Values) *url.URL {
	u := *t.baseURL
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(path, "/")
	u.RawPath = ""
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	} else {
		u.RawQuery = ""
	}

	return &u
}

// CloseIdleConnections closes any idle connections held by the HTTP client.
func (t *Transport) CloseIdleConnections() {
	t.client.CloseIdleConnections()
}

// Error is returned by [Transport.Do] when a request fails.
type Error struct {
	// StatusCode is zero if no response was received.
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		if e.Message != "" {
			return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
		}

		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}

	if e.Err != nil {
		return e.Err.Error()
	}

	return "request failed"
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTransient checks if the request may succeed if tried again. Network
// failures and gateway or availability statuses are transient.
func IsTransient(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}

	if errors.Is(e.Err, context.Canceled) || errors.Is(e.Err, context.DeadlineExceeded) {
		return false
	}

	switch e.StatusCode {
	case 0:
		return true
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}

	return false
}
