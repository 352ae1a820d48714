package xd

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/levelfourab/xd-go/internal/rest"
	streamsimpl "github.com/levelfourab/xd-go/internal/streams"
	"github.com/levelfourab/xd-go/streams"
	"github.com/levelfourab/xd-go/validation"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Client interface {
	// Streams returns the client to use for managing stream definitions.
	Streams() streams.Client

	// Close the client.
	Close() error
}

// ErrURLRequired is returned when no admin server URL is given.
var ErrURLRequired = validation.New("url", "admin server url is required")

type restClient struct {
	transport *rest.Transport

	streams streams.Client
}

// NewClient creates a new client to an XD admin server, such as
// "http://localhost:9393".
func NewClient(baseURL string, opts ...ClientOption) (Client, error) {
	options := &clientOptions{
		logger: slog.Default(),
	}
	for _, o := range opts {
		o(options)
	}

	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrURLRequired
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, validation.New("url", "invalid admin server url: "+baseURL)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	if options.timeout > 0 {
		// Copy so that a shared client is not modified.
		copied := *httpClient
		copied.Timeout = options.timeout
		httpClient = &copied
	}

	var metrics *rest.Metrics
	if options.registerer != nil {
		metrics, err = rest.NewMetrics(options.registerer)
		if err != nil {
			return nil, err
		}
	}

	tracerProvider := options.tracerProvider
	if tracerProvider == nil {
		tracerProvider = otel.GetTracerProvider()
	}

	transport := rest.New(rest.Config{
		BaseURL:    parsed,
		HTTPClient: httpClient,
		Logger:     options.logger,
		Metrics:    metrics,
		Username:   options.username,
		Password:   options.password,
		Retry:      options.retry,
	})

	return &restClient{
		transport: transport,
		streams:   streamsimpl.New(transport, options.logger, tracerProvider),
	}, nil
}

func (c *restClient) Streams() streams.Client {
	return c.streams
}

func (c *restClient) Close() error {
	c.transport.CloseIdleConnections()
	return nil
}

type clientOptions struct {
	httpClient     *http.Client
	timeout        time.Duration
	username       string
	password       string
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	registerer     prometheus.Registerer
	retry          func() backoff.BackOff
}

// ClientOption is an option to configure the client.
type ClientOption func(*clientOptions)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithTimeout sets the timeout for a single request.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithBasicAuth authenticates every request with the given credentials.
func WithBasicAuth(username string, password string) ClientOption {
	return func(o *clientOptions) {
		o.username = username
		o.password = password
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider, the global
// provider is used by default.
func WithTracerProvider(provider trace.TracerProvider) ClientOption {
	return func(o *clientOptions) {
		o.tracerProvider = provider
	}
}

// WithMetrics registers request metrics with the given registerer.
func WithMetrics(registerer prometheus.Registerer) ClientOption {
	return func(o *clientOptions) {
		o.registerer = registerer
	}
}

// WithRetry enables retrying of read operations that fail with a transient
// error. The function is called once per operation to create a fresh
// backoff. Creating streams is never retried.
//
// Example:
//
//	xd.WithRetry(func() backoff.BackOff {
//		return backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3)
//	})
func WithRetry(newBackOff func() backoff.BackOff) ClientOption {
	return func(o *clientOptions) {
		o.retry = newBackOff
	}
}
