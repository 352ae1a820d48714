package streams

import (
	"log/slog"

	"github.com/levelfourab/xd-go/internal/rest"
	"github.com/levelfourab/xd-go/streams"
	"go.opentelemetry.io/otel/trace"
)

// definitionsPath is the collection of stream definitions on the admin
// server.
const definitionsPath = "/streams/definitions"

type Client struct {
	transport *rest.Transport
	logger    *slog.Logger
	tracer    trace.Tracer
}

func New(transport *rest.Transport, logger *slog.Logger, tracerProvider trace.TracerProvider) *Client {
	return &Client{
		transport: transport,
		logger:    logger,
		tracer:    tracerProvider.Tracer("xd-go/streams"),
	}
}

var _ streams.Client = (*Client)(nil)
