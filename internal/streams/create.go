package streams

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/levelfourab/xd-go/internal/rest"
	"github.com/levelfourab/xd-go/streams"
	"github.com/levelfourab/xd-go/validation"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (c *Client) CreateStream(
	ctx context.Context,
	name string,
	definition string,
	deploy bool,
) (streams.Definition, error) {
	name = strings.TrimSpace(name)

	ctx, span := c.tracer.Start(
		ctx,
		"xd.streams.CreateStream",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("xd.stream.name", name),
			attribute.Bool("xd.stream.deploy", deploy),
		),
	)
	defer span.End()

	if err := validation.RequireText(name, streams.ErrNameRequired); err != nil {
		span.SetStatus(codes.Error, "name required")
		return streams.Definition{}, err
	}

	if err := validation.RequireText(definition, streams.ErrDefinitionRequired); err != nil {
		span.SetStatus(codes.Error, "definition required")
		return streams.Definition{}, err
	}

	c.logger.Debug(
		"Creating stream",
		slog.String("name", name),
		slog.String("definition", definition),
		slog.Bool("deploy", deploy),
	)

	res, err := c.transport.Do(ctx, rest.Request{
		Op:     "create",
		Method: http.MethodPost,
		Path:   definitionsPath,
		Form: url.Values{
			"name":       []string{name},
			"definition": []string{definition},
			"deploy":     []string{strconv.FormatBool(deploy)},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create stream")
		return streams.Definition{}, toCreateError(name, err)
	}

	created := toDefinition(gjson.ParseBytes(res.Body))
	if created.Name == "" {
		// Some servers answer with an empty body, fall back to the input.
		created = streams.Definition{
			Name:       name,
			Definition: definition,
			Deployed:   deploy,
			Status:     statusFor(deploy),
		}
	}

	span.SetStatus(codes.Ok, "")
	return created, nil
}

func toCreateError(name string, err error) error {
	var restErr *rest.Error
	if !errors.As(err, &restErr) {
		return &streams.TransportError{Op: "create", Err: err}
	}

	if restErr.StatusCode == http.StatusConflict {
		return &streams.ConflictError{
			Name:    name,
			Message: restErr.Message,
		}
	}

	return toTransportError("create", restErr)
}

func toTransportError(op string, err *rest.Error) error {
	return &streams.TransportError{
		Op:         op,
		StatusCode: err.StatusCode,
		Message:    err.Message,
		Err:        err.Err,
	}
}

func statusFor(deployed bool) string {
	if deployed {
		return streams.StatusDeployed
	}

	return streams.StatusUndeployed
}

// toDefinition maps a stream definition resource. Older servers only report
// a deployed flag, newer ones a status, either is accepted.
func toDefinition(doc gjson.Result) streams.Definition {
	d := streams.Definition{
		Name:       doc.Get("name").String(),
		Definition: doc.Get("definition").String(),
		Status:     doc.Get("status").String(),
	}

	if deployed := doc.Get("deployed"); deployed.Exists() {
		d.Deployed = deployed.Bool()
	} else {
		d.Deployed = d.Status == streams.StatusDeployed
	}

	if d.Status == "" {
		d.Status = statusFor(d.Deployed)
	}

	return d
}
