package streams

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/levelfourab/xd-go/internal/rest"
	"github.com/levelfourab/xd-go/streams"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

func (c *Client) List(ctx context.Context, opts ...streams.ListOption) (streams.Page, error) {
	ctx, span := c.tracer.Start(
		ctx,
		"xd.streams.List",
		trace.WithSpanKind(trace.SpanKindClient),
	)
	defer span.End()

	resolved, err := streams.ResolveListOptions(opts...)
	if err != nil {
		span.SetStatus(codes.Error, "invalid options")
		return streams.Page{}, err
	}

	query := url.Values{}
	if resolved.Page != nil {
		query.Set("page", strconv.Itoa(*resolved.Page))
		span.SetAttributes(attribute.Int("xd.page.number", *resolved.Page))
	}

	if resolved.Size != nil {
		query.Set("size", strconv.Itoa(*resolved.Size))
		span.SetAttributes(attribute.Int("xd.page.size", *resolved.Size))
	}

	c.logger.Debug(
		"Listing streams",
		slog.Any("query", query),
	)

	res, err := c.transport.Do(ctx, rest.Request{
		Op:         "list",
		Method:     http.MethodGet,
		Path:       definitionsPath,
		Query:      query,
		Idempotent: true,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list streams")

		var restErr *rest.Error
		if errors.As(err, &restErr) {
			return streams.Page{}, toTransportError("list", restErr)
		}

		return streams.Page{}, &streams.TransportError{Op: "list", Err: err}
	}

	if !gjson.ValidBytes(res.Body) {
		span.SetStatus(codes.Error, "invalid response")
		return streams.Page{}, &streams.TransportError{
			Op:         "list",
			StatusCode: res.StatusCode,
			Message:    "response is not valid JSON",
		}
	}

	page := toPage(gjson.ParseBytes(res.Body))
	span.SetAttributes(attribute.Int("xd.page.items", len(page.Definitions)))
	span.SetStatus(codes.Ok, "")
	return page, nil
}

func toPage(doc gjson.Result) streams.Page {
	items := rest.Embedded(doc)
	definitions := make([]streams.Definition, 0, len(items))
	for _, item := range items {
		definitions = append(definitions, toDefinition(item))
	}

	meta := doc.Get("page")
	return streams.Page{
		Definitions:   definitions,
		Size:          int(meta.Get("size").Int()),
		Number:        int(meta.Get("number").Int()),
		TotalElements: int(meta.Get("totalElements").Int()),
		TotalPages:    int(meta.Get("totalPages").Int()),
		Next:          rest.Link(doc, "next"),
	}
}
