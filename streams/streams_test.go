package streams_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/levelfourab/xd-go/streams"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// pagedClient serves a fixed set of definitions in pages.
type pagedClient struct {
	definitions []streams.Definition
	calls       []streams.ListOptions
	err         error
	// linkOnly omits the page metadata and only sets the next link.
	linkOnly bool
}

func (c *pagedClient) CreateStream(context.Context, string, string, bool) (streams.Definition, error) {
	return streams.Definition{}, errors.New("not supported")
}

func (c *pagedClient) List(_ context.Context, opts ...streams.ListOption) (streams.Page, error) {
	resolved, err := streams.ResolveListOptions(opts...)
	if err != nil {
		return streams.Page{}, err
	}
	c.calls = append(c.calls, resolved)

	if c.err != nil {
		return streams.Page{}, c.err
	}

	size := 2
	if resolved.Size != nil {
		size = *resolved.Size
	}

	number := 0
	if resolved.Page != nil {
		number = *resolved.Page
	}

	start := min(number*size, len(c.definitions))
	end := min(start+size, len(c.definitions))
	if c.linkOnly {
		page := streams.Page{Definitions: c.definitions[start:end]}
		if end < len(c.definitions) {
			page.Next = fmt.Sprintf("http://localhost:9393/streams/definitions?page=%d", number+1)
		}
		return page, nil
	}

	return streams.Page{
		Definitions:   c.definitions[start:end],
		Size:          size,
		Number:        number,
		TotalElements: len(c.definitions),
		TotalPages:    (len(c.definitions) + size - 1) / size,
	}, nil
}

func definitions(n int) []streams.Definition {
	result := make([]streams.Definition, n)
	for i := range result {
		result[i] = streams.Definition{Name: fmt.Sprintf("s%d", i), Definition: "time | log"}
	}
	return result
}

var _ = Describe("Streams", func() {
	Describe("ListOptions", func() {
		It("leaves unset options empty", func() {
			resolved, err := streams.ResolveListOptions()
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.Page).To(BeNil())
			Expect(resolved.Size).To(BeNil())
		})

		It("applies page and size", func() {
			resolved, err := streams.ResolveListOptions(streams.WithPage(0), streams.WithPageSize(50))
			Expect(err).ToNot(HaveOccurred())
			Expect(*resolved.Page).To(Equal(0))
			Expect(*resolved.Size).To(Equal(50))
		})

		It("rejects invalid values", func() {
			_, err := streams.ResolveListOptions(streams.WithPage(-1))
			Expect(err).To(MatchError(streams.ErrInvalidPage))
			Expect(streams.IsValidationError(err)).To(BeTrue())

			_, err = streams.ResolveListOptions(streams.WithPageSize(-5))
			Expect(err).To(MatchError(streams.ErrInvalidPageSize))
		})
	})

	Describe("Page", func() {
		It("has a next page when linked", func() {
			Expect(streams.Page{Next: "http://x"}.HasNext()).To(BeTrue())
		})

		It("has a next page when more pages exist", func() {
			Expect(streams.Page{Number: 0, TotalPages: 2}.HasNext()).To(BeTrue())
			Expect(streams.Page{Number: 1, TotalPages: 2}.HasNext()).To(BeFalse())
			Expect(streams.Page{}.HasNext()).To(BeFalse())
		})

		It("finds definitions by name", func() {
			page := streams.Page{Definitions: definitions(3)}
			d, ok := page.Find("s1")
			Expect(ok).To(BeTrue())
			Expect(d.Name).To(Equal("s1"))

			_, ok = page.Find("missing")
			Expect(ok).To(BeFalse())
		})
	})

	Describe("All", func() {
		It("follows every page", func(ctx context.Context) {
			client := &pagedClient{definitions: definitions(5)}

			all, err := streams.All(ctx, client)
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(Equal(definitions(5)))
			Expect(client.calls).To(HaveLen(3))
		})

		It("counts pages when the server only sends next links", func(ctx context.Context) {
			client := &pagedClient{definitions: definitions(3), linkOnly: true}

			all, err := streams.All(ctx, client, streams.WithPageSize(1))
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(Equal(definitions(3)))
			Expect(client.calls).To(HaveLen(3))
			for i, call := range client.calls {
				Expect(*call.Page).To(Equal(i))
			}
		})

		It("continues from the requested start with next links", func(ctx context.Context) {
			client := &pagedClient{definitions: definitions(5), linkOnly: true}

			all, err := streams.All(ctx, client, streams.WithPage(1), streams.WithPageSize(2))
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(Equal(definitions(5)[2:]))
			Expect(client.calls).To(HaveLen(2))
		})

		It("keeps the requested page size and start", func(ctx context.Context) {
			client := &pagedClient{definitions: definitions(5)}

			all, err := streams.All(ctx, client, streams.WithPage(1), streams.WithPageSize(3))
			Expect(err).ToNot(HaveOccurred())
			Expect(all).To(Equal(definitions(5)[3:]))
			Expect(*client.calls[0].Size).To(Equal(3))
		})

		It("returns errors from the client", func(ctx context.Context) {
			client := &pagedClient{err: &streams.TransportError{Op: "list"}}

			_, err := streams.All(ctx, client)
			Expect(streams.IsTransportError(err)).To(BeTrue())
		})

		It("validates options", func(ctx context.Context) {
			client := &pagedClient{}

			_, err := streams.All(ctx, client, streams.WithPageSize(0))
			Expect(err).To(MatchError(streams.ErrInvalidPageSize))
			Expect(client.calls).To(BeEmpty())
		})
	})

	Describe("Errors", func() {
		It("describes conflicts", func() {
			err := &streams.ConflictError{Name: "a", Message: "taken"}
			Expect(err.Error()).To(Equal(`stream "a" already exists: taken`))
			Expect(streams.IsConflict(fmt.Errorf("wrapped: %w", err))).To(BeTrue())
		})

		It("describes transport failures", func() {
			Expect((&streams.TransportError{Op: "list", StatusCode: 503}).Error()).
				To(Equal("list streams: server responded 503"))
			Expect((&streams.TransportError{Op: "list", Err: errors.New("refused")}).Error()).
				To(Equal("list streams: refused"))

			inner := errors.New("refused")
			Expect(errors.Is(&streams.TransportError{Op: "create", Err: inner}, inner)).To(BeTrue())
		})
	})
})
