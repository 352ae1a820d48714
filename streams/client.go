// Package streams contains the API for managing stream definitions on an XD
// admin server.
//
// A stream is a named processing pipeline described by a definition such as
// "http --port=9000 | log". Streams are created via [Client.CreateStream],
// optionally deploying them at the same time, and can be listed page by page
// via [Client.List].
package streams

import "context"

// Client is used to manage stream definitions.
type Client interface {
	// CreateStream creates a new stream with the given name and definition,
	// optionally deploying it.
	//
	// The name and definition are required, [ErrNameRequired] or
	// [ErrDefinitionRequired] is returned without contacting the server if
	// either is blank. Names are unique on the server, creating a stream
	// with a name that is already taken returns a [*ConflictError].
	//
	// The returned definition reflects the state on the server, such as
	// the current deployment status.
	CreateStream(ctx context.Context, name string, definition string, deploy bool) (Definition, error)

	// List returns a page of the streams known to the server, in the order
	// defined by the server.
	//
	// Use [WithPage] and [WithPageSize] to select a page. If no options are
	// given the server defaults are used.
	List(ctx context.Context, opts ...ListOption) (Page, error)
}
