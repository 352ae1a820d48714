package streams

import "github.com/levelfourab/xd-go/validation"

// ListOptions controls which page is returned by [Client.List]. A nil field
// means that the server default is used.
type ListOptions struct {
	// Page is the zero-based index of the page to fetch.
	Page *int
	// Size is the number of streams per page.
	Size *int
}

// ListOption defines an option for listing streams.
type ListOption func(*ListOptions) error

// ErrInvalidPage is returned when a negative page index is requested.
var ErrInvalidPage = validation.New("page", "page must not be negative")

// ErrInvalidPageSize is returned when a page size below one is requested.
var ErrInvalidPageSize = validation.New("size", "page size must be positive")

// WithPage selects the zero-based page to fetch.
func WithPage(page int) ListOption {
	return func(o *ListOptions) error {
		if page < 0 {
			return ErrInvalidPage
		}

		o.Page = &page
		return nil
	}
}

// WithPageSize sets the number of streams to return per page.
func WithPageSize(size int) ListOption {
	return func(o *ListOptions) error {
		if size <= 0 {
			return ErrInvalidPageSize
		}

		o.Size = &size
		return nil
	}
}

// ResolveListOptions applies the given options in order.
func ResolveListOptions(opts ...ListOption) (ListOptions, error) {
	var resolved ListOptions
	for _, opt := range opts {
		if err := opt(&resolved); err != nil {
			return ListOptions{}, err
		}
	}

	return resolved, nil
}
