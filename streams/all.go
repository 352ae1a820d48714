package streams

import "context"

// All fetches every stream definition, starting at the page selected by
// opts and requesting the following pages until [Page.HasNext] reports the
// last one. Page numbers are counted locally, servers that only send a next
// link are supported.
func All(ctx context.Context, client Client, opts ...ListOption) ([]Definition, error) {
	resolved, err := ResolveListOptions(opts...)
	if err != nil {
		return nil, err
	}

	page := 0
	if resolved.Page != nil {
		page = *resolved.Page
	}

	var result []Definition
	for {
		current := []ListOption{WithPage(page)}
		if resolved.Size != nil {
			current = append(current, WithPageSize(*resolved.Size))
		}

		p, err := client.List(ctx, current...)
		if err != nil {
			return nil, err
		}

		result = append(result, p.Definitions...)
		if !p.HasNext() || len(p.Definitions) == 0 {
			return result, nil
		}

		page++
	}
}
