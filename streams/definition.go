package streams

// Status values reported by the server for a stream.
const (
	StatusDeployed   = "deployed"
	StatusUndeployed = "undeployed"
)

// Definition describes a stream as known to the server.
type Definition struct {
	// Name is the unique identifier of the stream.
	Name string
	// Definition is the pipeline description of the stream.
	Definition string
	// Deployed indicates if the stream is currently deployed.
	Deployed bool
	// Status is the deployment status as reported by the server.
	Status string
}

// Page is a single page of stream definitions.
type Page struct {
	// Definitions on this page, in the order returned by the server.
	Definitions []Definition

	// Size is the requested size of the page.
	Size int
	// Number is the zero-based index of the page.
	Number int
	// TotalElements is the number of streams across all pages.
	TotalElements int
	// TotalPages is the number of available pages.
	TotalPages int

	// Next is the link to the next page. Empty if this is the last page.
	Next string
}

// HasNext returns if there is another page after this one.
func (p Page) HasNext() bool {
	if p.Next != "" {
		return true
	}

	return p.TotalPages > 0 && p.Number+1 < p.TotalPages
}

// Find returns the definition with the given name if it is on this page.
func (p Page) Find(name string) (Definition, bool) {
	for _, d := range p.Definitions {
		if d.Name == name {
			return d, true
		}
	}

	return Definition{}, false
}
