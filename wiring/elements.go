package wiring

import "encoding/xml"

// Attributes is an [Element] backed by a map.
type Attributes map[string]string

func (a Attributes) Attribute(name string) string {
	return a[name]
}

// XMLElement adapts a parsed XML start element. Attributes are matched on
// their local name, ignoring namespaces.
type XMLElement xml.StartElement

func (e XMLElement) Attribute(name string) string {
	for _, attr := range e.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}

	return ""
}

var (
	_ Element = Attributes{}
	_ Element = XMLElement{}
)
