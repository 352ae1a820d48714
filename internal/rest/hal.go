package rest

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ErrorMessage extracts the message from an error body. Both VndErrors
// arrays and single error objects are understood, for anything else the
// trimmed body is returned.
func ErrorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return strings.TrimSpace(string(body))
	}

	doc := gjson.ParseBytes(body)
	if doc.IsArray() {
		doc = doc.Get("0")
	}

	for _, field := range []string{"message", "error", "detail"} {
		if v := doc.Get(field); v.Exists() && v.String() != "" {
			return v.String()
		}
	}

	return ""
}

// Embedded returns the first collection under "_embedded". HAL responses
// name the collection after the resource type, which differs between
// server versions, so callers should not depend on the relation name.
func Embedded(doc gjson.Result) []gjson.Result {
	var items []gjson.Result
	doc.Get("_embedded").ForEach(func(_, value gjson.Result) bool {
		if value.IsArray() {
			items = value.Array()
			return false
		}

		return true
	})

	return items
}

// Link returns the href of the named link, or an empty string.
func Link(doc gjson.Result, rel string) string {
	return doc.Get("_links." + rel + ".href").String()
}
