package rest_test

import (
	"github.com/levelfourab/xd-go/internal/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/tidwall/gjson"
)

var _ = Describe("HAL", func() {
	Describe("ErrorMessage", func() {
		It("reads VndErrors", func() {
			body := []byte(`[{"logref":"StreamAlreadyExistsException","message":"There is already a stream named 'a'"}]`)
			Expect(rest.ErrorMessage(body)).To(Equal("There is already a stream named 'a'"))
		})

		It("reads single error objects", func() {
			Expect(rest.ErrorMessage([]byte(`{"message":"boom"}`))).To(Equal("boom"))
			Expect(rest.ErrorMessage([]byte(`{"error":"Unauthorized"}`))).To(Equal("Unauthorized"))
		})

		It("falls back to the raw body", func() {
			Expect(rest.ErrorMessage([]byte("  upstream down\n"))).To(Equal("upstream down"))
		})

		It("returns nothing for unknown JSON", func() {
			Expect(rest.ErrorMessage([]byte(`{"status":500}`))).To(BeEmpty())
		})
	})

	Describe("Embedded", func() {
		It("returns the first collection regardless of its name", func() {
			doc := gjson.Parse(`{"_embedded":{"streamDefinitionResourceList":[{"name":"a"},{"name":"b"}]}}`)
			items := rest.Embedded(doc)
			Expect(items).To(HaveLen(2))
			Expect(items[1].Get("name").String()).To(Equal("b"))
		})

		It("skips non-collection values", func() {
			doc := gjson.Parse(`{"_embedded":{"meta":{"x":1},"streams":[{"name":"a"}]}}`)
			Expect(rest.Embedded(doc)).To(HaveLen(1))
		})

		It("returns nothing when missing", func() {
			Expect(rest.Embedded(gjson.Parse(`{"page":{}}`))).To(BeEmpty())
		})
	})

	It("reads links", func() {
		doc := gjson.Parse(`{"_links":{"next":{"href":"http://x/streams?page=1"}}}`)
		Expect(rest.Link(doc, "next")).To(Equal("http://x/streams?page=1"))
		Expect(rest.Link(doc, "prev")).To(BeEmpty())
	})
})
