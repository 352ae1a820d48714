package main

import (
	"bytes"
	"net/http"
	"os"
	"path/filepath"

	"github.com/levelfourab/xd-go/streamstest"
	"github.com/levelfourab/xd-go/validation"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func run(args ...string) (string, error) {
	cmd := newRootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

var _ = Describe("stream", func() {
	var server *streamstest.Server

	BeforeEach(func() {
		server = streamstest.NewServer()
		DeferCleanup(server.Close)
	})

	Describe("create", func() {
		It("creates an undeployed stream", func() {
			out, err := run("--admin-url", server.URL, "stream", "create", "ticktock", "time | log")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("Created stream 'ticktock' (undeployed)"))

			Expect(server.Streams()).To(ConsistOf(streamstest.Stream{
				Name:       "ticktock",
				Definition: "time | log",
			}))
		})

		It("joins the remaining arguments into the definition", func() {
			_, err := run("--admin-url", server.URL, "stream", "create", "--deploy", "ticktock", "time", "|", "log")
			Expect(err).ToNot(HaveOccurred())

			Expect(server.Streams()).To(ConsistOf(streamstest.Stream{
				Name:       "ticktock",
				Definition: "time | log",
				Deployed:   true,
			}))
		})

		It("requires a name and a definition", func() {
			_, err := run("--admin-url", server.URL, "stream", "create", "ticktock")
			Expect(err).To(HaveOccurred())
			Expect(server.Requests()).To(Equal(0))
		})

		It("reports conflicts", func() {
			server.Add(streamstest.Stream{Name: "ticktock", Definition: "time | log"})

			_, err := run("--admin-url", server.URL, "stream", "create", "ticktock", "http | log")
			Expect(err).To(MatchError(ContainSubstring("already exists")))
		})

		It("sends credentials", func() {
			server.RequireBasicAuth("admin", "secret")

			_, err := run("--admin-url", server.URL, "--username", "admin", "--password", "secret",
				"stream", "create", "ticktock", "time | log")
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("list", func() {
		It("reports an empty server", func() {
			out, err := run("--admin-url", server.URL, "stream", "list")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("No streams found."))
		})

		It("prints a table", func() {
			server.Add(streamstest.Stream{Name: "s1", Definition: "http | log", Deployed: true})
			server.Add(streamstest.Stream{Name: "s2", Definition: "time | file"})

			out, err := run("--admin-url", server.URL, "stream", "list")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("Name"))
			Expect(out).To(MatchRegexp(`s1\s+deployed\s+http \| log`))
			Expect(out).To(MatchRegexp(`s2\s+undeployed\s+time \| file`))
		})

		It("shows paging information", func() {
			for _, name := range []string{"a", "b", "c"} {
				server.Add(streamstest.Stream{Name: name, Definition: "time | log"})
			}

			out, err := run("--admin-url", server.URL, "stream", "list", "--size", "2", "--page", "1")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(MatchRegexp(`(?m)^c\s+undeployed`))
			Expect(out).To(ContainSubstring("Page 2 of 2, 3 streams in total"))
		})

		It("fetches all pages", func() {
			for _, name := range []string{"first", "second", "third"} {
				server.Add(streamstest.Stream{Name: name, Definition: "time | log"})
			}

			out, err := run("--admin-url", server.URL, "stream", "list", "--size", "1", "--all")
			Expect(err).ToNot(HaveOccurred())
			Expect(out).To(ContainSubstring("first"))
			Expect(out).To(ContainSubstring("second"))
			Expect(out).To(ContainSubstring("third"))
			Expect(out).ToNot(ContainSubstring("Page"))
		})

		It("validates the page size", func() {
			_, err := run("--admin-url", server.URL, "stream", "list", "--size", "0")
			Expect(validation.Is(err)).To(BeTrue())
			Expect(server.Requests()).To(Equal(0))
		})

		It("reports server failures", func() {
			server.FailNext(1, http.StatusInternalServerError)

			_, err := run("--admin-url", server.URL, "stream", "list")
			Expect(err).To(MatchError(ContainSubstring("500")))
		})
	})

	It("takes the admin URL from the environment file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "env.yaml")
		Expect(os.WriteFile(path, []byte("adminUrl: "+server.URL+"\n"), 0o600)).To(Succeed())

		_, err := run("--env-file", path, "stream", "list")
		Expect(err).ToNot(HaveOccurred())
		Expect(server.Requests()).To(Equal(1))
	})

	It("rejects an invalid admin URL", func() {
		_, err := run("--admin-url", "not a url", "stream", "list")
		Expect(validation.Is(err)).To(BeTrue())
	})
})

var _ = Describe("fixture dsl", func() {
	It("renders an HTTP source with defaults", func() {
		out, err := run("fixture", "dsl", "http")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("http --port=9000"))
		Expect(out).To(ContainSubstring("# tcp localhost:9000"))
	})

	It("applies the port flag", func() {
		out, err := run("fixture", "dsl", "tcp", "--port", "4321")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(ContainSubstring("tcp --port=4321"))
	})

	It("renders a tap", func() {
		out, err := run("fixture", "dsl", "tap", "--stream", "ticktock")
		Expect(err).ToNot(HaveOccurred())
		Expect(out).To(Equal("tap:stream:ticktock\n"))
	})

	It("validates fixture arguments", func() {
		_, err := run("fixture", "dsl", "file", "--dir", "/tmp")
		Expect(validation.Is(err)).To(BeTrue())
	})

	It("rejects unknown kinds", func() {
		_, err := run("fixture", "dsl", "carrier-pigeon")
		Expect(err).To(MatchError(ContainSubstring("unknown fixture kind")))
	})
})
