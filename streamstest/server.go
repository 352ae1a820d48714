// Package streamstest provides an in-memory admin server for testing code
// that manages streams.
//
// The server speaks the same HAL based format as a real admin server for
// creating and listing stream definitions. Failures can be injected to test
// error handling:
//
//	server := streamstest.NewServer()
//	defer server.Close()
//
//	server.FailNext(2, http.StatusServiceUnavailable)
package streamstest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// DefaultPageSize is used when a list request does not specify a size.
const DefaultPageSize = 20

const definitionsPath = "/streams/definitions"

// Stream is a stream definition as stored by the server.
type Stream struct {
	Name       string
	Definition string
	Deployed   bool
}

// Server is a fake admin server. It is safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	streams  []Stream
	failures []int
	requests int
	username string
	password string
}

// NewServer starts a new server, call Close when done.
func NewServer() *Server {
	s := &Server{}
	s.Server = httptest.NewServer(s)
	return s
}

// Streams returns a copy of the streams known to the server, in creation
// order.
func (s *Server) Streams() []Stream {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]Stream, len(s.streams))
	copy(result, s.streams)
	return result
}

// Add stores a stream directly, bypassing the API.
func (s *Server) Add(stream Stream) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.streams = append(s.streams, stream)
}

// FailNext makes the next n requests fail with the given status.
func (s *Server) FailNext(n int, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := 0; i < n; i++ {
		s.failures = append(s.failures, status)
	}
}

// RequireBasicAuth makes the server reject requests that do not carry the
// given credentials.
func (s *Server) RequireBasicAuth(username string, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = username
	s.password = password
}

// Requests returns the number of requests received.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.requests
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.requests++
	if len(s.failures) > 0 {
		status := s.failures[0]
		s.failures = s.failures[1:]
		s.mu.Unlock()

		writeError(w, status, "InjectedFailure", http.StatusText(status))
		return
	}
	username, password := s.username, s.password
	s.mu.Unlock()

	if username != "" {
		u, p, ok := r.BasicAuth()
		if !ok || u != username || p != password {
			writeError(w, http.StatusUnauthorized, "AccessDenied", "authentication required")
			return
		}
	}

	if strings.TrimSuffix(r.URL.Path, "/") != definitionsPath {
		writeError(w, http.StatusNotFound, "NoSuchResource", "no resource at "+r.URL.Path)
		return
	}

	switch r.Method {
	case http.MethodPost:
		s.create(w, r)
	case http.MethodGet:
		s.list(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "MethodNotAllowed", r.Method+" is not supported")
	}
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "InvalidForm", err.Error())
		return
	}

	name := r.PostForm.Get("name")
	definition := r.PostForm.Get("definition")
	if strings.TrimSpace(name) == "" || strings.TrimSpace(definition) == "" {
		writeError(w, http.StatusBadRequest, "MissingParameter", "name and definition are required")
		return
	}

	deploy, _ := strconv.ParseBool(r.PostForm.Get("deploy"))

	s.mu.Lock()
	for _, existing := range s.streams {
		if existing.Name == name {
			s.mu.Unlock()
			writeError(w, http.StatusConflict, "StreamAlreadyExistsException",
				"There is already a stream named '"+name+"'")
			return
		}
	}

	stream := Stream{Name: name, Definition: definition, Deployed: deploy}
	s.streams = append(s.streams, stream)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, toResource(s.URL, stream))
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	page, ok := queryInt(r, "page", 0)
	if !ok || page < 0 {
		writeError(w, http.StatusBadRequest, "InvalidParameter", "invalid page")
		return
	}

	size, ok := queryInt(r, "size", DefaultPageSize)
	if !ok || size <= 0 {
		writeError(w, http.StatusBadRequest, "InvalidParameter", "invalid size")
		return
	}

	all := s.Streams()
	totalPages := len(all) / size
	if len(all)%size != 0 {
		totalPages++
	}

	// page is bounded by totalPages before multiplying.
	start, end := len(all), len(all)
	if page < totalPages {
		start = page * size
		if size < end-start {
			end = start + size
		}
	}

	items := make([]resource, 0, end-start)
	for _, stream := range all[start:end] {
		items = append(items, toResource(s.URL, stream))
	}

	links := map[string]link{
		"self": {Href: pageURL(s.URL, page, size)},
	}
	if page < totalPages-1 {
		links["next"] = link{Href: pageURL(s.URL, page+1, size)}
	}

	writeJSON(w, http.StatusOK, pagedResources{
		Embedded: map[string][]resource{
			"streamDefinitionResourceList": items,
		},
		Page: pageMetadata{
			Size:          size,
			TotalElements: len(all),
			TotalPages:    totalPages,
			Number:        page,
		},
		Links: links,
	})
}

func queryInt(r *http.Request, key string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, true
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}

	return v, true
}

func pageURL(base string, page int, size int) string {
	return base + definitionsPath + "?page=" + strconv.Itoa(page) + "&size=" + strconv.Itoa(size)
}

type link struct {
	Href string `json:"href"`
}

type resource struct {
	Name       string          `json:"name"`
	Definition string          `json:"definition"`
	Status     string          `json:"status"`
	Links      map[string]link `json:"_links"`
}

type pageMetadata struct {
	Size          int `json:"size"`
	TotalElements int `json:"totalElements"`
	TotalPages    int `json:"totalPages"`
	Number        int `json:"number"`
}

type pagedResources struct {
	Embedded map[string][]resource `json:"_embedded"`
	Page     pageMetadata          `json:"page"`
	Links    map[string]link       `json:"_links"`
}

type vndError struct {
	Logref  string `json:"logref"`
	Message string `json:"message"`
}

func toResource(base string, stream Stream) resource {
	status := "undeployed"
	if stream.Deployed {
		status = "deployed"
	}

	return resource{
		Name:       stream.Name,
		Definition: stream.Definition,
		Status:     status,
		Links: map[string]link{
			"self": {Href: base + definitionsPath + "/" + stream.Name},
		},
	}
}

func writeError(w http.ResponseWriter, status int, logref string, message string) {
	writeJSON(w, status, []vndError{{Logref: logref, Message: message}})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
