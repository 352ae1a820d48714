package fixtures

import (
	"net"
	"strconv"
)

// Defaults for network fixtures.
const (
	DefaultHost       = "localhost"
	DefaultHTTPPort   = 9000
	DefaultTCPPort    = 1234
	DefaultSyslogPort = 5140
)

type endpoint struct {
	host string
	port int
}

func (e endpoint) Host() string {
	return e.host
}

func (e endpoint) Port() int {
	return e.port
}

// Address returns host:port, bracketing IPv6 hosts.
func (e endpoint) Address() string {
	return net.JoinHostPort(e.host, strconv.Itoa(e.port))
}

// EndpointOption overrides the host or port of a network fixture.
type EndpointOption func(*endpoint)

// WithHost sets the host data will be sent to. An empty host keeps the
// default.
func WithHost(host string) EndpointOption {
	return func(e *endpoint) {
		if host != "" {
			e.host = host
		}
	}
}

// WithPort sets the port data will be sent to. Zero keeps the default.
func WithPort(port int) EndpointOption {
	return func(e *endpoint) {
		if port != 0 {
			e.port = port
		}
	}
}

func newEndpoint(host string, port int, opts []EndpointOption) endpoint {
	e := endpoint{host: host, port: port}
	for _, opt := range opts {
		opt(&e)
	}

	return e
}

// HTTPSource receives data posted over HTTP.
type HTTPSource struct {
	endpoint
}

func (HTTPSource) Kind() Kind {
	return KindHTTP
}

func (HTTPSource) Network() string {
	return "tcp"
}

func (s HTTPSource) DSL() string {
	return "http " + option("port", strconv.Itoa(s.port))
}

// URL is the URL data should be posted to.
func (s HTTPSource) URL() string {
	return "http://" + s.Address()
}

// TCPSource receives data over a plain TCP socket.
type TCPSource struct {
	endpoint
}

func (TCPSource) Kind() Kind {
	return KindTCP
}

func (TCPSource) Network() string {
	return "tcp"
}

func (s TCPSource) DSL() string {
	return "tcp " + option("port", strconv.Itoa(s.port))
}

// SyslogTCPSource receives syslog events over TCP.
type SyslogTCPSource struct {
	endpoint
}

func (SyslogTCPSource) Kind() Kind {
	return KindSyslogTCP
}

func (SyslogTCPSource) Network() string {
	return "tcp"
}

func (s SyslogTCPSource) DSL() string {
	return "syslog-tcp " + option("port", strconv.Itoa(s.port))
}

// SyslogUDPSource receives syslog events over UDP.
type SyslogUDPSource struct {
	endpoint
}

func (SyslogUDPSource) Kind() Kind {
	return KindSyslogUDP
}

func (SyslogUDPSource) Network() string {
	return "udp"
}

func (s SyslogUDPSource) DSL() string {
	return "syslog-udp " + option("port", strconv.Itoa(s.port))
}

var (
	_ Addressable = HTTPSource{}
	_ Addressable = TCPSource{}
	_ Addressable = SyslogTCPSource{}
	_ Addressable = SyslogUDPSource{}
)
