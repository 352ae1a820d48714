// Package fixtures builds the sources used by integration tests.
//
// Fixtures describe how to address an external system, such as an HTTP
// endpoint or a message broker, and how to refer to it in a stream
// definition. They are plain values: creating a fixture never opens a
// connection, that is left to the test driver.
//
// Fixtures are created via [Sources], which fills in defaults from a shared
// [Environment]:
//
//	env, err := fixtures.LoadEnvironment("xd-env.yaml")
//	if err != nil {
//		return err
//	}
//
//	sources, err := fixtures.NewSources(env)
//	if err != nil {
//		return err
//	}
//
//	http := sources.HTTP(fixtures.WithPort(8080))
//	_, err = client.Streams().CreateStream(ctx, "test", http.DSL()+" | log", true)
package fixtures

import (
	"slices"
	"strings"
)

// Kind identifies the type of a fixture.
type Kind string

const (
	KindHTTP          Kind = "http"
	KindTCP           Kind = "tcp"
	KindJMS           Kind = "jms"
	KindMQTT          Kind = "mqtt"
	KindFile          Kind = "file"
	KindTail          Kind = "tail"
	KindSyslogTCP     Kind = "syslog-tcp"
	KindSyslogUDP     Kind = "syslog-udp"
	KindBroker        Kind = "broker"
	KindTwitterSearch Kind = "twittersearch"
	KindTwitterStream Kind = "twitterstream"
	KindTap           Kind = "tap"
)

var kinds = []Kind{
	KindHTTP,
	KindTCP,
	KindJMS,
	KindMQTT,
	KindFile,
	KindTail,
	KindSyslogTCP,
	KindSyslogUDP,
	KindBroker,
	KindTwitterSearch,
	KindTwitterStream,
	KindTap,
}

// Kinds returns every kind of fixture. The returned slice is a copy.
func Kinds() []Kind {
	return slices.Clone(kinds)
}

// Source is implemented by every fixture.
type Source interface {
	// Kind returns the type of the fixture.
	Kind() Kind

	// DSL returns the fixture as the source part of a stream definition.
	DSL() string
}

// Addressable is implemented by fixtures that receive data over the network.
type Addressable interface {
	Source

	// Network is the network name as used by the net package, such as
	// "tcp" or "udp".
	Network() string

	// Address is the host and port of the endpoint.
	Address() string
}

// option formats a single --name=value option of a stream definition.
func option(name string, value string) string {
	return "--" + name + "=" + quote(value)
}

// quote wraps values that would break the definition in single quotes,
// doubling any single quotes already present.
func quote(value string) string {
	if value != "" && !strings.ContainsAny(value, " \t|'\"") {
		return value
	}

	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}
