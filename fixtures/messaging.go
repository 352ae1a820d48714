package fixtures

import "github.com/nats-io/nats.go"

// Defaults for messaging fixtures.
const (
	DefaultJMSDestination = "xd.jms.test"
	DefaultMQTTTopic      = "xd.mqtt.test"
	DefaultBrokerSubject  = "xd.broker.test"
)

// JMSSource consumes from a JMS destination.
type JMSSource struct {
	endpoint
	destination string
}

func (JMSSource) Kind() Kind      { return KindJMS }
func (JMSSource) Network() string { return "tcp" }

// Destination is the JMS destination consumed from.
func (s JMSSource) Destination() string {
	return s.destination
}

// ProviderURL is the URL of the JMS broker.
func (s JMSSource) ProviderURL() string {
	return "tcp://" + s.Address()
}

func (s JMSSource) DSL() string {
	return "jms " + option("destination", s.destination)
}

// MQTTSource subscribes to an MQTT topic on the broker.
type MQTTSource struct {
	endpoint
	topic string
}

func (MQTTSource) Kind() Kind      { return KindMQTT }
func (MQTTSource) Network() string { return "tcp" }

func (s MQTTSource) Topic() string {
	return s.topic
}

// URL is the URL of the MQTT broker.
func (s MQTTSource) URL() string {
	return "tcp://" + s.Address()
}

func (s MQTTSource) DSL() string {
	return "mqtt " + option("url", s.URL()) + " " + option("topics", s.topic)
}

// BrokerSource consumes from a subject on the message broker.
type BrokerSource struct {
	endpoint
	subject  string
	username string
	password string
}

func (BrokerSource) Kind() Kind      { return KindBroker }
func (BrokerSource) Network() string { return "tcp" }

func (s BrokerSource) Subject() string {
	return s.subject
}

func (s BrokerSource) Username() string {
	return s.username
}

// URL is the URL of the broker, without credentials.
func (s BrokerSource) URL() string {
	return "nats://" + s.Address()
}

// Options returns the options a test driver should use when connecting to
// the broker, for use with [nats.Connect].
func (s BrokerSource) Options() []nats.Option {
	opts := []nats.Option{
		nats.Name("xd-fixture-" + s.subject),
	}

	if s.username != "" {
		opts = append(opts, nats.UserInfo(s.username, s.password))
	}

	return opts
}

func (s BrokerSource) DSL() string {
	return "nats " + option("url", s.URL()) + " " + option("subject", s.subject)
}

// BrokerOption overrides settings of a broker fixture.
type BrokerOption func(*BrokerSource)

// WithSubject sets the subject consumed from. An empty subject keeps the
// default.
func WithSubject(subject string) BrokerOption {
	return func(s *BrokerSource) {
		if subject != "" {
			s.subject = subject
		}
	}
}

// WithBrokerPort overrides the port of the broker taken from the
// environment.
func WithBrokerPort(port int) BrokerOption {
	return func(s *BrokerSource) {
		if port != 0 {
			s.port = port
		}
	}
}

var (
	_ Addressable = JMSSource{}
	_ Addressable = MQTTSource{}
	_ Addressable = BrokerSource{}
)
