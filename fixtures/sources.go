package fixtures

import (
	"strings"
	"time"

	"github.com/levelfourab/xd-go/validation"
)

var (
	// ErrEnvironmentRequired is returned when creating [Sources] without an
	// environment.
	ErrEnvironmentRequired = validation.New("environment", "environment can not be nil")
	// ErrDirRequired is returned when a file source has no directory.
	ErrDirRequired = validation.New("dir", "dir should not be empty")
	// ErrFileNameRequired is returned when a file based source has no file
	// name.
	ErrFileNameRequired = validation.New("fileName", "fileName should not be empty")
	// ErrQueryRequired is returned when a search source has no query.
	ErrQueryRequired = validation.New("query", "query must not be empty")
	// ErrStreamNameRequired is returned when a tap has no stream to tap.
	ErrStreamNameRequired = validation.New("streamName", "stream name must not be empty")
	// ErrNegativeDelay is returned when a tail source has a negative delay.
	ErrNegativeDelay = validation.New("delay", "delay must not be negative")
)

// Sources creates fixtures using the hosts, ports and credentials of an
// [Environment]. Only one admin server and one container location are
// supported. Sources is safe for concurrent use.
type Sources struct {
	env *Environment
}

// NewSources creates a new factory using the provided environment.
func NewSources(env *Environment) (*Sources, error) {
	if env == nil {
		return nil, ErrEnvironmentRequired
	}

	return &Sources{env: env}, nil
}

// Environment returns the environment fixtures are created from.
func (s *Sources) Environment() *Environment {
	return s.env
}

// HTTP creates an HTTP source, by default targeting localhost on port 9000.
func (s *Sources) HTTP(opts ...EndpointOption) HTTPSource {
	return HTTPSource{newEndpoint(DefaultHost, DefaultHTTPPort, opts)}
}

// TCP creates a TCP source, by default targeting localhost on port 1234.
func (s *Sources) TCP(opts ...EndpointOption) TCPSource {
	return TCPSource{newEndpoint(DefaultHost, DefaultTCPPort, opts)}
}

// Tail creates a source tailing the file with the given absolute path.
// delay is how often to look for the file if it does not exist.
func (s *Sources) Tail(delay time.Duration, fileName string) (TailSource, error) {
	if err := validation.RequireText(fileName, ErrFileNameRequired); err != nil {
		return TailSource{}, err
	}

	if delay < 0 {
		return TailSource{}, ErrNegativeDelay
	}

	return TailSource{delay: delay, fileName: fileName}, nil
}

// JMS creates a JMS source using the JMS broker of the environment.
func (s *Sources) JMS() JMSSource {
	return JMSSource{
		endpoint:    endpoint{host: s.env.JMSHost(), port: s.env.JMSPort()},
		destination: DefaultJMSDestination,
	}
}

// MQTT creates an MQTT source using the broker of the environment, which is
// expected to be MQTT enabled.
func (s *Sources) MQTT() MQTTSource {
	return MQTTSource{
		endpoint: endpoint{host: s.env.BrokerHost(), port: s.env.MQTTPort()},
		topic:    DefaultMQTTTopic,
	}
}

// File creates a source picking up fileName from dir. Both are required.
func (s *Sources) File(dir string, fileName string) (FileSource, error) {
	if err := validation.RequireText(dir, ErrDirRequired); err != nil {
		return FileSource{}, err
	}

	if err := validation.RequireText(fileName, ErrFileNameRequired); err != nil {
		return FileSource{}, err
	}

	return FileSource{dir: dir, fileName: fileName}, nil
}

// Broker creates a source consuming from the message broker of the
// environment.
func (s *Sources) Broker(opts ...BrokerOption) BrokerSource {
	source := BrokerSource{
		endpoint: endpoint{host: s.env.BrokerHost(), port: s.env.BrokerPort()},
		subject:  DefaultBrokerSubject,
		username: s.env.BrokerUsername(),
		password: s.env.BrokerPassword(),
	}

	for _, opt := range opts {
		opt(&source)
	}

	return source
}

// TwitterSearch creates a source searching Twitter for the given query.
func (s *Sources) TwitterSearch(query string) (TwitterSearchSource, error) {
	if err := validation.RequireText(query, ErrQueryRequired); err != nil {
		return TwitterSearchSource{}, err
	}

	return TwitterSearchSource{
		consumerKey:       s.env.TwitterConsumerKey(),
		consumerSecretKey: s.env.TwitterConsumerSecretKey(),
		query:             query,
	}, nil
}

// TwitterStream creates a source consuming the Twitter stream.
func (s *Sources) TwitterStream() TwitterStreamSource {
	return TwitterStreamSource{
		consumerKey:       s.env.TwitterConsumerKey(),
		consumerSecretKey: s.env.TwitterConsumerSecretKey(),
		accessToken:       s.env.TwitterAccessToken(),
		accessTokenSecret: s.env.TwitterAccessTokenSecret(),
	}
}

// SyslogTCP creates a source receiving syslog events over TCP, by default
// on localhost port 5140.
func (s *Sources) SyslogTCP(opts ...EndpointOption) SyslogTCPSource {
	return SyslogTCPSource{newEndpoint(DefaultHost, DefaultSyslogPort, opts)}
}

// SyslogUDP creates a source receiving syslog events over UDP, by default
// on localhost port 5140.
func (s *Sources) SyslogUDP(opts ...EndpointOption) SyslogUDPSource {
	return SyslogUDPSource{newEndpoint(DefaultHost, DefaultSyslogPort, opts)}
}

// Tap creates a tap on the named stream.
func (s *Sources) Tap(streamName string) (Tap, error) {
	streamName = strings.TrimSpace(streamName)
	if streamName == "" {
		return Tap{}, ErrStreamNameRequired
	}

	return Tap{streamName: streamName}, nil
}
