package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/levelfourab/xd-go/validation"
	"gopkg.in/yaml.v3"
)

// Defaults used when the environment does not specify a value.
const (
	DefaultAdminURL   = "http://localhost:9393"
	DefaultJMSPort    = 61616
	DefaultBrokerPort = 4222
	DefaultMQTTPort   = 1883
)

// EnvPrefix is the prefix of environment variables read by
// [LoadEnvironment].
const EnvPrefix = "XD"

// EnvironmentConfig is the raw configuration of an [Environment], as read
// from a YAML file.
type EnvironmentConfig struct {
	// AdminURL is the URL of the admin server.
	AdminURL string `yaml:"adminUrl"`
	// ContainerHost is the host where deployed modules run.
	ContainerHost string        `yaml:"containerHost"`
	JMS           JMSConfig     `yaml:"jms"`
	Broker        BrokerConfig  `yaml:"broker"`
	Twitter       TwitterConfig `yaml:"twitter"`
}

type JMSConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// BrokerConfig describes the message broker. The broker also serves MQTT.
type BrokerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	MQTTPort int    `yaml:"mqttPort"`
}

type TwitterConfig struct {
	ConsumerKey       string `yaml:"consumerKey"`
	ConsumerSecretKey string `yaml:"consumerSecretKey"`
	AccessToken       string `yaml:"accessToken"`
	AccessTokenSecret string `yaml:"accessTokenSecret"`
}

// Environment holds the connection parameters of the systems used in a test
// run. It can not be modified after it has been created and is safe to share
// between goroutines.
type Environment struct {
	adminURL      string
	containerHost string

	jmsHost string
	jmsPort int

	brokerHost     string
	brokerPort     int
	brokerUsername string
	brokerPassword string
	mqttPort       int

	twitterConsumerKey       string
	twitterConsumerSecretKey string
	twitterAccessToken       string
	twitterAccessTokenSecret string
}

// NewEnvironment creates an environment from the given configuration,
// filling in defaults. Brokers and JMS default to the host of the admin
// server.
func NewEnvironment(config EnvironmentConfig) (*Environment, error) {
	adminURL := strings.TrimSpace(config.AdminURL)
	if adminURL == "" {
		adminURL = DefaultAdminURL
	}

	parsed, err := url.Parse(adminURL)
	if err != nil || parsed.Hostname() == "" {
		return nil, validation.New("adminUrl", "invalid admin url: "+adminURL)
	}
	adminHost := parsed.Hostname()

	ports := map[string]*int{
		"jms.port":        &config.JMS.Port,
		"broker.port":     &config.Broker.Port,
		"broker.mqttPort": &config.Broker.MQTTPort,
	}
	for field, port := range ports {
		if *port < 0 || *port > 65535 {
			return nil, validation.New(field, fmt.Sprintf("%s must be between 0 and 65535, got %d", field, *port))
		}
	}

	return &Environment{
		adminURL:      adminURL,
		containerHost: orDefault(config.ContainerHost, adminHost),

		jmsHost: orDefault(config.JMS.Host, adminHost),
		jmsPort: orDefaultPort(config.JMS.Port, DefaultJMSPort),

		brokerHost:     orDefault(config.Broker.Host, adminHost),
		brokerPort:     orDefaultPort(config.Broker.Port, DefaultBrokerPort),
		brokerUsername: config.Broker.Username,
		brokerPassword: config.Broker.Password,
		mqttPort:       orDefaultPort(config.Broker.MQTTPort, DefaultMQTTPort),

		twitterConsumerKey:       config.Twitter.ConsumerKey,
		twitterConsumerSecretKey: config.Twitter.ConsumerSecretKey,
		twitterAccessToken:       config.Twitter.AccessToken,
		twitterAccessTokenSecret: config.Twitter.AccessTokenSecret,
	}, nil
}

// LoadEnvironment reads the environment from a YAML file and applies
// overrides from XD_* environment variables. If path is empty only the
// environment variables and defaults are used.
func LoadEnvironment(path string) (*Environment, error) {
	var config EnvironmentConfig

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading environment: %w", err)
		}

		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parsing environment %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&config); err != nil {
		return nil, err
	}

	return NewEnvironment(config)
}

func applyEnvOverrides(config *EnvironmentConfig) error {
	strs := map[string]*string{
		"ADMIN_URL":                   &config.AdminURL,
		"CONTAINER_HOST":              &config.ContainerHost,
		"JMS_HOST":                    &config.JMS.Host,
		"BROKER_HOST":                 &config.Broker.Host,
		"BROKER_USERNAME":             &config.Broker.Username,
		"BROKER_PASSWORD":             &config.Broker.Password,
		"TWITTER_CONSUMER_KEY":        &config.Twitter.ConsumerKey,
		"TWITTER_CONSUMER_SECRET_KEY": &config.Twitter.ConsumerSecretKey,
		"TWITTER_ACCESS_TOKEN":        &config.Twitter.AccessToken,
		"TWITTER_ACCESS_TOKEN_SECRET": &config.Twitter.AccessTokenSecret,
	}
	for key, target := range strs {
		if val := os.Getenv(EnvPrefix + "_" + key); val != "" {
			*target = val
		}
	}

	ints := map[string]*int{
		"JMS_PORT":    &config.JMS.Port,
		"BROKER_PORT": &config.Broker.Port,
		"MQTT_PORT":   &config.Broker.MQTTPort,
	}
	for key, target := range ints {
		val := os.Getenv(EnvPrefix + "_" + key)
		if val == "" {
			continue
		}

		port, err := strconv.Atoi(val)
		if err != nil {
			return validation.New(key, fmt.Sprintf("%s_%s must be a number, got %q", EnvPrefix, key, val))
		}
		*target = port
	}

	return nil
}

func orDefault(value string, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}

	return value
}

func orDefaultPort(port int, fallback int) int {
	if port == 0 {
		return fallback
	}

	return port
}

// AdminURL is the URL of the admin server.
func (e *Environment) AdminURL() string {
	return e.adminURL
}

// ContainerHost is the host where deployed modules run.
func (e *Environment) ContainerHost() string {
	return e.containerHost
}

func (e *Environment) JMSHost() string {
	return e.jmsHost
}

func (e *Environment) JMSPort() int {
	return e.jmsPort
}

func (e *Environment) BrokerHost() string {
	return e.brokerHost
}

func (e *Environment) BrokerPort() int {
	return e.brokerPort
}

func (e *Environment) BrokerUsername() string {
	return e.brokerUsername
}

func (e *Environment) BrokerPassword() string {
	return e.brokerPassword
}

// MQTTPort is the port the broker accepts MQTT connections on.
func (e *Environment) MQTTPort() int {
	return e.mqttPort
}

func (e *Environment) TwitterConsumerKey() string {
	return e.twitterConsumerKey
}

func (e *Environment) TwitterConsumerSecretKey() string {
	return e.twitterConsumerSecretKey
}

func (e *Environment) TwitterAccessToken() string {
	return e.twitterAccessToken
}

func (e *Environment) TwitterAccessTokenSecret() string {
	return e.twitterAccessTokenSecret
}
