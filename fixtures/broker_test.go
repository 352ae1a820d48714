package fixtures_test

import (
	"net"
	"strconv"
	"time"

	"github.com/levelfourab/xd-go/fixtures"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func runBroker(opts *server.Options) *server.Server {
	opts.Host = "127.0.0.1"
	opts.Port = server.RANDOM_PORT
	opts.NoLog = true
	opts.NoSigs = true

	ns, err := server.NewServer(opts)
	Expect(err).ToNot(HaveOccurred())

	go ns.Start()
	Expect(ns.ReadyForConnections(5 * time.Second)).To(BeTrue())
	DeferCleanup(ns.Shutdown)
	return ns
}

func brokerEnvironment(ns *server.Server, username string, password string) *fixtures.Environment {
	addr := ns.Addr().(*net.TCPAddr)

	env, err := fixtures.NewEnvironment(fixtures.EnvironmentConfig{
		Broker: fixtures.BrokerConfig{
			Host:     addr.IP.String(),
			Port:     addr.Port,
			Username: username,
			Password: password,
		},
	})
	Expect(err).ToNot(HaveOccurred())
	return env
}

var _ = Describe("Broker fixture", func() {
	It("addresses the broker of the environment", func() {
		ns := runBroker(&server.Options{})
		sources, err := fixtures.NewSources(brokerEnvironment(ns, "", ""))
		Expect(err).ToNot(HaveOccurred())

		broker := sources.Broker(fixtures.WithSubject("xd.test"))
		Expect(broker.URL()).To(Equal(ns.ClientURL()))

		conn, err := nats.Connect(broker.URL(), broker.Options()...)
		Expect(err).ToNot(HaveOccurred())
		DeferCleanup(conn.Close)

		sub, err := conn.SubscribeSync(broker.Subject())
		Expect(err).ToNot(HaveOccurred())
		Expect(conn.Publish(broker.Subject(), []byte("hello"))).To(Succeed())

		msg, err := sub.NextMsg(2 * time.Second)
		Expect(err).ToNot(HaveOccurred())
		Expect(string(msg.Data)).To(Equal("hello"))
	})

	It("carries the broker credentials", func() {
		ns := runBroker(&server.Options{Username: "xd", Password: "secret"})

		sources, err := fixtures.NewSources(brokerEnvironment(ns, "xd", "secret"))
		Expect(err).ToNot(HaveOccurred())

		broker := sources.Broker()
		conn, err := nats.Connect(broker.URL(), broker.Options()...)
		Expect(err).ToNot(HaveOccurred())
		conn.Close()

		sources, err = fixtures.NewSources(brokerEnvironment(ns, "xd", "wrong"))
		Expect(err).ToNot(HaveOccurred())

		broker = sources.Broker()
		_, err = nats.Connect(broker.URL(), broker.Options()...)
		Expect(err).To(HaveOccurred())
	})

	It("does not connect when created", func() {
		env, err := fixtures.NewEnvironment(fixtures.EnvironmentConfig{
			Broker: fixtures.BrokerConfig{Host: "127.0.0.1", Port: 1},
		})
		Expect(err).ToNot(HaveOccurred())

		sources, err := fixtures.NewSources(env)
		Expect(err).ToNot(HaveOccurred())
		Expect(sources.Broker().Address()).To(Equal("127.0.0.1:" + strconv.Itoa(1)))
	})
})
