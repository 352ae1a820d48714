package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/levelfourab/xd-go/fixtures"
	"github.com/spf13/cobra"
)

type fixtureFlags struct {
	host    string
	port    int
	dir     string
	file    string
	query   string
	stream  string
	subject string
	delay   time.Duration
}

func newFixtureCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Render test fixtures",
	}

	cmd.AddCommand(newFixtureDSLCommand(flags))
	return cmd
}

func newFixtureDSLCommand(flags *globalFlags) *cobra.Command {
	ff := &fixtureFlags{}

	all := fixtures.Kinds()
	kinds := make([]string, len(all))
	for i, k := range all {
		kinds[i] = string(k)
	}

	cmd := &cobra.Command{
		Use:       "dsl [kind]",
		Short:     "Print the stream definition of a fixture",
		Long:      "Print the stream definition of a fixture, using the environment for defaults.\n\nKinds: " + strings.Join(kinds, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.environment()
			if err != nil {
				return err
			}

			sources, err := fixtures.NewSources(env)
			if err != nil {
				return err
			}

			source, err := buildFixture(sources, fixtures.Kind(args[0]), ff)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, source.DSL())
			if addressable, ok := source.(fixtures.Addressable); ok {
				fmt.Fprintf(out, "# %s %s\n", addressable.Network(), addressable.Address())
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ff.host, "host", "", "host of network fixtures")
	cmd.Flags().IntVar(&ff.port, "port", 0, "port of network fixtures")
	cmd.Flags().StringVar(&ff.dir, "dir", "", "directory of file fixtures")
	cmd.Flags().StringVar(&ff.file, "file", "", "file name of file and tail fixtures")
	cmd.Flags().StringVar(&ff.query, "query", "", "query of twittersearch fixtures")
	cmd.Flags().StringVar(&ff.stream, "stream", "", "stream name of tap fixtures")
	cmd.Flags().StringVar(&ff.subject, "subject", "", "subject of broker fixtures")
	cmd.Flags().DurationVar(&ff.delay, "delay", time.Second, "file delay of tail fixtures")
	return cmd
}

func buildFixture(sources *fixtures.Sources, kind fixtures.Kind, ff *fixtureFlags) (fixtures.Source, error) {
	endpoint := []fixtures.EndpointOption{fixtures.WithHost(ff.host), fixtures.WithPort(ff.port)}

	switch kind {
	case fixtures.KindHTTP:
		return sources.HTTP(endpoint...), nil
	case fixtures.KindTCP:
		return sources.TCP(endpoint...), nil
	case fixtures.KindSyslogTCP:
		return sources.SyslogTCP(endpoint...), nil
	case fixtures.KindSyslogUDP:
		return sources.SyslogUDP(endpoint...), nil
	case fixtures.KindJMS:
		return sources.JMS(), nil
	case fixtures.KindMQTT:
		return sources.MQTT(), nil
	case fixtures.KindBroker:
		return sources.Broker(fixtures.WithSubject(ff.subject), fixtures.WithBrokerPort(ff.port)), nil
	case fixtures.KindFile:
		return sources.File(ff.dir, ff.file)
	case fixtures.KindTail:
		return sources.Tail(ff.delay, ff.file)
	case fixtures.KindTwitterSearch:
		return sources.TwitterSearch(ff.query)
	case fixtures.KindTwitterStream:
		return sources.TwitterStream(), nil
	case fixtures.KindTap:
		return sources.Tap(ff.stream)
	}

	return nil, fmt.Errorf("unknown fixture kind: %s", kind)
}
