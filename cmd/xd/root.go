package main

import (
	"log/slog"
	"time"

	"github.com/levelfourab/xd-go"
	"github.com/levelfourab/xd-go/fixtures"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	adminURL string
	envFile  string
	username string
	password string
	timeout  time.Duration
	debug    bool
}

func newRootCommand() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "xd",
		Short: "Manage streams and test fixtures of an XD cluster",
		Long: "Commands for creating and listing streams on an XD admin server and for rendering " +
			"the test fixtures described by an environment file.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flags.adminURL, "admin-url", "",
		"URL of the admin server, defaults to the environment ($XD_ADMIN_URL)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "YAML file describing the test environment")
	cmd.PersistentFlags().StringVar(&flags.username, "username", "", "username for the admin server")
	cmd.PersistentFlags().StringVar(&flags.password, "password", "", "password for the admin server")
	cmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 30*time.Second, "timeout of a single request")
	cmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")

	cmd.AddCommand(newStreamCommand(flags))
	cmd.AddCommand(newFixtureCommand(flags))
	return cmd
}

func (f *globalFlags) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if f.debug {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func (f *globalFlags) environment() (*fixtures.Environment, error) {
	return fixtures.LoadEnvironment(f.envFile)
}

func (f *globalFlags) client(cmd *cobra.Command) (xd.Client, error) {
	adminURL := f.adminURL
	if adminURL == "" {
		env, err := f.environment()
		if err != nil {
			return nil, err
		}
		adminURL = env.AdminURL()
	}

	opts := []xd.ClientOption{
		xd.WithLogger(f.logger(cmd)),
		xd.WithTimeout(f.timeout),
	}
	if f.username != "" {
		opts = append(opts, xd.WithBasicAuth(f.username, f.password))
	}

	return xd.NewClient(adminURL, opts...)
}
