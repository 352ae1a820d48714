package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/levelfourab/xd-go/streams"
	"github.com/spf13/cobra"
)

func newStreamCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Manage streams",
	}

	cmd.AddCommand(newStreamCreateCommand(flags))
	cmd.AddCommand(newStreamListCommand(flags))
	return cmd
}

func newStreamCreateCommand(flags *globalFlags) *cobra.Command {
	var deploy bool

	cmd := &cobra.Command{
		Use:   "create [name] [definition]",
		Short: "Create a new stream",
		Long: `Create a new stream, optionally deploying it.

Examples:
  # Create a stream without deploying it
  xd stream create ticktock "time | log"

  # Create and deploy
  xd stream create ticktock "time | log" --deploy`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			definition := strings.Join(args[1:], " ")
			created, err := client.Streams().CreateStream(cmd.Context(), args[0], definition, deploy)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created stream '%s' (%s)\n", created.Name, created.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deploy, "deploy", false, "deploy the stream after creating it")
	return cmd
}

func newStreamListCommand(flags *globalFlags) *cobra.Command {
	var page, size int
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List streams",
		Long:  `Display the streams known to the admin server, one page at a time or all at once with --all.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := flags.client(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			var opts []streams.ListOption
			if cmd.Flags().Changed("page") {
				opts = append(opts, streams.WithPage(page))
			}
			if cmd.Flags().Changed("size") {
				opts = append(opts, streams.WithPageSize(size))
			}

			var definitions []streams.Definition
			footer := ""
			if all {
				definitions, err = streams.All(cmd.Context(), client.Streams(), opts...)
				if err != nil {
					return err
				}
			} else {
				result, err := client.Streams().List(cmd.Context(), opts...)
				if err != nil {
					return err
				}

				definitions = result.Definitions
				if result.TotalPages > 1 {
					footer = fmt.Sprintf("Page %d of %d, %d streams in total",
						result.Number+1, result.TotalPages, result.TotalElements)
				}
			}

			out := cmd.OutOrStdout()
			if len(definitions) == 0 {
				fmt.Fprintln(out, "No streams found.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "Name\tStatus\tDefinition")
			fmt.Fprintln(w, "----\t------\t----------")
			for _, d := range definitions {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.Name, d.Status, d.Definition)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if footer != "" {
				fmt.Fprintln(out, footer)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 0, "zero-based page to fetch")
	cmd.Flags().IntVar(&size, "size", 0, "number of streams per page")
	cmd.Flags().BoolVar(&all, "all", false, "fetch every page")
	return cmd
}
