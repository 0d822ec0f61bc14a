package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ppd-tools/ppdctl/pkg/client"
	"github.com/ppd-tools/ppdctl/pkg/command"
	"github.com/ppd-tools/ppdctl/pkg/version"
)

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Short:   "List available power profiles",
		GroupID: gProfiles,
		Long: `List all power profiles the daemon advertises, together with the
drivers backing them. The active profile is marked with '*'.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.List(c, os.Stdout)
			})
		},
	}
}

func NewGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "get",
		Short:   "Print the currently active power profile",
		GroupID: gProfiles,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.Get(c, os.Stdout)
			})
		},
	}
}

func NewSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "set <profile>",
		Short:   "Set the active power profile",
		GroupID: gProfiles,
		Long: `Set the active power profile.

The profile must be one of power-saver, balanced, or performance, and
must currently be advertised by the daemon (not every machine supports
all three).`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withClient(func(c client.Client) error {
				return command.Set(c, args[0])
			})
		},
	}
}

func NewWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Short:   "Print the active profile and every subsequent change",
		GroupID: gProfiles,
		Long: `Print the active profile, then print every profile change as the
daemon reports it. Runs until interrupted.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return withClient(func(c client.Client) error {
				return command.Watch(ctx, c, os.Stdout)
			})
		},
	}
}

func NewListHoldsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list-holds",
		Short:   "List active profile holds",
		GroupID: gProfiles,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.ListHolds(c, os.Stdout)
			})
		},
	}
}

func NewLaunchCommand() *cobra.Command {
	var (
		profile string
		reason  string
		appID   string
	)
	cmd := &cobra.Command{
		Use:     "launch <command> [args...]",
		Short:   "Launch a command while holding a power profile",
		GroupID: gProfiles,
		Long: `Launch a command and hold the given power profile until it exits.
The hold is released automatically when the command terminates.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withClient(func(c client.Client) error {
				return command.Launch(c, args, profile, reason, appID)
			})
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&profile, "profile", "p", "performance", "profile to hold while the command runs")
	flags.StringVarP(&reason, "reason", "r", "", "reason for the profile hold")
	flags.StringVarP(&appID, "appid", "i", "", "application ID for the profile hold")
	return cmd
}

func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and daemon versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("client: %s %s\n", version.Version, version.GitCommit)
			return withClient(func(c client.Client) error {
				v, err := c.Version()
				if err != nil {
					return err
				}
				cmd.Printf("daemon: %s\n", v)
				return nil
			})
		},
	}
}
