package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ppd-tools/ppdctl/pkg/client"
	"github.com/ppd-tools/ppdctl/pkg/command"
)

func NewListActionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list-actions",
		Short:   "List power-related actions",
		GroupID: gTuning,
		Long: `List all power-related actions the daemon knows about, with their
descriptions and whether they are currently enabled.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.ListActions(c, os.Stdout)
			})
		},
	}
}

func NewConfigureActionCommand() *cobra.Command {
	var (
		enable  bool
		disable bool
	)
	cmd := &cobra.Command{
		Use:     "configure-action <action>",
		Short:   "Enable or disable a power-related action",
		GroupID: gTuning,
		Args:    cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withClient(func(c client.Client) error {
				return command.ConfigureAction(c, args[0], enable, disable)
			})
		},
	}
	cmd.Flags().BoolVar(&enable, "enable", false, "enable the action")
	cmd.Flags().BoolVar(&disable, "disable", false, "disable the action")
	return cmd
}

func NewQueryBatteryAwareCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "query-battery-aware",
		Short:   "Query whether battery-aware profile switching is enabled",
		GroupID: gTuning,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.QueryBatteryAware(c, os.Stdout)
			})
		},
	}
}

func NewConfigureBatteryAwareCommand() *cobra.Command {
	var (
		enable  bool
		disable bool
	)
	cmd := &cobra.Command{
		Use:     "configure-battery-aware",
		Short:   "Enable or disable battery-aware profile switching",
		GroupID: gTuning,
		Long: `Enable or disable battery-aware behavior. When enabled, the daemon
may switch profiles automatically on charger and battery events.
Exactly one of --enable or --disable is required.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.ConfigureBatteryAware(c, enable, disable)
			})
		},
	}
	cmd.Flags().BoolVar(&enable, "enable", false, "enable battery-aware switching")
	cmd.Flags().BoolVar(&disable, "disable", false, "disable battery-aware switching")
	return cmd
}
