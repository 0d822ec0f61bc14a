package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ppd-tools/ppdctl/pkg/client"
	"github.com/ppd-tools/ppdctl/pkg/command"
)

var logLevel = "info"

var (
	gProfiles     = "Profiles:"
	gTuning       = "Tuning:"
	commandGroups = []string{
		gProfiles,
		gTuning,
	}
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func handleCmdError(err error) {
	var terr *client.TransportError
	if errors.As(err, &terr) {
		fmt.Fprintln(os.Stderr, "\nError: cannot talk to power-profiles-daemon")
		fmt.Fprintln(os.Stderr, "Is power-profiles-daemon running? Try 'systemctl status power-profiles-daemon'.")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

// withClient runs fn with a connected daemon client. The bus
// connection lives exactly as long as the call, on error paths too.
func withClient(fn func(client.Client) error) error {
	c, err := client.New()
	if err != nil {
		return err
	}
	defer c.Close()
	return fn(c)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ppdctl",
		Short: "ppdctl inspects and switches system power profiles",
		Long: `ppdctl is a command-line client for power-profiles-daemon.

It talks to the daemon over the system D-Bus to inspect the active
power profile, switch profiles, toggle power-related actions, and
watch profile changes live. Run without arguments to list the
available profiles.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return withClient(func(c client.Client) error {
				return command.List(c, os.Stdout)
			})
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")

	for _, i := range commandGroups {
		cmd.AddGroup(&cobra.Group{
			ID:    i,
			Title: i,
		})
	}

	cmd.AddCommand(
		NewListCommand(),
		NewGetCommand(),
		NewSetCommand(),
		NewWatchCommand(),
		NewListHoldsCommand(),
		NewListActionsCommand(),
		NewConfigureActionCommand(),
		NewQueryBatteryAwareCommand(),
		NewConfigureBatteryAwareCommand(),
		NewLaunchCommand(),
		NewVersionCommand(),
	)

	return cmd
}
