// Package command implements one function per ppdctl command. Each
// function takes the daemon client and a writer for normal output, so
// the whole dispatch layer can be exercised without a live bus.
package command

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	pkgerrors "github.com/pkg/errors"

	"github.com/ppd-tools/ppdctl/pkg/client"
	"github.com/ppd-tools/ppdctl/pkg/types"
)

var activeColor = color.New(color.FgGreen, color.Bold)

// Get prints the active profile's canonical name.
func Get(c client.Client, w io.Writer) error {
	p, err := c.ActiveProfile()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, p)
	return nil
}

// List prints every advertised profile, most performant first (the
// daemon lists power-saver first), marking the active one with '*'.
func List(c client.Client, w io.Writer) error {
	active, err := c.ActiveProfile()
	if err != nil {
		return err
	}
	profiles, err := c.Profiles()
	if err != nil {
		return err
	}

	degraded := "no"
	for _, p := range profiles {
		if p.Profile == types.Performance {
			reason, isDegraded, err := c.PerformanceDegraded()
			if err != nil {
				return err
			}
			if isDegraded {
				degraded = reason
			}
			break
		}
	}

	for i := len(profiles) - 1; i >= 0; i-- {
		p := profiles[i]
		marker := " "
		name := p.Profile.String()
		if p.Profile == active {
			marker = "*"
			name = activeColor.Sprint(name)
		}
		fmt.Fprintf(w, "%s %s:\n", marker, name)
		if p.CPUDriver != "" {
			fmt.Fprintf(w, "    CpuDriver:\t%s\n", p.CPUDriver)
		}
		if p.PlatformDriver != "" {
			fmt.Fprintf(w, "    PlatformDriver:\t%s\n", p.PlatformDriver)
		}
		if p.CPUDriver == "" && p.PlatformDriver == "" && p.Driver != "" {
			fmt.Fprintf(w, "    Driver:\t%s\n", p.Driver)
		}
		if p.Profile == types.Performance {
			fmt.Fprintf(w, "    Degraded:  %s\n", degraded)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
	}
	return nil
}

// Set parses name, checks it against the currently advertised
// profiles, and only then writes it. The daemon itself accepts any
// write, so the advertised-set check lives here.
//
// The list read and the profile write are two separate exchanges;
// another client can change the advertised set in between. The daemon
// is the final arbiter, so the window is accepted.
func Set(c client.Client, name string) error {
	p, err := types.ParsePowerProfile(name)
	if err != nil {
		return err
	}
	profiles, err := c.Profiles()
	if err != nil {
		return err
	}
	advertised := false
	for _, ap := range profiles {
		if ap.Profile == p {
			advertised = true
			break
		}
	}
	if !advertised {
		return pkgerrors.Wrapf(types.ErrInvalidProfile, "%q is not advertised by the daemon", name)
	}
	return c.SetActiveProfile(p)
}

// ListActions prints every known action with its description and
// enablement.
func ListActions(c client.Client, w io.Writer) error {
	actions, err := c.ActionsInfo()
	if err != nil {
		return err
	}
	for _, a := range actions {
		fmt.Fprintf(w, "Name: %s\n", a.Name)
		fmt.Fprintf(w, "Description: %s\n", a.Description)
		fmt.Fprintf(w, "Enabled: %t\n", a.Enabled)
	}
	return nil
}

// QueryBatteryAware prints whether the daemon auto-switches profiles on
// charger and battery events.
func QueryBatteryAware(c client.Client, w io.Writer) error {
	enabled, err := c.BatteryAware()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Dynamic changes from charger and battery events: %t\n", enabled)
	return nil
}

// ConfigureBatteryAware writes the battery-aware flag. Exactly one of
// enable/disable must be set.
func ConfigureBatteryAware(c client.Client, enable, disable bool) error {
	if enable && disable {
		return pkgerrors.Wrap(client.ErrInvalidConfig, "--enable and --disable are mutually exclusive")
	}
	if !enable && !disable {
		return pkgerrors.Wrap(client.ErrInvalidConfig, "one of --enable or --disable is required")
	}
	return c.SetBatteryAware(enable)
}

// ConfigureAction is recognized but not implemented yet.
func ConfigureAction(_ client.Client, _ string, _, _ bool) error {
	return pkgerrors.Wrap(client.ErrUnimplemented, "configure-action")
}

// ListHolds is recognized but not implemented yet.
func ListHolds(_ client.Client, _ io.Writer) error {
	return pkgerrors.Wrap(client.ErrUnimplemented, "list-holds")
}

// Launch is recognized but not implemented yet.
func Launch(_ client.Client, _ []string, _, _, _ string) error {
	return pkgerrors.Wrap(client.ErrUnimplemented, "launch")
}

// Watch prints the current active profile, then every change the
// daemon reports, until ctx is cancelled or the connection drops.
func Watch(ctx context.Context, c client.Client, w io.Writer) error {
	p, err := c.ActiveProfile()
	if err != nil {
		return err
	}
	fmt.Fprintln(w, p)

	changes, err := c.WatchActiveProfile(ctx)
	if err != nil {
		return err
	}
	for p := range changes {
		fmt.Fprintln(w, p)
	}
	return nil
}
