// Package client talks to the power-profiles daemon on the system bus.
//
// The Client interface mirrors the daemon's D-Bus surface one method
// per property or call, so commands can be tested against an in-memory
// implementation instead of a live bus.
package client

import (
	"context"

	"github.com/ppd-tools/ppdctl/pkg/types"
)

// Client is the capability surface of the power-profiles daemon.
type Client interface {
	// ActiveProfile returns the currently active power profile.
	ActiveProfile() (types.PowerProfile, error)

	// SetActiveProfile writes the active profile. The daemon performs
	// no validation against the advertised profile list; callers that
	// want that check must do it themselves.
	SetActiveProfile(p types.PowerProfile) error

	// Profiles returns the profiles the daemon currently advertises,
	// in the daemon's own order.
	Profiles() ([]types.Profile, error)

	// Actions returns the names of all known actions.
	Actions() ([]string, error)

	// ActionsInfo returns all known actions with their descriptions
	// and enablement.
	ActionsInfo() ([]types.Action, error)

	// ActiveProfileHolds returns the holds currently pinning a profile.
	ActiveProfileHolds() ([]types.ActiveHold, error)

	// BatteryAware reports whether the daemon may auto-switch profiles
	// on charger and battery events.
	BatteryAware() (bool, error)

	// SetBatteryAware enables or disables battery-aware switching.
	SetBatteryAware(enabled bool) error

	// PerformanceDegraded returns the reason the performance profile is
	// degraded. degraded is false when it is not.
	PerformanceDegraded() (reason string, degraded bool, err error)

	// PerformanceInhibited returns the reason the performance profile
	// is inhibited, or "" when it is not.
	PerformanceInhibited() (string, error)

	// Version returns the daemon's version string.
	Version() (string, error)

	// HoldProfile pins a profile on behalf of an application and
	// returns a cookie for ReleaseProfile.
	HoldProfile(p types.PowerProfile, reason, applicationID string) (uint32, error)

	// ReleaseProfile releases a hold created by HoldProfile.
	ReleaseProfile(cookie uint32) error

	// SetActionEnabled enables or disables an action by name.
	SetActionEnabled(name string, enabled bool) error

	// WatchActiveProfile subscribes to active-profile changes. Each
	// element is a newly observed profile, in the order the daemon
	// reports them. The channel is closed when ctx is cancelled or the
	// connection drops. The subscription cannot be restarted.
	WatchActiveProfile(ctx context.Context) (<-chan types.PowerProfile, error)
}
