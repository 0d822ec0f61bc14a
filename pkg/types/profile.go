// Package types holds the data model shared by the daemon interface:
// power profiles, tunable actions, and active profile holds.
package types

import (
	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
)

// PowerProfile is one of the three profiles the power-profiles daemon
// arbitrates between. It serializes to the lowercase-hyphenated name
// the daemon uses on the wire.
type PowerProfile string

const (
	PowerSaver  PowerProfile = "power-saver"
	Balanced    PowerProfile = "balanced"
	Performance PowerProfile = "performance"
)

func (p PowerProfile) String() string {
	return string(p)
}

// ParsePowerProfile converts a wire-format profile name into a
// PowerProfile. Any string outside the three recognized names fails
// with ErrInvalidProfile.
func ParsePowerProfile(s string) (PowerProfile, error) {
	switch s {
	case "power-saver":
		return PowerSaver, nil
	case "balanced":
		return Balanced, nil
	case "performance":
		return Performance, nil
	default:
		return "", pkgerrors.Wrapf(ErrInvalidProfile, "%q", s)
	}
}

// Profile is one selectable profile together with the driver(s)
// backing it, as published by the daemon's Profiles property.
// PlatformDriver and CPUDriver are empty when the daemon does not
// report split drivers.
type Profile struct {
	Profile        PowerProfile
	Driver         string
	PlatformDriver string
	CPUDriver      string
}

// Action is a toggleable power-related behavior, independent of the
// active profile.
type Action struct {
	Name        string
	Description string
	Enabled     bool
}

// ActiveHold is a temporary pin of a profile requested by an
// application. Holds are created and destroyed entirely by the daemon.
type ActiveHold struct {
	Reason        string
	Profile       PowerProfile
	ApplicationID string
}

// ProfileFromDict decodes one entry of the daemon's Profiles property
// (an a{sv} dict).
func ProfileFromDict(d map[string]dbus.Variant) (Profile, error) {
	name, ok := dictString(d, "Profile")
	if !ok {
		return Profile{}, pkgerrors.New("profile dict has no Profile key")
	}
	p, err := ParsePowerProfile(name)
	if err != nil {
		return Profile{}, err
	}
	driver, _ := dictString(d, "Driver")
	platform, _ := dictString(d, "PlatformDriver")
	cpu, _ := dictString(d, "CpuDriver")
	return Profile{
		Profile:        p,
		Driver:         driver,
		PlatformDriver: platform,
		CPUDriver:      cpu,
	}, nil
}

// ActionFromDict decodes one entry of the ActionsInfo property.
func ActionFromDict(d map[string]dbus.Variant) (Action, error) {
	name, ok := dictString(d, "Name")
	if !ok {
		return Action{}, pkgerrors.New("action dict has no Name key")
	}
	desc, _ := dictString(d, "Description")
	enabled, ok := dictBool(d, "Enabled")
	if !ok {
		return Action{}, pkgerrors.Errorf("action %q has no Enabled key", name)
	}
	return Action{Name: name, Description: desc, Enabled: enabled}, nil
}

// ActiveHoldFromDict decodes one entry of the ActiveProfileHolds
// property.
func ActiveHoldFromDict(d map[string]dbus.Variant) (ActiveHold, error) {
	name, ok := dictString(d, "Profile")
	if !ok {
		return ActiveHold{}, pkgerrors.New("hold dict has no Profile key")
	}
	p, err := ParsePowerProfile(name)
	if err != nil {
		return ActiveHold{}, err
	}
	reason, _ := dictString(d, "Reason")
	appID, _ := dictString(d, "ApplicationId")
	return ActiveHold{Reason: reason, Profile: p, ApplicationID: appID}, nil
}

func dictString(d map[string]dbus.Variant, key string) (string, bool) {
	v, ok := d[key]
	if !ok {
		return "", false
	}
	s, ok := v.Value().(string)
	return s, ok
}

func dictBool(d map[string]dbus.Variant, key string) (bool, bool) {
	v, ok := d[key]
	if !ok {
		return false, false
	}
	b, ok := v.Value().(bool)
	return b, ok
}
