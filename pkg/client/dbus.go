package client

import (
	"context"

	"github.com/godbus/dbus/v5"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/ppd-tools/ppdctl/pkg/types"
)

const (
	// BusName is the well-known name the daemon owns on the system bus.
	BusName = "org.freedesktop.UPower.PowerProfiles"

	// ObjectPath is the daemon's single exported object.
	ObjectPath = "/org/freedesktop/UPower/PowerProfiles"

	// Interface is the daemon's D-Bus interface name.
	Interface = "org.freedesktop.UPower.PowerProfiles"

	propsInterface = "org.freedesktop.DBus.Properties"
)

// DBusClient is the Client implementation backed by the system bus.
// One DBusClient owns one bus connection; Close releases it.
type DBusClient struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

var _ Client = (*DBusClient)(nil)

// New connects to the system bus and returns a client bound to the
// power-profiles daemon's object.
func New() (*DBusClient, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, &TransportError{Op: "connect system bus", Err: err}
	}
	return &DBusClient{
		conn: conn,
		obj:  conn.Object(BusName, ObjectPath),
	}, nil
}

// Close releases the bus connection.
func (c *DBusClient) Close() error {
	return c.conn.Close()
}

func (c *DBusClient) getProp(name string) (dbus.Variant, error) {
	logrus.WithField("property", name).Debug("reading daemon property")
	v, err := c.obj.GetProperty(Interface + "." + name)
	if err != nil {
		return dbus.Variant{}, &TransportError{Op: "get " + name, Err: err}
	}
	return v, nil
}

func (c *DBusClient) setProp(name string, value interface{}) error {
	logrus.WithFields(logrus.Fields{
		"property": name,
		"value":    value,
	}).Debug("writing daemon property")
	call := c.obj.Call(propsInterface+".Set", 0, Interface, name, dbus.MakeVariant(value))
	if call.Err != nil {
		return &TransportError{Op: "set " + name, Err: call.Err}
	}
	return nil
}

func (c *DBusClient) stringProp(name string) (string, error) {
	v, err := c.getProp(name)
	if err != nil {
		return "", err
	}
	var s string
	if err := v.Store(&s); err != nil {
		return "", &TransportError{Op: "decode " + name, Err: err}
	}
	return s, nil
}

func (c *DBusClient) dictsProp(name string) ([]map[string]dbus.Variant, error) {
	v, err := c.getProp(name)
	if err != nil {
		return nil, err
	}
	var dicts []map[string]dbus.Variant
	if err := v.Store(&dicts); err != nil {
		return nil, &TransportError{Op: "decode " + name, Err: err}
	}
	return dicts, nil
}

func (c *DBusClient) ActiveProfile() (types.PowerProfile, error) {
	s, err := c.stringProp("ActiveProfile")
	if err != nil {
		return "", err
	}
	p, err := types.ParsePowerProfile(s)
	if err != nil {
		return "", &TransportError{Op: "decode ActiveProfile", Err: err}
	}
	return p, nil
}

func (c *DBusClient) SetActiveProfile(p types.PowerProfile) error {
	return c.setProp("ActiveProfile", p.String())
}

func (c *DBusClient) Profiles() ([]types.Profile, error) {
	dicts, err := c.dictsProp("Profiles")
	if err != nil {
		return nil, err
	}
	profiles := make([]types.Profile, 0, len(dicts))
	for _, d := range dicts {
		p, err := types.ProfileFromDict(d)
		if err != nil {
			return nil, &TransportError{Op: "decode Profiles", Err: err}
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (c *DBusClient) Actions() ([]string, error) {
	v, err := c.getProp("Actions")
	if err != nil {
		return nil, err
	}
	var names []string
	if err := v.Store(&names); err != nil {
		return nil, &TransportError{Op: "decode Actions", Err: err}
	}
	return names, nil
}

func (c *DBusClient) ActionsInfo() ([]types.Action, error) {
	dicts, err := c.dictsProp("ActionsInfo")
	if err != nil {
		return nil, err
	}
	actions := make([]types.Action, 0, len(dicts))
	for _, d := range dicts {
		a, err := types.ActionFromDict(d)
		if err != nil {
			return nil, &TransportError{Op: "decode ActionsInfo", Err: err}
		}
		actions = append(actions, a)
	}
	return actions, nil
}

func (c *DBusClient) ActiveProfileHolds() ([]types.ActiveHold, error) {
	dicts, err := c.dictsProp("ActiveProfileHolds")
	if err != nil {
		return nil, err
	}
	holds := make([]types.ActiveHold, 0, len(dicts))
	for _, d := range dicts {
		h, err := types.ActiveHoldFromDict(d)
		if err != nil {
			return nil, &TransportError{Op: "decode ActiveProfileHolds", Err: err}
		}
		holds = append(holds, h)
	}
	return holds, nil
}

func (c *DBusClient) BatteryAware() (bool, error) {
	v, err := c.getProp("BatteryAware")
	if err != nil {
		return false, err
	}
	var b bool
	if err := v.Store(&b); err != nil {
		return false, &TransportError{Op: "decode BatteryAware", Err: err}
	}
	return b, nil
}

func (c *DBusClient) SetBatteryAware(enabled bool) error {
	return c.setProp("BatteryAware", enabled)
}

// PerformanceDegraded reads the degraded reason. The daemon publishes
// a plain string where empty means "not degraded".
func (c *DBusClient) PerformanceDegraded() (string, bool, error) {
	s, err := c.stringProp("PerformanceDegraded")
	if err != nil {
		return "", false, err
	}
	if s == "" {
		return "", false, nil
	}
	return s, true, nil
}

func (c *DBusClient) PerformanceInhibited() (string, error) {
	return c.stringProp("PerformanceInhibited")
}

func (c *DBusClient) Version() (string, error) {
	return c.stringProp("Version")
}

func (c *DBusClient) HoldProfile(p types.PowerProfile, reason, applicationID string) (uint32, error) {
	var cookie uint32
	call := c.obj.Call(Interface+".HoldProfile", 0, p.String(), reason, applicationID)
	if err := call.Store(&cookie); err != nil {
		return 0, &TransportError{Op: "HoldProfile", Err: err}
	}
	return cookie, nil
}

func (c *DBusClient) ReleaseProfile(cookie uint32) error {
	if call := c.obj.Call(Interface+".ReleaseProfile", 0, cookie); call.Err != nil {
		return &TransportError{Op: "ReleaseProfile", Err: call.Err}
	}
	return nil
}

func (c *DBusClient) SetActionEnabled(name string, enabled bool) error {
	if call := c.obj.Call(Interface+".SetActionEnabled", 0, name, enabled); call.Err != nil {
		return &TransportError{Op: "SetActionEnabled", Err: call.Err}
	}
	return nil
}

// WatchActiveProfile subscribes to PropertiesChanged on the daemon's
// object and forwards every ActiveProfile change.
func (c *DBusClient) WatchActiveProfile(ctx context.Context) (<-chan types.PowerProfile, error) {
	err := c.conn.AddMatchSignal(
		dbus.WithMatchObjectPath(ObjectPath),
		dbus.WithMatchInterface(propsInterface),
		dbus.WithMatchMember("PropertiesChanged"),
	)
	if err != nil {
		return nil, &TransportError{Op: "subscribe PropertiesChanged", Err: err}
	}

	signals := make(chan *dbus.Signal, 16)
	c.conn.Signal(signals)

	out := make(chan types.PowerProfile)
	go func() {
		defer close(out)
		defer c.conn.RemoveSignal(signals)
		for {
			select {
			case <-ctx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				p, ok := activeProfileFromSignal(sig)
				if !ok {
					continue
				}
				select {
				case out <- p:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// activeProfileFromSignal extracts the new ActiveProfile value from a
// PropertiesChanged signal, if the signal carries one.
func activeProfileFromSignal(sig *dbus.Signal) (types.PowerProfile, bool) {
	// Body is (interface, changed a{sv}, invalidated as).
	if len(sig.Body) < 2 {
		return "", false
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != Interface {
		return "", false
	}
	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return "", false
	}
	v, ok := changed["ActiveProfile"]
	if !ok {
		return "", false
	}
	s, ok := v.Value().(string)
	if !ok {
		return "", false
	}
	p, err := types.ParsePowerProfile(s)
	if err != nil {
		logrus.WithError(pkgerrors.Wrap(err, "ignoring change notification")).
			Warn("daemon reported an unrecognized profile")
		return "", false
	}
	return p, true
}
