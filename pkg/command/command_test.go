package command

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/ppd-tools/ppdctl/pkg/client"
	"github.com/ppd-tools/ppdctl/pkg/types"
)

func init() {
	color.NoColor = true
}

// fakeClient is an in-memory stand-in for the daemon.
type fakeClient struct {
	active    types.PowerProfile
	profiles  []types.Profile
	actions   []types.Action
	holds     []types.ActiveHold
	battery   bool
	degraded  string
	inhibited string
	version   string

	setProfileCalls []types.PowerProfile
	setBatteryCalls []bool

	changes chan types.PowerProfile
	err     error
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) ActiveProfile() (types.PowerProfile, error) {
	return f.active, f.err
}

func (f *fakeClient) SetActiveProfile(p types.PowerProfile) error {
	f.setProfileCalls = append(f.setProfileCalls, p)
	return f.err
}

func (f *fakeClient) Profiles() ([]types.Profile, error) {
	return f.profiles, f.err
}

func (f *fakeClient) Actions() ([]string, error) {
	names := make([]string, 0, len(f.actions))
	for _, a := range f.actions {
		names = append(names, a.Name)
	}
	return names, f.err
}

func (f *fakeClient) ActionsInfo() ([]types.Action, error) {
	return f.actions, f.err
}

func (f *fakeClient) ActiveProfileHolds() ([]types.ActiveHold, error) {
	return f.holds, f.err
}

func (f *fakeClient) BatteryAware() (bool, error) {
	return f.battery, f.err
}

func (f *fakeClient) SetBatteryAware(enabled bool) error {
	f.setBatteryCalls = append(f.setBatteryCalls, enabled)
	return f.err
}

func (f *fakeClient) PerformanceDegraded() (string, bool, error) {
	return f.degraded, f.degraded != "", f.err
}

func (f *fakeClient) PerformanceInhibited() (string, error) {
	return f.inhibited, f.err
}

func (f *fakeClient) Version() (string, error) {
	return f.version, f.err
}

func (f *fakeClient) HoldProfile(types.PowerProfile, string, string) (uint32, error) {
	return 0, f.err
}

func (f *fakeClient) ReleaseProfile(uint32) error {
	return f.err
}

func (f *fakeClient) SetActionEnabled(string, bool) error {
	return f.err
}

func (f *fakeClient) WatchActiveProfile(context.Context) (<-chan types.PowerProfile, error) {
	return f.changes, f.err
}

func threeProfiles() []types.Profile {
	return []types.Profile{
		{Profile: types.PowerSaver, Driver: "multiple", PlatformDriver: "platform_profile", CPUDriver: "amd_pstate"},
		{Profile: types.Balanced, Driver: "multiple", PlatformDriver: "platform_profile", CPUDriver: "amd_pstate"},
		{Profile: types.Performance, Driver: "multiple", PlatformDriver: "platform_profile", CPUDriver: "amd_pstate"},
	}
}

func TestGet(t *testing.T) {
	c := &fakeClient{active: types.Balanced}
	var out bytes.Buffer
	if err := Get(c, &out); err != nil {
		t.Fatalf("Get() returned error: %v", err)
	}
	if got := out.String(); got != "balanced\n" {
		t.Errorf("Get() output = %q, want %q", got, "balanced\n")
	}
}

func TestListRendersReverseOrder(t *testing.T) {
	c := &fakeClient{active: types.Balanced, profiles: threeProfiles()}
	var out bytes.Buffer
	if err := List(c, &out); err != nil {
		t.Fatalf("List() returned error: %v", err)
	}

	want := "  performance:\n" +
		"    CpuDriver:\tamd_pstate\n" +
		"    PlatformDriver:\tplatform_profile\n" +
		"    Degraded:  no\n" +
		"\n" +
		"* balanced:\n" +
		"    CpuDriver:\tamd_pstate\n" +
		"    PlatformDriver:\tplatform_profile\n" +
		"\n" +
		"  power-saver:\n" +
		"    CpuDriver:\tamd_pstate\n" +
		"    PlatformDriver:\tplatform_profile\n"
	if got := out.String(); got != want {
		t.Errorf("List() output:\n%q\nwant:\n%q", got, want)
	}
}

func TestListDegradedReason(t *testing.T) {
	c := &fakeClient{
		active:   types.Performance,
		profiles: threeProfiles(),
		degraded: "lap-detected",
	}
	var out bytes.Buffer
	if err := List(c, &out); err != nil {
		t.Fatalf("List() returned error: %v", err)
	}
	want := "* performance:\n" +
		"    CpuDriver:\tamd_pstate\n" +
		"    PlatformDriver:\tplatform_profile\n" +
		"    Degraded:  lap-detected\n"
	if got := out.String(); !strings.HasPrefix(got, want) {
		t.Errorf("List() output:\n%q\nwant prefix:\n%q", got, want)
	}
}

func TestListSingleDriver(t *testing.T) {
	c := &fakeClient{
		active: types.Balanced,
		profiles: []types.Profile{
			{Profile: types.PowerSaver, Driver: "placeholder"},
			{Profile: types.Balanced, Driver: "placeholder"},
		},
	}
	var out bytes.Buffer
	if err := List(c, &out); err != nil {
		t.Fatalf("List() returned error: %v", err)
	}
	want := "* balanced:\n" +
		"    Driver:\tplaceholder\n" +
		"\n" +
		"  power-saver:\n" +
		"    Driver:\tplaceholder\n"
	if got := out.String(); got != want {
		t.Errorf("List() output:\n%q\nwant:\n%q", got, want)
	}
}

func TestSet(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		profiles   []types.Profile
		wantErr    error
		wantWrites int
	}{
		{
			name:       "advertised profile",
			arg:        "performance",
			profiles:   threeProfiles(),
			wantWrites: 1,
		},
		{
			name:     "unknown name",
			arg:      "turbo",
			profiles: threeProfiles(),
			wantErr:  types.ErrInvalidProfile,
		},
		{
			name: "recognized but not advertised",
			arg:  "performance",
			profiles: []types.Profile{
				{Profile: types.PowerSaver, Driver: "placeholder"},
				{Profile: types.Balanced, Driver: "placeholder"},
			},
			wantErr: types.ErrInvalidProfile,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeClient{profiles: tt.profiles}
			err := Set(c, tt.arg)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Set(%q) = %v, want %v", tt.arg, err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Set(%q) returned error: %v", tt.arg, err)
			}
			if got := len(c.setProfileCalls); got != tt.wantWrites {
				t.Errorf("Set(%q) issued %d writes, want %d", tt.arg, got, tt.wantWrites)
			}
			if tt.wantWrites == 1 && c.setProfileCalls[0].String() != tt.arg {
				t.Errorf("Set(%q) wrote %q", tt.arg, c.setProfileCalls[0])
			}
		})
	}
}

func TestListActions(t *testing.T) {
	c := &fakeClient{actions: []types.Action{
		{Name: "amdgpu_panel_power", Description: "Panel power savings", Enabled: true},
		{Name: "trickle_charge", Description: "Trickle charging", Enabled: false},
	}}
	var out bytes.Buffer
	if err := ListActions(c, &out); err != nil {
		t.Fatalf("ListActions() returned error: %v", err)
	}
	want := "Name: amdgpu_panel_power\n" +
		"Description: Panel power savings\n" +
		"Enabled: true\n" +
		"Name: trickle_charge\n" +
		"Description: Trickle charging\n" +
		"Enabled: false\n"
	if got := out.String(); got != want {
		t.Errorf("ListActions() output:\n%q\nwant:\n%q", got, want)
	}
}

func TestQueryBatteryAware(t *testing.T) {
	c := &fakeClient{battery: true}
	var out bytes.Buffer
	if err := QueryBatteryAware(c, &out); err != nil {
		t.Fatalf("QueryBatteryAware() returned error: %v", err)
	}
	want := "Dynamic changes from charger and battery events: true\n"
	if got := out.String(); got != want {
		t.Errorf("QueryBatteryAware() output = %q, want %q", got, want)
	}
}

func TestConfigureBatteryAware(t *testing.T) {
	tests := []struct {
		name            string
		enable, disable bool
		wantErr         bool
		wantWrite       []bool
	}{
		{name: "enable", enable: true, wantWrite: []bool{true}},
		{name: "disable", disable: true, wantWrite: []bool{false}},
		{name: "both flags", enable: true, disable: true, wantErr: true},
		{name: "neither flag", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &fakeClient{}
			err := ConfigureBatteryAware(c, tt.enable, tt.disable)
			if tt.wantErr {
				if !errors.Is(err, client.ErrInvalidConfig) {
					t.Fatalf("ConfigureBatteryAware() = %v, want ErrInvalidConfig", err)
				}
			} else if err != nil {
				t.Fatalf("ConfigureBatteryAware() returned error: %v", err)
			}
			if len(c.setBatteryCalls) != len(tt.wantWrite) {
				t.Fatalf("ConfigureBatteryAware() issued %d writes, want %d",
					len(c.setBatteryCalls), len(tt.wantWrite))
			}
			for i, want := range tt.wantWrite {
				if c.setBatteryCalls[i] != want {
					t.Errorf("write %d = %t, want %t", i, c.setBatteryCalls[i], want)
				}
			}
		})
	}
}

func TestUnimplementedCommands(t *testing.T) {
	c := &fakeClient{}
	var out bytes.Buffer
	if err := ListHolds(c, &out); !errors.Is(err, client.ErrUnimplemented) {
		t.Errorf("ListHolds() = %v, want ErrUnimplemented", err)
	}
	if err := ConfigureAction(c, "trickle_charge", true, false); !errors.Is(err, client.ErrUnimplemented) {
		t.Errorf("ConfigureAction() = %v, want ErrUnimplemented", err)
	}
	if err := Launch(c, []string{"make", "-j8"}, "performance", "", ""); !errors.Is(err, client.ErrUnimplemented) {
		t.Errorf("Launch() = %v, want ErrUnimplemented", err)
	}
}

func TestWatch(t *testing.T) {
	changes := make(chan types.PowerProfile, 2)
	changes <- types.Performance
	changes <- types.PowerSaver
	close(changes)

	c := &fakeClient{active: types.Balanced, changes: changes}
	var out bytes.Buffer
	if err := Watch(context.Background(), c, &out); err != nil {
		t.Fatalf("Watch() returned error: %v", err)
	}
	want := "balanced\nperformance\npower-saver\n"
	if got := out.String(); got != want {
		t.Errorf("Watch() output = %q, want %q", got, want)
	}
}
