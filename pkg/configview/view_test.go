package configview_test

import (
	"testing"

	"github.com/psaab/hierconfig/pkg/configview"
	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

func mustParse(t *testing.T, text string) *hconfig.Node {
	t.Helper()
	d, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("platform.Get: %v", err)
	}
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestHostnameView(t *testing.T) {
	root := mustParse(t, "hostname router1\n")
	name, ok := configview.HostnameView(root)
	if !ok {
		t.Fatalf("expected hostname to be found")
	}
	if name != "router1" {
		t.Errorf("got %q, want %q", name, "router1")
	}
}

func TestHostnameViewMissing(t *testing.T) {
	root := mustParse(t, "vlan 10\n")
	if _, ok := configview.HostnameView(root); ok {
		t.Errorf("expected no hostname to be found")
	}
}

func TestInterfaceViews(t *testing.T) {
	root := mustParse(t, ""+
		"interface GigabitEthernet0/1\n"+
		" description uplink\n"+
		" switchport trunk native vlan 10\n"+
		" switchport trunk allowed vlan 20,30-32\n"+
		"interface GigabitEthernet0/2\n"+
		" shutdown\n")

	ifaces := configview.InterfaceViews(root)
	if len(ifaces) != 2 {
		t.Fatalf("expected 2 interfaces, got %d", len(ifaces))
	}

	gi1 := ifaces[0]
	if gi1.Name != "GigabitEthernet0/1" {
		t.Errorf("got name %q", gi1.Name)
	}
	if gi1.Description != "uplink" {
		t.Errorf("got description %q", gi1.Description)
	}
	if gi1.NativeVLAN != 10 {
		t.Errorf("got native vlan %d", gi1.NativeVLAN)
	}
	if got, want := gi1.TaggedVLANs, []int{20, 30, 31, 32}; !intSliceEqual(got, want) {
		t.Errorf("got tagged vlans %v, want %v", got, want)
	}
	if !gi1.Enabled {
		t.Errorf("expected GigabitEthernet0/1 to be enabled")
	}

	gi2 := ifaces[1]
	if gi2.Enabled {
		t.Errorf("expected GigabitEthernet0/2 to be shut down")
	}
}

func TestInterfaceViewByName(t *testing.T) {
	root := mustParse(t, "interface GigabitEthernet0/1\n description x\n")
	iv, ok := configview.InterfaceViewByName(root, "GigabitEthernet0/1")
	if !ok {
		t.Fatalf("expected to find interface")
	}
	if iv.Description != "x" {
		t.Errorf("got description %q", iv.Description)
	}
	if _, ok := configview.InterfaceViewByName(root, "nope"); ok {
		t.Errorf("expected not to find nonexistent interface")
	}
}

func TestVLANViews(t *testing.T) {
	root := mustParse(t, ""+
		"vlan 10\n"+
		" name eng\n"+
		"vlan 20,30-31\n")

	vlans := configview.VLANViews(root)
	if len(vlans) != 4 {
		t.Fatalf("expected 4 vlans (10, 20, 30, 31), got %d: %+v", len(vlans), vlans)
	}
	if vlans[0].ID != 10 || vlans[0].Name != "eng" {
		t.Errorf("got %+v", vlans[0])
	}
	ids := map[int]bool{}
	for _, v := range vlans {
		ids[v.ID] = true
	}
	for _, want := range []int{10, 20, 30, 31} {
		if !ids[want] {
			t.Errorf("expected vlan %d to be present, got %+v", want, vlans)
		}
	}
}

func intSliceEqual(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
