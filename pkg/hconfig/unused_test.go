package hconfig_test

import (
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

func TestAnalyzeUnusedObjectsFindsUnreferencedVLAN(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	root := mustParse(t, d, ""+
		"vlan 10\n"+
		" name used\n"+
		"vlan 20\n"+
		" name orphan\n"+
		"interface GigabitEthernet0/1\n"+
		" switchport access vlan 10\n")

	unused := hconfig.AnalyzeUnusedObjects(d, root)
	if len(unused) != 1 {
		t.Fatalf("expected exactly 1 unused object, got %d: %+v", len(unused), unused)
	}
	if unused[0].Name != "20" {
		t.Errorf("expected unused vlan 20, got %q", unused[0].Name)
	}
	if unused[0].RemovalText != "no vlan 20" {
		t.Errorf("expected removal command %q, got %q", "no vlan 20", unused[0].RemovalText)
	}
}

func TestAnalyzeUnusedObjectsNoneWhenAllReferenced(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	root := mustParse(t, d, ""+
		"vlan 10\n"+
		" name used\n"+
		"interface GigabitEthernet0/1\n"+
		" switchport access vlan 10\n")

	unused := hconfig.AnalyzeUnusedObjects(d, root)
	if len(unused) != 0 {
		t.Fatalf("expected no unused objects, got %+v", unused)
	}
}
