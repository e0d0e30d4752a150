package hconfig_test

import (
	"strings"
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

func TestParseIndentedTreeShape(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	text := "interface GigabitEthernet0/1\n description uplink\n no shutdown\nhostname r1\n"
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	iface := root.GetChild(hconfig.MatchRule{StartsWith: "interface"})
	if iface == nil {
		t.Fatalf("expected interface child")
	}
	if len(iface.Children) != 2 {
		t.Fatalf("expected 2 children under interface, got %d", len(iface.Children))
	}

	hostname := root.GetChild(hconfig.MatchRule{StartsWith: "hostname"})
	if hostname == nil || len(hostname.Children) != 0 {
		t.Fatalf("expected leaf hostname node")
	}
}

func TestParseRejectsSkippedIndentLevel(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	// Four spaces jumps two indent levels (indentation width is 1 for
	// this driver's default) with no intermediate parent line.
	text := "interface GigabitEthernet0/1\n    description deep\n"
	if _, err := hconfig.Parse(d, text); err == nil {
		t.Fatalf("expected an error for a skipped indentation level")
	}
}

func TestParseBlankLinesAreIgnored(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	root, err := hconfig.Parse(d, "hostname r1\n\n\nntp server 10.0.0.1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 top-level children, got %d", len(root.Children))
	}
}

// A literal sectional-exit marker already present in the input must not
// be duplicated on render: Render re-materializes it from the matching
// SectionalExiting rule, so the parser has to strip the parsed one first.
func TestParseStripsPreExistingSectionalExit(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	text := "router bgp 65000\n address-family ipv4\n  network 10.0.0.0\n exit-address-family\n"
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	af := root.GetChildDeep(hconfig.Lineage{
		{StartsWith: "router bgp"},
		{StartsWith: "address-family"},
	})
	if af == nil {
		t.Fatalf("expected address-family node")
	}
	if len(af.Children) != 1 {
		t.Fatalf("expected the parsed exit-address-family leaf to be stripped, got %d children", len(af.Children))
	}

	rendered := hconfig.Render(d, root)
	if got, want := strings.Count(rendered, "exit-address-family"), 1; got != want {
		t.Fatalf("expected exactly %d exit-address-family line(s) in render, got %d:\n%s", want, got, rendered)
	}
}

// A parent lineage on the driver's ParentAllowsDuplicateChild list keeps
// same-text lines as distinct siblings instead of collapsing them into
// one node: IOS-XR route-policy bodies can legitimately contain more
// than one "endif".
func TestParseKeepsDuplicateChildrenUnderAllowingParent(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOSXR)
	text := "route-policy foo\nendif\nendif\nend-policy\n"
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	policy := root.GetChild(hconfig.MatchRule{StartsWith: "route-policy"})
	if policy == nil {
		t.Fatalf("expected route-policy node")
	}
	endifs := policy.GetChildren(hconfig.MatchRule{Equals: "endif"})
	if len(endifs) != 2 {
		t.Fatalf("expected 2 distinct endif siblings, got %d", len(endifs))
	}
	if endifs[0] == endifs[1] {
		t.Fatalf("expected two distinct nodes, not the same node counted twice")
	}
}

func TestParseRoundTripsThroughRender(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	text := "interface GigabitEthernet0/1\n description uplink\n"
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rendered := hconfig.Render(d, root)
	root2, err := hconfig.Parse(d, rendered)
	if err != nil {
		t.Fatalf("Parse (round 2): %v", err)
	}
	if hconfig.Render(d, root2) != rendered {
		t.Fatalf("render is not stable across a reparse: %q vs %q", rendered, hconfig.Render(d, root2))
	}
}
