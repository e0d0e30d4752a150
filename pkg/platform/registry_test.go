package platform_test

import (
	"strings"
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

func TestGetKnownPlatforms(t *testing.T) {
	for _, name := range platform.Names() {
		d, err := platform.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		if d == nil {
			t.Fatalf("Get(%q) returned nil driver", name)
		}
	}
}

func TestGetUnknownPlatform(t *testing.T) {
	_, err := platform.Get("does-not-exist")
	if err == nil {
		t.Fatalf("expected error for unknown platform")
	}
	if _, ok := err.(*hconfig.UnsupportedPlatformError); !ok {
		t.Fatalf("expected *hconfig.UnsupportedPlatformError, got %T: %v", err, err)
	}
}

func TestGetCachesDriverInstance(t *testing.T) {
	a, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if a != b {
		t.Fatalf("expected cached driver instance to be reused")
	}
}

func TestJunosStylePlatformsParseSetSyntax(t *testing.T) {
	for _, name := range []string{platform.JuniperJunos, platform.VyOS} {
		d, err := platform.Get(name)
		if err != nil {
			t.Fatalf("Get(%q): %v", name, err)
		}
		root, err := hconfig.Parse(d, "set system host-name router1\n")
		if err != nil {
			t.Fatalf("Parse(%q): %v", name, err)
		}
		text := hconfig.Render(d, root)
		if !strings.Contains(text, "set system host-name router1") {
			t.Errorf("%s: expected rendered set line, got:\n%s", name, text)
		}
	}
}

func TestFortiOSSwapNegation(t *testing.T) {
	d, err := platform.Get(platform.FortinetFortiOS)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	running, err := hconfig.Parse(d, "config system interface\n    edit port1\n        set vdom root\n    next\nend\n")
	if err != nil {
		t.Fatalf("Parse running: %v", err)
	}
	generated, err := hconfig.Parse(d, "config system interface\n    edit port1\n    next\nend\n")
	if err != nil {
		t.Fatalf("Parse generated: %v", err)
	}

	rem := hconfig.Remediate(d, running, generated)
	text := hconfig.Render(d, rem)
	if !strings.Contains(text, "unset vdom") {
		t.Errorf("expected swapped negation %q, got:\n%s", "unset vdom", text)
	}
}

func TestCiscoIOSSectionalExitAppendsExitAddressFamily(t *testing.T) {
	d, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	root, err := hconfig.Parse(d, "router bgp 65000\n address-family ipv4\n  network 10.0.0.0\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	text := hconfig.Render(d, root)
	if !strings.Contains(text, "exit-address-family") {
		t.Errorf("expected sectional exit line, got:\n%s", text)
	}
}
