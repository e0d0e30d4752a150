package hconfig_test

import (
	"strings"
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

func TestApplyTagRulesUnionsTagsAcrossRules(t *testing.T) {
	d := mustDriver(t, "cisco_ios")
	root, err := hconfig.Parse(d, "ntp server 10.0.0.1\nno ntp server 10.0.0.2\nhostname r1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	rules := []hconfig.TagRule{
		{Lineage: hconfig.Lineage{{StartsAny: []string{"ntp", "no ntp"}}}, Tag: "ntp"},
		{Lineage: hconfig.Lineage{{StartsWith: "ntp"}}, Tag: "monitoring"},
	}
	hconfig.ApplyTagRules(d, root, rules)

	server1 := root.GetChild(hconfig.MatchRule{Equals: "ntp server 10.0.0.1"})
	if server1 == nil || !server1.HasTag("ntp") || !server1.HasTag("monitoring") {
		t.Fatalf("expected ntp server line to carry both tags, got %v", server1.Tags)
	}
	noServer := root.GetChild(hconfig.MatchRule{Equals: "no ntp server 10.0.0.2"})
	if noServer == nil || !noServer.HasTag("ntp") || noServer.HasTag("monitoring") {
		t.Fatalf("expected negated ntp line to carry only the ntp tag, got %v", noServer.Tags)
	}
	hostname := root.GetChild(hconfig.MatchRule{StartsWith: "hostname"})
	if hostname == nil || len(hostname.Tags) != 0 {
		t.Fatalf("expected hostname line to carry no tags")
	}
}

func TestApplyTagRulesIsIdempotent(t *testing.T) {
	d := mustDriver(t, "cisco_ios")
	root, err := hconfig.Parse(d, "ntp server 10.0.0.1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	rules := []hconfig.TagRule{{Lineage: hconfig.Lineage{{StartsWith: "ntp"}}, Tag: "ntp"}}

	hconfig.ApplyTagRules(d, root, rules)
	first := hconfig.Render(d, root)
	hconfig.ApplyTagRules(d, root, rules)
	second := hconfig.Render(d, root)

	if first != second {
		t.Fatalf("expected applying tag rules twice to be idempotent")
	}
	node := root.GetChild(hconfig.MatchRule{StartsWith: "ntp"})
	if len(node.Tags) != 1 {
		t.Fatalf("expected exactly one tag after applying the same rule twice, got %v", node.Tags)
	}
}

func TestFilteredTextIncludeKeepsOnlyTaggedSubtrees(t *testing.T) {
	d := mustDriver(t, "cisco_ios")
	root, err := hconfig.Parse(d, "ntp server 10.0.0.1\nhostname r1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	hconfig.ApplyTagRules(d, root, []hconfig.TagRule{
		{Lineage: hconfig.Lineage{{StartsWith: "ntp"}}, Tag: "ntp"},
	})

	out := hconfig.FilteredText(d, root, hconfig.NewTagFilter([]string{"ntp"}, nil))
	if !strings.Contains(out, "ntp server") {
		t.Errorf("expected ntp line in filtered output, got: %q", out)
	}
	if strings.Contains(out, "hostname") {
		t.Errorf("expected hostname line excluded from filtered output, got: %q", out)
	}
}

func TestFilteredTextExcludeDropsTaggedSubtrees(t *testing.T) {
	d := mustDriver(t, "cisco_ios")
	root, err := hconfig.Parse(d, "ntp server 10.0.0.1\nhostname r1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	hconfig.ApplyTagRules(d, root, []hconfig.TagRule{
		{Lineage: hconfig.Lineage{{StartsWith: "ntp"}}, Tag: "ntp"},
	})

	out := hconfig.FilteredText(d, root, hconfig.NewTagFilter(nil, []string{"ntp"}))
	if strings.Contains(out, "ntp server") {
		t.Errorf("expected ntp line excluded from filtered output, got: %q", out)
	}
	if !strings.Contains(out, "hostname") {
		t.Errorf("expected hostname line kept in filtered output, got: %q", out)
	}
}

func TestFilteredTextEmptyFilterRendersEverything(t *testing.T) {
	d := mustDriver(t, "cisco_ios")
	root, err := hconfig.Parse(d, "ntp server 10.0.0.1\nhostname r1\n")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	out := hconfig.FilteredText(d, root, hconfig.NewTagFilter(nil, nil))
	if out != hconfig.Render(d, root) {
		t.Errorf("expected empty filter to equal full render")
	}
}
