package hconfig_test

import (
	"strings"
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

func mustDriver(t *testing.T, name string) *hconfig.Driver {
	t.Helper()
	d, err := platform.Get(name)
	if err != nil {
		t.Fatalf("platform.Get(%q): %v", name, err)
	}
	return d
}

func mustParse(t *testing.T, d *hconfig.Driver, text string) *hconfig.Node {
	t.Helper()
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func renderedLines(t *testing.T, d *hconfig.Driver, n *hconfig.Node) []string {
	t.Helper()
	text := hconfig.Render(d, n)
	text = strings.TrimRight(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

// Scenario 1 — VLAN addition (Cisco IOS), spec.md §8.
func TestRemediateScenario1VLANAddition(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "vlan 3\n name old\n")
	generated := mustParse(t, d, "vlan 3\n name new\nvlan 4\n name v4\n")

	rem := hconfig.Remediate(d, running, generated)
	got := strings.Join(renderedLines(t, d, rem), "\n")
	want := "vlan 3\n name new\nvlan 4\n name v4"
	if got != want {
		t.Fatalf("remediation mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// Scenario 2 — interface shutdown toggle.
func TestRemediateScenario2ShutdownToggle(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "interface Vlan2\n shutdown\n")
	generated := mustParse(t, d, "interface Vlan2\n no shutdown\n")

	rem := hconfig.Remediate(d, running, generated)
	got := strings.Join(renderedLines(t, d, rem), "\n")
	want := "interface Vlan2\n no shutdown"
	if got != want {
		t.Fatalf("remediation mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// Scenario 3 — NegateWith rule collapses "logging console <level>".
func TestRemediateScenario3NegateWith(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "logging console debugging\n")
	generated := mustParse(t, d, "")

	rem := hconfig.Remediate(d, running, generated)
	got := strings.Join(renderedLines(t, d, rem), "\n")
	want := "no logging console"
	if got != want {
		t.Fatalf("remediation mismatch: got %q want %q", got, want)
	}
}

// NegationDefaultWhen rule renders a bare "default <command>" line
// instead of swapping the negation prefix, for a command that only
// resets fully via a platform's default form.
func TestRemediateNegationDefaultWhen(t *testing.T) {
	d := mustDriver(t, platform.AristaEOS)
	running := mustParse(t, d, "interface Ethernet1\n logging event link-status\n")
	generated := mustParse(t, d, "interface Ethernet1\n")

	rem := hconfig.Remediate(d, running, generated)
	got := strings.Join(renderedLines(t, d, rem), "\n")
	want := "interface Ethernet1\n default logging event link-status"
	if got != want {
		t.Fatalf("remediation mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

// Scenario 4 — rollback of scenario 1.
func TestRemediateScenario4Rollback(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "vlan 3\n name old\n")
	generated := mustParse(t, d, "vlan 3\n name new\nvlan 4\n name v4\n")

	rollback := hconfig.Rollback(d, running, generated)
	text := hconfig.Render(d, rollback)
	if !strings.Contains(text, "no vlan 4") {
		t.Errorf("rollback missing %q, got:\n%s", "no vlan 4", text)
	}
	if !strings.Contains(text, "name old") {
		t.Errorf("rollback missing %q, got:\n%s", "name old", text)
	}
}

// Scenario 5 — Junos flat negation via delete.
func TestRemediateScenario5JunosFlat(t *testing.T) {
	d := mustDriver(t, platform.JuniperJunos)
	running := mustParse(t, d, "set interfaces irb unit 2 family inet disable\n")
	generated := mustParse(t, d, "")

	rem := hconfig.Remediate(d, running, generated)
	got := strings.TrimRight(hconfig.Render(d, rem), "\n")
	want := "delete interfaces irb unit 2 family inet disable"
	if got != want {
		t.Fatalf("remediation mismatch: got %q want %q", got, want)
	}
}

// Scenario 6 — tag filter.
func TestTagFilterScenario6(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	root := mustParse(t, d, "ntp server 10.0.0.1\nhostname foo\n")

	hconfig.ApplyTagRules(d, root, []hconfig.TagRule{
		{Lineage: hconfig.Lineage{{StartsWith: "ntp"}}, Tag: "ntp"},
	})

	out := hconfig.FilteredText(d, root, hconfig.NewTagFilter([]string{"ntp"}, nil))
	if !strings.Contains(out, "ntp server 10.0.0.1") {
		t.Errorf("filtered output missing ntp line, got:\n%s", out)
	}
	if strings.Contains(out, "hostname foo") {
		t.Errorf("filtered output should not contain untagged line, got:\n%s", out)
	}
}

func TestRemediateSelfIsEmpty(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	c := mustParse(t, d, "hostname foo\ninterface Gi0/1\n description x\n")

	rem := hconfig.Remediate(d, c, c)
	if len(rem.Children) != 0 {
		t.Fatalf("remediate(c, c) should be empty, got:\n%s", hconfig.Render(d, rem))
	}
}

func TestRemediateFromEmptyMarksEverythingNew(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	empty := hconfig.NewRoot(d)
	c := mustParse(t, d, "hostname foo\ninterface Gi0/1\n description x\n")

	rem := hconfig.Remediate(d, empty, c)
	for _, n := range rem.AllChildren() {
		if !n.IsNewInConfig {
			t.Errorf("node %q should be marked new", n.Text)
		}
	}
	if got, want := strings.TrimRight(hconfig.Render(d, rem), "\n"), strings.TrimRight(hconfig.Render(d, c), "\n"); got != want {
		t.Fatalf("remediate(empty, c) should render like c:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestApplyTagRulesIdempotent(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	root := mustParse(t, d, "ntp server 10.0.0.1\n")
	rules := []hconfig.TagRule{{Lineage: hconfig.Lineage{{StartsWith: "ntp"}}, Tag: "ntp"}}

	hconfig.ApplyTagRules(d, root, rules)
	first := hconfig.Render(d, root)
	hconfig.ApplyTagRules(d, root, rules)
	second := hconfig.Render(d, root)
	if first != second {
		t.Fatalf("ApplyTagRules should be idempotent")
	}
}

func TestWorkflowRemediation(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "vlan 3\n name old\n")
	generated := mustParse(t, d, "vlan 3\n name new\n")

	wf, err := hconfig.NewWorkflowRemediation(running, generated)
	if err != nil {
		t.Fatalf("NewWorkflowRemediation: %v", err)
	}
	rem := wf.RemediationConfig()
	if got, want := strings.TrimRight(hconfig.Render(d, rem), "\n"), "vlan 3\n name new"; got != want {
		t.Fatalf("RemediationConfig mismatch: got %q want %q", got, want)
	}
	rollback := wf.RollbackConfig()
	if got, want := strings.TrimRight(hconfig.Render(d, rollback), "\n"), "vlan 3\n name old"; got != want {
		t.Fatalf("RollbackConfig mismatch: got %q want %q", got, want)
	}
}

// Future must drop a superseded running line even with no IdempotentCommands
// entry for it: cisco_ios has no such entry for shutdown/no-shutdown, so
// this exercises the negation-prefix based supersession path instead.
func TestFutureNegationSupersedesRunningCounterpart(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "interface Vlan2\n shutdown\n")
	overlay := mustParse(t, d, "interface Vlan2\n no shutdown\n")

	future := hconfig.Future(d, running, overlay)
	iface := future.GetChild(hconfig.MatchRule{StartsWith: "interface"})
	if iface == nil {
		t.Fatalf("expected interface node in future config")
	}
	if got := iface.GetChild(hconfig.MatchRule{Equals: "shutdown"}); got != nil {
		t.Fatalf("expected \"shutdown\" to be superseded by \"no shutdown\", found it in future config")
	}
	if got := iface.GetChild(hconfig.MatchRule{Equals: "no shutdown"}); got != nil {
		t.Fatalf("expected the negation trigger \"no shutdown\" itself not to be carried into future config, found %v", got.Text)
	}
}

// The reverse direction also supersedes: a running negated line dropped
// by an overlay declaring the positive form.
func TestFutureNegationSupersedesInReverse(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "interface Vlan2\n no shutdown\n")
	overlay := mustParse(t, d, "interface Vlan2\n shutdown\n")

	future := hconfig.Future(d, running, overlay)
	iface := future.GetChild(hconfig.MatchRule{StartsWith: "interface"})
	if iface == nil {
		t.Fatalf("expected interface node in future config")
	}
	if len(iface.Children) != 0 {
		t.Fatalf("expected both counterparts to be dropped from future config, got %v", iface.Children)
	}
}

// Future still carries forward a running line untouched when the overlay
// says nothing about it at all.
func TestFutureUnrelatedRunningLineSurvives(t *testing.T) {
	d := mustDriver(t, platform.CiscoIOS)
	running := mustParse(t, d, "interface Vlan2\n shutdown\n description keep-me\n")
	overlay := mustParse(t, d, "interface Vlan2\n mtu 9000\n")

	future := hconfig.Future(d, running, overlay)
	iface := future.GetChild(hconfig.MatchRule{StartsWith: "interface"})
	if iface == nil {
		t.Fatalf("expected interface node in future config")
	}
	if iface.GetChild(hconfig.MatchRule{Equals: "shutdown"}) == nil {
		t.Fatalf("expected unrelated running line \"shutdown\" to survive into future config")
	}
	if iface.GetChild(hconfig.MatchRule{StartsWith: "mtu"}) == nil {
		t.Fatalf("expected new overlay line \"mtu 9000\" to appear in future config")
	}
}
