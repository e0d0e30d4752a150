package hconfig_test

import (
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

func TestMatchRuleZeroValueMatchesAnything(t *testing.T) {
	var r hconfig.MatchRule
	if !r.IsZero() {
		t.Fatalf("expected zero-value MatchRule to report IsZero")
	}
	if !r.Match("anything at all") {
		t.Fatalf("expected zero-value MatchRule to match any text")
	}
}

func TestMatchRuleCombinesPredicatesWithAnd(t *testing.T) {
	r := hconfig.MatchRule{StartsWith: "interface", Contains: "Ethernet0/1"}
	if !r.Match("interface GigabitEthernet0/1") {
		t.Errorf("expected match")
	}
	if r.Match("interface GigabitEthernet0/2") {
		t.Errorf("expected no match: Contains predicate should fail")
	}
	if r.Match("no interface GigabitEthernet0/1") {
		t.Errorf("expected no match: StartsWith predicate should fail")
	}
}

func TestMatchRuleAnyVariants(t *testing.T) {
	tests := []struct {
		name string
		rule hconfig.MatchRule
		text string
		want bool
	}{
		{"EqualsAny hit", hconfig.MatchRule{EqualsAny: []string{"a", "b"}}, "b", true},
		{"EqualsAny miss", hconfig.MatchRule{EqualsAny: []string{"a", "b"}}, "c", false},
		{"StartsAny hit", hconfig.MatchRule{StartsAny: []string{"ntp", "no ntp"}}, "no ntp server 10.0.0.1", true},
		{"StartsAny miss", hconfig.MatchRule{StartsAny: []string{"ntp", "no ntp"}}, "snmp-server", false},
		{"EndsAny hit", hconfig.MatchRule{EndsAny: []string{".1", ".2"}}, "10.0.0.1", true},
		{"ContainsAny hit", hconfig.MatchRule{ContainsAny: []string{"eth", "vlan"}}, "interface vlan10", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Match(tt.text); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestMatchRuleReSearch(t *testing.T) {
	r := hconfig.MatchRule{ReSearch: `^vlan [0-9,-]+$`}
	if !r.Match("vlan 10,20-30") {
		t.Errorf("expected regex match")
	}
	if r.Match("vlan abc") {
		t.Errorf("expected regex mismatch")
	}
}
