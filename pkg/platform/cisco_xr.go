package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newCiscoXR builds the Cisco IOS-XR driver, grounded on
// original_source/hier_config/platforms/cisco_xr/driver.py: route-policy
// and friends get their own end-* sectional exits, "template" sections
// are sectional-overwritten wholesale, route-policy/as-path-set/
// prefix-set sections are sectional-overwritten without an explicit
// negate (XR replaces them atomically), and route-policy bodies use
// IndentAdjust because "end-policy" is itself indent-bearing text
// rather than whitespace.
func newCiscoXR() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:       CiscoIOSXR,
		Indentation:    1,
		NegationPrefix: "no ",

		SectionalExiting: []hconfig.SectionalExitingRule{
			{Lineage: hconfig.Lineage{{StartsWith: "route-policy"}}, ExitText: "end-policy"},
			{Lineage: hconfig.Lineage{{StartsWith: "prefix-set"}}, ExitText: "end-set"},
			{Lineage: hconfig.Lineage{{StartsWith: "policy-map"}}, ExitText: "end-policy-map"},
			{Lineage: hconfig.Lineage{{StartsWith: "class-map"}}, ExitText: "end-class-map"},
			{Lineage: hconfig.Lineage{{StartsWith: "community-set"}}, ExitText: "end-set"},
			{Lineage: hconfig.Lineage{{StartsWith: "extcommunity-set"}}, ExitText: "end-set"},
			{Lineage: hconfig.Lineage{{StartsWith: "template"}}, ExitText: "end-template"},
		},
		SectionalOverwrite: []hconfig.SectionalOverwriteRule{
			{Lineage: hconfig.Lineage{{StartsWith: "template"}}},
		},
		SectionalOverwriteNoNegate: []hconfig.SectionalOverwriteNoNegateRule{
			{Lineage: hconfig.Lineage{{StartsWith: "as-path-set"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "prefix-set"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "route-policy"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "extcommunity-set"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "community-set"}}},
		},
		Ordering: []hconfig.OrderingRule{
			{Lineage: hconfig.Lineage{{StartsWith: "vrf "}}, Weight: -200},
			{Lineage: hconfig.Lineage{{StartsWith: "no vrf "}}, Weight: 200},
		},
		IndentAdjust: []hconfig.IndentAdjustRule{
			{StartExpr: `^\s*template`, EndExpr: `^\s*end-template`},
			{StartExpr: `^\s*route-policy`, EndExpr: `^\s*end-policy$`},
		},
		ParentAllowsDuplicateChild: []hconfig.ParentAllowsDuplicateChildRule{
			{Lineage: hconfig.Lineage{{StartsWith: "route-policy"}}},
		},
		PerLineSub: []hconfig.PerLineSubRule{
			{Search: `^Building configuration.*`, Replace: ""},
			{Search: `^Current configuration.*`, Replace: ""},
			{Search: `^ntp clock-period .*`, Replace: ""},
			{Search: `.*speed.*`, Replace: ""},
			{Search: `.*duplex.*`, Replace: ""},
			{Search: `.*negotiation auto.*`, Replace: ""},
			{Search: `.*parity none.*`, Replace: ""},
			{Search: `^end$`, Replace: ""},
			{Search: `^\s*[#!].*`, Replace: ""},
		},
		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{
				{StartsWith: "router bgp"}, {StartsWith: "vrf"}, {StartsWith: "address-family"},
				{StartsWith: "additional-paths selection route-policy"},
			}},
			{Lineage: hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "bgp router-id"}}},
			{Lineage: hconfig.Lineage{
				{StartsWith: "router bgp"}, {StartsWith: "vrf"}, {StartsWith: "neighbor"},
				{StartsWith: "address-family"}, {StartsWith: "maximum-prefix"},
			}},
			{Lineage: hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "vrf"}, {StartsWith: "neighbor"}, {StartsWith: "password"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "neighbor"}, {StartsWith: "description"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "router ospf"}, {StartsWith: "router-id"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "ipv4 address"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "mtu"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "snmp-server community"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "snmp-server location"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "hostname"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "banner"}}},
		},
	})
}
