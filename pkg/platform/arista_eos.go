package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newAristaEOS builds the Arista EOS driver, grounded on
// original_source/hier_config/platforms/arista_eos/driver.py: the same
// BGP peer-policy/peer-session/address-family sectional exits as IOS,
// plus idempotent hostname/interface/vty rules.
func newAristaEOS() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:       AristaEOS,
		Indentation:    1,
		NegationPrefix: "no ",

		SectionalExiting: []hconfig.SectionalExitingRule{
			{
				Lineage:  hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "template peer-policy"}},
				ExitText: "exit-peer-policy",
			},
			{
				Lineage:  hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "template peer-session"}},
				ExitText: "exit-peer-session",
			},
			{
				Lineage:  hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "address-family"}},
				ExitText: "exit-address-family",
			},
			{
				Lineage:  hconfig.Lineage{{StartsWith: "route-map "}},
				ExitText: "exit",
			},
		},
		PerLineSub: []hconfig.PerLineSubRule{
			{Search: `^Building configuration.*`, Replace: ""},
			{Search: `^Current configuration.*`, Replace: ""},
			{Search: `^! Last configuration change.*`, Replace: ""},
			{Search: `^ntp clock-period .*`, Replace: ""},
			{Search: `^end$`, Replace: ""},
			{Search: `^\s*[#!].*`, Replace: ""},
		},
		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{StartsWith: "hostname"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "logging source-interface"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "ip address"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "line vty"}, {StartsWith: "transport input"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "line vty"}, {StartsWith: "access-class"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "vlan"}, {StartsWith: "name"}}},
		},
		NegationDefaultWhen: []hconfig.NegationDefaultWhenRule{
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {Equals: "logging event link-status"}}},
		},
	})
}
