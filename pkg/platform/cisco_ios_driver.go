package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newCiscoIOS builds the Cisco IOS driver, grounded on
// original_source/hier_config/platforms/cisco_ios/driver.py: a
// NegateWith collapse for "logging console <level>", BGP peer-policy/
// peer-session/address-family sectional exits, switchport-mode-first /
// no-shutdown-early / tacacs-server ordering quirks, configuration
// header, version and timestamp noise stripped at parse time, and
// idempotent vlan/interface commands.
func newCiscoIOS() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:       CiscoIOS,
		Indentation:    1,
		NegationPrefix: "no ",

		NegateWith: []hconfig.NegateWithRule{
			{
				Lineage: hconfig.Lineage{{StartsWith: "logging console "}},
				Use:     "no logging console",
			},
		},
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
		},
		Ordering: []hconfig.OrderingRule{
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "switchport mode "}}, Weight: -10},
			{Lineage: hconfig.Lineage{{StartsWith: "no vlan filter"}}, Weight: 200},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "no shutdown"}}, Weight: 200},
			{Lineage: hconfig.Lineage{{StartsWith: "aaa group server tacacs+ "}, {StartsWith: "no server "}}, Weight: 10},
			{Lineage: hconfig.Lineage{{StartsWith: "no tacacs-server "}}, Weight: 10},
		},
		PerLineSub: []hconfig.PerLineSubRule{
			{Search: `^Building configuration.*`, Replace: ""},
			{Search: `^Current configuration.*`, Replace: ""},
			{Search: `^! Last configuration change.*`, Replace: ""},
			{Search: `^! NVRAM config last updated.*`, Replace: ""},
			{Search: `^ntp clock-period .*`, Replace: ""},
			{Search: `^version.*`, Replace: ""},
			{Search: `^\s*logging event link-status$`, Replace: ""},
			{Search: `^\s*logging event subif-link-status$`, Replace: ""},
			{Search: `^\s*ipv6 unreachables disable$`, Replace: ""},
			{Search: `^end$`, Replace: ""},
			{Search: `^\s*[#!].*`, Replace: ""},
			{Search: `^\s*no ip address$`, Replace: ""},
			{Search: `^crypto key generate rsa general-keys.*$`, Replace: ""},
		},
		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{StartsWith: "vlan"}, {StartsWith: "name"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface "}, {StartsWith: "description "}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface "}, {StartsWith: "ip address "}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface "}, {StartsWith: "switchport mode "}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface "}, {StartsWith: "authentication host-mode "}}},
			{Lineage: hconfig.Lineage{{ReSearch: `^errdisable recovery interval `}}},
			{Lineage: hconfig.Lineage{{ReSearch: `^(no )?logging console.*`}}},
		},
		PostLoadCallbacks: []hconfig.PostLoadCallback{
			removeIPv6ACLSequenceNumbers,
			removeIPv4ACLRemarks,
			addIPv4ACLSequenceNumbers,
		},
		UnusedObjectRules: []hconfig.UnusedObjectRule{
			ciscoVLANUnusedObjectRule(),
		},
	})
}
