package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newCiscoNXOS builds the Cisco NX-OS driver, grounded on
// original_source/hier_config/platforms/cisco_nxos/driver.py: it shares
// most of IOS's idempotency shape but with NX-OS's flatter "ip
// access-list NAME" syntax (no standard/extended keyword) and an
// idempotent_commands_avoid rule for secondary IP addresses, which must
// stack rather than replace one another.
func newCiscoNXOS() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:       CiscoNXOS,
		Indentation:    1,
		NegationPrefix: "no ",

		PerLineSub: []hconfig.PerLineSubRule{
			{Search: `^Building configuration.*`, Replace: ""},
			{Search: `^Current configuration.*`, Replace: ""},
			{Search: `^ntp clock-period .*`, Replace: ""},
			{Search: `^snmp-server location {2}`, Replace: "snmp-server location "},
			{Search: `^version.*`, Replace: ""},
			{Search: `^boot (system|kickstart) .*`, Replace: ""},
			{Search: `!.*`, Replace: ""},
		},
		IdempotentCommandsAvoid: []hconfig.IdempotentCommandsAvoidRule{
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {ReSearch: `ip address.*secondary`}}},
		},
		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{StartsWith: "power redundancy-mode"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "hostname "}}},
			{Lineage: hconfig.Lineage{{StartsWith: "port-channel load-balance"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "logging source-interface"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "router ospf"}, {StartsWith: "vrf"}, {StartsWith: "maximum-paths"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "router ospf"}, {StartsWith: "maximum-paths"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "router bgp"}, {StartsWith: "address-family"}, {StartsWith: "maximum-paths"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "ip address"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "duplex"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "speed"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "switchport mode"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "switchport access vlan"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "switchport trunk native vlan"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "switchport trunk allowed vlan"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface"}, {StartsWith: "ip ospf cost"}}},
		},
		UnusedObjectRules: []hconfig.UnusedObjectRule{
			nxosACLUnusedObjectRule(),
		},
		NegationDefaultWhen: []hconfig.NegationDefaultWhenRule{
			{Lineage: hconfig.Lineage{
				{StartsWith: "interface"},
				{StartsWith: "ip ospf bfd", ReSearch: `standby \d+ authentication md5 key-string`},
			}},
			{Lineage: hconfig.Lineage{
				{StartsWith: "router bgp"}, {StartsWith: "neighbor"}, {StartsWith: "address-family"}, {Equals: "send-community"},
			}},
			{Lineage: hconfig.Lineage{
				{StartsWith: "interface"}, {Contains: "ip ospf passive-interface"},
			}},
		},
	})
}

// nxosACLUnusedObjectRule finds "ip access-list NAME" definitions with
// no "ip access-group NAME" reference under any interface.
func nxosACLUnusedObjectRule() hconfig.UnusedObjectRule {
	return hconfig.UnusedObjectRule{
		ObjectType:       "ip access-list",
		DefinitionMatch:  []hconfig.MatchRule{{StartsWith: "ip access-list "}},
		NameExtractRegex: `^ip access-list (\S+)$`,
		RemovalTemplate:  "no ip access-list %s",
		ReferencePatterns: []hconfig.ReferencePattern{
			{
				Lineage:      hconfig.Lineage{{StartsWith: "interface "}, {StartsWith: "ip access-group "}},
				ExtractRegex: `ip access-group (\S+)`,
				CaptureGroup: 1,
			},
		},
	}
}
