package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newHPProcurve builds the HP/Aruba ProCurve driver, grounded on
// original_source/hier_config/platforms/hp_procurve/driver.py: ordering
// rules that put a VLAN's "untagged" lines before its "tagged" lines,
// idempotent vlan and interface "name" commands, and a NegateWith
// collapse for "console" access rules that only ever have one active
// value.
func newHPProcurve() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:       HPProcurve,
		Indentation:    3,
		NegationPrefix: "no ",

		NegateWith: []hconfig.NegateWithRule{
			{
				Lineage: hconfig.Lineage{{StartsWith: "console"}},
				Use:     "no console",
			},
		},
		Ordering: []hconfig.OrderingRule{
			{Lineage: hconfig.Lineage{{StartsWith: "vlan "}, {StartsWith: "untagged "}}, Weight: 100},
			{Lineage: hconfig.Lineage{{StartsWith: "vlan "}, {StartsWith: "tagged "}}, Weight: 110},
		},
		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{StartsWith: "vlan "}, {StartsWith: "name "}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interface "}, {StartsWith: "name "}}},
		},
	})
}
