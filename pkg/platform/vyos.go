package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newVyOS builds the VyOS driver, grounded on
// original_source/hier_config/platforms/vyos/driver.py. VyOS inherited
// its set/delete CLI from Junos/Vyatta, so it shares JunosStyle's flat
// parser and Node.Negated-based negation; VyOS's own top-level schema
// (interfaces, firewall, nat, protocols) needs no special rule table
// beyond idempotent interface addressing.
func newVyOS() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:   VyOS,
		JunosStyle: true,

		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{StartsWith: "interfaces"}, {StartsWith: "ethernet"}, {StartsWith: "address"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "system"}, {StartsWith: "host-name"}}},
		},
	})
}
