package platform

import "github.com/psaab/hierconfig/pkg/hconfig"

// newJuniperJunos builds the Juniper Junos driver, grounded on
// original_source/hier_config/platforms/juniper_junos/driver.py: Junos
// has no NegationPrefix/DeclarationPrefix textual convention because
// negation is the flat parser's "delete" keyword (JunosStyle routes
// remediation through Node.Negated rather than string prefixing — see
// emitFullNegation in pkg/hconfig/remediation.go).
func newJuniperJunos() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:   JuniperJunos,
		JunosStyle: true,

		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{Equals: "system"}, {StartsWith: "host-name"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interfaces"}, {StartsWith: "unit"}, {StartsWith: "family inet address"}}},
			{Lineage: hconfig.Lineage{{StartsWith: "interfaces"}, {StartsWith: "description"}}},
		},
	})
}
