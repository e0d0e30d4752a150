package platform

import (
	"strings"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

// newFortinetFortiOS builds the FortiOS driver, grounded on
// original_source/hier_config/platforms/fortinet_fortios/driver.py:
// "config ... end" and "config ... edit ... next" sectional exits,
// "unset "/"set " negation swapping instead of a fixed prefix, a
// parent_allows_duplicate_child rule for nodes whose text starts with
// "end" (literal "next"/"end" lines are themselves dropped by PerLineSub
// at parse time), and an idempotent_for override that only
// considers two "set" lines the same command when the object name
// (the second whitespace-separated field) also matches.
func newFortinetFortiOS() (*hconfig.Driver, error) {
	return hconfig.NewDriver(hconfig.Driver{
		Platform:          FortinetFortiOS,
		Indentation:       4,
		NegationPrefix:    "unset ",
		DeclarationPrefix: "set ",

		SectionalExiting: []hconfig.SectionalExitingRule{
			{Lineage: hconfig.Lineage{{StartsWith: "config "}, {StartsWith: "edit "}}, ExitText: "next"},
			{Lineage: hconfig.Lineage{{StartsWith: "config "}}, ExitText: "end"},
		},
		// "next"/"end" are sectional-exit artifacts Render regenerates;
		// stripped here so a parse-then-render round trip doesn't produce
		// them as ordinary sibling commands as well as synthetic exits.
		PerLineSub: []hconfig.PerLineSubRule{
			{Search: `^\s*next\s*$`, Replace: ""},
			{Search: `^\s*end\s*$`, Replace: ""},
		},
		ParentAllowsDuplicateChild: []hconfig.ParentAllowsDuplicateChildRule{
			{Lineage: hconfig.Lineage{{StartsWith: "end"}}},
		},
		IdempotentCommands: []hconfig.IdempotentCommandsRule{
			{Lineage: hconfig.Lineage{{StartsWith: "config "}, {StartsWith: "edit "}, {StartsWith: "set "}}},
		},
		SwapNegationHook:  fortiSwapNegation,
		IdempotentForHook: fortiIdempotentFor,
	})
}

// fortiSwapNegation implements the reference driver's swap_negation:
// "unset X ..." toggles back to "set X ..." verbatim, while "set X ..."
// negates to "unset X" (the object name only, dropping the value).
func fortiSwapNegation(text string) (string, bool) {
	switch {
	case strings.HasPrefix(text, "unset "):
		return "set " + strings.TrimPrefix(text, "unset "), true
	case strings.HasPrefix(text, "set "):
		fields := strings.Fields(strings.TrimPrefix(text, "set "))
		if len(fields) == 0 {
			return "", false
		}
		return "unset " + fields[0], true
	default:
		return "", false
	}
}

// fortiIdempotentFor requires the object name (the token right after
// "set ") to match on both sides, not just the lineage, before two "set"
// lines are treated as the same command under a different argument.
func fortiIdempotentFor(node *hconfig.Node, otherChildren []*hconfig.Node) *hconfig.Node {
	nodeFields := strings.Fields(node.Text)
	if len(nodeFields) < 2 || nodeFields[0] != "set" {
		return nil
	}
	for _, other := range otherChildren {
		otherFields := strings.Fields(other.Text)
		if len(otherFields) >= 2 && otherFields[0] == "set" && otherFields[1] == nodeFields[1] {
			return other
		}
	}
	return nil
}
