package hconfig

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// UnusedObject is one definition found by AnalyzeUnusedObjects that no
// reference pattern touched.
type UnusedObject struct {
	ObjectType  string
	Name        string
	Node        *Node
	RemovalText string
	OrderWeight int
}

// AnalyzeUnusedObjects walks root once per driver.UnusedObjectRules
// entry, collecting every object the rule's DefinitionMatch lineage
// defines and every name its ReferencePatterns extract elsewhere in the
// tree, then returns the definitions no reference touched, rendered as
// removal commands (§3 of SPEC_FULL.md's unused-object supplement,
// grounded in original_source/hier_config/remediation.py's
// UnusedObjectRemediator). The result is sorted by RemovalOrderWeight,
// then by object name.
func AnalyzeUnusedObjects(driver *Driver, root *Node) []UnusedObject {
	var out []UnusedObject
	for _, rule := range driver.UnusedObjectRules {
		out = append(out, analyzeOneRule(driver, root, rule)...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OrderWeight != out[j].OrderWeight {
			return out[i].OrderWeight < out[j].OrderWeight
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func analyzeOneRule(driver *Driver, root *Node, rule UnusedObjectRule) []UnusedObject {
	defs := collectDefinitions(driver, root, rule)
	referenced := collectReferences(driver, root, rule)

	var out []UnusedObject
	for name, node := range defs {
		key := name
		if !rule.CaseSensitive {
			key = normalizeCase(name)
		}
		if referenced[key] {
			continue
		}
		out = append(out, UnusedObject{
			ObjectType:  rule.ObjectType,
			Name:        name,
			Node:        node,
			RemovalText: fmt.Sprintf(rule.RemovalTemplate, name),
			OrderWeight: rule.RemovalOrderWeight,
		})
	}
	return out
}

// collectDefinitions matches every node against rule.DefinitionMatch
// (any lineage in the slice is sufficient) and extracts the object's
// name as the first capture group of NameExtractRegex, falling back to
// the node's whole text when there is no regex or no match.
func collectDefinitions(driver *Driver, root *Node, rule UnusedObjectRule) map[string]*Node {
	defs := make(map[string]*Node)
	for _, n := range root.AllChildren() {
		if !lineageMatchesAny(driver, defMatchLineages(rule), n) {
			continue
		}
		defs[extractObjectName(rule, n.Text)] = n
	}
	return defs
}

func extractObjectName(rule UnusedObjectRule, text string) string {
	if rule.nameExtractRe == nil {
		return text
	}
	m := rule.nameExtractRe.FindStringSubmatch(text)
	if len(m) < 2 {
		return text
	}
	return m[1]
}

func defMatchLineages(rule UnusedObjectRule) []Lineage {
	out := make([]Lineage, len(rule.DefinitionMatch))
	for i, m := range rule.DefinitionMatch {
		out[i] = Lineage{m}
	}
	return out
}

// collectReferences walks every ReferencePattern, matching nodes by
// lineage and pulling the referenced name out of the matched text with
// ExtractRegex's CaptureGroup, skipping any text matched by
// IgnorePatterns (e.g. a rule referencing its own definition line).
func collectReferences(driver *Driver, root *Node, rule UnusedObjectRule) map[string]bool {
	referenced := make(map[string]bool)
	for _, rp := range rule.ReferencePatterns {
		if rp.extractRe == nil {
			continue
		}
		for _, n := range root.AllChildren() {
			if !IsLineageMatch(n, rp.Lineage, driver.StrictLineageMatch) {
				continue
			}
			if matchesAnyRegex(rp.ignoreRes, n.Text) {
				continue
			}
			m := rp.extractRe.FindStringSubmatch(n.Text)
			if m == nil || rp.CaptureGroup >= len(m) {
				continue
			}
			name := m[rp.CaptureGroup]
			if !rule.CaseSensitive {
				name = normalizeCase(name)
			}
			referenced[name] = true
		}
	}
	return referenced
}

func matchesAnyRegex(res []*regexp.Regexp, text string) bool {
	for _, re := range res {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

func normalizeCase(s string) string {
	return strings.ToLower(s)
}
