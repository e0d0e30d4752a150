// Package configview provides read-only structured views over an
// hconfig configuration tree: extracting a hostname, enumerating
// interfaces, and enumerating VLANs, without ever mutating the tree.
package configview

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

// HostnameView extracts the device hostname from a "hostname X" line
// anywhere at the top level of the tree.
func HostnameView(root *hconfig.Node) (string, bool) {
	child := root.GetChild(hconfig.MatchRule{StartsWith: "hostname "})
	if child == nil {
		return "", false
	}
	fields := strings.Fields(child.Text)
	if len(fields) < 2 {
		return "", false
	}
	return fields[1], true
}

// Interface is a structured summary of one "interface X" section.
type Interface struct {
	Name        string
	Description string
	Enabled     bool
	NativeVLAN  int
	TaggedVLANs []int
	Node        *hconfig.Node
}

var (
	interfaceRule  = hconfig.MatchRule{StartsWith: "interface "}
	descriptionRe  = regexp.MustCompile(`^\s*description\s+(.+)$`)
	accessVLANRe   = regexp.MustCompile(`^\s*switchport access vlan\s+(\d+)$`)
	trunkNativeRe  = regexp.MustCompile(`^\s*switchport trunk native vlan\s+(\d+)$`)
	trunkAllowedRe = regexp.MustCompile(`^\s*switchport trunk allowed vlan\s+(.+)$`)
)

// InterfaceViews enumerates every "interface X" section under root as
// structured Interface values, grounded on the way interface_views walks
// self.config.get_children(startswith="interface ") and pulls named
// child lines back out with regexes.
func InterfaceViews(root *hconfig.Node) []Interface {
	var out []Interface
	for _, node := range root.GetChildren(interfaceRule) {
		out = append(out, interfaceFromNode(node))
	}
	return out
}

// InterfaceViewByName returns the named interface's view, if present.
func InterfaceViewByName(root *hconfig.Node, name string) (Interface, bool) {
	for _, iv := range InterfaceViews(root) {
		if iv.Name == name {
			return iv, true
		}
	}
	return Interface{}, false
}

func interfaceFromNode(node *hconfig.Node) Interface {
	iv := Interface{
		Name:    strings.TrimSpace(strings.TrimPrefix(node.Text, "interface ")),
		Enabled: true,
		Node:    node,
	}
	for _, child := range node.AllChildrenSorted() {
		text := child.Text
		if child.Negated && strings.Contains(text, "shutdown") {
			continue
		}
		switch {
		case text == "shutdown":
			iv.Enabled = false
		case descriptionRe.MatchString(text):
			iv.Description = descriptionRe.FindStringSubmatch(text)[1]
		case accessVLANRe.MatchString(text):
			iv.NativeVLAN = atoiOrZero(accessVLANRe.FindStringSubmatch(text)[1])
		case trunkNativeRe.MatchString(text):
			iv.NativeVLAN = atoiOrZero(trunkNativeRe.FindStringSubmatch(text)[1])
		case trunkAllowedRe.MatchString(text):
			iv.TaggedVLANs = append(iv.TaggedVLANs, expandVLANRange(trunkAllowedRe.FindStringSubmatch(text)[1])...)
		}
	}
	return iv
}

// VLAN is a structured summary of one "vlan N" declaration.
type VLAN struct {
	ID   int
	Name string
	Node *hconfig.Node
}

var (
	vlanRule = hconfig.MatchRule{ReSearch: `^vlan [0-9,-]+$`}
	nameRule = hconfig.MatchRule{StartsWith: "name "}
)

// VLANViews enumerates every explicitly declared VLAN under root,
// expanding comma/range VLAN lists (e.g. "vlan 10,20-22") into one VLAN
// per member ID, grounded on the reference view's "vlans" property.
func VLANViews(root *hconfig.Node) []VLAN {
	var out []VLAN
	for _, node := range root.GetChildren(vlanRule) {
		fields := strings.Fields(node.Text)
		if len(fields) < 2 {
			continue
		}
		name := ""
		if nameChild := node.GetChild(nameRule); nameChild != nil {
			nameFields := strings.SplitN(nameChild.Text, " ", 2)
			if len(nameFields) == 2 {
				name = strings.Trim(nameFields[1], `"`)
			}
		}
		for _, id := range expandVLANRange(fields[1]) {
			out = append(out, VLAN{ID: id, Name: name, Node: node})
		}
	}
	return out
}

// expandVLANRange expands a comma-separated list of VLAN IDs and
// hyphenated ranges ("10,20-22") into individual IDs, skipping anything
// that fails to parse rather than erroring: a view is best-effort.
func expandVLANRange(spec string) []int {
	var ids []int
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start := atoiOrZero(lo)
			end := atoiOrZero(hi)
			if start == 0 || end == 0 || end < start {
				continue
			}
			for id := start; id <= end; id++ {
				ids = append(ids, id)
			}
			continue
		}
		if id := atoiOrZero(part); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

func atoiOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
