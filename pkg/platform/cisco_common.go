package platform

import (
	"fmt"
	"strings"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

// removeIPv6ACLSequenceNumbers strips the leading "sequence N" a device
// echoes back inside "ipv6 access-list" entries, matching
// _rm_ipv6_acl_sequence_numbers in the reference cisco_ios driver.
func removeIPv6ACLSequenceNumbers(root *hconfig.Node) {
	for _, acl := range root.GetChildren(hconfig.MatchRule{StartsWith: "ipv6 access-list "}) {
		for _, entry := range acl.Children {
			if strings.HasPrefix(entry.Text, "sequence") {
				fields := strings.Fields(entry.Text)
				if len(fields) > 2 {
					entry.Text = strings.Join(fields[2:], " ")
				}
			}
		}
	}
}

// removeIPv4ACLRemarks drops "remark" lines from "ip access-list"
// sections before sequence numbers are recomputed, matching
// _remove_ipv4_acl_remarks.
func removeIPv4ACLRemarks(root *hconfig.Node) {
	for _, acl := range root.GetChildren(hconfig.MatchRule{StartsWith: "ip access-list "}) {
		for _, entry := range append([]*hconfig.Node(nil), acl.Children...) {
			if strings.HasPrefix(entry.Text, "remark") {
				entry.Delete()
			}
		}
	}
}

// addIPv4ACLSequenceNumbers prefixes each permit/deny line in an "ip
// access-list" section with a 10-stepped sequence number, matching
// _add_acl_sequence_numbers.
func addIPv4ACLSequenceNumbers(root *hconfig.Node) {
	for _, acl := range root.Children {
		if !strings.HasPrefix(acl.Text, "ip access-list") {
			continue
		}
		seq := 10
		for _, entry := range acl.Children {
			if strings.HasPrefix(entry.Text, "permit") || strings.HasPrefix(entry.Text, "deny") {
				entry.Text = fmt.Sprintf("%d %s", seq, entry.Text)
				seq += 10
			}
		}
	}
}

// ciscoVLANUnusedObjectRule finds "vlan N" definitions with no
// "switchport ... vlan N" reference anywhere in the tree, grounded on
// original_source/hier_config/remediation.py's UnusedObjectRemediator.
func ciscoVLANUnusedObjectRule() hconfig.UnusedObjectRule {
	return hconfig.UnusedObjectRule{
		ObjectType:        "vlan",
		DefinitionMatch:   []hconfig.MatchRule{{ReSearch: `^vlan \d+$`}},
		NameExtractRegex:  `^vlan (\d+)$`,
		RemovalTemplate:   "no vlan %s",
		RemovalOrderWeight: 500,
		ReferencePatterns: []hconfig.ReferencePattern{
			{
				Lineage:      hconfig.Lineage{{StartsWith: "interface "}, {ReSearch: `vlan \d+`}},
				ExtractRegex: `vlan (\d+)`,
				CaptureGroup: 1,
			},
		},
	}
}
