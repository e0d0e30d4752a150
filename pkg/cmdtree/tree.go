// Package cmdtree defines the canonical CLI command trees for hierconfig.
//
// This is the SINGLE SOURCE OF TRUTH for the completion tree used by
// pkg/cli's interactive shell: adding a command here makes it appear in
// both tab completion and "?" help. Command execution is separate:
// pkg/cli's dispatch functions run only the commands they handle
// explicitly.
package cmdtree

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/psaab/hierconfig/pkg/configstore"
)

// Node defines a completion tree node with description, children, and
// optional dynamic values sourced from the current store.
type Node struct {
	Desc      string
	Children  map[string]*Node
	DynamicFn func(store *configstore.Store) []string
}

// Candidate holds a command name and its description for display.
type Candidate struct {
	Name string
	Desc string
}

// OperationalTree defines tab completion outside configuration mode:
// read-only operations over the active configuration and its history.
var OperationalTree = map[string]*Node{
	"show": {Desc: "Show information", Children: map[string]*Node{
		"configuration": {Desc: "Show the active configuration"},
		"compare":       {Desc: "Compare candidate against active configuration"},
		"unused":        {Desc: "List objects declared but never referenced"},
		"hostname":      {Desc: "Show the device hostname"},
		"interfaces":    {Desc: "Show configured interfaces"},
		"vlans":         {Desc: "Show configured VLANs"},
		"history":       {Desc: "Show commit history"},
	}},
	"configure": {Desc: "Enter configuration mode", Children: map[string]*Node{
		"exclusive": {Desc: "Enter configuration mode (no lock is taken)"},
	}},
	"report":     {Desc: "Summarize the active configuration"},
	"ping":       {Desc: "Ping remote host"},
	"traceroute": {Desc: "Trace route to remote host"},
	"quit":       {Desc: "Exit CLI"},
	"exit":       {Desc: "Exit CLI"},
}

// ConfigTopLevel defines tab completion for configuration mode top-level
// commands: editing the candidate and moving it toward the active config.
var ConfigTopLevel = map[string]*Node{
	"set":    {Desc: "Add or modify a line in the candidate configuration"},
	"delete": {Desc: "Remove a line from the candidate configuration"},
	"tag": {Desc: "Apply a tag to matching active-configuration lines", Children: map[string]*Node{
		"lineage": {Desc: "Lineage pattern to match"},
	}},
	"show": {Desc: "Show candidate configuration", Children: map[string]*Node{
		"compare": {Desc: "Show a unified diff against the active configuration"},
	}},
	"commit": {Desc: "Commit the candidate configuration", Children: map[string]*Node{
		"check": {Desc: "Validate the candidate without committing"},
	}},
	"rollback": {Desc: "Revert the candidate to a previous configuration", DynamicFn: func(store *configstore.Store) []string {
		if store == nil {
			return nil
		}
		names := make([]string, 0)
		for i := range store.History().List() {
			names = append(names, fmt.Sprintf("%d", i+1))
		}
		return names
	}},
	"exit": {Desc: "Exit configuration mode"},
	"quit": {Desc: "Exit configuration mode"},
	"top":  {Desc: "No-op: hierconfig has no nested edit levels"},
}

// --- Helper functions ---

// KeysFromTree returns a sorted list of keys from a Node map.
func KeysFromTree(tree map[string]*Node) []string {
	keys := make([]string, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// HelpCandidates returns Candidates from a tree's children for help display.
func HelpCandidates(tree map[string]*Node) []Candidate {
	candidates := make([]Candidate, 0, len(tree))
	for name, node := range tree {
		candidates = append(candidates, Candidate{Name: name, Desc: node.Desc})
	}
	return candidates
}

// CompleteFromTree walks the tree to find completion candidates for the given words and partial.
func CompleteFromTree(tree map[string]*Node, words []string, partial string, store *configstore.Store) []string {
	current := tree
	var currentNode *Node
	dynamicConsumed := false
	for _, w := range words {
		dynamicConsumed = false
		node, ok := current[w]
		if !ok {
			// Word not in static children — if parent has DynamicFn,
			// treat as a dynamic value and stay at same children level.
			if currentNode != nil && currentNode.DynamicFn != nil {
				dynamicConsumed = true
				continue
			}
			return nil
		}
		currentNode = node
		if node.Children == nil {
			if node.DynamicFn != nil && store != nil {
				return FilterPrefix(node.DynamicFn(store), partial)
			}
			return nil
		}
		current = node.Children
	}
	candidates := KeysOf(current)
	if !dynamicConsumed && currentNode != nil && currentNode.DynamicFn != nil && store != nil {
		candidates = append(candidates, currentNode.DynamicFn(store)...)
	}
	return FilterPrefix(candidates, partial)
}

// CompleteFromTreeWithDesc walks the tree returning name+description pairs.
func CompleteFromTreeWithDesc(tree map[string]*Node, words []string, partial string, store *configstore.Store) []Candidate {
	current := tree
	var currentNode *Node
	dynamicConsumed := false
	for _, w := range words {
		dynamicConsumed = false
		node, ok := current[w]
		if !ok {
			// Word not in static children — if parent has DynamicFn,
			// treat as a dynamic value and stay at same children level.
			if currentNode != nil && currentNode.DynamicFn != nil {
				dynamicConsumed = true
				continue
			}
			return nil
		}
		currentNode = node
		if node.Children == nil {
			if node.DynamicFn != nil && store != nil {
				var candidates []Candidate
				for _, name := range node.DynamicFn(store) {
					if strings.HasPrefix(name, partial) {
						candidates = append(candidates, Candidate{Name: name, Desc: "(configured)"})
					}
				}
				return candidates
			}
			return nil
		}
		current = node.Children
	}

	var candidates []Candidate
	for name, node := range current {
		if strings.HasPrefix(name, partial) {
			candidates = append(candidates, Candidate{Name: name, Desc: node.Desc})
		}
	}
	if !dynamicConsumed && currentNode != nil && currentNode.DynamicFn != nil && store != nil {
		for _, name := range currentNode.DynamicFn(store) {
			if strings.HasPrefix(name, partial) {
				candidates = append(candidates, Candidate{Name: name, Desc: "(configured)"})
			}
		}
	}
	return candidates
}

// LookupDesc finds the description for a candidate name given the command path words.
// Works for both operational and config mode.
func LookupDesc(words []string, name string, configMode bool) string {
	var tree map[string]*Node
	if configMode {
		if len(words) == 0 {
			if node, ok := ConfigTopLevel[name]; ok {
				return node.Desc
			}
			return ""
		}
		node, ok := ConfigTopLevel[words[0]]
		if !ok {
			return ""
		}
		for _, w := range words[1:] {
			if node.Children == nil {
				return ""
			}
			node, ok = node.Children[w]
			if !ok {
				return ""
			}
		}
		if node.Children != nil {
			if child, ok := node.Children[name]; ok {
				return child.Desc
			}
		}
		return ""
	}
	tree = OperationalTree

	current := tree
	var currentNode *Node
	for _, w := range words {
		node, ok := current[w]
		if !ok {
			if currentNode != nil && currentNode.DynamicFn != nil {
				continue
			}
			return ""
		}
		currentNode = node
		if node.Children == nil {
			return ""
		}
		current = node.Children
	}
	if node, ok := current[name]; ok {
		return node.Desc
	}
	return ""
}

// WriteHelp prints aligned completion candidates to w.
// The entire output is built as a single string and written in one call
// so that readline's wrapWriter triggers only one Refresh cycle.
func WriteHelp(w io.Writer, candidates []Candidate) {
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Name < candidates[j].Name })
	maxWidth := 20
	for _, c := range candidates {
		if len(c.Name)+2 > maxWidth {
			maxWidth = len(c.Name) + 2
		}
	}
	var sb strings.Builder
	sb.WriteString("Possible completions:\n")
	for _, c := range candidates {
		if c.Desc != "" {
			fmt.Fprintf(&sb, "  %-*s %s\n", maxWidth, c.Name, c.Desc)
		} else {
			fmt.Fprintf(&sb, "  %s\n", c.Name)
		}
	}
	io.WriteString(w, sb.String())
}

// PrintTreeHelp prints self-generating help from a tree path.
func PrintTreeHelp(header string, tree map[string]*Node, path ...string) {
	fmt.Println(header)
	current := tree
	for _, p := range path {
		node, ok := current[p]
		if !ok {
			return
		}
		if node.Children == nil {
			return
		}
		current = node.Children
	}
	WriteHelp(os.Stdout, HelpCandidates(current))
}

// CommonPrefix returns the longest shared prefix among the given strings.
func CommonPrefix(items []string) string {
	if len(items) == 0 {
		return ""
	}
	prefix := items[0]
	for _, s := range items[1:] {
		for !strings.HasPrefix(s, prefix) {
			prefix = prefix[:len(prefix)-1]
			if prefix == "" {
				return ""
			}
		}
	}
	return prefix
}

// KeysOf returns an unsorted list of keys from a Node map.
func KeysOf(m map[string]*Node) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// FilterPrefix returns only items that start with the given prefix.
func FilterPrefix(items []string, prefix string) []string {
	if prefix == "" {
		return items
	}
	var result []string
	for _, item := range items {
		if strings.HasPrefix(item, prefix) {
			result = append(result, item)
		}
	}
	return result
}
