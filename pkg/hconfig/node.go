// Package hconfig implements the hierarchical configuration engine: the
// text parser, the Node tree and its mutation algebra, the platform
// Driver rule bundle, and the remediation/diff/tag algorithms that sit on
// top of them. It performs no device I/O; callers supply text and
// consume text or trees.
package hconfig

import "strings"

const defaultOrderWeight = 500

// Instance remembers which device contributed a node when trees from
// several devices are merged by the multi-device reporter. It is never
// populated by the core engine itself.
type Instance struct {
	ID       int
	Tags     map[string]struct{}
	Comments map[string]struct{}
}

// Node is a single line of configuration in the hierarchy. The zero Node
// returned by NewRoot acts as the tree's root: it has no Parent and no
// Text of its own.
type Node struct {
	Text          string
	Parent        *Node
	Children      []*Node
	Tags          map[string]struct{}
	Comments      map[string]struct{}
	OrderWeight   int
	IsNewInConfig bool
	Instance      *Instance

	// Negated marks a node produced or parsed as a Junos "delete"
	// statement rather than a "set" one. Cisco-style drivers never set
	// it; the textual "no " prefix carries negation for them instead.
	Negated bool

	childIndex map[string]*Node // first child with a given text, O(1) lookup
	driver     *Driver          // set only on the root node
}

// NewRoot creates an empty tree governed by driver.
func NewRoot(driver *Driver) *Node {
	return &Node{
		OrderWeight: defaultOrderWeight,
		childIndex:  make(map[string]*Node),
		driver:      driver,
	}
}

// Root walks up to the tree's root node.
func (n *Node) Root() *Node {
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Driver returns the tree's driver, fetched from the root.
func (n *Node) Driver() *Driver {
	return n.Root().driver
}

// Depth returns the number of parent links from n up to the root: the
// root itself has depth 0 and a top-level command has depth 1.
func (n *Node) Depth() int {
	d := 0
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		d++
	}
	return d
}

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Lineage returns the ordered root-to-self ancestor chain, inclusive of n
// and exclusive of the tree's root sentinel.
func (n *Node) Lineage() []*Node {
	var chain []*Node
	for cur := n; cur.Parent != nil; cur = cur.Parent {
		chain = append(chain, cur)
	}
	// reverse into root-to-self order
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

func (n *Node) allowsDuplicateChildren() bool {
	driver := n.Driver()
	if driver == nil {
		return false
	}
	for _, rule := range driver.ParentAllowsDuplicateChild {
		if IsLineageMatch(n, rule.Lineage, driver.StrictLineageMatch) {
			return true
		}
	}
	return false
}

// ChildByText returns the first child whose Text equals t, or nil.
func (n *Node) ChildByText(t string) *Node {
	if n.childIndex == nil {
		return nil
	}
	return n.childIndex[t]
}

// AddChild appends a new child with the given text. It does not consult
// the driver's ParentAllowsDuplicateChild rules and never returns
// DuplicateChildError: a same-text sibling is simply added next to the
// existing one. Callers that dedupe use GetOrAddChild; Merge performs
// its own duplicate check (see DESIGN.md).
func (n *Node) AddChild(text string) *Node {
	if n.childIndex == nil {
		n.childIndex = make(map[string]*Node)
	}
	child := &Node{
		Text:        text,
		Parent:      n,
		OrderWeight: defaultOrderWeight,
		childIndex:  make(map[string]*Node),
	}
	n.Children = append(n.Children, child)
	if _, exists := n.childIndex[text]; !exists {
		n.childIndex[text] = child
	}
	return child
}

// GetOrAddChild returns the existing child with that text, or creates it.
func (n *Node) GetOrAddChild(text string) *Node {
	if child := n.ChildByText(text); child != nil {
		return child
	}
	return n.AddChild(text)
}

// DeleteChild removes child from n.Children. It is a no-op if child is
// not actually a child of n.
func (n *Node) DeleteChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			break
		}
	}
	if n.childIndex[child.Text] == child {
		delete(n.childIndex, child.Text)
		// Restore the index to the next remaining child with that text,
		// if any, so ChildByText keeps working under duplicates.
		for _, c := range n.Children {
			if c.Text == child.Text {
				n.childIndex[child.Text] = c
				break
			}
		}
	}
}

// Delete removes n from its parent.
func (n *Node) Delete() {
	if n.Parent != nil {
		n.Parent.DeleteChild(n)
	}
}

// AddTag adds a tag to n's tag set.
func (n *Node) AddTag(tag string) {
	if n.Tags == nil {
		n.Tags = make(map[string]struct{})
	}
	n.Tags[tag] = struct{}{}
}

// HasTag reports whether n carries tag.
func (n *Node) HasTag(tag string) bool {
	_, ok := n.Tags[tag]
	return ok
}

// AddComment adds a free-form annotation to n.
func (n *Node) AddComment(c string) {
	if n.Comments == nil {
		n.Comments = make(map[string]struct{})
	}
	n.Comments[c] = struct{}{}
}

// ShallowCopyInto creates a new node with n's text, tags, comments, and
// order weight under parent, with empty children (§5).
func (n *Node) ShallowCopyInto(parent *Node) *Node {
	child := parent.AddChild(n.Text)
	child.OrderWeight = n.OrderWeight
	child.Negated = n.Negated
	for c := range n.Comments {
		child.AddComment(c)
	}
	for t := range n.Tags {
		child.AddTag(t)
	}
	return child
}

// DeepCopyInto recursively clones n and its children under parent. Every
// cloned node is marked IsNewInConfig (§5).
func (n *Node) DeepCopyInto(parent *Node) *Node {
	child := n.ShallowCopyInto(parent)
	child.IsNewInConfig = true
	for _, c := range n.Children {
		c.DeepCopyInto(child)
	}
	return child
}

// copyStateInto recursively clones n and its children under parent
// without marking them IsNewInConfig, used by Future to carry forward
// running state that the overlay didn't touch.
func (n *Node) copyStateInto(parent *Node) *Node {
	child := n.ShallowCopyInto(parent)
	child.IsNewInConfig = n.IsNewInConfig
	for _, c := range n.Children {
		c.copyStateInto(child)
	}
	return child
}

// AllChildren yields every descendant of n in depth-first pre-order,
// insertion order within each sibling group.
func (n *Node) AllChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c)
		out = append(out, c.AllChildren()...)
	}
	return out
}

// AllChildrenSorted yields every descendant of n in depth-first
// pre-order, siblings ordered by (OrderWeight, insertion index) per §4.3
// step 5 and §4.6.
func (n *Node) AllChildrenSorted() []*Node {
	var out []*Node
	for _, c := range n.sortedChildren() {
		out = append(out, c)
		out = append(out, c.AllChildrenSorted()...)
	}
	return out
}

func (n *Node) sortedChildren() []*Node {
	sorted := make([]*Node, len(n.Children))
	copy(sorted, n.Children)
	// stable insertion sort keyed on OrderWeight keeps ties in insertion
	// order, matching Python's stable sorted().
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].OrderWeight < sorted[j-1].OrderWeight; j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

// GetChild returns the first child matching the given MatchRule fields.
func (n *Node) GetChild(rule MatchRule) *Node {
	for _, c := range n.Children {
		if rule.Match(c.Text) {
			return c
		}
	}
	return nil
}

// GetChildren returns every child matching rule, in insertion order.
func (n *Node) GetChildren(rule MatchRule) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if rule.Match(c.Text) {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenIterByMatchRule is an alias for GetChildren kept to mirror the
// spec's §4.7 naming for config-view consumers.
func (n *Node) ChildrenIterByMatchRule(rule MatchRule) []*Node {
	return n.GetChildren(rule)
}

// GetChildDeep recursively walks rules, descending through matching
// children at each step, returning the first node matched by the final
// rule.
func (n *Node) GetChildDeep(rules Lineage) *Node {
	all := n.GetChildrenDeep(rules)
	if len(all) == 0 {
		return nil
	}
	return all[0]
}

// GetChildrenDeep recursively walks rules, descending through matching
// children at each step, returning every node matched by the final rule.
func (n *Node) GetChildrenDeep(rules Lineage) []*Node {
	if len(rules) == 0 {
		return nil
	}
	rule := rules[0]
	rest := rules[1:]
	var out []*Node
	for _, c := range n.GetChildren(rule) {
		if len(rest) == 0 {
			out = append(out, c)
		} else {
			out = append(out, c.GetChildrenDeep(rest)...)
		}
	}
	return out
}

// CiscoStyleIndentPrefix returns indentation spaces per level below the
// tree's top-level commands: a direct child of the root renders flush
// left, its children get one indentation step, and so on. n.Depth()
// counts the root itself as depth 0, so a top-level command sits at
// depth 1 and the indent step count is n.Depth()-1.
func (n *Node) CiscoStyleIndentPrefix(indentation int) string {
	level := n.Depth() - 1
	if level <= 0 {
		return ""
	}
	return strings.Repeat(" ", indentation*level)
}
