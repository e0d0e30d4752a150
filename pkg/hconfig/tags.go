package hconfig

// TagRule associates a lineage with a tag to stamp onto every matching
// node, letting callers later render or filter a subset of a tree by tag
// (§4.4, consumed by pkg/configview and pkg/report).
type TagRule struct {
	Lineage Lineage
	Tag     string
}

// ApplyTagRules stamps every node in root matching a rule's lineage with
// that rule's tag. Rules are evaluated in order and are additive: a node
// may collect several tags from several rules. Applying the same rules
// twice is idempotent because AddTag unions into a set.
func ApplyTagRules(driver *Driver, root *Node, rules []TagRule) {
	nodes := root.AllChildren()
	for _, rule := range rules {
		for _, n := range nodes {
			if IsLineageMatch(n, rule.Lineage, driver.StrictLineageMatch) {
				n.AddTag(rule.Tag)
			}
		}
	}
}

// TagFilter selects nodes for FilteredText per §4.4: a node is kept iff
// Include is empty or its tags intersect Include, and its tags are
// disjoint from Exclude. A parent with any kept descendant is itself
// kept for rendering purposes, even if it fails its own individual test.
type TagFilter struct {
	Include map[string]struct{}
	Exclude map[string]struct{}
}

// NewTagFilter builds a TagFilter from include/exclude tag slices.
func NewTagFilter(include, exclude []string) TagFilter {
	var f TagFilter
	if len(include) > 0 {
		f.Include = make(map[string]struct{}, len(include))
		for _, t := range include {
			f.Include[t] = struct{}{}
		}
	}
	if len(exclude) > 0 {
		f.Exclude = make(map[string]struct{}, len(exclude))
		for _, t := range exclude {
			f.Exclude[t] = struct{}{}
		}
	}
	return f
}

// IsZero reports whether the filter keeps everything (no include and no
// exclude constraint).
func (f TagFilter) IsZero() bool {
	return len(f.Include) == 0 && len(f.Exclude) == 0
}

func (f TagFilter) individuallyKept(n *Node) bool {
	if len(f.Exclude) > 0 {
		for t := range n.Tags {
			if _, bad := f.Exclude[t]; bad {
				return false
			}
		}
	}
	if len(f.Include) == 0 {
		return true
	}
	for t := range n.Tags {
		if _, ok := f.Include[t]; ok {
			return true
		}
	}
	return false
}

func (f TagFilter) subtreeKept(n *Node) bool {
	if f.individuallyKept(n) {
		return true
	}
	for _, c := range n.Children {
		if f.subtreeKept(c) {
			return true
		}
	}
	return false
}

// FilteredText renders root keeping only subtrees that pass filter
// (§4.4's read-only view contract). An empty filter renders everything.
func FilteredText(driver *Driver, root *Node, filter TagFilter) string {
	if filter.IsZero() {
		return Render(driver, root)
	}
	return RenderFiltered(driver, root, filter)
}
