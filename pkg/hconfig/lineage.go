package hconfig

// IsLineageMatch reports whether node matches rules per §4.2. In the
// default floating mode the rule sequence only needs to appear as a
// (not-necessarily-contiguous) subsequence of node's root-to-self
// ancestor chain, anchored so the final rule matches node itself. In
// strict mode every rule must match the correspondingly-positioned
// ancestor: len(rules) must equal the chain length.
//
// See DESIGN.md for why floating is the default even though the
// reference Python implementation only ever performs the strict,
// equal-length comparison.
func IsLineageMatch(node *Node, rules Lineage, strict bool) bool {
	if len(rules) == 0 {
		return false
	}
	chain := node.Lineage()
	if strict {
		if len(rules) != len(chain) {
			return false
		}
		for i, rule := range rules {
			if !rule.Match(chain[i].Text) {
				return false
			}
		}
		return true
	}
	return floatingMatch(chain, rules)
}

// floatingMatch anchors the final rule to the final ancestor (node
// itself) and greedily matches the remaining rules, right to left,
// against any earlier ancestor — rules never match across a gap that
// skips an ancestor already claimed by a later rule, but need not be
// adjacent to one another.
func floatingMatch(chain []*Node, rules Lineage) bool {
	if len(rules) > len(chain) {
		return false
	}
	// Final rule anchors to the final ancestor (the node itself).
	last := len(chain) - 1
	if !rules[len(rules)-1].Match(chain[last].Text) {
		return false
	}
	// Walk the remaining rules from the second-to-last backwards,
	// consuming ancestors from last-1 down to 0, skipping non-matches.
	ruleIdx := len(rules) - 2
	chainIdx := last - 1
	for ruleIdx >= 0 {
		if chainIdx < 0 {
			return false
		}
		if rules[ruleIdx].Match(chain[chainIdx].Text) {
			ruleIdx--
			chainIdx--
			continue
		}
		chainIdx--
	}
	return true
}
