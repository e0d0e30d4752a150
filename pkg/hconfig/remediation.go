package hconfig

import "strings"

// Remediate computes the tree of edits that transitions running into
// generated, per §4.3: additions from generated, negations of running
// items absent from generated (subject to idempotent suppression and
// negate_with overrides), and recursive edits inside shared sections.
//
// Sectional-exit leaves are not re-materialized here; Render already
// appends them for any tree whose lineage matches a SectionalExiting
// rule (render.go), so doing it twice would duplicate exit lines when a
// remediation tree is itself rendered. See DESIGN.md.
func Remediate(driver *Driver, running, generated *Node) *Node {
	out := NewRoot(driver)
	remediateChildren(driver, running, generated, out)
	assignOrderWeights(driver, out)
	return out
}

// Rollback computes the inverse remediation: Remediate with running and
// generated swapped (§4.3 "Rollback").
func Rollback(driver *Driver, running, generated *Node) *Node {
	return Remediate(driver, generated, running)
}

// WorkflowRemediation infers the driver from either operand and computes
// Remediate(running, generated), matching spec.md §6's collaborator
// entry point `WorkflowRemediation(running, generated)`.
func WorkflowRemediation(running, generated *Node) (*Node, error) {
	driver := driverOf(running, generated)
	if driver == nil {
		return nil, &UnsupportedPlatformError{Platform: ""}
	}
	return Remediate(driver, running, generated), nil
}

func driverOf(a, b *Node) *Driver {
	if a != nil {
		if d := a.Driver(); d != nil {
			return d
		}
	}
	if b != nil {
		if d := b.Driver(); d != nil {
			return d
		}
	}
	return nil
}

// WorkflowRemediationResult bundles a running/generated pair with the
// inferred driver, exposing the method-style surface spec.md §2's
// external collaborators call: RemediationConfig, RollbackConfig,
// UnifiedDiff, ApplyRemediationTagRules.
type WorkflowRemediationResult struct {
	Driver    *Driver
	Running   *Node
	Generated *Node
}

// NewWorkflowRemediation constructs a WorkflowRemediationResult,
// inferring the driver from either operand.
func NewWorkflowRemediation(running, generated *Node) (*WorkflowRemediationResult, error) {
	driver := driverOf(running, generated)
	if driver == nil {
		return nil, &UnsupportedPlatformError{Platform: ""}
	}
	return &WorkflowRemediationResult{Driver: driver, Running: running, Generated: generated}, nil
}

// RemediationConfig is Remediate(running, generated).
func (w *WorkflowRemediationResult) RemediationConfig() *Node {
	return Remediate(w.Driver, w.Running, w.Generated)
}

// RollbackConfig is Remediate(generated, running).
func (w *WorkflowRemediationResult) RollbackConfig() *Node {
	return Rollback(w.Driver, w.Running, w.Generated)
}

// UnifiedDiff diffs the running and generated trees structurally (see
// the package-level UnifiedDiff).
func (w *WorkflowRemediationResult) UnifiedDiff() string {
	return UnifiedDiff(w.Driver, w.Running, w.Generated)
}

// ApplyRemediationTagRules computes the remediation and stamps rules
// onto it, returning the tagged tree.
func (w *WorkflowRemediationResult) ApplyRemediationTagRules(rules []TagRule) *Node {
	rem := w.RemediationConfig()
	ApplyTagRules(w.Driver, rem, rules)
	return rem
}

// remediateChildren implements one level of §4.3 steps 1-3 for the
// sibling sets under runningParent and generatedParent, appending
// results (additions, negations, recursive shallow-copies) to outParent.
//
// Children are paired by exact text match, consuming candidates in
// insertion order so that parents allowing duplicate children (repeated
// ACL entries sharing text) still get a stable pairwise correspondence
// rather than everything matching the first occurrence.
func remediateChildren(driver *Driver, runningParent, generatedParent, outParent *Node) {
	usedRunning := make(map[*Node]bool)
	pairedWith := make(map[*Node]*Node) // generated node -> matched running node

	for _, g := range generatedParent.Children {
		r := findUnusedByText(runningParent.Children, g.Text, usedRunning)
		if r == nil {
			continue
		}
		usedRunning[r] = true
		pairedWith[g] = r
	}

	// Step 2: negations — running children with no generated counterpart.
	// Emitted before the generated-order pass below so removals precede
	// the additions/edits that take their place.
	for _, r := range runningParent.Children {
		if usedRunning[r] {
			continue
		}
		emitNegation(driver, r, generatedParent, outParent)
	}

	// Steps 1 and 3, interleaved in generated's own order: an addition for
	// each generated child with no running counterpart, a recursive edit
	// for each matched pair.
	for _, g := range generatedParent.Children {
		if r, ok := pairedWith[g]; ok {
			recursePair(driver, r, g, outParent)
			continue
		}
		// A negation emitted above may already have produced this exact
		// text (e.g. negating "shutdown" yields "no shutdown", which is
		// also the generated line) — skip the redundant addition.
		if outParent.ChildByText(g.Text) != nil {
			continue
		}
		g.DeepCopyInto(outParent)
	}
}

func findUnusedByText(candidates []*Node, text string, used map[*Node]bool) *Node {
	for _, c := range candidates {
		if c.Text == text && !used[c] {
			return c
		}
	}
	return nil
}

// recursePair implements §4.3 step 3 for one matched (running, generated)
// pair: sectional overwrite (with or without negation), or a recursive
// diff whose non-empty result is hung under a shallow copy of g.
func recursePair(driver *Driver, r, g, outParent *Node) {
	if lineageMatchesAny(driver, sectionalOverwriteLineages(driver), g) {
		emitFullNegation(driver, r, outParent)
		g.DeepCopyInto(outParent)
		return
	}
	if lineageMatchesAny(driver, sectionalOverwriteNoNegateLineages(driver), g) {
		g.DeepCopyInto(outParent)
		return
	}

	scratch := newScratchNode()
	remediateChildren(driver, r, g, scratch)
	if len(scratch.Children) == 0 {
		return
	}
	shallow := g.ShallowCopyInto(outParent)
	adoptChildren(shallow, scratch.Children)
}

func newScratchNode() *Node {
	return &Node{OrderWeight: defaultOrderWeight, childIndex: make(map[string]*Node)}
}

// adoptChildren re-parents children (built under a throwaway scratch
// node) onto dst, preserving their insertion order.
func adoptChildren(dst *Node, children []*Node) {
	if dst.childIndex == nil {
		dst.childIndex = make(map[string]*Node)
	}
	for _, c := range children {
		c.Parent = dst
		dst.Children = append(dst.Children, c)
		if _, exists := dst.childIndex[c.Text]; !exists {
			dst.childIndex[c.Text] = c
		}
	}
}

// emitNegation implements §4.3 step 2's per-node decision: suppress
// (idempotent supersession or idempotent_commands_avoid), or emit a
// negate_with override, a Junos delete, or the default negation_prefix
// (swapping an existing prefix for its absence).
func emitNegation(driver *Driver, r, generatedParent, outParent *Node) {
	if lineageMatchesAny(driver, idempotentAvoidLineages(driver), r) {
		return
	}
	if idempotentSuppressed(driver, r, generatedParent) {
		return
	}
	emitFullNegation(driver, r, outParent)
}

// emitFullNegation always emits a negation for r, skipping the
// idempotent-suppression checks (used by sectional overwrite, which
// negates unconditionally before re-adding the generated section).
func emitFullNegation(driver *Driver, r, outParent *Node) {
	if driver.JunosStyle {
		copyJunosNegated(outParent, r)
		return
	}
	if driver.NegateWithHook != nil {
		if text, ok := driver.NegateWithHook(r); ok {
			outParent.AddChild(text)
			return
		}
	}
	for _, rule := range driver.NegateWith {
		if IsLineageMatch(r, rule.Lineage, driver.StrictLineageMatch) {
			outParent.AddChild(rule.Use)
			return
		}
	}
	for _, rule := range driver.NegationDefaultWhen {
		if IsLineageMatch(r, rule.Lineage, driver.StrictLineageMatch) {
			outParent.AddChild(defaultNegationText(driver, r.Text))
			return
		}
	}
	if driver.SwapNegationHook != nil {
		if text, ok := driver.SwapNegationHook(r.Text); ok {
			outParent.AddChild(text)
			return
		}
	}
	if driver.NegationPrefix != "" && strings.HasPrefix(r.Text, driver.NegationPrefix) {
		outParent.AddChild(strings.TrimPrefix(r.Text, driver.NegationPrefix))
		return
	}
	outParent.AddChild(driver.NegationPrefix + r.Text)
}

// defaultNegationText renders r's text negated as a bare "default" command
// instead of swapping the negation prefix, per a matched
// NegationDefaultWhenRule: "no logging event link-status" under an
// interface would normally toggle back to "logging event link-status", but
// some commands only take effect (or only fully clear) via "default ...".
func defaultNegationText(driver *Driver, text string) string {
	if driver.NegationPrefix != "" && strings.HasPrefix(text, driver.NegationPrefix) {
		return "default " + strings.TrimPrefix(text, driver.NegationPrefix)
	}
	return "default " + text
}

// copyJunosNegated rebuilds r's single-token path under dst, flipping
// Negated only at the leaf: Junos parses one node per path token (§4.1),
// so a running subtree absent from generated must be negated as a whole
// "delete a b c ..." command, not one negation per intermediate token.
func copyJunosNegated(dst, r *Node) {
	child := dst.AddChild(r.Text)
	if r.IsLeaf() {
		child.Negated = !r.Negated
		return
	}
	for _, c := range r.Children {
		copyJunosNegated(child, c)
	}
}

// idempotentSuppressed reports whether r's negation should be dropped
// because an idempotent_commands rule matches r's lineage and generated
// carries a sibling of matching lineage but different text — the new
// command already supersedes the old one (§4.3 step 2, scenario 1).
func idempotentSuppressed(driver *Driver, r, generatedParent *Node) bool {
	if generatedParent == nil || len(driver.IdempotentCommands) == 0 {
		return false
	}
	matchedRule := false
	for _, rule := range driver.IdempotentCommands {
		if IsLineageMatch(r, rule.Lineage, driver.StrictLineageMatch) {
			matchedRule = true
			break
		}
	}
	if !matchedRule {
		return false
	}

	var others []*Node
	for _, g := range generatedParent.Children {
		if g.Text != r.Text {
			others = append(others, g)
		}
	}
	if driver.IdempotentForHook != nil {
		return driver.IdempotentForHook(r, others) != nil
	}
	for _, g := range others {
		for _, rule := range driver.IdempotentCommands {
			if IsLineageMatch(r, rule.Lineage, driver.StrictLineageMatch) &&
				IsLineageMatch(g, rule.Lineage, driver.StrictLineageMatch) {
				return true
			}
		}
	}
	return false
}

func lineageMatchesAny(driver *Driver, lineages []Lineage, n *Node) bool {
	for _, l := range lineages {
		if IsLineageMatch(n, l, driver.StrictLineageMatch) {
			return true
		}
	}
	return false
}

func sectionalOverwriteLineages(driver *Driver) []Lineage {
	out := make([]Lineage, len(driver.SectionalOverwrite))
	for i, r := range driver.SectionalOverwrite {
		out[i] = r.Lineage
	}
	return out
}

func sectionalOverwriteNoNegateLineages(driver *Driver) []Lineage {
	out := make([]Lineage, len(driver.SectionalOverwriteNoNegate))
	for i, r := range driver.SectionalOverwriteNoNegate {
		out[i] = r.Lineage
	}
	return out
}

func idempotentAvoidLineages(driver *Driver) []Lineage {
	out := make([]Lineage, len(driver.IdempotentCommandsAvoid))
	for i, r := range driver.IdempotentCommandsAvoid {
		out[i] = r.Lineage
	}
	return out
}

// Future predicts the post-merge state of running given a non-strict
// overlay (§6): unlike Merge, overlapping sections are allowed and the
// overlay wins wherever it conflicts with running, including idempotent
// supersession of a running sibling by an overlay sibling of matching
// lineage but different text.
func Future(driver *Driver, running, overlay *Node) *Node {
	out := NewRoot(driver)
	futureChildren(driver, running, overlay, out)
	assignOrderWeights(driver, out)
	return out
}

func futureChildren(driver *Driver, runningParent, overlayParent, outParent *Node) {
	superseded := make(map[*Node]bool)
	overlayIgnore := make(map[*Node]bool)
	for _, r := range runningParent.Children {
		if overlayParent.ChildByText(r.Text) != nil {
			continue
		}
		for _, rule := range driver.IdempotentCommands {
			if !IsLineageMatch(r, rule.Lineage, driver.StrictLineageMatch) {
				continue
			}
			for _, o := range overlayParent.Children {
				if o.Text != r.Text && IsLineageMatch(o, rule.Lineage, driver.StrictLineageMatch) {
					superseded[r] = true
				}
			}
		}
	}

	// A running line and an overlay line that negate one another supersede
	// each other even without an IdempotentCommands entry: an overlay "no
	// shutdown" drops a running "shutdown" (and vice versa) rather than
	// coexisting with it in the future tree. The overlay line itself is
	// only ever the trigger for the drop, not a line carried forward in
	// its own right.
	for _, r := range runningParent.Children {
		if superseded[r] {
			continue
		}
		// An exact-text overlay counterpart already fully governs r via
		// the main merge loop below; don't let a coincidental negation
		// match preempt that.
		if overlayParent.ChildByText(r.Text) != nil {
			continue
		}
		negText, ok := negatedText(driver, r)
		if !ok {
			continue
		}
		if o := overlayParent.ChildByText(negText); o != nil {
			superseded[r] = true
			overlayIgnore[o] = true
		}
	}

	usedOverlay := make(map[*Node]bool)
	for _, r := range runningParent.Children {
		if superseded[r] {
			continue
		}
		o := overlayParent.ChildByText(r.Text)
		if o == nil {
			r.copyStateInto(outParent)
			continue
		}
		usedOverlay[o] = true
		merged := r.ShallowCopyInto(outParent)
		merged.IsNewInConfig = false
		futureChildren(driver, r, o, merged)
	}

	for _, o := range overlayParent.Children {
		if usedOverlay[o] || overlayIgnore[o] {
			continue
		}
		o.DeepCopyInto(outParent)
	}
}

// negatedText computes the text that negating r would produce, using the
// same negate_with override chain as an actual negation (§4.3 step 2),
// without emitting a node. Used to recognize when an overlay line is the
// negated counterpart of a running line so Future can supersede the
// running line even with no IdempotentCommands entry for it. Junos
// negates by deleting a whole subtree rather than swapping a single
// line's text, so it has no single-string form here.
func negatedText(driver *Driver, r *Node) (string, bool) {
	if driver.JunosStyle {
		return "", false
	}
	if driver.NegateWithHook != nil {
		if text, ok := driver.NegateWithHook(r); ok {
			return text, true
		}
	}
	for _, rule := range driver.NegateWith {
		if IsLineageMatch(r, rule.Lineage, driver.StrictLineageMatch) {
			return rule.Use, true
		}
	}
	if driver.NegationPrefix == "" {
		return "", false
	}
	if strings.HasPrefix(r.Text, driver.NegationPrefix) {
		return strings.TrimPrefix(r.Text, driver.NegationPrefix), true
	}
	return driver.NegationPrefix + r.Text, true
}
