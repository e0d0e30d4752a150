package hconfig

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// UnifiedDiff walks before and after structurally rather than diffing
// their rendered text: children are paired by text regardless of
// position, so reordered siblings never produce spurious +/- pairs, and
// a matched pair is only reported once it recurses down to a real
// difference. Children present on only one side are emitted, with their
// whole subtree, as removed or added.
func UnifiedDiff(driver *Driver, before, after *Node) string {
	var b strings.Builder
	if driver.JunosStyle {
		diffJunosLeaves(before, after, &b)
	} else {
		diffCiscoChildren(driver, before, after, &b)
	}
	return b.String()
}

// diffCiscoChildren compares beforeParent's and afterParent's children by
// text, recursing into every matched pair and reporting it (as context,
// with its own nested +/- lines) only if something changed beneath it.
// Same-text duplicates pair up one-to-one in insertion order; any excess
// on either side is reported as +/-.
// It returns whether anything under beforeParent/afterParent differed.
func diffCiscoChildren(driver *Driver, beforeParent, afterParent *Node, b *strings.Builder) bool {
	matchedBefore := make(map[*Node]bool, len(beforeParent.Children))
	changed := false

	for _, ac := range afterParent.sortedChildren() {
		bc := findUnusedByText(beforeParent.Children, ac.Text, matchedBefore)
		if bc == nil {
			writeCiscoSubtree(driver, ac, "+", b)
			changed = true
			continue
		}
		matchedBefore[bc] = true

		var sub strings.Builder
		if diffCiscoChildren(driver, bc, ac, &sub) {
			writeCiscoLine(driver, ac, " ", b)
			b.WriteString(sub.String())
			changed = true
		}
	}

	for _, bc := range beforeParent.sortedChildren() {
		if matchedBefore[bc] {
			continue
		}
		writeCiscoSubtree(driver, bc, "-", b)
		changed = true
	}

	return changed
}

func writeCiscoLine(driver *Driver, n *Node, prefix string, b *strings.Builder) {
	b.WriteString(prefix)
	b.WriteString(n.CiscoStyleIndentPrefix(driver.Indentation))
	b.WriteString(n.Text)
	b.WriteByte('\n')
}

func writeCiscoSubtree(driver *Driver, n *Node, prefix string, b *strings.Builder) {
	writeCiscoLine(driver, n, prefix, b)
	for _, c := range n.sortedChildren() {
		writeCiscoSubtree(driver, c, prefix, b)
	}
}

// diffJunosLeaves compares two Junos-style trees at leaf granularity:
// every leaf already carries its full "set"/"delete" lineage line
// (render.go's renderJunosLine), so a leaf present on only one side is
// the unit of change — there is no intermediate context line to show.
func diffJunosLeaves(before, after *Node, b *strings.Builder) {
	beforeLines := junosLeafLines(before)
	afterLines := junosLeafLines(after)

	for _, n := range after.AllChildrenSorted() {
		if !n.IsLeaf() {
			continue
		}
		line := junosLine(n)
		if !beforeLines[line] {
			b.WriteString("+")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	for _, n := range before.AllChildrenSorted() {
		if !n.IsLeaf() {
			continue
		}
		line := junosLine(n)
		if !afterLines[line] {
			b.WriteString("-")
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
}

func junosLeafLines(root *Node) map[string]bool {
	lines := make(map[string]bool)
	for _, n := range root.AllChildrenSorted() {
		if n.IsLeaf() {
			lines[junosLine(n)] = true
		}
	}
	return lines
}

func junosLine(n *Node) string {
	var b strings.Builder
	renderJunosLine(n, &b)
	return strings.TrimSuffix(b.String(), "\n")
}

// UnifiedDiffText diffs two arbitrary texts line by line, independent of
// any Node tree. UnifiedDiff never calls it: it exists for callers that
// already have two rendered blobs of text (e.g. two prior renders kept
// around after their trees were discarded) and want a familiar
// unified-diff view without re-parsing them.
func UnifiedDiffText(before, after string) string {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out string
	for _, d := range diffs {
		for _, line := range splitLinesKeepTrailing(d.Text) {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				out += "+" + line + "\n"
			case diffmatchpatch.DiffDelete:
				out += "-" + line + "\n"
			case diffmatchpatch.DiffEqual:
				out += " " + line + "\n"
			}
		}
	}
	return out
}

func splitLinesKeepTrailing(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
