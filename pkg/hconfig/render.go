package hconfig

import "strings"

// Render serializes a tree back to text using the driver's style,
// walking children in OrderWeight order and inserting sectional-exit
// leaves where SectionalExiting rules match (§4.3 step 5, §4.6).
func Render(driver *Driver, root *Node) string {
	if driver.JunosStyle {
		return renderJunos(root)
	}
	return renderCiscoStyle(driver, root)
}

func renderCiscoStyle(driver *Driver, root *Node) string {
	var b strings.Builder
	renderCiscoChildren(driver, root, &b)
	return b.String()
}

func renderCiscoChildren(driver *Driver, n *Node, b *strings.Builder) {
	for _, c := range n.sortedChildren() {
		b.WriteString(c.CiscoStyleIndentPrefix(driver.Indentation))
		b.WriteString(c.Text)
		b.WriteByte('\n')
		renderCiscoChildren(driver, c, b)
		for _, rule := range driver.SectionalExiting {
			if IsLineageMatch(c, rule.Lineage, driver.StrictLineageMatch) {
				b.WriteString(c.CiscoStyleIndentPrefix(driver.Indentation))
				b.WriteString(rule.ExitText)
				b.WriteByte('\n')
				break
			}
		}
	}
}

// renderJunos walks every leaf and emits one "set"/"delete" line per
// leaf, joining each leaf's lineage text with spaces (§4.1, §4.6).
func renderJunos(root *Node) string {
	var b strings.Builder
	for _, n := range root.AllChildrenSorted() {
		if !n.IsLeaf() {
			continue
		}
		renderJunosLine(n, &b)
	}
	return b.String()
}

func renderJunosLine(n *Node, b *strings.Builder) {
	if n.Negated {
		b.WriteString("delete ")
	} else {
		b.WriteString("set ")
	}
	words := make([]string, 0, n.Depth())
	for _, anc := range n.Lineage() {
		words = append(words, anc.Text)
	}
	b.WriteString(strings.Join(words, " "))
	b.WriteByte('\n')
}

// RenderFiltered serializes only the subtrees TagFilter keeps, per the
// FilteredText config-view convention (§4.4).
func RenderFiltered(driver *Driver, root *Node, filter TagFilter) string {
	if driver.JunosStyle {
		var b strings.Builder
		for _, n := range root.AllChildrenSorted() {
			if n.IsLeaf() && filter.subtreeKept(n) {
				renderJunosLine(n, &b)
			}
		}
		return b.String()
	}
	var b strings.Builder
	renderCiscoChildrenFiltered(driver, root, filter, &b)
	return b.String()
}

func renderCiscoChildrenFiltered(driver *Driver, n *Node, filter TagFilter, b *strings.Builder) {
	for _, c := range n.sortedChildren() {
		if !filter.subtreeKept(c) {
			continue
		}
		b.WriteString(c.CiscoStyleIndentPrefix(driver.Indentation))
		b.WriteString(c.Text)
		b.WriteByte('\n')
		renderCiscoChildrenFiltered(driver, c, filter, b)
		for _, rule := range driver.SectionalExiting {
			if IsLineageMatch(c, rule.Lineage, driver.StrictLineageMatch) {
				b.WriteString(c.CiscoStyleIndentPrefix(driver.Indentation))
				b.WriteString(rule.ExitText)
				b.WriteByte('\n')
				break
			}
		}
	}
}
