package hconfig

import (
	"strings"
)

// Parse builds a tree from raw text, dispatching to the Cisco-style
// indented parser or the Junos flat/braced parser per driver.JunosStyle
// (§4.1).
func Parse(driver *Driver, text string) (*Node, error) {
	if driver.JunosStyle {
		return ParseJunos(driver, text)
	}
	return parseCiscoStyle(driver, text)
}

// parseCiscoStyle implements §4.1 steps 1-6.
func parseCiscoStyle(driver *Driver, text string) (*Node, error) {
	root := NewRoot(driver)

	text = applyFullTextSub(driver, text)
	lines := splitLines(text)

	type stackEntry struct {
		depth int
		node  *Node
	}
	stack := []stackEntry{{depth: -1, node: root}}

	indentAdjustment := 0
	for lineNo, raw := range lines {
		line := strings.TrimRight(raw, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		sub, dropped := applyPerLineSub(driver, line)
		if dropped {
			continue
		}
		realIndent := countLeadingSpaces(line)
		lineText := strings.TrimSpace(sub)
		if lineText == "" {
			continue
		}

		adj := indentAdjustForLine(driver, lineText, &indentAdjustment)
		depth := (realIndent / maxInt(driver.Indentation, 1)) + adj

		for len(stack) > 0 && stack[len(stack)-1].depth >= depth {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			return nil, &ParseError{Line: lineNo + 1, Text: lineText, Msg: "indentation stack exhausted"}
		}
		parentEntry := stack[len(stack)-1]
		if depth > parentEntry.depth+1 {
			return nil, &ParseError{
				Line: lineNo + 1, Text: lineText,
				Msg: "indentation increases by more than one step; missing intermediate parent",
			}
		}

		var child *Node
		if parentEntry.node.allowsDuplicateChildren() {
			child = parentEntry.node.AddChild(lineText)
		} else {
			child = parentEntry.node.GetOrAddChild(lineText)
		}
		stack = append(stack, stackEntry{depth: depth, node: child})
	}

	stripSectionalExits(driver, root)

	for _, cb := range driver.PostLoadCallbacks {
		cb(root)
	}
	assignOrderWeights(driver, root)
	return root, nil
}

// stripSectionalExits removes literal exit markers for matching
// SectionalExiting rules immediately after parsing: a trailing child of
// the section whose text is the rule's ExitText, and a leaf with that
// text parsed as the section's next sibling (the marker written at the
// section's own indentation). Render re-materializes the same marker
// from the rule itself, so leaving a parsed one in place would print it
// twice.
func stripSectionalExits(driver *Driver, root *Node) {
	for _, n := range append([]*Node{root}, root.AllChildren()...) {
		if len(n.Children) == 0 {
			continue
		}
		for i := len(n.Children) - 1; i >= 1; i-- {
			c, prev := n.Children[i], n.Children[i-1]
			if !c.IsLeaf() {
				continue
			}
			for _, rule := range driver.SectionalExiting {
				if c.Text == rule.ExitText && IsLineageMatch(prev, rule.Lineage, driver.StrictLineageMatch) {
					n.DeleteChild(c)
					break
				}
			}
		}
		for _, rule := range driver.SectionalExiting {
			if !IsLineageMatch(n, rule.Lineage, driver.StrictLineageMatch) {
				continue
			}
			last := n.Children[len(n.Children)-1]
			if last.Text == rule.ExitText {
				n.DeleteChild(last)
			}
			break
		}
	}
}

// indentAdjustForLine evaluates IndentAdjust rules against lineText and
// mutates the running cumulative adjustment (§4.1 step 4). It returns
// the adjustment to apply to THIS line: end markers decrement before
// being measured (the closing line itself sits back at the opened
// depth), start markers increment after being measured (their children
// sit one level deeper, not the marker itself).
func indentAdjustForLine(driver *Driver, lineText string, cumulative *int) int {
	for _, rule := range driver.IndentAdjust {
		if rule.endRe != nil && rule.endRe.MatchString(lineText) {
			*cumulative--
			return *cumulative
		}
	}
	before := *cumulative
	for _, rule := range driver.IndentAdjust {
		if rule.startRe != nil && rule.startRe.MatchString(lineText) {
			*cumulative++
			break
		}
	}
	return before
}

func applyFullTextSub(driver *Driver, text string) string {
	for _, rule := range driver.FullTextSub {
		if rule.re != nil {
			text = rule.re.ReplaceAllString(text, rule.Replace)
		}
	}
	return text
}

// applyPerLineSub applies per_line_sub rules in order; if the result is
// empty the line is dropped (§4.1 step 3).
func applyPerLineSub(driver *Driver, line string) (string, bool) {
	for _, rule := range driver.PerLineSub {
		if rule.re != nil {
			line = rule.re.ReplaceAllString(line, rule.Replace)
		}
	}
	return line, strings.TrimSpace(line) == ""
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func countLeadingSpaces(s string) int {
	n := 0
	for _, r := range s {
		if r == ' ' {
			n++
		} else if r == '\t' {
			n += 8 // treat a tab as one stop; real devices rarely emit tabs
		} else {
			break
		}
	}
	return n
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// assignOrderWeights walks the freshly parsed tree and assigns
// OrderWeight from the first matching Ordering rule (§4.3 step 5).
func assignOrderWeights(driver *Driver, root *Node) {
	for _, n := range root.AllChildren() {
		n.OrderWeight = defaultOrderWeight
		for _, rule := range driver.Ordering {
			if IsLineageMatch(n, rule.Lineage, driver.StrictLineageMatch) {
				n.OrderWeight = rule.Weight
				break
			}
		}
	}
}
