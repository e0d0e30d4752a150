package hconfig

import "regexp"

// NegateWithRule overrides the text used to negate nodes matching its
// lineage — e.g. Cisco IOS's "no logging console <level>" collapsing to
// a fixed "no logging console" regardless of level.
type NegateWithRule struct {
	Lineage Lineage
	Use     string
}

// NegationDefaultWhenRule marks lineages whose negation is rendered as a
// bare "default <command>" line instead of the usual negation-prefix
// swap, for commands that only take effect (or only fully reset) via a
// platform's "default" form. Checked after NegateWith and before the
// swap-negation fallback in emitFullNegation.
type NegationDefaultWhenRule struct {
	Lineage Lineage
}

// SectionalExitingRule appends a synthetic leaf closing a matched
// section in rendered text (e.g. "exit-address-family").
type SectionalExitingRule struct {
	Lineage  Lineage
	ExitText string
}

// SectionalOverwriteRule marks a lineage whose matched section, when
// present on both sides of a remediation, is replaced wholesale (negate
// then re-add) rather than diffed line by line.
type SectionalOverwriteRule struct {
	Lineage Lineage
}

// SectionalOverwriteNoNegateRule is SectionalOverwriteRule without the
// negation: only the deep copy of the generated section is emitted.
type SectionalOverwriteNoNegateRule struct {
	Lineage Lineage
}

// OrderingRule overrides the default order weight (500) for matching
// nodes; lower sorts earlier among siblings.
type OrderingRule struct {
	Lineage Lineage
	Weight  int
}

// PerLineSubRule is a regex rewrite applied line by line at parse time,
// in declaration order. A line that becomes empty after substitution is
// dropped.
type PerLineSubRule struct {
	Search  string
	Replace string

	re *regexp.Regexp
}

// FullTextSubRule is a regex rewrite applied to the whole input before
// line-splitting, in declaration order.
type FullTextSubRule struct {
	Search  string
	Replace string

	re *regexp.Regexp
}

// IdempotentCommandsRule marks a lineage where two sibling nodes are
// considered the "same command" differing only in argument: a generated
// sibling supersedes a running one of the same lineage without an
// explicit negation.
type IdempotentCommandsRule struct {
	Lineage Lineage
}

// IdempotentCommandsAvoidRule suppresses negation entirely for a
// matching lineage, even when no replacement is present in generated.
type IdempotentCommandsAvoidRule struct {
	Lineage Lineage
}

// IndentAdjustRule defines a virtual indent increment between a matching
// open marker line and its matching close marker line, for platforms
// (FortiOS's "next"/"end", Cisco XR's route-policy blocks) whose
// indentation is carried by keywords rather than whitespace.
type IndentAdjustRule struct {
	StartExpr string
	EndExpr   string

	startRe *regexp.Regexp
	endRe   *regexp.Regexp
}

// ParentAllowsDuplicateChildRule marks a parent lineage under which
// multiple children may share the same text (e.g. repeated ACL entries).
type ParentAllowsDuplicateChildRule struct {
	Lineage Lineage
}

// UnusedObjectRule drives pkg/hconfig's unused-object analysis: it names
// an object type, the lineage(s) that define an instance of it, the
// patterns that reference it elsewhere in the tree, and the template used
// to render a removal command for an unreferenced instance.
type UnusedObjectRule struct {
	ObjectType      string
	DefinitionMatch []MatchRule
	// NameExtractRegex pulls the object's bare name out of a matched
	// definition node's text via its first capture group; if empty, the
	// definition node's whole text is used as the name.
	NameExtractRegex   string
	ReferencePatterns  []ReferencePattern
	RemovalTemplate    string // Sprintf format applied to the object name alone, e.g. "no vlan %s"
	RemovalOrderWeight int
	CaseSensitive      bool

	nameExtractRe *regexp.Regexp
}

// ReferencePattern locates a reference to a defined object elsewhere in
// the tree and extracts the referenced name via a regex capture group.
type ReferencePattern struct {
	Lineage        Lineage
	ExtractRegex   string
	CaptureGroup   int
	IgnorePatterns []string
	ReferenceType  string

	extractRe *regexp.Regexp
	ignoreRes []*regexp.Regexp
}

// PostLoadCallback mutates a freshly parsed tree once, in driver
// declaration order (e.g. inserting ACL sequence numbers, stripping
// IPv6 ACL sequence numbers, normalizing FortiOS "next"/"end").
type PostLoadCallback func(root *Node)

// NegateWithFunc lets a driver compute a negation override
// programmatically instead of (or in addition to) NegateWithRule; used
// by platforms whose negation needs more than lineage matching (FortiOS).
type NegateWithFunc func(node *Node) (text string, ok bool)

// IdempotentForFunc lets a driver override the default idempotent-match
// heuristic; FortiOS requires the object name, not just the lineage, to
// match on both sides.
type IdempotentForFunc func(node *Node, otherChildren []*Node) *Node

// SwapNegationFunc lets a driver override how a negation is toggled off
// (Junos swaps "set"/"delete" rather than stripping a prefix).
type SwapNegationFunc func(text string) (string, bool)

// Driver is the immutable rule bundle for a single platform (§3, §9).
// Constructed once via NewDriver and never mutated afterward.
type Driver struct {
	Platform string

	Indentation      int
	NegationPrefix   string
	DeclarationPrefix string

	// StrictLineageMatch switches every rule lookup in this driver to
	// the strict (adjacent-ancestor) lineage matching mode rather than
	// the spec's default floating mode. See DESIGN.md Open Question.
	StrictLineageMatch bool

	NegateWith                 []NegateWithRule
	NegationDefaultWhen        []NegationDefaultWhenRule
	SectionalExiting           []SectionalExitingRule
	SectionalOverwrite         []SectionalOverwriteRule
	SectionalOverwriteNoNegate []SectionalOverwriteNoNegateRule
	Ordering                   []OrderingRule
	PerLineSub                 []PerLineSubRule
	FullTextSub                []FullTextSubRule
	IdempotentCommands         []IdempotentCommandsRule
	IdempotentCommandsAvoid    []IdempotentCommandsAvoidRule
	IndentAdjust               []IndentAdjustRule
	ParentAllowsDuplicateChild []ParentAllowsDuplicateChildRule
	UnusedObjectRules          []UnusedObjectRule
	PostLoadCallbacks          []PostLoadCallback

	NegateWithHook    NegateWithFunc
	IdempotentForHook IdempotentForFunc
	SwapNegationHook  SwapNegationFunc

	// JunosStyle selects the flat set/delete parser & renderer instead
	// of the Cisco-style indented ones.
	JunosStyle bool
}

// NewDriver validates and compiles a Driver's rules, returning
// InvalidRuleError for an empty lineage or an uncompilable regex.
func NewDriver(d Driver) (*Driver, error) {
	if d.Indentation == 0 {
		d.Indentation = 2
	}
	if d.NegationPrefix == "" && !d.JunosStyle {
		d.NegationPrefix = "no "
	}

	for i := range d.NegateWith {
		if len(d.NegateWith[i].Lineage) == 0 {
			return nil, &InvalidRuleError{Rule: "NegateWith", Reason: "empty lineage"}
		}
		if err := compileLineage(d.NegateWith[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.SectionalExiting {
		if len(d.SectionalExiting[i].Lineage) == 0 {
			return nil, &InvalidRuleError{Rule: "SectionalExiting", Reason: "empty lineage"}
		}
		if err := compileLineage(d.SectionalExiting[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.SectionalOverwrite {
		if err := compileLineage(d.SectionalOverwrite[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.SectionalOverwriteNoNegate {
		if err := compileLineage(d.SectionalOverwriteNoNegate[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.Ordering {
		if err := compileLineage(d.Ordering[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.IdempotentCommands {
		if len(d.IdempotentCommands[i].Lineage) == 0 {
			return nil, &InvalidRuleError{Rule: "IdempotentCommands", Reason: "empty lineage"}
		}
		if err := compileLineage(d.IdempotentCommands[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.IdempotentCommandsAvoid {
		if err := compileLineage(d.IdempotentCommandsAvoid[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.ParentAllowsDuplicateChild {
		if err := compileLineage(d.ParentAllowsDuplicateChild[i].Lineage); err != nil {
			return nil, err
		}
	}
	for i := range d.NegationDefaultWhen {
		if err := compileLineage(d.NegationDefaultWhen[i].Lineage); err != nil {
			return nil, err
		}
	}

	for i := range d.PerLineSub {
		re, err := regexp.Compile(d.PerLineSub[i].Search)
		if err != nil {
			return nil, &InvalidRuleError{Rule: "PerLineSub", Reason: err.Error()}
		}
		d.PerLineSub[i].re = re
	}
	for i := range d.FullTextSub {
		re, err := regexp.Compile(d.FullTextSub[i].Search)
		if err != nil {
			return nil, &InvalidRuleError{Rule: "FullTextSub", Reason: err.Error()}
		}
		d.FullTextSub[i].re = re
	}
	for i := range d.IndentAdjust {
		startRe, err := regexp.Compile(d.IndentAdjust[i].StartExpr)
		if err != nil {
			return nil, &InvalidRuleError{Rule: "IndentAdjust", Reason: err.Error()}
		}
		endRe, err := regexp.Compile(d.IndentAdjust[i].EndExpr)
		if err != nil {
			return nil, &InvalidRuleError{Rule: "IndentAdjust", Reason: err.Error()}
		}
		d.IndentAdjust[i].startRe = startRe
		d.IndentAdjust[i].endRe = endRe
	}
	for i := range d.UnusedObjectRules {
		rule := &d.UnusedObjectRules[i]
		if rule.ObjectType == "" {
			return nil, &InvalidRuleError{Rule: "UnusedObjectRule", Reason: "empty object type"}
		}
		if rule.NameExtractRegex != "" {
			re, err := regexp.Compile(rule.NameExtractRegex)
			if err != nil {
				return nil, &InvalidRuleError{Rule: "UnusedObjectRule.NameExtractRegex", Reason: err.Error()}
			}
			rule.nameExtractRe = re
		}
		for j := range rule.ReferencePatterns {
			rp := &rule.ReferencePatterns[j]
			re, err := regexp.Compile(rp.ExtractRegex)
			if err != nil {
				return nil, &InvalidRuleError{Rule: "ReferencePattern", Reason: err.Error()}
			}
			rp.extractRe = re
			for _, ip := range rp.IgnorePatterns {
				ire, err := regexp.Compile(ip)
				if err != nil {
					return nil, &InvalidRuleError{Rule: "ReferencePattern.ignore", Reason: err.Error()}
				}
				rp.ignoreRes = append(rp.ignoreRes, ire)
			}
		}
	}

	out := d
	return &out, nil
}

func compileLineage(lineage Lineage) error {
	for i := range lineage {
		if err := lineage[i].compile(); err != nil {
			return &InvalidRuleError{Rule: "MatchRule", Reason: err.Error()}
		}
	}
	return nil
}
