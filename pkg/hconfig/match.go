package hconfig

import (
	"regexp"
	"strings"
)

// MatchRule is a predicate over a single line of text. Every non-zero
// field must match for the rule to match; a field left at its zero value
// is ignored. Equals/StartsWith/EndsWith/Contains accept either a single
// string or a set of alternatives (any-match).
type MatchRule struct {
	Equals     string
	EqualsAny  []string
	StartsWith string
	StartsAny  []string
	EndsWith   string
	EndsAny    []string
	Contains   string
	ContainsAny []string
	ReSearch   string

	re *regexp.Regexp // compiled once, at driver construction
}

// compile precompiles the ReSearch expression, if any. Driver
// construction calls this eagerly so that a malformed regex is reported
// as InvalidRuleError rather than surfacing during remediation.
func (r *MatchRule) compile() error {
	if r.ReSearch == "" {
		return nil
	}
	re, err := regexp.Compile(r.ReSearch)
	if err != nil {
		return err
	}
	r.re = re
	return nil
}

// Match reports whether text satisfies every non-zero predicate on r.
func (r MatchRule) Match(text string) bool {
	if r.Equals != "" && text != r.Equals {
		return false
	}
	if len(r.EqualsAny) > 0 && !containsStr(r.EqualsAny, text) {
		return false
	}
	if r.StartsWith != "" && !strings.HasPrefix(text, r.StartsWith) {
		return false
	}
	if len(r.StartsAny) > 0 && !hasAnyPrefix(text, r.StartsAny) {
		return false
	}
	if r.EndsWith != "" && !strings.HasSuffix(text, r.EndsWith) {
		return false
	}
	if len(r.EndsAny) > 0 && !hasAnySuffix(text, r.EndsAny) {
		return false
	}
	if r.Contains != "" && !strings.Contains(text, r.Contains) {
		return false
	}
	if len(r.ContainsAny) > 0 && !hasAnySubstring(text, r.ContainsAny) {
		return false
	}
	if r.ReSearch != "" {
		if r.re == nil {
			// Defensive: compile lazily if a rule was built without
			// going through NewDriver (e.g. in a unit test).
			re, err := regexp.Compile(r.ReSearch)
			if err != nil {
				return false
			}
			r.re = re
		}
		if !r.re.MatchString(text) {
			return false
		}
	}
	return true
}

// IsZero reports whether the rule has no predicates set at all, meaning
// it matches anything.
func (r MatchRule) IsZero() bool {
	return r.Equals == "" && len(r.EqualsAny) == 0 &&
		r.StartsWith == "" && len(r.StartsAny) == 0 &&
		r.EndsWith == "" && len(r.EndsAny) == 0 &&
		r.Contains == "" && len(r.ContainsAny) == 0 &&
		r.ReSearch == ""
}

func containsStr(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}

func hasAnyPrefix(text string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(text, p) {
			return true
		}
	}
	return false
}

func hasAnySuffix(text string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(text, s) {
			return true
		}
	}
	return false
}

func hasAnySubstring(text string, substrs []string) bool {
	for _, s := range substrs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// Lineage is an ordered tuple of MatchRules anchored at a node, used by
// every rule kind in §4.2 of the spec.
type Lineage []MatchRule
