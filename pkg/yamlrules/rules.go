// Package yamlrules loads the v2 tag-rule file format into
// hconfig.TagRule values, and a small CLI options file used by
// cmd/hierconfig, both via gopkg.in/yaml.v3.
package yamlrules

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

// rawRule is one entry of a v2 tag-rule file:
//
//	- lineage:
//	    - startswith: [ntp, 'no ntp']
//	  add_tags: ntp
type rawRule struct {
	Lineage  []rawMatch `yaml:"lineage"`
	AddTags  yamlStrOrSlice `yaml:"add_tags"`
}

// rawMatch is a single lineage entry. Each field accepts either a bare
// string or a list of strings; the v2 format never mixes more than one
// key in the same map.
type rawMatch struct {
	Equals    yamlStrOrSlice `yaml:"equals"`
	StartsWith yamlStrOrSlice `yaml:"startswith"`
	EndsWith  yamlStrOrSlice `yaml:"endswith"`
	Contains  yamlStrOrSlice `yaml:"contains"`
	ReSearch  string         `yaml:"re_search"`
}

// yamlStrOrSlice unmarshals either a scalar string or a sequence of
// strings into a []string, matching the v2 format's loose typing.
type yamlStrOrSlice []string

func (s *yamlStrOrSlice) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var single string
		if err := value.Decode(&single); err != nil {
			return err
		}
		*s = []string{single}
		return nil
	case yaml.SequenceNode:
		var many []string
		if err := value.Decode(&many); err != nil {
			return err
		}
		*s = many
		return nil
	default:
		return fmt.Errorf("yamlrules: unsupported YAML node kind %v", value.Kind)
	}
}

// toMatchRule converts one lineage entry to an hconfig.MatchRule,
// choosing the singular or "Any" field depending on how many
// alternatives were supplied.
func (m rawMatch) toMatchRule() hconfig.MatchRule {
	var r hconfig.MatchRule
	r.ReSearch = m.ReSearch
	switch len(m.Equals) {
	case 0:
	case 1:
		r.Equals = m.Equals[0]
	default:
		r.EqualsAny = m.Equals
	}
	switch len(m.StartsWith) {
	case 0:
	case 1:
		r.StartsWith = m.StartsWith[0]
	default:
		r.StartsAny = m.StartsWith
	}
	switch len(m.EndsWith) {
	case 0:
	case 1:
		r.EndsWith = m.EndsWith[0]
	default:
		r.EndsAny = m.EndsWith
	}
	switch len(m.Contains) {
	case 0:
	case 1:
		r.Contains = m.Contains[0]
	default:
		r.ContainsAny = m.Contains
	}
	return r
}

// LoadTagRules reads a v2 tag-rule YAML file and maps it to the
// equivalent hconfig.TagRule set. A rule with several add_tags entries
// expands to one hconfig.TagRule per tag, all sharing the same lineage.
func LoadTagRules(path string) ([]hconfig.TagRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlrules: %w", err)
	}
	return ParseTagRules(data)
}

// ParseTagRules maps raw v2 tag-rule YAML bytes to hconfig.TagRule.
func ParseTagRules(data []byte) ([]hconfig.TagRule, error) {
	var raw []rawRule
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("yamlrules: parse tag rules: %w", err)
	}

	var rules []hconfig.TagRule
	for i, rr := range raw {
		if len(rr.AddTags) == 0 {
			return nil, fmt.Errorf("yamlrules: rule %d: add_tags is required", i)
		}
		lineage := make(hconfig.Lineage, 0, len(rr.Lineage))
		for _, m := range rr.Lineage {
			lineage = append(lineage, m.toMatchRule())
		}
		for _, tag := range rr.AddTags {
			rules = append(rules, hconfig.TagRule{Lineage: lineage, Tag: tag})
		}
	}
	return rules, nil
}

// Options is the shape of a small YAML options file that holds recurring
// flag combinations (a platform name, config paths, tag rules) in a
// checked-in file instead of a long command line. LoadOptions reads it;
// no cmd/hierconfig flag loads it.
type Options struct {
	Platform     string `yaml:"platform"`
	RunningFile  string `yaml:"running_file"`
	GeneratedFile string `yaml:"generated_file"`
	TagRulesFile string `yaml:"tag_rules_file"`
	Include      []string `yaml:"include_tags"`
	Exclude      []string `yaml:"exclude_tags"`
}

// LoadOptions reads a CLI options file.
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("yamlrules: %w", err)
	}
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("yamlrules: parse options: %w", err)
	}
	return &opts, nil
}
