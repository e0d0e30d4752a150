package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/yamlrules"
)

var (
	tagRulesFile   string
	tagIncludeTags []string
	tagExcludeTags []string
)

var tagCmd = &cobra.Command{
	Use:   "tag <file>",
	Short: "Apply a v2 tag-rule file to a configuration and print the (optionally filtered) result",
	Args:  cobra.ExactArgs(1),
	RunE:  runTag,
}

func init() {
	tagCmd.Flags().StringVar(&tagRulesFile, "rules", "", "path to a v2 tag-rule YAML file (required)")
	tagCmd.Flags().StringSliceVar(&tagIncludeTags, "include", nil, "only render subtrees carrying one of these tags")
	tagCmd.Flags().StringSliceVar(&tagExcludeTags, "exclude", nil, "never render subtrees carrying one of these tags")
	_ = tagCmd.MarkFlagRequired("rules")
	rootCmd.AddCommand(tagCmd)
}

func runTag(cmd *cobra.Command, args []string) error {
	driver, root, err := parseFileArg(platformFlag, args[0])
	if err != nil {
		return err
	}
	rules, err := yamlrules.LoadTagRules(tagRulesFile)
	if err != nil {
		return err
	}
	hconfig.ApplyTagRules(driver, root, rules)

	filter := hconfig.NewTagFilter(tagIncludeTags, tagExcludeTags)
	fmt.Print(hconfig.FilteredText(driver, root, filter))
	return nil
}
