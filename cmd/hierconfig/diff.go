package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

var diffCmd = &cobra.Command{
	Use:   "diff <running> <generated>",
	Short: "Print a unified diff between two configuration files",
	Args:  cobra.ExactArgs(2),
	RunE:  runDiff,
}

func init() {
	rootCmd.AddCommand(diffCmd)
}

func runDiff(cmd *cobra.Command, args []string) error {
	driver, err := platform.Get(platformFlag)
	if err != nil {
		return err
	}
	_, running, err := parseFileArg(platformFlag, args[0])
	if err != nil {
		return err
	}
	_, generated, err := parseFileArg(platformFlag, args[1])
	if err != nil {
		return err
	}
	fmt.Print(hconfig.UnifiedDiff(driver, running, generated))
	return nil
}
