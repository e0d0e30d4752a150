package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

var remediateCmd = &cobra.Command{
	Use:   "remediate <running> <generated>",
	Short: "Compute the remediation config to transform running into generated",
	Args:  cobra.ExactArgs(2),
	RunE:  runRemediate,
}

func init() {
	rootCmd.AddCommand(remediateCmd)
}

func runRemediate(cmd *cobra.Command, args []string) error {
	driver, running, err := parseFileArg(platformFlag, args[0])
	if err != nil {
		return err
	}
	_, generated, err := parseFileArg(platformFlag, args[1])
	if err != nil {
		return err
	}
	rem := hconfig.Remediate(driver, running, generated)
	fmt.Print(hconfig.Render(driver, rem))
	return nil
}
