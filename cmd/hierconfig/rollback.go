package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback <running> <generated>",
	Short: "Compute the inverse remediation that would restore running from generated",
	Args:  cobra.ExactArgs(2),
	RunE:  runRollback,
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}

func runRollback(cmd *cobra.Command, args []string) error {
	_, running, err := parseFileArg(platformFlag, args[0])
	if err != nil {
		return err
	}
	_, generated, err := parseFileArg(platformFlag, args[1])
	if err != nil {
		return err
	}
	wf, err := hconfig.NewWorkflowRemediation(running, generated)
	if err != nil {
		return err
	}
	fmt.Print(hconfig.Render(wf.Driver, wf.RollbackConfig()))
	return nil
}
