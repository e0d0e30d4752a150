package main

import (
	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/cli"
	"github.com/psaab/hierconfig/pkg/configstore"
)

var shellConfigFile string

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Launch the interactive Junos-style configuration shell",
	RunE:  runShell,
}

func init() {
	shellCmd.Flags().StringVar(&shellConfigFile, "config-file", "running.cfg", "path to the backing running-configuration file")
	rootCmd.AddCommand(shellCmd)
}

func runShell(cmd *cobra.Command, args []string) error {
	store, err := configstore.New(platformFlag, shellConfigFile)
	if err != nil {
		return err
	}
	if err := store.Load(); err != nil {
		return err
	}
	return cli.New(store).Run()
}
