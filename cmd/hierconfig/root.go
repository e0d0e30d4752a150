package main

import (
	"github.com/spf13/cobra"
)

var platformFlag string

var rootCmd = &cobra.Command{
	Use:   "hierconfig",
	Short: "Hierarchical network configuration remediation engine",
	Long: `hierconfig computes the minimal set of command-line edits required
to transform a device's running configuration into a target generated
configuration, and can render, diff, tag, and report on the result.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&platformFlag, "platform", "cisco_ios", "target platform name (see 'hierconfig platforms')")
}
