package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/platform"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platform names",
	RunE:  runPlatforms,
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

func runPlatforms(cmd *cobra.Command, args []string) error {
	for _, name := range platform.Names() {
		fmt.Println(name)
	}
	return nil
}
