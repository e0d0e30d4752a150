package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a configuration file and re-render it, validating syntax",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	driver, root, err := parseFileArg(platformFlag, args[0])
	if err != nil {
		return err
	}
	fmt.Print(hconfig.Render(driver, root))
	return nil
}

// parseFileArg reads and parses a config file for the named platform,
// the shared entry point for every subcommand that takes a file arg.
func parseFileArg(platformName, path string) (*hconfig.Driver, *hconfig.Node, error) {
	driver, err := platform.Get(platformName)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	root, err := hconfig.Parse(driver, string(data))
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return driver, root, nil
}
