// hierconfig computes and applies hierarchical configuration
// remediation across network devices: parsing, rendering, diffing,
// remediating, tagging, and reporting, plus an interactive shell and a
// long-running report daemon.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "hierconfig: %v\n", err)
		os.Exit(1)
	}
}
