package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/daemon"
)

var (
	reportRunningDir   string
	reportGeneratedDir string
	reportJSON         bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute a one-shot multi-device remediation report from two config directories",
	RunE:  runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportRunningDir, "running-dir", "", "directory of \"<device>.cfg\" running configs (required)")
	reportCmd.Flags().StringVar(&reportGeneratedDir, "generated-dir", "", "directory of \"<device>.cfg\" generated configs (required)")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as JSON instead of a table")
	_ = reportCmd.MarkFlagRequired("running-dir")
	_ = reportCmd.MarkFlagRequired("generated-dir")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	// A throwaway Daemon with no refresh loop running: Refresh is called
	// exactly once, synchronously, and the result is read straight back.
	d, err := daemon.New(daemon.Config{
		RunningDir:   reportRunningDir,
		GeneratedDir: reportGeneratedDir,
		Platform:     platformFlag,
	})
	if err != nil {
		return err
	}
	if err := d.Refresh(); err != nil {
		return err
	}
	rpt, _ := d.Report()

	if reportJSON {
		data, err := rpt.ExportJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	rpt.WriteTable(os.Stdout, os.Stdout)
	return nil
}
