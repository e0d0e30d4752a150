package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/psaab/hierconfig/pkg/daemon"
	"github.com/psaab/hierconfig/pkg/logging"
)

var (
	serveRunningDir   string
	serveGeneratedDir string
	serveListenAddr   string
	serveInterval     time.Duration
	serveLogFormat    string
	serveLogLevel     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the long-lived report daemon, refreshing on an interval and serving HTTP + Prometheus metrics",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveRunningDir, "running-dir", "", "directory of \"<device>.cfg\" running configs (required)")
	serveCmd.Flags().StringVar(&serveGeneratedDir, "generated-dir", "", "directory of \"<device>.cfg\" generated configs (required)")
	serveCmd.Flags().StringVar(&serveListenAddr, "listen", ":9273", "HTTP listen address")
	serveCmd.Flags().DurationVar(&serveInterval, "interval", time.Minute, "refresh interval")
	serveCmd.Flags().StringVar(&serveLogFormat, "log-format", "text", "log format: text or json")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "log level: debug, info, warn, error")
	_ = serveCmd.MarkFlagRequired("running-dir")
	_ = serveCmd.MarkFlagRequired("generated-dir")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.NewLogger(serveLogFormat, serveLogLevel)

	d, err := daemon.New(daemon.Config{
		RunningDir:      serveRunningDir,
		GeneratedDir:    serveGeneratedDir,
		Platform:        platformFlag,
		ListenAddr:      serveListenAddr,
		RefreshInterval: serveInterval,
		Logger:          log,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	return d.Run(ctx)
}
