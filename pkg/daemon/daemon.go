// Package daemon runs a long-lived report server: on an interval it
// re-parses a directory of running device configurations and a matching
// directory of generated (intended) configurations, recomputes the
// remediation report across every device, and serves the aggregated
// result plus Prometheus metrics over HTTP. It performs no device I/O
// of its own; it only reads local files.
package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
	"github.com/psaab/hierconfig/pkg/report"
)

// Config configures the report daemon.
type Config struct {
	RunningDir      string        // directory of "<device>.cfg" running configs
	GeneratedDir    string        // directory of "<device>.cfg" generated configs
	Platform        string        // platform name shared by every device, from pkg/platform
	ListenAddr      string        // HTTP listen address, e.g. ":9273"
	RefreshInterval time.Duration // how often to re-parse and recompute
	Logger          *slog.Logger
}

// Daemon periodically rebuilds a report.Report from files on disk and
// serves it over HTTP.
type Daemon struct {
	cfg    Config
	driver *hconfig.Driver
	log    *slog.Logger

	mu          sync.RWMutex
	report      *report.Report
	lastRefresh time.Time
	lastErr     error

	handler    http.Handler
	httpServer *http.Server
}

// New creates a Daemon. It resolves cfg.Platform immediately so a bad
// platform name fails fast instead of at the first refresh tick.
func New(cfg Config) (*Daemon, error) {
	driver, err := platform.Get(cfg.Platform)
	if err != nil {
		return nil, fmt.Errorf("daemon: %w", err)
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Minute
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":9273"
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	d := &Daemon{cfg: cfg, driver: driver, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", d.healthHandler)
	mux.HandleFunc("GET /report", d.reportHandler)
	mux.HandleFunc("GET /report/table", d.reportTableHandler)

	registry := prometheus.NewRegistry()
	registry.MustRegister(newCollector(d))
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	d.handler = mux
	d.httpServer = &http.Server{Addr: cfg.ListenAddr, Handler: mux}

	return d, nil
}

// Handler returns the daemon's HTTP handler, useful for tests that want
// to exercise the endpoints without binding a real listener.
func (d *Daemon) Handler() http.Handler {
	return d.handler
}

// Refresh re-parses every device and recomputes the aggregate report.
// It is exported so callers (and tests) can force a synchronous refresh
// outside of Run's periodic ticker.
func (d *Daemon) Refresh() error {
	return d.refresh()
}

// Run performs an initial refresh, starts the periodic refresh loop and
// the HTTP server, and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.refresh(); err != nil {
		d.log.Warn("initial refresh failed", "err", err)
	}

	ticker := time.NewTicker(d.cfg.RefreshInterval)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := d.refresh(); err != nil {
					d.log.Warn("refresh failed", "err", err)
				}
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		d.log.Info("report daemon listening", "addr", d.cfg.ListenAddr)
		if err := d.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return d.httpServer.Shutdown(shutdownCtx)
}

// refresh re-parses every device found in cfg.RunningDir/cfg.GeneratedDir
// and recomputes the aggregate report.
func (d *Daemon) refresh() error {
	names, err := deviceNames(d.cfg.RunningDir)
	if err != nil {
		return fmt.Errorf("daemon: list devices: %w", err)
	}

	devices := make([]report.DeviceResult, 0, len(names))
	for _, name := range names {
		dr := report.DeviceResult{Name: name, Platform: d.cfg.Platform}

		running, err := d.parseFile(filepath.Join(d.cfg.RunningDir, name+".cfg"))
		if err != nil {
			dr.RemediateErr = fmt.Errorf("running config: %w", err)
			devices = append(devices, dr)
			continue
		}
		generated, err := d.parseFile(filepath.Join(d.cfg.GeneratedDir, name+".cfg"))
		if err != nil {
			dr.RemediateErr = fmt.Errorf("generated config: %w", err)
			devices = append(devices, dr)
			continue
		}
		dr.Running = running
		dr.Generated = generated
		devices = append(devices, dr)
	}

	rpt, err := report.Build(devices, d.driver)
	if err != nil {
		d.mu.Lock()
		d.lastErr = err
		d.mu.Unlock()
		return err
	}

	d.mu.Lock()
	d.report = rpt
	d.lastRefresh = time.Now()
	d.lastErr = nil
	d.mu.Unlock()

	d.log.Info("refreshed report", "devices", len(devices))
	return nil
}

func (d *Daemon) parseFile(path string) (*hconfig.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return hconfig.Parse(d.driver, string(data))
}

// deviceNames returns the sorted, extension-stripped basenames of every
// "*.cfg" file directly under dir.
func deviceNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cfg") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".cfg"))
	}
	sort.Strings(names)
	return names, nil
}

// Report returns the most recently computed report and the time it was
// computed. The returned report must not be mutated by the caller.
func (d *Daemon) Report() (*report.Report, time.Time) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.report, d.lastRefresh
}

func (d *Daemon) healthHandler(w http.ResponseWriter, r *http.Request) {
	d.mu.RLock()
	err := d.lastErr
	d.mu.RUnlock()

	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintf(w, "unhealthy: %v\n", err)
		return
	}
	fmt.Fprintln(w, "ok")
}

func (d *Daemon) reportHandler(w http.ResponseWriter, r *http.Request) {
	rpt, _ := d.Report()
	if rpt == nil {
		http.Error(w, "no report available yet", http.StatusServiceUnavailable)
		return
	}
	data, err := rpt.ExportJSON()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (d *Daemon) reportTableHandler(w http.ResponseWriter, r *http.Request) {
	rpt, _ := d.Report()
	if rpt == nil {
		http.Error(w, "no report available yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rpt.WriteTable(w, nil)
}
