package daemon_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/psaab/hierconfig/pkg/daemon"
	"github.com/psaab/hierconfig/pkg/platform"
)

func writeConfig(t *testing.T, dir, name, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".cfg"), []byte(text), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestDaemon(t *testing.T) *daemon.Daemon {
	t.Helper()
	runningDir := t.TempDir()
	generatedDir := t.TempDir()

	writeConfig(t, runningDir, "router1", "hostname old\n")
	writeConfig(t, generatedDir, "router1", "hostname new\n")
	writeConfig(t, runningDir, "router2", "hostname same\n")
	writeConfig(t, generatedDir, "router2", "hostname same\n")

	d, err := daemon.New(daemon.Config{
		RunningDir:   runningDir,
		GeneratedDir: generatedDir,
		Platform:     platform.CiscoIOS,
		ListenAddr:   "127.0.0.1:0",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Refresh(); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	return d
}

func TestNewRejectsUnknownPlatform(t *testing.T) {
	_, err := daemon.New(daemon.Config{
		RunningDir:   t.TempDir(),
		GeneratedDir: t.TempDir(),
		Platform:     "not-a-real-platform",
	})
	if err == nil {
		t.Fatalf("expected error for unknown platform")
	}
}

func TestReportNilBeforeFirstRefresh(t *testing.T) {
	d, err := daemon.New(daemon.Config{
		RunningDir:   t.TempDir(),
		GeneratedDir: t.TempDir(),
		Platform:     platform.CiscoIOS,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rpt, ts := d.Report()
	if rpt != nil {
		t.Fatalf("expected nil report before any refresh, got %v", rpt)
	}
	if !ts.IsZero() {
		t.Fatalf("expected zero refresh time before any refresh")
	}
}

func TestRefreshPopulatesReport(t *testing.T) {
	d := newTestDaemon(t)
	rpt, ts := d.Report()
	if rpt == nil {
		t.Fatalf("expected non-nil report after Refresh")
	}
	if ts.IsZero() {
		t.Fatalf("expected non-zero refresh time after Refresh")
	}
	if len(rpt.Devices) != 2 {
		t.Fatalf("expected 2 devices, got %d", len(rpt.Devices))
	}
}

func TestHealthEndpointOK(t *testing.T) {
	d := newTestDaemon(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	d.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestReportEndpointServesJSON(t *testing.T) {
	d := newTestDaemon(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	d.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "router1") {
		t.Errorf("expected report JSON to mention router1, got: %s", rec.Body.String())
	}
}

func TestReportTableEndpoint(t *testing.T) {
	d := newTestDaemon(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report/table", nil)
	d.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "router2") {
		t.Errorf("expected table output to mention router2, got: %s", rec.Body.String())
	}
}

func TestMetricsEndpointExposesDeviceLines(t *testing.T) {
	d := newTestDaemon(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	d.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "hierconfig_device_remediation_lines") {
		t.Errorf("expected metrics output to include hierconfig_device_remediation_lines, got: %s", rec.Body.String())
	}
}

func TestReportEndpointBeforeRefreshReturns503(t *testing.T) {
	d, err := daemon.New(daemon.Config{
		RunningDir:   t.TempDir(),
		GeneratedDir: t.TempDir(),
		Platform:     platform.CiscoIOS,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)
	d.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
