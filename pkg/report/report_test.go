package report_test

import (
	"strings"
	"testing"

	"github.com/psaab/hierconfig/pkg/hconfig"
	"github.com/psaab/hierconfig/pkg/platform"
	"github.com/psaab/hierconfig/pkg/report"
)

func mustParse(t *testing.T, d *hconfig.Driver, text string) *hconfig.Node {
	t.Helper()
	root, err := hconfig.Parse(d, text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return root
}

func TestBuildAggregatesMultipleDevices(t *testing.T) {
	d, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("platform.Get: %v", err)
	}

	devices := []report.DeviceResult{
		{
			Name:      "router1",
			Platform:  platform.CiscoIOS,
			Running:   mustParse(t, d, "hostname old1\n"),
			Generated: mustParse(t, d, "hostname new1\n"),
		},
		{
			Name:      "router2",
			Platform:  platform.CiscoIOS,
			Running:   mustParse(t, d, ""),
			Generated: mustParse(t, d, "vlan 10\n name eng\n"),
		},
	}

	rpt, err := report.Build(devices, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(rpt.Devices) != 2 {
		t.Fatalf("expected 2 device results, got %d", len(rpt.Devices))
	}
	for _, dr := range rpt.Devices {
		if dr.LineCount == 0 {
			t.Errorf("expected %s to have nonzero remediation, got 0", dr.Name)
		}
	}
	if len(rpt.Merged.AllChildren()) == 0 {
		t.Fatalf("expected merged tree to contain nodes from both devices")
	}
}

func TestBuildReportsZeroLinesForInSyncDevice(t *testing.T) {
	d, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("platform.Get: %v", err)
	}
	devices := []report.DeviceResult{
		{
			Name:      "router1",
			Platform:  platform.CiscoIOS,
			Running:   mustParse(t, d, "hostname same\n"),
			Generated: mustParse(t, d, "hostname same\n"),
		},
	}
	rpt, err := report.Build(devices, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if rpt.Devices[0].LineCount != 0 {
		t.Errorf("expected in-sync device to have 0 remediation lines, got %d", rpt.Devices[0].LineCount)
	}
}

func TestExportJSON(t *testing.T) {
	d, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("platform.Get: %v", err)
	}
	devices := []report.DeviceResult{
		{
			Name:      "router1",
			Platform:  platform.CiscoIOS,
			Running:   mustParse(t, d, ""),
			Generated: mustParse(t, d, "hostname r1\n"),
		},
	}
	rpt, err := report.Build(devices, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	data, err := rpt.ExportJSON()
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if !strings.Contains(string(data), "router1") {
		t.Errorf("expected exported JSON to mention device name, got: %s", data)
	}
}

func TestWriteTable(t *testing.T) {
	d, err := platform.Get(platform.CiscoIOS)
	if err != nil {
		t.Fatalf("platform.Get: %v", err)
	}
	devices := []report.DeviceResult{
		{
			Name:      "router1",
			Platform:  platform.CiscoIOS,
			Running:   mustParse(t, d, ""),
			Generated: mustParse(t, d, "hostname r1\n"),
		},
	}
	rpt, err := report.Build(devices, d)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var sb strings.Builder
	rpt.WriteTable(&sb, nil)
	if !strings.Contains(sb.String(), "router1") {
		t.Errorf("expected table output to mention device name, got: %s", sb.String())
	}
}
