// Package report aggregates per-device remediation results into one
// multi-device document: line counts, a merged configuration tree, and
// both JSON and human-readable table exports.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/psaab/hierconfig/pkg/hconfig"
)

// DeviceResult is one device's computed remediation.
type DeviceResult struct {
	Name          string
	Platform      string
	Running       *hconfig.Node
	Generated     *hconfig.Node
	Remediation   *hconfig.Node
	RemediateErr  error
	RemediateText string
	LineCount     int
}

// Report is the aggregated result across every device.
type Report struct {
	Devices []DeviceResult
	Merged  *hconfig.Node
}

// Build computes the remediation for each device and merges every
// remediation tree into one aggregate, tagging each merged subtree with
// the originating device's name so report consumers can filter by
// device via pkg/hconfig's tag machinery.
func Build(devices []DeviceResult, mergedDriver *hconfig.Driver) (*Report, error) {
	rpt := &Report{Merged: hconfig.NewRoot(mergedDriver)}

	for i := range devices {
		d := &devices[i]
		if d.RemediateErr != nil {
			rpt.Devices = append(rpt.Devices, *d)
			continue
		}
		rem := hconfig.Remediate(mergedDriver, d.Running, d.Generated)
		d.Remediation = rem
		d.RemediateText = hconfig.Render(mergedDriver, rem)
		d.LineCount = len(rem.AllChildren())

		for _, n := range rem.AllChildren() {
			n.AddTag(d.Name)
		}
		instance := &hconfig.Instance{ID: i + 1}
		if err := hconfig.Merge(rpt.Merged, rem, instance); err != nil {
			return nil, fmt.Errorf("report: merge %s: %w", d.Name, err)
		}
		rpt.Devices = append(rpt.Devices, *d)
	}

	sort.Slice(rpt.Devices, func(i, j int) bool { return rpt.Devices[i].Name < rpt.Devices[j].Name })
	return rpt, nil
}

// deviceSummary is the JSON shape of one device's row in ExportJSON.
type deviceSummary struct {
	Name        string `json:"name"`
	Platform    string `json:"platform"`
	LineCount   int    `json:"line_count"`
	Remediation string `json:"remediation,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ExportJSON renders the report as JSON, mirroring the shape of
// configstore.Store's ExportJSON precedent.
func (r *Report) ExportJSON() ([]byte, error) {
	summaries := make([]deviceSummary, 0, len(r.Devices))
	for _, d := range r.Devices {
		s := deviceSummary{Name: d.Name, Platform: d.Platform, LineCount: d.LineCount}
		if d.RemediateErr != nil {
			s.Error = d.RemediateErr.Error()
		} else {
			s.Remediation = d.RemediateText
		}
		summaries = append(summaries, s)
	}
	return json.MarshalIndent(summaries, "", "  ")
}

// WriteTable prints a human-readable summary table to w. Colored output
// is used only when out is attached to a terminal, matching the pack's
// only precedent for color+isatty gating.
func (r *Report) WriteTable(w io.Writer, out *os.File) {
	useColor := out != nil && isatty.IsTerminal(out.Fd())

	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)

	colorize := func(c *color.Color, s string) string {
		if !useColor {
			return s
		}
		return c.Sprint(s)
	}

	fmt.Fprintf(w, "%-24s %-16s %8s\n", "DEVICE", "PLATFORM", "CHANGES")
	for _, d := range r.Devices {
		if d.RemediateErr != nil {
			fmt.Fprintf(w, "%-24s %-16s %8s\n", d.Name, d.Platform, colorize(red, "ERROR"))
			continue
		}
		status := fmt.Sprintf("%d", d.LineCount)
		if d.LineCount == 0 {
			status = colorize(green, "in sync")
		}
		fmt.Fprintf(w, "%-24s %-16s %8s\n", d.Name, d.Platform, status)
	}
}
