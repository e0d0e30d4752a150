package daemon

import "github.com/prometheus/client_golang/prometheus"

// daemonCollector implements prometheus.Collector, reading the daemon's
// most recently computed report on each scrape.
type daemonCollector struct {
	d *Daemon

	deviceLineCount    *prometheus.Desc
	deviceError        *prometheus.Desc
	deviceCount        *prometheus.Desc
	lastRefreshSeconds *prometheus.Desc
}

func newCollector(d *Daemon) *daemonCollector {
	return &daemonCollector{
		d: d,

		deviceLineCount: prometheus.NewDesc(
			"hierconfig_device_remediation_lines",
			"Number of remediation lines pending for a device.",
			[]string{"device", "platform"}, nil,
		),
		deviceError: prometheus.NewDesc(
			"hierconfig_device_error",
			"1 if the device's last refresh failed, 0 otherwise.",
			[]string{"device", "platform"}, nil,
		),
		deviceCount: prometheus.NewDesc(
			"hierconfig_devices_total",
			"Total number of devices in the most recent report.",
			nil, nil,
		),
		lastRefreshSeconds: prometheus.NewDesc(
			"hierconfig_last_refresh_timestamp_seconds",
			"Unix timestamp of the most recent successful refresh.",
			nil, nil,
		),
	}
}

func (c *daemonCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.deviceLineCount
	ch <- c.deviceError
	ch <- c.deviceCount
	ch <- c.lastRefreshSeconds
}

func (c *daemonCollector) Collect(ch chan<- prometheus.Metric) {
	rpt, lastRefresh := c.d.Report()
	if rpt == nil {
		return
	}

	ch <- prometheus.MustNewConstMetric(c.deviceCount, prometheus.GaugeValue, float64(len(rpt.Devices)))
	ch <- prometheus.MustNewConstMetric(c.lastRefreshSeconds, prometheus.GaugeValue, float64(lastRefresh.Unix()))

	for _, dr := range rpt.Devices {
		errVal := 0.0
		if dr.RemediateErr != nil {
			errVal = 1.0
		}
		ch <- prometheus.MustNewConstMetric(c.deviceError, prometheus.GaugeValue, errVal, dr.Name, dr.Platform)
		ch <- prometheus.MustNewConstMetric(c.deviceLineCount, prometheus.GaugeValue, float64(dr.LineCount), dr.Name, dr.Platform)
	}
}
