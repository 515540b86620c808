package metric

import "github.com/prometheus/client_golang/prometheus"

// SizeFunc reports a current size at scrape time.
type SizeFunc func() int

// Collector exposes the restoration registry size, sampled on each scrape
// instead of being tracked on every insert and delete.
type Collector struct {
	size SizeFunc
	desc *prometheus.Desc
}

// NewCollector creates a collector reading the registry size from fn.
func NewCollector(fn SizeFunc) *Collector {
	return &Collector{
		size: fn,
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "registry", "entries"),
			"Restorable sessions currently held by the registry.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.size()))
}
