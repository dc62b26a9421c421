package filesize

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors for the file size check
type metrics struct {
	sizeBytes *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of one file size check instance.
// The instance name becomes a const label so several instances can share a registry.
func newMetrics(name string) metrics {
	return metrics{
		sizeBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "kestrel_file_size_bytes",
				Help:        "Size of watched files per server",
				ConstLabels: prometheus.Labels{"group": name},
			},
			[]string{
				"server",
				"path",
			},
		),
	}
}
