package diskspace

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors for the disk space check
type metrics struct {
	freeBytes *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the disk space check
func newMetrics() metrics {
	return metrics{
		freeBytes: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kestrel_disk_free_bytes",
				Help: "Free disk space per server and disk",
			},
			[]string{
				"server",
				"disk",
			},
		),
	}
}
