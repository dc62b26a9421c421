package reboot

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors for the pending reboot check
type metrics struct {
	pending *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the pending reboot check
func newMetrics() metrics {
	return metrics{
		pending: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kestrel_reboot_pending",
				Help: "Whether a reboot is pending on the server",
			},
			[]string{
				"server",
			},
		),
	}
}
