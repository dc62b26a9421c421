package valerts

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors for the vCenter alarm check
type metrics struct {
	alarms *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of the vCenter alarm check
func newMetrics() metrics {
	return metrics{
		alarms: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kestrel_vcenter_alarms",
				Help: "Triggered vCenter alarms by acknowledgement state",
			},
			[]string{
				"acknowledged",
			},
		),
	}
}
