package services

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors for the service state check
type metrics struct {
	up *prometheus.GaugeVec
}

// newMetrics initializes metric collectors of one service state check instance.
// The instance name becomes a const label so several instances can share a registry.
func newMetrics(name string) metrics {
	return metrics{
		up: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name:        "kestrel_service_up",
				Help:        "Whether a monitored service is in its expected state",
				ConstLabels: prometheus.Labels{"group": name},
			},
			[]string{
				"server",
				"service",
			},
		),
	}
}
