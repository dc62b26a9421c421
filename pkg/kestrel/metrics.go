// kestrel
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package kestrel

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics contains the metric collectors of the driver
type metrics struct {
	runsTotal   prometheus.Counter
	runDuration prometheus.Gauge
	checksTotal *prometheus.CounterVec
	dangerRows  *prometheus.GaugeVec
}

// newMetrics initializes the driver metric collectors
func newMetrics() metrics {
	return metrics{
		runsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "kestrel_runs_total",
				Help: "Completed report generation runs",
			},
		),
		runDuration: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "kestrel_run_duration_seconds",
				Help: "Duration of the last report generation run",
			},
		),
		checksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kestrel_checks_total",
				Help: "Executed checks by name and status",
			},
			[]string{
				"check",
				"status",
			},
		),
		dangerRows: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "kestrel_danger_rows",
				Help: "Danger rows of the last run per server and check",
			},
			[]string{
				"server",
				"check",
			},
		),
	}
}

// collectors returns all driver metric collectors
func (m metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.runsTotal,
		m.runDuration,
		m.checksTotal,
		m.dangerRows,
	}
}
