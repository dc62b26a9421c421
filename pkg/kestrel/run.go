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
	"context"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/agent"
	"github.com/caas-team/kestrel/pkg/api"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/config"
	"github.com/caas-team/kestrel/pkg/db"
	"github.com/caas-team/kestrel/pkg/factory"
	"github.com/caas-team/kestrel/pkg/inventory"
	"github.com/caas-team/kestrel/pkg/report"
	"github.com/caas-team/kestrel/pkg/vcenter"
)

// Kestrel is the driver: it loads the inventory, dispatches the checks
// each server's role tags enable, and assembles the report.
type Kestrel struct {
	cfg      *config.Config
	loader   inventory.Loader
	checkSet factory.CheckSet
	// checksFor selects the checks for one server; overridable in tests
	checksFor func(srv inventory.Server) []checks.Check
	renderer  *report.Renderer
	db        db.DB
	registry  *prometheus.Registry
	metrics   metrics
	api       api.API
}

// New creates a new kestrel from the given config
func New(cfg *config.Config) (*Kestrel, error) {
	renderer, err := report.NewRenderer(cfg.Report.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load report templates: %w", err)
	}

	providers := factory.Providers{Agent: agent.NewClient(cfg.Agent)}
	if cfg.VCenter.Url != "" {
		providers.VCenter = vcenter.NewClient(cfg.VCenter)
	}
	set := factory.NewCheckSet(providers, cfg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := newMetrics()
	registry.MustRegister(m.collectors()...)
	for _, c := range set.All() {
		registry.MustRegister(c.GetMetricCollectors()...)
	}

	k := &Kestrel{
		cfg:       cfg,
		loader:    newLoader(cfg),
		checkSet:  set,
		checksFor: set.ForServer,
		renderer:  renderer,
		db:        db.NewInMemory(),
		registry:  registry,
		metrics:   m,
		api:       api.New(cfg.Api),
	}
	return k, nil
}

// newLoader selects the inventory loader from the config
func newLoader(cfg *config.Config) inventory.Loader {
	switch cfg.Inventory.Type {
	case config.LoaderGit:
		return inventory.NewGitLoader(cfg.Inventory.Git, cfg.Inventory.Path)
	default:
		return inventory.NewFileLoader(cfg.Inventory.Path)
	}
}

// Generate loads the inventory, runs the applicable checks per server
// and assembles the report model. A failing check yields an error row
// instead of aborting the server's remaining checks.
func (k *Kestrel) Generate(ctx context.Context) (report.Report, error) {
	log := logger.FromContext(ctx)

	servers, err := k.loader.Load(ctx)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to load inventory: %w", err)
	}
	log.Info("Generating report", "servers", len(servers))

	rep := report.Report{
		Title: k.cfg.Report.Title,
		Date:  time.Now(),
	}
	for _, srv := range servers {
		group := report.Group{Server: srv}
		for _, c := range k.checksFor(srv) {
			res, err := c.Run(ctx, srv)
			if err != nil {
				log.ErrorContext(ctx, "Check failed", "check", c.Name(), "server", srv.Name, "error", err)
				k.metrics.checksTotal.WithLabelValues(c.Name(), "error").Inc()
				res = checks.ErrorResult(err)
			} else {
				k.metrics.checksTotal.WithLabelValues(c.Name(), "ok").Inc()
			}

			k.db.SaveResult(srv.Name, c.Name(), res)
			k.metrics.dangerRows.WithLabelValues(srv.Name, c.Name()).Set(float64(res.DangerCount()))
			group.Tables = append(group.Tables, report.Table{
				Title:  c.Title(),
				Header: res.Header,
				Rows:   res.Rows,
			})
		}
		rep.Groups = append(rep.Groups, group)
	}
	return rep, nil
}

// Run generates one report and writes it to the configured output file,
// overwriting any existing content.
func (k *Kestrel) Run(ctx context.Context) (report.Report, error) {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)
	start := time.Now()

	rep, err := k.Generate(ctx)
	if err != nil {
		return report.Report{}, err
	}

	doc, err := k.renderer.Render(rep)
	if err != nil {
		return report.Report{}, fmt.Errorf("failed to render report: %w", err)
	}
	k.db.SaveReport(doc, rep.Date)

	if err := os.WriteFile(k.cfg.Report.Output, doc, 0o644); err != nil { //nolint:gosec // report is world-readable on purpose
		return report.Report{}, fmt.Errorf("failed to write report to %q: %w", k.cfg.Report.Output, err)
	}

	k.metrics.runsTotal.Inc()
	k.metrics.runDuration.Set(time.Since(start).Seconds())
	log.Info("Report written", "output", k.cfg.Report.Output, "servers", len(rep.Groups), "danger", rep.DangerCount())
	return rep, nil
}

// Serve runs periodic report generation and the api.
// Blocks until the context is done.
func (k *Kestrel) Serve(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	if err := k.api.RegisterRoutes(ctx, k.routes()...); err != nil {
		return fmt.Errorf("failed to register routes: %w", err)
	}

	cErr := make(chan error, 1)
	go func() {
		cErr <- k.api.Run(ctx)
	}()

	if _, err := k.Run(ctx); err != nil {
		log.ErrorContext(ctx, "Report generation failed", "error", err)
	}

	tick := time.NewTicker(k.cfg.Api.Interval)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return k.api.Shutdown(ctx)
		case err := <-cErr:
			// on cancellation the api run loop errors out as well
			if ctx.Err() != nil {
				return k.api.Shutdown(ctx)
			}
			return err
		case <-tick.C:
			if _, err := k.Run(ctx); err != nil {
				log.ErrorContext(ctx, "Report generation failed", "error", err)
			}
		}
	}
}
