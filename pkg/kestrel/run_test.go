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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/kestrel/pkg/api"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/config"
	"github.com/caas-team/kestrel/pkg/db"
	"github.com/caas-team/kestrel/pkg/factory"
	"github.com/caas-team/kestrel/pkg/inventory"
	"github.com/caas-team/kestrel/pkg/report"
)

// newCheckMock builds a check stub returning the given result or error
func newCheckMock(name string, res checks.Result, err error) *checks.CheckMock {
	return &checks.CheckMock{
		NameFunc:  func() string { return name },
		TitleFunc: func() string { return name },
		RunFunc: func(ctx context.Context, srv inventory.Server) (checks.Result, error) {
			return res, err
		},
		SchemaFunc: func() (*openapi3.SchemaRef, error) {
			return checks.ResultSchema()
		},
	}
}

// testKestrel wires a kestrel with stubbed inventory and checks
func testKestrel(t *testing.T, servers []inventory.Server, checksFor func(srv inventory.Server) []checks.Check) *Kestrel {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Inventory.Path = "inventory.csv"
	cfg.Report.Output = filepath.Join(t.TempDir(), "report.html")

	renderer, err := report.NewRenderer("")
	require.NoError(t, err)

	return &Kestrel{
		cfg: cfg,
		loader: &inventory.LoaderMock{
			LoadFunc: func(ctx context.Context) ([]inventory.Server, error) {
				return servers, nil
			},
		},
		checksFor: checksFor,
		renderer:  renderer,
		db:        db.NewInMemory(),
		metrics:   newMetrics(),
	}
}

func TestKestrel_Generate_RoleDispatch(t *testing.T) {
	servers := []inventory.Server{
		{Name: "srv01", Roles: inventory.ParseRoles("windows", ";")},
		{Name: "srv02", Roles: inventory.Roles{}},
	}

	mock := newCheckMock("diskspace", checks.Result{
		Header: []string{"Disk"},
		Rows:   []checks.Row{{Columns: []string{"C:"}}},
	}, nil)

	k := testKestrel(t, servers, func(srv inventory.Server) []checks.Check {
		if srv.Roles.Has(inventory.RoleWindows) {
			return []checks.Check{mock}
		}
		return nil
	})

	rep, err := k.Generate(context.Background())
	require.NoError(t, err)

	// the check ran for the tagged server only
	require.Len(t, mock.RunCalls(), 1)
	assert.Equal(t, "srv01", mock.RunCalls()[0].Srv.Name)

	// both servers appear in the report, the untagged one without tables
	require.Len(t, rep.Groups, 2)
	assert.Len(t, rep.Groups[0].Tables, 1)
	assert.Empty(t, rep.Groups[1].Tables)
}

func TestKestrel_Generate_CheckFailure(t *testing.T) {
	servers := []inventory.Server{
		{Name: "srv01", Roles: inventory.ParseRoles("windows", ";")},
	}

	failing := newCheckMock("diskspace", checks.Result{}, errors.New("agent unreachable"))
	healthy := newCheckMock("reboot", checks.Result{
		Header: []string{"Pending reboot"},
		Rows:   []checks.Row{{Columns: []string{"no"}}},
	}, nil)

	k := testKestrel(t, servers, func(srv inventory.Server) []checks.Check {
		return []checks.Check{failing, healthy}
	})

	rep, err := k.Generate(context.Background())
	require.NoError(t, err)

	// the failure becomes an error row; the remaining checks still run
	require.Len(t, rep.Groups, 1)
	require.Len(t, rep.Groups[0].Tables, 2)

	errTable := rep.Groups[0].Tables[0]
	assert.Equal(t, []string{"Error"}, errTable.Header)
	require.Len(t, errTable.Rows, 1)
	assert.True(t, errTable.Rows[0].Danger)
	assert.Contains(t, errTable.Rows[0].Columns[0], "agent unreachable")

	assert.Len(t, healthy.RunCalls(), 1)

	// both outcomes are stored for the results api
	res, ok := k.db.GetResults("srv01")
	require.True(t, ok)
	assert.Len(t, res, 2)
}

func TestKestrel_Generate_LoaderFailure(t *testing.T) {
	k := testKestrel(t, nil, func(srv inventory.Server) []checks.Check { return nil })
	k.loader = &inventory.LoaderMock{
		LoadFunc: func(ctx context.Context) ([]inventory.Server, error) {
			return nil, errors.New("clone failed")
		},
	}

	_, err := k.Generate(context.Background())
	assert.Error(t, err)
}

func TestKestrel_Run(t *testing.T) {
	servers := []inventory.Server{
		{Name: "srv01", Location: "berlin", Roles: inventory.ParseRoles("windows", ";")},
	}

	mock := newCheckMock("diskspace", checks.Result{
		Header: []string{"Disk", "Size", "Free"},
		Rows:   []checks.Row{{Columns: []string{"C:", "100.0 GiB", "5.0 GiB"}, Danger: true}},
	}, nil)

	k := testKestrel(t, servers, func(srv inventory.Server) []checks.Check {
		return []checks.Check{mock}
	})

	rep, err := k.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, rep.DangerCount())

	// the report is written to the configured output file
	doc, err := os.ReadFile(k.cfg.Report.Output)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "Fleet health report")
	assert.Contains(t, string(doc), `class="danger"`)

	// and kept for the serve mode api
	stored, _, ok := k.db.GetReport()
	require.True(t, ok)
	assert.Equal(t, doc, stored)
}

func TestKestrel_Run_OverwritesPreviousReport(t *testing.T) {
	servers := []inventory.Server{
		{Name: "srv01", Roles: inventory.ParseRoles("windows", ";")},
	}

	mock := newCheckMock("diskspace", checks.Result{Header: []string{"Disk"}}, nil)
	k := testKestrel(t, servers, func(srv inventory.Server) []checks.Check {
		return []checks.Check{mock}
	})
	require.NoError(t, os.WriteFile(k.cfg.Report.Output, []byte("stale content"), 0o644))

	_, err := k.Run(context.Background())
	require.NoError(t, err)

	doc, err := os.ReadFile(k.cfg.Report.Output)
	require.NoError(t, err)
	assert.NotContains(t, string(doc), "stale content")
}

func TestKestrel_Openapi(t *testing.T) {
	mock := newCheckMock("diskspace", checks.Result{}, nil)
	k := testKestrel(t, nil, nil)
	k.checkSet = factory.CheckSet{inventory.RoleWindows: {mock}}

	doc, err := k.Openapi(context.Background())
	require.NoError(t, err)

	assert.Contains(t, doc.Components.Schemas, "diskspace")
	assert.Contains(t, doc.Paths, "/v1/results/{serverName}")
}

func TestKestrel_Openapi_IndependentDocuments(t *testing.T) {
	mock := newCheckMock("diskspace", checks.Result{}, nil)
	k := testKestrel(t, nil, nil)
	k.checkSet = factory.CheckSet{inventory.RoleWindows: {mock}}

	first, err := k.Openapi(context.Background())
	require.NoError(t, err)
	second, err := k.Openapi(context.Background())
	require.NoError(t, err)

	// mutating one served document must not leak into the next
	first.Paths["/extra"] = &openapi3.PathItem{}
	first.Components.Schemas["extra"] = nil

	assert.NotContains(t, second.Paths, "/extra")
	assert.NotContains(t, second.Components.Schemas, "extra")
}

func TestKestrel_Serve_ShutdownOnCancel(t *testing.T) {
	k := testKestrel(t, nil, func(srv inventory.Server) []checks.Check { return nil })
	k.registry = prometheus.NewRegistry()

	apiMock := &api.APIMock{
		RegisterRoutesFunc: func(ctx context.Context, routes ...api.Route) error { return nil },
		RunFunc: func(ctx context.Context) error {
			<-ctx.Done()
			return fmt.Errorf("failed serving API: %w", ctx.Err())
		},
		ShutdownFunc: func(ctx context.Context) error { return ctx.Err() },
	}
	k.api = apiMock

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := k.Serve(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	// the server is always shut down gracefully on cancellation
	assert.Len(t, apiMock.ShutdownCalls(), 1)
}

func TestKestrel_Openapi_SchemaFailure(t *testing.T) {
	broken := &checks.CheckMock{
		NameFunc: func() string { return "broken" },
		SchemaFunc: func() (*openapi3.SchemaRef, error) {
			return nil, errors.New("ups")
		},
	}
	k := testKestrel(t, nil, nil)
	k.checkSet = factory.CheckSet{inventory.RoleWindows: {broken}}

	_, err := k.Openapi(context.Background())
	assert.ErrorIs(t, err, ErrCreateOpenapiSchema)
}

func TestNew(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Inventory.Path = "inventory.csv"
	cfg.VCenter.Url = "https://vcenter.example.com"

	k, err := New(cfg)
	require.NoError(t, err)
	require.NotNil(t, k)

	// all configured roles have check instances
	assert.Len(t, k.checkSet.All(), 8)
}
