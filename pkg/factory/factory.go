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

// Package factory builds the check instances from the configuration
// and maps role tags to the checks they enable.
package factory

import (
	"sort"

	"github.com/caas-team/kestrel/pkg/agent"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/checks/diskspace"
	"github.com/caas-team/kestrel/pkg/checks/filesize"
	"github.com/caas-team/kestrel/pkg/checks/reboot"
	"github.com/caas-team/kestrel/pkg/checks/services"
	"github.com/caas-team/kestrel/pkg/checks/valerts"
	"github.com/caas-team/kestrel/pkg/config"
	"github.com/caas-team/kestrel/pkg/inventory"
	"github.com/caas-team/kestrel/pkg/vcenter"
)

// Providers bundles the remote collaborators the checks query
type Providers struct {
	Agent   *agent.Client
	VCenter *vcenter.Client
}

// CheckSet holds the prebuilt check instances keyed by the role tag
// that enables them. Instances are shared across servers so their
// metric collectors register once.
type CheckSet map[string][]checks.Check

// canonicalOrder fixes the order role checks run in per server
var canonicalOrder = []string{
	inventory.RoleWindows,
	inventory.RoleVMwareServices,
	inventory.RoleMSSQLServices,
	inventory.RoleMSTMGServices,
	inventory.RoleSurfCopServices,
	inventory.RolePILocalDB,
	inventory.RoleVCenterAlerts,
}

// NewCheckSet creates all check instances defined by the config
func NewCheckSet(p Providers, cfg *config.Config) CheckSet {
	set := CheckSet{}

	set[inventory.RoleWindows] = []checks.Check{
		diskspace.NewCheck(p.Agent, cfg.Checks.DiskSpace),
		reboot.NewCheck(p.Agent),
	}

	for role, sc := range cfg.Checks.Services {
		set[role] = append(set[role], services.NewCheck(role, p.Agent, sc))
	}
	for role, fc := range cfg.Checks.FileSize {
		set[role] = append(set[role], filesize.NewCheck(role, p.Agent, fc))
	}

	if p.VCenter != nil {
		set[inventory.RoleVCenterAlerts] = []checks.Check{
			valerts.NewCheck(p.VCenter),
		}
	}
	return set
}

// Order returns the role tags of the set in their dispatch order:
// the canonical roles first, config-defined extras sorted behind them.
func (s CheckSet) Order() []string {
	seen := map[string]bool{}
	var order []string
	for _, role := range canonicalOrder {
		if _, ok := s[role]; ok {
			order = append(order, role)
			seen[role] = true
		}
	}

	var extra []string
	for role := range s {
		if !seen[role] {
			extra = append(extra, role)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

// ForServer returns the checks applicable to the server, in dispatch order.
// A server lacking a role tag never gets the corresponding checks.
func (s CheckSet) ForServer(srv inventory.Server) []checks.Check {
	var cks []checks.Check
	for _, role := range s.Order() {
		if srv.Roles.Has(role) {
			cks = append(cks, s[role]...)
		}
	}
	return cks
}

// All returns every check instance of the set, in dispatch order
func (s CheckSet) All() []checks.Check {
	var cks []checks.Check
	for _, role := range s.Order() {
		cks = append(cks, s[role]...)
	}
	return cks
}
