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

package inventory

import (
	"context"
	"sort"
	"strings"
)

// Role tags determining which checks apply to a server
const (
	RoleWindows         = "windows"
	RoleVMwareServices  = "vmware_services"
	RoleMSSQLServices   = "mssql_services"
	RoleMSTMGServices   = "mstmg_services"
	RoleSurfCopServices = "surfcop_services"
	RolePILocalDB       = "pi_local_db"
	RoleVCenterAlerts   = "vcenter_alerts"
)

// Server is one entry of the fleet inventory.
// It is read once at startup and immutable thereafter.
type Server struct {
	// Name is the host name the checks connect to
	Name string `json:"name"`
	// Location is the site or datacenter the server lives in
	Location string `json:"location"`
	// Description is a free-form operator note
	Description string `json:"description"`
	// Roles holds the role tags of the server
	Roles Roles `json:"roles"`
}

// Roles is a set of role tags
type Roles map[string]struct{}

// Has reports whether the role tag is part of the set
func (r Roles) Has(role string) bool {
	_, ok := r[strings.ToLower(strings.TrimSpace(role))]
	return ok
}

// List returns the role tags in lexical order
func (r Roles) List() []string {
	roles := make([]string, 0, len(r))
	for role := range r {
		roles = append(roles, role)
	}
	sort.Strings(roles)
	return roles
}

// ParseRoles parses a separated list of role tags into a set.
// Tags are normalized to lower case; empty entries are dropped.
func ParseRoles(s, sep string) Roles {
	roles := Roles{}
	for _, role := range strings.Split(s, sep) {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		roles[role] = struct{}{}
	}
	return roles
}

// Loader reads the server inventory from its source
//
//go:generate moq -out loader_moq.go . Loader
type Loader interface {
	// Load fetches the inventory once
	Load(ctx context.Context) ([]Server, error)
}
