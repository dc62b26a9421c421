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

package config

import (
	"time"

	"github.com/caas-team/kestrel/pkg/agent"
	"github.com/caas-team/kestrel/pkg/checks"
	"github.com/caas-team/kestrel/pkg/checks/diskspace"
	"github.com/caas-team/kestrel/pkg/checks/filesize"
	"github.com/caas-team/kestrel/pkg/checks/services"
	"github.com/caas-team/kestrel/pkg/inventory"
	"github.com/caas-team/kestrel/pkg/vcenter"
)

// inventory loader types
const (
	LoaderFile = "file"
	LoaderGit  = "git"
)

// Config is the runtime configuration of kestrel
type Config struct {
	Inventory InventoryConfig `yaml:"inventory"`
	Report    ReportConfig    `yaml:"report"`
	Agent     agent.Config    `yaml:"agent"`
	VCenter   vcenter.Config  `yaml:"vcenter"`
	Checks    ChecksConfig    `yaml:"checks"`
	Api       ApiConfig       `yaml:"api"`
}

// InventoryConfig selects the inventory source
type InventoryConfig struct {
	// Type is the loader type, file or git
	Type string `yaml:"type"`
	// Path is the location of the inventory csv; for the git loader
	// it is the path within the repository
	Path string `yaml:"path"`
	// Git configures the git loader
	Git inventory.GitConfig `yaml:"git"`
}

// ReportConfig configures the rendered report
type ReportConfig struct {
	// Title is the headline of the report document
	Title string `yaml:"title"`
	// Output is the file the report is written to
	Output string `yaml:"output"`
	// TemplateDir holds table.html, group.html and report.html;
	// when empty the embedded templates are used
	TemplateDir string `yaml:"templateDir"`
}

// ApiConfig is the configuration for serve mode
type ApiConfig struct {
	// ListeningAddress is the address the server is listening on
	ListeningAddress string `yaml:"address"`
	// Interval is the time between report generations in serve mode
	Interval time.Duration `yaml:"interval"`
}

// ChecksConfig holds the configuration of all checks.
// The services and filesize maps are keyed by the role tag
// that enables the instance.
type ChecksConfig struct {
	DiskSpace diskspace.Config           `yaml:"diskspace"`
	Services  map[string]services.Config `yaml:"services"`
	FileSize  map[string]filesize.Config `yaml:"filesize"`
}

// NewConfig creates a config populated with the default values
func NewConfig() *Config {
	return &Config{
		Inventory: InventoryConfig{
			Type: LoaderFile,
		},
		Report: ReportConfig{
			Title:  "Fleet health report",
			Output: "report.html",
		},
		Agent: agent.Config{
			Scheme:  "http",
			Port:    8090,
			Timeout: 30 * time.Second,
			Retry:   checks.DefaultRetry,
		},
		VCenter: vcenter.Config{
			Timeout: 30 * time.Second,
		},
		Checks: ChecksConfig{
			DiskSpace: diskspace.Config{
				Threshold: diskspace.DefaultThreshold,
			},
			Services: map[string]services.Config{
				inventory.RoleVMwareServices:  {Prefix: "VMware", Title: "VMware services"},
				inventory.RoleMSSQLServices:   {Prefix: "SQL Server", Title: "SQL Server services"},
				inventory.RoleMSTMGServices:   {Prefix: "Microsoft Forefront TMG", Title: "Forefront TMG services"},
				inventory.RoleSurfCopServices: {Prefix: "SurfCop", Title: "SurfCop services"},
			},
			FileSize: map[string]filesize.Config{
				inventory.RolePILocalDB: {
					Path:      `C:\PI\dat\piarcmem.dat`,
					Threshold: filesize.DefaultThreshold,
					Title:     "PI local database",
				},
			},
		},
		Api: ApiConfig{
			ListeningAddress: ":8080",
			Interval:         5 * time.Minute,
		},
	}
}
