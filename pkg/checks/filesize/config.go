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

package filesize

import (
	"github.com/caas-team/kestrel/pkg/checks"
)

// DefaultThreshold is the file size above which a file is flagged
const DefaultThreshold = 5 * checks.GiB

// Config defines the configuration parameters for one file size check instance
type Config struct {
	// Path is the file to watch on the server
	Path string `json:"path" yaml:"path" mapstructure:"path"`
	// Threshold is the maximum size in bytes before the file is flagged
	Threshold uint64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
	// Title overrides the report heading of the instance
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Path == "" {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "path", Reason: "path must not be empty"}
	}
	if c.Threshold == 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "threshold", Reason: "threshold must be above 0"}
	}
	return nil
}
