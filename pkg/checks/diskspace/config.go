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

package diskspace

import (
	"github.com/caas-team/kestrel/pkg/checks"
)

// DefaultThreshold is the free space below which a disk is flagged
const DefaultThreshold = 10 * checks.GiB

// Config defines the configuration parameters for the disk space check
type Config struct {
	// Threshold is the minimum free space in bytes before a disk is flagged
	Threshold uint64 `json:"threshold" yaml:"threshold" mapstructure:"threshold"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Threshold == 0 {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "threshold", Reason: "threshold must be above 0"}
	}
	return nil
}
