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

package services

import (
	"github.com/caas-team/kestrel/pkg/checks"
)

// Config defines the configuration parameters for one service state check instance
type Config struct {
	// Prefix selects services by the beginning of their display name
	Prefix string `json:"prefix" yaml:"prefix" mapstructure:"prefix"`
	// Title overrides the report heading of the instance
	Title string `json:"title,omitempty" yaml:"title,omitempty" mapstructure:"title"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Prefix == "" {
		return checks.ErrInvalidConfig{CheckName: CheckName, Field: "prefix", Reason: "prefix must not be empty"}
	}
	return nil
}
