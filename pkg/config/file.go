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
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/kestrel/internal/logger"
)

// LoadFile reads a yaml config file and merges it over the current values
func (c *Config) LoadFile(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)
	log.Info("Reading config from file", "file", path)

	b, err := os.ReadFile(path)
	if err != nil {
		log.Error("Failed to read config file", "path", path, "error", err)
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		log.Error("Failed to parse config file", "error", err)
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}
