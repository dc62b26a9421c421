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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caas-team/kestrel/internal/logger"
)

// rolesSeparator separates role tags within the roles column
const rolesSeparator = ";"

var _ Loader = (*FileLoader)(nil)

// FileLoader reads the inventory from a local csv file with the
// columns name, location, description and roles.
type FileLoader struct {
	path string
}

// NewFileLoader creates a file loader for the given path
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{path: path}
}

// Load reads and parses the inventory file
func (f *FileLoader) Load(ctx context.Context) ([]Server, error) {
	log := logger.FromContext(ctx)
	log.Info("Reading inventory from file", "file", f.path)

	file, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open inventory file: %w", err)
	}
	defer func() {
		if cErr := file.Close(); cErr != nil {
			log.Error("Failed to close inventory file", "error", cErr)
		}
	}()

	servers, err := parseCSV(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse inventory file %q: %w", f.path, err)
	}
	return servers, nil
}

// parseCSV parses inventory records from r.
// The first line must be the header name,location,description,roles.
func parseCSV(r io.Reader) ([]Server, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !strings.EqualFold(header[0], "name") {
		return nil, fmt.Errorf("unexpected header %q, want columns name,location,description,roles", strings.Join(header, ","))
	}

	var servers []Server
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		s := Server{
			Name:        strings.TrimSpace(rec[0]),
			Location:    strings.TrimSpace(rec[1]),
			Description: strings.TrimSpace(rec[2]),
			Roles:       ParseRoles(rec[3], rolesSeparator),
		}
		if s.Name == "" {
			continue
		}
		servers = append(servers, s)
	}
	return servers, nil
}
