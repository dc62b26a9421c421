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

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/caas-team/kestrel/internal/logger"
)

var ErrCreateOpenapiSchema = errors.New("failed to get schema for check")

var oapiBoilerplate = openapi3.T{
	OpenAPI: "3.0.0",
	Info: &openapi3.Info{
		Title:       "Kestrel Results API",
		Description: "Serves the check results collected for the fleet health report",
		Contact: &openapi3.Contact{
			URL:   "https://caas.telekom.de",
			Email: "caas-request@telekom.de",
			Name:  "CaaS Team",
		},
	},
	Servers: openapi3.Servers{},
}

// Openapi builds the openapi document for the results api.
// Every check contributes the schema of its result rows.
func (k *Kestrel) Openapi(ctx context.Context) (openapi3.T, error) {
	log := logger.FromContext(ctx)
	doc := oapiBoilerplate
	// fresh maps per call, the boilerplate is shared between requests
	doc.Paths = make(openapi3.Paths)
	doc.Extensions = make(map[string]any)
	doc.Components = &openapi3.Components{Schemas: make(openapi3.Schemas)}
	for _, c := range k.checkSet.All() {
		name := c.Name()
		ref, err := c.Schema()
		if err != nil {
			log.Error("Failed to get schema for check", "check", name, "error", err)
			return openapi3.T{}, fmt.Errorf("%w %s: %w", ErrCreateOpenapiSchema, name, err)
		}
		doc.Components.Schemas[name] = ref
	}

	bodyDesc := "Latest check results of the server, keyed by check name"
	doc.Paths[fmt.Sprintf("/v1/results/{%s}", urlParamServerName)] = &openapi3.PathItem{
		Description: "Per-server check results",
		Get: &openapi3.Operation{
			Description: "Returns the latest check results of one server",
			Tags:        []string{"Results"},
			Parameters: openapi3.Parameters{
				{
					Value: &openapi3.Parameter{
						Name:     urlParamServerName,
						In:       "path",
						Required: true,
						Schema:   openapi3.NewSchemaRef("", openapi3.NewStringSchema()),
					},
				},
			},
			Responses: openapi3.Responses{
				"200": &openapi3.ResponseRef{
					Value: &openapi3.Response{
						Description: &bodyDesc,
					},
				},
			},
		},
	}
	return doc, nil
}
