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
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/kestrel/internal/logger"
	"github.com/caas-team/kestrel/pkg/api"
)

type encoder interface {
	Encode(v any) error
}

const urlParamServerName = "serverName"

// routes returns the api routes of serve mode
func (k *Kestrel) routes() []api.Route {
	return []api.Route{
		{Path: "/", Method: http.MethodGet, Handler: k.handleReport},
		{Path: "/openapi", Method: http.MethodGet, Handler: k.handleOpenAPI},
		{Path: "/v1/results", Method: http.MethodGet, Handler: k.handleResults},
		{Path: fmt.Sprintf("/v1/results/{%s}", urlParamServerName), Method: http.MethodGet, Handler: k.handleServerResults},
		{Path: "/healthz", Method: http.MethodGet, Handler: okHandler},
		{Path: "/metrics", Method: "Handle", Handler: promhttp.HandlerFor(
			k.registry,
			promhttp.HandlerOpts{Registry: k.registry},
		).ServeHTTP},
	}
}

// handleReport serves the latest rendered report document
func (k *Kestrel) handleReport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	doc, _, ok := k.db.GetReport()
	if !ok {
		http.Error(w, "no report generated yet", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(doc); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

// handleResults serves the latest results of all servers
func (k *Kestrel) handleResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(k.db.ListResults()); err != nil {
		log.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleServerResults serves the latest results of one server
func (k *Kestrel) handleServerResults(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	name := chi.URLParam(r, urlParamServerName)
	if name == "" {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	res, ok := k.db.GetResults(name)
	if !ok {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		log.Error("Failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// handleOpenAPI serves the openapi document of the results api
func (k *Kestrel) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	oapi, err := k.Openapi(r.Context())
	if err != nil {
		log.Error("Failed to create openapi", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var marshaler encoder
	switch r.Header.Get("Accept") {
	case "application/json":
		marshaler = json.NewEncoder(w)
		w.Header().Add("Content-Type", "application/json")
	default:
		marshaler = yaml.NewEncoder(w)
		w.Header().Add("Content-Type", "text/yaml")
	}

	if err := marshaler.Encode(oapi); err != nil {
		log.Error("Failed to marshal openapi", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// okHandler serves a simple http ok
func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.FromContext(r.Context()).Error("Could not write response", "error", err)
	}
}
