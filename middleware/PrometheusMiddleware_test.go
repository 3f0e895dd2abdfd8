// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package midldleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMiddleware_CountsByRouteTemplate(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/users/{name}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	r.Use(PrometheusMiddleware)

	before := testutil.ToFloat64(metrics.TotalRequests.WithLabelValues("/users/{name}", "404", http.MethodGet))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/guest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	after := testutil.ToFloat64(metrics.TotalRequests.WithLabelValues("/users/{name}", "404", http.MethodGet))
	assert.Equal(t, before+1, after)
}
