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

package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/service"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type mockUpdateMetricsService struct {
	service.UpdateMetricsService
	metrics *view.UpdateTypeMetrics
	calls   int
}

func (m *mockUpdateMetricsService) GetUpdateTypeMetrics() (*view.UpdateTypeMetrics, error) {
	m.calls++
	return m.metrics, nil
}

func testUpdateTypeMetrics() *view.UpdateTypeMetrics {
	return &view.UpdateTypeMetrics{
		Data: []view.UpdateTypeSeries{
			{Label: "Bug fixes", Data: [][]int{{0, 3}, {1, 5}}},
			{Label: "Security updates", Data: [][]int{{0, 1}, {1, 0}}},
		},
		Ticks: [][]interface{}{{0, "F19"}, {1, "F20"}},
	}
}

func TestGetUpdateTypeMetrics_Json(t *testing.T) {
	svc := &mockUpdateMetricsService{metrics: testUpdateTypeMetrics()}
	rec := httptest.NewRecorder()
	NewUpdateMetricsController(svc, service.NewExcelService()).GetUpdateTypeMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics/updates", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var metrics view.UpdateTypeMetrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &metrics))
	require.Len(t, metrics.Data, 2)
	assert.Equal(t, "Bug fixes", metrics.Data[0].Label)
	assert.Equal(t, [][]int{{0, 3}, {1, 5}}, metrics.Data[0].Data)
}

func TestGetUpdateTypeMetrics_Xlsx(t *testing.T) {
	svc := &mockUpdateMetricsService{metrics: testUpdateTypeMetrics()}
	rec := httptest.NewRecorder()
	NewUpdateMetricsController(svc, service.NewExcelService()).GetUpdateTypeMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics/updates?format=xlsx", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "update_metrics_")
	report, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer report.Close()
	rows, err := report.GetRows(view.UpdateMetricsSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{view.ReleaseColumnName, "Bug fixes", "Security updates"}, rows[0])
	assert.Equal(t, []string{"F20", "5", "0"}, rows[2])
}

func TestGetUpdateTypeMetrics_UnknownFormat(t *testing.T) {
	svc := &mockUpdateMetricsService{metrics: testUpdateTypeMetrics()}
	rec := httptest.NewRecorder()
	NewUpdateMetricsController(svc, service.NewExcelService()).GetUpdateTypeMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics/updates?format=csv", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	customErr := decodeError(t, rec)
	assert.Equal(t, exception.InvalidParameterValue, customErr.Code)
	assert.Equal(t, "format", customErr.Field)
	assert.Equal(t, 0, svc.calls)
}
