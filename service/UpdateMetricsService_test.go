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

package service

import (
	"sync"
	"testing"

	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockCountingUpdateRepository struct {
	mockUpdateRepository
	mutex   sync.Mutex
	queries []view.UpdateFilters
	byState []view.UpdateCountByStatus
}

func (m *mockCountingUpdateRepository) CountUpdates(filters view.UpdateFilters) (int, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.queries = append(m.queries, filters)
	if filters.Releases[0] == "F20" && *filters.Type == view.TypeSecurity {
		return 3, nil
	}
	if filters.Releases[0] == "F9" && *filters.Type == view.TypeBugfix {
		return 7, nil
	}
	return 0, nil
}

func (m *mockCountingUpdateRepository) CountUpdatesByReleaseAndStatus() ([]view.UpdateCountByStatus, error) {
	return m.byState, nil
}

func TestGetUpdateTypeMetrics(t *testing.T) {
	repo := &mockCountingUpdateRepository{}
	svc := NewUpdateMetricsService(repo, testReleases())

	result, err := svc.GetUpdateTypeMetrics()
	require.NoError(t, err)
	assert.Equal(t, [][]interface{}{{0, "F9"}, {1, "F20"}}, result.Ticks)
	require.Len(t, result.Data, 4)
	assert.Equal(t, view.UpdateTypeSeries{Label: "Bug fixes", Data: [][]int{{0, 7}, {1, 0}}}, result.Data[0])
	assert.Equal(t, view.UpdateTypeSeries{Label: "Security updates", Data: [][]int{{0, 0}, {1, 3}}}, result.Data[2])
	require.Len(t, repo.queries, 8)
	for _, q := range repo.queries {
		assert.Equal(t, view.StatusStable, *q.Status)
	}
}

func TestRefreshUpdateCounts(t *testing.T) {
	repo := &mockCountingUpdateRepository{byState: []view.UpdateCountByStatus{
		{Release: "F20", Status: "stable", Count: 12},
		{Release: "F20", Status: "testing", Count: 2},
	}}
	svc := NewUpdateMetricsService(repo, testReleases())

	require.NoError(t, svc.RefreshUpdateCounts())
	assert.Equal(t, float64(12), testutil.ToFloat64(metrics.UpdatesCount.WithLabelValues("F20", "stable")))
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.UpdatesCount.WithLabelValues("F20", "testing")))
}

func TestCreateJob_InvalidSchedule(t *testing.T) {
	svc := NewUpdateMetricsService(&mockCountingUpdateRepository{}, testReleases())
	assert.Error(t, svc.CreateJob("not a schedule"))
	assert.NoError(t, svc.CreateJob("*/5 * * * *"))
}
