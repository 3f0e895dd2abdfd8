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
	goctx "context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockReleaseService struct {
	releases   []view.Release
	candidates map[string][]string
	packages   []view.PackageSearchItem
	err        error
}

func (m *mockReleaseService) GetReleases() ([]view.Release, error) {
	return m.releases, m.err
}

func (m *mockReleaseService) GetLatestCandidates(ctx goctx.Context, packageName string) (*view.LatestCandidates, error) {
	if m.err != nil {
		return nil, m.err
	}
	builds, ok := m.candidates[packageName]
	if !ok {
		builds = []string{}
	}
	return &view.LatestCandidates{Builds: builds}, nil
}

func (m *mockReleaseService) SearchPackages(ctx goctx.Context, term string) ([]view.PackageSearchItem, error) {
	return m.packages, m.err
}

func TestGetLatestCandidates(t *testing.T) {
	svc := &mockReleaseService{candidates: map[string][]string{"bodhi": {"bodhi-2.0-1.fc20", "bodhi-2.0-1.fc19"}}}
	controller := NewReleaseController(svc)

	rec := httptest.NewRecorder()
	controller.GetLatestCandidates(rec, httptest.NewRequest(http.MethodGet, "/latest_candidates?package=bodhi", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var candidates view.LatestCandidates
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidates))
	assert.Equal(t, []string{"bodhi-2.0-1.fc20", "bodhi-2.0-1.fc19"}, candidates.Builds)

	rec = httptest.NewRecorder()
	controller.GetLatestCandidates(rec, httptest.NewRequest(http.MethodGet, "/latest_candidates", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &candidates))
	assert.Empty(t, candidates.Builds)
}

func TestReleaseController_UpstreamUnavailable(t *testing.T) {
	svc := &mockReleaseService{err: &exception.CustomError{
		Status:  http.StatusServiceUnavailable,
		Code:    exception.UpstreamUnavailable,
		Message: exception.UpstreamUnavailableMsg,
		Params:  map[string]interface{}{"service": "build system"},
	}}
	rec := httptest.NewRecorder()
	NewReleaseController(svc).SearchPackages(rec, httptest.NewRequest(http.MethodGet, "/search/packages?term=bod", nil))

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, exception.UpstreamUnavailable, decodeError(t, rec).Code)
}

func TestGetReleases(t *testing.T) {
	svc := &mockReleaseService{releases: []view.Release{{Name: "F20", Version: "20"}, {Name: "F19", Version: "19"}}}
	rec := httptest.NewRecorder()
	NewReleaseController(svc).GetReleases(rec, httptest.NewRequest(http.MethodGet, "/releases/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var releases []view.Release
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &releases))
	require.Len(t, releases, 2)
	assert.Equal(t, "F20", releases[0].Name)
}
