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
	goctx "context"
	"testing"

	"github.com/fedora-infra/bodhi-service/client"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBuildSystemClient struct {
	client.BuildSystemClient
	ListTaggedMultiFunc func(queries []client.TaggedQuery) ([][]view.BuildInfo, error)
	packages            []view.BuildSystemPackage
}

func (m mockBuildSystemClient) ListTaggedMulti(ctx goctx.Context, queries []client.TaggedQuery) ([][]view.BuildInfo, error) {
	return m.ListTaggedMultiFunc(queries)
}

func (m mockBuildSystemClient) ListPackages(ctx goctx.Context) ([]view.BuildSystemPackage, error) {
	return m.packages, nil
}

type mockAllReleasesRepository struct {
	mockReleaseRepository
}

func (m mockAllReleasesRepository) GetReleases() ([]entity.ReleaseEntity, error) {
	result := make([]entity.ReleaseEntity, len(m.releases))
	copy(result, m.releases)
	return result, nil
}

func testReleases() mockAllReleasesRepository {
	return mockAllReleasesRepository{mockReleaseRepository{releases: []entity.ReleaseEntity{
		{Name: "F20", Version: "20", CandidateTag: "f20-updates-candidate"},
		{Name: "EL-7", Version: "7", CandidateTag: "epel7-testing-candidate"},
		{Name: "F9", Version: "9", CandidateTag: "f9-updates-candidate"},
		{Name: "Rawhide", Version: "rawhide", CandidateTag: "f21"},
	}}}
}

func TestSortReleasesByVersion(t *testing.T) {
	releases := testReleases().releases
	sortReleasesByVersion(releases)
	names := make([]string, 0)
	for _, r := range releases {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"EL-7", "F9", "F20", "Rawhide"}, names)
}

func TestGetLatestCandidates(t *testing.T) {
	var gotQueries []client.TaggedQuery
	svc := NewReleaseService(testReleases(), mockBuildSystemClient{ListTaggedMultiFunc: func(queries []client.TaggedQuery) ([][]view.BuildInfo, error) {
		gotQueries = queries
		return [][]view.BuildInfo{
			{{Nvr: "bodhi-2.0-1.el7"}},
			{},
			{{Nvr: "bodhi-2.0-1.fc20"}, {Nvr: "bodhi-1.9-1.fc20"}},
			{},
		}, nil
	}})

	result, err := svc.GetLatestCandidates(goctx.Background(), "bodhi")
	require.NoError(t, err)
	assert.Equal(t, []string{"bodhi-2.0-1.el7", "bodhi-2.0-1.fc20"}, result.Builds)
	require.Len(t, gotQueries, 4)
	assert.Equal(t, client.TaggedQuery{Tag: "epel7-testing-candidate", PackageName: "bodhi", Latest: true}, gotQueries[0])

	result, err = svc.GetLatestCandidates(goctx.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, result.Builds)
}

func TestSearchPackages(t *testing.T) {
	svc := NewReleaseService(testReleases(), mockBuildSystemClient{packages: []view.BuildSystemPackage{
		{Id: 1, Name: "bodhi"}, {Id: 2, Name: "kernel"}, {Id: 3, Name: "python-bodhi-client"},
	}})
	result, err := svc.SearchPackages(goctx.Background(), "bodhi")
	require.NoError(t, err)
	assert.Equal(t, []view.PackageSearchItem{
		{Id: "bodhi", Label: "bodhi", Value: "bodhi"},
		{Id: "python-bodhi-client", Label: "python-bodhi-client", Value: "python-bodhi-client"},
	}, result)
}
