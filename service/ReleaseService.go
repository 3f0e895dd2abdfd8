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
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fedora-infra/bodhi-service/client"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/view"
	log "github.com/sirupsen/logrus"
)

type ReleaseService interface {
	GetReleases() ([]view.Release, error)
	// GetLatestCandidates returns the newest build of the package in the candidate tag of every release
	GetLatestCandidates(ctx goctx.Context, packageName string) (*view.LatestCandidates, error)
	SearchPackages(ctx goctx.Context, term string) ([]view.PackageSearchItem, error)
}

func NewReleaseService(releaseRepo repository.ReleaseRepository, buildSystemClient client.BuildSystemClient) ReleaseService {
	return &releaseServiceImpl{
		releaseRepo:       releaseRepo,
		buildSystemClient: buildSystemClient,
	}
}

type releaseServiceImpl struct {
	releaseRepo       repository.ReleaseRepository
	buildSystemClient client.BuildSystemClient
}

func (r releaseServiceImpl) GetReleases() ([]view.Release, error) {
	ents, err := r.releaseRepo.GetReleases()
	if err != nil {
		return nil, err
	}
	sortReleasesByVersion(ents)
	result := make([]view.Release, 0, len(ents))
	for i := range ents {
		result = append(result, *entity.MakeReleaseView(&ents[i]))
	}
	return result, nil
}

func (r releaseServiceImpl) GetLatestCandidates(ctx goctx.Context, packageName string) (*view.LatestCandidates, error) {
	result := &view.LatestCandidates{Builds: []string{}}
	if packageName == "" {
		return result, nil
	}
	releases, err := r.releaseRepo.GetReleases()
	if err != nil {
		return nil, err
	}
	sortReleasesByVersion(releases)
	queries := make([]client.TaggedQuery, 0, len(releases))
	for _, release := range releases {
		queries = append(queries, client.TaggedQuery{Tag: release.CandidateTag, PackageName: packageName, Latest: true})
	}
	tagged, err := r.buildSystemClient.ListTaggedMulti(ctx, queries)
	if err != nil {
		return nil, err
	}
	for _, builds := range tagged {
		if len(builds) != 0 && builds[0].Nvr != "" {
			result.Builds = append(result.Builds, builds[0].Nvr)
		}
	}
	log.Debugf("latest candidates of %s: %v", packageName, result.Builds)
	return result, nil
}

func (r releaseServiceImpl) SearchPackages(ctx goctx.Context, term string) ([]view.PackageSearchItem, error) {
	packages, err := r.buildSystemClient.ListPackages(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]view.PackageSearchItem, 0)
	for _, pkg := range packages {
		if strings.Contains(pkg.Name, term) {
			result = append(result, view.PackageSearchItem{Id: pkg.Name, Label: pkg.Name, Value: pkg.Name})
		}
	}
	return result, nil
}

// sortReleasesByVersion orders releases by numeric version, releases without a parsable version go last by name
func sortReleasesByVersion(releases []entity.ReleaseEntity) {
	versions := make(map[string]*semver.Version, len(releases))
	for _, release := range releases {
		if v, err := semver.NewVersion(release.Version); err == nil {
			versions[release.Name] = v
		}
	}
	sort.SliceStable(releases, func(i, j int) bool {
		vi, vj := versions[releases[i].Name], versions[releases[j].Name]
		switch {
		case vi != nil && vj != nil:
			if !vi.Equal(vj) {
				return vi.LessThan(vj)
			}
			return releases[i].Name < releases[j].Name
		case vi != nil:
			return true
		case vj != nil:
			return false
		default:
			return releases[i].Name < releases[j].Name
		}
	})
}
