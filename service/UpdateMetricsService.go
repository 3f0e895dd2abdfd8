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
	"strings"
	"time"

	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var updateTypeLabels = map[view.UpdateType]string{
	view.TypeBugfix:      "Bug fixes",
	view.TypeEnhancement: "Enhancements",
	view.TypeSecurity:    "Security updates",
	view.TypeNewPackage:  "New packages",
}

const maxConcurrentCounts = 8

type UpdateMetricsService interface {
	// GetUpdateTypeMetrics counts stable updates of every type for every Fedora release
	GetUpdateTypeMetrics() (*view.UpdateTypeMetrics, error)
	RefreshUpdateCounts() error
	CreateJob(schedule string) error
}

func NewUpdateMetricsService(updateRepo repository.UpdateRepository, releaseRepo repository.ReleaseRepository) UpdateMetricsService {
	return &updateMetricsServiceImpl{
		updateRepo:  updateRepo,
		releaseRepo: releaseRepo,
		cron:        cron.New(),
	}
}

type updateMetricsServiceImpl struct {
	updateRepo  repository.UpdateRepository
	releaseRepo repository.ReleaseRepository
	cron        *cron.Cron
}

func (u *updateMetricsServiceImpl) GetUpdateTypeMetrics() (*view.UpdateTypeMetrics, error) {
	allReleases, err := u.releaseRepo.GetReleases()
	if err != nil {
		return nil, err
	}
	releases := make([]entity.ReleaseEntity, 0, len(allReleases))
	for _, release := range allReleases {
		if strings.HasPrefix(release.Name, "F") {
			releases = append(releases, release)
		}
	}
	sortReleasesByVersion(releases)

	result := &view.UpdateTypeMetrics{
		Data:  make([]view.UpdateTypeSeries, 0, len(view.UpdateTypes)),
		Ticks: make([][]interface{}, 0, len(releases)),
	}
	for i, release := range releases {
		result.Ticks = append(result.Ticks, []interface{}{i, release.Name})
	}

	counts := make([][]int, len(view.UpdateTypes))
	stable := view.StatusStable
	g := errgroup.Group{}
	g.SetLimit(maxConcurrentCounts)
	for t, typeName := range view.UpdateTypes {
		counts[t] = make([]int, len(releases))
		updateType := view.UpdateType(typeName)
		for r, release := range releases {
			t, r, releaseName := t, r, release.Name
			g.Go(func() error {
				count, err := u.updateRepo.CountUpdates(view.UpdateFilters{
					Releases: []string{releaseName},
					Type:     &updateType,
					Status:   &stable,
				})
				if err != nil {
					return err
				}
				counts[t][r] = count
				return nil
			})
		}
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	for t, typeName := range view.UpdateTypes {
		series := view.UpdateTypeSeries{
			Label: updateTypeLabels[view.UpdateType(typeName)],
			Data:  make([][]int, 0, len(releases)),
		}
		for r := range releases {
			series.Data = append(series.Data, []int{r, counts[t][r]})
		}
		result.Data = append(result.Data, series)
	}
	return result, nil
}

func (u *updateMetricsServiceImpl) RefreshUpdateCounts() error {
	counts, err := u.updateRepo.CountUpdatesByReleaseAndStatus()
	if err != nil {
		return err
	}
	metrics.UpdatesCount.Reset()
	for _, c := range counts {
		metrics.UpdatesCount.WithLabelValues(c.Release, c.Status).Set(float64(c.Count))
	}
	return nil
}

func (u *updateMetricsServiceImpl) CreateJob(schedule string) error {
	job := UpdateCountsJob{
		schedule:       schedule,
		metricsService: u,
	}

	if len(u.cron.Entries()) == 0 {
		location, err := time.LoadLocation("")
		if err != nil {
			return err
		}
		u.cron = cron.New(cron.WithLocation(location))
		u.cron.Start()
	}

	_, err := u.cron.AddJob(schedule, &job)
	if err != nil {
		log.Warnf("[Update metrics] Job wasn't added for schedule - %s. With error - %s", schedule, err)
		return err
	}
	log.Infof("[Update metrics] Job was created with schedule - %s", schedule)

	return nil
}

type UpdateCountsJob struct {
	schedule       string
	metricsService UpdateMetricsService
}

func (j UpdateCountsJob) Run() {
	err := j.metricsService.RefreshUpdateCounts()
	if err != nil {
		log.Errorf("[UpdateCountsJob-Run]  err - %s", err.Error())
	}
}
