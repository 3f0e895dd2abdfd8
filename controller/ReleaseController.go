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
	"net/http"
	"strings"

	"github.com/fedora-infra/bodhi-service/service"
)

type ReleaseController interface {
	GetReleases(w http.ResponseWriter, r *http.Request)
	GetLatestCandidates(w http.ResponseWriter, r *http.Request)
	SearchPackages(w http.ResponseWriter, r *http.Request)
}

func NewReleaseController(releaseService service.ReleaseService) ReleaseController {
	return &releaseControllerImpl{
		releaseService: releaseService,
	}
}

type releaseControllerImpl struct {
	releaseService service.ReleaseService
}

func (c releaseControllerImpl) GetReleases(w http.ResponseWriter, r *http.Request) {
	releases, err := c.releaseService.GetReleases()
	if err != nil {
		RespondWithError(w, "Failed to get releases", err)
		return
	}
	RespondWithJson(w, http.StatusOK, releases)
}

func (c releaseControllerImpl) GetLatestCandidates(w http.ResponseWriter, r *http.Request) {
	packageName := strings.TrimSpace(r.URL.Query().Get("package"))
	candidates, err := c.releaseService.GetLatestCandidates(r.Context(), packageName)
	if err != nil {
		RespondWithError(w, "Failed to get latest candidates", err)
		return
	}
	RespondWithJson(w, http.StatusOK, candidates)
}

func (c releaseControllerImpl) SearchPackages(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("term"))
	packages, err := c.releaseService.SearchPackages(r.Context(), term)
	if err != nil {
		RespondWithError(w, "Failed to search packages", err)
		return
	}
	RespondWithJson(w, http.StatusOK, packages)
}
