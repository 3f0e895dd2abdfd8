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

	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/service"
)

type AdminController interface {
	GetAdminInfo(w http.ResponseWriter, r *http.Request)
}

func NewAdminController(userService service.UserService) AdminController {
	return &adminControllerImpl{
		userService: userService,
	}
}

type adminControllerImpl struct {
	userService service.UserService
}

func (a adminControllerImpl) GetAdminInfo(w http.ResponseWriter, r *http.Request) {
	adminInfo, err := a.userService.GetAdminInfo(context.Create(r))
	if err != nil {
		RespondWithError(w, "Failed to get admin info", err)
		return
	}
	RespondWithJson(w, http.StatusOK, adminInfo)
}
