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

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/service"
	"github.com/fedora-infra/bodhi-service/view"
)

type UserController interface {
	GetUsers(w http.ResponseWriter, r *http.Request)
	GetUserByName(w http.ResponseWriter, r *http.Request)
}

func NewUserController(userService service.UserService) UserController {
	return &userControllerImpl{
		userService: userService,
	}
}

type userControllerImpl struct {
	userService service.UserService
}

func (u userControllerImpl) GetUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := view.UsersListReq{
		Like:   query.Get("like"),
		Search: query.Get("search"),
		Name:   query.Get("name"),
	}
	var customErr *exception.CustomError
	if req.Groups, customErr = getListFromParam(r, "groups"); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	if req.Updates, customErr = getListFromParam(r, "updates"); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	if req.Packages, customErr = getListFromParam(r, "packages"); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	if req.Page, req.RowsPerPage, customErr = getPagingParams(r); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}

	users, err := u.userService.GetUsers(req)
	if err != nil {
		RespondWithError(w, "Failed to get users", err)
		return
	}
	RespondWithJson(w, http.StatusOK, users)
}

func (u userControllerImpl) GetUserByName(w http.ResponseWriter, r *http.Request) {
	name, err := getUnescapedStringParam(r, "name")
	if err != nil {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidURLEscape,
			Message: exception.InvalidURLEscapeMsg,
			Params:  map[string]interface{}{"param": "name"},
			Debug:   err.Error(),
		})
		return
	}
	user, err := u.userService.GetUserByName(name)
	if err != nil {
		RespondWithError(w, "Failed to get user", err)
		return
	}
	RespondWithJson(w, http.StatusOK, user)
}
