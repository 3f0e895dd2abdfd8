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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/gorilla/mux"
	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserService struct {
	GetUsersFunc      func(req view.UsersListReq) (*view.Users, error)
	GetUserByNameFunc func(name string) (*view.User, error)
	GetAdminInfoFunc  func(secCtx context.SecurityContext) (*view.AdminInfo, error)
}

func (m *mockUserService) GetUsers(req view.UsersListReq) (*view.Users, error) {
	return m.GetUsersFunc(req)
}

func (m *mockUserService) GetUserByName(name string) (*view.User, error) {
	return m.GetUserByNameFunc(name)
}

func (m *mockUserService) GetAdminInfo(secCtx context.SecurityContext) (*view.AdminInfo, error) {
	return m.GetAdminInfoFunc(secCtx)
}

func TestGetUsers_ParsesFilters(t *testing.T) {
	var captured view.UsersListReq
	svc := &mockUserService{GetUsersFunc: func(req view.UsersListReq) (*view.Users, error) {
		captured = req
		return &view.Users{Users: []view.User{}}, nil
	}}
	rec := httptest.NewRecorder()
	NewUserController(svc).GetUsers(rec, httptest.NewRequest(http.MethodGet,
		"/users/?like=gu%25&search=gue&name=guest&groups=packager,provenpackager&updates=FEDORA-2024-1&packages=bodhi&rows_per_page=10", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gu%", captured.Like)
	assert.Equal(t, "gue", captured.Search)
	assert.Equal(t, "guest", captured.Name)
	assert.Equal(t, []string{"packager", "provenpackager"}, captured.Groups)
	assert.Equal(t, []string{"FEDORA-2024-1"}, captured.Updates)
	assert.Equal(t, []string{"bodhi"}, captured.Packages)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 10, captured.RowsPerPage)
}

func TestGetUserByName(t *testing.T) {
	svc := &mockUserService{GetUserByNameFunc: func(name string) (*view.User, error) {
		if name != "guest" {
			return nil, &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.UserNotFound,
				Message: exception.UserNotFoundMsg,
				Params:  map[string]interface{}{"user": name},
			}
		}
		return &view.User{Name: "guest", Groups: []string{"packager"}}, nil
	}}
	router := mux.NewRouter()
	router.HandleFunc("/users/{name}", NewUserController(svc).GetUserByName).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/guest", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var user view.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "guest", user.Name)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/nobody", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, exception.UserNotFound, decodeError(t, rec).Code)
}

func TestGetAdminInfo_UsesAuthenticatedUser(t *testing.T) {
	svc := &mockUserService{GetAdminInfoFunc: func(secCtx context.SecurityContext) (*view.AdminInfo, error) {
		return &view.AdminInfo{User: secCtx.GetUserId(), Principals: []string{"user:" + secCtx.GetUserId(), "group:bodhiadmin"}}, nil
	}}
	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req = auth.RequestWithUser(auth.NewUserInfo("admin", "admin", []string{"bodhiadmin"}, auth.Extensions{}), req)
	rec := httptest.NewRecorder()
	NewAdminController(svc).GetAdminInfo(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var info view.AdminInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, "admin", info.User)
	assert.Equal(t, []string{"user:admin", "group:bodhiadmin"}, info.Principals)
}
