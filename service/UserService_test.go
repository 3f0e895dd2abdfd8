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
	"errors"
	"net/http"
	"testing"

	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUserListRepository struct {
	repository.UserRepository
	users  []entity.UserEntity
	groups map[string][]string
	known  []string
	gotReq view.UsersListReq
}

func (m *mockUserListRepository) GetUserByName(name string) (*entity.UserEntity, error) {
	for i := range m.users {
		if m.users[i].Name == name {
			return &m.users[i], nil
		}
	}
	return nil, nil
}

func (m *mockUserListRepository) GetUserGroups(name string) ([]string, error) {
	return m.groups[name], nil
}

func (m *mockUserListRepository) GetGroupsByUsers(names []string) (map[string][]string, error) {
	return m.groups, nil
}

func (m *mockUserListRepository) GetExistingGroupNames(names []string) ([]string, error) {
	return m.known, nil
}

func (m *mockUserListRepository) GetUsers(req view.UsersListReq) ([]entity.UserEntity, int, error) {
	m.gotReq = req
	return m.users, len(m.users), nil
}

type mockUpdateKeysRepository struct {
	repository.UpdateRepository
	known []string
}

func (m mockUpdateKeysRepository) GetExistingUpdateKeys(keys []string) ([]string, error) {
	return m.known, nil
}

type mockPackageRepository struct {
	known []string
}

func (m mockPackageRepository) GetExistingPackageNames(names []string) ([]string, error) {
	return m.known, nil
}

func newUserServiceForTest(libravatar bool) (UserService, *mockUserListRepository) {
	userRepo := &mockUserListRepository{
		users: []entity.UserEntity{{Name: "bodhi"}, {Name: "guest", Email: "guest@example.com"}},
		groups: map[string][]string{
			"guest": {"packager"},
			"bodhi": {"bodhiadmin", "packager"},
		},
		known: []string{"packager"},
	}
	return NewUserService(userRepo,
		mockUpdateKeysRepository{known: []string{"bodhi-2.0-1.fc20"}},
		mockPackageRepository{known: []string{"bodhi"}},
		[]string{"bodhiadmin", "releng"},
		libravatar), userRepo
}

func TestGetUserByName_Avatar(t *testing.T) {
	svc, _ := newUserServiceForTest(false)
	user, err := svc.GetUserByName("guest")
	require.NoError(t, err)
	assert.Equal(t, "https://apps.fedoraproject.org/img/icons/bodhi-24.png", user.Avatar)
	assert.Equal(t, []string{"packager"}, user.Groups)

	svc, _ = newUserServiceForTest(true)
	user, err = svc.GetUserByName("guest")
	require.NoError(t, err)
	assert.Equal(t, "https://seccdn.libravatar.org/avatar/eb48e08cc23bcd5961de9541ba5156c385cd39799e1dbf511477aa4d4d3a37e7?d=retro&s=24", user.Avatar)
}

func TestGetUserByName_NotFound(t *testing.T) {
	svc, _ := newUserServiceForTest(false)
	_, err := svc.GetUserByName("watwatwat")
	var customErr *exception.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, http.StatusNotFound, customErr.Status)
	assert.Equal(t, exception.UserNotFound, customErr.Code)
}

func TestGetUsers(t *testing.T) {
	svc, repo := newUserServiceForTest(false)
	result, err := svc.GetUsers(view.UsersListReq{Like: "odh", Groups: []string{"packager"}, Updates: []string{"bodhi-2.0-1.fc20"}})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 20, result.RowsPerPage)
	assert.Equal(t, 1, result.Pages)
	assert.Equal(t, "odh", repo.gotReq.Like)
	require.Len(t, result.Users, 2)
	assert.Equal(t, []string{"bodhiadmin", "packager"}, result.Users[0].Groups)
}

func TestGetUsers_UnknownListValues(t *testing.T) {
	tests := []struct {
		name   string
		req    view.UsersListReq
		param  string
		values string
	}{
		{name: "Groups", req: view.UsersListReq{Groups: []string{"cool_gang", "packager", "another"}}, param: "groups", values: "cool_gang, another"},
		{name: "Updates", req: view.UsersListReq{Updates: []string{"bodhi-2.0-1.fc20", "does not exist"}}, param: "updates", values: "does not exist"},
		{name: "Packages", req: view.UsersListReq{Packages: []string{"not_a_package"}}, param: "packages", values: "not_a_package"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newUserServiceForTest(false)
			_, err := svc.GetUsers(tt.req)
			var customErr *exception.CustomError
			require.True(t, errors.As(err, &customErr))
			assert.Equal(t, http.StatusBadRequest, customErr.Status)
			assert.Equal(t, exception.InvalidListParameterValue, customErr.Code)
			assert.Equal(t, tt.param, customErr.Params["param"])
			assert.Equal(t, tt.values, customErr.Params["values"])
		})
	}
}

func TestGetAdminInfo(t *testing.T) {
	svc, _ := newUserServiceForTest(false)

	info, err := svc.GetAdminInfo(context.CreateFromId("bodhi"))
	require.NoError(t, err)
	assert.Equal(t, "bodhi", info.User)
	assert.Equal(t, []string{"user:bodhi", "group:bodhiadmin", "group:packager"}, info.Principals)

	info, err = svc.GetAdminInfo(context.CreateFromIdWithGroups("guest", []string{"releng"}))
	require.NoError(t, err)
	assert.Equal(t, []string{"user:guest", "group:packager", "group:releng"}, info.Principals)

	_, err = svc.GetAdminInfo(context.CreateFromId("guest"))
	var customErr *exception.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, http.StatusForbidden, customErr.Status)
	assert.Equal(t, exception.AdminAccessRequired, customErr.Code)
}
