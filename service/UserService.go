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
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/utils"
	"github.com/fedora-infra/bodhi-service/view"
)

const defaultAvatarUrl = "https://apps.fedoraproject.org/img/icons/bodhi-24.png"
const libravatarBaseUrl = "https://seccdn.libravatar.org/avatar/"
const avatarSize = 24

type UserService interface {
	GetUsers(req view.UsersListReq) (*view.Users, error)
	GetUserByName(name string) (*view.User, error)
	GetAdminInfo(secCtx context.SecurityContext) (*view.AdminInfo, error)
}

func NewUserService(userRepo repository.UserRepository,
	updateRepo repository.UpdateRepository,
	packageRepo repository.PackageRepository,
	adminGroups []string,
	libravatarEnabled bool) UserService {
	return &userServiceImpl{
		userRepo:          userRepo,
		updateRepo:        updateRepo,
		packageRepo:       packageRepo,
		adminGroups:       adminGroups,
		libravatarEnabled: libravatarEnabled,
	}
}

type userServiceImpl struct {
	userRepo          repository.UserRepository
	updateRepo        repository.UpdateRepository
	packageRepo       repository.PackageRepository
	adminGroups       []string
	libravatarEnabled bool
}

func (u userServiceImpl) GetUsers(req view.UsersListReq) (*view.Users, error) {
	if len(req.Groups) != 0 {
		existing, err := u.userRepo.GetExistingGroupNames(req.Groups)
		if err != nil {
			return nil, err
		}
		if err = checkListValues("groups", req.Groups, existing); err != nil {
			return nil, err
		}
	}
	if len(req.Updates) != 0 {
		existing, err := u.updateRepo.GetExistingUpdateKeys(req.Updates)
		if err != nil {
			return nil, err
		}
		if err = checkListValues("updates", req.Updates, existing); err != nil {
			return nil, err
		}
	}
	if len(req.Packages) != 0 {
		existing, err := u.packageRepo.GetExistingPackageNames(req.Packages)
		if err != nil {
			return nil, err
		}
		if err = checkListValues("packages", req.Packages, existing); err != nil {
			return nil, err
		}
	}

	req.Page, req.RowsPerPage = normalizePaging(req.Page, req.RowsPerPage)
	ents, total, err := u.userRepo.GetUsers(req)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ents))
	for _, ent := range ents {
		names = append(names, ent.Name)
	}
	groups, err := u.userRepo.GetGroupsByUsers(names)
	if err != nil {
		return nil, err
	}
	users := make([]view.User, 0, len(ents))
	for i := range ents {
		users = append(users, *entity.MakeUserView(&ents[i], groups[ents[i].Name], u.getAvatar(ents[i].Name)))
	}
	return &view.Users{
		Users:       users,
		Page:        req.Page,
		Pages:       utils.PagesCount(total, req.RowsPerPage),
		RowsPerPage: req.RowsPerPage,
		Total:       total,
	}, nil
}

// checkListValues reports the requested values that do not exist, in request order
func checkListValues(param string, requested []string, existing []string) error {
	unknown := utils.Difference(requested, existing)
	if len(unknown) == 0 {
		return nil
	}
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.InvalidListParameterValue,
		Message: exception.InvalidListParameterValueMsg,
		Field:   param,
		Params:  map[string]interface{}{"param": param, "values": strings.Join(unknown, ", ")},
	}
}

func (u userServiceImpl) GetUserByName(name string) (*view.User, error) {
	ent, err := u.userRepo.GetUserByName(name)
	if err != nil {
		return nil, err
	}
	if ent == nil {
		return nil, &exception.CustomError{
			Status:  http.StatusNotFound,
			Code:    exception.UserNotFound,
			Message: exception.UserNotFoundMsg,
			Params:  map[string]interface{}{"user": name},
		}
	}
	groups, err := u.userRepo.GetUserGroups(name)
	if err != nil {
		return nil, err
	}
	return entity.MakeUserView(ent, groups, u.getAvatar(name)), nil
}

func (u userServiceImpl) getAvatar(name string) string {
	if !u.libravatarEnabled {
		return defaultAvatarUrl
	}
	openId := fmt.Sprintf("http://%s.id.fedoraproject.org/", name)
	hash := sha256.Sum256([]byte(openId))
	return fmt.Sprintf("%s%s?d=retro&s=%d", libravatarBaseUrl, hex.EncodeToString(hash[:]), avatarSize)
}

func (u userServiceImpl) GetAdminInfo(secCtx context.SecurityContext) (*view.AdminInfo, error) {
	user := secCtx.GetUserId()
	if user == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Code:    exception.NoUserInContext,
			Message: exception.NoUserInContextMsg,
		}
	}
	storedGroups, err := u.userRepo.GetUserGroups(user)
	if err != nil {
		return nil, err
	}
	groups := make([]string, 0, len(storedGroups))
	groups = append(groups, storedGroups...)
	groups = utils.SortedUniqueSet(append(groups, secCtx.GetUserGroups()...))
	if !utils.SliceIntersects(groups, u.adminGroups) {
		return nil, &exception.CustomError{
			Status:  http.StatusForbidden,
			Code:    exception.AdminAccessRequired,
			Message: exception.AdminAccessRequiredMsg,
			Params:  map[string]interface{}{"user": user},
		}
	}
	principals := []string{"user:" + user}
	for _, group := range groups {
		principals = append(principals, "group:"+group)
	}
	sort.Strings(principals[1:])
	return &view.AdminInfo{User: user, Principals: principals}, nil
}
