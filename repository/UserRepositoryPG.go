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

package repository

import (
	"strings"

	"github.com/fedora-infra/bodhi-service/db"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/utils"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/go-pg/pg/v10"
)

func NewUserRepositoryPG(cp db.ConnectionProvider) (UserRepository, error) {
	return &userRepositoryImpl{cp: cp}, nil
}

type userRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (u userRepositoryImpl) GetUserByName(name string) (*entity.UserEntity, error) {
	result := new(entity.UserEntity)
	err := u.cp.GetConnection().Model(result).
		Where("name = ?", name).
		First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

func (u userRepositoryImpl) GetUserGroups(name string) ([]string, error) {
	groups, err := u.GetGroupsByUsers([]string{name})
	if err != nil {
		return nil, err
	}
	if result, exists := groups[name]; exists {
		return result, nil
	}
	return []string{}, nil
}

func (u userRepositoryImpl) GetGroupsByUsers(names []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(names) == 0 {
		return result, nil
	}
	var ents []entity.UserGroupEntity
	err := u.cp.GetConnection().Model(&ents).
		Where("user_name in (?)", pg.In(names)).
		Order("group_name ASC").
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	for _, ent := range ents {
		result[ent.UserName] = append(result[ent.UserName], ent.GroupName)
	}
	return result, nil
}

func (u userRepositoryImpl) GetExistingGroupNames(names []string) ([]string, error) {
	result := make([]string, 0)
	if len(names) == 0 {
		return result, nil
	}
	err := u.cp.GetConnection().Model((*entity.GroupEntity)(nil)).
		Column("name").
		Where("name in (?)", pg.In(names)).
		Select(&result)
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	return result, nil
}

func (u userRepositoryImpl) GetUsers(req view.UsersListReq) ([]entity.UserEntity, int, error) {
	var result []entity.UserEntity
	query := u.cp.GetConnection().Model(&result)

	if req.Like != "" {
		query.Where("users.name like ?", "%"+utils.LikeEscaped(req.Like)+"%")
	}
	if req.Search != "" {
		query.Where("users.name ilike ?", "%"+utils.LikeEscaped(req.Search)+"%")
	}
	if req.Name != "" {
		if strings.Contains(req.Name, "%") {
			query.Where("users.name like ?", req.Name)
		} else {
			query.Where("users.name = ?", req.Name)
		}
	}
	if len(req.Groups) > 0 {
		query.Where(`exists (select 1 from user_group ug
			where ug.user_name = users.name and ug.group_name in (?))`, pg.In(req.Groups))
	}
	if len(req.Updates) > 0 {
		query.Where(`exists (select 1 from updates u
			where u.user_name = users.name and (u.title in (?0) or u.alias in (?0)))`, pg.In(req.Updates))
	}
	if len(req.Packages) > 0 {
		query.Where(`exists (select 1 from updates u
			inner join update_build ub on ub.update_id = u.id
			inner join builds b on b.nvr = ub.nvr
			where u.user_name = users.name and b.package_name in (?))`, pg.In(req.Packages))
	}

	total, err := query.
		Order("users.name ASC").
		Offset(utils.PageOffset(req.Page, req.RowsPerPage)).
		Limit(req.RowsPerPage).
		SelectAndCount()
	if err != nil {
		if err == pg.ErrNoRows {
			return []entity.UserEntity{}, 0, nil
		}
		return nil, 0, err
	}
	return result, total, nil
}
