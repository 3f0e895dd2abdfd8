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

package entity

import "github.com/fedora-infra/bodhi-service/view"

type UserEntity struct {
	tableName struct{} `pg:"users, alias:users"`

	Name  string `pg:"name, pk, type:varchar"`
	Email string `pg:"email, type:varchar"`
}

type GroupEntity struct {
	tableName struct{} `pg:"groups, alias:groups"`

	Name string `pg:"name, pk, type:varchar"`
}

type UserGroupEntity struct {
	tableName struct{} `pg:"user_group, alias:user_group"`

	UserName  string `pg:"user_name, pk, type:varchar"`
	GroupName string `pg:"group_name, pk, type:varchar"`
}

func MakeUserView(ent *UserEntity, groups []string, avatar string) *view.User {
	if groups == nil {
		groups = []string{}
	}
	return &view.User{
		Name:   ent.Name,
		Email:  ent.Email,
		Groups: groups,
		Avatar: avatar,
	}
}
