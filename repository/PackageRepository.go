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
	"github.com/fedora-infra/bodhi-service/db"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/go-pg/pg/v10"
)

type PackageRepository interface {
	GetExistingPackageNames(names []string) ([]string, error)
}

func NewPackageRepositoryPG(cp db.ConnectionProvider) (PackageRepository, error) {
	return &packageRepositoryImpl{cp: cp}, nil
}

type packageRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (p packageRepositoryImpl) GetExistingPackageNames(names []string) ([]string, error) {
	result := make([]string, 0)
	if len(names) == 0 {
		return result, nil
	}
	err := p.cp.GetConnection().Model((*entity.PackageEntity)(nil)).
		Column("name").
		Where("name in (?)", pg.In(names)).
		Select(&result)
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	return result, nil
}
