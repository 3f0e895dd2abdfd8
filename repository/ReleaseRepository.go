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
	"github.com/go-pg/pg/v10"
)

type ReleaseRepository interface {
	GetReleases() ([]entity.ReleaseEntity, error)
	GetReleaseByName(name string) (*entity.ReleaseEntity, error)
	GetReleasesByNames(names []string) ([]entity.ReleaseEntity, error)
}

func NewReleaseRepositoryPG(cp db.ConnectionProvider) (ReleaseRepository, error) {
	return &releaseRepositoryImpl{cp: cp}, nil
}

type releaseRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (r releaseRepositoryImpl) GetReleases() ([]entity.ReleaseEntity, error) {
	var result []entity.ReleaseEntity
	err := r.cp.GetConnection().Model(&result).
		Order("name ASC").
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	return result, nil
}

func (r releaseRepositoryImpl) GetReleaseByName(name string) (*entity.ReleaseEntity, error) {
	result := new(entity.ReleaseEntity)
	err := r.cp.GetConnection().Model(result).
		Where("upper(name) = ?", strings.ToUpper(name)).
		First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return result, nil
}

// GetReleasesByNames matches names case-insensitively
func (r releaseRepositoryImpl) GetReleasesByNames(names []string) ([]entity.ReleaseEntity, error) {
	var result []entity.ReleaseEntity
	if len(names) == 0 {
		return result, nil
	}
	upperNames := make([]string, 0, len(names))
	for _, name := range names {
		upperNames = append(upperNames, strings.ToUpper(name))
	}
	err := r.cp.GetConnection().Model(&result).
		Where("upper(name) in (?)", pg.In(upperNames)).
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	return result, nil
}
