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
	"context"
	"net/http"

	"github.com/fedora-infra/bodhi-service/db"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/pkg/errors"
)

type openBuildRow struct {
	Nvr   string `pg:"nvr"`
	Title string `pg:"title"`
}

type updateBuildRow struct {
	UpdateId    string `pg:"update_id"`
	Nvr         string `pg:"nvr"`
	PackageName string `pg:"package_name"`
}

func NewUpdateRepositoryPG(cp db.ConnectionProvider) (UpdateRepository, error) {
	return &updateRepositoryImpl{cp: cp}, nil
}

type updateRepositoryImpl struct {
	cp db.ConnectionProvider
}

func (u updateRepositoryImpl) GetUpdateByTitle(title string) (*entity.UpdateRichEntity, error) {
	result := new(entity.UpdateEntity)
	err := u.cp.GetConnection().Model(result).
		Where("title = ?", title).
		Where("status <> ?", view.StatusObsolete).
		First()
	if err != nil {
		if err == pg.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	rich, err := loadUpdateAssociations(u.cp.GetConnection(), []entity.UpdateEntity{*result})
	if err != nil {
		return nil, err
	}
	return &rich[0], nil
}

func (u updateRepositoryImpl) GetOpenUpdateTitlesByBuilds(nvrs []string) (map[string]string, error) {
	result := make(map[string]string)
	if len(nvrs) == 0 {
		return result, nil
	}
	var rows []openBuildRow
	_, err := u.cp.GetConnection().Query(&rows, `
		select ub.nvr, u.title
		from update_build ub
		inner join updates u on u.id = ub.update_id
		where ub.open and ub.nvr in (?)`, pg.In(nvrs))
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.Nvr] = row.Title
	}
	return result, nil
}

func (u updateRepositoryImpl) GetUpdates(filters view.UpdateFilters, offset int, limit int) ([]entity.UpdateRichEntity, int, error) {
	var ents []entity.UpdateEntity
	query := applyUpdateFilters(u.cp.GetConnection().Model(&ents), filters).
		Order("updates.date_submitted DESC", "updates.id ASC").
		Offset(offset).
		Limit(limit)
	total, err := query.SelectAndCount()
	if err != nil {
		if err == pg.ErrNoRows {
			return []entity.UpdateRichEntity{}, 0, nil
		}
		return nil, 0, err
	}
	result, err := loadUpdateAssociations(u.cp.GetConnection(), ents)
	if err != nil {
		return nil, 0, err
	}
	return result, total, nil
}

func (u updateRepositoryImpl) CountUpdates(filters view.UpdateFilters) (int, error) {
	return applyUpdateFilters(u.cp.GetConnection().Model((*entity.UpdateEntity)(nil)), filters).Count()
}

func (u updateRepositoryImpl) CountUpdatesByReleaseAndStatus() ([]view.UpdateCountByStatus, error) {
	var result []view.UpdateCountByStatus
	_, err := u.cp.GetConnection().Query(&result, `
		select release_name, status, count(*) as count
		from updates
		group by release_name, status`)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (u updateRepositoryImpl) GetExistingUpdateKeys(keys []string) ([]string, error) {
	result := make([]string, 0)
	if len(keys) == 0 {
		return result, nil
	}
	var ents []entity.UpdateEntity
	err := u.cp.GetConnection().Model(&ents).
		Column("title", "alias").
		WhereGroup(func(q *orm.Query) (*orm.Query, error) {
			q = q.WhereOr("title in (?)", pg.In(keys)).
				WhereOr("alias in (?)", pg.In(keys))
			return q, nil
		}).
		Select()
	if err != nil && err != pg.ErrNoRows {
		return nil, err
	}
	found := make(map[string]bool)
	for _, ent := range ents {
		found[ent.Title] = true
		found[ent.Alias] = true
	}
	for _, key := range keys {
		if found[key] {
			result = append(result, key)
		}
	}
	return result, nil
}

func (u updateRepositoryImpl) CreateUpdate(ctx context.Context, write UpdateWrite) (*entity.UpdateRichEntity, error) {
	err := u.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		_, err := tx.Model(&entity.UserEntity{Name: write.Update.UserName}).
			OnConflict("(name) DO NOTHING").
			Insert()
		if err != nil {
			return err
		}
		if err = saveBuilds(tx, write); err != nil {
			return err
		}
		_, err = tx.Model(write.Update).Insert()
		if err != nil {
			return err
		}
		return saveUpdateAssociations(tx, write)
	})
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return makeRichEntity(write), nil
}

func (u updateRepositoryImpl) EditUpdate(ctx context.Context, title string, apply func(current *entity.UpdateRichEntity) (*UpdateWrite, error)) (*entity.UpdateRichEntity, error) {
	var write *UpdateWrite
	err := u.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		current := new(entity.UpdateEntity)
		err := tx.Model(current).
			Where("title = ?", title).
			Where("status <> ?", view.StatusObsolete).
			For("UPDATE").
			First()
		if err != nil {
			if err == pg.ErrNoRows {
				return &exception.CustomError{
					Status:  http.StatusNotFound,
					Code:    exception.UpdateNotFound,
					Field:   "edited",
					Message: exception.UpdateNotFoundMsg,
					Params:  map[string]interface{}{"update": title},
				}
			}
			return err
		}
		rich, err := loadUpdateAssociations(tx, []entity.UpdateEntity{*current})
		if err != nil {
			return err
		}
		write, err = apply(&rich[0])
		if err != nil {
			return err
		}
		write.Update.Id = current.Id
		if err = saveBuilds(tx, *write); err != nil {
			return err
		}
		_, err = tx.Model(write.Update).WherePK().Update()
		if err != nil {
			return err
		}
		for _, model := range []interface{}{
			(*entity.UpdateBuildEntity)(nil),
			(*entity.UpdateBugEntity)(nil),
			(*entity.UpdateCveEntity)(nil),
		} {
			_, err = tx.Model(model).Where("update_id = ?", current.Id).Delete()
			if err != nil {
				return errors.Wrapf(err, "failed to clear associations of update %s", current.Id)
			}
		}
		return saveUpdateAssociations(tx, *write)
	})
	if err != nil {
		return nil, mapUniqueViolation(err)
	}
	return makeRichEntity(*write), nil
}

func saveBuilds(tx *pg.Tx, write UpdateWrite) error {
	if len(write.Packages) > 0 {
		packages := make([]entity.PackageEntity, 0, len(write.Packages))
		for _, name := range write.Packages {
			packages = append(packages, entity.PackageEntity{Name: name})
		}
		_, err := tx.Model(&packages).OnConflict("(name) DO NOTHING").Insert()
		if err != nil {
			return errors.Wrap(err, "failed to insert packages")
		}
	}
	if len(write.Builds) > 0 {
		_, err := tx.Model(&write.Builds).OnConflict("(nvr) DO NOTHING").Insert()
		if err != nil {
			return errors.Wrap(err, "failed to insert builds")
		}
	}
	return nil
}

func saveUpdateAssociations(tx *pg.Tx, write UpdateWrite) error {
	updateId := write.Update.Id
	open := write.Update.Status != string(view.StatusObsolete)
	if len(write.Builds) > 0 {
		links := make([]entity.UpdateBuildEntity, 0, len(write.Builds))
		for _, build := range write.Builds {
			links = append(links, entity.UpdateBuildEntity{UpdateId: updateId, Nvr: build.Nvr, Open: open})
		}
		if _, err := tx.Model(&links).Insert(); err != nil {
			return errors.Wrapf(err, "failed to link builds to update %s", updateId)
		}
	}
	if len(write.Bugs) > 0 {
		bugs := make([]entity.BugEntity, 0, len(write.Bugs))
		links := make([]entity.UpdateBugEntity, 0, len(write.Bugs))
		for _, bugId := range write.Bugs {
			bugs = append(bugs, entity.BugEntity{BugId: bugId})
			links = append(links, entity.UpdateBugEntity{UpdateId: updateId, BugId: bugId})
		}
		if _, err := tx.Model(&bugs).OnConflict("(bug_id) DO NOTHING").Insert(); err != nil {
			return errors.Wrap(err, "failed to insert bugs")
		}
		if _, err := tx.Model(&links).Insert(); err != nil {
			return errors.Wrapf(err, "failed to link bugs to update %s", updateId)
		}
	}
	if len(write.Cves) > 0 {
		cves := make([]entity.CveEntity, 0, len(write.Cves))
		links := make([]entity.UpdateCveEntity, 0, len(write.Cves))
		for _, cveId := range write.Cves {
			cves = append(cves, entity.CveEntity{CveId: cveId})
			links = append(links, entity.UpdateCveEntity{UpdateId: updateId, CveId: cveId})
		}
		if _, err := tx.Model(&cves).OnConflict("(cve_id) DO NOTHING").Insert(); err != nil {
			return errors.Wrap(err, "failed to insert cves")
		}
		if _, err := tx.Model(&links).Insert(); err != nil {
			return errors.Wrapf(err, "failed to link cves to update %s", updateId)
		}
	}
	return nil
}

func loadUpdateAssociations(conn orm.DB, updates []entity.UpdateEntity) ([]entity.UpdateRichEntity, error) {
	result := make([]entity.UpdateRichEntity, 0, len(updates))
	if len(updates) == 0 {
		return result, nil
	}
	ids := make([]string, 0, len(updates))
	for _, update := range updates {
		ids = append(ids, update.Id)
	}

	var buildRows []updateBuildRow
	_, err := conn.Query(&buildRows, `
		select ub.update_id, ub.nvr, b.package_name
		from update_build ub
		inner join builds b on b.nvr = ub.nvr
		where ub.update_id in (?)
		order by ub.nvr`, pg.In(ids))
	if err != nil {
		return nil, err
	}
	var bugRows []entity.UpdateBugEntity
	_, err = conn.Query(&bugRows, `select update_id, bug_id from update_bug where update_id in (?) order by bug_id`, pg.In(ids))
	if err != nil {
		return nil, err
	}
	var cveRows []entity.UpdateCveEntity
	_, err = conn.Query(&cveRows, `select update_id, cve_id from update_cve where update_id in (?) order by cve_id`, pg.In(ids))
	if err != nil {
		return nil, err
	}

	byId := make(map[string]*entity.UpdateRichEntity, len(updates))
	for _, update := range updates {
		result = append(result, entity.UpdateRichEntity{
			UpdateEntity: update,
			Builds:       []string{},
			Packages:     []string{},
			Bugs:         []int64{},
			Cves:         []string{},
		})
	}
	for i := range result {
		byId[result[i].Id] = &result[i]
	}
	for _, row := range buildRows {
		rich := byId[row.UpdateId]
		rich.Builds = append(rich.Builds, row.Nvr)
		rich.Packages = append(rich.Packages, row.PackageName)
	}
	for _, row := range bugRows {
		rich := byId[row.UpdateId]
		rich.Bugs = append(rich.Bugs, row.BugId)
	}
	for _, row := range cveRows {
		rich := byId[row.UpdateId]
		rich.Cves = append(rich.Cves, row.CveId)
	}
	return result, nil
}

func makeRichEntity(write UpdateWrite) *entity.UpdateRichEntity {
	rich := &entity.UpdateRichEntity{
		UpdateEntity: *write.Update,
		Builds:       make([]string, 0, len(write.Builds)),
		Packages:     make([]string, 0, len(write.Builds)),
		Bugs:         write.Bugs,
		Cves:         write.Cves,
	}
	for _, build := range write.Builds {
		rich.Builds = append(rich.Builds, build.Nvr)
		rich.Packages = append(rich.Packages, build.PackageName)
	}
	return rich
}
