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
	goctx "context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fedora-infra/bodhi-service/client"
	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/service/validation"
	"github.com/fedora-infra/bodhi-service/utils"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const DefaultRowsPerPage = 20
const MaxRowsPerPage = 100

type UpdateService interface {
	// SaveUpdate creates a new update or, when req.Edited is set, edits the open update with that title
	SaveUpdate(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error)
	GetUpdates(req view.UpdateListReq) (*view.Updates, error)
}

func NewUpdateService(updateValidator validation.UpdateValidator,
	updateRepo repository.UpdateRepository,
	releaseRepo repository.ReleaseRepository,
	userRepo repository.UserRepository,
	notificationSink client.NotificationSink) UpdateService {
	return &updateServiceImpl{
		updateValidator:  updateValidator,
		updateRepo:       updateRepo,
		releaseRepo:      releaseRepo,
		userRepo:         userRepo,
		notificationSink: notificationSink,
		now:              time.Now,
	}
}

type updateServiceImpl struct {
	updateValidator  validation.UpdateValidator
	updateRepo       repository.UpdateRepository
	releaseRepo      repository.ReleaseRepository
	userRepo         repository.UserRepository
	notificationSink client.NotificationSink
	now              func() time.Time
}

func (u updateServiceImpl) SaveUpdate(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error) {
	user := secCtx.GetUserId()
	if user == "" {
		return nil, &exception.CustomError{
			Status:  http.StatusUnauthorized,
			Code:    exception.NoUserInContext,
			Message: exception.NoUserInContextMsg,
		}
	}
	action := view.UpdateActionNew
	if req.Edited != "" {
		action = view.UpdateActionEdit
	}

	data, err := u.updateValidator.ValidateUpdate(ctx, user, secCtx.GetUserGroups(), req)
	if err != nil {
		metrics.UpdateSubmissions.WithLabelValues(string(action), "rejected").Inc()
		return nil, err
	}

	var saved *entity.UpdateRichEntity
	if data.IsEdit() {
		saved, err = u.editUpdate(ctx, data)
	} else {
		saved, err = u.createUpdate(ctx, data)
	}
	if err != nil {
		metrics.UpdateSubmissions.WithLabelValues(string(action), "error").Inc()
		return nil, err
	}
	metrics.UpdateSubmissions.WithLabelValues(string(action), "success").Inc()
	log.Infof("[Update pipeline] %s %s (%s) by %s", action, saved.Alias, saved.Title, user)

	result := entity.MakeUpdateView(saved)
	event := view.UpdateChangedEvent{
		EventId:   uuid.New().String(),
		Action:    action,
		Agent:     user,
		Timestamp: u.now(),
		Update:    *result,
	}
	utils.SafeAsync(func() {
		u.notificationSink.Emit(event)
	})
	return result, nil
}

func (u updateServiceImpl) createUpdate(ctx goctx.Context, data *validation.ValidatedUpdate) (*entity.UpdateRichEntity, error) {
	now := u.now()
	ent := &entity.UpdateEntity{
		Id:            uuid.New().String(),
		Title:         utils.MakeUpdateTitle(data.NvrStrings()),
		Alias:         makeUpdateAlias(data.Release.IdPrefix, now),
		Status:        string(view.StatusPending),
		Request:       requestString(data.UpdateRequest),
		Type:          string(data.Type),
		Severity:      string(data.Severity),
		Suggest:       string(data.Suggest),
		Notes:         data.Request.Notes,
		DateSubmitted: now,
		ReleaseName:   data.Release.Name,
		UserName:      data.User,
	}
	return u.updateRepo.CreateUpdate(ctx, makeUpdateWrite(ent, data))
}

func (u updateServiceImpl) editUpdate(ctx goctx.Context, data *validation.ValidatedUpdate) (*entity.UpdateRichEntity, error) {
	return u.updateRepo.EditUpdate(ctx, data.Edited.Title, func(current *entity.UpdateRichEntity) (*repository.UpdateWrite, error) {
		if err := checkEditAllowed(current, data); err != nil {
			return nil, err
		}
		now := u.now()
		ent := current.UpdateEntity
		ent.Title = utils.MakeUpdateTitle(data.NvrStrings())
		ent.Request = requestString(data.UpdateRequest)
		ent.Type = string(data.Type)
		ent.Severity = string(data.Severity)
		ent.Suggest = string(data.Suggest)
		ent.Notes = data.Request.Notes
		ent.DateModified = &now
		write := makeUpdateWrite(&ent, data)
		return &write, nil
	})
}

// checkEditAllowed runs against the locked row, the update may have changed since validation
func checkEditAllowed(current *entity.UpdateRichEntity, data *validation.ValidatedUpdate) error {
	if !sameTime(current.DateModified, data.Edited.DateModified) {
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.ConcurrentConflict,
			Message: exception.ConcurrentConflictMsg,
			Field:   "edited",
		}
	}
	if current.UserName != data.User && !data.AclAuthorized {
		return &exception.CustomError{
			Status:  http.StatusForbidden,
			Code:    exception.InsufficientPrivileges,
			Message: exception.InsufficientPrivilegesMsg,
			Field:   "edited",
			Params:  map[string]interface{}{"user": data.User, "packages": strings.Join(current.Packages, ", ")},
		}
	}
	if current.Locked {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.UpdateLocked,
			Message: exception.UpdateLockedMsg,
			Field:   "edited",
			Params:  map[string]interface{}{"update": current.Title},
		}
	}
	if current.ReleaseName != data.Release.Name {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.ReleaseMismatch,
			Message: exception.ReleaseMismatchMsg,
			Field:   "builds",
			Params:  map[string]interface{}{"releases": current.ReleaseName + ", " + data.Release.Name},
		}
	}
	buildsChanged := utils.MakeUpdateTitle(current.Builds) != utils.MakeUpdateTitle(data.NvrStrings())
	if buildsChanged && (current.Pushed || current.Status == string(view.StatusStable)) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.UpdateBuildsFrozen,
			Message: exception.UpdateBuildsFrozenMsg,
			Field:   "builds",
			Params:  map[string]interface{}{"update": current.Title, "status": current.Status},
		}
	}
	return nil
}

func makeUpdateWrite(ent *entity.UpdateEntity, data *validation.ValidatedUpdate) repository.UpdateWrite {
	builds := make([]entity.BuildEntity, 0, len(data.Nvrs))
	for _, nvr := range data.NvrStrings() {
		builds = append(builds, entity.BuildEntity{
			Nvr:         nvr,
			PackageName: data.Packages[nvr],
			ReleaseName: data.Release.Name,
		})
	}
	return repository.UpdateWrite{
		Update:   ent,
		Builds:   builds,
		Packages: data.PackageNames(),
		Bugs:     uniqueBugIds(data.Request.Bugs),
		Cves:     utils.SortedUniqueSet(data.Request.Cves),
	}
}

func makeUpdateAlias(idPrefix string, now time.Time) string {
	hex := strings.ReplaceAll(uuid.New().String(), "-", "")
	return fmt.Sprintf("%s-%d-%s", idPrefix, now.Year(), hex[:10])
}

func requestString(request *view.UpdateRequest) *string {
	if request == nil {
		return nil
	}
	result := string(*request)
	return &result
}

func uniqueBugIds(bugs []int64) []int64 {
	set := make(map[int64]bool, len(bugs))
	result := make([]int64, 0, len(bugs))
	for _, bug := range bugs {
		if !set[bug] {
			set[bug] = true
			result = append(result, bug)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

func sameTime(a *time.Time, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (u updateServiceImpl) GetUpdates(req view.UpdateListReq) (*view.Updates, error) {
	filters := req.Filters
	if len(filters.Releases) != 0 {
		releases, err := u.releaseRepo.GetReleasesByNames(filters.Releases)
		if err != nil {
			return nil, err
		}
		known := make(map[string]string, len(releases))
		for _, release := range releases {
			known[strings.ToUpper(release.Name)] = release.Name
		}
		names := make([]string, 0, len(filters.Releases))
		unknown := make([]string, 0)
		for _, name := range filters.Releases {
			if canonical, exists := known[strings.ToUpper(name)]; exists {
				names = append(names, canonical)
			} else {
				unknown = append(unknown, name)
			}
		}
		if len(unknown) != 0 {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidListParameterValue,
				Message: exception.InvalidListParameterValueMsg,
				Field:   "releases",
				Params:  map[string]interface{}{"param": "releases", "values": strings.Join(unknown, ", ")},
			}
		}
		filters.Releases = names
	}
	if filters.User != nil {
		user, err := u.userRepo.GetUserByName(*filters.User)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidParameterValueMsg,
				Field:   "user",
				Params:  map[string]interface{}{"param": "user", "value": *filters.User},
			}
		}
	}

	page, rowsPerPage := normalizePaging(req.Page, req.RowsPerPage)
	ents, total, err := u.updateRepo.GetUpdates(filters, utils.PageOffset(page, rowsPerPage), rowsPerPage)
	if err != nil {
		return nil, err
	}
	updates := make([]view.Update, 0, len(ents))
	for i := range ents {
		updates = append(updates, *entity.MakeUpdateView(&ents[i]))
	}
	return &view.Updates{
		Updates:     updates,
		Page:        page,
		Pages:       utils.PagesCount(total, rowsPerPage),
		RowsPerPage: rowsPerPage,
		Total:       total,
	}, nil
}

func normalizePaging(page int, rowsPerPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}
	if rowsPerPage > MaxRowsPerPage {
		rowsPerPage = MaxRowsPerPage
	}
	return page, rowsPerPage
}
