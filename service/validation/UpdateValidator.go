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

package validation

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fedora-infra/bodhi-service/client"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/metrics"
	"github.com/fedora-infra/bodhi-service/repository"
	"github.com/fedora-infra/bodhi-service/utils"
	"github.com/fedora-infra/bodhi-service/view"
	log "github.com/sirupsen/logrus"
)

// ValidatedUpdate is the state shared by the validation steps, every step may read what previous steps stored
type ValidatedUpdate struct {
	Request    view.UpdateSaveReq
	User       string
	UserGroups []string

	Nvrs     []utils.Nvr
	Builds   map[string]*view.BuildInfo
	Packages map[string]string // nvr -> package name
	Release  *entity.ReleaseEntity
	Edited   *entity.UpdateRichEntity

	// AclAuthorized is true when the requester may commit to every package of the submission
	AclAuthorized bool

	Type          view.UpdateType
	Severity      view.UpdateSeverity
	Suggest       view.UpdateSuggestion
	UpdateRequest *view.UpdateRequest
	Status        *view.UpdateStatus
}

func (v ValidatedUpdate) NvrStrings() []string {
	result := make([]string, 0, len(v.Nvrs))
	for _, nvr := range v.Nvrs {
		result = append(result, nvr.String())
	}
	return result
}

func (v ValidatedUpdate) PackageNames() []string {
	result := make([]string, 0, len(v.Packages))
	for _, pkg := range v.Packages {
		result = append(result, pkg)
	}
	return utils.SortedUniqueSet(result)
}

func (v ValidatedUpdate) IsEdit() bool {
	return v.Request.Edited != ""
}

type UpdateValidator interface {
	ValidateUpdate(ctx context.Context, user string, userGroups []string, req view.UpdateSaveReq) (*ValidatedUpdate, error)
}

func NewUpdateValidator(buildSystemClient client.BuildSystemClient,
	ownershipClient client.PackageOwnershipClient,
	updateRepo repository.UpdateRepository,
	releaseRepo repository.ReleaseRepository,
	aclOverrideGroups []string) UpdateValidator {
	v := &updateValidatorImpl{
		buildSystemClient: buildSystemClient,
		ownershipClient:   ownershipClient,
		updateRepo:        updateRepo,
		releaseRepo:       releaseRepo,
		aclOverrideGroups: aclOverrideGroups,
	}
	v.steps = []validationStep{
		{name: "nvrs", run: v.validateNvrs},
		{name: "version", run: v.validateVersions},
		{name: "builds", run: v.validateBuilds},
		{name: "uniqueness", run: v.validateUniqueness},
		{name: "tags", run: v.validateTags},
		{name: "acls", run: v.validateAcls},
		{name: "enums", run: v.validateEnums},
	}
	return v
}

type validationStep struct {
	name string
	run  func(ctx context.Context, data *ValidatedUpdate) error
}

type updateValidatorImpl struct {
	buildSystemClient client.BuildSystemClient
	ownershipClient   client.PackageOwnershipClient
	updateRepo        repository.UpdateRepository
	releaseRepo       repository.ReleaseRepository
	aclOverrideGroups []string
	steps             []validationStep
}

// ValidateUpdate runs all steps in order and stops at the first failure
func (v updateValidatorImpl) ValidateUpdate(ctx context.Context, user string, userGroups []string, req view.UpdateSaveReq) (*ValidatedUpdate, error) {
	if len(req.Builds) == 0 {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.RequiredParamsMissing,
			Message: exception.RequiredParamsMissingMsg,
			Field:   "builds",
			Params:  map[string]interface{}{"params": "builds"},
		}
	}
	data := &ValidatedUpdate{
		Request:    req,
		User:       user,
		UserGroups: userGroups,
	}
	for _, step := range v.steps {
		start := time.Now()
		err := step.run(ctx, data)
		utils.PerfLog(time.Since(start).Milliseconds(), 500, "[Update pipeline] step "+step.name)
		if err != nil {
			code := "internal"
			if customErr, ok := err.(*exception.CustomError); ok {
				code = customErr.Code
			}
			metrics.PipelineRejections.WithLabelValues(step.name, code).Inc()
			log.Debugf("[Update pipeline] submission of %v by %s rejected at step %s: %v", req.Builds, user, step.name, err)
			return nil, err
		}
	}
	return data, nil
}

func (v updateValidatorImpl) validateNvrs(ctx context.Context, data *ValidatedUpdate) error {
	data.Nvrs = make([]utils.Nvr, 0, len(data.Request.Builds))
	for _, build := range data.Request.Builds {
		nvr, err := utils.ParseNvr(build)
		if err != nil {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidBuildIdentifier,
				Message: exception.InvalidBuildIdentifierMsg,
				Field:   "builds",
				Params:  map[string]interface{}{"build": build},
				Debug:   err.Error(),
			}
		}
		data.Nvrs = append(data.Nvrs, *nvr)
	}
	return nil
}

func (v updateValidatorImpl) validateVersions(ctx context.Context, data *ValidatedUpdate) error {
	for _, nvr := range data.Nvrs {
		if err := utils.ValidateRpmVersion(nvr.Version); err != nil {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidVersion,
				Message: exception.InvalidVersionMsg,
				Field:   "builds",
				Params:  map[string]interface{}{"build": nvr.String(), "version": nvr.Version},
				Debug:   err.Error(),
			}
		}
		if err := utils.ValidateRpmVersion(nvr.Release); err != nil {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidVersion,
				Message: exception.InvalidVersionMsg,
				Field:   "builds",
				Params:  map[string]interface{}{"build": nvr.String(), "version": nvr.Release},
				Debug:   err.Error(),
			}
		}
	}
	return nil
}

func (v updateValidatorImpl) validateBuilds(ctx context.Context, data *ValidatedUpdate) error {
	builds, err := v.buildSystemClient.GetBuilds(ctx, data.NvrStrings())
	if err != nil {
		return err
	}
	data.Builds = builds
	data.Packages = make(map[string]string, len(data.Nvrs))
	for _, nvr := range data.Nvrs {
		build := builds[nvr.String()]
		if build == nil {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.UnknownBuild,
				Message: exception.UnknownBuildMsg,
				Field:   "builds",
				Params:  map[string]interface{}{"build": nvr.String()},
			}
		}
		packageName := build.PackageName
		if packageName == "" {
			packageName = nvr.Name
		}
		data.Packages[nvr.String()] = packageName
	}

	releases, err := v.releaseRepo.GetReleases()
	if err != nil {
		return err
	}
	releasesByDistTag := make(map[string]*entity.ReleaseEntity, len(releases))
	for i := range releases {
		releasesByDistTag[releases[i].DistTag] = &releases[i]
	}
	targeted := make(map[string]*entity.ReleaseEntity)
	for _, nvr := range data.Nvrs {
		var release *entity.ReleaseEntity
		for _, distTag := range nvr.DistTags() {
			if r, exists := releasesByDistTag[distTag]; exists {
				release = r
				break
			}
		}
		if release == nil {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.UnknownBuildRelease,
				Message: exception.UnknownBuildReleaseMsg,
				Field:   "builds",
				Params:  map[string]interface{}{"build": nvr.String()},
			}
		}
		targeted[release.Name] = release
	}
	if len(targeted) > 1 {
		names := make([]string, 0, len(targeted))
		for name := range targeted {
			names = append(names, name)
		}
		sort.Strings(names)
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.ReleaseMismatch,
			Message: exception.ReleaseMismatchMsg,
			Field:   "builds",
			Params:  map[string]interface{}{"releases": strings.Join(names, ", ")},
		}
	}
	for _, release := range targeted {
		data.Release = release
	}
	return nil
}

func (v updateValidatorImpl) validateUniqueness(ctx context.Context, data *ValidatedUpdate) error {
	if data.IsEdit() {
		edited, err := v.updateRepo.GetUpdateByTitle(data.Request.Edited)
		if err != nil {
			return err
		}
		if edited == nil {
			return &exception.CustomError{
				Status:  http.StatusNotFound,
				Code:    exception.UpdateNotFound,
				Message: exception.UpdateNotFoundMsg,
				Field:   "edited",
				Params:  map[string]interface{}{"update": data.Request.Edited},
			}
		}
		data.Edited = edited
	}

	seenNvrs := make(map[string]bool, len(data.Nvrs))
	seenPackages := make(map[string]string, len(data.Nvrs))
	for _, nvr := range data.Nvrs {
		nvrStr := nvr.String()
		packageName := data.Packages[nvrStr]
		if seenNvrs[nvrStr] {
			return duplicateBuildInRequest(nvrStr, packageName)
		}
		if _, exists := seenPackages[packageName]; exists {
			return duplicateBuildInRequest(nvrStr, packageName)
		}
		seenNvrs[nvrStr] = true
		seenPackages[packageName] = nvrStr
	}

	openTitles, err := v.updateRepo.GetOpenUpdateTitlesByBuilds(data.NvrStrings())
	if err != nil {
		return err
	}
	for _, nvr := range data.Nvrs {
		title, exists := openTitles[nvr.String()]
		if !exists {
			continue
		}
		if data.Edited != nil && data.Edited.Title == title {
			continue
		}
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.DuplicateBuild,
			Message: exception.DuplicateBuildMsg,
			Field:   "builds",
			Params:  map[string]interface{}{"build": nvr.String(), "update": title},
		}
	}
	return nil
}

func duplicateBuildInRequest(nvr string, packageName string) error {
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.DuplicateBuild,
		Message: exception.DuplicateBuildInRequestMsg,
		Field:   "builds",
		Params:  map[string]interface{}{"build": nvr, "package": packageName},
	}
}

func (v updateValidatorImpl) validateTags(ctx context.Context, data *ValidatedUpdate) error {
	allowedTags := []string{data.Release.CandidateTag}
	if data.IsEdit() {
		allowedTags = append(allowedTags, data.Release.TestingTag)
	}
	tags, err := v.buildSystemClient.ListTags(ctx, data.NvrStrings())
	if err != nil {
		return err
	}
	for _, nvr := range data.Nvrs {
		if !utils.SliceIntersects(tags[nvr.String()], allowedTags) {
			return &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.UntaggedBuild,
				Message: exception.UntaggedBuildMsg,
				Field:   "builds",
				Params:  map[string]interface{}{"build": nvr.String(), "tags": strings.Join(allowedTags, ", ")},
			}
		}
	}
	return nil
}

func (v updateValidatorImpl) validateAcls(ctx context.Context, data *ValidatedUpdate) error {
	if utils.SliceIntersects(data.UserGroups, v.aclOverrideGroups) {
		data.AclAuthorized = true
		return nil
	}
	packages := data.PackageNames()
	toCheck := packages
	fullCheck := true
	if data.Edited != nil {
		if data.Edited.UserName == data.User {
			// the submitter already owns the packages of the edited update
			toCheck = utils.Difference(packages, data.Edited.Packages)
			fullCheck = len(toCheck) == len(packages)
		} else {
			// packages removed by the edit are involved too
			toCheck = utils.SortedUniqueSet(append(packages, data.Edited.Packages...))
		}
	}
	authorized, err := v.ownershipClient.GetAuthorizedPackages(ctx, data.User, toCheck)
	if err != nil {
		return err
	}
	denied := make([]string, 0)
	for _, pkg := range toCheck {
		if !authorized[pkg] {
			denied = append(denied, pkg)
		}
	}
	if len(denied) != 0 {
		return &exception.CustomError{
			Status:  http.StatusForbidden,
			Code:    exception.InsufficientPrivileges,
			Message: exception.InsufficientPrivilegesMsg,
			Field:   "builds",
			Params:  map[string]interface{}{"user": data.User, "packages": strings.Join(denied, ", ")},
		}
	}
	data.AclAuthorized = fullCheck
	return nil
}

func (v updateValidatorImpl) validateEnums(ctx context.Context, data *ValidatedUpdate) error {
	req := data.Request
	data.Type = view.TypeBugfix
	if req.Type != "" {
		updateType, err := view.ParseUpdateType(req.Type)
		if err != nil {
			return invalidEnumValue(err)
		}
		data.Type = updateType
	}
	data.Severity = view.SeverityUnspecified
	if req.Severity != "" {
		severity, err := view.ParseUpdateSeverity(req.Severity)
		if err != nil {
			return invalidEnumValue(err)
		}
		data.Severity = severity
	}
	data.Suggest = view.SuggestUnspecified
	if req.Suggest != "" {
		suggest, err := view.ParseUpdateSuggestion(req.Suggest)
		if err != nil {
			return invalidEnumValue(err)
		}
		data.Suggest = suggest
	}
	if req.Request != nil && *req.Request != "" {
		request, err := view.ParseUpdateRequest(*req.Request)
		if err != nil {
			return invalidEnumValue(err)
		}
		data.UpdateRequest = &request
	}
	if req.Status != "" {
		status, err := view.ParseUpdateStatus(req.Status)
		if err != nil {
			return invalidEnumValue(err)
		}
		data.Status = &status
	}
	return nil
}

func invalidEnumValue(err error) error {
	enumErr, ok := err.(*view.EnumError)
	if !ok {
		return err
	}
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.InvalidEnumValue,
		Message: exception.InvalidEnumValueMsg,
		Field:   enumErr.Param,
		Params:  map[string]interface{}{"param": enumErr.Param, "value": enumErr.Value, "allowed": enumErr.AllowedString()},
	}
}
