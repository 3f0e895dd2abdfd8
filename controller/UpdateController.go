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
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/service"
	"github.com/fedora-infra/bodhi-service/utils"
	"github.com/fedora-infra/bodhi-service/view"
)

var cveIdRegexp = regexp.MustCompile(`^CVE-[0-9]{4}-[0-9]{4,}$`)

type UpdateController interface {
	GetUpdates(w http.ResponseWriter, r *http.Request)
	SaveUpdate(w http.ResponseWriter, r *http.Request)
}

func NewUpdateController(updateService service.UpdateService) UpdateController {
	return &updateControllerImpl{
		updateService: updateService,
	}
}

type updateControllerImpl struct {
	updateService service.UpdateService
}

func (u updateControllerImpl) GetUpdates(w http.ResponseWriter, r *http.Request) {
	filters, customErr := getUpdateFilters(r)
	if customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	page, rowsPerPage, customErr := getPagingParams(r)
	if customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	updates, err := u.updateService.GetUpdates(view.UpdateListReq{
		Filters:     *filters,
		Page:        page,
		RowsPerPage: rowsPerPage,
	})
	if err != nil {
		RespondWithError(w, "Failed to get updates", err)
		return
	}
	RespondWithJson(w, http.StatusOK, updates)
}

func getUpdateFilters(r *http.Request) (*view.UpdateFilters, *exception.CustomError) {
	filters := &view.UpdateFilters{}
	var customErr *exception.CustomError

	dateParams := map[string]**time.Time{
		"approved_since":          &filters.ApprovedSince,
		"modified_since":          &filters.ModifiedSince,
		"pushed_since":            &filters.PushedSince,
		"qa_approved_since":       &filters.QaApprovedSince,
		"releng_approved_since":   &filters.RelengApprovedSince,
		"security_approved_since": &filters.SecurityApprovedSince,
		"submitted_since":         &filters.SubmittedSince,
	}
	for param, target := range dateParams {
		if *target, customErr = getDateParam(r, param); customErr != nil {
			return nil, customErr
		}
	}
	boolParams := map[string]**bool{
		"critpath":          &filters.Critpath,
		"locked":            &filters.Locked,
		"pushed":            &filters.Pushed,
		"qa_approved":       &filters.QaApproved,
		"releng_approved":   &filters.RelengApproved,
		"security_approved": &filters.SecurityApproved,
	}
	for param, target := range boolParams {
		if *target, customErr = getBoolParam(r, param); customErr != nil {
			return nil, customErr
		}
	}

	bugs, customErr := getListFromParam(r, "bugs")
	if customErr != nil {
		return nil, customErr
	}
	for _, bug := range bugs {
		bugId, err := strconv.ParseInt(bug, 10, 64)
		if err != nil || bugId <= 0 {
			return nil, invalidParameterValue("bugs", bug)
		}
		filters.Bugs = append(filters.Bugs, bugId)
	}
	if filters.Cves, customErr = getListFromParam(r, "cves"); customErr != nil {
		return nil, customErr
	}
	for _, cve := range filters.Cves {
		if !cveIdRegexp.MatchString(cve) {
			return nil, invalidParameterValue("cves", cve)
		}
	}
	if filters.Packages, customErr = getListFromParam(r, "packages"); customErr != nil {
		return nil, customErr
	}
	if filters.Releases, customErr = getListFromParam(r, "releases"); customErr != nil {
		return nil, customErr
	}
	filters.User = getOptionalStringParam(r, "user")

	query := r.URL.Query()
	if value := query.Get("request"); value != "" {
		request, err := view.ParseUpdateRequest(value)
		if err != nil {
			return nil, enumParamError(err)
		}
		filters.Request = &request
	}
	if value := query.Get("severity"); value != "" {
		severity, err := view.ParseUpdateSeverity(value)
		if err != nil {
			return nil, enumParamError(err)
		}
		filters.Severity = &severity
	}
	if value := query.Get("status"); value != "" {
		status, err := view.ParseUpdateStatus(value)
		if err != nil {
			return nil, enumParamError(err)
		}
		filters.Status = &status
	}
	if value := query.Get("suggest"); value != "" {
		suggest, err := view.ParseUpdateSuggestion(value)
		if err != nil {
			return nil, enumParamError(err)
		}
		filters.Suggest = &suggest
	}
	if value := query.Get("type"); value != "" {
		updateType, err := view.ParseUpdateType(value)
		if err != nil {
			return nil, enumParamError(err)
		}
		filters.Type = &updateType
	}
	return filters, nil
}

func invalidParameterValue(param string, value interface{}) *exception.CustomError {
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.InvalidParameterValue,
		Message: exception.InvalidParameterValueMsg,
		Field:   param,
		Params:  map[string]interface{}{"param": param, "value": value},
	}
}

func (u updateControllerImpl) SaveUpdate(w http.ResponseWriter, r *http.Request) {
	var req view.UpdateSaveReq
	if customErr := decodeBody(r, &req); customErr != nil {
		RespondWithCustomError(w, customErr)
		return
	}
	if err := utils.ValidateObject(req); err != nil {
		RespondWithError(w, "Update request is not valid", err)
		return
	}
	for _, bugId := range req.Bugs {
		if bugId <= 0 {
			RespondWithCustomError(w, invalidParameterValue("bugs", bugId))
			return
		}
	}
	for _, cve := range req.Cves {
		if !cveIdRegexp.MatchString(cve) {
			RespondWithCustomError(w, invalidParameterValue("cves", cve))
			return
		}
	}

	update, err := u.updateService.SaveUpdate(r.Context(), context.Create(r), req)
	if err != nil {
		RespondWithError(w, "Failed to save update", err)
		return
	}
	RespondWithJson(w, http.StatusOK, update)
}
