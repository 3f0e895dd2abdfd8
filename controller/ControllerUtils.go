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
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/service"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

const (
	maxParamItems = 1000
	maxParamLen   = 8192
)

var dateParamLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}

func getUnescapedStringParam(r *http.Request, p string) (string, error) {
	params := mux.Vars(r)
	return url.QueryUnescape(params[p])
}

func decodeBody(r *http.Request, target interface{}) *exception.CustomError {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	if err = json.Unmarshal(body, target); err != nil {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.BadRequestBody,
			Message: exception.BadRequestBodyMsg,
			Debug:   err.Error(),
		}
	}
	return nil
}

func RespondWithError(w http.ResponseWriter, msg string, err error) {
	log.Errorf("%s: %s", msg, err.Error())
	var customError *exception.CustomError
	if errors.As(err, &customError) {
		RespondWithCustomError(w, customError)
	} else {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusInternalServerError,
			Message: msg,
			Debug:   err.Error()})
	}
}

func RespondWithCustomError(w http.ResponseWriter, err *exception.CustomError) {
	log.Debugf("Request failed. Code = %d. Message = %s. Params: %v. Debug: %s", err.Status, err.Message, err.Params, err.Debug)
	RespondWithJson(w, err.Status, err)
}

func RespondWithJson(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// getListFromParam accepts both repeated parameters (?p=a&p=b) and comma separated values (?p=a,b)
func getListFromParam(r *http.Request, param string) ([]string, *exception.CustomError) {
	values := r.URL.Query()[param]
	result := make([]string, 0)
	totalLen := 0
	for _, value := range values {
		totalLen += len(value)
		//validations were added to avoid resource exhaustion
		if totalLen > maxParamLen {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidParameterValueLengthMsg,
				Field:   param,
				Params:  map[string]interface{}{"param": param, "value": value, "maxLen": maxParamLen},
			}
		}
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				result = append(result, item)
			}
		}
		if len(result) > maxParamItems {
			return nil, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidItemsNumberMsg,
				Field:   param,
				Params:  map[string]interface{}{"param": param, "maxItems": maxParamItems},
			}
		}
	}
	return result, nil
}

func getOptionalStringParam(r *http.Request, param string) *string {
	value := r.URL.Query().Get(param)
	if value == "" {
		return nil
	}
	return &value
}

func getBoolParam(r *http.Request, param string) (*bool, *exception.CustomError) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return nil, nil
	}
	result, err := strconv.ParseBool(value)
	if err != nil {
		return nil, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.IncorrectParamType,
			Message: exception.IncorrectParamTypeMsg,
			Field:   param,
			Params:  map[string]interface{}{"param": param, "type": "boolean"},
			Debug:   err.Error(),
		}
	}
	return &result, nil
}

func getDateParam(r *http.Request, param string) (*time.Time, *exception.CustomError) {
	value := r.URL.Query().Get(param)
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateParamLayouts {
		if result, err := time.Parse(layout, value); err == nil {
			return &result, nil
		}
	}
	return nil, &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.IncorrectParamType,
		Message: exception.IncorrectParamTypeMsg,
		Field:   param,
		Params:  map[string]interface{}{"param": param, "type": "date"},
	}
}

func getPagingParams(r *http.Request) (int, int, *exception.CustomError) {
	page := 1
	rowsPerPage := service.DefaultRowsPerPage
	var err error
	if value := r.URL.Query().Get("page"); value != "" {
		page, err = strconv.Atoi(value)
		if err != nil {
			return 0, 0, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.IncorrectParamType,
				Message: exception.IncorrectParamTypeMsg,
				Field:   "page",
				Params:  map[string]interface{}{"param": "page", "type": "int"},
				Debug:   err.Error(),
			}
		}
		if page < 1 {
			return 0, 0, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidPageMsg,
				Field:   "page",
				Params:  map[string]interface{}{"value": page},
			}
		}
	}
	if value := r.URL.Query().Get("rows_per_page"); value != "" {
		rowsPerPage, err = strconv.Atoi(value)
		if err != nil {
			return 0, 0, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.IncorrectParamType,
				Message: exception.IncorrectParamTypeMsg,
				Field:   "rows_per_page",
				Params:  map[string]interface{}{"param": "rows_per_page", "type": "int"},
				Debug:   err.Error(),
			}
		}
		if rowsPerPage < 1 || rowsPerPage > service.MaxRowsPerPage {
			return 0, 0, &exception.CustomError{
				Status:  http.StatusBadRequest,
				Code:    exception.InvalidParameterValue,
				Message: exception.InvalidLimitMsg,
				Field:   "rows_per_page",
				Params:  map[string]interface{}{"param": "rows_per_page", "value": rowsPerPage, "maxLimit": service.MaxRowsPerPage},
			}
		}
	}
	return page, rowsPerPage, nil
}

func enumParamError(err error) *exception.CustomError {
	var enumErr *view.EnumError
	if !errors.As(err, &enumErr) {
		return &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Debug:   err.Error(),
		}
	}
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.InvalidEnumValue,
		Message: exception.InvalidEnumValueMsg,
		Field:   enumErr.Param,
		Params:  map[string]interface{}{"param": enumErr.Param, "value": enumErr.Value, "allowed": enumErr.AllowedString()},
	}
}

func respondWithAttachment(w http.ResponseWriter, filename string, write func(w io.Writer) error) {
	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%v"`, filename))
	w.Header().Set("Content-Transfer-Encoding", "binary")
	w.Header().Set("Expires", "0")
	if err := write(w); err != nil {
		log.Errorf("Failed to write attachment %s: %v", filename, err)
	}
}
