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

package utils

import (
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate
var validateOnce sync.Once

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
	return validate
}

// ValidateObject reports missing parameters by their json names. An empty list with a min rule counts as missing.
func ValidateObject(object interface{}) error {
	err := getValidator().Struct(object)
	if err == nil {
		return nil
	}
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	missingParams := make([]string, 0)
	for _, fieldErr := range validationErrors {
		if !isMissingValue(fieldErr) {
			continue
		}
		param := strings.SplitN(fieldErr.Namespace(), ".", 2)
		if len(param) == 2 && !SliceContains(missingParams, param[1]) {
			missingParams = append(missingParams, param[1])
		}
	}
	if len(missingParams) == 0 {
		return nil
	}
	return &exception.CustomError{
		Status:  http.StatusBadRequest,
		Code:    exception.RequiredParamsMissing,
		Message: exception.RequiredParamsMissingMsg,
		Field:   missingParams[0],
		Params:  map[string]interface{}{"params": strings.Join(missingParams, ", ")},
	}
}

func isMissingValue(fieldErr validator.FieldError) bool {
	switch fieldErr.Tag() {
	case "required":
		return true
	case "min":
		kind := fieldErr.Kind()
		return (kind == reflect.Slice || kind == reflect.Map) && reflect.ValueOf(fieldErr.Value()).Len() == 0
	}
	return false
}
