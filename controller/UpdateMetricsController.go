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
	"io"
	"net/http"

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/service"
	log "github.com/sirupsen/logrus"
)

const (
	formatJson = "json"
	formatXlsx = "xlsx"
)

type UpdateMetricsController interface {
	GetUpdateTypeMetrics(w http.ResponseWriter, r *http.Request)
}

func NewUpdateMetricsController(updateMetricsService service.UpdateMetricsService, excelService service.ExcelService) UpdateMetricsController {
	return &updateMetricsControllerImpl{
		updateMetricsService: updateMetricsService,
		excelService:         excelService,
	}
}

type updateMetricsControllerImpl struct {
	updateMetricsService service.UpdateMetricsService
	excelService         service.ExcelService
}

func (u updateMetricsControllerImpl) GetUpdateTypeMetrics(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = formatJson
	}
	if format != formatJson && format != formatXlsx {
		RespondWithCustomError(w, &exception.CustomError{
			Status:  http.StatusBadRequest,
			Code:    exception.InvalidParameterValue,
			Message: exception.InvalidParameterValueMsg,
			Field:   "format",
			Params:  map[string]interface{}{"param": "format", "value": format},
		})
		return
	}

	metrics, err := u.updateMetricsService.GetUpdateTypeMetrics()
	if err != nil {
		RespondWithError(w, "Failed to get update metrics", err)
		return
	}
	if format == formatJson {
		RespondWithJson(w, http.StatusOK, metrics)
		return
	}

	report, filename, err := u.excelService.ExportUpdateTypeMetrics(metrics)
	if err != nil {
		RespondWithError(w, "Failed to export update metrics", err)
		return
	}
	defer func() {
		if err := report.Close(); err != nil {
			log.Errorf("Failed to close update metrics report: %v", err)
		}
	}()
	respondWithAttachment(w, filename, func(w io.Writer) error {
		return report.Write(w)
	})
}
