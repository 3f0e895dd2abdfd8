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
	"fmt"
	"time"

	"github.com/fedora-infra/bodhi-service/view"
	"github.com/xuri/excelize/v2"
)

type ExcelService interface {
	ExportUpdateTypeMetrics(updateMetrics *view.UpdateTypeMetrics) (*excelize.File, string, error)
}

func NewExcelService() ExcelService {
	return &excelServiceImpl{}
}

type excelServiceImpl struct {
}

func (e excelServiceImpl) ExportUpdateTypeMetrics(updateMetrics *view.UpdateTypeMetrics) (*excelize.File, string, error) {
	var err error
	workbook := excelize.NewFile()
	report := updateMetricsReport{
		workbook: workbook,
	}
	err = report.createResultSheet(updateMetrics)
	if err != nil {
		return nil, "", err
	}
	err = report.workbook.DeleteSheet("Sheet1")
	if err != nil {
		return nil, "", fmt.Errorf("failed to delete default Sheet1: %v", err.Error())
	}
	filename := fmt.Sprintf("update_metrics_%v.xlsx", time.Now().Format("2006-01-02 15-04-05"))
	return report.workbook, filename, nil
}

type updateMetricsReport struct {
	workbook *excelize.File
}

// createResultSheet writes one row per release and one column per update type
func (u *updateMetricsReport) createResultSheet(updateMetrics *view.UpdateTypeMetrics) error {
	sheetName := view.UpdateMetricsSheetName
	headerStyle := getHeaderStyle(u.workbook)
	evenCellStyle := getEvenCellStyle(u.workbook)
	oddCellStyle := getOddCellStyle(u.workbook)
	_, err := u.workbook.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("failed to create new sheet: %v", err)
	}
	lastColumn, err := excelize.ColumnNumberToName(len(updateMetrics.Data) + 1)
	if err != nil {
		return err
	}
	cells := make(map[string]interface{}, 0)
	cells["A1"] = view.ReleaseColumnName
	u.workbook.SetColWidth(sheetName, "A", "A", 15)
	for i, series := range updateMetrics.Data {
		column, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return err
		}
		cells[column+"1"] = series.Label
		u.workbook.SetColWidth(sheetName, column, column, 20)
	}
	err = u.workbook.SetCellStyle(sheetName, "A1", lastColumn+"1", headerStyle)
	if err != nil {
		return err
	}

	for releaseIndex, tick := range updateMetrics.Ticks {
		rowIndex := releaseIndex + 2
		cells[fmt.Sprintf("A%d", rowIndex)] = tick[1]
		for i, series := range updateMetrics.Data {
			column, _ := excelize.ColumnNumberToName(i + 2)
			cells[fmt.Sprintf("%s%d", column, rowIndex)] = seriesValue(series, releaseIndex)
		}
		if rowIndex%2 == 0 {
			err = u.workbook.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowIndex), fmt.Sprintf("%s%d", lastColumn, rowIndex), evenCellStyle)
		} else {
			err = u.workbook.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowIndex), fmt.Sprintf("%s%d", lastColumn, rowIndex), oddCellStyle)
		}
		if err != nil {
			return err
		}
	}
	err = setCellsValues(u.workbook, sheetName, cells)
	if err != nil {
		return fmt.Errorf("failed to set cell values: %v", err.Error())
	}
	return nil
}

func seriesValue(series view.UpdateTypeSeries, tick int) int {
	for _, point := range series.Data {
		if len(point) == 2 && point[0] == tick {
			return point[1]
		}
	}
	return 0
}

func setCellsValues(report *excelize.File, sheetName string, columnsValue map[string]interface{}) error {
	for key, value := range columnsValue {
		err := report.SetCellValue(sheetName, key, value)
		if err != nil {
			return err
		}
	}
	return nil
}

func getHeaderStyle(file *excelize.File) (style int) {
	headerStyle, _ := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Family: "Arial",
			Size:   10,
			Color:  "FFFFFF",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E2E5E8", Style: 1},
			{Type: "right", Color: "E2E5E8", Style: 1},
			{Type: "top", Color: "E2E5E8", Style: 1},
			{Type: "bottom", Color: "E2E5E8", Style: 1},
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"3C6EB4"},
			Pattern: 1,
		},
	})
	return headerStyle
}

func getEvenCellStyle(file *excelize.File) (style int) {
	evenCellStyle, _ := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Family: "Arial",
			Size:   10,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E2E5E8", Style: 1},
			{Type: "right", Color: "E2E5E8", Style: 1},
			{Type: "top", Color: "E2E5E8", Style: 1},
			{Type: "bottom", Color: "E2E5E8", Style: 1},
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#F5F7F8"},
			Pattern: 1,
		},
	})
	return evenCellStyle
}

func getOddCellStyle(file *excelize.File) (style int) {
	oddCellStyle, _ := file.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Family: "Arial",
			Size:   10,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "E2E5E8", Style: 1},
			{Type: "right", Color: "E2E5E8", Style: 1},
			{Type: "top", Color: "E2E5E8", Style: 1},
			{Type: "bottom", Color: "E2E5E8", Style: 1},
		},
	})
	return oddCellStyle
}
