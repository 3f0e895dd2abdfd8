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

package view

const UpdateMetricsSheetName = "Stable updates"
const ReleaseColumnName = "Release"

type UpdateTypeSeries struct {
	Label string  `json:"label"`
	Data  [][]int `json:"data"`
}

// UpdateTypeMetrics is a chart friendly representation: every series point is [tick index, count]
type UpdateTypeMetrics struct {
	Data  []UpdateTypeSeries `json:"data"`
	Ticks [][]interface{}    `json:"ticks"`
}

type UpdateCountByStatus struct {
	Release string `pg:"release_name"`
	Status  string `pg:"status"`
	Count   int    `pg:"count"`
}
