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

import "time"

type Update struct {
	Id                   string     `json:"id"`
	Title                string     `json:"title"`
	Alias                string     `json:"alias"`
	Status               string     `json:"status"`
	Request              *string    `json:"request"`
	Type                 string     `json:"type"`
	Severity             string     `json:"severity"`
	Suggest              string     `json:"suggest"`
	Notes                string     `json:"notes"`
	Locked               bool       `json:"locked"`
	Critpath             bool       `json:"critpath"`
	Pushed               bool       `json:"pushed"`
	QaApproved           bool       `json:"qa_approved"`
	QaApprovalDate       *time.Time `json:"qa_approval_date"`
	RelengApproved       bool       `json:"releng_approved"`
	RelengApprovalDate   *time.Time `json:"releng_approval_date"`
	SecurityApproved     bool       `json:"security_approved"`
	SecurityApprovalDate *time.Time `json:"security_approval_date"`
	DateSubmitted        time.Time  `json:"date_submitted"`
	DateModified         *time.Time `json:"date_modified"`
	DateApproved         *time.Time `json:"date_approved"`
	DatePushed           *time.Time `json:"date_pushed"`
	Release              string     `json:"release"`
	User                 string     `json:"user"`
	Builds               []string   `json:"builds"`
	Bugs                 []int64    `json:"bugs"`
	Cves                 []string   `json:"cves"`
}

type UpdateSaveReq struct {
	Builds   []string `json:"builds" validate:"required,min=1"`
	Edited   string   `json:"edited"`
	Type     string   `json:"type"`
	Notes    string   `json:"notes"`
	Bugs     []int64  `json:"bugs"`
	Cves     []string `json:"cves"`
	Request  *string  `json:"request"`
	Status   string   `json:"status"`
	Severity string   `json:"severity"`
	Suggest  string   `json:"suggest"`
}

type Updates struct {
	Updates     []Update `json:"updates"`
	Page        int      `json:"page"`
	Pages       int      `json:"pages"`
	RowsPerPage int      `json:"rows_per_page"`
	Total       int      `json:"total"`
}

// UpdateFilters is a set of independent optional conditions, nil or empty means no restriction
type UpdateFilters struct {
	ApprovedSince         *time.Time
	Bugs                  []int64
	Critpath              *bool
	Cves                  []string
	Locked                *bool
	ModifiedSince         *time.Time
	Packages              []string
	Pushed                *bool
	PushedSince           *time.Time
	QaApproved            *bool
	QaApprovedSince       *time.Time
	Releases              []string
	RelengApproved        *bool
	RelengApprovedSince   *time.Time
	Request               *UpdateRequest
	SecurityApproved      *bool
	SecurityApprovedSince *time.Time
	Severity              *UpdateSeverity
	Status                *UpdateStatus
	SubmittedSince        *time.Time
	Suggest               *UpdateSuggestion
	Type                  *UpdateType
	User                  *string
}

type UpdateListReq struct {
	Filters     UpdateFilters
	Page        int
	RowsPerPage int
}

type UpdateAction string

const (
	UpdateActionNew  UpdateAction = "update.new"
	UpdateActionEdit UpdateAction = "update.edit"
)

type UpdateChangedEvent struct {
	EventId   string       `json:"event_id"`
	Action    UpdateAction `json:"action"`
	Agent     string       `json:"agent"`
	Timestamp time.Time    `json:"timestamp"`
	Update    Update       `json:"update"`
}
