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

package entity

import (
	"time"

	"github.com/fedora-infra/bodhi-service/view"
)

type UpdateEntity struct {
	tableName struct{} `pg:"updates, alias:updates"`

	Id                   string     `pg:"id, pk, type:varchar"`
	Title                string     `pg:"title, type:varchar"`
	Alias                string     `pg:"alias, type:varchar"`
	Status               string     `pg:"status, type:varchar"`
	Request              *string    `pg:"request, type:varchar"`
	Type                 string     `pg:"type, type:varchar"`
	Severity             string     `pg:"severity, type:varchar"`
	Suggest              string     `pg:"suggest, type:varchar"`
	Notes                string     `pg:"notes, type:varchar, use_zero"`
	Locked               bool       `pg:"locked, use_zero"`
	Critpath             bool       `pg:"critpath, use_zero"`
	Pushed               bool       `pg:"pushed, use_zero"`
	QaApproved           bool       `pg:"qa_approved, use_zero"`
	QaApprovalDate       *time.Time `pg:"qa_approval_date, type:timestamp without time zone"`
	RelengApproved       bool       `pg:"releng_approved, use_zero"`
	RelengApprovalDate   *time.Time `pg:"releng_approval_date, type:timestamp without time zone"`
	SecurityApproved     bool       `pg:"security_approved, use_zero"`
	SecurityApprovalDate *time.Time `pg:"security_approval_date, type:timestamp without time zone"`
	DateSubmitted        time.Time  `pg:"date_submitted, type:timestamp without time zone"`
	DateModified         *time.Time `pg:"date_modified, type:timestamp without time zone"`
	DateApproved         *time.Time `pg:"date_approved, type:timestamp without time zone"`
	DatePushed           *time.Time `pg:"date_pushed, type:timestamp without time zone"`
	ReleaseName          string     `pg:"release_name, type:varchar"`
	UserName             string     `pg:"user_name, type:varchar"`
}

// UpdateRichEntity is an update together with its associations
type UpdateRichEntity struct {
	UpdateEntity
	Builds   []string
	Packages []string
	Bugs     []int64
	Cves     []string
}

type UpdateBuildEntity struct {
	tableName struct{} `pg:"update_build, alias:update_build"`

	UpdateId string `pg:"update_id, pk, type:varchar"`
	Nvr      string `pg:"nvr, pk, type:varchar"`
	Open     bool   `pg:"open, use_zero"`
}

type UpdateBugEntity struct {
	tableName struct{} `pg:"update_bug, alias:update_bug"`

	UpdateId string `pg:"update_id, pk, type:varchar"`
	BugId    int64  `pg:"bug_id, pk, type:bigint"`
}

type UpdateCveEntity struct {
	tableName struct{} `pg:"update_cve, alias:update_cve"`

	UpdateId string `pg:"update_id, pk, type:varchar"`
	CveId    string `pg:"cve_id, pk, type:varchar"`
}

func MakeUpdateView(ent *UpdateRichEntity) *view.Update {
	builds := ent.Builds
	if builds == nil {
		builds = []string{}
	}
	bugs := ent.Bugs
	if bugs == nil {
		bugs = []int64{}
	}
	cves := ent.Cves
	if cves == nil {
		cves = []string{}
	}
	return &view.Update{
		Id:                   ent.Id,
		Title:                ent.Title,
		Alias:                ent.Alias,
		Status:               ent.Status,
		Request:              ent.Request,
		Type:                 ent.Type,
		Severity:             ent.Severity,
		Suggest:              ent.Suggest,
		Notes:                ent.Notes,
		Locked:               ent.Locked,
		Critpath:             ent.Critpath,
		Pushed:               ent.Pushed,
		QaApproved:           ent.QaApproved,
		QaApprovalDate:       ent.QaApprovalDate,
		RelengApproved:       ent.RelengApproved,
		RelengApprovalDate:   ent.RelengApprovalDate,
		SecurityApproved:     ent.SecurityApproved,
		SecurityApprovalDate: ent.SecurityApprovalDate,
		DateSubmitted:        ent.DateSubmitted,
		DateModified:         ent.DateModified,
		DateApproved:         ent.DateApproved,
		DatePushed:           ent.DatePushed,
		Release:              ent.ReleaseName,
		User:                 ent.UserName,
		Builds:               builds,
		Bugs:                 bugs,
		Cves:                 cves,
	}
}
