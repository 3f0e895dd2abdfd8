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

package repository

import (
	"time"

	"github.com/fedora-infra/bodhi-service/view"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// updateFilterClause is one independent condition derived from a populated filter option
type updateFilterClause struct {
	option string
	apply  func(q *orm.Query) *orm.Query
}

func whereEqual(column string, value interface{}) func(q *orm.Query) *orm.Query {
	return func(q *orm.Query) *orm.Query {
		return q.Where(column+" = ?", value)
	}
}

func whereSince(column string, since time.Time) func(q *orm.Query) *orm.Query {
	return func(q *orm.Query) *orm.Query {
		return q.Where(column+" >= ?", since)
	}
}

// composeUpdateFilterClauses returns clauses in a stable order for populated options only
func composeUpdateFilterClauses(f view.UpdateFilters) []updateFilterClause {
	clauses := make([]updateFilterClause, 0)
	add := func(option string, apply func(q *orm.Query) *orm.Query) {
		clauses = append(clauses, updateFilterClause{option: option, apply: apply})
	}

	if f.ApprovedSince != nil {
		add("approved_since", whereSince("updates.date_approved", *f.ApprovedSince))
	}
	if len(f.Bugs) > 0 {
		bugs := f.Bugs
		add("bugs", func(q *orm.Query) *orm.Query {
			return q.Where("exists (select 1 from update_bug ub where ub.update_id = updates.id and ub.bug_id in (?))", pg.In(bugs))
		})
	}
	if f.Critpath != nil {
		add("critpath", whereEqual("updates.critpath", *f.Critpath))
	}
	if len(f.Cves) > 0 {
		cves := f.Cves
		add("cves", func(q *orm.Query) *orm.Query {
			return q.Where("exists (select 1 from update_cve uc where uc.update_id = updates.id and uc.cve_id in (?))", pg.In(cves))
		})
	}
	if f.Locked != nil {
		add("locked", whereEqual("updates.locked", *f.Locked))
	}
	if f.ModifiedSince != nil {
		add("modified_since", whereSince("updates.date_modified", *f.ModifiedSince))
	}
	if len(f.Packages) > 0 {
		packages := f.Packages
		add("packages", func(q *orm.Query) *orm.Query {
			return q.Where(`exists (select 1 from update_build ub inner join builds b on b.nvr = ub.nvr
				where ub.update_id = updates.id and b.package_name in (?))`, pg.In(packages))
		})
	}
	if f.Pushed != nil {
		add("pushed", whereEqual("updates.pushed", *f.Pushed))
	}
	if f.PushedSince != nil {
		add("pushed_since", whereSince("updates.date_pushed", *f.PushedSince))
	}
	if f.QaApproved != nil {
		add("qa_approved", whereEqual("updates.qa_approved", *f.QaApproved))
	}
	if f.QaApprovedSince != nil {
		add("qa_approved_since", whereSince("updates.qa_approval_date", *f.QaApprovedSince))
	}
	if len(f.Releases) > 0 {
		releases := f.Releases
		add("releases", func(q *orm.Query) *orm.Query {
			return q.Where("updates.release_name in (?)", pg.In(releases))
		})
	}
	if f.RelengApproved != nil {
		add("releng_approved", whereEqual("updates.releng_approved", *f.RelengApproved))
	}
	if f.RelengApprovedSince != nil {
		add("releng_approved_since", whereSince("updates.releng_approval_date", *f.RelengApprovedSince))
	}
	if f.Request != nil {
		add("request", whereEqual("updates.request", string(*f.Request)))
	}
	if f.SecurityApproved != nil {
		add("security_approved", whereEqual("updates.security_approved", *f.SecurityApproved))
	}
	if f.SecurityApprovedSince != nil {
		add("security_approved_since", whereSince("updates.security_approval_date", *f.SecurityApprovedSince))
	}
	if f.Severity != nil {
		add("severity", whereEqual("updates.severity", string(*f.Severity)))
	}
	if f.Status != nil {
		add("status", whereEqual("updates.status", string(*f.Status)))
	}
	if f.SubmittedSince != nil {
		add("submitted_since", whereSince("updates.date_submitted", *f.SubmittedSince))
	}
	if f.Suggest != nil {
		add("suggest", whereEqual("updates.suggest", string(*f.Suggest)))
	}
	if f.Type != nil {
		add("type", whereEqual("updates.type", string(*f.Type)))
	}
	if f.User != nil {
		add("user", whereEqual("updates.user_name", *f.User))
	}
	return clauses
}

// applyUpdateFilters folds all clauses into the query, every clause narrows the result (AND)
func applyUpdateFilters(query *orm.Query, filters view.UpdateFilters) *orm.Query {
	for _, clause := range composeUpdateFilterClauses(filters) {
		query = clause.apply(query)
	}
	return query
}
