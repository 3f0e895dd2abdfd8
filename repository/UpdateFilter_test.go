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
	"testing"
	"time"

	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderUpdatesQuery(t *testing.T, filters view.UpdateFilters) string {
	conn := pg.Connect(&pg.Options{Addr: "localhost:0"})
	defer conn.Close()
	var ents []entity.UpdateEntity
	query := applyUpdateFilters(conn.Model(&ents), filters)
	sql, err := orm.NewSelectQuery(query).AppendQuery(orm.NewFormatter(), nil)
	require.NoError(t, err)
	return string(sql)
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func TestComposeUpdateFilterClauses_EmptyFilters(t *testing.T) {
	clauses := composeUpdateFilterClauses(view.UpdateFilters{})
	assert.Empty(t, clauses)

	sql := renderUpdatesQuery(t, view.UpdateFilters{})
	assert.NotContains(t, sql, "WHERE")
}

func TestComposeUpdateFilterClauses_SingleOption(t *testing.T) {
	since := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	status := view.StatusStable
	request := view.RequestTesting
	severity := view.SeverityUrgent
	suggest := view.SuggestReboot
	updateType := view.TypeSecurity

	tests := []struct {
		name     string
		filters  view.UpdateFilters
		option   string
		fragment string
	}{
		{"approved_since", view.UpdateFilters{ApprovedSince: &since}, "approved_since", "updates.date_approved >= '2024-01-02"},
		{"bugs", view.UpdateFilters{Bugs: []int64{1001, 1002}}, "bugs", "ub.bug_id in (1001,1002)"},
		{"critpath", view.UpdateFilters{Critpath: boolPtr(true)}, "critpath", "updates.critpath = TRUE"},
		{"cves", view.UpdateFilters{Cves: []string{"CVE-2024-0001"}}, "cves", "uc.cve_id in ('CVE-2024-0001')"},
		{"locked", view.UpdateFilters{Locked: boolPtr(false)}, "locked", "updates.locked = FALSE"},
		{"modified_since", view.UpdateFilters{ModifiedSince: &since}, "modified_since", "updates.date_modified >= '2024-01-02"},
		{"packages", view.UpdateFilters{Packages: []string{"bodhi"}}, "packages", "b.package_name in ('bodhi')"},
		{"pushed", view.UpdateFilters{Pushed: boolPtr(true)}, "pushed", "updates.pushed = TRUE"},
		{"pushed_since", view.UpdateFilters{PushedSince: &since}, "pushed_since", "updates.date_pushed >= '2024-01-02"},
		{"qa_approved", view.UpdateFilters{QaApproved: boolPtr(true)}, "qa_approved", "updates.qa_approved = TRUE"},
		{"qa_approved_since", view.UpdateFilters{QaApprovedSince: &since}, "qa_approved_since", "updates.qa_approval_date >= '2024-01-02"},
		{"releases", view.UpdateFilters{Releases: []string{"F20", "F21"}}, "releases", "updates.release_name in ('F20','F21')"},
		{"releng_approved", view.UpdateFilters{RelengApproved: boolPtr(true)}, "releng_approved", "updates.releng_approved = TRUE"},
		{"releng_approved_since", view.UpdateFilters{RelengApprovedSince: &since}, "releng_approved_since", "updates.releng_approval_date >= '2024-01-02"},
		{"request", view.UpdateFilters{Request: &request}, "request", "updates.request = 'testing'"},
		{"security_approved", view.UpdateFilters{SecurityApproved: boolPtr(true)}, "security_approved", "updates.security_approved = TRUE"},
		{"security_approved_since", view.UpdateFilters{SecurityApprovedSince: &since}, "security_approved_since", "updates.security_approval_date >= '2024-01-02"},
		{"severity", view.UpdateFilters{Severity: &severity}, "severity", "updates.severity = 'urgent'"},
		{"status", view.UpdateFilters{Status: &status}, "status", "updates.status = 'stable'"},
		{"submitted_since", view.UpdateFilters{SubmittedSince: &since}, "submitted_since", "updates.date_submitted >= '2024-01-02"},
		{"suggest", view.UpdateFilters{Suggest: &suggest}, "suggest", "updates.suggest = 'reboot'"},
		{"type", view.UpdateFilters{Type: &updateType}, "type", "updates.type = 'security'"},
		{"user", view.UpdateFilters{User: strPtr("guest")}, "user", "updates.user_name = 'guest'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clauses := composeUpdateFilterClauses(tt.filters)
			require.Len(t, clauses, 1)
			assert.Equal(t, tt.option, clauses[0].option)
			assert.Contains(t, renderUpdatesQuery(t, tt.filters), tt.fragment)
		})
	}
}

func TestComposeUpdateFilterClauses_EmptyListsImposeNothing(t *testing.T) {
	clauses := composeUpdateFilterClauses(view.UpdateFilters{
		Bugs:     []int64{},
		Cves:     []string{},
		Packages: []string{},
		Releases: []string{},
	})
	assert.Empty(t, clauses)
}

func TestComposeUpdateFilterClauses_Idempotent(t *testing.T) {
	status := view.StatusStable
	updateType := view.TypeSecurity
	filters := view.UpdateFilters{
		Status:   &status,
		Releases: []string{"F20"},
		Type:     &updateType,
	}
	assert.Equal(t, renderUpdatesQuery(t, filters), renderUpdatesQuery(t, filters))
}

func TestComposeUpdateFilterClauses_Monotonic(t *testing.T) {
	status := view.StatusStable
	updateType := view.TypeSecurity

	base := view.UpdateFilters{Status: &status}
	narrowed := view.UpdateFilters{Status: &status, Releases: []string{"F20"}}
	narrowest := view.UpdateFilters{Status: &status, Releases: []string{"F20"}, Type: &updateType}

	options := func(f view.UpdateFilters) []string {
		result := make([]string, 0)
		for _, c := range composeUpdateFilterClauses(f) {
			result = append(result, c.option)
		}
		return result
	}

	assert.Subset(t, options(narrowed), options(base))
	assert.Subset(t, options(narrowest), options(narrowed))

	sql := renderUpdatesQuery(t, narrowest)
	assert.Contains(t, sql, "updates.status = 'stable'")
	assert.Contains(t, sql, "updates.release_name in ('F20')")
	assert.Contains(t, sql, "updates.type = 'security'")
	assert.Contains(t, sql, "AND")
}
