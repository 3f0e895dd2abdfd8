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
	goctx "context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fedora-infra/bodhi-service/context"
	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/fedora-infra/bodhi-service/view"
	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockUpdateService struct {
	SaveUpdateFunc func(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error)
	GetUpdatesFunc func(req view.UpdateListReq) (*view.Updates, error)
}

func (m *mockUpdateService) SaveUpdate(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error) {
	return m.SaveUpdateFunc(ctx, secCtx, req)
}

func (m *mockUpdateService) GetUpdates(req view.UpdateListReq) (*view.Updates, error) {
	return m.GetUpdatesFunc(req)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) exception.CustomError {
	var customErr exception.CustomError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customErr))
	return customErr
}

func TestGetUpdates_ParsesFilters(t *testing.T) {
	var captured view.UpdateListReq
	svc := &mockUpdateService{GetUpdatesFunc: func(req view.UpdateListReq) (*view.Updates, error) {
		captured = req
		return &view.Updates{Updates: []view.Update{}, Page: req.Page, RowsPerPage: req.RowsPerPage}, nil
	}}
	controller := NewUpdateController(svc)

	req := httptest.NewRequest(http.MethodGet, "/updates/?bugs=1234,5678&cves=CVE-2024-12345&packages=bodhi&packages=kernel"+
		"&releases=f20&critpath=true&locked=false&pushed_since=2024-01-02&submitted_since=2024-01-02T10:00:00Z"+
		"&request=testing&severity=urgent&status=pending&suggest=reboot&type=security&user=guest&page=2&rows_per_page=5", nil)
	rec := httptest.NewRecorder()
	controller.GetUpdates(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	filters := captured.Filters
	assert.Equal(t, []int64{1234, 5678}, filters.Bugs)
	assert.Equal(t, []string{"CVE-2024-12345"}, filters.Cves)
	assert.Equal(t, []string{"bodhi", "kernel"}, filters.Packages)
	assert.Equal(t, []string{"f20"}, filters.Releases)
	require.NotNil(t, filters.Critpath)
	assert.True(t, *filters.Critpath)
	require.NotNil(t, filters.Locked)
	assert.False(t, *filters.Locked)
	assert.Nil(t, filters.Pushed)
	require.NotNil(t, filters.PushedSince)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), *filters.PushedSince)
	require.NotNil(t, filters.SubmittedSince)
	assert.Equal(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), filters.SubmittedSince.UTC())
	assert.Nil(t, filters.ModifiedSince)
	assert.Equal(t, view.UpdateRequest("testing"), *filters.Request)
	assert.Equal(t, view.UpdateSeverity("urgent"), *filters.Severity)
	assert.Equal(t, view.UpdateStatus("pending"), *filters.Status)
	assert.Equal(t, view.UpdateSuggestion("reboot"), *filters.Suggest)
	assert.Equal(t, view.UpdateType("security"), *filters.Type)
	assert.Equal(t, "guest", *filters.User)
	assert.Equal(t, 2, captured.Page)
	assert.Equal(t, 5, captured.RowsPerPage)
}

func TestGetUpdates_DefaultPaging(t *testing.T) {
	var captured view.UpdateListReq
	svc := &mockUpdateService{GetUpdatesFunc: func(req view.UpdateListReq) (*view.Updates, error) {
		captured = req
		return &view.Updates{Updates: []view.Update{}}, nil
	}}
	rec := httptest.NewRecorder()
	NewUpdateController(svc).GetUpdates(rec, httptest.NewRequest(http.MethodGet, "/updates/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, captured.Page)
	assert.Equal(t, 20, captured.RowsPerPage)
	assert.Empty(t, captured.Filters.Bugs)
	assert.Nil(t, captured.Filters.Type)
}

func TestGetUpdates_InvalidParameters(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedCode  string
		expectedField string
	}{
		{name: "Negative bug", query: "bugs=-1", expectedCode: exception.InvalidParameterValue, expectedField: "bugs"},
		{name: "Not a bug number", query: "bugs=abc", expectedCode: exception.InvalidParameterValue, expectedField: "bugs"},
		{name: "Malformed CVE", query: "cves=CVE-24-1", expectedCode: exception.InvalidParameterValue, expectedField: "cves"},
		{name: "Not a boolean", query: "critpath=maybe", expectedCode: exception.IncorrectParamType, expectedField: "critpath"},
		{name: "Not a date", query: "modified_since=yesterday", expectedCode: exception.IncorrectParamType, expectedField: "modified_since"},
		{name: "Unknown type", query: "type=feature", expectedCode: exception.InvalidEnumValue, expectedField: "type"},
		{name: "Unknown status", query: "status=gone", expectedCode: exception.InvalidEnumValue, expectedField: "status"},
		{name: "Page below one", query: "page=0", expectedCode: exception.InvalidParameterValue, expectedField: "page"},
		{name: "Too many rows", query: "rows_per_page=101", expectedCode: exception.InvalidParameterValue, expectedField: "rows_per_page"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUpdateService{GetUpdatesFunc: func(req view.UpdateListReq) (*view.Updates, error) {
				t.Fatal("service must not be called")
				return nil, nil
			}}
			rec := httptest.NewRecorder()
			NewUpdateController(svc).GetUpdates(rec, httptest.NewRequest(http.MethodGet, "/updates/?"+tt.query, nil))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			customErr := decodeError(t, rec)
			assert.Equal(t, tt.expectedCode, customErr.Code)
			assert.Equal(t, tt.expectedField, customErr.Field)
		})
	}
}

func newSaveRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/updates/", strings.NewReader(body))
	return auth.RequestWithUser(auth.NewUserInfo("guest", "guest", []string{"packager"}, auth.Extensions{}), req)
}

func TestSaveUpdate(t *testing.T) {
	var capturedReq view.UpdateSaveReq
	var capturedUser string
	svc := &mockUpdateService{SaveUpdateFunc: func(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error) {
		capturedReq = req
		capturedUser = secCtx.GetUserId()
		return &view.Update{Title: "bodhi-2.0-1.fc20", Alias: "FEDORA-2024-0123456789"}, nil
	}}
	rec := httptest.NewRecorder()
	NewUpdateController(svc).SaveUpdate(rec, newSaveRequest(`{"builds": ["bodhi-2.0-1.fc20"], "bugs": [1234], "cves": ["CVE-2024-1234"], "type": "bugfix", "notes": "fix"}`))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "guest", capturedUser)
	assert.Equal(t, []string{"bodhi-2.0-1.fc20"}, capturedReq.Builds)
	assert.Equal(t, []int64{1234}, capturedReq.Bugs)
	var update view.Update
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &update))
	assert.Equal(t, "FEDORA-2024-0123456789", update.Alias)
}

func TestSaveUpdate_RejectedBeforeService(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		expectedCode string
	}{
		{name: "Malformed body", body: `{"builds": `, expectedCode: exception.BadRequestBody},
		{name: "No builds", body: `{"notes": "fix"}`, expectedCode: exception.RequiredParamsMissing},
		{name: "Zero bug", body: `{"builds": ["bodhi-2.0-1.fc20"], "bugs": [0]}`, expectedCode: exception.InvalidParameterValue},
		{name: "Malformed CVE", body: `{"builds": ["bodhi-2.0-1.fc20"], "cves": ["CVE-2024"]}`, expectedCode: exception.InvalidParameterValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUpdateService{SaveUpdateFunc: func(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error) {
				t.Fatal("service must not be called")
				return nil, nil
			}}
			rec := httptest.NewRecorder()
			NewUpdateController(svc).SaveUpdate(rec, newSaveRequest(tt.body))

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.expectedCode, decodeError(t, rec).Code)
		})
	}
}

func TestSaveUpdate_ServiceErrorStatusIsKept(t *testing.T) {
	svc := &mockUpdateService{SaveUpdateFunc: func(ctx goctx.Context, secCtx context.SecurityContext, req view.UpdateSaveReq) (*view.Update, error) {
		return nil, &exception.CustomError{
			Status:  http.StatusForbidden,
			Code:    exception.InsufficientPrivileges,
			Message: exception.InsufficientPrivilegesMsg,
		}
	}}
	rec := httptest.NewRecorder()
	NewUpdateController(svc).SaveUpdate(rec, newSaveRequest(`{"builds": ["bodhi-2.0-1.fc20"]}`))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, exception.InsufficientPrivileges, decodeError(t, rec).Code)
}
