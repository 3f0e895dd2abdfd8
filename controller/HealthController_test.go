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
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func readyStatus(c HealthController) int {
	rec := httptest.NewRecorder()
	c.HandleReadyRequest(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	return rec.Code
}

func TestHealthController_Ready(t *testing.T) {
	readyChan := make(chan bool)
	var dbErr error
	c := NewHealthController(readyChan, func(ctx context.Context) error { return dbErr })

	assert.Equal(t, http.StatusNotFound, readyStatus(c))

	readyChan <- true
	assert.Eventually(t, func() bool { return readyStatus(c) == http.StatusOK }, time.Second, 10*time.Millisecond)

	dbErr = errors.New("connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, readyStatus(c))
}

func TestHealthController_Live(t *testing.T) {
	c := NewHealthController(make(chan bool), nil)
	rec := httptest.NewRecorder()
	c.HandleLiveRequest(rec, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
