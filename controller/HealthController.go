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
	"net/http"
	"sync/atomic"
	"time"

	"github.com/fedora-infra/bodhi-service/utils"
	log "github.com/sirupsen/logrus"
)

const readinessCheckTimeout = 2 * time.Second

type HealthController interface {
	HandleReadyRequest(w http.ResponseWriter, r *http.Request)
	HandleLiveRequest(w http.ResponseWriter, r *http.Request)
}

// NewHealthController reports readiness once readyChan delivers true and the database answers ping
func NewHealthController(readyChan chan bool, dbPing func(ctx context.Context) error) HealthController {
	c := healthControllerImpl{dbPing: dbPing}
	utils.SafeAsync(func() {
		c.watchReady(readyChan)
	})
	return &c
}

type healthControllerImpl struct {
	ready  atomic.Bool
	dbPing func(ctx context.Context) error
}

func (h *healthControllerImpl) HandleReadyRequest(w http.ResponseWriter, r *http.Request) {
	if !h.ready.Load() {
		w.WriteHeader(http.StatusNotFound) // any code >= 400
		return
	}
	if h.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), readinessCheckTimeout)
		defer cancel()
		if err := h.dbPing(ctx); err != nil {
			log.Warnf("Readiness check failed: database is not available: %v", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func (h *healthControllerImpl) HandleLiveRequest(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (h *healthControllerImpl) watchReady(readyChan chan bool) {
	h.ready.Store(<-readyChan)
}
