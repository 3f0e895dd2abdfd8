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
	"errors"
	"net/http"

	"github.com/fedora-infra/bodhi-service/exception"
	"github.com/go-pg/pg/v10"
)

const uniqueViolationCode = "23505"

// mapUniqueViolation turns a unique constraint violation raised at commit time into a retryable conflict
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr pg.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == uniqueViolationCode {
		return &exception.CustomError{
			Status:  http.StatusConflict,
			Code:    exception.ConcurrentConflict,
			Message: exception.ConcurrentConflictMsg,
			Debug:   pgErr.Field('n'),
		}
	}
	return err
}
