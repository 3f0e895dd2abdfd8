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
	"context"

	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/fedora-infra/bodhi-service/view"
)

// UpdateWrite is the full desired state of an update and its associations
type UpdateWrite struct {
	Update   *entity.UpdateEntity
	Builds   []entity.BuildEntity
	Packages []string
	Bugs     []int64
	Cves     []string
}

type UpdateRepository interface {
	GetUpdateByTitle(title string) (*entity.UpdateRichEntity, error)
	GetOpenUpdateTitlesByBuilds(nvrs []string) (map[string]string, error)
	GetUpdates(filters view.UpdateFilters, offset int, limit int) ([]entity.UpdateRichEntity, int, error)
	CountUpdates(filters view.UpdateFilters) (int, error)
	CountUpdatesByReleaseAndStatus() ([]view.UpdateCountByStatus, error)
	GetExistingUpdateKeys(keys []string) ([]string, error)
	CreateUpdate(ctx context.Context, write UpdateWrite) (*entity.UpdateRichEntity, error)
	// EditUpdate locks the open update with given title and replaces it with the state returned by apply.
	// apply runs inside the transaction, an error returned by it rolls everything back.
	EditUpdate(ctx context.Context, title string, apply func(current *entity.UpdateRichEntity) (*UpdateWrite, error)) (*entity.UpdateRichEntity, error)
}
