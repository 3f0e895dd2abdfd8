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

import "github.com/fedora-infra/bodhi-service/view"

type ReleaseEntity struct {
	tableName struct{} `pg:"releases, alias:releases"`

	Name         string `pg:"name, pk, type:varchar"`
	LongName     string `pg:"long_name, type:varchar"`
	Version      string `pg:"version, type:varchar"`
	IdPrefix     string `pg:"id_prefix, type:varchar"`
	DistTag      string `pg:"dist_tag, type:varchar"`
	CandidateTag string `pg:"candidate_tag, type:varchar"`
	TestingTag   string `pg:"testing_tag, type:varchar"`
	StableTag    string `pg:"stable_tag, type:varchar"`
	Locked       bool   `pg:"locked, use_zero"`
}

func MakeReleaseView(ent *ReleaseEntity) *view.Release {
	return &view.Release{
		Name:         ent.Name,
		LongName:     ent.LongName,
		Version:      ent.Version,
		IdPrefix:     ent.IdPrefix,
		DistTag:      ent.DistTag,
		CandidateTag: ent.CandidateTag,
		TestingTag:   ent.TestingTag,
		StableTag:    ent.StableTag,
		Locked:       ent.Locked,
	}
}
