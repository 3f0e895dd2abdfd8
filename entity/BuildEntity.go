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

type BuildEntity struct {
	tableName struct{} `pg:"builds, alias:builds"`

	Nvr         string `pg:"nvr, pk, type:varchar"`
	PackageName string `pg:"package_name, type:varchar"`
	ReleaseName string `pg:"release_name, type:varchar"`
}

type BugEntity struct {
	tableName struct{} `pg:"bugs, alias:bugs"`

	BugId int64  `pg:"bug_id, pk, type:bigint"`
	Title string `pg:"title, type:varchar"`
}

type CveEntity struct {
	tableName struct{} `pg:"cves, alias:cves"`

	CveId string `pg:"cve_id, pk, type:varchar"`
}

type PackageEntity struct {
	tableName struct{} `pg:"packages, alias:packages"`

	Name string `pg:"name, pk, type:varchar"`
}
