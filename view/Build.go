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

package view

type BuildInfo struct {
	Id          int64  `json:"build_id"`
	Nvr         string `json:"nvr"`
	PackageName string `json:"package_name"`
	Version     string `json:"version"`
	Release     string `json:"release"`
	Epoch       *int   `json:"epoch"`
	State       int    `json:"state"`
	Owner       string `json:"owner_name"`
}

type BuildTag struct {
	Id   int64  `json:"id"`
	Name string `json:"name"`
}

type BuildSystemPackage struct {
	Id   int64  `json:"package_id"`
	Name string `json:"package_name"`
}

type LatestCandidates struct {
	Builds []string `json:"builds"`
}
