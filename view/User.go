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

type User struct {
	Name   string   `json:"name"`
	Email  string   `json:"email,omitempty"`
	Groups []string `json:"groups"`
	Avatar string   `json:"avatar"`
}

type Users struct {
	Users       []User `json:"users"`
	Page        int    `json:"page"`
	Pages       int    `json:"pages"`
	RowsPerPage int    `json:"rows_per_page"`
	Total       int    `json:"total"`
}

type UsersListReq struct {
	Like        string
	Search      string
	Name        string
	Groups      []string
	Updates     []string
	Packages    []string
	Page        int
	RowsPerPage int
}

type AdminInfo struct {
	User       string   `json:"user"`
	Principals []string `json:"principals"`
}
