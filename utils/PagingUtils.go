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

package utils

// PageOffset converts 1-based page number to the number of rows to skip
func PageOffset(page int, rowsPerPage int) int {
	if page < 1 || rowsPerPage < 1 {
		return 0
	}
	return (page - 1) * rowsPerPage
}

func PagesCount(total int, rowsPerPage int) int {
	if total <= 0 || rowsPerPage < 1 {
		return 0
	}
	return (total + rowsPerPage - 1) / rowsPerPage
}
