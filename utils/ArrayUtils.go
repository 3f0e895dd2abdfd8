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

import "sort"

func SliceContains(slice []string, val string) bool {
	for _, v := range slice {
		if v == val {
			return true
		}
	}
	return false
}

func SliceIntersects(a []string, b []string) bool {
	for _, v := range a {
		if SliceContains(b, v) {
			return true
		}
	}
	return false
}

// SortedUniqueSet returns the distinct values in ascending order
func SortedUniqueSet(slice []string) []string {
	set := map[string]bool{}
	for _, v := range slice {
		set[v] = true
	}
	result := make([]string, 0, len(set))
	for key := range set {
		result = append(result, key)
	}
	sort.Strings(result)
	return result
}

// Difference returns values of a that are not present in b, keeping the order of a
func Difference(a []string, b []string) []string {
	result := make([]string, 0)
	for _, v := range a {
		if !SliceContains(b, v) {
			result = append(result, v)
		}
	}
	return result
}
