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

import "testing"

func TestPageOffset(t *testing.T) {
	offset := PageOffset(1, 20)
	if offset != 0 {
		t.Errorf("Expected offset: 0; Got: %d", offset)
	}

	offset = PageOffset(3, 20)
	if offset != 40 {
		t.Errorf("Expected offset: 40; Got: %d", offset)
	}

	offset = PageOffset(0, 20)
	if offset != 0 {
		t.Errorf("Expected offset: 0; Got: %d", offset)
	}

	offset = PageOffset(-1, 20)
	if offset != 0 {
		t.Errorf("Expected offset: 0; Got: %d", offset)
	}

	offset = PageOffset(2, 0)
	if offset != 0 {
		t.Errorf("Expected offset: 0; Got: %d", offset)
	}
}

func TestPagesCount(t *testing.T) {
	pages := PagesCount(100, 20)
	if pages != 5 {
		t.Errorf("Expected pages: 5; Got: %d", pages)
	}

	pages = PagesCount(101, 20)
	if pages != 6 {
		t.Errorf("Expected pages: 6; Got: %d", pages)
	}

	pages = PagesCount(1, 20)
	if pages != 1 {
		t.Errorf("Expected pages: 1; Got: %d", pages)
	}

	pages = PagesCount(0, 20)
	if pages != 0 {
		t.Errorf("Expected pages: 0; Got: %d", pages)
	}

	pages = PagesCount(10, 0)
	if pages != 0 {
		t.Errorf("Expected pages: 0; Got: %d", pages)
	}
}
