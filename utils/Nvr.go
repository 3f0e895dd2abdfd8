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

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type Nvr struct {
	Name    string
	Version string
	Release string
}

func (n Nvr) String() string {
	return n.Name + "-" + n.Version + "-" + n.Release
}

// DistTags returns the dot separated segments of the release, last one first (1.fc20 -> fc20, 1)
func (n Nvr) DistTags() []string {
	parts := strings.Split(n.Release, ".")
	result := make([]string, 0, len(parts))
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			result = append(result, parts[i])
		}
	}
	return result
}

var rpmVersionRegexp = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._+~^]*$`)
var rpmNameRegexp = regexp.MustCompile(`^[A-Za-z0-9._+-]+$`)

// ParseNvr splits name-version-release on the last two dashes.
// Name may contain dashes, version and release may not.
func ParseNvr(nvr string) (*Nvr, error) {
	if nvr == "" {
		return nil, fmt.Errorf("empty build identifier")
	}
	if strings.ContainsAny(nvr, " \t\r\n/:") {
		return nil, fmt.Errorf("build identifier contains forbidden characters")
	}
	lastDash := strings.LastIndex(nvr, "-")
	if lastDash <= 0 {
		return nil, fmt.Errorf("build identifier has no release part")
	}
	release := nvr[lastDash+1:]
	rest := nvr[:lastDash]
	versionDash := strings.LastIndex(rest, "-")
	if versionDash <= 0 {
		return nil, fmt.Errorf("build identifier has no version part")
	}
	result := &Nvr{
		Name:    rest[:versionDash],
		Version: rest[versionDash+1:],
		Release: release,
	}
	if result.Version == "" || result.Release == "" {
		return nil, fmt.Errorf("build identifier has empty version or release")
	}
	if !rpmNameRegexp.MatchString(result.Name) {
		return nil, fmt.Errorf("invalid package name '%s'", result.Name)
	}
	return result, nil
}

// ValidateRpmVersion checks a version (or release) component against RPM grammar:
// alphanumeric segments separated by '.', '_', '+', with '~' and '^' allowed as sort modifiers.
func ValidateRpmVersion(version string) error {
	if !rpmVersionRegexp.MatchString(version) {
		return fmt.Errorf("'%s' does not match RPM version grammar", version)
	}
	if strings.Contains(version, "..") {
		return fmt.Errorf("'%s' contains empty segment", version)
	}
	return nil
}

// MakeUpdateTitle builds the canonical title: sorted NVRs joined by a single space.
func MakeUpdateTitle(nvrs []string) string {
	sorted := make([]string, len(nvrs))
	copy(sorted, nvrs)
	sort.Strings(sorted)
	return strings.Join(sorted, " ")
}
