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

import (
	"fmt"
	"strings"
)

type UpdateStatus string

const (
	StatusPending  UpdateStatus = "pending"
	StatusTesting  UpdateStatus = "testing"
	StatusStable   UpdateStatus = "stable"
	StatusObsolete UpdateStatus = "obsolete"
	StatusUnpushed UpdateStatus = "unpushed"
)

var UpdateStatuses = []string{"pending", "testing", "stable", "obsolete", "unpushed"}

func ParseUpdateStatus(s string) (UpdateStatus, error) {
	if err := checkEnum("status", s, UpdateStatuses); err != nil {
		return "", err
	}
	return UpdateStatus(s), nil
}

type UpdateRequest string

const (
	RequestTesting  UpdateRequest = "testing"
	RequestStable   UpdateRequest = "stable"
	RequestObsolete UpdateRequest = "obsolete"
	RequestUnpush   UpdateRequest = "unpush"
)

var UpdateRequests = []string{"testing", "stable", "obsolete", "unpush"}

func ParseUpdateRequest(s string) (UpdateRequest, error) {
	if err := checkEnum("request", s, UpdateRequests); err != nil {
		return "", err
	}
	return UpdateRequest(s), nil
}

type UpdateType string

const (
	TypeBugfix      UpdateType = "bugfix"
	TypeEnhancement UpdateType = "enhancement"
	TypeSecurity    UpdateType = "security"
	TypeNewPackage  UpdateType = "newpackage"
)

var UpdateTypes = []string{"bugfix", "enhancement", "security", "newpackage"}

func ParseUpdateType(s string) (UpdateType, error) {
	if err := checkEnum("type", s, UpdateTypes); err != nil {
		return "", err
	}
	return UpdateType(s), nil
}

type UpdateSeverity string

const (
	SeverityUnspecified UpdateSeverity = "unspecified"
	SeverityLow         UpdateSeverity = "low"
	SeverityMedium      UpdateSeverity = "medium"
	SeverityHigh        UpdateSeverity = "high"
	SeverityUrgent      UpdateSeverity = "urgent"
)

var UpdateSeverities = []string{"unspecified", "low", "medium", "high", "urgent"}

func ParseUpdateSeverity(s string) (UpdateSeverity, error) {
	if err := checkEnum("severity", s, UpdateSeverities); err != nil {
		return "", err
	}
	return UpdateSeverity(s), nil
}

type UpdateSuggestion string

const (
	SuggestUnspecified UpdateSuggestion = "unspecified"
	SuggestReboot      UpdateSuggestion = "reboot"
	SuggestLogout      UpdateSuggestion = "logout"
)

var UpdateSuggestions = []string{"unspecified", "reboot", "logout"}

func ParseUpdateSuggestion(s string) (UpdateSuggestion, error) {
	if err := checkEnum("suggest", s, UpdateSuggestions); err != nil {
		return "", err
	}
	return UpdateSuggestion(s), nil
}

type EnumError struct {
	Param   string
	Value   string
	Allowed []string
}

func (e EnumError) Error() string {
	return fmt.Sprintf("unknown %s: %v", e.Param, e.Value)
}

func (e EnumError) AllowedString() string {
	return strings.Join(e.Allowed, ", ")
}

func checkEnum(param string, value string, allowed []string) error {
	for _, a := range allowed {
		if a == value {
			return nil
		}
	}
	return &EnumError{Param: param, Value: value, Allowed: allowed}
}
