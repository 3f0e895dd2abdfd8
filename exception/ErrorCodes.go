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

package exception

const IncorrectParamType = "5"
const IncorrectParamTypeMsg = "$param parameter should be $type"

const InvalidURLEscape = "6"
const InvalidURLEscapeMsg = "Failed to unescape parameter $param"

const BadRequestBody = "7"
const BadRequestBodyMsg = "Failed to decode body"

const RequiredParamsMissing = "8"
const RequiredParamsMissingMsg = "Required parameters are missing: $params"

const InvalidParameterValue = "9"
const InvalidParameterValueMsg = "Value '$value' is not allowed for parameter $param"
const InvalidParameterValueLengthMsg = "Value '$value' for parameter $param is longer than $maxLen characters"
const InvalidItemsNumberMsg = "Parameter $param must not contain more than $maxItems items"
const InvalidLimitMsg = "Value '$value' is not allowed for parameter $param. Allowed range: 1..$maxLimit"
const InvalidPageMsg = "Value '$value' is not allowed for parameter page. It must be a positive number"

const InvalidListParameterValue = "10"
const InvalidListParameterValueMsg = "Invalid $param specified: $values"

const InvalidEnumValue = "11"
const InvalidEnumValueMsg = "Value '$value' is not a valid $param. Allowed values: $allowed"

const InvalidBuildIdentifier = "100"
const InvalidBuildIdentifierMsg = "Build '$build' is not a valid name-version-release identifier"

const InvalidVersion = "101"
const InvalidVersionMsg = "Build '$build' has invalid version '$version'"

const UnknownBuild = "102"
const UnknownBuildMsg = "Build '$build' does not exist in the build system"

const ReleaseMismatch = "103"
const ReleaseMismatchMsg = "Builds must target a single release, got: $releases"

const UnknownBuildRelease = "104"
const UnknownBuildReleaseMsg = "Build '$build' does not target any known release"

const DuplicateBuild = "105"
const DuplicateBuildMsg = "Build '$build' is already part of update '$update'"

const DuplicateBuildInRequestMsg = "Build '$build' conflicts with another build of package '$package' in the same request"

const UntaggedBuild = "107"
const UntaggedBuildMsg = "Build '$build' is not tagged with any of: $tags"

const InsufficientPrivileges = "108"
const InsufficientPrivilegesMsg = "User '$user' does not have commit access to: $packages"

const UpdateNotFound = "109"
const UpdateNotFoundMsg = "Update '$update' does not exist"

const UpdateLocked = "110"
const UpdateLockedMsg = "Update '$update' is locked and cannot be edited"

const UpdateBuildsFrozen = "111"
const UpdateBuildsFrozenMsg = "Builds of update '$update' cannot be changed in status '$status'"

const ConcurrentConflict = "112"
const ConcurrentConflictMsg = "Update was changed concurrently, please retry"

const UpstreamUnavailable = "120"
const UpstreamUnavailableMsg = "Upstream service '$service' is unavailable"

const UpstreamBadResponse = "121"
const UpstreamBadResponseMsg = "Upstream service '$service' returned an invalid response"

const UserNotFound = "130"
const UserNotFoundMsg = "User '$user' does not exist"

const ReleaseNotFound = "131"
const ReleaseNotFoundMsg = "Release '$release' does not exist"

const AdminAccessRequired = "132"
const AdminAccessRequiredMsg = "User '$user' is not a member of an administrative group"

const NoUserInContext = "133"
const NoUserInContextMsg = "Request is not authenticated"
