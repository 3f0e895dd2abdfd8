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
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"
)

// SafeAsync runs f in a new goroutine and logs a panic instead of crashing the process.
func SafeAsync(f func()) {
	go func() {
		defer func() {
			if err := recover(); err != nil {
				log.Errorf("Async function failed with panic: %v", err)
				log.Debugf("Stacktrace: %v", string(debug.Stack()))
			}
		}()
		f()
	}()
}

func LikeEscaped(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "%", `\%`)
	return strings.ReplaceAll(s, "_", `\_`)
}
