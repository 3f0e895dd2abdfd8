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

package security

import (
	"fmt"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/jwt"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
)

var jwtStrategy auth.Strategy
var keeper jwt.SecretsKeeper

// SetupGoGuardian configures validation of HS256 tokens issued by the session component with the shared secret
func SetupGoGuardian(secret []byte) error {
	if len(secret) == 0 {
		return fmt.Errorf("jwt secret is empty")
	}
	keeper = jwt.StaticSecret{
		ID:        "secret-id",
		Secret:    secret,
		Algorithm: jwt.HS256,
	}

	cache := libcache.LRU.New(1000)
	cache.SetTTL(time.Minute * 60)
	cache.RegisterOnExpired(func(key, _ interface{}) {
		cache.Delete(key)
	})
	jwtStrategy = jwt.New(cache, keeper)
	return nil
}

func IssueUserToken(name string, groups []string, duration time.Duration) (string, error) {
	if keeper == nil {
		return "", fmt.Errorf("authentication is not configured")
	}
	user := auth.NewUserInfo(name, name, groups, auth.Extensions{})
	return jwt.IssueAccessToken(user, keeper, jwt.SetExpDuration(duration))
}
