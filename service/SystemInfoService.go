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

package service

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fedora-infra/bodhi-service/view"
	log "github.com/sirupsen/logrus"
)

const (
	BASE_PATH                  = "BASE_PATH"
	PRODUCTION_MODE            = "PRODUCTION_MODE"
	LOG_LEVEL                  = "LOG_LEVEL"
	LOG_FILE                   = "LOG_FILE"
	LISTEN_ADDRESS             = "LISTEN_ADDRESS"
	ORIGIN_ALLOWED             = "ORIGIN_ALLOWED"
	BODHI_POSTGRESQL_HOST      = "BODHI_POSTGRESQL_HOST"
	BODHI_POSTGRESQL_PORT      = "BODHI_POSTGRESQL_PORT"
	BODHI_POSTGRESQL_DB_NAME   = "BODHI_POSTGRESQL_DB_NAME"
	BODHI_POSTGRESQL_USERNAME  = "BODHI_POSTGRESQL_USERNAME"
	BODHI_POSTGRESQL_PASSWORD  = "BODHI_POSTGRESQL_PASSWORD"
	PG_SSL_MODE                = "PG_SSL_MODE"
	BUILD_SYSTEM_URL           = "BUILD_SYSTEM_URL"
	BUILD_SYSTEM_TIMEOUT_SEC   = "BUILD_SYSTEM_TIMEOUT_SEC"
	BUILD_SYSTEM_RATE_LIMIT    = "BUILD_SYSTEM_RATE_LIMIT"
	PKGDB_URL                  = "PKGDB_URL"
	UPSTREAM_MAX_RETRIES       = "UPSTREAM_MAX_RETRIES"
	ACL_OVERRIDE_GROUPS        = "ACL_OVERRIDE_GROUPS"
	ADMIN_GROUPS               = "ADMIN_GROUPS"
	JWT_SECRET                 = "JWT_SECRET"
	KAFKA_BROKERS              = "KAFKA_BROKERS"
	KAFKA_TOPIC                = "KAFKA_TOPIC"
	METRICS_GETTER_SCHEDULE    = "METRICS_GETTER_SCHEDULE"
	LIBRAVATAR_ENABLED         = "LIBRAVATAR_ENABLED"
)

type SystemInfoService interface {
	Init() error
	GetBasePath() string
	IsProductionMode() bool
	GetLogLevel() string
	GetLogFile() string
	GetListenAddress() string
	GetOriginAllowed() string
	GetCredsFromEnv() *view.DbCredentials
	GetBuildSystemUrl() string
	GetBuildSystemTimeout() time.Duration
	GetBuildSystemRateLimit() int
	GetPkgdbUrl() string
	GetUpstreamMaxRetries() int
	GetAclOverrideGroups() []string
	GetAdminGroups() []string
	GetJwtSecret() []byte
	GetKafkaBrokers() []string
	GetKafkaTopic() string
	GetMetricsGetterSchedule() string
	IsLibravatarEnabled() bool
}

func NewSystemInfoService() (SystemInfoService, error) {
	s := &systemInfoServiceImpl{
		systemInfoMap: make(map[string]interface{})}
	if err := s.Init(); err != nil {
		log.Error("Failed to read system info: " + err.Error())
		return nil, err
	}
	return s, nil
}

type systemInfoServiceImpl struct {
	systemInfoMap map[string]interface{}
}

func (g systemInfoServiceImpl) Init() error {
	g.setString(BASE_PATH, ".")
	if err := g.setBool(PRODUCTION_MODE, false); err != nil {
		return err
	}
	g.setString(LOG_LEVEL, "")
	g.setString(LOG_FILE, "")
	g.setString(LISTEN_ADDRESS, ":8080")
	g.setString(ORIGIN_ALLOWED, "")
	g.setString(BODHI_POSTGRESQL_HOST, "localhost")
	if err := g.setInt(BODHI_POSTGRESQL_PORT, 5432); err != nil {
		return err
	}
	g.setString(BODHI_POSTGRESQL_DB_NAME, "bodhi")
	g.setString(BODHI_POSTGRESQL_USERNAME, "bodhi")
	g.setString(BODHI_POSTGRESQL_PASSWORD, "bodhi")
	g.setString(PG_SSL_MODE, "disable")
	g.setString(BUILD_SYSTEM_URL, "http://localhost:8081")
	if err := g.setInt(BUILD_SYSTEM_TIMEOUT_SEC, 30); err != nil {
		return err
	}
	if err := g.setInt(BUILD_SYSTEM_RATE_LIMIT, 50); err != nil {
		return err
	}
	g.setString(PKGDB_URL, "http://localhost:8082")
	if err := g.setInt(UPSTREAM_MAX_RETRIES, 3); err != nil {
		return err
	}
	g.setList(ACL_OVERRIDE_GROUPS, []string{"provenpackager", "releng"})
	g.setList(ADMIN_GROUPS, []string{"bodhiadmin", "releng"})
	if err := g.setJwtSecret(); err != nil {
		return err
	}
	g.setList(KAFKA_BROKERS, []string{})
	g.setString(KAFKA_TOPIC, "bodhi.update")
	g.setString(METRICS_GETTER_SCHEDULE, "*/5 * * * *") // every 5 minutes
	if err := g.setBool(LIBRAVATAR_ENABLED, false); err != nil {
		return err
	}
	return nil
}

func (g systemInfoServiceImpl) setString(key string, defaultValue string) {
	value := os.Getenv(key)
	if value == "" {
		value = defaultValue
	}
	g.systemInfoMap[key] = value
}

func (g systemInfoServiceImpl) setBool(key string, defaultValue bool) error {
	envVal := os.Getenv(key)
	if envVal == "" {
		g.systemInfoMap[key] = defaultValue
		return nil
	}
	value, err := strconv.ParseBool(envVal)
	if err != nil {
		return fmt.Errorf("failed to parse %v env value: %v", key, err.Error())
	}
	g.systemInfoMap[key] = value
	return nil
}

func (g systemInfoServiceImpl) setInt(key string, defaultValue int) error {
	envVal := os.Getenv(key)
	if envVal == "" {
		g.systemInfoMap[key] = defaultValue
		return nil
	}
	value, err := strconv.Atoi(envVal)
	if err != nil {
		return fmt.Errorf("failed to parse %v env value: %v", key, err.Error())
	}
	g.systemInfoMap[key] = value
	return nil
}

// setList reads a comma separated value
func (g systemInfoServiceImpl) setList(key string, defaultValue []string) {
	envVal := os.Getenv(key)
	if envVal == "" {
		g.systemInfoMap[key] = defaultValue
		return
	}
	result := make([]string, 0)
	for _, item := range strings.Split(envVal, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	g.systemInfoMap[key] = result
}

func (g systemInfoServiceImpl) setJwtSecret() error {
	secret := os.Getenv(JWT_SECRET)
	if secret == "" {
		return fmt.Errorf("env %v is not set or empty", JWT_SECRET)
	}
	g.systemInfoMap[JWT_SECRET] = []byte(secret)
	return nil
}

func (g systemInfoServiceImpl) GetBasePath() string {
	return g.systemInfoMap[BASE_PATH].(string)
}

func (g systemInfoServiceImpl) IsProductionMode() bool {
	return g.systemInfoMap[PRODUCTION_MODE].(bool)
}

func (g systemInfoServiceImpl) GetLogLevel() string {
	return g.systemInfoMap[LOG_LEVEL].(string)
}

func (g systemInfoServiceImpl) GetLogFile() string {
	return g.systemInfoMap[LOG_FILE].(string)
}

func (g systemInfoServiceImpl) GetListenAddress() string {
	return g.systemInfoMap[LISTEN_ADDRESS].(string)
}

func (g systemInfoServiceImpl) GetOriginAllowed() string {
	return g.systemInfoMap[ORIGIN_ALLOWED].(string)
}

func (g systemInfoServiceImpl) GetCredsFromEnv() *view.DbCredentials {
	return &view.DbCredentials{
		Host:     g.systemInfoMap[BODHI_POSTGRESQL_HOST].(string),
		Port:     g.systemInfoMap[BODHI_POSTGRESQL_PORT].(int),
		Database: g.systemInfoMap[BODHI_POSTGRESQL_DB_NAME].(string),
		Username: g.systemInfoMap[BODHI_POSTGRESQL_USERNAME].(string),
		Password: g.systemInfoMap[BODHI_POSTGRESQL_PASSWORD].(string),
		SSLMode:  g.systemInfoMap[PG_SSL_MODE].(string),
	}
}

func (g systemInfoServiceImpl) GetBuildSystemUrl() string {
	return g.systemInfoMap[BUILD_SYSTEM_URL].(string)
}

func (g systemInfoServiceImpl) GetBuildSystemTimeout() time.Duration {
	return time.Duration(g.systemInfoMap[BUILD_SYSTEM_TIMEOUT_SEC].(int)) * time.Second
}

func (g systemInfoServiceImpl) GetBuildSystemRateLimit() int {
	return g.systemInfoMap[BUILD_SYSTEM_RATE_LIMIT].(int)
}

func (g systemInfoServiceImpl) GetPkgdbUrl() string {
	return g.systemInfoMap[PKGDB_URL].(string)
}

func (g systemInfoServiceImpl) GetUpstreamMaxRetries() int {
	return g.systemInfoMap[UPSTREAM_MAX_RETRIES].(int)
}

func (g systemInfoServiceImpl) GetAclOverrideGroups() []string {
	return g.systemInfoMap[ACL_OVERRIDE_GROUPS].([]string)
}

func (g systemInfoServiceImpl) GetAdminGroups() []string {
	return g.systemInfoMap[ADMIN_GROUPS].([]string)
}

func (g systemInfoServiceImpl) GetJwtSecret() []byte {
	return g.systemInfoMap[JWT_SECRET].([]byte)
}

func (g systemInfoServiceImpl) GetKafkaBrokers() []string {
	return g.systemInfoMap[KAFKA_BROKERS].([]string)
}

func (g systemInfoServiceImpl) GetKafkaTopic() string {
	return g.systemInfoMap[KAFKA_TOPIC].(string)
}

func (g systemInfoServiceImpl) GetMetricsGetterSchedule() string {
	return g.systemInfoMap[METRICS_GETTER_SCHEDULE].(string)
}

func (g systemInfoServiceImpl) IsLibravatarEnabled() bool {
	return g.systemInfoMap[LIBRAVATAR_ENABLED].(bool)
}
