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

package db

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	"github.com/fedora-infra/bodhi-service/view"
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"
)

type ConnectionProvider interface {
	GetConnection() *pg.DB
}

type connectionProviderImpl struct {
	creds view.DbCredentials
	db    *pg.DB
	once  sync.Once
}

func NewConnectionProvider(creds *view.DbCredentials) ConnectionProvider {
	return &connectionProviderImpl{creds: *creds}
}

func (c *connectionProviderImpl) GetConnection() *pg.DB {
	c.once.Do(func() {
		options := &pg.Options{
			Addr:       fmt.Sprintf("%s:%d", c.creds.Host, c.creds.Port),
			User:       c.creds.Username,
			Password:   c.creds.Password,
			Database:   c.creds.Database,
			PoolSize:   50,
			MaxRetries: 5,
		}
		if c.creds.SSLMode == "require" {
			options.TLSConfig = &tls.Config{InsecureSkipVerify: true}
		}
		c.db = pg.Connect(options)
		c.db.AddQueryHook(dbLogger{})
	})
	return c.db
}

type dbLogger struct{}

func (d dbLogger) BeforeQuery(ctx context.Context, q *pg.QueryEvent) (context.Context, error) {
	return ctx, nil
}

func (d dbLogger) AfterQuery(ctx context.Context, q *pg.QueryEvent) error {
	if !log.IsLevelEnabled(log.TraceLevel) {
		return nil
	}
	if query, _ := q.FormattedQuery(); !bytes.Equal(query, []byte("SELECT 1")) {
		log.Tracef("DB query: %s", string(query))
	}
	return nil
}
