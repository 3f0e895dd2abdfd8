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

package migration

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/fedora-infra/bodhi-service/db"
	"github.com/fedora-infra/bodhi-service/entity"
	"github.com/go-pg/pg/v10"
	log "github.com/sirupsen/logrus"
)

var upMigrationFileRegexp = regexp.MustCompile(`^[0-9]+_.+\.up\.sql$`)

type DBMigrationService interface {
	Migrate() (int, int, error)
}

func NewDBMigrationService(cp db.ConnectionProvider, migrationsFolder string) (DBMigrationService, error) {
	service := &dbMigrationServiceImpl{
		cp:               cp,
		migrationsFolder: migrationsFolder,
	}
	upMigrations, err := service.getMigrationFilenamesMap()
	if err != nil {
		return nil, fmt.Errorf("failed to read migration files: %v", err.Error())
	}
	service.upMigrations = upMigrations
	return service, nil
}

type dbMigrationServiceImpl struct {
	cp               db.ConnectionProvider
	migrationsFolder string
	upMigrations     map[int]string
}

func (d *dbMigrationServiceImpl) createMigrationTables() error {
	_, err := d.cp.GetConnection().Exec(`
		create table if not exists schema_migrations
		(
			version integer not null,
			dirty boolean not null,
			PRIMARY KEY(version)
		)`)
	if err != nil {
		return err
	}
	_, err = d.cp.GetConnection().Exec(`
		create table if not exists stored_schema_migration
		(
			num integer not null,
			up_hash varchar not null,
			sql_up varchar not null,
			PRIMARY KEY(num)
		)`)
	return err
}

// Migrate applies all local up migrations newer than the version in schema_migrations in a single transaction.
// Returns the version before and after migration.
func (d *dbMigrationServiceImpl) Migrate() (int, int, error) {
	log.Infof("Schema Migration: start")
	if err := d.createMigrationTables(); err != nil {
		return 0, 0, fmt.Errorf("failed to create schema migrations tables: %w", err)
	}

	var currentMigrationNumber int
	_, err := d.cp.GetConnection().QueryOne(pg.Scan(&currentMigrationNumber), `SELECT version FROM schema_migrations`)
	if err != nil && err != pg.ErrNoRows {
		return 0, 0, err
	}
	newMigrationNumber := len(d.upMigrations)
	if newMigrationNumber < currentMigrationNumber {
		return 0, 0, fmt.Errorf("total number of 'up' migrations (%v) is lower than currently applied version from schema_migrations (%v)", newMigrationNumber, currentMigrationNumber)
	}
	if err = d.checkAppliedMigrations(currentMigrationNumber); err != nil {
		return 0, 0, err
	}
	if currentMigrationNumber == newMigrationNumber {
		log.Infof("Schema Migration: no migrations required")
		return currentMigrationNumber, newMigrationNumber, nil
	}

	upMigrations := make([]entity.StoredMigrationEntity, 0)
	for i := currentMigrationNumber + 1; i <= newMigrationNumber; i++ {
		migrationEnt, err := d.makeLocalMigrationEntity(i)
		if err != nil {
			return 0, 0, err
		}
		upMigrations = append(upMigrations, *migrationEnt)
	}
	if err = d.applyRequiredMigrations(upMigrations, newMigrationNumber); err != nil {
		return 0, 0, err
	}
	log.Infof("Schema Migration: finished successfully")
	return currentMigrationNumber, newMigrationNumber, nil
}

// checkAppliedMigrations fails if an already applied migration file was modified afterwards
func (d *dbMigrationServiceImpl) checkAppliedMigrations(currentMigrationNumber int) error {
	stored := make([]entity.StoredMigrationEntity, 0)
	err := d.cp.GetConnection().Model(&stored).Where("num <= ?", currentMigrationNumber).Select()
	if err != nil {
		return fmt.Errorf("failed to read stored migrations: %w", err)
	}
	for _, storedMigration := range stored {
		localMigration, err := d.makeLocalMigrationEntity(storedMigration.Num)
		if err != nil {
			return err
		}
		if localMigration.UpHash != storedMigration.UpHash {
			return fmt.Errorf("migration %v was modified after it had been applied", storedMigration.Num)
		}
	}
	return nil
}

func (d *dbMigrationServiceImpl) applyRequiredMigrations(upMigrations []entity.StoredMigrationEntity, latestMigrationNum int) error {
	sort.Slice(upMigrations, func(i, j int) bool {
		return upMigrations[i].Num < upMigrations[j].Num
	})
	log.Infof("Schema migration: start applying %v up migrations", len(upMigrations))
	ctx := context.Background()
	return d.cp.GetConnection().RunInTransaction(ctx, func(tx *pg.Tx) error {
		for _, upMigration := range upMigrations {
			rs, err := tx.Exec(upMigration.SqlUp)
			if err != nil {
				return fmt.Errorf("failed to apply local up migration %v: %w", upMigration.Num, err)
			}
			_, err = tx.Model(&upMigration).OnConflict("(num) DO UPDATE").Insert()
			if err != nil {
				return fmt.Errorf("failed to store local up migration %v: %w", upMigration.Num, err)
			}
			log.Infof("successfully applied local up migration %v: %v rows affected", upMigration.Num, rs.RowsAffected())
		}
		_, err := tx.Model(&entity.MigrationEntity{}).
			Where("version is not null").
			Delete()
		if err != nil {
			return fmt.Errorf("failed to update schema_migrations table with latest migration version %v", latestMigrationNum)
		}
		_, err = tx.Model(&entity.MigrationEntity{Version: latestMigrationNum}).Insert()
		if err != nil {
			return fmt.Errorf("failed to update schema_migrations table with latest migration version %v", latestMigrationNum)
		}
		return nil
	})
}

func (d *dbMigrationServiceImpl) makeLocalMigrationEntity(migrationNumber int) (*entity.StoredMigrationEntity, error) {
	upMigrationFile, exists := d.upMigrations[migrationNumber]
	if !exists {
		return nil, fmt.Errorf("failed to read up migration file %v", migrationNumber)
	}
	data, err := os.ReadFile(upMigrationFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read up migration file %v: %w", upMigrationFile, err)
	}
	return &entity.StoredMigrationEntity{
		Num:    migrationNumber,
		UpHash: calculateMigrationHash(migrationNumber, data),
		SqlUp:  string(data),
	}, nil
}

func (d *dbMigrationServiceImpl) getMigrationFilenamesMap() (map[int]string, error) {
	folder, err := os.Open(d.migrationsFolder)
	if err != nil {
		return nil, err
	}
	defer folder.Close()
	fileNames, err := folder.Readdirnames(-1)
	if err != nil {
		return nil, err
	}
	upMigrations := make(map[int]string, 0)
	maxUpMigrationNumber := 0
	for _, file := range fileNames {
		if !upMigrationFileRegexp.MatchString(file) {
			continue
		}
		num, _ := strconv.Atoi(strings.Split(file, `_`)[0])
		if _, exists := upMigrations[num]; exists {
			return nil, fmt.Errorf("found duplicate migration number, migration is not possible: %v", file)
		}
		upMigrations[num] = filepath.Join(d.migrationsFolder, file)
		if maxUpMigrationNumber < num {
			maxUpMigrationNumber = num
		}
	}
	if maxUpMigrationNumber != len(upMigrations) {
		return nil, fmt.Errorf("highest migration number (%v) should be equal to a total number of migrations (%v)", maxUpMigrationNumber, len(upMigrations))
	}
	return upMigrations, nil
}

func calculateMigrationHash(migrationNum int, data []byte) string {
	sum := sha256.Sum256(append([]byte(strconv.Itoa(migrationNum)), data...))
	return hex.EncodeToString(sum[:])
}
