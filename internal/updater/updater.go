// Copyright 2026 SoilFert
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

// Package updater orchestrates the database update procedure: preflight,
// backup, optional reset, additive schema evolution, optional seeding,
// integrity verification, and summary stats.
//
// Errors fall into three tiers. Preflight, initialization, and backup
// failures abort the run before anything is mutated. Schema steps that are
// already applied are skipped by metadata checks, so re-running is a no-op
// rather than a suppressed error. An integrity-check failure is surfaced in
// the Result but never halts or rolls back the run.
package updater

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/soilfert-app/soilfertdb/internal/config"
	"github.com/soilfert-app/soilfertdb/internal/database"
)

// Result describes what one run did.
type Result struct {
	Initialized     bool   // file was missing and got the baseline schema
	WasReset        bool   // file was deleted and reinitialized
	BackupPath      string // empty when backup was not requested
	BackupBytes     int64
	Tables          []string               // populated when ShowTables is set
	Schema          []database.SchemaEntry // populated when ShowTables is set
	Evolution       *database.EvolutionResult
	RowsSeeded      int
	IntegrityOK     bool
	IntegrityDetail string
	TableCount      int
	UserCount       int
}

// Updater runs the update procedure against a single database file. It is
// not safe to run two updaters against the same file concurrently.
type Updater struct {
	cfg config.Config
}

// New creates an updater for the given configuration.
func New(cfg config.Config) *Updater {
	return &Updater{cfg: cfg}
}

// Run executes the procedure. File-level phases (existence check, backup,
// reset) happen before the database handle opens; everything after holds a
// single handle that is released on all exit paths. On error the database
// may be partially migrated — there is no rollback beyond the pre-run
// backup.
func (u *Updater) Run() (*Result, error) {
	result := &Result{}
	path := u.cfg.DatabasePath

	exists, err := fileExists(path)
	if err != nil {
		return result, err
	}

	if !exists {
		if err := database.Initialize(path); err != nil {
			return result, fmt.Errorf("failed to initialize database: %w", err)
		}
		result.Initialized = true
	}

	if u.cfg.BackupFirst {
		backupPath, n, err := database.Backup(path)
		if err != nil {
			// Without a snapshot there is no recovery path, so stop
			// before any mutating step.
			return result, fmt.Errorf("backup failed, aborting: %w", err)
		}
		result.BackupPath = backupPath
		result.BackupBytes = n
	}

	if u.cfg.ResetDatabase {
		if err := os.Remove(path); err != nil {
			return result, fmt.Errorf("failed to delete database for reset: %w", err)
		}
		if err := database.Initialize(path); err != nil {
			return result, fmt.Errorf("failed to reinitialize database: %w", err)
		}
		result.WasReset = true
	}

	db, err := database.Connect(path)
	if err != nil {
		return result, fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// A file can exist without a schema (created by touch, or a truncated
	// copy). The baseline DDL is IF NOT EXISTS throughout, so applying it
	// here is safe and gives the evolution steps something to alter.
	if err := database.VerifySchema(db); err != nil {
		if err := database.InitSchema(db); err != nil {
			return result, fmt.Errorf("failed to initialize schema: %w", err)
		}
		result.Initialized = true
	}

	if u.cfg.ShowTables {
		if err := u.introspect(db, result); err != nil {
			return result, err
		}
	}

	result.Evolution, err = database.Migrate(db)
	if err != nil {
		return result, fmt.Errorf("schema evolution failed: %w", err)
	}

	if u.cfg.AddTestData {
		result.RowsSeeded, err = database.SeedTestData(db)
		if err != nil {
			return result, fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	result.IntegrityOK, result.IntegrityDetail, err = database.IntegrityCheck(db)
	if err != nil {
		return result, err
	}

	stats, err := database.CollectStats(db)
	if err != nil {
		return result, err
	}
	result.TableCount = stats.TableCount
	result.UserCount = stats.UserCount

	return result, nil
}

func (u *Updater) introspect(db *sql.DB, result *Result) error {
	tables, err := database.ListTables(db)
	if err != nil {
		return err
	}
	result.Tables = tables

	schema, err := database.SchemaDump(db)
	if err != nil {
		return err
	}
	result.Schema = schema
	return nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory, expected a database file", path)
	}
	return true, nil
}
