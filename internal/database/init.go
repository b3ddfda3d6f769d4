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

package database

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the baseline tables and records the schema version.
// Every statement in the baseline DDL is guarded by IF NOT EXISTS, so
// calling this against an already-initialized database is a no-op.
func InitSchema(db *sql.DB) error {
	_, err := db.Exec(SchemaSQL)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	if err := SetSchemaVersion(db, GetSchemaVersion()); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}

	return nil
}

// VerifySchema checks that all baseline tables exist
func VerifySchema(db *sql.DB) error {
	requiredTables := []string{
		"schema_metadata",
		"users",
		"soil_analyses",
		"testimonials",
		"contacts",
	}

	for _, table := range requiredTables {
		var count int
		query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
		err := db.QueryRow(query, table).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if count == 0 {
			return fmt.Errorf("required table %s does not exist", table)
		}
	}

	return nil
}

// Initialize creates the database file at dbPath with the baseline schema,
// verifying the result. It opens and closes its own short-lived handle so
// callers can initialize before opening the handle they hold for a run.
func Initialize(dbPath string) error {
	db, err := Connect(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := InitSchema(db); err != nil {
		return err
	}
	if err := VerifySchema(db); err != nil {
		return fmt.Errorf("schema verification failed: %w", err)
	}

	return nil
}
