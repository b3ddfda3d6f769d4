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

// columnAdd is a single additive ALTER TABLE step. SQLite has no
// ADD COLUMN IF NOT EXISTS, so each add is guarded by a table_info lookup
// instead of suppressing the duplicate-column error.
type columnAdd struct {
	table      string
	column     string
	definition string
}

// userColumnAdds are the nullable subscription and login tracking columns
// added to users. pro_plan_expires_at predates the others and may already
// exist on databases migrated by earlier tooling.
var userColumnAdds = []columnAdd{
	{"users", "pro_plan_expires_at", "TIMESTAMP NULL"},
	{"users", "subscription_start_date", "TIMESTAMP NULL"},
	{"users", "subscription_end_date", "TIMESTAMP NULL"},
	{"users", "last_login_date", "TIMESTAMP NULL"},
}

// analysisColumnAdds carry literal defaults so rows analyzed before the
// columns existed pick up the conventional lab values.
var analysisColumnAdds = []columnAdd{
	{"soil_analyses", "soil_type", "TEXT DEFAULT 'mineral'"},
	{"soil_analyses", "extraction_method", "TEXT DEFAULT 'mehlich_3'"},
	{"soil_analyses", "bulk_density", "REAL DEFAULT 1.3"},
	{"soil_analyses", "particle_density", "REAL DEFAULT 2.65"},
	{"soil_analyses", "product_ecce", "REAL DEFAULT 100.0"},
}

// schemaObject is a named CREATE statement. CREATE ... IF NOT EXISTS is
// natively idempotent, no metadata guard needed; the name is still checked
// first so the updater can count what it actually created.
type schemaObject struct {
	name string
	ddl  string
}

// indexAdds are the query-path indexes, in creation order.
var indexAdds = []schemaObject{
	{"idx_users_email", "CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)"},
	{"idx_soil_analyses_user_id", "CREATE INDEX IF NOT EXISTS idx_soil_analyses_user_id ON soil_analyses(user_id)"},
	{"idx_soil_analyses_created_at", "CREATE INDEX IF NOT EXISTS idx_soil_analyses_created_at ON soil_analyses(created_at)"},
	{"idx_testimonials_user_id", "CREATE INDEX IF NOT EXISTS idx_testimonials_user_id ON testimonials(user_id)"},
	{"idx_testimonials_status", "CREATE INDEX IF NOT EXISTS idx_testimonials_status ON testimonials(status)"},
	{"idx_contacts_created_at", "CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at)"},
}

// tableAdds are the tables added after the baseline, in creation order.
// Each has an autoincrementing id, a foreign key to its parent, and
// server-side default timestamps.
var tableAdds = []schemaObject{
	{"user_preferences", `
		CREATE TABLE IF NOT EXISTS user_preferences (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			preference_key TEXT NOT NULL,
			preference_value TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (user_id) REFERENCES users(id),
			UNIQUE(user_id, preference_key)
		)`},
	{"analysis_reports", `
		CREATE TABLE IF NOT EXISTS analysis_reports (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL,
			report_type TEXT NOT NULL DEFAULT 'pdf',
			file_path TEXT,
			generated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (analysis_id) REFERENCES soil_analyses(id)
		)`},
	{"lime_calculations", `
		CREATE TABLE IF NOT EXISTS lime_calculations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL,
			current_ph REAL,
			target_ph REAL,
			lime_needed_lbs_acre REAL,
			product_ecce REAL DEFAULT 100.0,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (analysis_id) REFERENCES soil_analyses(id)
		)`},
}

// EvolutionResult counts the changes a Migrate call actually applied.
// All zeros means the database already had the target shape.
type EvolutionResult struct {
	ColumnsAdded   int
	IndexesCreated int
	TablesCreated  int
}

// Empty reports whether the migration was a complete no-op.
func (r *EvolutionResult) Empty() bool {
	return r.ColumnsAdded == 0 && r.IndexesCreated == 0 && r.TablesCreated == 0
}

// Migrate applies the additive schema evolution in fixed order: users
// columns, indexes, soil_analyses columns, new tables. Every step checks
// structural metadata first, so re-running against an evolved database
// changes nothing and never errors. Existing rows are never touched.
func Migrate(db *sql.DB) (*EvolutionResult, error) {
	result := &EvolutionResult{}

	for _, add := range userColumnAdds {
		applied, err := addColumnIfMissing(db, add)
		if err != nil {
			return result, err
		}
		if applied {
			result.ColumnsAdded++
		}
	}

	for _, idx := range indexAdds {
		exists, err := IndexExists(db, idx.name)
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(idx.ddl); err != nil {
			return result, fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		result.IndexesCreated++
	}

	for _, add := range analysisColumnAdds {
		applied, err := addColumnIfMissing(db, add)
		if err != nil {
			return result, err
		}
		if applied {
			result.ColumnsAdded++
		}
	}

	for _, tbl := range tableAdds {
		exists, err := TableExists(db, tbl.name)
		if err != nil {
			return result, err
		}
		if exists {
			continue
		}
		if _, err := db.Exec(tbl.ddl); err != nil {
			return result, fmt.Errorf("failed to create table %s: %w", tbl.name, err)
		}
		result.TablesCreated++
	}

	if err := SetSchemaVersion(db, GetSchemaVersion()); err != nil {
		return result, err
	}

	return result, nil
}

// addColumnIfMissing adds the column unless table_info already lists it.
// Returns true when the ALTER actually ran.
func addColumnIfMissing(db *sql.DB, add columnAdd) (bool, error) {
	exists, err := ColumnExists(db, add.table, add.column)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	ddl := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", add.table, add.column, add.definition)
	if _, err := db.Exec(ddl); err != nil {
		return false, fmt.Errorf("failed to add column %s.%s: %w", add.table, add.column, err)
	}
	return true, nil
}

// ColumnExists reports whether the table has a column with the given name.
func ColumnExists(db *sql.DB, table, column string) (bool, error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return false, fmt.Errorf("failed to read table_info for %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			cid        int
			name       string
			colType    string
			notNull    int
			defaultVal sql.NullString
			pk         int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &defaultVal, &pk); err != nil {
			return false, fmt.Errorf("failed to scan table_info row: %w", err)
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// TableExists reports whether a table with the given name exists.
func TableExists(db *sql.DB, name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
	if err := db.QueryRow(query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", name, err)
	}
	return count > 0, nil
}

// IndexExists reports whether an index with the given name exists.
func IndexExists(db *sql.DB, name string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`
	if err := db.QueryRow(query, name).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check index %s: %w", name, err)
	}
	return count > 0, nil
}
