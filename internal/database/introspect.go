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

// SchemaEntry is one object from sqlite_master.
type SchemaEntry struct {
	Type string
	Name string
	SQL  string
}

// ListTables returns user table names in alphabetical order, excluding
// SQLite internals.
func ListTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// SchemaDump returns the DDL of every user table and index, tables first.
// Read-only; safe to run independent of any mutation.
func SchemaDump(db *sql.DB) ([]SchemaEntry, error) {
	rows, err := db.Query(`
		SELECT type, name, sql FROM sqlite_master
		WHERE type IN ('table', 'index') AND name NOT LIKE 'sqlite_%' AND sql IS NOT NULL
		ORDER BY CASE type WHEN 'table' THEN 0 ELSE 1 END, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to dump schema: %w", err)
	}
	defer rows.Close()

	var entries []SchemaEntry
	for rows.Next() {
		var entry SchemaEntry
		if err := rows.Scan(&entry.Type, &entry.Name, &entry.SQL); err != nil {
			return nil, fmt.Errorf("failed to scan schema entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Stats holds the run summary counts.
type Stats struct {
	TableCount int
	UserCount  int
}

// CollectStats gathers the summary reported at the end of a run.
func CollectStats(db *sql.DB) (*Stats, error) {
	stats := &Stats{}

	err := db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='table' AND name NOT LIKE 'sqlite_%'`).Scan(&stats.TableCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}

	if err := db.QueryRow(`SELECT COUNT(*) FROM users`).Scan(&stats.UserCount); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return stats, nil
}
