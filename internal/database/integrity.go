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
	"strings"
)

// IntegrityCheck runs the engine's built-in consistency scan. It returns
// true with detail "ok" on a healthy database, or false with the engine's
// findings. This is diagnostic only; callers report the result and never
// roll anything back on failure.
func IntegrityCheck(db *sql.DB) (bool, string, error) {
	rows, err := db.Query("PRAGMA integrity_check")
	if err != nil {
		return false, "", fmt.Errorf("failed to run integrity check: %w", err)
	}
	defer rows.Close()

	var findings []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return false, "", fmt.Errorf("failed to scan integrity result: %w", err)
		}
		findings = append(findings, line)
	}
	if err := rows.Err(); err != nil {
		return false, "", fmt.Errorf("integrity check aborted: %w", err)
	}

	detail := strings.Join(findings, "\n")
	healthy := len(findings) == 1 && findings[0] == "ok"
	return healthy, detail, nil
}

// ForeignKeyCheck reports rows that violate foreign key constraints.
// SQLite does not re-validate existing rows when constraints are added, so
// this catches orphans left by earlier tooling.
func ForeignKeyCheck(db *sql.DB) (int, error) {
	rows, err := db.Query("PRAGMA foreign_key_check")
	if err != nil {
		return 0, fmt.Errorf("failed to run foreign key check: %w", err)
	}
	defer rows.Close()

	violations := 0
	for rows.Next() {
		violations++
	}
	return violations, rows.Err()
}
