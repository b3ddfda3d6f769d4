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

package updater_test

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/soilfert-app/soilfertdb/internal/config"
	"github.com/soilfert-app/soilfertdb/internal/database"
	"github.com/soilfert-app/soilfertdb/internal/updater"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DatabasePath: filepath.Join(t.TempDir(), "soilfert.db"),
		BackupFirst:  false,
	}
}

// schemaDump returns the full DDL of the database for shape comparisons.
func schemaDump(t *testing.T, dbPath string) []database.SchemaEntry {
	t.Helper()
	db, err := database.Connect(dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	entries, err := database.SchemaDump(db)
	if err != nil {
		t.Fatalf("SchemaDump failed: %v", err)
	}
	return entries
}

func TestRunCreatesMissingDatabase(t *testing.T) {
	cfg := testConfig(t)

	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !result.Initialized {
		t.Error("Expected Initialized for a missing file")
	}
	if _, err := os.Stat(cfg.DatabasePath); err != nil {
		t.Errorf("Database file missing after run: %v", err)
	}
	if result.Evolution == nil || result.Evolution.TablesCreated != 3 {
		t.Errorf("Expected 3 tables created, got %+v", result.Evolution)
	}
	if !result.IntegrityOK {
		t.Errorf("Integrity check failed on a tool-produced database: %s", result.IntegrityDetail)
	}
	// 5 baseline + 3 evolved tables
	if result.TableCount != 8 {
		t.Errorf("Expected 8 tables, got %d", result.TableCount)
	}
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	if _, err := updater.New(cfg).Run(); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	firstSchema := schemaDump(t, cfg.DatabasePath)

	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}
	if !result.Evolution.Empty() {
		t.Errorf("Second run applied changes: %+v", result.Evolution)
	}

	secondSchema := schemaDump(t, cfg.DatabasePath)
	if !reflect.DeepEqual(firstSchema, secondSchema) {
		t.Error("Schema differs between first and second run")
	}
}

func TestRunBackupBeforeMutation(t *testing.T) {
	cfg := testConfig(t)

	// First run creates and evolves the database without a backup.
	if _, err := updater.New(cfg).Run(); err != nil {
		t.Fatalf("Setup run failed: %v", err)
	}
	preRun, err := os.ReadFile(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("Failed to read database: %v", err)
	}

	cfg.BackupFirst = true
	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.BackupPath == "" {
		t.Fatal("Expected a backup path")
	}

	backup, err := os.ReadFile(result.BackupPath)
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}
	if !bytes.Equal(preRun, backup) {
		t.Error("Backup does not equal the pre-run database state")
	}
}

func TestRunNoBackupLeavesNoFile(t *testing.T) {
	cfg := testConfig(t)

	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if result.BackupPath != "" {
		t.Errorf("Unexpected backup: %s", result.BackupPath)
	}

	backups, err := database.ListBackups(cfg.DatabasePath)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("Expected no backups, found %d", len(backups))
	}
}

func TestRunResetDropsRows(t *testing.T) {
	cfg := testConfig(t)
	cfg.AddTestData = true

	if _, err := updater.New(cfg).Run(); err != nil {
		t.Fatalf("Setup run failed: %v", err)
	}

	cfg.AddTestData = false
	cfg.ResetDatabase = true
	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Reset run failed: %v", err)
	}

	if !result.WasReset {
		t.Error("Expected WasReset")
	}
	if result.UserCount != 0 {
		t.Errorf("Expected 0 users after reset, got %d", result.UserCount)
	}
	// Reset reinitializes the baseline; evolution then reapplies everything.
	if result.Evolution.TablesCreated != 3 {
		t.Errorf("Expected evolution to recreate 3 tables, got %d", result.Evolution.TablesCreated)
	}
}

func TestRunSeedTwiceNoDuplicates(t *testing.T) {
	cfg := testConfig(t)
	cfg.AddTestData = true

	if _, err := updater.New(cfg).Run(); err != nil {
		t.Fatalf("First run failed: %v", err)
	}
	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Second run failed: %v", err)
	}

	if result.RowsSeeded != 0 {
		t.Errorf("Second run seeded %d rows, expected 0", result.RowsSeeded)
	}
	if result.UserCount != 1 {
		t.Errorf("Expected exactly 1 user, got %d", result.UserCount)
	}
}

func TestRunShowTables(t *testing.T) {
	cfg := testConfig(t)
	cfg.ShowTables = true

	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(result.Tables) == 0 {
		t.Error("Expected table listing")
	}
	if len(result.Schema) == 0 {
		t.Error("Expected schema dump")
	}
}

func TestRunRepairsEmptyFile(t *testing.T) {
	cfg := testConfig(t)
	if err := os.WriteFile(cfg.DatabasePath, nil, 0o644); err != nil {
		t.Fatalf("Failed to create empty file: %v", err)
	}

	result, err := updater.New(cfg).Run()
	if err != nil {
		t.Fatalf("Run failed on an empty file: %v", err)
	}
	if !result.Initialized {
		t.Error("Expected Initialized for a schemaless file")
	}
	if result.TableCount != 8 {
		t.Errorf("Expected 8 tables, got %d", result.TableCount)
	}
}

func TestRunRejectsDirectoryPath(t *testing.T) {
	cfg := config.Config{DatabasePath: t.TempDir()}

	_, err := updater.New(cfg).Run()
	if err == nil {
		t.Fatal("Expected error for a directory path, got nil")
	}
}
