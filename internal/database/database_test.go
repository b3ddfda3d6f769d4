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

package database_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/soilfert-app/soilfertdb/internal/database"
)

// newTestDB creates an initialized database in a temp directory.
func newTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Connect(dbPath)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.InitSchema(db); err != nil {
		t.Fatalf("Failed to init schema: %v", err)
	}
	return db, dbPath
}

func TestConnect(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := database.Connect(dbPath)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer db.Close()

	// Verify file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	// Verify foreign keys are enabled
	var fkEnabled int
	err = db.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	if err != nil {
		t.Fatalf("Failed to check foreign keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Error("Foreign keys are not enabled")
	}
}

func TestConnectMissingDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "no", "such", "dir", "test.db")
	db, err := database.Connect(dbPath)
	if err == nil {
		db.Close()
		t.Fatal("Expected error for unreachable path, got nil")
	}
}

func TestInitSchema(t *testing.T) {
	db, _ := newTestDB(t)

	if err := database.VerifySchema(db); err != nil {
		t.Errorf("Schema verification failed: %v", err)
	}

	// Re-running against an initialized database must be a no-op
	if err := database.InitSchema(db); err != nil {
		t.Errorf("Second InitSchema failed: %v", err)
	}
}

func TestVerifySchemaAllTables(t *testing.T) {
	db, _ := newTestDB(t)

	expectedTables := []string{
		"schema_metadata",
		"users",
		"soil_analyses",
		"testimonials",
		"contacts",
	}

	for _, table := range expectedTables {
		exists, err := database.TableExists(db, table)
		if err != nil {
			t.Errorf("Failed to check table %s: %v", table, err)
		}
		if !exists {
			t.Errorf("Table %s does not exist", table)
		}
	}
}

func TestSchemaVersion(t *testing.T) {
	db, _ := newTestDB(t)

	version, err := database.GetCurrentSchemaVersion(db)
	if err != nil {
		t.Fatalf("Failed to get version: %v", err)
	}

	expectedVersion := database.GetSchemaVersion()
	if version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, version)
	}
}

func TestForeignKeyEnforcement(t *testing.T) {
	db, _ := newTestDB(t)

	// Try to insert an analysis for a user that doesn't exist
	_, err := db.Exec(`
		INSERT INTO soil_analyses (user_id, field_name, status)
		VALUES (999, 'North Field', 'draft')
	`)

	if err == nil {
		t.Error("Expected foreign key constraint violation, but insert succeeded")
	}
}

func TestCheckConstraints(t *testing.T) {
	db, _ := newTestDB(t)

	// Invalid plan_type is rejected
	_, err := db.Exec(`
		INSERT INTO users (email, password_hash, plan_type)
		VALUES ('bad@soilfert.com', 'x', 'platinum')
	`)
	if err == nil {
		t.Error("Expected check constraint violation for invalid plan_type")
	}

	// Valid plan types are accepted
	for _, plan := range []string{"free", "pro"} {
		_, err := db.Exec(`
			INSERT INTO users (email, password_hash, plan_type)
			VALUES (?, 'x', ?)
		`, plan+"@soilfert.com", plan)
		if err != nil {
			t.Errorf("Valid plan_type %q insert failed: %v", plan, err)
		}
	}
}

func TestInitialize(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "fresh.db")

	if err := database.Initialize(dbPath); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("Database file missing after Initialize: %v", err)
	}

	// Must be idempotent
	if err := database.Initialize(dbPath); err != nil {
		t.Errorf("Second Initialize failed: %v", err)
	}
}

func TestListTables(t *testing.T) {
	db, _ := newTestDB(t)

	tables, err := database.ListTables(db)
	if err != nil {
		t.Fatalf("ListTables failed: %v", err)
	}

	if len(tables) != 5 {
		t.Errorf("Expected 5 baseline tables, got %d: %v", len(tables), tables)
	}

	// Alphabetical order
	for i := 1; i < len(tables); i++ {
		if tables[i-1] >= tables[i] {
			t.Errorf("Tables not sorted: %v", tables)
			break
		}
	}
}

func TestSchemaDump(t *testing.T) {
	db, _ := newTestDB(t)

	entries, err := database.SchemaDump(db)
	if err != nil {
		t.Fatalf("SchemaDump failed: %v", err)
	}

	found := map[string]bool{}
	for _, entry := range entries {
		found[entry.Name] = true
		if entry.SQL == "" {
			t.Errorf("Entry %s has empty DDL", entry.Name)
		}
	}
	for _, want := range []string{"users", "soil_analyses", "testimonials", "contacts"} {
		if !found[want] {
			t.Errorf("SchemaDump missing %s", want)
		}
	}
}

func TestIntegrityCheckHealthy(t *testing.T) {
	db, _ := newTestDB(t)

	healthy, detail, err := database.IntegrityCheck(db)
	if err != nil {
		t.Fatalf("IntegrityCheck failed: %v", err)
	}
	if !healthy {
		t.Errorf("Fresh database reported unhealthy: %s", detail)
	}
	if detail != "ok" {
		t.Errorf("Expected detail 'ok', got %q", detail)
	}
}

func TestForeignKeyCheckClean(t *testing.T) {
	db, _ := newTestDB(t)

	violations, err := database.ForeignKeyCheck(db)
	if err != nil {
		t.Fatalf("ForeignKeyCheck failed: %v", err)
	}
	if violations != 0 {
		t.Errorf("Expected 0 violations, got %d", violations)
	}
}

func TestCollectStats(t *testing.T) {
	db, _ := newTestDB(t)

	_, err := db.Exec(`INSERT INTO users (email, password_hash) VALUES ('a@soilfert.com', 'x')`)
	if err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	stats, err := database.CollectStats(db)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}
	if stats.TableCount != 5 {
		t.Errorf("Expected 5 tables, got %d", stats.TableCount)
	}
	if stats.UserCount != 1 {
		t.Errorf("Expected 1 user, got %d", stats.UserCount)
	}
}
