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
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/soilfert-app/soilfertdb/internal/database"
)

var backupNamePattern = regexp.MustCompile(`^soil_backup_\d{8}_\d{6}\.db$`)

func TestBackupNamingAndContent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "soil.db")
	if err := database.Initialize(dbPath); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	original, err := os.ReadFile(dbPath)
	if err != nil {
		t.Fatalf("Failed to read database: %v", err)
	}

	backupPath, n, err := database.Backup(dbPath)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	if !backupNamePattern.MatchString(filepath.Base(backupPath)) {
		t.Errorf("Backup name %q does not match <base>_backup_<YYYYMMDD_HHmmss><ext>", filepath.Base(backupPath))
	}
	if filepath.Dir(backupPath) != filepath.Dir(dbPath) {
		t.Errorf("Backup not created beside database: %s", backupPath)
	}

	copied, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("Failed to read backup: %v", err)
	}
	if !bytes.Equal(original, copied) {
		t.Error("Backup content differs from pre-run database state")
	}
	if n != int64(len(original)) {
		t.Errorf("Reported %d bytes, file has %d", n, len(original))
	}
}

func TestBackupMissingSource(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "missing.db")
	_, _, err := database.Backup(dbPath)
	if err == nil {
		t.Fatal("Expected error backing up a missing file, got nil")
	}
}

func TestListBackups(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "soil.db")
	if err := database.Initialize(dbPath); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	backups, err := database.ListBackups(dbPath)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Fatalf("Expected no backups, got %d", len(backups))
	}

	backupPath, _, err := database.Backup(dbPath)
	if err != nil {
		t.Fatalf("Backup failed: %v", err)
	}

	backups, err = database.ListBackups(dbPath)
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("Expected 1 backup, got %d", len(backups))
	}
	if backups[0].Path != backupPath {
		t.Errorf("Expected %s, got %s", backupPath, backups[0].Path)
	}
	if backups[0].Size == 0 {
		t.Error("Backup size is zero")
	}
}
