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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// backupTimestampLayout yields names like soilfert_backup_20260823_141530.db.
const backupTimestampLayout = "20060102_150405"

// BackupInfo describes one accumulated backup file.
type BackupInfo struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Backup copies the database file to a sibling file whose name embeds the
// current timestamp and returns the backup path and byte count. The copy is
// verified against the source length; any failure is returned to the caller,
// which must treat it as fatal before mutating the original.
//
// Only the main database file is copied. Handles opened by this tool
// checkpoint and remove the WAL on close, so no -wal sidecar is expected;
// a hot WAL left behind by a crashed external writer is not captured.
//
// Backups are never pruned automatically; ListBackups surfaces what has
// accumulated.
func Backup(dbPath string) (string, int64, error) {
	src, err := os.Open(dbPath)
	if err != nil {
		return "", 0, fmt.Errorf("failed to open database for backup: %w", err)
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", 0, fmt.Errorf("failed to stat database: %w", err)
	}

	backupPath := backupName(dbPath, time.Now())
	dst, err := os.OpenFile(backupPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create backup file: %w", err)
	}

	written, err := io.Copy(dst, src)
	if err != nil {
		dst.Close()
		os.Remove(backupPath)
		return "", 0, fmt.Errorf("failed to copy database to %s: %w", backupPath, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(backupPath)
		return "", 0, fmt.Errorf("failed to flush backup file: %w", err)
	}

	if written != info.Size() {
		os.Remove(backupPath)
		return "", 0, fmt.Errorf("short backup: wrote %d of %d bytes", written, info.Size())
	}

	return backupPath, written, nil
}

// ListBackups returns the backups accumulated beside the database file,
// oldest first.
func ListBackups(dbPath string) ([]BackupInfo, error) {
	ext := filepath.Ext(dbPath)
	base := strings.TrimSuffix(filepath.Base(dbPath), ext)
	pattern := filepath.Join(filepath.Dir(dbPath), base+"_backup_*"+ext)

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	var backups []BackupInfo
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{Path: match, Size: info.Size(), ModTime: info.ModTime()})
	}

	sort.Slice(backups, func(i, j int) bool { return backups[i].ModTime.Before(backups[j].ModTime) })
	return backups, nil
}

// backupName builds <dir>/<base>_backup_<YYYYMMDD_HHmmss><ext> beside the
// database file.
func backupName(dbPath string, now time.Time) string {
	ext := filepath.Ext(dbPath)
	base := strings.TrimSuffix(filepath.Base(dbPath), ext)
	name := fmt.Sprintf("%s_backup_%s%s", base, now.Format(backupTimestampLayout), ext)
	return filepath.Join(filepath.Dir(dbPath), name)
}
