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

package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/soilfert-app/soilfertdb/internal/database"
	"github.com/spf13/cobra"
)

var backupList bool

// NewBackupCmd creates the backup command
func NewBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a timestamped backup of the database",
		Long: `Copies the database file to a sibling file named
<name>_backup_<YYYYMMDD_HHmmss><ext>.

Backups accumulate beside the database and are never pruned automatically;
use --list to see what has accumulated.

Examples:
  soilfertdb backup
  soilfertdb backup -d data/soilfert.db
  soilfertdb backup --list`,
		RunE: runBackup,
	}

	cmd.Flags().BoolVar(&backupList, "list", false, "List accumulated backups instead of creating one")

	return cmd
}

func runBackup(cmd *cobra.Command, args []string) error {
	dbPath := databasePath(cmd)

	if backupList {
		return listBackups(dbPath)
	}

	backupPath, n, err := database.Backup(dbPath)
	if err != nil {
		return err
	}

	fmt.Printf("Backup created: %s (%s)\n", backupPath, humanize.Bytes(uint64(n)))
	return nil
}

func listBackups(dbPath string) error {
	backups, err := database.ListBackups(dbPath)
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Printf("No backups found beside %s\n", dbPath)
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintln(tw, "BACKUP\tSIZE\tCREATED")
	for _, b := range backups {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", b.Path, humanize.Bytes(uint64(b.Size)), humanize.Time(b.ModTime))
	}
	return nil
}
