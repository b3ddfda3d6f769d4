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

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/soilfert-app/soilfertdb/internal/config"
	"github.com/soilfert-app/soilfertdb/internal/updater"
	"github.com/spf13/cobra"
)

var (
	updateNoBackup    bool
	updateShowTables  bool
	updateReset       bool
	updateAddTestData bool
)

// NewUpdateCmd creates the update command
func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Apply the full database update procedure",
		Long: `Runs the complete update procedure against the SoilFert database:

1. Creates the database with the baseline schema if the file is missing
2. Takes a timestamped backup (unless --no-backup)
3. Deletes and reinitializes the database if --reset is given
4. Applies additive schema changes (columns, indexes, tables) — every
   step is idempotent, so re-running never errors and never duplicates
5. Seeds sample rows if --add-test-data is given (insert-or-ignore)
6. Runs the engine integrity check and prints a summary

A backup failure aborts the run before anything is mutated. An integrity
failure is reported but does not roll anything back.

Examples:
  soilfertdb update
  soilfertdb update -d data/soilfert.db --show-tables
  soilfertdb update --reset --add-test-data
  soilfertdb update --no-backup`,
		RunE: runUpdate,
	}

	cmd.Flags().BoolVar(&updateNoBackup, "no-backup", false, "Skip the pre-run backup")
	cmd.Flags().BoolVar(&updateShowTables, "show-tables", false, "Print tables and schema DDL")
	cmd.Flags().BoolVar(&updateReset, "reset", false, "Delete and reinitialize the database (destructive)")
	cmd.Flags().BoolVar(&updateAddTestData, "add-test-data", false, "Insert sample rows")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return err
	}
	cfg.DatabasePath = databasePath(cmd)
	if updateNoBackup {
		cfg.BackupFirst = false
	}
	cfg.ShowTables = cfg.ShowTables || updateShowTables
	cfg.ResetDatabase = updateReset
	cfg.AddTestData = updateAddTestData

	fmt.Printf("Updating database: %s\n", cfg.DatabasePath)

	result, err := updater.New(cfg).Run()
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen).Sprint("✓")
	warn := color.New(color.FgYellow).Sprint("⚠")

	if result.Initialized {
		fmt.Printf("%s Created database with baseline schema\n", ok)
	}
	if result.BackupPath != "" {
		fmt.Printf("%s Backup: %s (%s)\n", ok, result.BackupPath, humanize.Bytes(uint64(result.BackupBytes)))
	}
	if result.WasReset {
		fmt.Printf("%s Database reset to baseline\n", ok)
	}

	if cfg.ShowTables {
		printTables(result.Tables)
		printSchema(result.Schema)
	}

	if result.Evolution.Empty() {
		fmt.Printf("%s Schema already up to date\n", ok)
	} else {
		fmt.Printf("%s Schema updated: %d columns, %d indexes, %d tables added\n", ok,
			result.Evolution.ColumnsAdded, result.Evolution.IndexesCreated, result.Evolution.TablesCreated)
	}

	if cfg.AddTestData {
		if result.RowsSeeded > 0 {
			fmt.Printf("%s Test data seeded (%d rows)\n", ok, result.RowsSeeded)
		} else {
			fmt.Printf("%s Test data already present\n", ok)
		}
	}

	if result.IntegrityOK {
		fmt.Printf("%s Integrity check: ok\n", ok)
	} else {
		fmt.Printf("%s Integrity check FAILED:\n%s\n", warn, result.IntegrityDetail)
	}

	fmt.Printf("\nSummary: %d tables, %d users\n", result.TableCount, result.UserCount)
	return nil
}

// databasePath resolves the database file: the root --database flag if set,
// otherwise the built-in default.
func databasePath(cmd *cobra.Command) string {
	if f := cmd.Flag("database"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return config.Defaults().DatabasePath
}

func printTables(tables []string) {
	fmt.Println("\nTables:")
	for _, name := range tables {
		fmt.Printf("  %s\n", name)
	}
}
