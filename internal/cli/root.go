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

package cli

import (
	"github.com/soilfert-app/soilfertdb/internal/cli/commands"
	"github.com/soilfert-app/soilfertdb/internal/config"
	"github.com/spf13/cobra"
)

var (
	dbFile string
)

var rootCmd = &cobra.Command{
	Use:   "soilfertdb",
	Short: "SoilFert database management tool",
	Long: `A CLI tool for managing the SoilFert web application's SQLite database.
Supports initialization, idempotent schema evolution, backups, and verification.

The tool provides commands for:
- Initializing a new database with the baseline schema
- Applying additive schema updates (safe to re-run)
- Creating and listing timestamped backups
- Inspecting tables and schema DDL
- Seeding test data
- Verifying schema presence and on-disk integrity`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbFile, "database", "d",
		defaultDatabasePath(), "SQLite database file path")

	// Register commands
	rootCmd.AddCommand(commands.NewUpdateCmd())
	rootCmd.AddCommand(commands.NewInitCmd())
	rootCmd.AddCommand(commands.NewBackupCmd())
	rootCmd.AddCommand(commands.NewTablesCmd())
	rootCmd.AddCommand(commands.NewSeedCmd())
	rootCmd.AddCommand(commands.NewVerifyCmd())
	rootCmd.AddCommand(commands.NewStatsCmd())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// GetDBFile returns the configured database file path
func GetDBFile() string {
	if dbFile == "" {
		return defaultDatabasePath()
	}
	return dbFile
}

// defaultDatabasePath is the flag default: the environment-configured path
// when the environment parses, the built-in default otherwise. A parse
// error here is not fatal; commands that read the environment surface it.
func defaultDatabasePath() string {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return config.Defaults().DatabasePath
	}
	return cfg.DatabasePath
}
