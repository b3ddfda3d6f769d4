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

	"github.com/soilfert-app/soilfertdb/internal/database"
	"github.com/spf13/cobra"
)

// NewInitCmd creates the init command
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new SoilFert database",
		Long: `Creates a new SQLite database with the baseline schema used by the
SoilFert web application.

The baseline schema includes:
- users: accounts with plan information
- soil_analyses: lab analysis results per field
- testimonials: user testimonials pending moderation
- contacts: contact-form submissions
- schema_metadata: schema version tracking

Run 'soilfertdb update' afterwards to apply the additive schema changes
(subscription columns, indexes, and the preference/report/lime tables).

Example:
  soilfertdb init -d ./data/soilfert.db`,
		RunE: runInit,
	}

	return cmd
}

func runInit(cmd *cobra.Command, args []string) error {
	dbPath := databasePath(cmd)

	// Refuse to touch an existing file
	if _, err := os.Stat(dbPath); err == nil {
		return fmt.Errorf("database already exists at %s\nUse a different path or delete the existing file", dbPath)
	}

	fmt.Printf("Initializing database at: %s\n", dbPath)

	db, err := database.Connect(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	fmt.Println("Creating database schema...")
	if err := database.InitSchema(db); err != nil {
		// Clean up on failure
		os.Remove(dbPath)
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	fmt.Println("Verifying schema...")
	if err := database.VerifySchema(db); err != nil {
		os.Remove(dbPath)
		return fmt.Errorf("schema verification failed: %w", err)
	}

	version, err := database.GetCurrentSchemaVersion(db)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	fmt.Printf("\nSuccess! Database initialized.\n")
	fmt.Printf("  Location: %s\n", dbPath)
	fmt.Printf("  Schema version: %s\n", version)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Apply schema updates: soilfertdb update")
	fmt.Println("  2. Verify the result: soilfertdb verify")

	return nil
}
