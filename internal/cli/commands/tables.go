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

	"github.com/soilfert-app/soilfertdb/internal/database"
	"github.com/spf13/cobra"
)

var tablesSchema bool

// NewTablesCmd creates the tables command
func NewTablesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List tables in the database",
		Long: `Lists the user tables in the database. With --schema the full DDL of
every table and index is printed as well.

Read-only; never mutates the database.

Examples:
  soilfertdb tables
  soilfertdb tables --schema`,
		RunE: runTables,
	}

	cmd.Flags().BoolVar(&tablesSchema, "schema", false, "Also print schema DDL")

	return cmd
}

func runTables(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(databasePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	tables, err := database.ListTables(db)
	if err != nil {
		return err
	}
	printTables(tables)

	if tablesSchema {
		schema, err := database.SchemaDump(db)
		if err != nil {
			return err
		}
		printSchema(schema)
	}

	return nil
}

func printSchema(entries []database.SchemaEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Println("\nSchema:")
	for _, entry := range entries {
		fmt.Printf("-- %s %s\n%s;\n\n", entry.Type, entry.Name, entry.SQL)
	}
}
