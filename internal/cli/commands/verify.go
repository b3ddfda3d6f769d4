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

	"github.com/fatih/color"
	"github.com/soilfert-app/soilfertdb/internal/database"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify schema presence and database integrity",
		Long: `Checks that the baseline tables exist, reports the stored schema
version, and runs the engine's built-in integrity and foreign-key checks.

Exits non-zero if the baseline schema is missing. An integrity failure is
reported but still exits zero: it is diagnostic, and the pre-run backups
are the recovery path.

Example:
  soilfertdb verify -d data/soilfert.db`,
		RunE: runVerify,
	}

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(databasePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := database.VerifySchema(db); err != nil {
		return fmt.Errorf("schema verification failed: %w", err)
	}

	version, err := database.GetCurrentSchemaVersion(db)
	if err != nil {
		return err
	}

	ok := color.New(color.FgGreen).Sprint("✓")
	warn := color.New(color.FgYellow).Sprint("⚠")

	fmt.Printf("%s Baseline schema present (version %s)\n", ok, version)

	healthy, detail, err := database.IntegrityCheck(db)
	if err != nil {
		return err
	}
	if healthy {
		fmt.Printf("%s Integrity check: ok\n", ok)
	} else {
		fmt.Printf("%s Integrity check FAILED:\n%s\n", warn, detail)
	}

	violations, err := database.ForeignKeyCheck(db)
	if err != nil {
		return err
	}
	if violations == 0 {
		fmt.Printf("%s Foreign key check: ok\n", ok)
	} else {
		fmt.Printf("%s Foreign key check: %d violating rows\n", warn, violations)
	}

	return nil
}
