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

// NewSeedCmd creates the seed command
func NewSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample test data",
		Long: `Inserts one sample user and one sample testimonial using
insert-or-ignore semantics. Running this twice leaves exactly one of each.

Example:
  soilfertdb seed -d data/soilfert.db`,
		RunE: runSeed,
	}

	return cmd
}

func runSeed(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(databasePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	inserted, err := database.SeedTestData(db)
	if err != nil {
		return err
	}

	if inserted == 0 {
		fmt.Printf("Test data already present (user %s)\n", database.SampleUserEmail())
	} else {
		fmt.Printf("Seeded %d rows (user %s)\n", inserted, database.SampleUserEmail())
	}
	return nil
}
