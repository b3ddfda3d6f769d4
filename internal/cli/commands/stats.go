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

	"github.com/soilfert-app/soilfertdb/internal/database"
	"github.com/spf13/cobra"
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print summary counts",
		Long: `Prints the total table count and user count, plus the stored schema
version.

Example:
  soilfertdb stats -d data/soilfert.db`,
		RunE: runStats,
	}

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	db, err := database.Connect(databasePath(cmd))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	stats, err := database.CollectStats(db)
	if err != nil {
		return err
	}
	version, err := database.GetCurrentSchemaVersion(db)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	fmt.Fprintf(tw, "Schema version\t%s\n", version)
	fmt.Fprintf(tw, "Tables\t%d\n", stats.TableCount)
	fmt.Fprintf(tw, "Users\t%d\n", stats.UserCount)
	return nil
}
