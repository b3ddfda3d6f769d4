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

// Package config holds the updater configuration record. The record is
// passed explicitly into the procedure so it stays callable and testable
// without the command-line harness.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const defaultDatabasePath = "soilfert.db"

// Config controls one updater run. CLI flags override environment values;
// environment values override the defaults.
type Config struct {
	DatabasePath  string `env:"SOILFERT_DATABASE" envDefault:"soilfert.db"`
	BackupFirst   bool   `env:"SOILFERT_BACKUP_FIRST" envDefault:"true"`
	ShowTables    bool   `env:"SOILFERT_SHOW_TABLES" envDefault:"false"`
	ResetDatabase bool   `env:"-"`
	AddTestData   bool   `env:"-"`
}

// Defaults returns the built-in configuration defaults, with the pre-run
// backup enabled.
func Defaults() Config {
	return Config{
		DatabasePath: defaultDatabasePath,
		BackupFirst:  true,
	}
}

// LoadFromEnv loads configuration from environment variables. A malformed
// value is an error, not a silent zero: the returned Config still carries
// the defaults so a caller that ignores the error keeps the backup enabled.
// Reset and test-data seeding are deliberately not settable from the
// environment: both mutate beyond the additive contract and must be asked
// for per invocation.
func LoadFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Defaults(), fmt.Errorf("failed to parse environment: %w", err)
	}
	if cfg.DatabasePath == "" {
		cfg.DatabasePath = defaultDatabasePath
	}
	return cfg, nil
}
