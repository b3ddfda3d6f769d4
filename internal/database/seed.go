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
	"database/sql"
	"fmt"

	"github.com/soilfert-app/soilfertdb/internal/models"
)

// sampleUser is the test account inserted by SeedTestData. The hash is a
// placeholder; hashing is owned by the web application.
var sampleUser = models.User{
	Email:        "test@soilfert.com",
	PasswordHash: "pbkdf2:sha256:placeholder$test$hash",
	FirstName:    "Test",
	LastName:     "Farmer",
	Country:      "US",
	Region:       "IA",
	PlanType:     "pro",
}

// sampleTestimonial references the sample user. The fixed primary key makes
// the insert collide (and be ignored) on repeat runs.
var sampleTestimonial = models.Testimonial{
	ID:      1,
	Content: "SoilFert's lime recommendations cut our input costs by a third.",
	Rating:  5,
	Status:  "approved",
}

// SeedTestData inserts the sample user and testimonial with INSERT OR
// IGNORE semantics: the user is keyed on the unique email, the testimonial
// on its fixed id, so repeated invocations never duplicate rows. Returns
// the number of rows actually inserted.
func SeedTestData(db *sql.DB) (int, error) {
	inserted := 0

	res, err := db.Exec(`
		INSERT OR IGNORE INTO users (email, password_hash, first_name, last_name, country, region, plan_type)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sampleUser.Email, sampleUser.PasswordHash, sampleUser.FirstName,
		sampleUser.LastName, sampleUser.Country, sampleUser.Region, sampleUser.PlanType,
	)
	if err != nil {
		return inserted, fmt.Errorf("failed to seed user: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		inserted += int(n)
	}

	res, err = db.Exec(`
		INSERT OR IGNORE INTO testimonials (id, user_id, content, rating, status)
		VALUES (?, (SELECT id FROM users WHERE email = ?), ?, ?, ?)`,
		sampleTestimonial.ID, sampleUser.Email,
		sampleTestimonial.Content, sampleTestimonial.Rating, sampleTestimonial.Status,
	)
	if err != nil {
		return inserted, fmt.Errorf("failed to seed testimonial: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil {
		inserted += int(n)
	}

	return inserted, nil
}

// SampleUserEmail exposes the seeded account's email for verification.
func SampleUserEmail() string {
	return sampleUser.Email
}
