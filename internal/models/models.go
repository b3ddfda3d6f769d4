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

// Package models contains the entities this tool writes to the SoilFert
// database. Entities the tool only creates tables for live in the web
// application, not here.
package models

import "time"

// User represents an account in the web application
type User struct {
	ID                    int        `json:"id" db:"id"`
	Email                 string     `json:"email" db:"email"`
	PasswordHash          string     `json:"-" db:"password_hash"`
	FirstName             string     `json:"first_name" db:"first_name"`
	LastName              string     `json:"last_name" db:"last_name"`
	Country               string     `json:"country" db:"country"`
	Region                string     `json:"region" db:"region"`
	PlanType              string     `json:"plan_type" db:"plan_type"` // free or pro
	ProPlanExpiresAt      *time.Time `json:"pro_plan_expires_at" db:"pro_plan_expires_at"`
	SubscriptionStartDate *time.Time `json:"subscription_start_date" db:"subscription_start_date"`
	SubscriptionEndDate   *time.Time `json:"subscription_end_date" db:"subscription_end_date"`
	LastLoginDate         *time.Time `json:"last_login_date" db:"last_login_date"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
}

// Testimonial represents a user-submitted testimonial pending moderation
type Testimonial struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Content   string    `json:"content" db:"content"`
	Rating    int       `json:"rating" db:"rating"`
	Status    string    `json:"status" db:"status"` // pending, approved, rejected
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
