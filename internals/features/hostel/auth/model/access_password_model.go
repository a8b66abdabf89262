package model

import "time"

const (
	ScopeLogin    = "login"
	ScopePenalty  = "penalty"
	ScopeReminder = "reminder"
)

// AccessPassword gates one admin area ("scope") behind a shared password.
// Only the bcrypt hash is stored.
type AccessPassword struct {
	AccessPasswordScope string `gorm:"type:text;primaryKey;column:access_password_scope" json:"scope"`
	AccessPasswordHash  string `gorm:"type:text;not null;column:access_password_hash" json:"-"`

	AccessPasswordUpdatedAt time.Time `gorm:"autoUpdateTime;column:access_password_updated_at" json:"-"`
}

func (AccessPassword) TableName() string { return "access_passwords" }
