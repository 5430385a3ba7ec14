package models

import "time"

// Preference is a small key/value setting stored alongside the records.
type Preference struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName keeps the preferences table name explicit.
func (Preference) TableName() string {
	return "app_preferences"
}
