// Package models contains database model definitions.
package models

import (
	"time"
)

// SystemSetting is one stored override. A row exists only while the key is
// not using its default value.
type SystemSetting struct {
	// ID is the primary key.
	ID uint64 `gorm:"primaryKey"`
	// KeyName is the setting key. The explicit secondary index mirrors the
	// unique constraint.
	KeyName string `gorm:"column:key_name;size:100;not null;uniqueIndex;index:idx_system_settings_key"`
	// Value is the type-erased stored value, nil for SQL NULL.
	Value *string `gorm:"type:text"`
	// Description is copied from the definition when the row is created.
	Description *string `gorm:"size:500"`
	// CreatedAt is set once by GORM on insert.
	CreatedAt time.Time `gorm:"autoCreateTime"`
	// UpdatedAt stays NULL until the first update.
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`
}

// TableName returns the persisted table name.
func (SystemSetting) TableName() string {
	return "system_settings"
}
