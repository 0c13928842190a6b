// Package setting provides CRUD operations on the system_settings table.
package setting

import (
	"errors"

	"gorm.io/gorm"

	"github.com/settings-admin/settings-admin/internal/db/models"
)

const (
	keyQueryPattern = "key_name = ?"
)

var (
	// ErrSettingNotFound is returned when a setting is not found.
	ErrSettingNotFound = errors.New("setting not found")
	// ErrSettingKeyEmpty is returned when attempting to read or write a setting with an empty key.
	ErrSettingKeyEmpty = errors.New("setting key cannot be empty")
	// ErrSettingAlreadyExists is returned when attempting to create a setting that already exists.
	ErrSettingAlreadyExists = errors.New("setting already exists")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Get retrieves a setting by its key.
func Get(db *gorm.DB, key string) (*models.SystemSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.SystemSetting
	result := db.Where(keyQueryPattern, key).First(&setting)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrSettingNotFound
		}
		return nil, result.Error
	}

	return &setting, nil
}

// GetAll retrieves all settings ordered by key.
func GetAll(db *gorm.DB) ([]models.SystemSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var settings []models.SystemSetting
	result := db.Order("key_name").Find(&settings)
	if result.Error != nil {
		return nil, result.Error
	}

	return settings, nil
}

// GetAllValues reads key_name and value of every row. NULL values map to nil.
func GetAllValues(db *gorm.DB) (map[string]*string, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.SystemSetting
	result := db.Select("key_name", "value").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	values := make(map[string]*string, len(rows))
	for _, row := range rows {
		values[row.KeyName] = row.Value
	}

	return values, nil
}

// Create inserts a new setting row.
func Create(db *gorm.DB, key string, value, description *string) (*models.SystemSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var existing models.SystemSetting
	result := db.Where(keyQueryPattern, key).First(&existing)
	if result.Error == nil {
		return nil, ErrSettingAlreadyExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	setting := &models.SystemSetting{
		KeyName:     key,
		Value:       value,
		Description: description,
	}

	result = db.Create(setting)
	if result.Error != nil {
		return nil, result.Error
	}

	return setting, nil
}

// Set inserts the row for key, or updates value and updated_at of the
// existing one. description is only used on insert.
func Set(db *gorm.DB, key string, value, description *string) (*models.SystemSetting, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if key == "" {
		return nil, ErrSettingKeyEmpty
	}

	var setting models.SystemSetting
	result := db.Where(keyQueryPattern, key).First(&setting)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return Create(db, key, value, description)
	}
	if result.Error != nil {
		return nil, result.Error
	}

	return update(db, &setting, value)
}

func update(db *gorm.DB, setting *models.SystemSetting, value *string) (*models.SystemSetting, error) {
	now := db.NowFunc()

	result := db.Model(setting).Updates(map[string]any{
		"value":      value,
		"updated_at": now,
	})
	if result.Error != nil {
		return nil, result.Error
	}

	setting.Value = value
	setting.UpdatedAt = &now

	return setting, nil
}

// DeleteByKey deletes a setting by key. ErrSettingNotFound reports that no
// row was affected.
func DeleteByKey(db *gorm.DB, key string) error {
	if db == nil {
		return ErrDBNil
	}
	if key == "" {
		return ErrSettingKeyEmpty
	}

	result := db.Where(keyQueryPattern, key).Delete(&models.SystemSetting{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSettingNotFound
	}

	return nil
}
