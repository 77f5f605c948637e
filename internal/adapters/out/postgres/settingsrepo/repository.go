// Package settingsrepo reads the admin settings key/value table owned by the
// admin service.
package settingsrepo

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/settings"

	"gorm.io/gorm"
)

// AdminSettingDTO is one row of the admin_settings table.
type AdminSettingDTO struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string
	UpdatedAt time.Time
}

func (AdminSettingDTO) TableName() string {
	return "admin_settings"
}

// GormSettingsRepository implements ports.SettingsSource using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new settings reader.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// Load reads every row and parses the keys the core understands.
func (r *GormSettingsRepository) Load(ctx context.Context) (settings.Settings, error) {
	var rows []AdminSettingDTO
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return settings.Settings{}, fmt.Errorf("load admin settings: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return settings.FromValues(values)
}
