// Package driverrepo provides data transfer objects and mapping functions for the
// driver directory. Name and phone are read from the owning user row.
package driverrepo

import (
	"time"

	"fulfillment/internal/adapters/out/postgres/catalogrepo"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DriverDTO represents the database structure for persisting driver profiles.
type DriverDTO struct {
	ID                 uuid.UUID           `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID           `gorm:"type:uuid;uniqueIndex"`
	User               catalogrepo.UserDTO `gorm:"foreignKey:UserID"`
	Role               string              `gorm:"size:32;index"`
	VerificationStatus string              `gorm:"size:32;index"`
	IsOnline           bool                `gorm:"index"`
	LastSeenAt         *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time      `gorm:"autoUpdateTime:false"`
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the database table name for driver profiles.
func (DriverDTO) TableName() string {
	return "drivers"
}

func fromDomain(d *driver.Driver) DriverDTO {
	var deletedAt gorm.DeletedAt
	if at := d.DeletedAt(); at != nil {
		deletedAt = gorm.DeletedAt{Time: *at, Valid: true}
	}

	return DriverDTO{
		ID:                 d.ID().Bytes(),
		UserID:             d.UserID().Bytes(),
		Role:               d.Role().String(),
		VerificationStatus: d.Verification().String(),
		IsOnline:           d.IsOnline(),
		LastSeenAt:         d.LastSeenAt(),
		CreatedAt:          d.CreatedAt(),
		UpdatedAt:          d.UpdatedAt(),
		DeletedAt:          deletedAt,
	}
}

// toDomain converts a DTO with a preloaded User to a driver aggregate.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var deletedAt *time.Time
	if dto.DeletedAt.Valid {
		deletedAt = &dto.DeletedAt.Time
	}

	return driver.RestoreDriver(driver.Snapshot{
		ID:           id,
		UserID:       userID,
		Name:         dto.User.Name,
		Phone:        dto.User.Phone,
		Role:         driver.Role(dto.Role),
		Verification: driver.VerificationStatus(dto.VerificationStatus),
		IsOnline:     dto.IsOnline,
		LastSeenAt:   dto.LastSeenAt,
		CreatedAt:    dto.CreatedAt,
		UpdatedAt:    dto.UpdatedAt,
		DeletedAt:    deletedAt,
	})
}
