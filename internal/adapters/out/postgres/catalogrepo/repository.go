package catalogrepo

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GORM catalog repository.
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// GetUser retrieves a live user account by id.
func (r *GormCatalogRepository) GetUser(ctx context.Context, id kernel.UUID) (ports.CatalogUser, error) {
	if err := id.Validate(); err != nil {
		return ports.CatalogUser{}, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.CatalogUser{}, errs.NewObjectNotFoundError("user", id.String())
		}
		return ports.CatalogUser{}, fmt.Errorf("get user: %w", err)
	}

	return ports.CatalogUser{
		ID:    id,
		Name:  dto.Name,
		Email: dto.Email,
		Phone: dto.Phone,
		Role:  dto.Role,
	}, nil
}

// VariantPrices retrieves the price of every live variant in variantIDs.
func (r *GormCatalogRepository) VariantPrices(
	ctx context.Context,
	variantIDs []kernel.UUID,
) (map[kernel.UUID]kernel.Money, error) {
	prices := make(map[kernel.UUID]kernel.Money, len(variantIDs))
	if len(variantIDs) == 0 {
		return prices, nil
	}

	raw := make([]uuid.UUID, 0, len(variantIDs))
	for _, id := range variantIDs {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ProductVariantDTO
	if err := r.db.WithContext(ctx).Where("id IN ?", raw).Find(&dtos).Error; err != nil {
		return nil, fmt.Errorf("load variant prices: %w", err)
	}

	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, err
		}
		price, err := kernel.NewMoney(dto.Price)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", id, err)
		}
		prices[id] = price
	}
	return prices, nil
}
