package persistence

import (
	"context"
	"errors"

	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/campusmarket/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// Create inserts a cart entry. When the buyer already holds the listing the
// unique (buyer_id, listing_id) index rejects it and ErrAlreadyExists is returned.
func (r *GormCartRepository) Create(ctx context.Context, entry *trade.CartEntry) error {
	model := models.CartEntryModelFromDomain(entry)
	return translateError(r.db.WithContext(ctx).Create(model).Error, "Listing is already in the cart")
}

// FindByID finds a cart entry by ID
func (r *GormCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.CartEntry, error) {
	var model models.CartEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBuyerAndListing finds the entry holding a listing in a buyer's cart
func (r *GormCartRepository) FindByBuyerAndListing(ctx context.Context, buyerID, listingID uuid.UUID) (*trade.CartEntry, error) {
	var model models.CartEntryModel
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ? AND listing_id = ?", buyerID, listingID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBuyer returns a buyer's cart entries, most recently added first
func (r *GormCartRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*trade.CartEntry, error) {
	var entryModels []models.CartEntryModel
	if err := r.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("added_at DESC").
		Order("id DESC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	entries := make([]*trade.CartEntry, len(entryModels))
	for i := range entryModels {
		entries[i] = entryModels[i].ToDomain()
	}
	return entries, nil
}

// Delete removes a cart entry by ID
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CartEntryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByIDs removes the given entries and returns how many were removed
func (r *GormCartRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.CartEntryModel{})
	return result.RowsAffected, result.Error
}

// DeleteByListing removes a listing from every cart and returns how many entries were removed
func (r *GormCartRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&models.CartEntryModel{})
	return result.RowsAffected, result.Error
}

// Ensure GormCartRepository implements CartRepository
var _ trade.CartRepository = (*GormCartRepository)(nil)
