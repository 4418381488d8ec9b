package persistence

import (
	"context"
	"errors"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormListingRepository implements ListingRepository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// Create inserts a new listing
func (r *GormListingRepository) Create(ctx context.Context, listing *catalog.Listing) error {
	model := models.ListingModelFromDomain(listing)
	return translateError(r.db.WithContext(ctx).Create(model).Error, "Listing already exists")
}

// FindByID finds a listing by ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	var model models.ListingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDs finds multiple listings by their IDs. Missing IDs are skipped.
func (r *GormListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Listing, error) {
	if len(ids) == 0 {
		return []*catalog.Listing{}, nil
	}
	var listingModels []models.ListingModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&listingModels).Error; err != nil {
		return nil, err
	}
	return toListings(listingModels), nil
}

// FindAll returns one page of listings, newest first, and the total count
func (r *GormListingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Listing, int64, error) {
	filter = filter.Normalize()

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ListingModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var listingModels []models.ListingModel
	if err := r.db.WithContext(ctx).
		Order("posted_at DESC").
		Order("id DESC").
		Offset(filter.Offset()).
		Limit(filter.PageSize).
		Find(&listingModels).Error; err != nil {
		return nil, 0, err
	}

	return toListings(listingModels), total, nil
}

// Delete removes a listing by ID
func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ListingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toListings(listingModels []models.ListingModel) []*catalog.Listing {
	listings := make([]*catalog.Listing, len(listingModels))
	for i := range listingModels {
		listings[i] = listingModels[i].ToDomain()
	}
	return listings
}

// Ensure GormListingRepository implements ListingRepository
var _ catalog.ListingRepository = (*GormListingRepository)(nil)
