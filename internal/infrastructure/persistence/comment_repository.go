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

// GormCommentRepository implements CommentRepository using GORM
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Create inserts a new comment. A missing listing surfaces as ErrNotFound.
func (r *GormCommentRepository) Create(ctx context.Context, comment *catalog.Comment) error {
	model := models.CommentModelFromDomain(comment)
	return translateError(r.db.WithContext(ctx).Create(model).Error, "Comment already exists")
}

// FindByID finds a comment by ID
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Comment, error) {
	var model models.CommentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByListing returns the comments on a listing, newest first
func (r *GormCommentRepository) FindByListing(ctx context.Context, listingID uuid.UUID) ([]*catalog.Comment, error) {
	var commentModels []models.CommentModel
	if err := r.db.WithContext(ctx).
		Where("listing_id = ?", listingID).
		Order("posted_at DESC").
		Order("id DESC").
		Find(&commentModels).Error; err != nil {
		return nil, err
	}
	comments := make([]*catalog.Comment, len(commentModels))
	for i := range commentModels {
		comments[i] = commentModels[i].ToDomain()
	}
	return comments, nil
}

// Delete removes a comment by ID
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByListing removes every comment on a listing and returns how many were removed
func (r *GormCommentRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Where("listing_id = ?", listingID).Delete(&models.CommentModel{})
	return result.RowsAffected, result.Error
}

// Ensure GormCommentRepository implements CommentRepository
var _ catalog.CommentRepository = (*GormCommentRepository)(nil)
