package repository

import (
	"context"

	"reviewhub/internal/http-api/models"

	"gorm.io/gorm"
)

type ReviewRepository interface {
	// Create inserts the review and recomputes the title rating in one
	// transaction. A (title, author) uniqueness race surfaces as
	// gorm.ErrDuplicatedKey.
	Create(ctx context.Context, review *models.Review) error
	// Update saves the review and recomputes the title rating in one
	// transaction.
	Update(ctx context.Context, review *models.Review) error
	// Delete removes the review and recomputes the title rating in one
	// transaction. The title may end up with zero reviews and a nil rating.
	Delete(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, reviewID int64) (*models.Review, error)
	GetByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
	ExistsByTitleAndAuthor(ctx context.Context, titleID int64, userID string) (bool, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		return recomputeTitleRating(tx, review.TitleID)
	})
	return normalizeConflict(err)
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(review).Error; err != nil {
			return err
		}
		return recomputeTitleRating(tx, review.TitleID)
	})
}

func (r *reviewRepository) Delete(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Review{}, review.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return recomputeTitleRating(tx, review.TitleID)
	})
}

// recomputeTitleRating reads the title's full score set and writes the
// aggregate back, inside the caller's transaction so readers never observe
// a torn rating.
func recomputeTitleRating(tx *gorm.DB, titleID int64) error {
	var scores []int
	if err := tx.Model(&models.Review{}).Where("title_id = ?", titleID).Pluck("score", &scores).Error; err != nil {
		return err
	}
	rating := models.AggregateRating(scores)
	return tx.Model(&models.Title{}).Where("id = ?", titleID).Update("rating", rating).Error
}

func (r *reviewRepository) GetByID(ctx context.Context, reviewID int64) (*models.Review, error) {
	var review models.Review
	err := r.db.WithContext(ctx).
		Preload("User").
		First(&review, reviewID).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) GetByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) ExistsByTitleAndAuthor(ctx context.Context, titleID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ? AND user_id = ?", titleID, userID).
		Count(&count).Error
	return count > 0, err
}
