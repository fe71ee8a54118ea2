package repository

import (
	"context"
	"time"

	"nextstep/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, rev *models.Review) error
	ExistsFor(ctx context.Context, scholarshipID, reviewerEmail string) (bool, error)
	GetByID(ctx context.Context, id uint) (*models.Review, error)
	ListAll(ctx context.Context) ([]models.Review, error)
	ListByScholarship(ctx context.Context, scholarshipID string) ([]models.Review, error)
	ListByReviewer(ctx context.Context, email string) ([]models.Review, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rev *models.Review) error {
	if rev.ReviewDate.IsZero() {
		rev.ReviewDate = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(rev).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// ExistsFor reports whether the reviewer already reviewed the scholarship.
// Callers check this before Create; the race between check and insert is
// tolerated.
func (r *reviewRepository) ExistsFor(ctx context.Context, scholarshipID, reviewerEmail string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("scholarship_id = ? AND reviewer_email = ?", scholarshipID, reviewerEmail).
		Count(&count).Error
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var rev models.Review
	if err := r.db.WithContext(ctx).First(&rev, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &rev, nil
}

func (r *reviewRepository) ListAll(ctx context.Context) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).Order("review_date DESC").Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByScholarship(ctx context.Context, scholarshipID string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("scholarship_id = ?", scholarshipID).
		Order("review_date DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) ListByReviewer(ctx context.Context, email string) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.WithContext(ctx).
		Where("reviewer_email = ?", email).
		Order("review_date DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Review{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
