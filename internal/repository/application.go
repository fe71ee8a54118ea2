package repository

import (
	"context"
	"time"

	"nextstep/internal/models"

	"gorm.io/gorm"
)

// Sortable columns for the admin application listing, keyed by the query
// parameter values the API accepts.
var applicationSortColumns = map[string]string{
	"applicationDeadline": "application_deadline",
	"appliedDate":         "applied_date",
}

// ApplicationRepository defines the interface for application data operations
type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id uint) (*models.Application, error)
	ListByEmail(ctx context.Context, email string) ([]models.Application, error)
	ListAll(ctx context.Context, sortBy string) ([]models.Application, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	UpdateStatus(ctx context.Context, id uint, status string) error
	SetFeedback(ctx context.Context, id uint, feedback string) error
	Delete(ctx context.Context, id uint) error
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, a *models.Application) error {
	if a.Status == "" {
		a.Status = models.StatusPending
	}
	if a.AppliedDate.IsZero() {
		a.AppliedDate = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uint) (*models.Application, error) {
	var a models.Application
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &a, nil
}

func (r *applicationRepository) ListByEmail(ctx context.Context, email string) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.WithContext(ctx).
		Where("user_email = ?", email).
		Order("applied_date DESC").
		Find(&apps).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

// ListAll returns every application, sorted by the requested column when it
// is one of the accepted sort keys, newest applications first otherwise.
func (r *applicationRepository) ListAll(ctx context.Context, sortBy string) ([]models.Application, error) {
	var apps []models.Application
	order := "applied_date DESC"
	if col, ok := applicationSortColumns[sortBy]; ok {
		order = col + " ASC"
	}
	if err := r.db.WithContext(ctx).Order(order).Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) SetFeedback(ctx context.Context, id uint, feedback string) error {
	err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("feedback", feedback).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Application{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
