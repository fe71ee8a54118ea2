package repository

import (
	"context"
	"time"

	"nextstep/internal/models"
	"nextstep/internal/observability"

	"gorm.io/gorm"
)

// TopScholarshipsLimit caps the "top scholarships" window.
const TopScholarshipsLimit = 6

// ScholarshipRepository defines the interface for scholarship data operations
type ScholarshipRepository interface {
	Create(ctx context.Context, s *models.Scholarship) error
	GetByID(ctx context.Context, id uint) (*models.Scholarship, error)
	List(ctx context.Context, search string, page, limit int) ([]models.Scholarship, error)
	ListAll(ctx context.Context) ([]models.Scholarship, error)
	Top(ctx context.Context) ([]models.Scholarship, error)
	Count(ctx context.Context) (int64, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type scholarshipRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewScholarshipRepository creates a new scholarship repository
func NewScholarshipRepository(db *gorm.DB) ScholarshipRepository {
	return &scholarshipRepository{db: db, log: observability.NewRepoLogger("scholarships")}
}

func (r *scholarshipRepository) Create(ctx context.Context, s *models.Scholarship) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "create", "scholarships")
	defer span.End()

	if s.PostDate.IsZero() {
		s.PostDate = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogOperation(ctx, "create", map[string]interface{}{
		"id":     s.ID,
		"poster": s.PostedUserEmail,
	})
	return nil
}

func (r *scholarshipRepository) GetByID(ctx context.Context, id uint) (*models.Scholarship, error) {
	var s models.Scholarship
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &s, nil
}

// List returns an offset-paginated window, optionally narrowed by a
// case-insensitive substring search over name, degree, and university.
// Offset windows can skip or duplicate rows under concurrent writes; that
// is acceptable for browse traffic.
func (r *scholarshipRepository) List(ctx context.Context, search string, page, limit int) ([]models.Scholarship, error) {
	defer observability.ObserveQuery("list", "scholarships", time.Now())

	var scholarships []models.Scholarship
	q := r.db.WithContext(ctx)
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("scholarship_name ILIKE ? OR degree ILIKE ? OR university_name ILIKE ?", like, like, like)
	}
	err := q.Order("post_date DESC").
		Offset(page * limit).
		Limit(limit).
		Find(&scholarships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return scholarships, nil
}

func (r *scholarshipRepository) ListAll(ctx context.Context) ([]models.Scholarship, error) {
	var scholarships []models.Scholarship
	if err := r.db.WithContext(ctx).Order("post_date DESC").Find(&scholarships).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return scholarships, nil
}

// Top returns at most TopScholarshipsLimit records, cheapest application
// fee first; among equal fees, most recently posted first.
func (r *scholarshipRepository) Top(ctx context.Context) ([]models.Scholarship, error) {
	defer observability.ObserveQuery("top", "scholarships", time.Now())

	var scholarships []models.Scholarship
	err := r.db.WithContext(ctx).
		Order("application_fees ASC, post_date DESC").
		Limit(TopScholarshipsLimit).
		Find(&scholarships).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return scholarships, nil
}

func (r *scholarshipRepository) Count(ctx context.Context) (int64, error) {
	defer observability.ObserveQuery("count", "scholarships", time.Now())

	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Scholarship{}).Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// UpdateFields applies a caller-assembled whitelist of columns. Handlers
// own the whitelist; nothing outside `fields` is touched.
func (r *scholarshipRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Model(&models.Scholarship{}).
		Where("id = ?", id).
		Updates(fields).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *scholarshipRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := observability.TraceRepositoryMethod(ctx, "delete", "scholarships")
	defer span.End()

	if err := r.db.WithContext(ctx).Delete(&models.Scholarship{}, id).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogOperation(ctx, "delete", map[string]interface{}{"id": id})
	return nil
}
