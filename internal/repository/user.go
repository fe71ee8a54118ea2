// Package repository contains the data-access layer over GORM.
package repository

import (
	"context"

	"nextstep/internal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	SaveIfAbsent(ctx context.Context, user *models.User) (*models.User, bool, error)
	List(ctx context.Context, excludeEmail, role string) ([]models.User, error)
	UpdateProfile(ctx context.Context, email, name, image string) error
	UpdateRole(ctx context.Context, email, role string) error
	Delete(ctx context.Context, id uint) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // Return nil for not found, not an error
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

// SaveIfAbsent inserts the user unless a record with the same email already
// exists, in which case the stored record is returned unchanged. The
// check-then-insert race is tolerated; the unique index on email turns a
// concurrent double insert into an error instead of a duplicate row.
func (r *userRepository) SaveIfAbsent(ctx context.Context, user *models.User) (*models.User, bool, error) {
	existing, err := r.GetByEmail(ctx, user.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	if user.Role == "" {
		user.Role = models.RoleUser
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return user, true, nil
}

func (r *userRepository) List(ctx context.Context, excludeEmail, role string) ([]models.User, error) {
	var users []models.User
	q := r.db.WithContext(ctx).Where("email <> ?", excludeEmail)
	if role != "" {
		q = q.Where("role = ?", role)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

// UpdateProfile applies the self-service whitelist: only name and image are
// mutable here, any other field in the request payload is ignored upstream.
func (r *userRepository) UpdateProfile(ctx context.Context, email, name, image string) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{"name": name, "image": image}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, email, role string) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Update("role", role).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.User{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
