package repository

import (
	"github.com/yukikurage/project-tasks-api/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// FindByID finds a user by internal ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByPublicID finds a user by public ID
func (r *GormUserRepository) FindByPublicID(publicID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("public_id = ?", publicID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindIDByPublicID returns the internal ID of the user with the given public ID
func (r *GormUserRepository) FindIDByPublicID(publicID string) (uint64, error) {
	var user models.User
	if err := r.db.Select("id").Where("public_id = ?", publicID).First(&user).Error; err != nil {
		return 0, err
	}
	return user.ID, nil
}
