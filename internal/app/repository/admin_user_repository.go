package repository

import (
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminUserRepository interface {
	Create(admin *model.AdminUser) error
	FindByEmail(email string) (*model.AdminUser, error)
	FindByID(id uint) (*model.AdminUser, error)
}

type adminUserRepository struct {
	db *gorm.DB
}

func NewAdminUserRepository(db *gorm.DB) AdminUserRepository {
	return &adminUserRepository{db: db}
}

func (r *adminUserRepository) Create(admin *model.AdminUser) error {
	logger.Debug("Creating admin user in database", map[string]interface{}{
		"email": admin.Email,
	})

	if err := r.db.Create(admin).Error; err != nil {
		logger.Error("Failed to create admin user in database", err, map[string]interface{}{
			"email": admin.Email,
		})
		return err
	}

	logger.Debug("Admin user created in database", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return nil
}

func (r *adminUserRepository) FindByEmail(email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepository) FindByID(id uint) (*model.AdminUser, error) {
	var admin model.AdminUser
	if err := r.db.First(&admin, id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}
