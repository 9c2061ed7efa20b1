package service

import (
	"errors"
	"strings"
	"time"

	"github.com/shajghor/shajghor-backend/config"
	"github.com/shajghor/shajghor-backend/internal/app/model"
	"github.com/shajghor/shajghor-backend/internal/app/repository"
	"github.com/shajghor/shajghor-backend/pkg/logger"
	"github.com/shajghor/shajghor-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown identities and wrong
	// passwords so login failures do not reveal which admin emails exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAdminNotFound      = errors.New("admin account not found")
)

// AuthService authenticates the admin console. Authorization is a row in
// admin_users: an identity without a row never gets a token, no matter
// the password.
type AuthService interface {
	Login(email, password string) (*model.AdminUser, *util.TokenPair, error)
	GetAdminByID(id uint) (*model.AdminUser, error)
	GetAdminByEmail(email string) (*model.AdminUser, error)
	EnsureBootstrapAdmin() error
}

type authService struct {
	adminRepo repository.AdminUserRepository
	cfg       *config.Config
}

func NewAuthService(adminRepo repository.AdminUserRepository, cfg *config.Config) AuthService {
	return &authService{adminRepo: adminRepo, cfg: cfg}
}

func (s *authService) Login(email, password string) (*model.AdminUser, *util.TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	logger.Debug("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login rejected for unknown identity", map[string]interface{}{
				"email": email,
			})
			return nil, nil, ErrInvalidCredentials
		}
		logger.Error("Failed to look up admin account", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, err
	}

	if !util.VerifyPassword(admin.PasswordHash, password) {
		logger.Warn("Login rejected for wrong password", map[string]interface{}{
			"email": email,
		})
		return nil, nil, ErrInvalidCredentials
	}

	tokens, err := util.GenerateTokenPair(
		admin.ID,
		admin.Email,
		string(admin.Role),
		s.cfg.JWT.Secret,
		s.cfg.JWT.AccessTokenExpiry,
		s.cfg.JWT.RefreshTokenExpiry,
	)
	if err != nil {
		logger.Error("Failed to generate tokens", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, nil, err
	}

	logger.Info("Admin logged in", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return admin, tokens, nil
}

func (s *authService) GetAdminByID(id uint) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

func (s *authService) GetAdminByEmail(email string) (*model.AdminUser, error) {
	admin, err := s.adminRepo.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return admin, nil
}

// EnsureBootstrapAdmin seeds the configured admin account on startup if
// no row for it exists yet. Without it a fresh deployment has no way to
// log in.
func (s *authService) EnsureBootstrapAdmin() error {
	email := strings.ToLower(strings.TrimSpace(s.cfg.Admin.BootstrapEmail))
	if email == "" || s.cfg.Admin.BootstrapPassword == "" {
		logger.Warn("Bootstrap admin not configured, skipping seed", nil)
		return nil
	}

	_, err := s.adminRepo.FindByEmail(email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := util.HashPassword(s.cfg.Admin.BootstrapPassword)
	if err != nil {
		return err
	}

	admin := &model.AdminUser{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now(),
	}
	if err := s.adminRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("Bootstrap admin created", map[string]interface{}{
		"email": email,
	})
	return nil
}
